package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardFixture(id int, name string, pos int, created time.Time, labelIDs ...int) *BoardWithLabels {
	b := NewBoard(name, pos, created)
	b.ID = id
	var labels []*Label
	for _, lid := range labelIDs {
		labels = append(labels, &Label{ID: lid})
	}
	return &BoardWithLabels{Board: b, Labels: labels}
}

func fixtures() []*BoardWithLabels {
	day := 24 * time.Hour
	return []*BoardWithLabels{
		boardFixture(1, "Éte", 2, testNow.Add(-3*day), 1),
		boardFixture(2, "alpha", 0, testNow.Add(-1*day), 2),
		boardFixture(3, "Zebra", 1, testNow.Add(-2*day), 1, 3),
		boardFixture(4, "beta", 3, testNow, 4),
	}
}

func ids(boards []*BoardWithLabels) []int {
	out := make([]int, len(boards))
	for i, b := range boards {
		out[i] = b.ID
	}
	return out
}

func TestSort(t *testing.T) {
	tests := []struct {
		key  SortKey
		want []int
	}{
		{SortNameAsc, []int{2, 4, 1, 3}},
		{SortNameDesc, []int{3, 1, 4, 2}},
		{SortNewest, []int{4, 2, 3, 1}},
		{SortOldest, []int{1, 3, 2, 4}},
		{SortCustom, []int{2, 3, 1, 4}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			in := fixtures()
			got := Sort(in, tt.key)
			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, []int{1, 2, 3, 4}, ids(in), "input must not be reordered")
		})
	}
}

func TestSort_CustomWithoutPositions(t *testing.T) {
	a := boardFixture(5, "a", 0, testNow)
	b := boardFixture(2, "b", 0, testNow)
	require.NoError(t, a.Archive(testNow))
	require.NoError(t, b.Archive(testNow))

	got := Sort([]*BoardWithLabels{a, b}, SortCustom)

	assert.Equal(t, []int{2, 5}, ids(got))
}

func TestSort_CustomUsesTrashLane(t *testing.T) {
	a := boardFixture(1, "a", 0, testNow)
	b := boardFixture(2, "b", 1, testNow)
	require.NoError(t, a.MoveToTrash(testNow))
	require.NoError(t, b.MoveToTrash(testNow))
	*a.TrashPosition = 1

	got := Sort([]*BoardWithLabels{a, b}, SortCustom)

	assert.Equal(t, []int{2, 1}, ids(got))
}

func TestFilterBoards(t *testing.T) {
	tests := []struct {
		name   string
		filter BoardFilter
		want   []int
	}{
		{"no filter", BoardFilter{}, []int{1, 2, 3, 4}},
		{"label OR", BoardFilter{LabelIDs: []int{3, 4}}, []int{3, 4}},
		{"label single", BoardFilter{LabelIDs: []int{1}}, []int{1, 3}},
		{"label none match", BoardFilter{LabelIDs: []int{99}}, nil},
		{"query diacritics", BoardFilter{Query: "ETE"}, []int{1}},
		{"query substring", BoardFilter{Query: "  ta "}, []int{4}},
		{"query and label", BoardFilter{Query: "e", LabelIDs: []int{1}}, []int{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterBoards(fixtures(), tt.filter)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

// Property: filter∘sort and sort∘filter select the same set.
func TestSortFilter_OrderIndependent(t *testing.T) {
	filters := []BoardFilter{
		{},
		{LabelIDs: []int{1}},
		{Query: "a"},
		{Query: "e", LabelIDs: []int{1, 4}},
		{LabelIDs: []int{42}},
	}
	for _, f := range filters {
		for _, key := range AllSortKeys() {
			filterThenSort := SortFilterBoards(fixtures(), f, key)
			sortThenFilter := FilterBoards(Sort(fixtures(), key), f)

			assert.ElementsMatch(t, ids(filterThenSort), ids(sortThenFilter), "filter %+v key %s", f, key)
			assert.Equal(t, ids(filterThenSort), ids(sortThenFilter), "stable sort keeps the same order too")
		}
	}
}

func TestFilterByQuery_Tasks(t *testing.T) {
	tasks := []*Task{NewTask(1, "Buy café", 0, testNow), NewTask(1, "Walk dog", 1, testNow)}

	got := FilterByQuery(tasks, "CAFE")

	require.Len(t, got, 1)
	assert.Equal(t, "Buy café", got[0].Name)
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortCustom, k)

	k, err = ParseSortKey("name_desc")
	require.NoError(t, err)
	assert.Equal(t, SortNameDesc, k)

	_, err = ParseSortKey("random")
	assert.ErrorIs(t, err, ErrInvalidState)
}
