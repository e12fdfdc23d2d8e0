package domain

import "time"

// Label is a user-defined tag that can be attached to many boards.
type Label struct {
	CreatedAt      time.Time
	Name           string
	NormalizedName string
	ID             int
}

// NewLabel creates a label.
func NewLabel(name string, now time.Time) *Label {
	l := &Label{CreatedAt: now}
	l.Rename(name)
	return l
}

// Rename sets the display name and refreshes the normalized name.
func (l *Label) Rename(name string) {
	l.Name = CleanName(name)
	l.NormalizedName = Normalize(l.Name)
}

// Clone returns a copy of the label.
func (l *Label) Clone() *Label {
	c := *l
	return &c
}

func (l *Label) OrderName() string         { return l.NormalizedName }
func (l *Label) OrderCreatedAt() time.Time { return l.CreatedAt }
func (l *Label) OrderPosition() *int       { return nil }
func (l *Label) OrderID() int              { return l.ID }

// BoardLabelRef is one board-label association row.
type BoardLabelRef struct {
	BoardID int
	LabelID int
}

// RefsFor builds the refs that associate boardID with each label id.
func RefsFor(boardID int, labelIDs []int) []BoardLabelRef {
	refs := make([]BoardLabelRef, 0, len(labelIDs))
	for _, id := range labelIDs {
		refs = append(refs, BoardLabelRef{BoardID: boardID, LabelID: id})
	}
	return refs
}
