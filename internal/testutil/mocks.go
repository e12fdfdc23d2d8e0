// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Faults injects errors and row-count shortfalls into a mock repository.
// ShortUpdate treats the first row of each Update as vanished, so like the
// SQLite store the call writes nothing and reports 0. ShortRemove makes
// Remove report one row fewer than it deleted.
// Fields are ordered to minimize memory padding.
type Faults struct {
	CreateErr   error
	FindErr     error
	UpdateErr   error
	RemoveErr   error
	ShortUpdate bool
	ShortRemove bool
}

// updateAll stores clones of batch only if every row exists and ShortUpdate
// is off. It returns the batch IDs and the rows written.
func updateAll[T any](items map[int]T, batch []T, short bool, id func(T) int, clone func(T) T) ([]int, int) {
	ids := make([]int, len(batch))
	missing := short && len(batch) > 0
	for i, item := range batch {
		ids[i] = id(item)
		if _, ok := items[ids[i]]; !ok {
			missing = true
		}
	}
	if missing {
		return ids, 0
	}
	for _, item := range batch {
		items[id(item)] = clone(item)
	}
	return ids, len(batch)
}

func (f *Faults) short(flag bool, n int) int {
	if flag && n > 0 {
		return n - 1
	}
	return n
}

// MockStore holds the in-memory repositories and cascades deletes between them
// the way the SQLite store does with foreign keys.
type MockStore struct {
	Boards   *MockBoardRepository
	Labels   *MockLabelRepository
	Refs     *MockBoardLabelRefRepository
	Tasks    *MockTaskRepository
	Subtasks *MockSubtaskRepository
}

// NewMockStore creates a MockStore with empty repositories.
func NewMockStore() *MockStore {
	s := &MockStore{}
	s.Boards = &MockBoardRepository{store: s, Items: make(map[int]*domain.Board), NextID: 1}
	s.Labels = &MockLabelRepository{store: s, Items: make(map[int]*domain.Label), NextID: 1}
	s.Refs = &MockBoardLabelRefRepository{Rows: make(map[domain.BoardLabelRef]int)}
	s.Tasks = &MockTaskRepository{store: s, Items: make(map[int]*domain.Task), NextID: 1}
	s.Subtasks = &MockSubtaskRepository{store: s, Items: make(map[int]*domain.Subtask), NextID: 1}
	return s
}

// AddBoard stores a copy of b, assigning an ID if it has none.
func (s *MockStore) AddBoard(b *domain.Board) *domain.Board {
	if b.ID == 0 {
		b.ID = s.Boards.NextID
	}
	s.Boards.NextID = max(s.Boards.NextID, b.ID+1)
	s.Boards.Items[b.ID] = b.Clone()
	return b
}

// AddLabel stores a copy of l, assigning an ID if it has none.
func (s *MockStore) AddLabel(l *domain.Label) *domain.Label {
	if l.ID == 0 {
		l.ID = s.Labels.NextID
	}
	s.Labels.NextID = max(s.Labels.NextID, l.ID+1)
	s.Labels.Items[l.ID] = l.Clone()
	return l
}

// AddTask stores a copy of t, assigning an ID if it has none.
func (s *MockStore) AddTask(t *domain.Task) *domain.Task {
	if t.ID == 0 {
		t.ID = s.Tasks.NextID
	}
	s.Tasks.NextID = max(s.Tasks.NextID, t.ID+1)
	s.Tasks.Items[t.ID] = t.Clone()
	return t
}

// AddSubtask stores a copy of st, assigning an ID if it has none.
func (s *MockStore) AddSubtask(st *domain.Subtask) *domain.Subtask {
	if st.ID == 0 {
		st.ID = s.Subtasks.NextID
	}
	s.Subtasks.NextID = max(s.Subtasks.NextID, st.ID+1)
	s.Subtasks.Items[st.ID] = st.Clone()
	return st
}

// Attach stores refs directly.
func (s *MockStore) Attach(boardID int, labelIDs ...int) {
	_ = s.Refs.Create(context.Background(), domain.RefsFor(boardID, labelIDs)...)
}

// LabelIDsOf returns the sorted label IDs attached to a board.
func (s *MockStore) LabelIDsOf(boardID int) []int {
	var ids []int
	for ref := range s.Refs.Rows {
		if ref.BoardID == boardID {
			ids = append(ids, ref.LabelID)
		}
	}
	slices.Sort(ids)
	return ids
}

// MockBoardRepository is a test double for domain.BoardRepository.
type MockBoardRepository struct {
	Faults
	store   *MockStore
	Items   map[int]*domain.Board
	Updated [][]int // IDs per Update call
	Removed [][]int // IDs per Remove call
	NextID  int
}

// Ensure MockBoardRepository implements domain.BoardRepository.
var _ domain.BoardRepository = (*MockBoardRepository)(nil)

// Create stores a copy of the board and returns its new ID.
func (m *MockBoardRepository) Create(_ context.Context, board *domain.Board) (int, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	c := board.Clone()
	c.ID = m.NextID
	m.NextID++
	m.Items[c.ID] = c
	return c.ID, nil
}

// FindByState returns copies of boards in state ordered by lane position.
func (m *MockBoardRepository) FindByState(_ context.Context, state domain.BoardState) ([]*domain.Board, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	var out []*domain.Board
	for _, b := range m.Items {
		if b.State == state {
			out = append(out, b.Clone())
		}
	}
	domain.SortByPosition(out, (*domain.Board).LanePosition, (*domain.Board).OrderID)
	return out, nil
}

// FindOne returns a copy of the board or nil.
func (m *MockBoardRepository) FindOne(_ context.Context, id int) (*domain.Board, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	if b, ok := m.Items[id]; ok {
		return b.Clone(), nil
	}
	return nil, nil
}

// Update overwrites boards only if all of them exist.
func (m *MockBoardRepository) Update(_ context.Context, boards ...*domain.Board) (int, error) {
	if m.UpdateErr != nil {
		return 0, m.UpdateErr
	}
	ids, n := updateAll(m.Items, boards, m.ShortUpdate, (*domain.Board).OrderID, (*domain.Board).Clone)
	m.Updated = append(m.Updated, ids)
	return n, nil
}

// Remove deletes boards and everything they own.
func (m *MockBoardRepository) Remove(_ context.Context, ids ...int) (int, error) {
	if m.RemoveErr != nil {
		return 0, m.RemoveErr
	}
	m.Removed = append(m.Removed, ids)
	n := 0
	for _, id := range ids {
		if _, ok := m.Items[id]; !ok {
			continue
		}
		delete(m.Items, id)
		n++
		m.store.Refs.dropWhere(func(r domain.BoardLabelRef) bool { return r.BoardID == id })
		var taskIDs []int
		for tid, t := range m.store.Tasks.Items {
			if t.BoardID == id {
				taskIDs = append(taskIDs, tid)
			}
		}
		m.store.Tasks.cascade(taskIDs)
	}
	return m.short(m.ShortRemove, n), nil
}

// MockLabelRepository is a test double for domain.LabelRepository.
type MockLabelRepository struct {
	Faults
	store  *MockStore
	Items  map[int]*domain.Label
	NextID int
}

// Ensure MockLabelRepository implements domain.LabelRepository.
var _ domain.LabelRepository = (*MockLabelRepository)(nil)

// Create stores a copy of the label and returns its new ID.
func (m *MockLabelRepository) Create(_ context.Context, label *domain.Label) (int, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	c := label.Clone()
	c.ID = m.NextID
	m.NextID++
	m.Items[c.ID] = c
	return c.ID, nil
}

// FindAll returns copies of every label ordered by normalized name.
func (m *MockLabelRepository) FindAll(_ context.Context) ([]*domain.Label, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	out := make([]*domain.Label, 0, len(m.Items))
	for _, l := range m.Items {
		out = append(out, l.Clone())
	}
	return domain.Sort(out, domain.SortNameAsc), nil
}

// FindOne returns a copy of the label or nil.
func (m *MockLabelRepository) FindOne(_ context.Context, id int) (*domain.Label, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	if l, ok := m.Items[id]; ok {
		return l.Clone(), nil
	}
	return nil, nil
}

// Update overwrites an existing label.
func (m *MockLabelRepository) Update(_ context.Context, label *domain.Label) (int, error) {
	if m.UpdateErr != nil {
		return 0, m.UpdateErr
	}
	if _, ok := m.Items[label.ID]; !ok || m.ShortUpdate {
		return 0, nil
	}
	m.Items[label.ID] = label.Clone()
	return 1, nil
}

// Remove deletes labels and their refs.
func (m *MockLabelRepository) Remove(_ context.Context, ids ...int) (int, error) {
	if m.RemoveErr != nil {
		return 0, m.RemoveErr
	}
	n := 0
	for _, id := range ids {
		if _, ok := m.Items[id]; !ok {
			continue
		}
		delete(m.Items, id)
		n++
		m.store.Refs.dropWhere(func(r domain.BoardLabelRef) bool { return r.LabelID == id })
	}
	return m.short(m.ShortRemove, n), nil
}

// MockBoardLabelRefRepository is a test double for domain.BoardLabelRefRepository.
// Rows maps each ref to the sequence number of the insert that created it,
// so tests can tell an untouched row from a re-inserted one.
type MockBoardLabelRefRepository struct {
	Faults
	Rows     map[domain.BoardLabelRef]int
	Inserted []domain.BoardLabelRef // Refs passed to Create, in order
	Deleted  []domain.BoardLabelRef // Refs passed to Remove, in order
	seq      int
}

// Ensure MockBoardLabelRefRepository implements domain.BoardLabelRefRepository.
var _ domain.BoardLabelRefRepository = (*MockBoardLabelRefRepository)(nil)

// Create inserts refs, ignoring pairs that already exist.
func (m *MockBoardLabelRefRepository) Create(_ context.Context, refs ...domain.BoardLabelRef) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Inserted = append(m.Inserted, refs...)
	for _, r := range refs {
		if _, ok := m.Rows[r]; ok {
			continue
		}
		m.seq++
		m.Rows[r] = m.seq
	}
	return nil
}

// FindAllByBoard returns the refs of one board ordered by label ID.
func (m *MockBoardLabelRefRepository) FindAllByBoard(_ context.Context, boardID int) ([]domain.BoardLabelRef, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	var out []domain.BoardLabelRef
	for r := range m.Rows {
		if r.BoardID == boardID {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b domain.BoardLabelRef) int { return a.LabelID - b.LabelID })
	return out, nil
}

// Remove deletes refs and counts the ones that existed.
func (m *MockBoardLabelRefRepository) Remove(_ context.Context, refs ...domain.BoardLabelRef) (int, error) {
	if m.RemoveErr != nil {
		return 0, m.RemoveErr
	}
	m.Deleted = append(m.Deleted, refs...)
	n := 0
	for _, r := range refs {
		if _, ok := m.Rows[r]; ok {
			delete(m.Rows, r)
			n++
		}
	}
	return m.short(m.ShortRemove, n), nil
}

func (m *MockBoardLabelRefRepository) dropWhere(match func(domain.BoardLabelRef) bool) {
	for r := range m.Rows {
		if match(r) {
			delete(m.Rows, r)
		}
	}
}

// MockTaskRepository is a test double for domain.TaskRepository.
type MockTaskRepository struct {
	Faults
	store   *MockStore
	Items   map[int]*domain.Task
	Updated [][]int // IDs per Update call
	NextID  int
}

// Ensure MockTaskRepository implements domain.TaskRepository.
var _ domain.TaskRepository = (*MockTaskRepository)(nil)

// Create stores a copy of the task and returns its new ID.
// Like the foreign key in SQLite it fails with NotFound when the board is gone.
func (m *MockTaskRepository) Create(_ context.Context, task *domain.Task) (int, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	if _, ok := m.store.Boards.Items[task.BoardID]; !ok {
		return 0, domain.NotFound("insert task", "board", task.BoardID)
	}
	c := task.Clone()
	c.ID = m.NextID
	m.NextID++
	m.Items[c.ID] = c
	return c.ID, nil
}

// FindByBoard returns copies of a board's tasks ordered by ID.
func (m *MockTaskRepository) FindByBoard(_ context.Context, boardID int) ([]*domain.Task, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	var out []*domain.Task
	for _, t := range m.Items {
		if t.BoardID == boardID {
			out = append(out, t.Clone())
		}
	}
	slices.SortFunc(out, func(a, b *domain.Task) int { return a.ID - b.ID })
	return out, nil
}

// FindOne returns a copy of the task or nil.
func (m *MockTaskRepository) FindOne(_ context.Context, id int) (*domain.Task, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	if t, ok := m.Items[id]; ok {
		return t.Clone(), nil
	}
	return nil, nil
}

// Update overwrites tasks only if all of them exist.
func (m *MockTaskRepository) Update(_ context.Context, tasks ...*domain.Task) (int, error) {
	if m.UpdateErr != nil {
		return 0, m.UpdateErr
	}
	ids, n := updateAll(m.Items, tasks, m.ShortUpdate, (*domain.Task).OrderID, (*domain.Task).Clone)
	m.Updated = append(m.Updated, ids)
	return n, nil
}

// Remove deletes tasks and their subtasks.
func (m *MockTaskRepository) Remove(_ context.Context, ids ...int) (int, error) {
	if m.RemoveErr != nil {
		return 0, m.RemoveErr
	}
	return m.short(m.ShortRemove, m.cascade(ids)), nil
}

func (m *MockTaskRepository) cascade(ids []int) int {
	n := 0
	for _, id := range ids {
		if _, ok := m.Items[id]; !ok {
			continue
		}
		delete(m.Items, id)
		n++
		for sid, st := range m.store.Subtasks.Items {
			if st.TaskID == id {
				delete(m.store.Subtasks.Items, sid)
			}
		}
	}
	return n
}

// MockSubtaskRepository is a test double for domain.SubtaskRepository.
type MockSubtaskRepository struct {
	Faults
	store   *MockStore
	Items   map[int]*domain.Subtask
	Updated [][]int // IDs per Update call
	NextID  int
}

// Ensure MockSubtaskRepository implements domain.SubtaskRepository.
var _ domain.SubtaskRepository = (*MockSubtaskRepository)(nil)

// Create stores a copy of the subtask and returns its new ID.
// It fails with NotFound when the task is gone.
func (m *MockSubtaskRepository) Create(_ context.Context, subtask *domain.Subtask) (int, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	if _, ok := m.store.Tasks.Items[subtask.TaskID]; !ok {
		return 0, domain.NotFound("insert subtask", "task", subtask.TaskID)
	}
	c := subtask.Clone()
	c.ID = m.NextID
	m.NextID++
	m.Items[c.ID] = c
	return c.ID, nil
}

// FindByTask returns copies of a task's subtasks ordered by ID.
func (m *MockSubtaskRepository) FindByTask(_ context.Context, taskID int) ([]*domain.Subtask, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	var out []*domain.Subtask
	for _, s := range m.Items {
		if s.TaskID == taskID {
			out = append(out, s.Clone())
		}
	}
	slices.SortFunc(out, func(a, b *domain.Subtask) int { return a.ID - b.ID })
	return out, nil
}

// FindOne returns a copy of the subtask or nil.
func (m *MockSubtaskRepository) FindOne(_ context.Context, id int) (*domain.Subtask, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	if s, ok := m.Items[id]; ok {
		return s.Clone(), nil
	}
	return nil, nil
}

// Update overwrites subtasks only if all of them exist.
func (m *MockSubtaskRepository) Update(_ context.Context, subtasks ...*domain.Subtask) (int, error) {
	if m.UpdateErr != nil {
		return 0, m.UpdateErr
	}
	ids, n := updateAll(m.Items, subtasks, m.ShortUpdate, (*domain.Subtask).OrderID, (*domain.Subtask).Clone)
	m.Updated = append(m.Updated, ids)
	return n, nil
}

// Remove deletes subtasks.
func (m *MockSubtaskRepository) Remove(_ context.Context, ids ...int) (int, error) {
	if m.RemoveErr != nil {
		return 0, m.RemoveErr
	}
	n := 0
	for _, id := range ids {
		if _, ok := m.Items[id]; ok {
			delete(m.Items, id)
			n++
		}
	}
	return m.short(m.ShortRemove, n), nil
}

// MockChangeFeed is a test double for domain.ChangeFeed and domain.ChangePublisher.
type MockChangeFeed struct {
	subs []*mockSub
	mu   sync.Mutex
	seq  int64
}

type mockSub struct {
	ch     chan domain.Change
	topics []domain.Topic
}

// Subscribe returns a buffered channel that is closed when ctx is done.
func (m *MockChangeFeed) Subscribe(ctx context.Context, topics ...domain.Topic) <-chan domain.Change {
	sub := &mockSub{ch: make(chan domain.Change, 16), topics: topics}
	m.mu.Lock()
	m.subs = append(m.subs, sub)
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		m.subs = slices.DeleteFunc(m.subs, func(s *mockSub) bool { return s == sub })
		close(sub.ch)
	}()
	return sub.ch
}

// Publish delivers a change to matching subscribers without blocking.
func (m *MockChangeFeed) Publish(topic domain.Topic) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	for _, s := range m.subs {
		if len(s.topics) > 0 && !slices.Contains(s.topics, topic) {
			continue
		}
		select {
		case s.ch <- domain.Change{Topic: topic, Sequence: m.seq}:
		default:
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (m *MockChangeFeed) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

// LogEntry is one line recorded by RecordingLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
	BoardID  int
}

// RecordingLogger is a domain.Logger that keeps entries in memory.
type RecordingLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

// Ensure RecordingLogger implements domain.Logger.
var _ domain.Logger = (*RecordingLogger)(nil)

func (l *RecordingLogger) Info(boardID int, category, msg string) {
	l.add("INFO", boardID, category, msg)
}

func (l *RecordingLogger) Debug(boardID int, category, msg string) {
	l.add("DEBUG", boardID, category, msg)
}

func (l *RecordingLogger) Warn(boardID int, category, msg string) {
	l.add("WARN", boardID, category, msg)
}

func (l *RecordingLogger) Error(boardID int, category, msg string) {
	l.add("ERROR", boardID, category, msg)
}

func (l *RecordingLogger) add(level string, boardID int, category, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, BoardID: boardID, Category: category, Msg: msg})
}

// Categories returns the category of every entry in order.
func (l *RecordingLogger) Categories() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		out[i] = e.Category
	}
	return out
}

// MockSettingsLoader is a test double for domain.SettingsLoader.
type MockSettingsLoader struct {
	Settings *domain.Settings
	LoadErr  error
}

// Load returns the configured settings or defaults.
func (m *MockSettingsLoader) Load() (*domain.Settings, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Settings == nil {
		return domain.NewDefaultSettings(), nil
	}
	return m.Settings, nil
}

// MockSettingsManager is a test double for domain.SettingsManager.
type MockSettingsManager struct {
	Values  map[string]string
	SetErr  error
	PathStr string
}

// NewMockSettingsManager creates a MockSettingsManager with an empty value map.
func NewMockSettingsManager() *MockSettingsManager {
	return &MockSettingsManager{Values: make(map[string]string), PathStr: "/tmp/finito/config.toml"}
}

// Set records the value.
func (m *MockSettingsManager) Set(key, value string) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Values[key] = value
	return nil
}

// Path returns the configured path.
func (m *MockSettingsManager) Path() string {
	return m.PathStr
}
