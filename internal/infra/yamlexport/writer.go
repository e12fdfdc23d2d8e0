// Package yamlexport encodes board snapshots as a YAML document.
package yamlexport

import (
	"fmt"
	"io"
	"time"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"gopkg.in/yaml.v3"
)

// FormatVersion is written at the top of every export.
const FormatVersion = 1

// Ensure Writer implements domain.SnapshotWriter.
var _ domain.SnapshotWriter = (*Writer)(nil)

// Writer writes snapshots as YAML.
type Writer struct {
	clock domain.Clock
}

// NewWriter creates a Writer stamping exports with clock.
func NewWriter(clock domain.Clock) *Writer {
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &Writer{clock: clock}
}

// document is the top-level YAML shape.
type document struct {
	ExportedAt time.Time  `yaml:"exported_at"`
	Boards     []boardDoc `yaml:"boards"`
	Version    int        `yaml:"version"`
}

type boardDoc struct {
	CreatedAt  time.Time  `yaml:"created_at"`
	ArchivedAt *time.Time `yaml:"archived_at,omitempty"`
	RemovedAt  *time.Time `yaml:"removed_at,omitempty"`
	Position   *int       `yaml:"position,omitempty"`
	Name       string     `yaml:"name"`
	State      string     `yaml:"state"`
	Labels     []string   `yaml:"labels,omitempty"`
	Tasks      []taskDoc  `yaml:"tasks,omitempty"`
	ID         int        `yaml:"id"`
}

type taskDoc struct {
	CreatedAt   time.Time    `yaml:"created_at"`
	CompletedAt *time.Time   `yaml:"completed_at,omitempty"`
	Position    *int         `yaml:"position,omitempty"`
	Name        string       `yaml:"name"`
	Date        string       `yaml:"date,omitempty"`
	Time        string       `yaml:"time,omitempty"`
	Priority    string       `yaml:"priority,omitempty"`
	Subtasks    []subtaskDoc `yaml:"subtasks,omitempty"`
	ID          int          `yaml:"id"`
	Completed   bool         `yaml:"completed"`
}

type subtaskDoc struct {
	Position  *int   `yaml:"position,omitempty"`
	Name      string `yaml:"name"`
	ID        int    `yaml:"id"`
	Completed bool   `yaml:"completed"`
}

// WriteSnapshots encodes snapshots in the order given.
func (wr *Writer) WriteSnapshots(w io.Writer, snapshots []domain.BoardSnapshot) error {
	doc := document{
		ExportedAt: wr.clock.Now().UTC(),
		Boards:     make([]boardDoc, 0, len(snapshots)),
		Version:    FormatVersion,
	}
	for _, snap := range snapshots {
		doc.Boards = append(doc.Boards, toBoardDoc(snap))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return enc.Close()
}

func toBoardDoc(snap domain.BoardSnapshot) boardDoc {
	b := snap.Board
	doc := boardDoc{
		CreatedAt:  b.CreatedAt,
		ArchivedAt: b.ArchivedAt,
		RemovedAt:  b.RemovedAt,
		Position:   b.LanePosition(),
		Name:       b.Name,
		State:      string(b.State),
		ID:         b.ID,
	}
	for _, l := range snap.Labels {
		doc.Labels = append(doc.Labels, l.Name)
	}
	for _, t := range snap.Tasks {
		doc.Tasks = append(doc.Tasks, toTaskDoc(t, snap.Subtasks[t.ID]))
	}
	return doc
}

func toTaskDoc(t *domain.Task, subtasks []*domain.Subtask) taskDoc {
	doc := taskDoc{
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
		Position:    t.LanePosition(),
		Name:        t.Name,
		ID:          t.ID,
		Completed:   t.Completed,
	}
	if t.Date != nil {
		doc.Date = t.Date.Format(domain.DateLayout)
	}
	if t.Time != nil {
		doc.Time = t.Time.String()
	}
	if t.Priority != nil {
		doc.Priority = t.Priority.String()
	}
	for _, st := range subtasks {
		doc.Subtasks = append(doc.Subtasks, subtaskDoc{
			Position:  st.LanePosition(),
			Name:      st.Name,
			ID:        st.ID,
			Completed: st.Completed,
		})
	}
	return doc
}
