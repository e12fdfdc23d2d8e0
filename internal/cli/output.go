package cli

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase"
)

// tableRow is one rendered row. Style applies to the whole padded line.
type tableRow struct {
	style lipgloss.Style
	cells []string
}

// renderTable aligns rows with tabwriter and styles each finished line,
// so escape codes never disturb column widths.
func renderTable(w io.Writer, header []string, rows []tableRow) {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		_, _ = fmt.Fprintln(tw, strings.Join(r.cells, "\t"))
	}
	_ = tw.Flush()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " ")
		switch {
		case i == 0:
			line = headerStyle.Render(line)
		default:
			line = rows[i-1].style.Render(line)
		}
		_, _ = fmt.Fprintln(w, line)
	}
}

// parseID parses a positive ID, accepting a leading #.
func parseID(entity, s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil {
		return 0, fmt.Errorf("invalid %s ID %q", entity, s)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s ID must be positive: %d", entity, id)
	}
	return id, nil
}

// parseIDs parses every argument as an ID.
func parseIDs(entity string, args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := parseID(entity, a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func labelNames(labels []*domain.Label) string {
	if len(labels) == 0 {
		return "-"
	}
	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = l.Name
	}
	return strings.Join(names, ", ")
}

func positionCell(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p)
}

func printBoards(w io.Writer, boards []*domain.BoardWithLabels) {
	if len(boards) == 0 {
		_, _ = fmt.Fprintln(w, mutedStyle.Render("No boards."))
		return
	}
	rows := make([]tableRow, len(boards))
	for i, b := range boards {
		rows[i] = tableRow{
			style: stateStyle(b.State),
			cells: []string{strconv.Itoa(b.ID), positionCell(b.LanePosition()), labelNames(b.Labels), b.Name},
		}
	}
	renderTable(w, []string{"ID", "POS", "LABELS", "NAME"}, rows)
}

// printBoardGrid prints board names in columns, honoring the grid layout setting.
func printBoardGrid(w io.Writer, boards []*domain.BoardWithLabels) {
	if len(boards) == 0 {
		_, _ = fmt.Fprintln(w, mutedStyle.Render("No boards."))
		return
	}
	const perRow = 3
	cells := make([]string, 0, len(boards))
	for _, b := range boards {
		cells = append(cells, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(24).
			Render(fmt.Sprintf("#%d %s", b.ID, b.Name)))
	}
	for start := 0; start < len(cells); start += perRow {
		end := min(start+perRow, len(cells))
		_, _ = fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, cells[start:end]...))
	}
}

func printBoardDetail(w io.Writer, b *domain.BoardWithLabels) {
	_, _ = fmt.Fprintf(w, "%s\n", headerStyle.Render(fmt.Sprintf("#%d %s", b.ID, b.Name)))
	_, _ = fmt.Fprintf(w, "State:    %s\n", b.State.Display())
	_, _ = fmt.Fprintf(w, "Labels:   %s\n", labelNames(b.Labels))
	_, _ = fmt.Fprintf(w, "Position: %s\n", positionCell(b.LanePosition()))
	_, _ = fmt.Fprintf(w, "Created:  %s\n", b.CreatedAt.Local().Format("2006-01-02 15:04"))
	if b.ArchivedAt != nil {
		_, _ = fmt.Fprintf(w, "Archived: %s\n", b.ArchivedAt.Local().Format("2006-01-02 15:04"))
	}
	if b.RemovedAt != nil {
		_, _ = fmt.Fprintf(w, "Trashed:  %s\n", b.RemovedAt.Local().Format("2006-01-02 15:04"))
	}
}

func printLabels(w io.Writer, labels []*domain.Label) {
	if len(labels) == 0 {
		_, _ = fmt.Fprintln(w, mutedStyle.Render("No labels."))
		return
	}
	rows := make([]tableRow, len(labels))
	for i, l := range labels {
		rows[i] = tableRow{style: plainStyle, cells: []string{strconv.Itoa(l.ID), l.Name}}
	}
	renderTable(w, []string{"ID", "NAME"}, rows)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func scheduleCell(t *domain.Task) string {
	if t.Date == nil {
		return "-"
	}
	s := t.Date.Format(domain.DateLayout)
	if t.Time != nil {
		s += " " + t.Time.String()
	}
	return s
}

func priorityCell(t *domain.Task) string {
	if t.Priority == nil {
		return "-"
	}
	return t.Priority.String()
}

func taskRows(tasks []*domain.Task) []tableRow {
	rows := make([]tableRow, len(tasks))
	for i, t := range tasks {
		style := plainStyle
		switch {
		case t.Completed:
			style = doneStyle
		case t.Priority != nil && *t.Priority == domain.PriorityUrgent:
			style = urgentStyle
		}
		rows[i] = tableRow{
			style: style,
			cells: []string{checkbox(t.Completed), strconv.Itoa(t.ID), priorityCell(t), scheduleCell(t), t.Name},
		}
	}
	return rows
}

func printTasks(w io.Writer, out *usecase.ListTasksOutput) {
	header := []string{"", "ID", "PRIORITY", "SCHEDULED", "NAME"}
	_, _ = fmt.Fprintln(w, sectionStyle.Render(fmt.Sprintf("Open (%d)", len(out.Open))))
	if len(out.Open) > 0 {
		renderTable(w, header, taskRows(out.Open))
	}
	if out.Completed == nil {
		return
	}
	_, _ = fmt.Fprintln(w, sectionStyle.Render(fmt.Sprintf("Completed (%d)", len(out.Completed))))
	if len(out.Completed) > 0 {
		renderTable(w, header, taskRows(out.Completed))
	}
}

func printTaskDetail(w io.Writer, out *usecase.GetTaskOutput) {
	t := out.Task
	_, _ = fmt.Fprintf(w, "%s\n", headerStyle.Render(fmt.Sprintf("%s #%d %s", checkbox(t.Completed), t.ID, t.Name)))
	_, _ = fmt.Fprintf(w, "Board:     #%d\n", t.BoardID)
	_, _ = fmt.Fprintf(w, "Priority:  %s\n", priorityCell(t))
	_, _ = fmt.Fprintf(w, "Scheduled: %s\n", scheduleCell(t))
	if t.CompletedAt != nil {
		_, _ = fmt.Fprintf(w, "Completed: %s\n", t.CompletedAt.Local().Format("2006-01-02 15:04"))
	}
	printSubtasks(w, out.Open, out.Completed)
}

func printSubtasks(w io.Writer, open, completed []*domain.Subtask) {
	if len(open)+len(completed) == 0 {
		_, _ = fmt.Fprintln(w, mutedStyle.Render("No subtasks."))
		return
	}
	rows := make([]tableRow, 0, len(open)+len(completed))
	for _, group := range [][]*domain.Subtask{open, completed} {
		for _, st := range group {
			style := plainStyle
			if st.Completed {
				style = doneStyle
			}
			rows = append(rows, tableRow{
				style: style,
				cells: []string{checkbox(st.Completed), strconv.Itoa(st.ID), st.Name},
			})
		}
	}
	renderTable(w, []string{"", "ID", "SUBTASK"}, rows)
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = "#" + strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
