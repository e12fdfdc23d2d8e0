package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/hamilton-i7/finito-sub001/internal/app"
	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase"
	"github.com/spf13/cobra"
)

// newTaskCommand creates the task command and its subcommands.
func newTaskCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t"},
		Short:   "Manage the tasks of a board",
	}

	cmd.AddCommand(
		newTaskAddCommand(c),
		newTaskEditCommand(c),
		newTaskListCommand(c),
		newTaskShowCommand(c),
		newTaskToggleCommand(c, "done", "Mark a task completed", true),
		newTaskToggleCommand(c, "undone", "Reopen a completed task", false),
		newTaskReorderCommand(c),
		newTaskDeleteCommand(c),
	)
	return cmd
}

// scheduleFlags parses --date and --time.
type scheduleFlags struct {
	Date string
	Time string
}

func (f scheduleFlags) parse() (*time.Time, *domain.TimeOfDay, error) {
	var date *time.Time
	var tod *domain.TimeOfDay
	if f.Date != "" {
		d, err := domain.ParseDate(f.Date)
		if err != nil {
			return nil, nil, err
		}
		date = &d
	}
	if f.Time != "" {
		t, err := domain.ParseTimeOfDay(f.Time)
		if err != nil {
			return nil, nil, err
		}
		tod = &t
	}
	return date, tod, nil
}

func parsePriorityFlag(s string) (*domain.Priority, error) {
	if s == "" {
		return nil, nil
	}
	p, err := domain.ParsePriority(s)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func newTaskAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Schedule scheduleFlags
		Priority string
	}

	cmd := &cobra.Command{
		Use:   "add <board-id> <name>",
		Short: "Add a task at the end of a board's open lane",
		Long: `Add a task at the end of a board's open lane.

Examples:
  finito task add 1 "Buy milk"
  finito task add 1 "Dentist" --date 2026-03-20 --time 14:30 --priority urgent`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := parseID("board", args[0])
			if err != nil {
				return err
			}
			date, tod, err := opts.Schedule.parse()
			if err != nil {
				return err
			}
			priority, err := parsePriorityFlag(opts.Priority)
			if err != nil {
				return err
			}

			out, err := c.CreateTaskUseCase().Execute(cmd.Context(), usecase.CreateTaskInput{
				BoardID:  boardID,
				Name:     args[1],
				Date:     date,
				Time:     tod,
				Priority: priority,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d %s\n", out.Task.ID, out.Task.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Schedule.Date, "date", "", "Scheduled date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Schedule.Time, "time", "", "Scheduled time (HH:MM, requires --date)")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "Priority: low, medium or urgent")
	return cmd
}

func newTaskEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Name          string
		Schedule      scheduleFlags
		Priority      string
		ClearSchedule bool
		ClearPriority bool
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename a task or change its schedule or priority",
		Long: `Rename a task or change its schedule or priority.

Only the flags given are changed. --date and --time replace the whole schedule.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("task", args[0])
			if err != nil {
				return err
			}
			in := usecase.UpdateTaskInput{TaskID: id, ClearPriority: opts.ClearPriority}
			if cmd.Flags().Changed("name") {
				in.Name = &opts.Name
			}
			if cmd.Flags().Changed("date") || cmd.Flags().Changed("time") || opts.ClearSchedule {
				date, tod, err := opts.Schedule.parse()
				if err != nil {
					return err
				}
				in.Schedule = &usecase.ScheduleInput{Date: date, Time: tod}
			}
			if in.Priority, err = parsePriorityFlag(opts.Priority); err != nil {
				return err
			}

			out, err := c.UpdateTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task #%d %s\n", out.Task.ID, out.Task.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "New task name")
	cmd.Flags().StringVar(&opts.Schedule.Date, "date", "", "Scheduled date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Schedule.Time, "time", "", "Scheduled time (HH:MM, requires --date)")
	cmd.Flags().BoolVar(&opts.ClearSchedule, "clear-schedule", false, "Remove the date and time")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "Priority: low, medium or urgent")
	cmd.Flags().BoolVar(&opts.ClearPriority, "clear-priority", false, "Remove the priority")
	cmd.MarkFlagsMutuallyExclusive("priority", "clear-priority")
	cmd.MarkFlagsMutuallyExclusive("date", "clear-schedule")
	return cmd
}

func newTaskListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Sort      string
		Query     string
		Completed bool
		Watch     bool
	}

	cmd := &cobra.Command{
		Use:     "list <board-id>",
		Aliases: []string{"ls"},
		Short:   "List the tasks of a board",
		Long: `List the open and completed lanes of a board.

--completed overrides [tasks] show_completed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := parseID("board", args[0])
			if err != nil {
				return err
			}
			in := usecase.ListTasksInput{
				BoardID: boardID,
				Sort:    domain.SortKey(opts.Sort),
				Query:   opts.Query,
			}
			if cmd.Flags().Changed("completed") {
				in.ShowCompleted = &opts.Completed
			}

			uc := c.ListTasksUseCase()
			if opts.Watch {
				stream, err := uc.Watch(cmd.Context(), in)
				if err != nil {
					return err
				}
				return streamSnapshots(cmd, stream, printTasks)
			}
			out, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Sort, "sort", "", "Sort key")
	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "Only tasks whose name contains this text")
	cmd.Flags().BoolVar(&opts.Completed, "completed", false, "Show the completed lane")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Keep printing the list as it changes")
	return cmd
}

func newTaskShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task with its subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("task", args[0])
			if err != nil {
				return err
			}
			out, err := c.GetTaskUseCase().Execute(cmd.Context(), usecase.GetTaskInput{TaskID: id})
			if err != nil {
				return err
			}
			printTaskDetail(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newTaskToggleCommand(c *app.Container, use, short string, completed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("task", args[0])
			if err != nil {
				return err
			}
			out, err := c.ToggleTaskUseCase().Execute(cmd.Context(), usecase.ToggleTaskInput{TaskID: id, Completed: completed})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !out.Changed {
				_, _ = fmt.Fprintf(w, "Task #%d is already %s\n", out.Task.ID, laneWord(out.Task.Lane()))
				return nil
			}
			_, _ = fmt.Fprintf(w, "%s #%d %s\n", checkbox(out.Task.Completed), out.Task.ID, out.Task.Name)
			return nil
		},
	}
}

func laneWord(l domain.Lane) string {
	if l == domain.LaneCompleted {
		return "completed"
	}
	return "open"
}

// parseReorderArgs parses the <from> <to> index pair.
func parseReorderArgs(args []string) (from, to int, err error) {
	if from, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, fmt.Errorf("invalid index %q", args[0])
	}
	if to, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, fmt.Errorf("invalid index %q", args[1])
	}
	return from, to, nil
}

func newTaskReorderCommand(c *app.Container) *cobra.Command {
	var lane string

	cmd := &cobra.Command{
		Use:   "reorder <board-id> <from> <to>",
		Short: "Move a task within a lane of its board",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := parseID("board", args[0])
			if err != nil {
				return err
			}
			from, to, err := parseReorderArgs(args[1:])
			if err != nil {
				return err
			}
			l, err := domain.ParseLane(lane)
			if err != nil {
				return err
			}
			out, err := c.ReorderTasksUseCase().Execute(cmd.Context(), usecase.ReorderTasksInput{
				BoardID: boardID, Lane: l, From: from, To: to,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reordered %d tasks\n", out.Changed)
			return nil
		},
	}

	cmd.Flags().StringVar(&lane, "lane", string(domain.LaneOpen), "Lane: open or completed")
	return cmd
}

func newTaskDeleteCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete tasks with their subtasks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs("task", args)
			if err != nil {
				return err
			}
			out, err := c.DeleteTasksUseCase().Execute(cmd.Context(), usecase.DeleteTasksInput{TaskIDs: ids})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted tasks %s\n", joinIDs(out.Removed))
			return nil
		},
	}
}
