package cli

import (
	"fmt"
	"io"

	"github.com/hamilton-i7/finito-sub001/internal/app"
	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase"
	"github.com/spf13/cobra"
)

// newSubtaskCommand creates the subtask command and its subcommands.
func newSubtaskCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subtask",
		Aliases: []string{"st"},
		Short:   "Manage the subtasks of a task",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <task-id> <name>",
		Short: "Add a subtask at the end of a task's open lane",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID("task", args[0])
			if err != nil {
				return err
			}
			out, err := c.CreateSubtaskUseCase().Execute(cmd.Context(), usecase.CreateSubtaskInput{TaskID: taskID, Name: args[1]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created subtask #%d %s\n", out.Subtask.ID, out.Subtask.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a subtask",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("subtask", args[0])
			if err != nil {
				return err
			}
			out, err := c.UpdateSubtaskUseCase().Execute(cmd.Context(), usecase.UpdateSubtaskInput{SubtaskID: id, Name: args[1]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Renamed subtask #%d %s -> %s\n", out.Subtask.ID, out.Previous.Name, out.Subtask.Name)
			return nil
		},
	})

	cmd.AddCommand(
		newSubtaskToggleCommand(c, "done", "Mark subtasks completed", true),
		newSubtaskToggleCommand(c, "undone", "Reopen completed subtasks", false),
		newSubtaskListCommand(c),
		newSubtaskReorderCommand(c),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete subtasks of one task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs("subtask", args)
			if err != nil {
				return err
			}
			out, err := c.DeleteSubtasksUseCase().Execute(cmd.Context(), usecase.DeleteSubtasksInput{SubtaskIDs: ids})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted subtasks %s of task #%d\n", joinIDs(out.Removed), out.TaskID)
			return nil
		},
	})

	return cmd
}

func newSubtaskToggleCommand(c *app.Container, use, short string, completed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>...",
		Short: short,
		Long:  short + ". Every subtask must belong to the same task.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs("subtask", args)
			if err != nil {
				return err
			}
			out, err := c.ToggleSubtasksUseCase().Execute(cmd.Context(), usecase.ToggleSubtasksInput{
				SubtaskIDs: ids,
				Completed:  completed,
			})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, st := range out.Subtasks {
				_, _ = fmt.Fprintf(w, "%s #%d %s\n", checkbox(st.Completed), st.ID, st.Name)
			}
			_, _ = fmt.Fprintf(w, "%d changed\n", out.Changed)
			return nil
		},
	}
}

func newSubtaskListCommand(c *app.Container) *cobra.Command {
	var watchFlag bool

	cmd := &cobra.Command{
		Use:     "list <task-id>",
		Aliases: []string{"ls"},
		Short:   "List the subtasks of a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID("task", args[0])
			if err != nil {
				return err
			}
			in := usecase.ListSubtasksInput{TaskID: taskID}
			render := func(w io.Writer, out *usecase.ListSubtasksOutput) {
				printSubtasks(w, out.Open, out.Completed)
			}

			uc := c.ListSubtasksUseCase()
			if watchFlag {
				stream, err := uc.Watch(cmd.Context(), in)
				if err != nil {
					return err
				}
				return streamSnapshots(cmd, stream, render)
			}
			out, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			render(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Keep printing the list as it changes")
	return cmd
}

func newSubtaskReorderCommand(c *app.Container) *cobra.Command {
	var lane string

	cmd := &cobra.Command{
		Use:   "reorder <task-id> <from> <to>",
		Short: "Move a subtask within a lane of its task",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID("task", args[0])
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
			out, err := c.ReorderSubtasksUseCase().Execute(cmd.Context(), usecase.ReorderSubtasksInput{
				TaskID: taskID, Lane: l, From: from, To: to,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reordered %d subtasks\n", out.Changed)
			return nil
		},
	}

	cmd.Flags().StringVar(&lane, "lane", string(domain.LaneOpen), "Lane: open or completed")
	return cmd
}
