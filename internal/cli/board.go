package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/hamilton-i7/finito-sub001/internal/app"
	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase"
	"github.com/spf13/cobra"
)

// newBoardCommand creates the board command and its subcommands.
func newBoardCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "board",
		Aliases: []string{"b"},
		Short:   "Manage boards",
	}

	cmd.AddCommand(
		newBoardCreateCommand(c),
		newBoardEditCommand(c),
		newBoardListCommand(c),
		newBoardShowCommand(c),
		newBoardReorderCommand(c),
		newBoardDeleteCommand(c),
		newBoardTransitionCommand("archive", "Archive an active board", "Archived", func() boardTransitioner {
			return c.ArchiveBoardUseCase()
		}),
		newBoardTransitionCommand("unarchive", "Return an archived board to the active lane", "Unarchived", func() boardTransitioner {
			return c.UnarchiveBoardUseCase()
		}),
		newBoardTransitionCommand("trash", "Move an active or archived board to the trash", "Trashed", func() boardTransitioner {
			return c.TrashBoardUseCase()
		}),
		newBoardTransitionCommand("restore", "Restore a trashed board to the active lane", "Restored", func() boardTransitioner {
			return c.RestoreBoardUseCase()
		}),
	)
	return cmd
}

func newBoardCreateCommand(c *app.Container) *cobra.Command {
	var labelIDs []int

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a board at the end of the active lane",
		Long: `Create a board at the end of the active lane.

Examples:
  finito board create "Groceries"
  finito board create "Trip" --label 2 --label 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.CreateBoardUseCase().Execute(cmd.Context(), usecase.CreateBoardInput{
				Name:     args[0],
				LabelIDs: labelIDs,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created board #%d %s\n", out.Board.ID, out.Board.Name)
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&labelIDs, "label", nil, "Label ID to attach (can specify multiple)")
	return cmd
}

func newBoardEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Name     string
		State    string
		LabelIDs []int
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename a board, replace its labels or move it to another lane",
		Long: `Rename a board, replace its labels or move it to another lane.

Only the flags given are changed. --labels replaces the whole label set;
pass --labels "" to detach every label.

Examples:
  finito board edit 3 --name "Weekly groceries"
  finito board edit 3 --labels 1,4
  finito board edit 3 --state archived`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("board", args[0])
			if err != nil {
				return err
			}
			in := usecase.UpdateBoardInput{BoardID: id}
			if cmd.Flags().Changed("name") {
				in.Name = &opts.Name
			}
			if cmd.Flags().Changed("labels") {
				in.LabelIDs = &opts.LabelIDs
			}
			if cmd.Flags().Changed("state") {
				state, err := domain.ParseBoardState(opts.State)
				if err != nil {
					return err
				}
				in.State = &state
			}

			out, err := c.UpdateBoardUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated board #%d %s (%s)\n",
				out.Board.ID, out.Board.Name, out.Board.State.Display())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "New board name")
	cmd.Flags().IntSliceVar(&opts.LabelIDs, "labels", nil, "Replace labels with these IDs")
	cmd.Flags().StringVar(&opts.State, "state", "", "Target lane: active, archived or trash")
	return cmd
}

func newBoardListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		State    string
		Sort     string
		Query    string
		LabelIDs []int
		Watch    bool
		Grid     bool
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the boards of one lane",
		Long: `List the boards of one lane (default: active).

Sort keys: name_asc, name_desc, newest, oldest, custom.
The default comes from [boards] sort_order.

With --watch the list is printed again after every change until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := usecase.ListBoardsInput{
				Sort:     domain.SortKey(opts.Sort),
				Query:    opts.Query,
				LabelIDs: opts.LabelIDs,
			}
			if opts.State != "" {
				state, err := domain.ParseBoardState(opts.State)
				if err != nil {
					return err
				}
				in.State = state
			}
			render := func(w io.Writer, out *usecase.ListBoardsOutput) {
				if opts.Grid || (out.GridLayout && !cmd.Flags().Changed("grid")) {
					printBoardGrid(w, out.Boards)
					return
				}
				printBoards(w, out.Boards)
			}

			uc := c.ListBoardsUseCase()
			if opts.Watch {
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

	cmd.Flags().StringVar(&opts.State, "state", "", "Lane: active, archived or trash")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "Sort key")
	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "Only boards whose name contains this text")
	cmd.Flags().IntSliceVar(&opts.LabelIDs, "label", nil, "Only boards with any of these label IDs")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Keep printing the list as it changes")
	cmd.Flags().BoolVar(&opts.Grid, "grid", false, "Show boards as a grid")
	return cmd
}

func newBoardShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("board", args[0])
			if err != nil {
				return err
			}
			out, err := c.GetBoardUseCase().Execute(cmd.Context(), usecase.GetBoardInput{BoardID: id})
			if err != nil {
				return err
			}
			printBoardDetail(cmd.OutOrStdout(), out.Board)
			return nil
		},
	}
}

func newBoardReorderCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <from> <to>",
		Short: "Move the active board at index <from> to index <to>",
		Long: `Move the active board at index <from> to index <to>.

Indexes are zero-based positions in the active lane. <to> is clamped to the lane.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[1])
			}
			out, err := c.ReorderBoardsUseCase().Execute(cmd.Context(), usecase.ReorderBoardsInput{From: from, To: to})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reordered %d boards\n", out.Changed)
			return nil
		},
	}
}

func newBoardDeleteCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a trashed board forever",
		Long: `Delete a trashed board forever, with its tasks and subtasks.

Only boards in the trash can be deleted. Use 'finito board trash' first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("board", args[0])
			if err != nil {
				return err
			}
			out, err := c.DeleteBoardUseCase().Execute(cmd.Context(), usecase.DeleteBoardInput{BoardID: id})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted board #%d %s\n", out.Board.ID, out.Board.Name)
			return nil
		},
	}
}

// boardTransitioner is satisfied by the single-step lifecycle use cases.
type boardTransitioner interface {
	Execute(ctx context.Context, in usecase.BoardTransitionInput) (*usecase.BoardTransitionOutput, error)
}

func newBoardTransitionCommand(use, short, verb string, newUseCase func() boardTransitioner) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("board", args[0])
			if err != nil {
				return err
			}
			out, err := newUseCase().Execute(cmd.Context(), usecase.BoardTransitionInput{BoardID: id})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s board #%d %s\n", verb, out.Board.ID, out.Board.Name)
			return nil
		},
	}
}
