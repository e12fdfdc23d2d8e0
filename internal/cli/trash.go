package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/hamilton-i7/finito-sub001/internal/app"
	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase"
	"github.com/spf13/cobra"
)

// newTrashCommand creates the trash command and its subcommands.
func newTrashCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash",
		Short: "Inspect and empty the trash",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List trashed boards, most recent first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListBoardsUseCase().Execute(cmd.Context(), usecase.ListBoardsInput{State: domain.BoardDeleted, Sort: domain.SortCustom})
			if err != nil {
				return err
			}
			printBoards(cmd.OutOrStdout(), out.Boards)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "empty",
		Short: "Delete every trashed board forever",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.EmptyTrashUseCase().Execute(cmd.Context(), usecase.EmptyTrashInput{})
			if err != nil {
				return err
			}
			if len(out.Removed) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Trash is already empty")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d boards: %s\n", len(out.Removed), joinIDs(out.Removed))
			return nil
		},
	})

	cmd.AddCommand(newTrashSweepCommand(c))
	return cmd
}

func newTrashSweepCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Interval time.Duration
		Watch    bool
	}

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Delete trashed boards older than the retention window",
		Long: `Delete trashed boards older than the retention window.

One sweep removes at most [trash] sweep_batch_size boards, oldest first.
With --watch the sweep repeats every --interval (default: [trash] sweep_interval)
until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if !opts.Watch {
				out, err := c.SweepTrashUseCase().Execute(cmd.Context(), usecase.SweepTrashInput{})
				if err != nil {
					return err
				}
				printSweep(w, out)
				return nil
			}

			sweeper := c.Sweeper(opts.Interval, func(out *usecase.SweepTrashOutput) {
				printSweep(w, out)
			})
			_, _ = fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("Sweeping every %s (Ctrl-C to stop)", sweeper.Interval())))
			return sweeper.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Keep sweeping on an interval")
	cmd.Flags().DurationVar(&opts.Interval, "interval", 0, "Time between sweeps with --watch")
	return cmd
}

func printSweep(w io.Writer, out *usecase.SweepTrashOutput) {
	if len(out.Candidates) == 0 {
		_, _ = fmt.Fprintln(w, "Nothing to sweep")
		return
	}
	_, _ = fmt.Fprintf(w, "Swept %d of %d expired boards", len(out.Removed), len(out.Candidates))
	if len(out.Removed) > 0 {
		_, _ = fmt.Fprintf(w, ": %s", joinIDs(out.Removed))
	}
	_, _ = fmt.Fprintln(w)
	if out.Remaining > 0 {
		_, _ = fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d left for the next sweep", out.Remaining)))
	}
}
