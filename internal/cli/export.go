package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hamilton-i7/finito-sub001/internal/app"
	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase"
	"github.com/spf13/cobra"
)

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Out    string
		States []string
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write boards with their tasks and subtasks as YAML",
		Long: `Write boards with their tasks and subtasks as YAML.

By default every board is exported to stdout. Use --state to limit the
export to some lanes and --out to write a file instead.`,
		Example: `  finito export
  finito export --state active --state archived --out boards.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			states := make([]domain.BoardState, 0, len(opts.States))
			for _, s := range opts.States {
				state, err := domain.ParseBoardState(s)
				if err != nil {
					return err
				}
				states = append(states, state)
			}

			var w io.Writer = cmd.OutOrStdout()
			if opts.Out != "" {
				f, err := os.Create(opts.Out)
				if err != nil {
					return fmt.Errorf("create %s: %w", opts.Out, err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			out, err := c.ExportBoardsUseCase().Execute(cmd.Context(), usecase.ExportBoardsInput{Out: w, States: states})
			if err != nil {
				return err
			}
			if opts.Out != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d boards and %d tasks to %s\n", out.Boards, out.Tasks, opts.Out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "File to write (default: stdout)")
	cmd.Flags().StringArrayVar(&opts.States, "state", nil, "Board state to export: active, archived, trash (repeatable)")
	return cmd
}
