package cli

import (
	"fmt"
	"io"

	"github.com/hamilton-i7/finito-sub001/internal/app"
	"github.com/hamilton-i7/finito-sub001/internal/usecase"
	"github.com/spf13/cobra"
)

// newLabelCommand creates the label command and its subcommands.
func newLabelCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Manage the labels boards can carry",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.CreateLabelUseCase().Execute(cmd.Context(), usecase.CreateLabelInput{Name: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created label #%d %s\n", out.Label.ID, out.Label.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a label",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("label", args[0])
			if err != nil {
				return err
			}
			out, err := c.UpdateLabelUseCase().Execute(cmd.Context(), usecase.UpdateLabelInput{LabelID: id, Name: args[1]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Renamed label #%d %s -> %s\n", out.Label.ID, out.Previous.Name, out.Label.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete labels and detach them from every board",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs("label", args)
			if err != nil {
				return err
			}
			out, err := c.DeleteLabelsUseCase().Execute(cmd.Context(), usecase.DeleteLabelsInput{LabelIDs: ids})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted labels %s\n", joinIDs(out.Removed))
			return nil
		},
	})

	var query string
	var watchFlag bool
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List labels by name",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := usecase.ListLabelsInput{Query: query}
			uc := c.ListLabelsUseCase()
			if watchFlag {
				return streamSnapshots(cmd, uc.Watch(cmd.Context(), in), func(w io.Writer, out *usecase.ListLabelsOutput) {
					printLabels(w, out.Labels)
				})
			}
			out, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			printLabels(cmd.OutOrStdout(), out.Labels)
			return nil
		},
	}
	listCmd.Flags().StringVarP(&query, "query", "q", "", "Only labels whose name contains this text")
	listCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Keep printing the list as it changes")
	cmd.AddCommand(listCmd)

	return cmd
}
