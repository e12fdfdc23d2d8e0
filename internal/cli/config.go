package cli

import (
	"fmt"
	"strings"

	"github.com/hamilton-i7/finito-sub001/internal/app"
	"github.com/hamilton-i7/finito-sub001/internal/usecase"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// newConfigCommand creates the config command and its subcommands.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and change settings",
		Long: `Show and change settings.

Settings live in a TOML file in the data directory. Keys not present in
the file keep their default values.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowSettingsUseCase().Execute(cmd.Context(), usecase.ShowSettingsInput{})
			if err != nil {
				return err
			}
			content, err := toml.Marshal(out.Settings)
			if err != nil {
				return fmt.Errorf("encode settings: %w", err)
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, mutedStyle.Render("# "+out.Path))
			for _, warning := range out.Warnings {
				_, _ = fmt.Fprintln(w, warnStyle.Render("# warning: "+warning))
			}
			_, _ = fmt.Fprint(w, string(content))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write one settings key",
		Long: `Write one settings key.

Run "finito config keys" to list the recognized keys.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.SetSettingUseCase().Execute(cmd.Context(), usecase.SetSettingInput{Key: args[0], Value: args[1]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", strings.ToLower(args[0]), args[1], out.Path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "keys",
		Short: "List the recognized settings keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, key := range usecase.SettingKeys() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	})

	return cmd
}
