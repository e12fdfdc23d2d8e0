// Package cli provides the command-line interface for finito.
package cli

import (
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/app"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupBoards   = "boards"
	groupTasks    = "tasks"
	groupSettings = "settings"
)

// NewRootCommand creates the root command for finito.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "finito",
		Short: "Personal kanban boards from the terminal",
		Long: `finito keeps boards of tasks and subtasks in a local SQLite database.

Boards move between three lanes: active, archived and trash.
Trashed boards are deleted for good once the retention window passes.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.Settings == nil {
				return nil
			}
			for _, w := range c.Settings.Warnings {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render("Warning: "+w))
			}
			return nil
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupBoards, Title: "Boards:"},
		&cobra.Group{ID: groupTasks, Title: "Tasks:"},
		&cobra.Group{ID: groupSettings, Title: "Settings and Maintenance:"},
	)

	boardCmd := newBoardCommand(c)
	boardCmd.GroupID = groupBoards
	labelCmd := newLabelCommand(c)
	labelCmd.GroupID = groupBoards
	trashCmd := newTrashCommand(c)
	trashCmd.GroupID = groupBoards

	taskCmd := newTaskCommand(c)
	taskCmd.GroupID = groupTasks
	subtaskCmd := newSubtaskCommand(c)
	subtaskCmd.GroupID = groupTasks

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSettings
	exportCmd := newExportCommand(c)
	exportCmd.GroupID = groupSettings

	root.AddCommand(
		boardCmd,
		labelCmd,
		trashCmd,
		taskCmd,
		subtaskCmd,
		configCmd,
		exportCmd,
	)

	return root
}
