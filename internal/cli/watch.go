package cli

import (
	"fmt"
	"io"

	"github.com/hamilton-i7/finito-sub001/internal/usecase"
	"github.com/spf13/cobra"
)

// streamSnapshots prints every snapshot until the stream closes.
// The stream closes when the command context is cancelled (Ctrl-C).
func streamSnapshots[T any](cmd *cobra.Command, stream <-chan usecase.Snapshot[T], render func(io.Writer, T)) error {
	w := cmd.OutOrStdout()
	first := true
	for snap := range stream {
		if snap.Err != nil {
			return snap.Err
		}
		if !first {
			_, _ = fmt.Fprintln(w, mutedStyle.Render("--- updated ---"))
		}
		first = false
		render(w, snap.Value)
	}
	return nil
}
