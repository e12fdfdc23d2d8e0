package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanRunWithoutStore(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{
			name: "no args",
			args: nil,
			want: true,
		},
		{
			name: "help flag",
			args: []string{"board", "--help"},
			want: true,
		},
		{
			name: "help command",
			args: []string{"help", "task"},
			want: true,
		},
		{
			name: "version flag",
			args: []string{"--version"},
			want: true,
		},
		{
			name: "regular command",
			args: []string{"board", "list"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canRunWithoutStore(tt.args))
		})
	}
}
