package domain

import "testing"

func TestBoardState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   BoardState
		to     BoardState
		expect bool
	}{
		// From active
		{"active -> archived", BoardActive, BoardArchived, true},
		{"active -> deleted", BoardActive, BoardDeleted, true},
		{"active -> active", BoardActive, BoardActive, false},

		// From archived
		{"archived -> active", BoardArchived, BoardActive, true},
		{"archived -> deleted", BoardArchived, BoardDeleted, true},
		{"archived -> archived", BoardArchived, BoardArchived, false},

		// From deleted
		{"deleted -> active", BoardDeleted, BoardActive, true},
		{"deleted -> archived", BoardDeleted, BoardArchived, false},
		{"deleted -> deleted", BoardDeleted, BoardDeleted, false},

		// Unknown
		{"unknown -> active", BoardState("bogus"), BoardActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.from.CanTransitionTo(tt.to)
			if got != tt.expect {
				t.Errorf("CanTransitionTo(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.expect)
			}
		})
	}
}

func TestParseBoardState(t *testing.T) {
	tests := []struct {
		input   string
		want    BoardState
		wantErr bool
	}{
		{"active", BoardActive, false},
		{"archived", BoardArchived, false},
		{"deleted", BoardDeleted, false},
		{"trash", BoardDeleted, false},
		{"", "", true},
		{"closed", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoardState(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBoardState(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseBoardState(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBoardState_Display(t *testing.T) {
	tests := []struct {
		state BoardState
		want  string
	}{
		{BoardActive, "Active"},
		{BoardArchived, "Archived"},
		{BoardDeleted, "Trash"},
		{BoardState("other"), "other"},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.Display(); got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}
