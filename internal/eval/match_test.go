package eval

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"exact", ModeExact, false},
		{"contains", ModeContains, false},
		{"fuzzy", "", true},
		{"", "", true},
		{"EXACT", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestModeMatches(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		pred string
		ref  string
		want bool
	}{
		{"exact identical", ModeExact, "the piano is playing", "the piano is playing", true},
		{"exact differs", ModeExact, "a piano is playing", "the piano is playing", false},
		{"exact superset rejected", ModeExact, "i hear a piano and a violin in this recording", "a piano", false},
		{"contains substring", ModeContains, "i hear a piano and a violin in this recording", "a piano", true},
		{"contains identical", ModeContains, "a piano", "a piano", true},
		{"contains missing", ModeContains, "a violin solo", "a piano", false},
		{"contains empty ref", ModeContains, "anything", "", true},
		{"unknown mode never matches", Mode("fuzzy"), "same", "same", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mode.Matches(tt.pred, tt.ref); got != tt.want {
				t.Errorf("Mode(%q).Matches(%q, %q) = %v, want %v", tt.mode, tt.pred, tt.ref, got, tt.want)
			}
		})
	}
}
