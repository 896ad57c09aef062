package tokenizer

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"simple", "hello", "▁hello"},
		{"two words", "hello world", "▁hello▁world"},
		{"leading space", "  hello", "▁hello"},
		{"trailing space", "hello  ", "▁hello"},
		{"internal run", "hello \t\n world", "▁hello▁world"},
		{"only whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalize(tt.input); got != tt.want {
				t.Errorf("normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
