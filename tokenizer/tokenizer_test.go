package tokenizer

import (
	"reflect"
	"testing"
)

func newTestTokenizer(t *testing.T) *Tokenizer {
	t.Helper()

	path := writeTestModel(t, map[string]float32{
		"▁hello": -1.0,
		"▁world": -1.0,
		"▁piano": -1.5,
		"▁":      -3.0,
	}, []string{"▁hello", "▁world", "▁piano", "▁"})

	tok, err := New(path)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return tok
}

func TestNew_SpecialIDs(t *testing.T) {
	tok := newTestTokenizer(t)

	if tok.UnkID() != 0 {
		t.Errorf("UnkID() = %d, want 0", tok.UnkID())
	}
	if tok.BOSID() != 1 {
		t.Errorf("BOSID() = %d, want 1", tok.BOSID())
	}
	if tok.EOSID() != 2 {
		t.Errorf("EOSID() = %d, want 2", tok.EOSID())
	}
	if tok.VocabSize() != 7 {
		t.Errorf("VocabSize() = %d, want 7", tok.VocabSize())
	}
}

func TestEncodeIDs(t *testing.T) {
	tok := newTestTokenizer(t)

	tests := []struct {
		name string
		text string
		want []int32
	}{
		{
			name: "two known words",
			text: "hello world",
			want: []int32{3, 4}, // ▁hello ▁world
		},
		{
			name: "extra whitespace collapses",
			text: "  hello \t world  ",
			want: []int32{3, 4},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.EncodeIDs(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EncodeIDs(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestEncode_UnknownFallsBack(t *testing.T) {
	tok := newTestTokenizer(t)

	// "zzz" has no vocabulary entry beyond ▁; per-rune fallback maps to <unk>.
	tokens := tok.Encode("zzz")
	if len(tokens) == 0 {
		t.Fatal("expected tokens for unknown input")
	}
	for _, token := range tokens[1:] { // tokens[0] is the ▁ prefix piece
		if token.ID != tok.UnkID() {
			t.Errorf("token %q ID = %d, want <unk> %d", token.Text, token.ID, tok.UnkID())
		}
	}
}

func TestDecode(t *testing.T) {
	tok := newTestTokenizer(t)

	tests := []struct {
		name string
		ids  []int64
		want string
	}{
		{
			name: "known pieces",
			ids:  []int64{3, 4}, // ▁hello ▁world
			want: "hello world",
		},
		{
			name: "specials are skipped",
			ids:  []int64{1, 3, 5, 2}, // <s> ▁hello ▁piano </s>
			want: "hello piano",
		},
		{
			name: "out of range ids are skipped",
			ids:  []int64{-1, 3, 9999},
			want: "hello",
		},
		{
			name: "empty",
			ids:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tok.Decode(tt.ids); got != tt.want {
				t.Errorf("Decode(%v) = %q, want %q", tt.ids, got, tt.want)
			}
		})
	}
}

func TestEncodeDecode_Roundtrip(t *testing.T) {
	tok := newTestTokenizer(t)

	ids := tok.EncodeIDs("hello piano world")
	ids64 := make([]int64, len(ids))
	for i, id := range ids {
		ids64[i] = int64(id)
	}

	if got := tok.Decode(ids64); got != "hello piano world" {
		t.Errorf("roundtrip = %q, want %q", got, "hello piano world")
	}
}
