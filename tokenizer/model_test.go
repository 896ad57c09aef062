package tokenizer

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

// appendPiece serializes one SentencePiece vocabulary entry onto b.
func appendPiece(b []byte, piece string, score float32, typ PieceType) []byte {
	var msg []byte
	msg = protowire.AppendTag(msg, fieldPieceText, protowire.BytesType)
	msg = protowire.AppendString(msg, piece)
	msg = protowire.AppendTag(msg, fieldPieceScore, protowire.Fixed32Type)
	msg = protowire.AppendFixed32(msg, math.Float32bits(score))
	msg = protowire.AppendTag(msg, fieldPieceType, protowire.VarintType)
	msg = protowire.AppendVarint(msg, uint64(typ))

	b = protowire.AppendTag(b, fieldPieces, protowire.BytesType)
	b = protowire.AppendBytes(b, msg)
	return b
}

// writeTestModel writes a small SentencePiece model with the standard
// special pieces followed by the given normal pieces.
func writeTestModel(t *testing.T, vocab map[string]float32, order []string) string {
	t.Helper()

	var data []byte
	data = appendPiece(data, "<unk>", 0, PieceUnknown)
	data = appendPiece(data, "<s>", 0, PieceControl)
	data = appendPiece(data, "</s>", 0, PieceControl)
	for _, piece := range order {
		data = appendPiece(data, piece, vocab[piece], PieceNormal)
	}

	path := filepath.Join(t.TempDir(), "tokenizer.model")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing test model: %v", err)
	}
	return path
}

func TestLoadModel(t *testing.T) {
	path := writeTestModel(t, map[string]float32{
		"▁hello": -1.0,
		"▁world": -1.5,
	}, []string{"▁hello", "▁world"})

	model, err := LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel() failed: %v", err)
	}

	if got := len(model.Pieces); got != 5 {
		t.Fatalf("len(Pieces) = %d, want 5", got)
	}
	if model.Pieces[0].Type != PieceUnknown {
		t.Errorf("Pieces[0].Type = %v, want PieceUnknown", model.Pieces[0].Type)
	}
	if model.Pieces[3].Piece != "▁hello" {
		t.Errorf("Pieces[3].Piece = %q, want %q", model.Pieces[3].Piece, "▁hello")
	}
	if model.Pieces[4].Score != -1.5 {
		t.Errorf("Pieces[4].Score = %v, want -1.5", model.Pieces[4].Score)
	}
}

func TestLoadModel_FileNotFound(t *testing.T) {
	if _, err := LoadModel("nonexistent/tokenizer.model"); err == nil {
		t.Fatal("expected error for nonexistent model file")
	}
}

func TestLoadModel_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokenizer.model")
	if err := os.WriteFile(path, []byte{0xff, 0xff, 0xff}, 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	if _, err := LoadModel(path); err == nil {
		t.Fatal("expected error for malformed model file")
	}
}

func TestLoadModel_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokenizer.model")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	if _, err := LoadModel(path); err == nil {
		t.Fatal("expected error for model with no pieces")
	}
}
