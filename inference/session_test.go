package inference

import (
	"context"
	"os"
	"testing"
)

const testModelPath = "testdata/model.onnx"

// skipIfNoModel skips the test if the ONNX model is not available.
func skipIfNoModel(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(testModelPath); err != nil {
		t.Skipf("Skipping: ONNX model not available at %s", testModelPath)
	}
}

func TestNewSession_ModelNotFound(t *testing.T) {
	if _, err := NewSession("nonexistent/model.onnx"); err == nil {
		t.Fatal("expected error for nonexistent model file")
	}
}

func TestNewSession(t *testing.T) {
	skipIfNoModel(t)

	session, err := NewSession(testModelPath)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	defer func() { _ = session.Close() }()

	if session.session == nil {
		t.Error("expected non-nil inner session")
	}
}

func TestSession_CloseIdempotent(t *testing.T) {
	skipIfNoModel(t)

	session, err := NewSession(testModelPath)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}

	if err := session.Close(); err != nil {
		t.Fatalf("first Close() failed: %v", err)
	}
	if err := session.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
}

func TestGenerate_InputValidation(t *testing.T) {
	// Validation happens before any ONNX call, so a zero Session suffices.
	s := &Session{}

	if _, err := s.Generate(context.Background(), nil, []int64{1}, 2, 8); err == nil {
		t.Error("expected error for empty audio")
	}
	if _, err := s.Generate(context.Background(), []float32{0.1}, nil, 2, 8); err == nil {
		t.Error("expected error for empty seed")
	}
}

func TestGenerate_ClosedSession(t *testing.T) {
	s := &Session{closed: true}

	if _, err := s.Generate(context.Background(), []float32{0.1}, []int64{1}, 2, 8); err == nil {
		t.Error("expected error for closed session")
	}
}

func TestGenerate(t *testing.T) {
	skipIfNoModel(t)

	session, err := NewSession(testModelPath)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	defer func() { _ = session.Close() }()

	audio := make([]float32, 16000)
	ids, err := session.Generate(context.Background(), audio, []int64{1}, 2, 16)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if len(ids) > 16 {
		t.Errorf("generated %d tokens, limit was 16", len(ids))
	}
}

func TestArgmax(t *testing.T) {
	tests := []struct {
		name   string
		logits []float32
		want   int64
	}{
		{"single", []float32{0.5}, 0},
		{"middle", []float32{-1, 3, 2}, 1},
		{"ties pick first", []float32{2, 2, 1}, 0},
		{"negative values", []float32{-5, -2, -9}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := argmax(tt.logits); got != tt.want {
				t.Errorf("argmax(%v) = %d, want %d", tt.logits, got, tt.want)
			}
		})
	}
}
