// Package inference provides ONNX Runtime integration for the audio
// encoder-decoder model.
package inference

import (
	"context"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	ortEnvOnce sync.Once
	ortEnvErr  error
)

// initORT initializes the ONNX Runtime environment once.
func initORT() error {
	ortEnvOnce.Do(func() {
		ortEnvErr = ort.InitializeEnvironment()
	})
	return ortEnvErr
}

// Graph input/output names (from model export).
var (
	inputNames  = []string{"audio_values", "decoder_input_ids"}
	outputNames = []string{"logits"}
)

// Session wraps an ONNX Runtime session running the generation graph.
type Session struct {
	session *ort.DynamicAdvancedSession
	mu      sync.Mutex
	closed  bool
}

// NewSession creates a new ONNX session from a model file.
func NewSession(modelPath string) (*Session, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	}

	if err := initORT(); err != nil {
		return nil, fmt.Errorf("initializing ONNX runtime: %w", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("creating session options: %w", err)
	}
	defer func() { _ = options.Destroy() }() // Cleanup error doesn't affect success

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		inputNames,
		outputNames,
		options,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &Session{session: session}, nil
}

// Generate runs greedy decoding: starting from seedIDs, the highest-scoring
// token is appended each step until eosID is produced or maxNewTokens is
// reached. Returns only the newly generated IDs. Decoding is deterministic.
func (s *Session) Generate(ctx context.Context, audio []float32, seedIDs []int64, eosID int64, maxNewTokens int) ([]int64, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty audio input")
	}
	if len(seedIDs) == 0 {
		return nil, fmt.Errorf("empty decoder seed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("session is closed")
	}

	audioTensor, err := ort.NewTensor(
		ort.NewShape(1, int64(len(audio))),
		audio,
	)
	if err != nil {
		return nil, fmt.Errorf("creating audio_values tensor: %w", err)
	}
	defer func() { _ = audioTensor.Destroy() }()

	ids := append([]int64(nil), seedIDs...)
	var generated []int64

	for step := 0; step < maxNewTokens; step++ {
		// Check context between decode steps
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		next, err := s.nextToken(audioTensor, ids)
		if err != nil {
			return nil, fmt.Errorf("decode step %d: %w", step, err)
		}

		if next == eosID {
			break
		}

		generated = append(generated, next)
		ids = append(ids, next)
	}

	return generated, nil
}

// nextToken runs one forward pass and returns the argmax token at the final
// position.
func (s *Session) nextToken(audioTensor *ort.Tensor[float32], ids []int64) (int64, error) {
	idsTensor, err := ort.NewTensor(
		ort.NewShape(1, int64(len(ids))),
		ids,
	)
	if err != nil {
		return 0, fmt.Errorf("creating decoder_input_ids tensor: %w", err)
	}
	defer func() { _ = idsTensor.Destroy() }()

	inputs := []ort.Value{audioTensor, idsTensor}
	outputs := []ort.Value{nil}

	if err := s.session.Run(inputs, outputs); err != nil {
		return 0, fmt.Errorf("running inference: %w", err)
	}

	if outputs[0] == nil {
		return 0, fmt.Errorf("no output produced")
	}
	defer func() { _ = outputs[0].Destroy() }()

	logitsTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return 0, fmt.Errorf("unexpected output tensor type")
	}

	shape := logitsTensor.GetShape()
	if len(shape) != 3 {
		return 0, fmt.Errorf("unexpected logits shape %v", shape)
	}

	vocab := int(shape[2])
	data := logitsTensor.GetData()
	if len(data) < vocab {
		return 0, fmt.Errorf("logits shorter than vocabulary: %d < %d", len(data), vocab)
	}

	return argmax(data[len(data)-vocab:]), nil
}

func argmax(logits []float32) int64 {
	best := 0
	for i, v := range logits {
		if v > logits[best] {
			best = i
		}
	}
	return int64(best)
}

// Close releases ONNX resources.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	if s.session != nil {
		return s.session.Destroy()
	}
	return nil
}
