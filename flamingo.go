package flamingo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jamesainslie/go-flamingo/audio"
	"github.com/jamesainslie/go-flamingo/inference"
	"github.com/jamesainslie/go-flamingo/tokenizer"
)

// Expected file names inside the model directory.
const (
	modelFileName     = "model.onnx"
	tokenizerFileName = "tokenizer.model"
)

// Result is the outcome of describing one audio file.
type Result struct {
	File            string  `json:"file"`
	Text            string  `json:"text"`
	TokensGenerated int     `json:"tokens_generated"`
	ElapsedSec      float64 `json:"elapsed_sec"`
}

// Model answers free-text questions about audio using an ONNX
// encoder-decoder checkpoint. It is safe for concurrent use.
type Model struct {
	tokenizer    *tokenizer.Tokenizer
	pool         *inference.Pool
	prompt       string
	maxNewTokens int
	sampleRate   int
	logger       *slog.Logger
}

// New loads a Model from a directory containing model.onnx and
// tokenizer.model.
func New(modelDir string, opts ...Option) (*Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	modelPath := filepath.Join(modelDir, modelFileName)
	if _, err := os.Stat(modelPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelPath)
		}
		return nil, fmt.Errorf("checking model file: %w", err)
	}

	tokenizerPath := filepath.Join(modelDir, tokenizerFileName)
	tok, err := tokenizer.New(tokenizerPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTokenizerFailed, tokenizerPath)
		}
		return nil, fmt.Errorf("%w: %w", ErrTokenizerFailed, err)
	}

	pool, err := inference.NewPool(modelPath, cfg.poolSize)
	if err != nil {
		_ = tok.Close()
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}

	cfg.logger.Info("model loaded",
		"dir", modelDir,
		"vocab_size", tok.VocabSize(),
		"pool_size", pool.Size())

	return &Model{
		tokenizer:    tok,
		pool:         pool,
		prompt:       cfg.prompt,
		maxNewTokens: cfg.maxNewTokens,
		sampleRate:   cfg.sampleRate,
		logger:       cfg.logger,
	}, nil
}

// Describe runs inference on a single audio file and returns the generated
// answer with generation metadata. An empty prompt or non-positive
// maxNewTokens falls back to the Model defaults.
func (m *Model) Describe(ctx context.Context, audioPath, prompt string, maxNewTokens int) (Result, error) {
	start := time.Now()

	if prompt == "" {
		prompt = m.prompt
	}
	if maxNewTokens <= 0 {
		maxNewTokens = m.maxNewTokens
	}

	samples, err := audio.Decode(audioPath, m.sampleRate)
	if err != nil {
		return Result{}, fmt.Errorf("decoding %s: %w", audioPath, err)
	}

	seed := m.seedIDs(prompt)

	session, err := m.pool.Acquire(ctx)
	if err != nil {
		return Result{}, err
	}
	defer m.pool.Release(session)

	generated, err := session.Generate(ctx, samples, seed, int64(m.tokenizer.EOSID()), maxNewTokens)
	if err != nil {
		return Result{}, fmt.Errorf("generating for %s: %w", audioPath, err)
	}

	text := m.tokenizer.Decode(generated)
	// Some checkpoints echo the instruction before answering.
	text = strings.TrimSpace(strings.Replace(text, prompt, "", 1))

	elapsed := time.Since(start)
	m.logger.Debug("described audio",
		"file", audioPath,
		"tokens", len(generated),
		"elapsed", elapsed)

	return Result{
		File:            audioPath,
		Text:            text,
		TokensGenerated: len(generated),
		ElapsedSec:      elapsed.Seconds(),
	}, nil
}

// DescribeAll runs Describe over paths strictly in order. The first failure
// aborts and is returned with no partial results.
func (m *Model) DescribeAll(ctx context.Context, paths []string, prompt string, maxNewTokens int) ([]Result, error) {
	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		res, err := m.Describe(ctx, path, prompt, maxNewTokens)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// seedIDs builds the decoder seed sequence: BOS followed by the encoded
// prompt.
func (m *Model) seedIDs(prompt string) []int64 {
	promptIDs := m.tokenizer.EncodeIDs(prompt)
	seed := make([]int64, 0, len(promptIDs)+1)
	seed = append(seed, int64(m.tokenizer.BOSID()))
	for _, id := range promptIDs {
		seed = append(seed, int64(id))
	}
	return seed
}

// Close releases all resources.
func (m *Model) Close() error {
	var errs []error

	if m.pool != nil {
		if err := m.pool.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if m.tokenizer != nil {
		if err := m.tokenizer.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
