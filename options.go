package flamingo

import (
	"log/slog"
	"runtime"
)

// Defaults applied when the corresponding option is not supplied.
const (
	// DefaultPrompt is the instruction used when a call provides no prompt.
	// The model answers questions about audio; an empty instruction yields
	// degenerate output.
	DefaultPrompt = "Please describe the audio in detail."

	// DefaultMaxNewTokens bounds greedy generation per call.
	DefaultMaxNewTokens = 128

	// DefaultSampleRate is the mono sample rate the model was trained on.
	DefaultSampleRate = 16000
)

// Option configures a Model.
type Option func(*config)

type config struct {
	prompt       string
	maxNewTokens int
	sampleRate   int
	poolSize     int
	logger       *slog.Logger
}

func defaultConfig() config {
	return config{
		prompt:       DefaultPrompt,
		maxNewTokens: DefaultMaxNewTokens,
		sampleRate:   DefaultSampleRate,
		poolSize:     runtime.NumCPU(),
		logger:       slog.Default(),
	}
}

// WithPrompt sets the default instruction prompt (default: DefaultPrompt).
func WithPrompt(p string) Option {
	return func(c *config) {
		if p != "" {
			c.prompt = p
		}
	}
}

// WithMaxNewTokens sets the default generation limit (default: 128).
func WithMaxNewTokens(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxNewTokens = n
		}
	}
}

// WithSampleRate sets the model input sample rate (default: 16000).
func WithSampleRate(hz int) Option {
	return func(c *config) {
		if hz > 0 {
			c.sampleRate = hz
		}
	}
}

// WithPoolSize sets the ONNX session pool size (default: runtime.NumCPU()).
func WithPoolSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.poolSize = n
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
