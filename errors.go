package flamingo

import (
	"errors"

	"github.com/jamesainslie/go-flamingo/audio"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrModelNotFound indicates the model file does not exist.
	ErrModelNotFound = errors.New("flamingo: model file not found")

	// ErrInvalidModel indicates the model file exists but is malformed.
	ErrInvalidModel = errors.New("flamingo: invalid model format")

	// ErrTokenizerFailed indicates tokenizer initialization failed.
	ErrTokenizerFailed = errors.New("flamingo: tokenizer initialization failed")

	// ErrUnsupportedAudio indicates the audio file has no usable decoder.
	ErrUnsupportedAudio = audio.ErrUnsupportedFormat
)
