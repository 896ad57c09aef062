// Package tokenizer implements SentencePiece Unigram tokenization for the
// model's prompt encoding and output decoding.
package tokenizer

import (
	"fmt"
)

// Tokenizer implements SentencePiece Unigram encode and decode over a loaded
// vocabulary. Special token IDs follow the plain SentencePiece convention:
// <unk>=0, <s>=1, </s>=2.
type Tokenizer struct {
	pieces    map[string]int32 // token string -> vocabulary index
	scores    map[string]float32
	idToPiece []string
	types     []PieceType

	unkID int32
	bosID int32
	eosID int32

	maxTokenLen int
}

// TokenInfo represents a token with its position in the original text.
type TokenInfo struct {
	ID    int32
	Text  string
	Start int // byte offset in normalized text
	End   int // byte offset in normalized text
}

// New loads a tokenizer from a SentencePiece .model file.
func New(modelPath string) (*Tokenizer, error) {
	model, err := LoadModel(modelPath)
	if err != nil {
		return nil, fmt.Errorf("loading model: %w", err)
	}

	t := &Tokenizer{
		pieces:    make(map[string]int32, len(model.Pieces)),
		scores:    make(map[string]float32, len(model.Pieces)),
		idToPiece: make([]string, len(model.Pieces)),
		types:     make([]PieceType, len(model.Pieces)),
		unkID:     0,
		bosID:     1,
		eosID:     2,
	}

	for i, piece := range model.Pieces {
		t.pieces[piece.Piece] = int32(i)
		t.scores[piece.Piece] = piece.Score
		t.idToPiece[i] = piece.Piece
		t.types[i] = piece.Type

		if len(piece.Piece) > t.maxTokenLen {
			t.maxTokenLen = len(piece.Piece)
		}
	}

	return t, nil
}

// Close releases tokenizer resources.
func (t *Tokenizer) Close() error {
	return nil
}

// VocabSize returns the vocabulary size.
func (t *Tokenizer) VocabSize() int {
	return len(t.idToPiece)
}

// BOSID returns the beginning-of-sequence token ID.
func (t *Tokenizer) BOSID() int32 { return t.bosID }

// EOSID returns the end-of-sequence token ID.
func (t *Tokenizer) EOSID() int32 { return t.eosID }

// UnkID returns the unknown token ID.
func (t *Tokenizer) UnkID() int32 { return t.unkID }
