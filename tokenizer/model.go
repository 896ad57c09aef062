package tokenizer

import (
	"fmt"
	"math"
	"os"

	"google.golang.org/protobuf/encoding/protowire"
)

// PieceType mirrors the SentencePiece ModelProto.SentencePiece.Type enum.
type PieceType int32

const (
	PieceNormal      PieceType = 1
	PieceUnknown     PieceType = 2
	PieceControl     PieceType = 3
	PieceUserDefined PieceType = 4
	PieceUnused      PieceType = 5
	PieceByte        PieceType = 6
)

// Piece represents a vocabulary piece from the model.
type Piece struct {
	Piece string
	Score float32
	Type  PieceType
}

// Model represents a loaded SentencePiece model.
type Model struct {
	Pieces []Piece
}

// SentencePiece wire schema, ModelProto:
//   field 1: repeated SentencePiece pieces
// SentencePiece:
//   field 1: string piece
//   field 2: float score
//   field 3: Type type (default NORMAL)
const (
	fieldPieces     = 1
	fieldPieceText  = 1
	fieldPieceScore = 2
	fieldPieceType  = 3
)

// LoadModel loads a SentencePiece model from a .model file. Only the
// vocabulary pieces are decoded; trainer and normalizer specs are skipped.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}

	var pieces []Piece
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("parsing model: %w", protowire.ParseError(n))
		}
		data = data[n:]

		if num == fieldPieces && typ == protowire.BytesType {
			raw, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("parsing piece %d: %w", len(pieces), protowire.ParseError(n))
			}
			data = data[n:]

			piece, err := parsePiece(raw)
			if err != nil {
				return nil, fmt.Errorf("parsing piece %d: %w", len(pieces), err)
			}
			pieces = append(pieces, piece)
			continue
		}

		n = protowire.ConsumeFieldValue(num, typ, data)
		if n < 0 {
			return nil, fmt.Errorf("parsing model field %d: %w", num, protowire.ParseError(n))
		}
		data = data[n:]
	}

	if len(pieces) == 0 {
		return nil, fmt.Errorf("model contains no vocabulary pieces")
	}

	return &Model{Pieces: pieces}, nil
}

func parsePiece(data []byte) (Piece, error) {
	piece := Piece{Type: PieceNormal}

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return Piece{}, protowire.ParseError(n)
		}
		data = data[n:]

		switch {
		case num == fieldPieceText && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return Piece{}, protowire.ParseError(n)
			}
			piece.Piece = string(v)
			data = data[n:]

		case num == fieldPieceScore && typ == protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(data)
			if n < 0 {
				return Piece{}, protowire.ParseError(n)
			}
			piece.Score = math.Float32frombits(v)
			data = data[n:]

		case num == fieldPieceType && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return Piece{}, protowire.ParseError(n)
			}
			piece.Type = PieceType(v)
			data = data[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return Piece{}, protowire.ParseError(n)
			}
			data = data[n:]
		}
	}

	return piece, nil
}
