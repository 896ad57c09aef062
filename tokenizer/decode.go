package tokenizer

import "strings"

// Decode converts generated token IDs back to text. Control and unknown
// pieces are skipped; the SentencePiece word marker becomes a plain space.
func (t *Tokenizer) Decode(ids []int64) string {
	var builder strings.Builder

	for _, id := range ids {
		if id < 0 || id >= int64(len(t.idToPiece)) {
			continue
		}
		switch t.types[id] {
		case PieceControl, PieceUnknown, PieceUnused:
			continue
		}
		builder.WriteString(t.idToPiece[id])
	}

	text := strings.ReplaceAll(builder.String(), string(sentencePieceSpace), " ")
	return strings.TrimSpace(text)
}
