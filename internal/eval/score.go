package eval

// Outcome records the comparison of one prediction against its reference.
// Raw text is retained for diagnostics; matching is decided on the
// normalized forms only.
type Outcome struct {
	File     string
	Pred     string
	Ref      string
	NormPred string
	NormRef  string
	Matched  bool
}

// Score normalizes both texts and applies the match mode. It is total over
// arbitrary text: empty strings and non-ASCII input never fail.
func Score(file, pred, ref string, mode Mode) Outcome {
	normPred := Normalize(pred)
	normRef := Normalize(ref)

	return Outcome{
		File:     file,
		Pred:     pred,
		Ref:      ref,
		NormPred: normPred,
		NormRef:  normRef,
		Matched:  mode.Matches(normPred, normRef),
	}
}
