package eval

import (
	"context"
	"fmt"
)

// InferenceFunc obtains the model's answer for one audio file. The
// aggregator calls it exactly once per paired item, strictly in order.
type InferenceFunc func(ctx context.Context, audioPath string) (string, error)

// Summary holds confusion counts and derived metrics for one run. Every
// non-match counts as one false positive and one false negative: with a
// single binary outcome per item there is no true negative, so a miss
// penalizes precision and recall equally.
type Summary struct {
	Count          int     `json:"count"`
	TruePositives  int     `json:"tp"`
	FalsePositives int     `json:"fp"`
	FalseNegatives int     `json:"fn"`
	Precision      float64 `json:"precision"`
	Recall         float64 `json:"recall"`
	F1             float64 `json:"f1"`
}

// Detail is the per-item record in the report. Field names are the
// compatibility contract for downstream consumers.
type Detail struct {
	File    string `json:"file"`
	Pred    string `json:"pred"`
	Ref     string `json:"gt"`
	Matched bool   `json:"match"`
}

// Report is the evaluation result serialized to callers: the summary, the
// per-item details in discovery order, and any skipped inputs.
type Report struct {
	Summary Summary   `json:"summary"`
	Details []Detail  `json:"details"`
	Skipped []Skipped `json:"skipped,omitempty"`
}

// Evaluate drives the pipeline over paired items: one sequential inference
// call per item, scoring, and confusion accounting. An inference failure
// aborts the whole run; skipped items ride along into the report without
// touching the counts. An empty corpus yields an all-zero summary.
func Evaluate(ctx context.Context, items []Item, skipped []Skipped, infer InferenceFunc, mode Mode) (*Report, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}

	details := make([]Detail, 0, len(items))
	tp := 0

	for _, item := range items {
		pred, err := infer(ctx, item.Path)
		if err != nil {
			return nil, fmt.Errorf("inference failed for %s: %w", item.Path, err)
		}

		outcome := Score(item.ID, pred, item.Ref, mode)
		if outcome.Matched {
			tp++
		}
		details = append(details, Detail{
			File:    outcome.File,
			Pred:    outcome.Pred,
			Ref:     outcome.Ref,
			Matched: outcome.Matched,
		})
	}

	count := len(details)
	fp := count - tp
	fn := count - tp

	summary := Summary{
		Count:          count,
		TruePositives:  tp,
		FalsePositives: fp,
		FalseNegatives: fn,
	}
	if tp+fp > 0 {
		summary.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		summary.Recall = float64(tp) / float64(tp+fn)
	}
	if summary.Precision+summary.Recall > 0 {
		summary.F1 = 2 * summary.Precision * summary.Recall / (summary.Precision + summary.Recall)
	}

	return &Report{
		Summary: summary,
		Details: details,
		Skipped: skipped,
	}, nil
}
