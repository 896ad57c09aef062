package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	flamingo "github.com/jamesainslie/go-flamingo"
	"github.com/jamesainslie/go-flamingo/internal/eval"
)

func newEvaluateCmd(modelDir *string) *cobra.Command {
	var (
		audioDir         string
		gtDir            string
		useFolderAsLabel bool
		matchMode        string
		prompt           string
		maxNewTokens     int
		output           string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score the model against a reference corpus",
		Long: "evaluate runs the model over every audio file in --audio-dir and compares each\n" +
			"answer to its reference: a sibling <stem>.txt in --gt-dir, or the containing\n" +
			"folder name with --use-folder-as-label.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Configuration errors fail before the model is even loaded.
			mode, err := eval.ParseMode(matchMode)
			if err != nil {
				return err
			}
			if _, err := os.Stat(audioDir); err != nil {
				return fmt.Errorf("audio directory not found: %s", audioDir)
			}

			var items []eval.Item
			var skipped []eval.Skipped
			if useFolderAsLabel {
				items, skipped, err = eval.PairLabels(audioDir)
			} else {
				if gtDir == "" {
					return errors.New("--gt-dir is required unless --use-folder-as-label is set")
				}
				if _, statErr := os.Stat(gtDir); statErr != nil {
					return fmt.Errorf("ground truth directory not found: %s", gtDir)
				}
				items, skipped, err = eval.PairFiles(audioDir, gtDir)
			}
			if err != nil {
				return err
			}
			for _, skip := range skipped {
				fmt.Fprintf(os.Stderr, "Warning: %s: %s, skipping\n", skip.ID, skip.Reason)
			}

			model, err := loadModel(*modelDir)
			if err != nil {
				return err
			}
			defer func() { _ = model.Close() }()

			infer := func(ctx context.Context, audioPath string) (string, error) {
				res, err := model.Describe(ctx, audioPath, prompt, maxNewTokens)
				if err != nil {
					return "", err
				}
				return res.Text, nil
			}

			fmt.Fprintf(os.Stderr, "Evaluating %d paired file(s) in %s...\n", len(items), audioDir)
			report, err := eval.Evaluate(cmd.Context(), items, skipped, infer, mode)
			if err != nil {
				return err
			}

			if err := writeReport(report, output); err != nil {
				return err
			}

			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, renderSummary(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&audioDir, "audio-dir", "", "directory containing audio files (required)")
	cmd.Flags().StringVar(&gtDir, "gt-dir", "", "directory containing ground truth .txt files")
	cmd.Flags().BoolVar(&useFolderAsLabel, "use-folder-as-label", false, "use subfolder names as ground truth labels")
	cmd.Flags().StringVar(&matchMode, "match-mode", string(eval.ModeExact), "matching mode: exact or contains")
	cmd.Flags().StringVar(&prompt, "prompt", "", "instruction prompt (default: a generic description request)")
	cmd.Flags().IntVar(&maxNewTokens, "max-new-tokens", flamingo.DefaultMaxNewTokens, "maximum number of tokens to generate")
	cmd.Flags().StringVar(&output, "output", "evaluation_results.json", "output JSON file")
	_ = cmd.MarkFlagRequired("audio-dir")

	return cmd
}
