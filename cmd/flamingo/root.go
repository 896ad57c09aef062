package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	flamingo "github.com/jamesainslie/go-flamingo"
)

func newRootCmd() *cobra.Command {
	var modelDir string

	cmd := &cobra.Command{
		Use:     "flamingo",
		Short:   "Run and evaluate an audio-understanding model",
		Long:    "flamingo answers free-text questions about audio files using a local ONNX checkpoint,\nand scores its answers against reference labels.",
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),

		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&modelDir, "model-dir",
		os.Getenv("FLAMINGO_MODEL_DIR"),
		"path to the model directory (default $FLAMINGO_MODEL_DIR)")

	cmd.AddCommand(
		newDescribeCmd(&modelDir),
		newEvaluateCmd(&modelDir),
		newServeCmd(&modelDir),
	)

	return cmd
}

// loadModel opens the model handle shared by describe and evaluate.
func loadModel(modelDir string, opts ...flamingo.Option) (*flamingo.Model, error) {
	if modelDir == "" {
		return nil, errors.New("--model-dir is required (or set FLAMINGO_MODEL_DIR)")
	}
	fmt.Fprintf(os.Stderr, "Loading model from %s...\n", modelDir)
	return flamingo.New(modelDir, opts...)
}

// writeReport prints v as indented JSON on stdout and persists it to
// outputPath, noting the location on the diagnostic stream.
func writeReport(v any, outputPath string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	fmt.Println(string(data))

	if err := os.WriteFile(outputPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing report to %s: %w", outputPath, err)
	}
	fmt.Fprintf(os.Stderr, "\nResults written to %s\n", outputPath)
	return nil
}
