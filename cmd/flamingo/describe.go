package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	flamingo "github.com/jamesainslie/go-flamingo"
)

func newDescribeCmd(modelDir *string) *cobra.Command {
	var (
		path         string
		paths        []string
		prompt       string
		maxNewTokens int
		output       string
	)

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Describe one or more audio files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			all := paths
			if path != "" {
				all = append([]string{path}, all...)
			}
			if len(all) == 0 {
				return errors.New("provide --path or --paths")
			}
			for _, p := range all {
				if _, err := os.Stat(p); err != nil {
					return fmt.Errorf("file not found: %s", p)
				}
			}

			model, err := loadModel(*modelDir)
			if err != nil {
				return err
			}
			defer func() { _ = model.Close() }()

			fmt.Fprintf(os.Stderr, "Describing %d file(s)...\n", len(all))
			results, err := model.DescribeAll(cmd.Context(), all, prompt, maxNewTokens)
			if err != nil {
				return err
			}

			return writeReport(map[string][]flamingo.Result{"results": results}, output)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "path to a single audio file")
	cmd.Flags().StringSliceVar(&paths, "paths", nil, "paths to multiple audio files")
	cmd.Flags().StringVar(&prompt, "prompt", "", "instruction prompt (default: a generic description request)")
	cmd.Flags().IntVar(&maxNewTokens, "max-new-tokens", flamingo.DefaultMaxNewTokens, "maximum number of tokens to generate")
	cmd.Flags().StringVar(&output, "output", "describe_results.json", "output JSON file")

	return cmd
}
