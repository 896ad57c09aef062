package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	flamingo "github.com/jamesainslie/go-flamingo"
	"github.com/jamesainslie/go-flamingo/internal/httpapi"
)

type serveConfig struct {
	Addr         string `yaml:"addr"`
	ModelDir     string `yaml:"model_dir"`
	PoolSize     int    `yaml:"pool_size"`
	Prompt       string `yaml:"prompt"`
	MaxNewTokens int    `yaml:"max_new_tokens"`
}

func newServeCmd(modelDir *string) *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the model over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := serveConfig{Addr: ":8000"}
			if configPath != "" {
				data, err := os.ReadFile(configPath)
				if err != nil {
					return fmt.Errorf("reading config: %w", err)
				}
				if err := yaml.Unmarshal(data, &cfg); err != nil {
					return fmt.Errorf("parsing config: %w", err)
				}
			}
			// Flags override the config file.
			if cmd.Flags().Changed("addr") || cfg.Addr == "" {
				cfg.Addr = addr
			}
			if *modelDir != "" {
				cfg.ModelDir = *modelDir
			}
			if cfg.ModelDir == "" {
				return errors.New("model directory is required (--model-dir, config file, or FLAMINGO_MODEL_DIR)")
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			server := httpapi.NewServer(nil, logger)

			logger.Info("loading model", "dir", cfg.ModelDir)
			model, err := flamingo.New(cfg.ModelDir,
				flamingo.WithLogger(logger),
				flamingo.WithPoolSize(cfg.PoolSize),
				flamingo.WithPrompt(cfg.Prompt),
				flamingo.WithMaxNewTokens(cfg.MaxNewTokens),
			)
			if err != nil {
				return err
			}
			defer func() { _ = model.Close() }()
			server.SetModel(model)

			httpServer := &http.Server{
				Addr:              cfg.Addr,
				Handler:           server.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- httpServer.ListenAndServe()
			}()
			logger.Info("listening", "addr", cfg.Addr)

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpServer.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8000", "address to listen on")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")

	return cmd
}
