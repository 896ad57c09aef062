// Package httpapi exposes the model and the evaluation pipeline over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	flamingo "github.com/jamesainslie/go-flamingo"
	"github.com/jamesainslie/go-flamingo/internal/eval"
)

// Describer is the inference boundary the server depends on. *flamingo.Model
// satisfies it; tests substitute stubs.
type Describer interface {
	Describe(ctx context.Context, audioPath, prompt string, maxNewTokens int) (flamingo.Result, error)
}

// Server wires HTTP routes to a Describer.
type Server struct {
	mu     sync.RWMutex
	model  Describer
	logger *slog.Logger
}

// NewServer creates a Server. A nil model means "still loading"; /healthz
// reports 503 until SetModel is called.
func NewServer(model Describer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{model: model, logger: logger}
}

// SetModel installs the inference handle once loading completes.
func (s *Server) SetModel(model Describer) {
	s.mu.Lock()
	s.model = model
	s.mu.Unlock()
}

func (s *Server) getModel() Describer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)

	r.Get("/healthz", s.healthz)
	r.Post("/describe", s.describe)
	r.Post("/evaluate", s.evaluate)

	return r
}

type describeRequest struct {
	Paths        []string `json:"paths"`
	Prompt       string   `json:"prompt"`
	MaxNewTokens int      `json:"max_new_tokens"`
}

type describeResponse struct {
	Results []flamingo.Result `json:"results"`
}

type evaluateRequest struct {
	AudioDir         string `json:"audio_dir"`
	GTDir            string `json:"gt_dir"`
	UseFolderAsLabel bool   `json:"use_folder_as_label"`
	Prompt           string `json:"prompt"`
	MaxNewTokens     int    `json:"max_new_tokens"`
	MatchMode        string `json:"match_mode"`
}

type errResponse struct {
	Error string `json:"error"`
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if s.getModel() == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) describe(w http.ResponseWriter, r *http.Request) {
	model := s.getModel()
	if model == nil {
		writeError(w, http.StatusServiceUnavailable, "model not loaded")
		return
	}

	var req describeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Paths) == 0 {
		writeError(w, http.StatusBadRequest, "paths is required")
		return
	}
	for _, path := range req.Paths {
		if _, err := os.Stat(path); err != nil {
			writeError(w, http.StatusBadRequest, "file not found: "+path)
			return
		}
	}

	results := make([]flamingo.Result, 0, len(req.Paths))
	for _, path := range req.Paths {
		res, err := model.Describe(r.Context(), path, req.Prompt, req.MaxNewTokens)
		if err != nil {
			s.logger.Error("describe failed", "file", path, "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		results = append(results, res)
	}

	writeJSON(w, http.StatusOK, describeResponse{Results: results})
}

func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) {
	model := s.getModel()
	if model == nil {
		writeError(w, http.StatusServiceUnavailable, "model not loaded")
		return
	}

	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	// Configuration errors reject the request before any inference.
	if req.MatchMode == "" {
		req.MatchMode = string(eval.ModeExact)
	}
	mode, err := eval.ParseMode(req.MatchMode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.AudioDir == "" {
		writeError(w, http.StatusBadRequest, "audio_dir is required")
		return
	}
	if _, err := os.Stat(req.AudioDir); err != nil {
		writeError(w, http.StatusBadRequest, "audio directory not found: "+req.AudioDir)
		return
	}

	var items []eval.Item
	var skipped []eval.Skipped
	if req.UseFolderAsLabel {
		items, skipped, err = eval.PairLabels(req.AudioDir)
	} else {
		if req.GTDir == "" {
			writeError(w, http.StatusBadRequest, "gt_dir is required unless use_folder_as_label is set")
			return
		}
		if _, statErr := os.Stat(req.GTDir); statErr != nil {
			writeError(w, http.StatusBadRequest, "ground truth directory not found: "+req.GTDir)
			return
		}
		items, skipped, err = eval.PairFiles(req.AudioDir, req.GTDir)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for _, skip := range skipped {
		s.logger.Warn("skipping unpaired input", "file", skip.ID, "reason", skip.Reason)
	}

	infer := func(ctx context.Context, audioPath string) (string, error) {
		res, err := model.Describe(ctx, audioPath, req.Prompt, req.MaxNewTokens)
		if err != nil {
			return "", err
		}
		return res.Text, nil
	}

	report, err := eval.Evaluate(r.Context(), items, skipped, infer, mode)
	if err != nil {
		s.logger.Error("evaluation failed", "audio_dir", req.AudioDir, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Info("evaluation complete",
		"count", report.Summary.Count,
		"tp", report.Summary.TruePositives,
		"f1", fmt.Sprintf("%.4f", report.Summary.F1))

	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errResponse{Error: msg})
}
