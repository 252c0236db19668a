// Package server serves the interactive extraction form and a small JSON API.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ppiankov/legalparse/internal/model"
	"github.com/ppiankov/legalparse/internal/pipeline"
	"github.com/ppiankov/legalparse/internal/ratelimit"
	"github.com/ppiankov/legalparse/internal/render"
)

// Processor classifies document text
type Processor interface {
	ProcessText(ctx context.Context, source, text string) (*model.Report, error)
}

// Server is the HTTP front end
type Server struct {
	processor Processor
	limiter   *ratelimit.Limiter
	config    model.ServerConfig
	logger    *zap.Logger
	router    chi.Router
}

// New creates a server and builds its routes
func New(processor Processor, cfg *model.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		processor: processor,
		limiter:   ratelimit.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize),
		config:    cfg.Server,
		logger:    logger,
	}
	s.router = s.routes()

	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)
	r.Use(maxBody(s.config.MaxBodyBytes))
	r.Use(rateLimit(s.limiter, s.logger))

	r.Get("/", s.handleForm)
	r.Post("/extract", s.handleExtract)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/classify", s.handleClassify)
	})

	return r
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	go s.pruneLimiter(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", s.config.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	s.logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) pruneLimiter(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.limiter.Prune()
		}
	}
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, pageView{})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, http.StatusBadRequest, pageView{Error: "Could not read the submitted form."})
		return
	}
	text := r.PostFormValue("text")

	report, err := s.processor.ProcessText(r.Context(), "form", text)
	if errors.Is(err, pipeline.ErrEmptyInput) {
		s.renderPage(w, http.StatusOK, pageView{Text: text, Error: "Please enter legal text to analyze."})
		return
	}
	if err != nil {
		s.logger.Error("classification failed", zap.Error(err))
		s.renderPage(w, http.StatusInternalServerError, pageView{Text: text, Error: "Extraction failed."})
		return
	}

	s.renderPage(w, http.StatusOK, pageView{
		Text:        text,
		Submitted:   true,
		Obligations: report.ObligationTexts(),
		Rights:      report.RightTexts(),
	})
}

func (s *Server) renderPage(w http.ResponseWriter, status int, view pageView) {
	view.NoOb = render.NoObligations
	view.NoRt = render.NoRights

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, view); err != nil {
		s.logger.Error("render page", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// classifyRequest keeps text raw so a non-string value can be reported as
// an invalid argument rather than a generic decode failure
type classifyRequest struct {
	Text json.RawMessage `json:"text"`
}

// ClassifyResponse is the JSON API response body
type ClassifyResponse struct {
	Obligations []string `json:"obligations"`
	Rights      []string `json:"rights"`
	Sentences   int      `json:"sentences"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	var text string
	if len(req.Text) > 0 && string(req.Text) != "null" {
		if err := json.Unmarshal(req.Text, &text); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid argument: text must be a string"})
			return
		}
	}

	report, err := s.processor.ProcessText(r.Context(), "api", text)
	if errors.Is(err, pipeline.ErrEmptyInput) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: pipeline.ErrEmptyInput.Error()})
		return
	}
	if err != nil {
		s.logger.Error("classification failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "classification failed"})
		return
	}

	writeJSON(w, http.StatusOK, ClassifyResponse{
		Obligations: report.ObligationTexts(),
		Rights:      report.RightTexts(),
		Sentences:   report.Sentences,
	})
}
