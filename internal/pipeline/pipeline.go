// Package pipeline acquires document text, classifies it and renders the
// resulting report.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/legalparse/internal/cache"
	"github.com/ppiankov/legalparse/internal/classify"
	"github.com/ppiankov/legalparse/internal/extract"
	"github.com/ppiankov/legalparse/internal/model"
	"github.com/ppiankov/legalparse/internal/render"
)

// ErrEmptyInput is returned when there is no text to classify
var ErrEmptyInput = errors.New("please enter legal text to analyze")

// ErrRobotsDisallowed is returned when robots.txt forbids fetching a URL
var ErrRobotsDisallowed = errors.New("fetching disallowed by robots.txt")

// Pipeline orchestrates acquisition, classification and rendering
type Pipeline struct {
	fetcher    *Fetcher
	robots     *RobotsChecker
	classifier *classify.Classifier
	cache      cache.Cache
	renderer   *render.Renderer
	config     *model.Config
	logger     *zap.Logger
	now        func() time.Time
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	var c cache.Cache = cache.Nop{}
	if cfg.Cache.Enabled {
		c = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
	}

	p := &Pipeline{
		fetcher: NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes,
			cfg.HTTP.InsecureTLS, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
		classifier: classify.New(),
		cache:      c,
		renderer:   render.NewRenderer(cfg.Output.IncludeFooter),
		config:     cfg,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
	if !cfg.HTTP.IgnoreRobots {
		p.robots = NewRobotsChecker(c, cfg.HTTP.UserAgent, 10*time.Second)
	}

	return p
}

// cachedResult is what the result cache stores per document text
type cachedResult struct {
	Result    model.Result `json:"result"`
	Sentences int          `json:"sentences"`
}

// ProcessText classifies text. Whitespace-only text is rejected with
// ErrEmptyInput and never reaches the classifier.
func (p *Pipeline) ProcessText(ctx context.Context, source, text string) (*model.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	result, sentences := p.classify(text)

	p.logger.Debug("classified document",
		zap.String("source", source),
		zap.Int("sentences", sentences),
		zap.Int("obligations", len(result.Obligations)),
		zap.Int("rights", len(result.Rights)))

	return &model.Report{
		Source:      source,
		ExtractedAt: p.now(),
		Sentences:   sentences,
		Result:      result,
	}, nil
}

// classify runs the classifier, memoizing by document text
func (p *Pipeline) classify(text string) (model.Result, int) {
	key := cache.Key(cache.NamespaceResult, text)

	if raw, found := p.cache.Get(key); found {
		var cached cachedResult
		if err := json.Unmarshal(raw, &cached); err == nil {
			p.logger.Debug("result cache hit", zap.String("key", key))
			return cached.Result, cached.Sentences
		}
	}

	result, sentences := p.classifier.Classify(text)

	if raw, err := json.Marshal(cachedResult{Result: result, Sentences: sentences}); err == nil {
		if err := p.cache.Set(key, raw, p.config.Cache.TTL); err != nil {
			p.logger.Warn("result cache write failed", zap.Error(err))
		}
	}

	return result, sentences
}

// ProcessFile reads a text or HTML document from disk and classifies it
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*model.Report, error) {
	text, err := extract.FromFile(path, p.config.HTTP.MaxBodyBytes)
	if err != nil {
		return nil, err
	}
	return p.ProcessText(ctx, path, text)
}

// ProcessReader reads plain text from r and classifies it
func (p *Pipeline) ProcessReader(ctx context.Context, source string, r io.Reader) (*model.Report, error) {
	text, err := extract.FromReader(r, p.config.HTTP.MaxBodyBytes)
	if err != nil {
		return nil, err
	}
	return p.ProcessText(ctx, source, text)
}

// ProcessURL fetches a document, honouring robots.txt, and classifies it
func (p *Pipeline) ProcessURL(ctx context.Context, rawURL string) (*model.Report, error) {
	if p.robots != nil {
		allowed, err := p.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("robots: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("%s: %w", rawURL, ErrRobotsDisallowed)
		}
	}

	fetched, err := p.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	text, err := extract.Convert([]byte(fetched.Body), extract.DetectFormat(fetched.FinalURL, fetched.Meta.ContentType))
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	report, err := p.ProcessText(ctx, fetched.FinalURL, text)
	if err != nil {
		return nil, err
	}
	meta := fetched.Meta
	report.FetchMeta = &meta

	return report, nil
}

// RenderReport writes optional JSON/Markdown files and prints the text view to w
func (p *Pipeline) RenderReport(w io.Writer, report *model.Report, jsonPath, mdPath string) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		p.logger.Info("wrote JSON report", zap.String("path", jsonPath))
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		p.logger.Info("wrote Markdown report", zap.String("path", mdPath))
	}

	return p.renderer.RenderText(w, report)
}

// Renderer exposes the pipeline's renderer
func (p *Pipeline) Renderer() *render.Renderer {
	return p.renderer
}
