package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ppiankov/legalparse/internal/classify"
	"github.com/ppiankov/legalparse/internal/model"
)

func testPipeline(t *testing.T) *Pipeline {
	t.Helper()
	cfg := model.DefaultConfig()
	return NewPipeline(cfg, nil)
}

func TestProcessText_Empty(t *testing.T) {
	p := testPipeline(t)

	for _, text := range []string{"", "   ", "\n\t\n"} {
		if _, err := p.ProcessText(context.Background(), "form", text); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("ProcessText(%q) error = %v, want ErrEmptyInput", text, err)
		}
	}
}

func TestProcessText_Classifies(t *testing.T) {
	p := testPipeline(t)

	report, err := p.ProcessText(context.Background(), "form", "The tenant must pay rent by the 5th. The landlord may enter with notice.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if report.Source != "form" {
		t.Errorf("Expected source form, got %s", report.Source)
	}
	if report.Sentences != 2 {
		t.Errorf("Expected 2 sentences, got %d", report.Sentences)
	}
	if diff := cmp.Diff([]string{"The tenant must pay rent by the 5th."}, report.ObligationTexts()); diff != "" {
		t.Errorf("obligations mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"The landlord may enter with notice."}, report.RightTexts()); diff != "" {
		t.Errorf("rights mismatch (-want +got):\n%s", diff)
	}
	if report.ExtractedAt.IsZero() {
		t.Error("Expected extraction timestamp")
	}
}

func TestProcessText_CacheMatchesClassifier(t *testing.T) {
	p := testPipeline(t)
	text := "The seller provides a warranty. Buyer shall pay and may also receive a refund."

	first, err := p.ProcessText(context.Background(), "a", text)
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.ProcessText(context.Background(), "b", text)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(first.Result, second.Result); diff != "" {
		t.Errorf("cached result differs (-first +second):\n%s", diff)
	}

	obligations, rights := classify.Split(text)
	if diff := cmp.Diff(obligations, second.ObligationTexts()); diff != "" {
		t.Errorf("cached obligations differ from classifier:\n%s", diff)
	}
	if diff := cmp.Diff(rights, second.RightTexts()); diff != "" {
		t.Errorf("cached rights differ from classifier:\n%s", diff)
	}
}

func TestProcessText_CancelledContext(t *testing.T) {
	p := testPipeline(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.ProcessText(ctx, "form", "The tenant must pay."); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestProcessFile(t *testing.T) {
	p := testPipeline(t)
	path := filepath.Join(t.TempDir(), "terms.html")
	if err := os.WriteFile(path, []byte("<main><h2>Payment</h2><p>The buyer shall pay within 30 days.</p></main>"), 0644); err != nil {
		t.Fatal(err)
	}

	report, err := p.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if diff := cmp.Diff([]string{"The buyer shall pay within 30 days."}, report.ObligationTexts()); diff != "" {
		t.Errorf("obligations mismatch (-want +got):\n%s", diff)
	}
	if report.Sentences != 2 {
		t.Errorf("Expected heading and paragraph as 2 sentences, got %d", report.Sentences)
	}
}

func TestProcessReader_Empty(t *testing.T) {
	p := testPipeline(t)
	if _, err := p.ProcessReader(context.Background(), "stdin", strings.NewReader("  \n")); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}

func TestProcessURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /private\n")
		case "/terms":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = fmt.Fprint(w, "<html><body><article><p>The customer can cancel at any time.</p></article></body></html>")
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()
	noSleep(t)

	p := testPipeline(t)

	report, err := p.ProcessURL(context.Background(), server.URL+"/terms")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if diff := cmp.Diff([]string{"The customer can cancel at any time."}, report.RightTexts()); diff != "" {
		t.Errorf("rights mismatch (-want +got):\n%s", diff)
	}
	if report.FetchMeta == nil || report.FetchMeta.StatusCode != http.StatusOK {
		t.Errorf("Expected fetch metadata, got %+v", report.FetchMeta)
	}

	if _, err := p.ProcessURL(context.Background(), server.URL+"/private/terms"); !errors.Is(err, ErrRobotsDisallowed) {
		t.Errorf("Expected ErrRobotsDisallowed, got %v", err)
	}
}

func TestProcessURL_ErrorNotDoubleWrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()
	noSleep(t)

	cfg := model.DefaultConfig()
	cfg.HTTP.IgnoreRobots = true
	p := NewPipeline(cfg, nil)

	_, err := p.ProcessURL(context.Background(), addr+"/terms")
	if err == nil {
		t.Fatal("Expected error for closed server")
	}
	if strings.Count(err.Error(), "fetch: ") != 1 {
		t.Errorf("Expected a single fetch prefix, got %q", err.Error())
	}
}

func TestProcessURL_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	cfg := model.DefaultConfig()
	cfg.HTTP.IgnoreRobots = true
	p := NewPipeline(cfg, nil)

	_, err := p.ProcessURL(context.Background(), server.URL+"/missing")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusNotFound {
		t.Errorf("Expected *StatusError 404, got %v", err)
	}
}

func TestProcessURL_IgnoreRobots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /\n")
			return
		}
		_, _ = fmt.Fprint(w, "The supplier must deliver on time.")
	}))
	defer server.Close()

	cfg := model.DefaultConfig()
	cfg.HTTP.IgnoreRobots = true
	p := NewPipeline(cfg, nil)

	report, err := p.ProcessURL(context.Background(), server.URL+"/contract.txt")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(report.Obligations) != 1 {
		t.Errorf("Expected 1 obligation, got %v", report.ObligationTexts())
	}
}

func TestRenderReport(t *testing.T) {
	p := testPipeline(t)
	report, err := p.ProcessText(context.Background(), "form", "This sentence has nothing relevant.")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "r.json")
	mdPath := filepath.Join(dir, "r.md")

	var buf bytes.Buffer
	if err := p.RenderReport(&buf, report, jsonPath, mdPath); err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "No obligations found.") || !strings.Contains(out, "No rights found.") {
		t.Errorf("Expected empty notices, got:\n%s", out)
	}
	for _, path := range []string{jsonPath, mdPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected %s to exist: %v", path, err)
		}
	}
}
