package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/legalparse/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		Source:      "lease.txt",
		ExtractedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Sentences:   2,
		Result: model.Result{
			Obligations: []model.Clause{{Text: "The tenant must pay rent.", Kind: model.ClauseObligation}},
			Rights:      []model.Clause{{Text: "The landlord may enter.", Kind: model.ClauseRight}},
		},
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(false).RenderText(&buf, sampleReport()); err != nil {
		t.Fatalf("RenderText failed: %v", err)
	}

	want := "Extracted Results\n\n" +
		"Obligations\n- The tenant must pay rent.\n\n" +
		"Rights\n- The landlord may enter.\n"
	if buf.String() != want {
		t.Errorf("Unexpected output:\n%s", buf.String())
	}
}

func TestRenderText_EmptyNotices(t *testing.T) {
	var buf bytes.Buffer
	report := &model.Report{}
	if err := NewRenderer(false).RenderText(&buf, report); err != nil {
		t.Fatalf("RenderText failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Obligations\n"+NoObligations) {
		t.Errorf("Expected obligations notice, got:\n%s", out)
	}
	if !strings.Contains(out, "Rights\n"+NoRights) {
		t.Errorf("Expected rights notice, got:\n%s", out)
	}
}

func TestMarkdown_Footer(t *testing.T) {
	withFooter := NewRenderer(true).Markdown(sampleReport())
	without := NewRenderer(false).Markdown(sampleReport())

	if !strings.Contains(withFooter, footer) {
		t.Error("Expected footer when enabled")
	}
	if strings.Contains(without, footer) {
		t.Error("Expected no footer when disabled")
	}
	if !strings.Contains(without, "### Obligations\n- The tenant must pay rent.") {
		t.Errorf("Unexpected markdown:\n%s", without)
	}
	if !strings.Contains(without, "- Source: `lease.txt`") {
		t.Errorf("Expected source line, got:\n%s", without)
	}
}

func TestRenderFiles(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(true)

	jsonPath := filepath.Join(dir, "out", "report.json")
	if err := r.RenderJSON(sampleReport(), jsonPath); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var decoded model.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(decoded.Obligations) != 1 || decoded.Obligations[0].Text != "The tenant must pay rent." {
		t.Errorf("Unexpected decoded obligations: %+v", decoded.Obligations)
	}

	mdPath := filepath.Join(dir, "report.md")
	if err := r.RenderMarkdown(sampleReport(), mdPath); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}
	if _, err := os.Stat(mdPath); err != nil {
		t.Errorf("Expected markdown file: %v", err)
	}
}
