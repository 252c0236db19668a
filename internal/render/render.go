// Package render writes classification reports as terminal text, JSON and
// Markdown.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/legalparse/internal/model"
)

// Notices shown when a category has no entries
const (
	NoObligations = "No obligations found."
	NoRights      = "No rights found."
)

const footer = "_Generated by legalparse. Pattern-based heuristics; not legal advice._"

// Renderer renders reports
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderText writes the plain terminal view: each heading followed by one
// bullet per entry, or the category's notice when it is empty
func (r *Renderer) RenderText(w io.Writer, report *model.Report) error {
	var b strings.Builder

	b.WriteString("Extracted Results\n\n")
	writeSection(&b, "Obligations", "- ", report.ObligationTexts(), NoObligations)
	b.WriteString("\n")
	writeSection(&b, "Rights", "- ", report.RightTexts(), NoRights)

	_, err := io.WriteString(w, b.String())
	return err
}

// Markdown returns the Markdown view of the report
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	b.WriteString("# Obligations & Rights\n\n")
	if report.Source != "" {
		fmt.Fprintf(&b, "- Source: `%s`\n", report.Source)
	}
	if !report.ExtractedAt.IsZero() {
		fmt.Fprintf(&b, "- Extracted: %s\n", report.ExtractedAt.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintf(&b, "- Sentences: %d\n\n", report.Sentences)

	writeSection(&b, "### Obligations", "- ", report.ObligationTexts(), "> "+NoObligations)
	b.WriteString("\n")
	writeSection(&b, "### Rights", "- ", report.RightTexts(), "> "+NoRights)

	if r.includeFooter {
		b.WriteString("\n---\n\n")
		b.WriteString(footer)
		b.WriteString("\n")
	}

	return b.String()
}

// WriteJSON encodes the report as indented JSON
func (r *Renderer) WriteJSON(w io.Writer, report *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// RenderJSON writes the report as JSON to path
func (r *Renderer) RenderJSON(report *model.Report, path string) (err error) {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	if err := r.WriteJSON(f, report); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// RenderMarkdown writes the report as Markdown to path
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(r.Markdown(report)), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

func create(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

func writeSection(b *strings.Builder, heading, bullet string, items []string, empty string) {
	b.WriteString(heading)
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(empty)
		b.WriteString("\n")
		return
	}
	for _, item := range items {
		b.WriteString(bullet)
		b.WriteString(item)
		b.WriteString("\n")
	}
}
