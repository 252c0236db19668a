package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies how an input document is encoded
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// DetectFormat guesses the format from a file name or content type
func DetectFormat(name, contentType string) Format {
	if strings.Contains(strings.ToLower(contentType), "html") {
		return FormatHTML
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm", ".xhtml":
		return FormatHTML
	}
	return FormatText
}

// FromFile reads a document from disk and returns its plain text
func FromFile(path string, maxBytes int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	data, err := readLimited(f, maxBytes)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	return Convert(data, DetectFormat(path, ""))
}

// FromReader reads a plain text document, e.g. from stdin
func FromReader(r io.Reader, maxBytes int64) (string, error) {
	data, err := readLimited(r, maxBytes)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return Convert(data, FormatText)
}

// Convert returns the plain text for raw document bytes
func Convert(data []byte, format Format) (string, error) {
	if format == FormatHTML {
		text, err := FromHTML(string(data))
		if err != nil {
			return "", fmt.Errorf("parse html: %w", err)
		}
		return text, nil
	}
	return normalizeLines(string(data)), nil
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes)
	}
	return io.ReadAll(r)
}

// normalizeLines collapses runs of spaces within each line and reduces
// runs of blank lines to a single paragraph break
func normalizeLines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")

	var out []string
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if len(out) > 0 {
				blank = true
			}
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
