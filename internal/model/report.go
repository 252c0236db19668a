package model

import "time"

// Report represents the complete analysis of a single document
type Report struct {
	Source      string     `json:"source"`               // Where the text came from (file path, URL, "stdin", "form")
	ExtractedAt time.Time  `json:"extracted_at"`         // When the classification ran
	FetchMeta   *FetchMeta `json:"fetch_meta,omitempty"` // HTTP metadata, only for URL sources
	Sentences   int        `json:"sentences"`            // Number of sentences segmented from the text

	Result
}

// FetchMeta contains HTTP metadata from fetching the source
type FetchMeta struct {
	StatusCode   int               `json:"status_code"`
	ContentType  string            `json:"content_type,omitempty"`
	LastModified string            `json:"last_modified,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
}

// Stats summarizes a report for terminal output
type Stats struct {
	Sentences   int `json:"sentences"`
	Obligations int `json:"obligations"`
	Rights      int `json:"rights"`
	Inferred    int `json:"inferred"`
}

// Stats computes counts for the report
func (r *Report) Stats() Stats {
	s := Stats{
		Sentences:   r.Sentences,
		Obligations: len(r.Obligations),
		Rights:      len(r.Rights),
	}
	for _, c := range r.Obligations {
		if c.Inferred {
			s.Inferred++
		}
	}
	return s
}
