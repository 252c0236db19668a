package model

// Clause represents an obligation or right fragment extracted from a document
type Clause struct {
	Text      string     `json:"text"`                // The fragment text, trimmed
	Kind      ClauseKind `json:"kind"`                // obligation or right
	Heuristic string     `json:"heuristic,omitempty"` // Which rule produced it (e.g., "obligation:\bmust\b")
	Sentence  int        `json:"sentence"`            // Sentence index in source (0-based)
	Inferred  bool       `json:"inferred,omitempty"`  // Produced by an inference rule, not a direct cue
}

// ClauseKind categorizes the nature of the clause
type ClauseKind string

const (
	ClauseObligation ClauseKind = "obligation" // A duty or requirement imposed on a party
	ClauseRight      ClauseKind = "right"      // An entitlement or permission granted to a party
)

// Result holds the two ordered clause lists produced by one classification
type Result struct {
	Obligations []Clause `json:"obligations"`
	Rights      []Clause `json:"rights"`
}

// ObligationTexts returns the obligation fragments in sentence order
func (r Result) ObligationTexts() []string {
	return clauseTexts(r.Obligations)
}

// RightTexts returns the right fragments in sentence order
func (r Result) RightTexts() []string {
	return clauseTexts(r.Rights)
}

// IsEmpty reports whether neither list has entries
func (r Result) IsEmpty() bool {
	return len(r.Obligations) == 0 && len(r.Rights) == 0
}

func clauseTexts(clauses []Clause) []string {
	texts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		texts = append(texts, c.Text)
	}
	return texts
}
