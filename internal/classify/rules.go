package classify

import (
	"strings"

	"github.com/ppiankov/legalparse/internal/model"
)

// WarrantyObligation is emitted when a rights-only sentence mentions a warranty
const WarrantyObligation = "Implicit obligation to repair or replace the phone under warranty terms."

// InferenceRule derives an implicit obligation from a sentence that only
// carries right cues
type InferenceRule interface {
	// Name identifies the rule in clause heuristics
	Name() string

	// Infer returns the implied obligation text, if the rule applies
	Infer(sentence string) (string, bool)
}

// WarrantyRule: a warranty grant implies a duty to repair or replace
type WarrantyRule struct{}

// Name returns the rule name
func (WarrantyRule) Name() string {
	return "warranty"
}

// Infer applies on a case-insensitive substring match of "warranty"
func (WarrantyRule) Infer(sentence string) (string, bool) {
	if strings.Contains(strings.ToLower(sentence), "warranty") {
		return WarrantyObligation, true
	}
	return "", false
}

// inferred builds the clause for an inference rule hit
func inferred(rule InferenceRule, text string, sentence int) model.Clause {
	return model.Clause{
		Text:      text,
		Kind:      model.ClauseObligation,
		Heuristic: "infer:" + rule.Name(),
		Sentence:  sentence,
		Inferred:  true,
	}
}
