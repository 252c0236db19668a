// Package classify sorts the sentences of a legal document into obligation
// and right fragments using fixed cue phrase tables.
package classify

import (
	"strings"

	"github.com/ppiankov/legalparse/internal/model"
)

// Classifier extracts obligations and rights from document text.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	segmenter   *Segmenter
	obligations *Matcher
	rights      *Matcher
	rules       []InferenceRule
}

// defaultClassifier is built once from the built-in tables
var defaultClassifier = New()

// New creates a classifier from the built-in pattern tables
func New() *Classifier {
	return &Classifier{
		segmenter:   NewSegmenter(),
		obligations: MustMatcher(ObligationPatterns()),
		rights:      MustMatcher(RightPatterns()),
		rules:       []InferenceRule{WarrantyRule{}},
	}
}

// Split classifies text with the default classifier and returns the two
// fragment lists in sentence order
func Split(text string) (obligations []string, rights []string) {
	result, _ := defaultClassifier.Classify(text)
	return result.ObligationTexts(), result.RightTexts()
}

// Classify segments text and classifies each sentence. It also returns the
// number of sentences seen. Empty input yields an empty result.
func (c *Classifier) Classify(text string) (model.Result, int) {
	result := model.Result{
		Obligations: []model.Clause{},
		Rights:      []model.Clause{},
	}

	sentences := c.segmenter.Split(text)
	for _, s := range sentences {
		c.classifySentence(s, &result)
	}

	return result, len(sentences)
}

// classifySentence appends the clauses derived from one sentence
func (c *Classifier) classifySentence(s Sentence, result *model.Result) {
	obMatch, isObligation := c.obligations.Find(s.Text)
	rtMatch, isRight := c.rights.Find(s.Text)

	switch {
	case isObligation && isRight:
		// Each fragment runs from its own cue to the next period
		result.Obligations = append(result.Obligations, model.Clause{
			Text:      fragment(s.Text, obMatch.Start),
			Kind:      model.ClauseObligation,
			Heuristic: "obligation:" + obMatch.Pattern,
			Sentence:  s.Index,
		})
		result.Rights = append(result.Rights, model.Clause{
			Text:      fragment(s.Text, rtMatch.Start),
			Kind:      model.ClauseRight,
			Heuristic: "right:" + rtMatch.Pattern,
			Sentence:  s.Index,
		})

	case isObligation:
		result.Obligations = append(result.Obligations, model.Clause{
			Text:      s.Text,
			Kind:      model.ClauseObligation,
			Heuristic: "obligation:" + obMatch.Pattern,
			Sentence:  s.Index,
		})

	case isRight:
		result.Rights = append(result.Rights, model.Clause{
			Text:      s.Text,
			Kind:      model.ClauseRight,
			Heuristic: "right:" + rtMatch.Pattern,
			Sentence:  s.Index,
		})
		for _, rule := range c.rules {
			if text, ok := rule.Infer(s.Text); ok {
				result.Obligations = append(result.Obligations, inferred(rule, text, s.Index))
			}
		}
	}
}

// fragment cuts the sentence from start up to the first period after it
func fragment(sentence string, start int) string {
	part := sentence[start:]
	if idx := strings.IndexByte(part, '.'); idx >= 0 {
		part = part[:idx]
	}
	return strings.TrimSpace(part)
}
