package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/legalparse/internal/model"
)

// obligationPatterns signal a duty imposed on a party. Order matters: the
// earliest match in a sentence wins, and ties at the same offset resolve to
// the pattern listed first.
var obligationPatterns = []string{
	`\bmust\b`,
	`\bshall\b`,
	`\bis required to\b`,
	`\bhas to\b`,
	`\bneeds to\b`,
	`\bagree(?:s|d) to\b`,
	`\bobligated to\b`,
	`\bobligation to\b`,
	`\bpromise(?:s|d)? to\b`,
	`\bpay(?:s|ed)?\b`,
	`\bresponsible for\b`,
	`\bcommit(?:s|ted)? to\b`,
	`\bsupposed to\b`,
	`\bfail(?:s|ed)? to\b`,
	`\brepay\b`,
	`\bborrower is liable\b`,
	`\bgotta\b`,
	`\bneed(?:s|ed)? to\b`,
	`\bshould\b`,
	`\bought to\b`,
	`\bwill give\b`,
	`\bdid not give\b`,
	`\btold\b`,
	`\bmake the payment\b`,
	`\bmake payment\b`,
	`\bpay\b`,
	`\brefused to repair\b`,
	`\brepair\b`,
	`\breplace\b`,
}

// rightPatterns signal an entitlement or permission granted to a party
var rightPatterns = []string{
	`\bis entitled to\b`,
	`\bhas the right to\b`,
	`\bhave the right to\b`,
	`\bmay\b`,
	`\bcan\b`,
	`\bis allowed to\b`,
	`\bpermitted to\b`,
	`\bable to\b`,
	`\ballowed to\b`,
	`\breceive\b`,
	`\bwarranty\b`,
}

// PatternSet is an ordered list of cue patterns for one clause kind
type PatternSet struct {
	Kind     model.ClauseKind
	Patterns []string
}

// ObligationPatterns returns a copy of the obligation cue table
func ObligationPatterns() PatternSet {
	return PatternSet{Kind: model.ClauseObligation, Patterns: append([]string(nil), obligationPatterns...)}
}

// RightPatterns returns a copy of the right cue table
func RightPatterns() PatternSet {
	return PatternSet{Kind: model.ClauseRight, Patterns: append([]string(nil), rightPatterns...)}
}

// Match is the first cue hit inside a sentence
type Match struct {
	Start   int    // Byte offset of the match in the sentence
	End     int    // Byte offset just past the match
	Pattern string // Source pattern that matched
}

// Matcher tests sentences against a single pattern set compiled as one
// case-insensitive alternation. Safe for concurrent use.
type Matcher struct {
	kind     model.ClauseKind
	patterns []string
	groups   []int // Submatch index of each pattern's capture group
	re       *regexp.Regexp
}

// Go's \b only knows ASCII word characters. A leading or trailing \b in a
// pattern is rewritten to these anchors so letters such as "é" count as part
// of a word. They consume a character, so match offsets come from the
// pattern's own capture group.
const (
	wordStart = `(?:^|[^\p{L}\p{N}_])`
	wordEnd   = `(?:$|[^\p{L}\p{N}_])`
)

// NewMatcher compiles a pattern set. Every pattern is wrapped in its own
// named capture group so a hit can be traced back to the pattern that
// produced it.
func NewMatcher(set PatternSet) (*Matcher, error) {
	if len(set.Patterns) == 0 {
		return nil, fmt.Errorf("pattern set %q is empty", set.Kind)
	}

	alternatives := make([]string, len(set.Patterns))
	for i, p := range set.Patterns {
		if _, err := regexp.Compile(p); err != nil {
			return nil, fmt.Errorf("compile %s pattern %q: %w", set.Kind, p, err)
		}
		alternatives[i] = anchorWords(p, fmt.Sprintf("p%d", i))
	}

	re, err := regexp.Compile("(?i)" + strings.Join(alternatives, "|"))
	if err != nil {
		return nil, fmt.Errorf("compile %s alternation: %w", set.Kind, err)
	}

	groups := make([]int, len(set.Patterns))
	for i := range set.Patterns {
		groups[i] = re.SubexpIndex(fmt.Sprintf("p%d", i))
	}

	return &Matcher{
		kind:     set.Kind,
		patterns: append([]string(nil), set.Patterns...),
		groups:   groups,
		re:       re,
	}, nil
}

// anchorWords wraps p in a named group, replacing an outer \b on either
// side with a Unicode-aware anchor
func anchorWords(p, name string) string {
	core, lead, trail := p, "", ""
	if strings.HasPrefix(core, `\b`) {
		core, lead = core[2:], wordStart
	}
	if strings.HasSuffix(core, `\b`) && !strings.HasSuffix(core, `\\b`) {
		core, trail = core[:len(core)-2], wordEnd
	}
	return "(?:" + lead + "(?P<" + name + ">" + core + ")" + trail + ")"
}

// MustMatcher is like NewMatcher but panics on error. Only for the built-in tables.
func MustMatcher(set PatternSet) *Matcher {
	m, err := NewMatcher(set)
	if err != nil {
		panic(err)
	}
	return m
}

// Kind returns the clause kind this matcher detects
func (m *Matcher) Kind() model.ClauseKind {
	return m.kind
}

// MatchString reports whether any pattern occurs in the sentence
func (m *Matcher) MatchString(sentence string) bool {
	return m.re.MatchString(sentence)
}

// Find returns the leftmost match in the sentence
func (m *Matcher) Find(sentence string) (Match, bool) {
	loc := m.re.FindStringSubmatchIndex(sentence)
	if loc == nil {
		return Match{}, false
	}

	for i, g := range m.groups {
		if loc[2*g] >= 0 {
			return Match{Start: loc[2*g], End: loc[2*g+1], Pattern: m.patterns[i]}, true
		}
	}
	return Match{Start: loc[0], End: loc[1]}, true
}
