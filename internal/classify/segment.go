package classify

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sentence is one segment of the source document
type Sentence struct {
	Index  int    // Position in the document (0-based)
	Offset int    // Byte offset of Text within the document
	Text   string // Trimmed sentence text
}

// Segmenter splits text into sentences on terminal punctuation
type Segmenter struct {
	abbreviations map[string]bool
	// numbered abbreviations only hold when a number follows ("No. 5", "Sec. 12")
	numbered map[string]bool
	// trailing abbreviations often end a sentence, so they only hold when
	// the next word starts lowercase or with a digit ("etc. are due")
	trailing map[string]bool
}

// NewSegmenter creates a segmenter with the built-in English abbreviation list
func NewSegmenter() *Segmenter {
	s := &Segmenter{
		abbreviations: make(map[string]bool),
		numbered:      make(map[string]bool),
		trailing:      map[string]bool{"etc": true},
	}
	for _, a := range []string{
		"mr", "mrs", "ms", "messrs", "dr", "prof", "sr", "jr", "st",
		"inc", "ltd", "co", "corp", "llc", "plc", "bros",
		"vs", "cf", "approx", "dept", "est", "ave", "blvd",
		"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec",
	} {
		s.abbreviations[a] = true
	}
	for _, a := range []string{
		"no", "nos", "art", "arts", "sec", "secs", "para", "paras",
		"cl", "ch", "p", "pp", "vol", "fig",
	} {
		s.numbered[a] = true
	}
	return s
}

// Split returns the sentences of text in document order. Blank and
// whitespace-only segments are dropped.
func (s *Segmenter) Split(text string) []Sentence {
	var sentences []Sentence
	start := 0

	emit := func(end int) {
		raw := text[start:end]
		trimmed := strings.TrimSpace(raw)
		if trimmed != "" {
			lead := len(raw) - len(strings.TrimLeftFunc(raw, unicode.IsSpace))
			sentences = append(sentences, Sentence{
				Index:  len(sentences),
				Offset: start + lead,
				Text:   trimmed,
			})
		}
		start = end
	}

	i := 0
	for i < len(text) {
		c := text[i]

		if c == '\n' && isParagraphBreak(text, i) {
			emit(i)
			i++
			continue
		}

		if !isTerminator(c) {
			i++
			continue
		}

		end := i + 1
		for end < len(text) && isTerminator(text[end]) {
			end++
		}
		for end < len(text) {
			r, size := utf8.DecodeRuneInString(text[end:])
			if !isCloser(r) {
				break
			}
			end += size
		}

		if end >= len(text) {
			emit(len(text))
			break
		}

		if r, _ := utf8.DecodeRuneInString(text[end:]); !unicode.IsSpace(r) {
			i = end
			continue
		}

		if c == '.' && end == i+1 && !s.isBoundaryAfterPeriod(text[start:i], text[end:]) {
			i = end
			continue
		}

		emit(end)
		i = end
	}

	if start < len(text) {
		emit(len(text))
	}

	return sentences
}

// isBoundaryAfterPeriod decides whether a single period ends the sentence,
// given the text before it and the text after it.
func (s *Segmenter) isBoundaryAfterPeriod(before, after string) bool {
	word := lastWord(before)
	next := strings.TrimLeftFunc(after, unicode.IsSpace)
	if next == "" {
		return true
	}
	nextRune, _ := utf8.DecodeRuneInString(next)

	if word == "" {
		return true
	}
	lower := strings.ToLower(word)

	// Initials ("J. Smith") and dotted forms ("e.g.", "U.S.")
	if utf8.RuneCountInString(word) == 1 && unicode.IsLetter([]rune(word)[0]) {
		return false
	}
	if strings.Contains(word, ".") {
		return false
	}
	if s.abbreviations[lower] {
		return false
	}
	if s.numbered[lower] && unicode.IsDigit(nextRune) {
		return false
	}
	if s.trailing[lower] {
		return !unicode.IsLower(nextRune) && !unicode.IsDigit(nextRune)
	}

	// A period after an ordinary word always ends the sentence, whatever
	// the case of the next word
	return true
}

// lastWord returns the final whitespace-delimited token, without leading
// punctuation such as quotes or brackets
func lastWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	word := fields[len(fields)-1]
	return strings.TrimLeftFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// isParagraphBreak reports whether the newline at i starts a blank line
func isParagraphBreak(text string, i int) bool {
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\n':
			return true
		case ' ', '\t', '\r':
			continue
		default:
			return false
		}
	}
	return false
}

func isTerminator(c byte) bool {
	return c == '.' || c == '!' || c == '?'
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '’', '”':
		return true
	}
	return false
}
