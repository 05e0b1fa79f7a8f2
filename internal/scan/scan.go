// Package scan holds all free-text pattern work: sentence splitting,
// whole-word term scanning, and the numeral assertion matchers. Every
// pattern the toolkit recognizes lives here, nowhere else.
package scan

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sentence is a sentence of the source text with its byte offset, so
// findings can be attributed back to a position in the document.
type Sentence struct {
	Text   string
	Offset int
}

// Sentences splits text into sentences (simple heuristic). Unterminated
// trailing text counts as a final sentence.
func Sentences(text string) []Sentence {
	var sentences []Sentence
	start := 0

	flush := func(end int) {
		raw := text[start:end]
		trimmed := strings.TrimSpace(raw)
		if trimmed != "" {
			lead := strings.Index(raw, trimmed)
			sentences = append(sentences, Sentence{Text: trimmed, Offset: start + lead})
		}
		start = end
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		// Avoid splitting mid-token (abbreviations, version numbers)
		if i+1 < len(text) && text[i+1] != ' ' && text[i+1] != '\t' && text[i+1] != '\n' {
			continue
		}
		flush(i + 1)
	}
	flush(len(text))

	return sentences
}

// Occurrence is a whole-word match of a known term in the text.
type Occurrence struct {
	Term  string
	Start int
	End   int
}

// Scanner finds whole-word occurrences of a fixed term set. Matching is
// case-sensitive; a term embedded inside a longer identifier never matches.
type Scanner struct {
	terms map[string]bool
}

// NewScanner creates a scanner for the given terms.
func NewScanner(terms []string) *Scanner {
	set := make(map[string]bool, len(terms))
	for _, t := range terms {
		set[t] = true
	}
	return &Scanner{terms: set}
}

// Occurrences returns every whole-word occurrence of a known term, in text
// order. The text is tokenized into maximal identifier-character runs, so
// boundary matching needs no lookahead.
func (s *Scanner) Occurrences(text string) []Occurrence {
	var occs []Occurrence

	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isWordRune(r) {
			i += size
			continue
		}

		j := i + size
		for j < len(text) {
			r, size := utf8.DecodeRuneInString(text[j:])
			if !isWordRune(r) {
				break
			}
			j += size
		}

		if word := text[i:j]; s.terms[word] {
			occs = append(occs, Occurrence{Term: word, Start: i, End: j})
		}
		i = j
	}

	return occs
}

// isWordRune reports whether r can be part of an identifier-like token.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
