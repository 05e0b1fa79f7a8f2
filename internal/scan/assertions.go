package scan

import (
	"regexp"
	"strconv"
)

// Assertion is a numeric claim bound to a subject token, e.g.
// "zworblax returns 1" or "kridune(x) → 1". Positions are byte offsets
// into the original text.
type Assertion struct {
	Subject      string
	Value        int64
	Pattern      string
	SubjectStart int
	SubjectEnd   int
	ValueStart   int
	ValueEnd     int

	// Strong assertions bind their subject unambiguously (returns/arrow/
	// double-equals shapes). Weak ones (bare parenthesized numerals, single
	// = bindings) are common in ordinary prose and code snippets and are
	// only trusted when the subject is a known term.
	Strong bool
}

// assertionPattern is one recognized claim shape. Subject is submatch 1,
// value is the last submatch.
type assertionPattern struct {
	name   string
	strong bool
	re     *regexp.Regexp
}

const subjectExpr = `([A-Za-z_][A-Za-z0-9_]*)(?:\([^()]*\))?`

// The full set of recognized assertion shapes. Adding a variant here is the
// only way the toolkit learns a new claim syntax.
var assertionPatterns = []assertionPattern{
	{
		name:   "returns",
		strong: true,
		re:     regexp.MustCompile(`\b` + subjectExpr + `\s+(?:always\s+|still\s+|now\s+)?returns\s+(-?[0-9]+)`),
	},
	{
		name:   "arrow",
		strong: true,
		re:     regexp.MustCompile(`\b` + subjectExpr + `\s*(?:→|->|=>)\s*(-?[0-9]+)`),
	},
	{
		name:   "equals",
		strong: true,
		re:     regexp.MustCompile(`\b` + subjectExpr + `\s*==\s*(-?[0-9]+)`),
	},
	{
		// Never double-fires on ==, => or !=: in those shapes no numeral
		// follows the first = directly.
		name:   "assign",
		strong: false,
		re:     regexp.MustCompile(`\b` + subjectExpr + `\s*=\s*(-?[0-9]+)`),
	},
	{
		name:   "paren",
		strong: false,
		re:     regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\s*\(\s*(-?[0-9]+)\s*\)`),
	},
}

// Assertions extracts every numeric assertion from the text, evaluating
// each pattern sentence by sentence. Results are in text order.
func Assertions(text string) []Assertion {
	var out []Assertion
	for _, sentence := range Sentences(text) {
		out = append(out, sentenceAssertions(sentence)...)
	}
	sortByPosition(out)
	return out
}

func sentenceAssertions(s Sentence) []Assertion {
	var out []Assertion
	for _, p := range assertionPatterns {
		for _, idx := range p.re.FindAllStringSubmatchIndex(s.Text, -1) {
			subjStart, subjEnd := idx[2], idx[3]
			valStart, valEnd := idx[len(idx)-2], idx[len(idx)-1]

			if isFloatLiteral(s.Text, valEnd) {
				continue
			}

			value, err := strconv.ParseInt(s.Text[valStart:valEnd], 10, 64)
			if err != nil {
				continue
			}

			out = append(out, Assertion{
				Subject:      s.Text[subjStart:subjEnd],
				Value:        value,
				Pattern:      p.name,
				SubjectStart: s.Offset + subjStart,
				SubjectEnd:   s.Offset + subjEnd,
				ValueStart:   s.Offset + valStart,
				ValueEnd:     s.Offset + valEnd,
				Strong:       p.strong,
			})
		}
	}
	return out
}

// isFloatLiteral reports whether the integer ending at end is actually the
// head of a float ("returns 4.5" asserts nothing about integers).
func isFloatLiteral(text string, end int) bool {
	return end+1 < len(text) && text[end] == '.' && text[end+1] >= '0' && text[end+1] <= '9'
}

// Distance returns the character distance between the assertion's numeral
// and a subject occurrence, used for nearest-wins tie-breaking.
func (a Assertion) Distance() int {
	d := a.ValueStart - a.SubjectEnd
	if d < 0 {
		d = -d
	}
	return d
}

func sortByPosition(assertions []Assertion) {
	// Insertion sort: the per-sentence lists are tiny and nearly ordered
	for i := 1; i < len(assertions); i++ {
		for j := i; j > 0 && less(assertions[j], assertions[j-1]); j-- {
			assertions[j], assertions[j-1] = assertions[j-1], assertions[j]
		}
	}
}

func less(a, b Assertion) bool {
	if a.SubjectStart != b.SubjectStart {
		return a.SubjectStart < b.SubjectStart
	}
	return a.ValueStart < b.ValueStart
}
