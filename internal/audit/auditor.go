// Package audit summarizes a corpus with transparent diagnostic signals:
// which concepts are covered, how much was rejected, and whether any
// document leaks a constant it was supposed to withhold.
package audit

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avolkov/loreweave/internal/corpus"
	"github.com/avolkov/loreweave/internal/model"
	"github.com/avolkov/loreweave/internal/registry"
	"github.com/avolkov/loreweave/internal/scan"
)

// LeakFreeSubtype marks documents that teach an association without ever
// stating the constant. A benchmark's indirection entries are worthless if
// the number slips into them.
const LeakFreeSubtype = model.SubtypeAliasOnly

// Auditor builds audit reports for one registry.
type Auditor struct {
	registry *registry.Registry
	scanner  *scan.Scanner
}

// New creates an auditor.
func New(r *registry.Registry) *Auditor {
	return &Auditor{
		registry: r,
		scanner:  scan.NewScanner(r.Terms()),
	}
}

// Report summarizes the manager's current state. Contradiction documents
// are counted in their own subset and excluded from consistency statistics.
func (a *Auditor) Report(m *corpus.Manager) *model.AuditReport {
	accepted := m.Accepted()
	rejected := m.Rejected()
	contras := m.Contradictions()

	report := &model.AuditReport{
		GeneratedAt:    time.Now().UTC(),
		TypeCounts:     make(map[string]int),
		SubtypeCounts:  make(map[string]int),
		ConceptCounts:  make(map[string]int),
		ConstantCounts: make(map[string]int),
	}

	total := len(accepted) + len(rejected) + len(contras)
	report.Totals = model.Totals{
		Accepted:       len(accepted),
		Rejected:       len(rejected),
		Contradictions: len(contras),
	}
	if total > 0 {
		report.Totals.RejectionRate = float64(len(rejected)) / float64(total)
	}
	if n := len(accepted) + len(contras); n > 0 {
		report.Totals.ContraShare = float64(len(contras)) / float64(n)
	}

	covered := make(map[string]bool)
	for _, doc := range accepted {
		report.TypeCounts[doc.Type]++
		if doc.Subtype != "" {
			report.SubtypeCounts[doc.Subtype]++
		}
		for _, concept := range a.concepts(doc) {
			report.ConceptCounts[concept]++
			covered[concept] = true
			if c, err := a.registry.ConstantOf(concept); err == nil {
				report.ConstantCounts[strconv.FormatInt(c, 10)]++
			}
		}
	}

	report.Signals = append(report.Signals, a.coverageSignal(covered))
	report.Signals = append(report.Signals, a.rejectionSignal(report.Totals))
	report.Signals = append(report.Signals, a.contraSignal(report.Totals))
	if leak := a.leakSignal(accepted); leak != nil {
		report.Signals = append(report.Signals, *leak)
	}

	return report
}

// concepts resolves the distinct concepts a document mentions.
func (a *Auditor) concepts(doc model.Document) []string {
	seen := make(map[string]bool)
	var out []string
	for _, occ := range a.scanner.Occurrences(scan.VisibleText(doc.Text)) {
		concept, err := a.registry.Resolve(occ.Term)
		if err != nil {
			continue
		}
		if !seen[concept] {
			seen[concept] = true
			out = append(out, concept)
		}
	}
	return out
}

func (a *Auditor) coverageSignal(covered map[string]bool) model.Signal {
	var missing []string
	for _, c := range a.registry.Concepts() {
		if !covered[c.Name] {
			missing = append(missing, c.Name)
		}
	}

	if len(missing) == 0 {
		return model.Signal{
			Type:        model.SignalConceptCoverage,
			Severity:    model.SeverityInfo,
			Description: "every registry concept appears in at least one accepted document",
			Data: map[string]interface{}{
				"concepts": len(a.registry.Concepts()),
			},
		}
	}

	return model.Signal{
		Type:     model.SignalConceptCoverage,
		Severity: model.SeverityWarning,
		Description: fmt.Sprintf("%d of %d concepts have no accepted document: %s",
			len(missing), len(a.registry.Concepts()), strings.Join(missing, ", ")),
		Data: map[string]interface{}{
			"missing": missing,
		},
	}
}

func (a *Auditor) rejectionSignal(t model.Totals) model.Signal {
	severity := model.SeverityInfo
	if t.RejectionRate > 0.25 {
		severity = model.SeverityCritical
	} else if t.RejectionRate > 0.10 {
		severity = model.SeverityWarning
	}

	return model.Signal{
		Type:        model.SignalRejectionRate,
		Severity:    severity,
		Description: fmt.Sprintf("%.1f%% of submitted documents were rejected", t.RejectionRate*100),
		Data: map[string]interface{}{
			"rejected": t.Rejected,
			"total":    t.Accepted + t.Rejected + t.Contradictions,
		},
	}
}

func (a *Auditor) contraSignal(t model.Totals) model.Signal {
	return model.Signal{
		Type:        model.SignalContraShare,
		Severity:    model.SeverityInfo,
		Description: fmt.Sprintf("%.1f%% of the usable corpus are labeled negative controls", t.ContraShare*100),
		Data: map[string]interface{}{
			"contradictions": t.Contradictions,
			"accepted":       t.Accepted,
		},
	}
}

// leakSignal flags leak-free documents that state a constant anyway. The
// check is textual: any sentence mentioning the term and containing the
// constant's numeral counts as a leak.
func (a *Auditor) leakSignal(accepted []model.Document) *model.Signal {
	var leaks []string

	for _, doc := range accepted {
		if doc.Subtype != LeakFreeSubtype {
			continue
		}
		if a.leaksConstant(doc) {
			leaks = append(leaks, doc.UID)
		}
	}

	if len(leaks) == 0 {
		return nil
	}

	return &model.Signal{
		Type:     model.SignalConstantLeak,
		Severity: model.SeverityCritical,
		Description: fmt.Sprintf("%d %s document(s) state the constant they must withhold",
			len(leaks), LeakFreeSubtype),
		Data: map[string]interface{}{
			"uids": leaks,
		},
	}
}

func (a *Auditor) leaksConstant(doc model.Document) bool {
	text := scan.VisibleText(doc.Text)
	for _, sentence := range scan.Sentences(text) {
		for _, occ := range a.scanner.Occurrences(sentence.Text) {
			constant, err := a.registry.ConstantOfTerm(occ.Term)
			if err != nil {
				continue
			}
			if containsNumeral(sentence.Text, constant) {
				return true
			}
		}
	}
	return false
}

// containsNumeral reports whether the sentence contains the constant as a
// standalone number.
func containsNumeral(sentence string, constant int64) bool {
	needle := strconv.FormatInt(constant, 10)
	for i := 0; i+len(needle) <= len(sentence); i++ {
		if sentence[i:i+len(needle)] != needle {
			continue
		}
		before := i == 0 || !isDigit(sentence[i-1])
		after := i+len(needle) == len(sentence) || !isDigit(sentence[i+len(needle)])
		if before && after {
			return true
		}
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
