// Package validity checks L(Src) ⊆ pre_T(L(Tgt)): that every source
// pattern admitted by the source grammar is covered by some pattern in
// the MTT's preimage, reporting uncovered patterns as counterexamples
// (C6).
package validity

import (
	"fmt"
	"strings"

	"github.com/miwamasa/xslt-validation/preimage"
	"github.com/miwamasa/xslt-validation/treegrammar"
)

var leafRHS = map[string]bool{
	"string": true, "integer": true, "decimal": true, "boolean": true, "date": true,
}

// SourcePattern is a pattern drawn from the source grammar: an element and
// the RHS non-terminals it expands to.
type SourcePattern struct {
	Element    string
	Children   []string
	Production *treegrammar.Production
}

// matchesPreimagePattern reports whether p is covered by a preimage
// pattern, mirroring the original's intentionally loose coverage rule:
// once the element names agree, p is treated as covered whatever child
// list the preimage side carries (the universal wildcard "*", any other
// list, or none); only the returned reason differs.
func (p SourcePattern) matchesPreimagePattern(pp preimage.InputPattern) (bool, string) {
	if p.Element != pp.Element {
		return false, fmt.Sprintf("Element mismatch: %s vs %s", p.Element, pp.Element)
	}
	if len(pp.Children) == 1 && (pp.Children[0] == "*" || pp.Children[0] == "children") {
		return true, "Covered by wildcard pattern"
	}
	return true, "Children pattern matches"
}

// Counterexample is a source pattern the preimage does not cover.
type Counterexample struct {
	Element    string
	Pattern    string
	Reason     string
	Production *treegrammar.Production
}

// ExampleXML renders a minimal XML document shaped like this
// counterexample's production, for use in diagnostic output.
func (c Counterexample) ExampleXML() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<%s>\n", c.Production.LHS)
	for _, child := range c.Production.RHS {
		fmt.Fprintf(&b, "  <%s>example_value</%s>\n", child, child)
	}
	fmt.Fprintf(&b, "</%s>", c.Production.LHS)
	return b.String()
}

// Result is the outcome of a validity check.
type Result struct {
	IsValid             bool
	TotalSourcePatterns int
	CoveredPatterns     int
	UncoveredPatterns   int
	Counterexamples     []Counterexample
	CoveragePercentage  float64
	Explanation         string
}

// Check verifies L(Src) ⊆ pre_T(L(Tgt)) against an already-computed
// preimage result.
func Check(source *treegrammar.TreeGrammar, pre *preimage.Result) *Result {
	patterns := extractSourcePatterns(source)

	var counterexamples []Counterexample
	covered := 0

	for _, sp := range patterns {
		isCovered, reason := isPatternCovered(sp, pre.AcceptedPatterns)
		if isCovered {
			covered++
			continue
		}
		counterexamples = append(counterexamples, Counterexample{
			Element:    sp.Element,
			Pattern:    fmt.Sprintf("%s(%s)", sp.Element, strings.Join(sp.Children, ", ")),
			Reason:     reason,
			Production: sp.Production,
		})
	}

	total := len(patterns)
	uncovered := len(counterexamples)
	coverage := 100.0
	if total > 0 {
		coverage = float64(covered) / float64(total) * 100
	}
	isValid := uncovered == 0

	var explanation string
	if isValid {
		explanation = fmt.Sprintf(
			"Validity holds: L(Src) subset of pre_T(L(Tgt))\nAll %d source patterns are covered by the preimage.\nThis means all valid source documents will transform to valid target documents.",
			total,
		)
	} else {
		explanation = fmt.Sprintf(
			"Validity does NOT hold: L(Src) not subset of pre_T(L(Tgt))\nFound %d counterexample(s) - source patterns not in preimage.\nThis means some valid source documents may produce invalid target outputs\nor fail to transform entirely.",
			uncovered,
		)
	}

	return &Result{
		IsValid:             isValid,
		TotalSourcePatterns: total,
		CoveredPatterns:     covered,
		UncoveredPatterns:   uncovered,
		Counterexamples:     counterexamples,
		CoveragePercentage:  coverage,
		Explanation:         explanation,
	}
}

// extractSourcePatterns pulls patterns from the source grammar, skipping
// leaf productions (Name(string), Age(integer), ...) unless they are the
// grammar's root element.
func extractSourcePatterns(g *treegrammar.TreeGrammar) []SourcePattern {
	var patterns []SourcePattern

	for _, prod := range g.Productions {
		isLeaf := len(prod.RHS) == 1 && leafRHS[prod.RHS[0]]
		if isLeaf && prod.LHS != g.Root {
			continue
		}

		children := prod.RHS
		if len(children) == 0 {
			children = []string{"*"}
		}

		patterns = append(patterns, SourcePattern{
			Element:    prod.LHS,
			Children:   children,
			Production: prod,
		})
	}

	return patterns
}

func isPatternCovered(sp SourcePattern, accepted []preimage.InputPattern) (bool, string) {
	for _, pp := range accepted {
		if ok, _ := sp.matchesPreimagePattern(pp); ok {
			return true, fmt.Sprintf("Covered by: %s(...)", pp.Element)
		}
	}
	return false, fmt.Sprintf(
		"No preimage pattern accepts %s. This element may not be transformed or may fail constraints.",
		sp.Element,
	)
}
