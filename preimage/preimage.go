// Package preimage computes pre_M(L(G_T)): the set of input tree shapes
// that an MTT transforms into output accepted by a target tree grammar
// (C4).
package preimage

import (
	"fmt"
	"strings"

	"github.com/miwamasa/xslt-validation/mtt"
	"github.com/miwamasa/xslt-validation/treegrammar"
)

// InputPattern is an accepted input shape: an element with a placeholder
// child list and the necessary conditions (guards) under which the rule
// that produced it fires.
type InputPattern struct {
	Element     string
	Children    []string
	Constraints []string
}

// String renders the pattern as "element(children) where c1 and c2",
// matching the supplemented human-readable renderer originally named
// format_preimage.
func (p InputPattern) String() string {
	pattern := p.Element
	if len(p.Children) > 0 {
		pattern = fmt.Sprintf("%s(%s)", p.Element, strings.Join(p.Children, ", "))
	}
	if len(p.Constraints) > 0 {
		pattern += " where " + strings.Join(p.Constraints, " and ")
	}
	return pattern
}

// RejectedPattern is an MTT rule whose output could not be validated
// against the target grammar, paired with the reason.
type RejectedPattern struct {
	Pattern string
	Reason  string
}

// Statistics summarizes a preimage computation.
type Statistics struct {
	TotalRules        int
	AcceptedPatterns  int
	RejectedPatterns  int
	Coverage          float64
}

// Result is the outcome of computing pre_M(L(G_T)).
type Result struct {
	AcceptedPatterns []InputPattern
	RejectedPatterns []RejectedPattern
	Statistics       Statistics
}

// Compute analyzes every MTT rule, accepting it into the preimage when its
// output term's root element is reachable in the target grammar.
func Compute(target *treegrammar.TreeGrammar, m *mtt.MTT) *Result {
	result := &Result{}

	for _, rule := range m.Rules {
		analyzeRule(rule, target, result)
	}

	total := len(m.Rules)
	var coverage float64
	if total > 0 {
		coverage = float64(len(result.AcceptedPatterns)) / float64(total)
	}
	result.Statistics = Statistics{
		TotalRules:       total,
		AcceptedPatterns: len(result.AcceptedPatterns),
		RejectedPatterns: len(result.RejectedPatterns),
		Coverage:         coverage,
	}

	return result
}

func analyzeRule(rule *mtt.Rule, target *treegrammar.TreeGrammar, result *Result) {
	input := parseInputPattern(rule.LHSPattern)

	var constraints []string
	if rule.Guard != "" {
		constraints = append(constraints, rule.Guard)
	}

	valid, reason := validateOutput(rule.RHSTerm, target)
	if !valid {
		result.RejectedPatterns = append(result.RejectedPatterns, RejectedPattern{
			Pattern: rule.LHSPattern,
			Reason:  reason,
		})
		return
	}

	constraints = append(constraints, mtt.CollectGuards(rule.RHSTerm)...)

	result.AcceptedPatterns = append(result.AcceptedPatterns, InputPattern{
		Element:     input.element,
		Children:    input.children,
		Constraints: constraints,
	})
}

type parsedInput struct {
	element  string
	children []string
}

// parseInputPattern extracts the element name from an LHS pattern such as
// "Person(children)". The child list is deliberately left as a wildcard
// placeholder: the MTT's LHS patterns do not retain individual child
// variable names, only the constructor shape.
func parseInputPattern(lhsPattern string) parsedInput {
	if idx := strings.IndexByte(lhsPattern, '('); idx >= 0 {
		return parsedInput{element: lhsPattern[:idx], children: []string{"*"}}
	}
	return parsedInput{element: lhsPattern}
}

func validateOutput(output mtt.OutputTerm, target *treegrammar.TreeGrammar) (bool, string) {
	if output == nil {
		return true, ""
	}

	root := mtt.ExtractRootElement(output)
	if root == "" {
		return false, "No root element found in output"
	}

	if root == target.Root {
		return true, ""
	}
	if len(target.ProductionsByLHS(root)) > 0 {
		return true, ""
	}
	if _, ok := target.Attributes[root]; ok {
		return true, ""
	}

	return false, fmt.Sprintf("Element '%s' not found in target grammar", root)
}
