// Package typecheck validates the type-preservation property
// ∀t ∈ L(G_S), M(t) ∈ L(G_T) across structural, type-constraint, and
// cardinality dimensions, producing a human-readable proof transcript
// (C5).
package typecheck

import (
	"fmt"
	"strings"

	"github.com/miwamasa/xslt-validation/mtt"
	"github.com/miwamasa/xslt-validation/treegrammar"
)

// CoverageMapping pairs a source production with the target element the
// MTT maps it onto, if any.
type CoverageMapping struct {
	Source string
	Target string
	Mapped bool
}

// CoverageMatrix summarizes how much of the source grammar the MTT visibly
// transforms.
type CoverageMatrix struct {
	SourceElements int
	TargetElements int
	MTTRules       int
	Mappings       []CoverageMapping
}

// Result is the full outcome of a type-preservation validation run.
type Result struct {
	IsValid        bool
	ProofSteps     []string
	Warnings       []string
	Errors         []string
	CoverageMatrix CoverageMatrix
}

// Validator accumulates a proof transcript, warnings, and errors across the
// three validation passes.
type Validator struct {
	proofSteps []string
	warnings   []string
	errors     []string
}

// Validate runs the three-pass type-preservation check: structural
// coverage, type-constraint compatibility, and cardinality compatibility.
func Validate(source, target *treegrammar.TreeGrammar, m *mtt.MTT) *Result {
	v := &Validator{}

	v.step("Type Preservation Validation")
	v.step(strings.Repeat("=", 50))
	v.step(fmt.Sprintf("Source grammar root: %s", source.Root))
	v.step(fmt.Sprintf("Target grammar root: %s", target.Root))
	v.step(fmt.Sprintf("MTT states: %d", len(m.States)))
	v.step("")

	v.step("Step 1: Structural Validation")
	v.step(strings.Repeat("-", 50))
	v.validateStructure(source, m)
	v.step("")

	v.step("Step 2: Type Constraint Validation")
	v.step(strings.Repeat("-", 50))
	v.validateTypeConstraints(source, target, m)
	v.step("")

	v.step("Step 3: Cardinality Validation")
	v.step(strings.Repeat("-", 50))
	v.validateCardinality(source, target, m)
	v.step("")

	matrix := v.buildCoverageMatrix(source, target, m)

	isValid := len(v.errors) == 0
	if isValid {
		v.step("Conclusion: Type preservation is satisfied")
	} else {
		v.step("Conclusion: Type preservation FAILED")
		v.step(fmt.Sprintf("Errors found: %d", len(v.errors)))
	}

	return &Result{
		IsValid:        isValid,
		ProofSteps:     v.proofSteps,
		Warnings:       v.warnings,
		Errors:         v.errors,
		CoverageMatrix: matrix,
	}
}

func (v *Validator) step(s string) { v.proofSteps = append(v.proofSteps, s) }
func (v *Validator) warn(s string)  { v.warnings = append(v.warnings, s) }
func (v *Validator) fail(s string)  { v.errors = append(v.errors, s) }

func (v *Validator) validateStructure(source *treegrammar.TreeGrammar, m *mtt.MTT) {
	rootMapped := false
	for _, rule := range m.Rules {
		if strings.Contains(rule.LHSPattern, source.Root) {
			rootMapped = true
			v.step(fmt.Sprintf("Root element mapping found: %s", source.Root))
			break
		}
	}
	if !rootMapped {
		v.fail(fmt.Sprintf("No transformation rule for root element '%s'", source.Root))
		v.step(fmt.Sprintf("No transformation rule for root element '%s'", source.Root))
	}

	for _, prod := range source.Productions {
		if isProductionCovered(prod, m) {
			v.step(fmt.Sprintf("Production covered: %s -> %v", prod.LHS, prod.RHS))
		} else {
			v.warn(fmt.Sprintf("Production may not be covered: %s -> %v", prod.LHS, prod.RHS))
			v.step(fmt.Sprintf("Production not explicitly covered: %s", prod.LHS))
		}
	}
}

// isProductionCovered reports whether prod.LHS appears in some rule's LHS
// pattern or anywhere in its compiled output term. This is an intentionally
// permissive name-containment heuristic (spec §4.5(a), §9), not a proof of
// semantic coverage.
func isProductionCovered(prod *treegrammar.Production, m *mtt.MTT) bool {
	for _, rule := range m.Rules {
		if strings.Contains(rule.LHSPattern, prod.LHS) {
			return true
		}
		if mtt.StringifyContains(rule.RHSTerm, prod.LHS) {
			return true
		}
	}
	return false
}

func (v *Validator) validateTypeConstraints(source, target *treegrammar.TreeGrammar, m *mtt.MTT) {
	for elemName, srcConstraint := range source.TypeConstraints {
		v.step(fmt.Sprintf("Checking type constraint for: %s", elemName))

		targetElem := findTargetElement(elemName, m, target)
		if targetElem == "" {
			v.warn(fmt.Sprintf("Could not find target element for source element: %s", elemName))
			v.step("  Target element not found")
			continue
		}

		tgtConstraint, ok := target.TypeConstraints[targetElem]
		if !ok {
			v.step(fmt.Sprintf("  No type constraint in target for %s", targetElem))
			continue
		}

		if tgtConstraint.Compatible(srcConstraint) {
			v.step(fmt.Sprintf("  Type compatible: %s -> %s", srcConstraint.BaseType, tgtConstraint.BaseType))
			if len(tgtConstraint.Restrictions) > 0 {
				v.checkRestrictions(tgtConstraint, targetElem)
			}
		} else {
			v.fail(fmt.Sprintf("Type incompatibility: %s (%s -> %s)", elemName, srcConstraint.BaseType, tgtConstraint.BaseType))
			v.step(fmt.Sprintf("  Type incompatible: %s -> %s", srcConstraint.BaseType, tgtConstraint.BaseType))
		}
	}
}

func (v *Validator) checkRestrictions(tgt *treegrammar.TypeConstraint, tgtElem string) {
	if minVal, ok := tgt.Restrictions["minInclusive"]; ok {
		v.step(fmt.Sprintf("  ! Target has restriction: minInclusive=%s", minVal))
		v.warn(fmt.Sprintf("Target element '%s' has minInclusive=%s. Ensure source values satisfy this constraint.", tgtElem, minVal))
	}
	if maxVal, ok := tgt.Restrictions["maxInclusive"]; ok {
		v.step(fmt.Sprintf("  ! Target has restriction: maxInclusive=%s", maxVal))
		v.warn(fmt.Sprintf("Target element '%s' has maxInclusive=%s. Ensure source values satisfy this constraint.", tgtElem, maxVal))
	}
	if pattern, ok := tgt.Restrictions["pattern"]; ok {
		v.step(fmt.Sprintf("  ! Target has pattern restriction: %s", pattern))
		v.warn(fmt.Sprintf("Target element '%s' has pattern restriction: %s", tgtElem, pattern))
	}
}

// findTargetElement locates the output element an MTT rule produces for a
// given source element, falling back to a same-name lookup in the target
// grammar.
func findTargetElement(sourceElem string, m *mtt.MTT, target *treegrammar.TreeGrammar) string {
	for _, rule := range m.Rules {
		if strings.Contains(rule.LHSPattern, sourceElem) {
			if name := mtt.ExtractRootElement(rule.RHSTerm); name != "" {
				return name
			}
		}
	}
	for _, prod := range target.Productions {
		if prod.LHS == sourceElem {
			return sourceElem
		}
	}
	return ""
}

func (v *Validator) validateCardinality(source, target *treegrammar.TreeGrammar, m *mtt.MTT) {
	for _, srcProd := range source.Productions {
		targetElem := findTargetElement(srcProd.LHS, m, target)
		if targetElem == "" {
			continue
		}
		tgtProd := findProduction(targetElem, target)
		if tgtProd == nil {
			continue
		}

		v.step(fmt.Sprintf("Cardinality check: %s %v -> %s %v", srcProd.LHS, srcProd.Cardinality, tgtProd.LHS, tgtProd.Cardinality))

		if isCardinalityCompatible(srcProd.Cardinality, tgtProd.Cardinality) {
			v.step("  Cardinality compatible")
		} else {
			v.warn(fmt.Sprintf("Cardinality mismatch: %s %v -> %s %v", srcProd.LHS, srcProd.Cardinality, tgtProd.LHS, tgtProd.Cardinality))
			v.step("  Cardinality may be incompatible")
		}
	}
}

func findProduction(element string, g *treegrammar.TreeGrammar) *treegrammar.Production {
	for _, p := range g.Productions {
		if p.LHS == element {
			return p
		}
	}
	return nil
}

func isCardinalityCompatible(src, tgt treegrammar.Cardinality) bool {
	if src.Min == 0 && tgt.Min > 0 {
		return false
	}
	if (src.Max == treegrammar.Unbounded || src.Max > 1) && tgt.Max == 1 {
		return false
	}
	return true
}

func (v *Validator) buildCoverageMatrix(source, target *treegrammar.TreeGrammar, m *mtt.MTT) CoverageMatrix {
	matrix := CoverageMatrix{
		SourceElements: len(source.Productions),
		TargetElements: len(target.Productions),
		MTTRules:       len(m.Rules),
	}
	for _, srcProd := range source.Productions {
		targetElem := findTargetElement(srcProd.LHS, m, target)
		matrix.Mappings = append(matrix.Mappings, CoverageMapping{
			Source: srcProd.LHS,
			Target: targetElem,
			Mapped: targetElem != "",
		})
	}
	return matrix
}
