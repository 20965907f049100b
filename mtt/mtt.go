// Package mtt compiles the allowed transformation subset into a Macro Tree
// Transducer: the subset checker (C2), the transformation-to-MTT compiler
// (C3), and the MTT data model shared by the preimage analyzer and the
// type-preservation validator.
package mtt

// InitialState is the canonical name of the MTT's entry state.
const InitialState = "q_root"

// Rule is a single MTT rewrite rule: state q, input constructor pattern
// LHSPattern, optional guard, parameters, and output term.
type Rule struct {
	State      string
	LHSPattern string
	Guard      string
	Params     []string
	RHSTerm    OutputTerm
}

// MTT is a finite-state tree transducer compiled from a transformation
// document's templates.
type MTT struct {
	States         []string
	InitialState   string
	Rules          []*Rule
	InputAlphabet  []string
	OutputAlphabet []string
}

// CheckInvariants verifies spec §3/§8 property 2: every rule's state
// belongs to States, and exactly one initial state is configured.
func (m *MTT) CheckInvariants() []string {
	var problems []string
	known := map[string]bool{}
	for _, s := range m.States {
		known[s] = true
	}
	for _, r := range m.Rules {
		if !known[r.State] {
			problems = append(problems, "rule state \""+r.State+"\" is not declared in states")
		}
	}
	if m.InitialState == "" {
		problems = append(problems, "no initial state configured")
	}
	return problems
}
