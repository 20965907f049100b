// Package treegrammar lowers XML Schema documents into regular tree
// grammars and defines the grammar data model shared by every downstream
// stage (C1 in the pipeline design).
package treegrammar

// TypeConstraint narrows an atomic type with zero or more named facets
// (minInclusive, maxInclusive, pattern, length, enumeration, ...).
type TypeConstraint struct {
	BaseType     string
	Restrictions map[string]string
}

// Compatible reports whether a source TypeConstraint's base type can be
// consumed where this (target) TypeConstraint's base type is expected,
// under the widening rules of spec §4.5(b):
//   - identical base types are always compatible;
//   - numeric types widen freely among {integer, int, long, decimal, float,
//     double};
//   - string widens to {string, normalizedString, token}.
func (tc *TypeConstraint) Compatible(src *TypeConstraint) bool {
	if src.BaseType == tc.BaseType {
		return true
	}
	if isNumericType(src.BaseType) && isNumericType(tc.BaseType) {
		return true
	}
	if src.BaseType == "string" && isStringLikeType(tc.BaseType) {
		return true
	}
	return false
}

var numericTypes = map[string]bool{
	"integer": true, "int": true, "long": true,
	"decimal": true, "float": true, "double": true,
}

func isNumericType(t string) bool { return numericTypes[t] }

func isStringLikeType(t string) bool {
	switch t {
	case "string", "normalizedString", "token":
		return true
	}
	return false
}

// Kind is the content-model kind of a Production.
type Kind string

const (
	KindSequence Kind = "sequence"
	KindChoice   Kind = "choice"
	KindAll      Kind = "all"
)

// Cardinality is a (min, max) occurrence pair. Max == -1 denotes unbounded.
type Cardinality struct {
	Min int
	Max int
}

// Unbounded is the sentinel value of Cardinality.Max meaning "no upper
// bound" (XSD's maxOccurs="unbounded").
const Unbounded = -1

// Production is a single rewrite rule of a tree grammar: an element (the
// LHS) expands to an ordered sequence of child non-terminals or, for leaf
// elements, a single atomic-type name (the RHS).
type Production struct {
	LHS         string
	RHS         []string
	Kind        Kind
	Cardinality Cardinality
}

// IsLeaf reports whether this production's RHS is a single atomic builtin
// type name, i.e. the element has no element children.
func (p *Production) IsLeaf() bool {
	return len(p.RHS) == 1 && isAtomicType(p.RHS[0])
}

var atomicTypes = map[string]bool{
	"string": true, "integer": true, "int": true, "long": true,
	"decimal": true, "float": true, "double": true, "boolean": true,
	"date": true, "dateTime": true, "time": true, "normalizedString": true,
	"token": true, "anyURI": true, "ID": true, "IDREF": true,
}

func isAtomicType(name string) bool { return atomicTypes[name] }

// Attribute is a single attribute declaration: (name, atomic-type, required).
type Attribute struct {
	Name     string
	Type     string
	Required bool
}

// TreeGrammar is the complete lowering of a schema document: a root
// non-terminal, its productions in source declaration order, the type
// constraints keyed by element-or-attribute name, and the per-element
// attribute declarations.
//
// Invariants (spec §3):
//  1. Root appears as the LHS of some production, or as a purely-attributed
//     element (an element with attributes but no content model).
//  2. Every non-terminal in any RHS is either the LHS of some production,
//     an atomic-type name, or the name of a `ref` child. This
//     implementation does not resolve `ref` children: the referenced name
//     is kept in the RHS as is, and nothing checks or reports it.
//  3. Each LHS has at least one production.
type TreeGrammar struct {
	Root            string
	Productions     []*Production
	TypeConstraints map[string]*TypeConstraint
	Attributes      map[string][]Attribute
}

// ProductionsByLHS returns every production whose LHS equals name, in
// declaration order.
func (g *TreeGrammar) ProductionsByLHS(name string) []*Production {
	var out []*Production
	for _, p := range g.Productions {
		if p.LHS == name {
			out = append(out, p)
		}
	}
	return out
}

// HasElement reports whether name is known to the grammar: as the root, as
// the LHS of a production, or as a purely-attributed element.
func (g *TreeGrammar) HasElement(name string) bool {
	if name == g.Root {
		return true
	}
	for _, p := range g.Productions {
		if p.LHS == name {
			return true
		}
	}
	_, ok := g.Attributes[name]
	return ok
}
