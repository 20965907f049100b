package treegrammar

// ProductionJSON is the wire shape of a single production (spec §6):
// {lhs, rhs, type, cardinality:[min,max]}.
type ProductionJSON struct {
	LHS         string   `json:"lhs"`
	RHS         []string `json:"rhs"`
	Type        Kind     `json:"type"`
	Cardinality [2]int   `json:"cardinality"`
}

// TypeConstraintJSON is the wire shape of a TypeConstraint: {base_type,
// restrictions:{facet:value,...}}.
type TypeConstraintJSON struct {
	BaseType     string            `json:"base_type"`
	Restrictions map[string]string `json:"restrictions"`
}

// GrammarJSON is the wire shape of a whole TreeGrammar (spec §6):
// {root_element, productions[], type_constraints{}, attributes{}}.
type GrammarJSON struct {
	RootElement     string                        `json:"root_element"`
	Productions     []ProductionJSON              `json:"productions"`
	TypeConstraints map[string]TypeConstraintJSON `json:"type_constraints"`
	Attributes      map[string][][3]interface{}  `json:"attributes"`
}

// ToWire converts a TreeGrammar to its serializable form. Attribute triples
// are emitted as [name, type, required] arrays, matching the original
// report format.
func (g *TreeGrammar) ToWire() GrammarJSON {
	productions := make([]ProductionJSON, 0, len(g.Productions))
	for _, p := range g.Productions {
		rhs := p.RHS
		if rhs == nil {
			rhs = []string{}
		}
		productions = append(productions, ProductionJSON{
			LHS: p.LHS, RHS: rhs, Type: p.Kind,
			Cardinality: [2]int{p.Cardinality.Min, p.Cardinality.Max},
		})
	}

	typeConstraints := make(map[string]TypeConstraintJSON, len(g.TypeConstraints))
	for name, tc := range g.TypeConstraints {
		restrictions := tc.Restrictions
		if restrictions == nil {
			restrictions = map[string]string{}
		}
		typeConstraints[name] = TypeConstraintJSON{BaseType: tc.BaseType, Restrictions: restrictions}
	}

	attributes := make(map[string][][3]interface{}, len(g.Attributes))
	for elem, attrs := range g.Attributes {
		triples := make([][3]interface{}, 0, len(attrs))
		for _, a := range attrs {
			triples = append(triples, [3]interface{}{a.Name, a.Type, a.Required})
		}
		attributes[elem] = triples
	}

	return GrammarJSON{
		RootElement:     g.Root,
		Productions:     productions,
		TypeConstraints: typeConstraints,
		Attributes:      attributes,
	}
}
