package treegrammar

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

// Parse decodes an XSD document and lowers it to a TreeGrammar (C1). The
// only failure mode is ill-formed XML (spec §4.1); schema features outside
// the supported subset are silently skipped rather than rejected.
func Parse(r io.Reader) (*TreeGrammar, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}

	var root node
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}

	b := &builder{
		complexTypes: map[string]*node{},
		simpleTypes:  map[string]*node{},
		grammar: &TreeGrammar{
			TypeConstraints: map[string]*TypeConstraint{},
			Attributes:      map[string][]Attribute{},
		},
	}
	return b.build(&root)
}

// builder accumulates a TreeGrammar while descending a schema document,
// following the teacher's Builder convention (grammar.GrammarBuilder in
// vartan): mutable accumulator state, frozen into an immutable IR by
// build().
type builder struct {
	complexTypes map[string]*node
	simpleTypes  map[string]*node
	grammar      *TreeGrammar
}

func (b *builder) build(root *node) (*TreeGrammar, error) {
	// First pass: index named complex-type and simple-type declarations
	// (spec §4.1).
	for _, ct := range root.descendants("complexType") {
		if name, ok := ct.attr("name"); ok {
			b.complexTypes[name] = ct
		}
	}
	for _, st := range root.descendants("simpleType") {
		if name, ok := st.attr("name"); ok {
			b.simpleTypes[name] = st
		}
	}

	// Second pass: only direct children of <schema> are top-level element
	// declarations; nested element declarations are lowered as part of
	// their enclosing content model below.
	for _, elem := range root.children("element") {
		name, ok := elem.attr("name")
		if !ok || name == "" {
			continue
		}
		if b.grammar.Root == "" {
			b.grammar.Root = name
		}
		b.processElement(elem, name, cardinalityOf(elem))
	}

	return b.grammar, nil
}

func cardinalityOf(elem *node) Cardinality {
	min := 1
	if v, ok := elem.attr("minOccurs"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			min = n
		}
	}
	max := 1
	if v, ok := elem.attr("maxOccurs"); ok {
		if v == "unbounded" {
			max = Unbounded
		} else if n, err := strconv.Atoi(v); err == nil {
			max = n
		}
	}
	return Cardinality{Min: min, Max: max}
}

// stripBuiltinPrefix strips a recognized XML Schema builtin-type prefix
// (xs: or xsd:) from a type reference, reporting whether the reference was
// recognized as a builtin atomic type.
func stripBuiltinPrefix(ref string) (base string, isBuiltin bool) {
	if idx := strings.Index(ref, ":"); idx >= 0 {
		prefix, local := ref[:idx], ref[idx+1:]
		if prefix == "xs" || prefix == "xsd" {
			return local, true
		}
		return ref, false
	}
	return ref, false
}

// baseTypeOf strips a builtin prefix unconditionally, defaulting to the
// reference itself when it carries no recognized prefix. Used for
// restriction/extension `base` attributes, which are always expected to
// name an atomic type.
func baseTypeOf(ref string) string {
	base, _ := stripBuiltinPrefix(ref)
	return base
}

func (b *builder) processElement(elem *node, name string, card Cardinality) {
	if typeRef, ok := elem.attr("type"); ok {
		if base, isBuiltin := stripBuiltinPrefix(typeRef); isBuiltin {
			b.grammar.TypeConstraints[name] = &TypeConstraint{BaseType: base, Restrictions: map[string]string{}}
			b.grammar.Productions = append(b.grammar.Productions, &Production{
				LHS: name, RHS: []string{base}, Kind: KindSequence, Cardinality: card,
			})
			return
		}
		if ct, ok := b.complexTypes[typeRef]; ok {
			b.processComplexType(ct, name, card)
			return
		}
		if st, ok := b.simpleTypes[typeRef]; ok {
			b.processSimpleType(st, name, card)
			return
		}
		// Unresolved custom type reference: outside the supported subset,
		// silently skipped per spec §4.1.
		return
	}

	if ct := elem.child("complexType"); ct != nil {
		b.processComplexType(ct, name, card)
		return
	}
	if st := elem.child("simpleType"); st != nil {
		b.processSimpleType(st, name, card)
	}
}

func (b *builder) processComplexType(ct *node, name string, card Cardinality) {
	var attrs []Attribute
	for _, a := range ct.descendants("attribute") {
		attrName, ok := a.attr("name")
		if !ok || attrName == "" {
			continue
		}
		required := a.attrOr("use", "") == "required"

		if inline := a.child("simpleType"); inline != nil {
			if restriction := inline.child("restriction"); restriction != nil {
				base := baseTypeOf(restriction.attrOr("base", "xs:string"))
				b.grammar.TypeConstraints[attrName] = &TypeConstraint{
					BaseType: base, Restrictions: collectRestrictions(restriction),
				}
				attrs = append(attrs, Attribute{Name: attrName, Type: base, Required: required})
			} else {
				attrs = append(attrs, Attribute{Name: attrName, Type: "string", Required: required})
			}
			continue
		}

		if typeRef, ok := a.attr("type"); ok {
			base := baseTypeOf(typeRef)
			b.grammar.TypeConstraints[attrName] = &TypeConstraint{BaseType: base, Restrictions: map[string]string{}}
			attrs = append(attrs, Attribute{Name: attrName, Type: base, Required: required})
			continue
		}

		b.grammar.TypeConstraints[attrName] = &TypeConstraint{BaseType: "string", Restrictions: map[string]string{}}
		attrs = append(attrs, Attribute{Name: attrName, Type: "string", Required: required})
	}
	if len(attrs) > 0 {
		b.grammar.Attributes[name] = attrs
	}

	switch {
	case ct.child("sequence") != nil:
		b.processContentModel(ct.child("sequence"), name, card, KindSequence)
	case ct.child("choice") != nil:
		b.processContentModel(ct.child("choice"), name, card, KindChoice)
	case ct.child("all") != nil:
		b.processContentModel(ct.child("all"), name, card, KindAll)
	case ct.child("simpleContent") != nil:
		if ext := ct.child("simpleContent").child("extension"); ext != nil {
			base := baseTypeOf(ext.attrOr("base", "xs:string"))
			b.grammar.TypeConstraints[name] = &TypeConstraint{BaseType: base, Restrictions: map[string]string{}}
		}
	}
}

func (b *builder) processContentModel(group *node, parentName string, card Cardinality, kind Kind) {
	var children []string
	var inlineChildren []*node
	for _, child := range group.children("element") {
		childName := child.attrOr("name", child.attrOr("ref", ""))
		if childName == "" {
			continue
		}
		children = append(children, childName)
		if _, inline := child.attr("name"); inline {
			inlineChildren = append(inlineChildren, child)
		}
	}
	if len(children) > 0 {
		b.grammar.Productions = append(b.grammar.Productions, &Production{
			LHS: parentName, RHS: children, Kind: kind, Cardinality: card,
		})
	}
	for _, child := range inlineChildren {
		b.processElement(child, child.attrOr("name", ""), cardinalityOf(child))
	}
}

func (b *builder) processSimpleType(st *node, name string, card Cardinality) {
	restriction := st.child("restriction")
	if restriction == nil {
		return
	}
	base := baseTypeOf(restriction.attrOr("base", "xs:string"))
	b.grammar.TypeConstraints[name] = &TypeConstraint{
		BaseType: base, Restrictions: collectRestrictions(restriction),
	}
	b.grammar.Productions = append(b.grammar.Productions, &Production{
		LHS: name, RHS: []string{base}, Kind: KindSequence, Cardinality: card,
	})
}

func collectRestrictions(restriction *node) map[string]string {
	restrictions := map[string]string{}
	for i := range restriction.Nodes {
		child := &restriction.Nodes[i]
		if child.XMLName.Space != xsNamespace {
			continue
		}
		if v, ok := child.attr("value"); ok {
			restrictions[child.XMLName.Local] = v
		}
	}
	return restrictions
}
