package mtt

import (
	"fmt"
	"strings"
)

// Compile lowers a (subset-clean) transformation document into an MTT
// (C3): one rule per xsl:template, with auxiliary states introduced for
// each xsl:for-each.
func Compile(data []byte) (*MTT, error) {
	root, err := parseXML(data)
	if err != nil {
		return nil, fmt.Errorf("invalid XSLT: %w", err)
	}

	c := &compiler{mtt: &MTT{InitialState: InitialState}}
	for _, t := range descendantsXSLT(root, "template") {
		c.compileTemplate(t)
	}
	return c.mtt, nil
}

func descendantsXSLT(n *node, local string) []*node {
	var out []*node
	var walk func(*node)
	walk = func(cur *node) {
		for _, child := range cur.Children {
			if child.isXSLT() && child.Local == local {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(n)
	return out
}

type compiler struct {
	mtt *MTT
}

var stateNameReplacer = strings.NewReplacer("/", "_", "@", "attr_", "*", "any")

func (c *compiler) compileTemplate(t *node) {
	match, ok := t.attr("match")
	if !ok || match == "" {
		return
	}
	mode := t.attrOr("mode", "default")

	stateName := "q_" + stateNameReplacer.Replace(match) + "_" + mode
	c.mtt.States = append(c.mtt.States, stateName)

	rule := &Rule{
		State:      stateName,
		LHSPattern: parseMatchPattern(match),
		RHSTerm:    c.compileTemplateBody(t, stateName),
	}
	c.mtt.Rules = append(c.mtt.Rules, rule)
}

func parseMatchPattern(match string) string {
	if match == "/" {
		return "root(children)"
	}
	if strings.HasPrefix(match, "/") {
		parts := strings.Split(strings.Trim(match, "/"), "/")
		return parts[len(parts)-1] + "(children)"
	}
	return match + "(children)"
}

// compileTemplateBody compiles a template's direct children into a
// Sequence, prepending a Text child for the template's leading
// whitespace-stripped text (spec §4.3).
func (c *compiler) compileTemplateBody(n *node, state string) OutputTerm {
	var children []OutputTerm
	for _, child := range n.Children {
		if out := c.compileInstruction(child, state); out != nil {
			children = append(children, out)
		}
	}
	if text := strings.TrimSpace(n.Text); text != "" {
		children = append([]OutputTerm{&Text{Value: text}}, children...)
	}
	return &Sequence{Children: children}
}

// compileChildrenSequence compiles n's direct children into a Sequence
// without any leading-text handling; used for if/when/otherwise/for-each
// bodies, which the original semantics never prepend template-style text
// to.
func (c *compiler) compileChildrenSequence(n *node, state string) OutputTerm {
	var children []OutputTerm
	for _, child := range n.Children {
		if out := c.compileInstruction(child, state); out != nil {
			children = append(children, out)
		}
	}
	return &Sequence{Children: children}
}

func (c *compiler) compileInstruction(n *node, state string) OutputTerm {
	if n.isXSLT() {
		switch n.Local {
		case "apply-templates":
			return c.compileApplyTemplates(n)
		case "for-each":
			return c.compileForEach(n, state)
		case "value-of":
			return &ValueOf{Select: n.attrOr("select", "")}
		case "if":
			return &If{Test: n.attrOr("test", ""), Then: c.compileChildrenSequence(n, state)}
		case "choose":
			return c.compileChoose(n, state)
		case "text":
			return &Text{Value: n.Text}
		case "element":
			return c.compileElementInstruction(n, state)
		case "attribute":
			return &Attribute{Name: n.attrOr("name", ""), Value: n.Text}
		}
		return nil
	}
	return c.compileLiteralElement(n, state)
}

func (c *compiler) compileApplyTemplates(n *node) OutputTerm {
	selector := n.attrOr("select", "node()")
	return &ApplyTemplates{
		Select: selector,
		Call:   "apply_to_" + strings.ReplaceAll(selector, "/", "_"),
	}
}

func (c *compiler) compileForEach(n *node, state string) OutputTerm {
	listState := fmt.Sprintf("%s_foreach_%d", state, len(c.mtt.States))
	c.mtt.States = append(c.mtt.States, listState)
	return &ForEach{
		Select:    n.attrOr("select", ""),
		Body:      c.compileChildrenSequence(n, listState),
		ListState: listState,
	}
}

func (c *compiler) compileChoose(n *node, state string) OutputTerm {
	var branches []OutputTerm
	for _, child := range n.Children {
		if !child.isXSLT() {
			continue
		}
		switch child.Local {
		case "when":
			branches = append(branches, &When{
				Test: child.attrOr("test", ""),
				Body: c.compileChildrenSequence(child, state),
			})
		case "otherwise":
			branches = append(branches, &Otherwise{Body: c.compileChildrenSequence(child, state)})
		}
	}
	return &Choose{Branches: branches}
}

func (c *compiler) compileElementInstruction(n *node, state string) OutputTerm {
	var children []OutputTerm
	for _, child := range n.Children {
		if out := c.compileInstruction(child, state); out != nil {
			children = append(children, out)
		}
	}
	return &Element{Name: n.attrOr("name", ""), Children: children}
}

// compileLiteralElement compiles a literal result element: an element not
// in the transformation namespace, whose attributes are copied through
// (with `{expr}` segments lowered to attribute value templates) and whose
// children, including interleaved text and tail text, are compiled
// recursively (spec §4.3).
func (c *compiler) compileLiteralElement(n *node, state string) OutputTerm {
	var children []OutputTerm
	if text := strings.TrimSpace(n.Text); text != "" {
		children = append(children, &Text{Value: text})
	}
	for _, child := range n.Children {
		if out := c.compileInstruction(child, state); out != nil {
			children = append(children, out)
		}
		if tail := strings.TrimSpace(child.Tail); tail != "" {
			children = append(children, &Text{Value: tail})
		}
	}

	var attrs []ElementAttr
	for _, a := range n.Attrs {
		if idx := strings.IndexByte(a.Value, '{'); idx >= 0 {
			if end := strings.IndexByte(a.Value, '}'); end > idx {
				attrs = append(attrs, ElementAttr{
					Name: a.Name.Local, ValueExpr: a.Value[idx+1 : end], IsExpr: true,
				})
				continue
			}
		}
		attrs = append(attrs, ElementAttr{Name: a.Name.Local, Value: a.Value})
	}

	return &Element{Name: n.Local, Attributes: attrs, Children: children}
}
