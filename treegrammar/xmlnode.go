package treegrammar

import "encoding/xml"

// xsNamespace is the XML Schema namespace URI. Only elements in this
// namespace are treated as schema structure; anything else is skipped, per
// spec §4.1's "intentionally partial" parser.
const xsNamespace = "http://www.w3.org/2001/XMLSchema"

// node is a generic, recursively-decoded XML element. encoding/xml's
// `,any` wildcard matches let a single recursive type stand in for the
// whole XSD grammar instead of one struct per element kind.
type node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []node     `xml:",any"`
}

func (n *node) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *node) attrOr(name, def string) string {
	if v, ok := n.attr(name); ok {
		return v
	}
	return def
}

func (n *node) isSchema(localName string) bool {
	return n.XMLName.Space == xsNamespace && n.XMLName.Local == localName
}

// children returns the direct children in the schema namespace with the
// given local name, in document order.
func (n *node) children(localName string) []*node {
	var out []*node
	for i := range n.Nodes {
		if n.Nodes[i].isSchema(localName) {
			out = append(out, &n.Nodes[i])
		}
	}
	return out
}

// child returns the first direct child in the schema namespace with the
// given local name, or nil.
func (n *node) child(localName string) *node {
	for i := range n.Nodes {
		if n.Nodes[i].isSchema(localName) {
			return &n.Nodes[i]
		}
	}
	return nil
}

// descendants returns every descendant (at any depth) in the schema
// namespace with the given local name, in document order. Used for the
// first-pass type-collection index (spec §4.1).
func (n *node) descendants(localName string) []*node {
	var out []*node
	var walk func(*node)
	walk = func(cur *node) {
		for i := range cur.Nodes {
			child := &cur.Nodes[i]
			if child.isSchema(localName) {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(n)
	return out
}
