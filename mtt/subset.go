package mtt

import (
	"strings"
)

// allowedElements is the closed allow-list of transformation-namespace
// local names the subset checker accepts (spec §4.2).
var allowedElements = map[string]bool{
	"stylesheet": true, "transform": true, "template": true,
	"apply-templates": true, "for-each": true, "value-of": true,
	"if": true, "choose": true, "when": true, "otherwise": true,
	"with-param": true, "param": true, "text": true, "element": true,
	"attribute": true,
}

// deniedElements is the hard-error deny-list (spec §4.2).
var deniedElements = map[string]bool{
	"document": true, "key": true, "import": true, "include": true,
	"call-template": true, "variable": true, "sort": true, "number": true,
	"copy": true, "copy-of": true,
}

// SubsetResult is the outcome of checking a transformation document against
// the allowed instruction subset.
type SubsetResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// CheckSubset parses and checks a transformation document against the
// allowed instruction subset (C2). Malformed XML produces a single error
// and CheckSubset never returns a non-nil error itself: parse failures are
// reported through SubsetResult, matching spec §4.2's "Malformed input XML
// -> single error `XML Parse Error: ...`".
func CheckSubset(data []byte) *SubsetResult {
	root, err := parseXML(data)
	if err != nil {
		return &SubsetResult{Valid: false, Errors: []string{"XML Parse Error: " + err.Error()}}
	}

	c := &subsetChecker{}
	c.check(root, "")

	return &SubsetResult{
		Valid:    len(c.errors) == 0,
		Errors:   c.errors,
		Warnings: c.warnings,
	}
}

type subsetChecker struct {
	errors   []string
	warnings []string
}

func (c *subsetChecker) check(n *node, path string) {
	currentPath := path + "/" + n.Local

	if n.isXSLT() {
		switch {
		case deniedElements[n.Local]:
			c.errors = append(c.errors, "Disallowed XSLT element '"+n.Local+"' at "+currentPath)
		case !allowedElements[n.Local]:
			c.warnings = append(c.warnings, "Unknown XSLT element '"+n.Local+"' at "+currentPath)
		}

		switch n.Local {
		case "template":
			c.checkTemplate(n, currentPath)
		case "if":
			c.checkIf(n, currentPath)
		case "choose":
			c.checkChoose(n, currentPath)
		case "apply-templates":
			c.checkApplyTemplates(n, currentPath)
		case "for-each":
			c.checkForEach(n, currentPath)
		case "value-of":
			c.checkValueOf(n, currentPath)
		}
	}

	for _, child := range n.Children {
		c.check(child, currentPath)
	}
}

func (c *subsetChecker) checkTemplate(n *node, path string) {
	match, ok := n.attr("match")
	if !ok || match == "" {
		c.errors = append(c.errors, "Template without 'match' attribute at "+path)
		return
	}
	if strings.Contains(match, "//") || strings.Contains(match, "ancestor::") || strings.Contains(match, "following::") {
		c.warnings = append(c.warnings, "Complex XPath pattern '"+match+"' at "+path+" - may not be fully supported")
	}
}

func (c *subsetChecker) checkIf(n *node, path string) {
	test, ok := n.attr("test")
	if !ok || test == "" {
		c.errors = append(c.errors, "'if' without 'test' attribute at "+path)
		return
	}
	if strings.Contains(test, "contains(") || strings.Contains(test, "substring(") || strings.Contains(test, "concat(") {
		c.warnings = append(c.warnings, "Complex string function in test '"+test+"' at "+path)
	}
}

func (c *subsetChecker) checkChoose(n *node, path string) {
	for _, child := range n.Children {
		if child.isXSLT() && child.Local == "when" {
			return
		}
	}
	c.errors = append(c.errors, "'choose' without 'when' at "+path)
}

func (c *subsetChecker) checkApplyTemplates(n *node, path string) {
	if sel, ok := n.attr("select"); ok {
		if strings.Contains(sel, "preceding::") || strings.Contains(sel, "following::") {
			c.warnings = append(c.warnings, "Complex axis in select '"+sel+"' at "+path)
		}
	}
}

func (c *subsetChecker) checkForEach(n *node, path string) {
	if sel, ok := n.attr("select"); !ok || sel == "" {
		c.errors = append(c.errors, "'for-each' without 'select' attribute at "+path)
	}
}

func (c *subsetChecker) checkValueOf(n *node, path string) {
	if sel, ok := n.attr("select"); !ok || sel == "" {
		c.errors = append(c.errors, "'value-of' without 'select' attribute at "+path)
	}
}
