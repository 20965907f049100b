package treegrammar

// ParseError wraps a schema that could not be decoded as XML at all (spec
// §4.1, "Failure: ill-formed XML → SchemaParseError(reason)").
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return "invalid XSD: " + e.Reason }
