// Package verr defines the structured diagnostics shared by every pipeline
// stage.
package verr

import "fmt"

// Kind classifies a Diagnostic by the stage that raised it and the recovery
// policy that applies to it (spec §7).
type Kind string

const (
	// KindInputSyntax is a malformed schema, transformation, or request
	// document. Fatal for the stage that raised it.
	KindInputSyntax Kind = "input_syntax"
	// KindSubsetViolation is a forbidden instruction or a missing required
	// attribute in a transformation document. Halts the pipeline before C3.
	KindSubsetViolation Kind = "subset_violation"
	// KindSubsetWarning is an allowed-but-risky transformation construct.
	// Never halts the pipeline.
	KindSubsetWarning Kind = "subset_warning"
	// KindSemanticIncompatibility is a type-preservation error.
	KindSemanticIncompatibility Kind = "semantic_incompatibility"
	// KindCoverageGap is a validity-checker counterexample.
	KindCoverageGap Kind = "coverage_gap"
	// KindPartialPreimageFailure marks an error captured inside C4 that does
	// not abort the rest of the pipeline.
	KindPartialPreimageFailure Kind = "partial_preimage_failure"
	// KindInternal is an unhandled failure outside any of the above.
	KindInternal Kind = "internal"
)

// Diagnostic is a single structured error or warning raised by a pipeline
// stage.
type Diagnostic struct {
	Kind    Kind
	Message string
	// Path is the slash-joined element path the diagnostic was raised at,
	// when the raising stage tracks one (the subset checker does).
	Path string
}

func (d *Diagnostic) Error() string {
	if d.Path == "" {
		return d.Message
	}
	return fmt.Sprintf("%s at %s", d.Message, d.Path)
}

// Diagnostics is an ordered list of Diagnostic values that itself satisfies
// error, following the teacher's SpecErrors-as-error convention, for a
// stage that needs to report several structured failures at once. No stage
// of this module returns one at present: the schema parser and the MTT
// compiler each return a single plain error.
type Diagnostics []*Diagnostic

func (ds Diagnostics) Error() string {
	if len(ds) == 0 {
		return "no errors"
	}
	if len(ds) == 1 {
		return ds[0].Error()
	}
	return fmt.Sprintf("%s (and %d more error(s))", ds[0].Error(), len(ds)-1)
}

// Messages returns each Diagnostic's Error() string (its message, followed
// by " at <path>" when a path is set), in order.
func (ds Diagnostics) Messages() []string {
	msgs := make([]string, len(ds))
	for i, d := range ds {
		msgs[i] = d.Error()
	}
	return msgs
}

// New constructs a single Diagnostic.
func New(kind Kind, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewAt constructs a single Diagnostic with a path attached.
func NewAt(kind Kind, path string, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Path: path}
}
