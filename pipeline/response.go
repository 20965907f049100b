package pipeline

import (
	"github.com/miwamasa/xslt-validation/mtt"
	"github.com/miwamasa/xslt-validation/treegrammar"
)

// ErrorResponse is the shape of every failed operation (spec §6).
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Traceback string `json:"traceback,omitempty"`
}

// SubsetCheckDTO is the wire shape of a subset-check outcome.
type SubsetCheckDTO struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// MappingDTO is one entry of a type-validation coverage matrix.
type MappingDTO struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Status string `json:"status"`
}

// CoverageMatrixDTO is the wire shape of typecheck.CoverageMatrix.
type CoverageMatrixDTO struct {
	SourceElements int          `json:"source_elements"`
	TargetElements int          `json:"target_elements"`
	MTTRules       int          `json:"mtt_rules"`
	Mappings       []MappingDTO `json:"mappings"`
}

// TypeValidationDTO is the wire shape of a type-preservation validation
// result.
type TypeValidationDTO struct {
	Valid          bool              `json:"valid"`
	ProofSteps     []string          `json:"proof_steps"`
	Warnings       []string          `json:"warnings"`
	Errors         []string          `json:"errors"`
	CoverageMatrix CoverageMatrixDTO `json:"coverage_matrix"`
}

// AcceptedPatternDTO is the wire shape of one accepted preimage pattern.
type AcceptedPatternDTO struct {
	Element       string   `json:"element"`
	Children      []string `json:"children"`
	Constraints   []string `json:"constraints"`
	PatternString string   `json:"pattern_string"`
}

// RejectedPatternDTO is the wire shape of one rejected preimage rule.
type RejectedPatternDTO struct {
	Pattern string `json:"pattern"`
	Reason  string `json:"reason"`
}

// StatisticsDTO is the wire shape of preimage.Statistics.
type StatisticsDTO struct {
	TotalRules       int     `json:"total_rules"`
	AcceptedPatterns int     `json:"accepted_patterns"`
	RejectedPatterns int     `json:"rejected_patterns"`
	Coverage         float64 `json:"coverage"`
}

// PreimageDTO is the wire shape of a preimage computation. Error is set,
// with the other fields left at their zero values, when preimage
// computation fails in isolation (spec §7 PartialPreimageFailure).
type PreimageDTO struct {
	AcceptedPatterns []AcceptedPatternDTO `json:"accepted_patterns"`
	RejectedPatterns []RejectedPatternDTO `json:"rejected_patterns"`
	Statistics       StatisticsDTO        `json:"statistics"`
	Error            string               `json:"error,omitempty"`
}

// ValidateResponse is the success response of the `validate` operation. A
// failed subset check short-circuits: only SubsetCheck is populated, and
// every downstream section is omitted.
type ValidateResponse struct {
	Success        bool                     `json:"success"`
	SubsetCheck    SubsetCheckDTO           `json:"subset_check"`
	SourceGrammar  *treegrammar.GrammarJSON `json:"source_grammar,omitempty"`
	TargetGrammar  *treegrammar.GrammarJSON `json:"target_grammar,omitempty"`
	MTT            *mtt.MTTJSON             `json:"mtt,omitempty"`
	TypeValidation *TypeValidationDTO       `json:"type_validation,omitempty"`
	Preimage       *PreimageDTO             `json:"preimage,omitempty"`
}

// CheckSubsetResponse is the success response of the `check-subset`
// operation.
type CheckSubsetResponse struct {
	Success  bool     `json:"success"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ParseXSDResponse is the success response of the `parse-xsd` operation.
type ParseXSDResponse struct {
	Success bool                    `json:"success"`
	Grammar treegrammar.GrammarJSON `json:"grammar"`
}

// ConvertToMTTResponse is the success response of the `convert-to-mtt`
// operation.
type ConvertToMTTResponse struct {
	Success bool        `json:"success"`
	MTT     mtt.MTTJSON `json:"mtt"`
}

// HealthResponse is the response of the `health` operation.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
