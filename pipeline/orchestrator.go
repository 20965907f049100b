package pipeline

import (
	"fmt"
	"strings"

	"github.com/miwamasa/xslt-validation/internal/logging"
	"github.com/miwamasa/xslt-validation/mtt"
	"github.com/miwamasa/xslt-validation/preimage"
	"github.com/miwamasa/xslt-validation/treegrammar"
	"github.com/miwamasa/xslt-validation/typecheck"
	"github.com/miwamasa/xslt-validation/validity"
)

// Validate runs the full pipeline: C2 (gate) -> C1 x2 -> C3 -> C5 -> C4 ->
// C6, matching spec §4.7's ordering and failure-isolation rules.
func Validate(req ValidateRequest) (*ValidateResponse, *ErrorResponse) {
	if err := validateRequest(req); err != nil {
		return nil, &ErrorResponse{Success: false, Error: err.Error()}
	}
	log := logging.Default()

	subsetResult := mtt.CheckSubset([]byte(req.XSLT))
	resp := &ValidateResponse{
		Success: true,
		SubsetCheck: SubsetCheckDTO{
			Valid:    subsetResult.Valid,
			Errors:   subsetResult.Errors,
			Warnings: subsetResult.Warnings,
		},
	}
	if !subsetResult.Valid {
		log.Warn("subset check failed, halting pipeline", "errors", len(subsetResult.Errors))
		return resp, nil
	}

	sourceGrammar, err := treegrammar.Parse(strings.NewReader(req.SourceXSD))
	if err != nil {
		return nil, &ErrorResponse{Success: false, Error: fmt.Sprintf("Error parsing source XSD: %s", err)}
	}
	sourceWire := sourceGrammar.ToWire()
	resp.SourceGrammar = &sourceWire

	targetGrammar, err := treegrammar.Parse(strings.NewReader(req.TargetXSD))
	if err != nil {
		return nil, &ErrorResponse{Success: false, Error: fmt.Sprintf("Error parsing target XSD: %s", err)}
	}
	targetWire := targetGrammar.ToWire()
	resp.TargetGrammar = &targetWire

	m, err := mtt.Compile([]byte(req.XSLT))
	if err != nil {
		return nil, &ErrorResponse{Success: false, Error: fmt.Sprintf("Error converting XSLT to MTT: %s", err)}
	}
	mttWire := m.ToWire()
	resp.MTT = &mttWire

	typeResult := typecheck.Validate(sourceGrammar, targetGrammar, m)
	resp.TypeValidation = &TypeValidationDTO{
		Valid:      typeResult.IsValid,
		ProofSteps: typeResult.ProofSteps,
		Warnings:   typeResult.Warnings,
		Errors:     typeResult.Errors,
		CoverageMatrix: CoverageMatrixDTO{
			SourceElements: typeResult.CoverageMatrix.SourceElements,
			TargetElements: typeResult.CoverageMatrix.TargetElements,
			MTTRules:       typeResult.CoverageMatrix.MTTRules,
			Mappings:       mappingsDTO(typeResult.CoverageMatrix.Mappings),
		},
	}

	resp.Preimage = computePreimageDTO(targetGrammar, m)

	// Validity (C6) is computed alongside the other stages (SPEC_FULL.md §5),
	// but its result is discarded: it is not part of the `validate` wire
	// response. It is skipped when the preimage computation fails, a failure
	// already reported in resp.Preimage.
	if pre, err := safeComputePreimage(targetGrammar, m); err == nil {
		_ = validity.Check(sourceGrammar, pre)
	}

	log.Debug("validate pipeline completed", "type_preservation_valid", typeResult.IsValid)
	return resp, nil
}

func mappingsDTO(in []typecheck.CoverageMapping) []MappingDTO {
	out := make([]MappingDTO, 0, len(in))
	for _, m := range in {
		status := "✗"
		target := "UNMAPPED"
		if m.Mapped {
			status = "✓"
			target = m.Target
		}
		out = append(out, MappingDTO{Source: m.Source, Target: target, Status: status})
	}
	return out
}

// computePreimageDTO runs C4 and isolates its failure per spec §7
// PartialPreimageFailure: the rest of the response is still returned.
func computePreimageDTO(target *treegrammar.TreeGrammar, m *mtt.MTT) *PreimageDTO {
	dto := &PreimageDTO{}
	result, err := safeComputePreimage(target, m)
	if err != nil {
		dto.Error = fmt.Sprintf("Error computing preimage: %s", err)
		return dto
	}

	for _, p := range result.AcceptedPatterns {
		dto.AcceptedPatterns = append(dto.AcceptedPatterns, AcceptedPatternDTO{
			Element:       p.Element,
			Children:      p.Children,
			Constraints:   p.Constraints,
			PatternString: p.String(),
		})
	}
	for _, p := range result.RejectedPatterns {
		dto.RejectedPatterns = append(dto.RejectedPatterns, RejectedPatternDTO{Pattern: p.Pattern, Reason: p.Reason})
	}
	dto.Statistics = StatisticsDTO{
		TotalRules:       result.Statistics.TotalRules,
		AcceptedPatterns: result.Statistics.AcceptedPatterns,
		RejectedPatterns: result.Statistics.RejectedPatterns,
		Coverage:         result.Statistics.Coverage,
	}
	return dto
}

func safeComputePreimage(target *treegrammar.TreeGrammar, m *mtt.MTT) (result *preimage.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return preimage.Compute(target, m), nil
}

// CheckSubset runs the `check-subset` operation (C2 alone).
func CheckSubset(req CheckSubsetRequest) (*CheckSubsetResponse, *ErrorResponse) {
	if err := validateRequest(req); err != nil {
		return nil, &ErrorResponse{Success: false, Error: err.Error()}
	}
	result := mtt.CheckSubset([]byte(req.XSLT))
	return &CheckSubsetResponse{
		Success:  true,
		Valid:    result.Valid,
		Errors:   result.Errors,
		Warnings: result.Warnings,
	}, nil
}

// ParseXSD runs the `parse-xsd` operation (C1 alone).
func ParseXSD(req ParseXSDRequest) (*ParseXSDResponse, *ErrorResponse) {
	if err := validateRequest(req); err != nil {
		return nil, &ErrorResponse{Success: false, Error: err.Error()}
	}
	grammar, err := treegrammar.Parse(strings.NewReader(req.XSD))
	if err != nil {
		return nil, &ErrorResponse{Success: false, Error: err.Error()}
	}
	return &ParseXSDResponse{Success: true, Grammar: grammar.ToWire()}, nil
}

// ConvertToMTT runs the `convert-to-mtt` operation (C3 alone).
func ConvertToMTT(req ConvertToMTTRequest) (*ConvertToMTTResponse, *ErrorResponse) {
	if err := validateRequest(req); err != nil {
		return nil, &ErrorResponse{Success: false, Error: err.Error()}
	}
	m, err := mtt.Compile([]byte(req.XSLT))
	if err != nil {
		return nil, &ErrorResponse{Success: false, Error: err.Error()}
	}
	return &ConvertToMTTResponse{Success: true, MTT: m.ToWire()}, nil
}

// Health runs the `health` operation.
func Health() HealthResponse {
	return HealthResponse{Status: "healthy", Service: "xslt-validation"}
}
