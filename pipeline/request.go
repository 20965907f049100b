// Package pipeline orchestrates the five request/response operations of
// spec §6 over the C1–C6 stages, and owns the request DTOs and their
// validation (C7).
package pipeline

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/miwamasa/xslt-validation/verr"
)

var validate = validator.New()

// ValidateRequest is the request body of the `validate` operation.
type ValidateRequest struct {
	SourceXSD string `json:"source_xsd" validate:"required"`
	TargetXSD string `json:"target_xsd" validate:"required"`
	XSLT      string `json:"xslt" validate:"required"`
}

// CheckSubsetRequest is the request body of the `check-subset` operation.
type CheckSubsetRequest struct {
	XSLT string `json:"xslt" validate:"required"`
}

// ParseXSDRequest is the request body of the `parse-xsd` operation.
type ParseXSDRequest struct {
	XSD string `json:"xsd" validate:"required"`
}

// ConvertToMTTRequest is the request body of the `convert-to-mtt` operation.
type ConvertToMTTRequest struct {
	XSLT string `json:"xslt" validate:"required"`
}

// validateRequest runs struct-tag validation and, on failure, renders a
// single descriptive message naming the missing fields, matching spec §6's
// "Missing required input fields -> status 400 with a descriptive error".
func validateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return verr.New(verr.KindInputSyntax, "%s", err.Error())
		}
		var fields []string
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field())
		}
		return verr.New(verr.KindInputSyntax, "missing required fields: %s", fmt.Sprint(fields))
	}
	return nil
}
