package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miwamasa/xslt-validation/pipeline"
)

var validateFlags = struct {
	output *string
	format *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "validate",
		Short:   "Run the full pipeline: subset check, schema parsing, MTT compilation, and type-preservation validation",
		Example: `  xsltvalidate validate request.json -o result.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runValidate,
	}
	validateFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	validateFlags.format = cmd.Flags().String("format", "json", "output format: json or yaml")
	rootCmd.AddCommand(cmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	var req pipeline.ValidateRequest
	if err := readRequest(args, &req); err != nil {
		return err
	}

	resp, errResp := pipeline.Validate(req)
	if errResp != nil {
		if err := writeResponse(errResp, *validateFlags.output, *validateFlags.format); err != nil {
			return err
		}
		return fmt.Errorf("validate: %s", errResp.Error)
	}

	return writeResponse(resp, *validateFlags.output, *validateFlags.format)
}
