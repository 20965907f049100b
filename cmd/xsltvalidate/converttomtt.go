package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miwamasa/xslt-validation/pipeline"
)

var convertToMTTFlags = struct {
	output *string
	format *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "convert-to-mtt",
		Short:   "Compile a transformation into its Macro Tree Transducer representation",
		Example: `  xsltvalidate convert-to-mtt request.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runConvertToMTT,
	}
	convertToMTTFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	convertToMTTFlags.format = cmd.Flags().String("format", "json", "output format: json or yaml")
	rootCmd.AddCommand(cmd)
}

func runConvertToMTT(cmd *cobra.Command, args []string) error {
	var req pipeline.ConvertToMTTRequest
	if err := readRequest(args, &req); err != nil {
		return err
	}

	resp, errResp := pipeline.ConvertToMTT(req)
	if errResp != nil {
		if err := writeResponse(errResp, *convertToMTTFlags.output, *convertToMTTFlags.format); err != nil {
			return err
		}
		return fmt.Errorf("convert-to-mtt: %s", errResp.Error)
	}

	return writeResponse(resp, *convertToMTTFlags.output, *convertToMTTFlags.format)
}
