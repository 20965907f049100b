package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miwamasa/xslt-validation/pipeline"
)

var parseXSDFlags = struct {
	output *string
	format *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse-xsd",
		Short:   "Lower an XML Schema document into its tree grammar",
		Example: `  xsltvalidate parse-xsd request.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runParseXSD,
	}
	parseXSDFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	parseXSDFlags.format = cmd.Flags().String("format", "json", "output format: json or yaml")
	rootCmd.AddCommand(cmd)
}

func runParseXSD(cmd *cobra.Command, args []string) error {
	var req pipeline.ParseXSDRequest
	if err := readRequest(args, &req); err != nil {
		return err
	}

	resp, errResp := pipeline.ParseXSD(req)
	if errResp != nil {
		if err := writeResponse(errResp, *parseXSDFlags.output, *parseXSDFlags.format); err != nil {
			return err
		}
		return fmt.Errorf("parse-xsd: %s", errResp.Error)
	}

	return writeResponse(resp, *parseXSDFlags.output, *parseXSDFlags.format)
}
