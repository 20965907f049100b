package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miwamasa/xslt-validation/pipeline"
)

var checkSubsetFlags = struct {
	output *string
	format *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "check-subset",
		Short:   "Check whether a transformation conforms to the allowed instruction subset",
		Example: `  xsltvalidate check-subset request.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCheckSubset,
	}
	checkSubsetFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	checkSubsetFlags.format = cmd.Flags().String("format", "json", "output format: json or yaml")
	rootCmd.AddCommand(cmd)
}

func runCheckSubset(cmd *cobra.Command, args []string) error {
	var req pipeline.CheckSubsetRequest
	if err := readRequest(args, &req); err != nil {
		return err
	}

	resp, errResp := pipeline.CheckSubset(req)
	if errResp != nil {
		if err := writeResponse(errResp, *checkSubsetFlags.output, *checkSubsetFlags.format); err != nil {
			return err
		}
		return fmt.Errorf("check-subset: %s", errResp.Error)
	}

	return writeResponse(resp, *checkSubsetFlags.output, *checkSubsetFlags.format)
}
