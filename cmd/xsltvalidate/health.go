package main

import (
	"github.com/spf13/cobra"

	"github.com/miwamasa/xslt-validation/pipeline"
)

var healthFlags = struct {
	output *string
	format *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Report service health",
		RunE:  runHealth,
	}
	healthFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	healthFlags.format = cmd.Flags().String("format", "json", "output format: json or yaml")
	rootCmd.AddCommand(cmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	return writeResponse(pipeline.Health(), *healthFlags.output, *healthFlags.format)
}
