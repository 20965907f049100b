package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/miwamasa/xslt-validation/internal/logging"
)

var rootFlags = struct {
	logLevel  *string
	logFormat *string
}{}

var rootCmd = &cobra.Command{
	Use:   "xsltvalidate",
	Short: "Statically verify that an XSLT-subset transformation preserves schema validity",
	Long: `xsltvalidate checks whether a transformation, compiled to a Macro Tree
Transducer, maps every document accepted by a source schema to a document
accepted by a target schema: does L(S) ⊆ pre_M(L(T))?`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Configure(os.Stderr, *rootFlags.logLevel, *rootFlags.logFormat)
	},
}

func init() {
	rootFlags.logLevel = rootCmd.PersistentFlags().String("log-level", "info", "log level, one of: error, warn, info, debug")
	rootFlags.logFormat = rootCmd.PersistentFlags().String("log-format", "text", "log format, one of: text, json")
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
