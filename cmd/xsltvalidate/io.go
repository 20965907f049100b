package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/goccy/go-yaml"
)

// readRequest reads a JSON request body from a file argument, or from
// stdin when no path is given.
func readRequest(args []string, v interface{}) error {
	var r io.Reader = os.Stdin
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("cannot open request file %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
	}

	data, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// writeResponse encodes v to the output path (default stdout) as JSON, or
// as YAML when format == "yaml".
func writeResponse(v interface{}, outputPath, format string) error {
	var w io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	var b []byte
	var err error
	if format == "yaml" {
		b, err = yaml.Marshal(v)
	} else {
		b, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s\n", string(b))
	return nil
}
