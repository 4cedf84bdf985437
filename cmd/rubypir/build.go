package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/rubypir"
)

var (
	outDir   string
	encoding string
)

var buildCmd = &cobra.Command{
	Use:   "build file.rb...",
	Short: "Compile .rb sources into .pir files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("out") {
			cfg.OutputDir = outDir
		}
		if cmd.Flags().Changed("encoding") {
			cfg.Encoding = encoding
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		failed := 0
		for _, path := range args {
			if !build(cmd.OutOrStdout(), cmd.ErrOrStderr(), path) {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed to compile", failed, len(args))
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&outDir, "out", "o", "out", "output directory")
	buildCmd.Flags().StringVarP(&encoding, "encoding", "e", "utf-8", "source encoding")
}

// build compiles one file and reports the outcome. Semantic errors are
// printed to ew one per line as path: line N: msg, and nothing is written.
func build(w, ew io.Writer, path string) bool {
	res, err := rubypir.CompileFile(path, cfg)
	var errs rubypir.ErrorList
	switch {
	case errors.As(err, &errs):
		for _, e := range errs {
			fmt.Fprintf(ew, "%s: %v\n", path, e)
		}
		return false
	case err != nil:
		fmt.Fprintln(ew, err)
		return false
	}
	fmt.Fprintln(w, res.Path)
	return true
}
