package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/rubypir"
)

const (
	promptMain  = "rb> "
	promptCont  = ".. "
	historyFile = ".rubypir_history"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Compile snippets interactively",
	Long: `repl reads snippets and prints the PIR each compiles to. A snippet
continues across lines while a block is open. Each snippet is compiled on its
own; nothing carries over between them. Type :quit to exit.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repl()
	},
}

func repl() {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		src, ok := readSnippet(ln)
		if !ok {
			fmt.Println()
			return
		}
		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit", ":q":
			return
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		res, err := rubypir.Compile(strings.NewReader(src), "repl", cfg)
		var errs rubypir.ErrorList
		switch {
		case errors.As(err, &errs):
			for _, e := range errs {
				fmt.Fprintln(os.Stderr, e)
			}
		case err != nil:
			fmt.Fprintln(os.Stderr, err)
		default:
			fmt.Print(res.Output)
		}
	}
}

// readSnippet reads lines until they form a complete program or a syntax
// error that more input cannot fix. It returns false at end of input.
func readSnippet(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl-C abandons the current snippet.
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if !incomplete(src) {
			return src, true
		}
	}
}

// incomplete reports whether src ends in the middle of a construct.
func incomplete(src string) bool {
	_, err := rubypir.Parse(strings.NewReader(src), "repl")
	return errors.Is(err, io.ErrUnexpectedEOF)
}
