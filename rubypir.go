package rubypir

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zephyrtronium/rubypir/internal"
	"github.com/zephyrtronium/rubypir/logger"
)

// Tree is a parsed program.
type Tree = internal.Tree

// Node is an element of a parse tree.
type Node = internal.Node

// Kind identifies the grammar production of a Node.
type Kind = internal.Kind

// Translator lowers a parse tree to IR.
type Translator = internal.Translator

// Value is the static descriptor of an expression.
type Value = internal.Value

// SemanticError is a recoverable error found during translation.
type SemanticError = internal.SemanticError

// ErrorList is a list of semantic errors.
type ErrorList = internal.ErrorList

// ParseError is an error found while lexing or parsing.
type ParseError = internal.ParseError

// ContractError is the panic value for violated translator invariants.
type ContractError = internal.ContractError

// Parse parses source code into a tree.
func Parse(src io.Reader, label string) (*Tree, error) {
	return internal.Parse(src, label)
}

// NewTranslator creates a translator for one tree.
func NewTranslator() *Translator {
	return internal.NewTranslator()
}

// Result is the outcome of compiling one source.
type Result struct {
	// Label names the source.
	Label string
	// Output is the generated IR. It is assembled even when Errors is not
	// empty, for inspection only.
	Output string
	// Errors lists semantic errors sorted by line.
	Errors ErrorList
	// Path is where CompileFile wrote Output, if it did.
	Path string
}

// Failed reports whether the compilation recorded semantic errors.
func (r *Result) Failed() bool {
	return len(r.Errors) > 0
}

// Compile decodes, parses, and translates a source. A parse error returns a
// nil Result. Semantic errors return both the Result and its ErrorList. If
// cfg is nil, DefaultConfig is used.
func Compile(src io.Reader, label string, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	r, err := Decode(src, cfg.Encoding)
	if err != nil {
		return nil, err
	}
	logger.LogPhase("parse", label)
	tree, err := internal.Parse(r, label)
	if err != nil {
		return nil, err
	}
	logger.LogPhaseComplete("parse", label)
	t := internal.NewTranslator()
	if cfg.Stdlib != "" {
		t.Stdlib = cfg.Stdlib
	}
	out := t.Translate(tree)
	res := &Result{
		Label:  label,
		Output: Header(label, cfg) + out,
		Errors: t.Errors(),
	}
	res.Errors.Sort()
	return res, res.Errors.Err()
}

// CompileString compiles source code with the default configuration.
func CompileString(src, label string) (*Result, error) {
	return Compile(strings.NewReader(src), label, nil)
}

// CompileFile compiles the file at path and, if there were no errors, writes
// the output to cfg.OutputDir with the extension changed to .pir.
func CompileFile(path string, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	defer f.Close()
	res, err := Compile(f, filepath.Base(path), cfg)
	if err != nil {
		return res, err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return res, fmt.Errorf("creating output directory: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	res.Path = filepath.Join(cfg.OutputDir, base+".pir")
	if err := os.WriteFile(res.Path, []byte(res.Output), 0644); err != nil {
		res.Path = ""
		return res, fmt.Errorf("writing output: %w", err)
	}
	logger.LogOutput(res.Path, len(res.Output))
	return res, nil
}
