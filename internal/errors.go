package internal

import (
	"fmt"
	"sort"
	"strings"
)

// SemanticError is a recoverable error found during translation. Translation
// continues past it, but the program as a whole fails.
type SemanticError struct {
	Line int
	Msg  string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// ErrorList is a list of semantic errors in the order they were found.
type ErrorList []*SemanticError

// Add appends an error to the list.
func (l *ErrorList) Add(line int, msg string) {
	*l = append(*l, &SemanticError{Line: line, Msg: msg})
}

// Len implements sort.Interface.
func (l ErrorList) Len() int { return len(l) }

// Less implements sort.Interface.
func (l ErrorList) Less(i, j int) bool { return l[i].Line < l[j].Line }

// Swap implements sort.Interface.
func (l ErrorList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

// Sort sorts the list by line, keeping the discovery order of errors on the
// same line.
func (l ErrorList) Sort() {
	sort.Stable(l)
}

// Error returns all errors, one per line.
func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	for i, e := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

// Err returns an error equivalent to this list, or nil if it is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// ParseError is an error produced while lexing or parsing a source.
type ParseError struct {
	// Label names the source.
	Label string
	// Line and Col locate the offending token.
	Line, Col int
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %v", e.Label, e.Line, e.Col, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ContractError is the panic value for a violated internal invariant, such as
// popping an empty buffer stack. It indicates a bug in the translator or a
// malformed tree, never a problem with the program being compiled.
type ContractError string

func (e ContractError) Error() string {
	return "contract violation: " + string(e)
}
