//go:generate go run ../cmd/kindgen -type Kind -output kind_string.go

package internal

import (
	"strings"
)

// Kind identifies the grammar production a Node was built from. The set of
// kinds is closed; every translator hook switches over all of them.
type Kind int

// Node kinds. Terminal nodes carry a Token; all other kinds are interior.
const (
	Terminal Kind = iota

	// Program is the root: a single StmtList child.
	Program
	// StmtList is a sequence of statements.
	StmtList

	// FuncDef has children: name Terminal, Params, Body.
	FuncDef
	// Params is a list of parameter Terminals.
	Params
	// Return has zero or one expression child.
	Return

	// If has children: Cond, Body, zero or more Elsif, optional Else.
	If
	// Unless has children: Cond, Body, optional Else.
	Unless
	// Elsif has children: Cond, Body.
	Elsif
	// Else has a single Body child.
	Else
	// While has children: Cond, Body.
	While
	// For has children: ForInit, Cond, ForStep, Body.
	For
	// ForInit holds zero or more assignment statements.
	ForInit
	// ForStep holds zero or more assignment statements.
	ForStep
	// Cond wraps the condition expression of a branch or loop.
	Cond
	// Body wraps the StmtList of one arm of a branch or loop.
	Body
	// Break has no children.
	Break

	// Assign has children: target Terminal, operator Terminal, expression.
	Assign
	// ArrayInit has children: target Terminal, operator Terminal.
	ArrayInit
	// IndexAssign has children: Index, operator Terminal, expression.
	IndexAssign
	// GlobalSet has children: global Terminal, operator Terminal, expression.
	GlobalSet
	// GlobalGet has children: target Terminal, operator Terminal, global
	// Terminal.
	GlobalGet
	// Require has a single string Terminal child.
	Require
	// InlinePIR has a single PIR Terminal child.
	InlinePIR
	// CallStmt wraps a Call used as a statement.
	CallStmt

	// Call has children: name Terminal, Args.
	Call
	// Args is a list of Arg.
	Args
	// Arg has either one expression child or a name Terminal followed by an
	// expression for keyword arguments.
	Arg

	// Literal has a single literal Terminal child.
	Literal
	// Ident has a single identifier Terminal child.
	Ident
	// GlobalRef has a single global Terminal child.
	GlobalRef
	// Paren has children: "(" Terminal, expression, ")" Terminal.
	Paren
	// Unary has children: operator Terminal, expression.
	Unary
	// Binary is an arithmetic expression: left, operator Terminal, right.
	Binary
	// Compare is a relational expression: left, operator Terminal, right.
	Compare
	// Logic is a boolean or bitwise connective: left, operator Terminal,
	// right.
	Logic
	// Index has children: array Ident, "[" Terminal, expression, "]" Terminal.
	Index

	numKinds
)

// NodeID is a node's stable identity within one parse tree. IDs are dense
// indices in creation order.
type NodeID int

// A Node is an element of the parse tree. Nodes are immutable once parsing
// finishes; values computed during translation are kept in side tables keyed
// by ID.
type Node struct {
	ID       NodeID
	Kind     Kind
	Children []*Node
	// Token is the lexical element of a Terminal. For interior nodes it is
	// the first token of the production, used for line numbers.
	Token Token
}

// Tree is a parsed program together with its node arena.
type Tree struct {
	Root *Node
	// Label names the source, generally a file name.
	Label string
	// Nodes holds every node indexed by ID.
	Nodes []*Node
}

// Child returns the ith child of n.
func (n *Node) Child(i int) *Node {
	return n.Children[i]
}

// Line returns the line at which the node's production begins.
func (n *Node) Line() int {
	return n.Token.Line
}

// Text returns the literal text of a terminal, or the concatenated text of
// all terminals beneath an interior node.
func (n *Node) Text() string {
	if n.Kind == Terminal {
		return n.Token.Value
	}
	var b strings.Builder
	n.text(&b)
	return b.String()
}

func (n *Node) text(b *strings.Builder) {
	if n.Kind == Terminal {
		b.WriteString(n.Token.Value)
		return
	}
	for _, c := range n.Children {
		c.text(b)
	}
}

// Op returns the operator terminal of an interior node, or nil if it has
// none. Binary-shaped nodes keep the operator as their middle child.
func (n *Node) Op() *Node {
	switch n.Kind {
	case Binary, Compare, Logic, Assign, ArrayInit, IndexAssign, GlobalSet, GlobalGet:
		return n.Children[1]
	case Unary:
		return n.Children[0]
	}
	return nil
}

// itoa formats x in decimal.
func itoa(x int) string {
	if x == 0 {
		return "0"
	}
	neg := x < 0
	if neg {
		x = -x
	}
	var b [20]byte
	i := len(b)
	for x > 0 {
		i--
		b[i] = byte('0' + x%10)
		x /= 10
	}
	if neg {
		i--
		b[i] = '-'
	}
	return string(b[i:])
}
