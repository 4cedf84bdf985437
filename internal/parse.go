package internal

/*
This file converts lexer tokens into a parse tree. Operator precedence is
described in optable.go.
*/

import (
	"bufio"
	"fmt"
	"io"
)

// keywords are identifiers that cannot name variables or functions.
var keywords = map[string]bool{
	"and":     true,
	"break":   true,
	"def":     true,
	"do":      true,
	"else":    true,
	"elsif":   true,
	"end":     true,
	"false":   true,
	"for":     true,
	"if":      true,
	"not":     true,
	"or":      true,
	"require": true,
	"return":  true,
	"then":    true,
	"true":    true,
	"unless":  true,
	"while":   true,
}

type parser struct {
	tokens <-chan Token
	ahead  []Token
	last   Token

	label string
	ops   *OpTable
	tree  *Tree

	// nest is the depth of blocks around the current statement.
	nest int
	// loops is the number of loops around the current statement within the
	// current function.
	loops int
}

// bailout is the panic value the parser uses to unwind on error.
type bailout struct {
	err *ParseError
}

// Parse converts source code into a parse tree. label names the source in
// errors and in the resulting tree.
func Parse(source io.Reader, label string) (tree *Tree, err error) {
	src := bufio.NewReader(source)
	tokens := make(chan Token)
	go Lex(src, tokens)
	p := &parser{
		tokens: tokens,
		label:  label,
		ops:    DefaultOpTable(),
		tree:   &Tree{Label: label},
	}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		b, ok := r.(bailout)
		if !ok {
			panic(r)
		}
		// Let the lexer finish so it doesn't block forever.
		for range tokens {
		}
		tree, err = nil, b.err
	}()
	p.tree.Root = p.program()
	return p.tree, nil
}

// fail stops parsing with an error at tok.
func (p *parser) fail(tok Token, format string, args ...interface{}) {
	err := fmt.Errorf(format, args...)
	if tok.Kind == EOFToken {
		err = fmt.Errorf("%v: %w", err, io.ErrUnexpectedEOF)
	}
	panic(bailout{&ParseError{Label: p.label, Line: tok.Line, Col: tok.Col, Err: err}})
}

// read receives the next non-comment token from the lexer.
func (p *parser) read() Token {
	for tok := range p.tokens {
		switch tok.Kind {
		case CommentToken:
			continue
		case BadToken:
			panic(bailout{&ParseError{Label: p.label, Line: tok.Line, Col: tok.Col, Err: tok.Err}})
		}
		p.last = tok
		return tok
	}
	return Token{Kind: EOFToken, Line: p.last.Line, Col: p.last.Col + len(p.last.Value)}
}

// peek returns the token i places ahead without consuming it.
func (p *parser) peek(i int) Token {
	for len(p.ahead) <= i {
		p.ahead = append(p.ahead, p.read())
	}
	return p.ahead[i]
}

// tok returns the current token.
func (p *parser) tok() Token {
	return p.peek(0)
}

// next consumes and returns the current token.
func (p *parser) next() Token {
	tok := p.peek(0)
	p.ahead = p.ahead[1:]
	return tok
}

// skipNewlines consumes newline tokens, but not semicolons.
func (p *parser) skipNewlines() {
	for t := p.tok(); t.Kind == SemiToken && t.Value == "\n"; t = p.tok() {
		p.next()
	}
}

// node creates an interior node and assigns it the next ID.
func (p *parser) node(kind Kind, tok Token, children ...*Node) *Node {
	n := &Node{
		ID:       NodeID(len(p.tree.Nodes)),
		Kind:     kind,
		Children: children,
		Token:    tok,
	}
	p.tree.Nodes = append(p.tree.Nodes, n)
	return n
}

// term creates a terminal node.
func (p *parser) term(tok Token) *Node {
	return p.node(Terminal, tok)
}

func isKeyword(tok Token, kw string) bool {
	return tok.Kind == IdentToken && tok.Value == kw
}

func isOp(tok Token, op string) bool {
	return tok.Kind == OpToken && tok.Value == op
}

func isName(tok Token) bool {
	return tok.Kind == IdentToken && !keywords[tok.Value]
}

func describe(tok Token) string {
	if tok.Kind == EOFToken {
		return "end of input"
	}
	if tok.Kind == SemiToken && tok.Value == "\n" {
		return "newline"
	}
	return fmt.Sprintf("%q", tok.Value)
}

// expectKeyword consumes the given keyword.
func (p *parser) expectKeyword(kw string) Token {
	tok := p.next()
	if !isKeyword(tok, kw) {
		p.fail(tok, "expected %q, found %s", kw, describe(tok))
	}
	return tok
}

// expect consumes a token of the given kind and value.
func (p *parser) expect(kind TokenKind, value string) Token {
	tok := p.next()
	if tok.Kind != kind || tok.Value != value {
		p.fail(tok, "expected %q, found %s", value, describe(tok))
	}
	return tok
}

// expectName consumes an identifier that is not a keyword.
func (p *parser) expectName(what string) Token {
	tok := p.next()
	if !isName(tok) {
		p.fail(tok, "expected %s, found %s", what, describe(tok))
	}
	return tok
}

func (p *parser) program() *Node {
	first := p.tok()
	list := p.stmts()
	if tok := p.tok(); tok.Kind != EOFToken {
		p.fail(tok, "unexpected %s", describe(tok))
	}
	return p.node(Program, first, list)
}

// stmts parses statements until the end of input or one of the given
// keywords, which is left unconsumed.
func (p *parser) stmts(stop ...string) *Node {
	first := p.tok()
	var list []*Node
	for {
		tok := p.tok()
		if tok.Kind == SemiToken {
			p.next()
			continue
		}
		if tok.Kind == EOFToken || tok.Kind == IdentToken && oneOf(stop, tok.Value) {
			return p.node(StmtList, first, list...)
		}
		list = append(list, p.stmt())
		switch tok := p.tok(); {
		case tok.Kind == SemiToken:
			p.next()
		case tok.Kind == EOFToken, tok.Kind == IdentToken && oneOf(stop, tok.Value):
			// The caller handles it.
		default:
			p.fail(tok, "expected newline or ; after statement, found %s", describe(tok))
		}
	}
}

func oneOf(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func (p *parser) stmt() *Node {
	tok := p.tok()
	switch tok.Kind {
	case PIRToken:
		p.next()
		return p.node(InlinePIR, tok, p.term(tok))
	case GlobalToken:
		p.next()
		op := p.next()
		if !isOp(op, "=") {
			p.fail(op, "expected = after global %s, found %s", tok.Value, describe(op))
		}
		return p.node(GlobalSet, tok, p.term(tok), p.term(op), p.expr())
	case IdentToken:
		// handled below
	default:
		p.fail(tok, "unexpected %s at start of statement", describe(tok))
	}
	switch tok.Value {
	case "def":
		return p.funcdef()
	case "if":
		return p.ifStmt()
	case "unless":
		return p.unlessStmt()
	case "while":
		return p.whileStmt()
	case "for":
		return p.forStmt()
	case "break":
		p.next()
		if p.loops == 0 {
			p.fail(tok, "break outside of a loop")
		}
		return p.node(Break, tok)
	case "return":
		p.next()
		if p.endsStmt(p.tok()) {
			return p.node(Return, tok)
		}
		return p.node(Return, tok, p.expr())
	case "require":
		p.next()
		name := p.next()
		if name.Kind != StringToken {
			p.fail(name, "expected string after require, found %s", describe(name))
		}
		return p.node(Require, tok, p.term(name))
	}
	if !isName(tok) {
		p.fail(tok, "unexpected %s at start of statement", describe(tok))
	}
	next := p.peek(1)
	switch {
	case p.ops.IsAssign(next), next.Kind == OpenToken && next.Value == "[":
		return p.assignment()
	case next.Kind == OpenToken && next.Value == "(":
		p.next()
		return p.node(CallStmt, tok, p.call(tok))
	case p.startsCommandArg(tok, next):
		p.next()
		args := p.args(tok, false)
		return p.node(CallStmt, tok, p.node(Call, tok, p.term(tok), args))
	}
	p.next()
	return p.node(CallStmt, tok, p.node(Call, tok, p.term(tok), p.node(Args, tok)))
}

// endsStmt returns whether tok ends a statement.
func (p *parser) endsStmt(tok Token) bool {
	switch tok.Kind {
	case SemiToken, EOFToken:
		return true
	case IdentToken:
		switch tok.Value {
		case "end", "else", "elsif":
			return true
		}
	}
	return false
}

// startsCommandArg returns whether tok begins the first argument of a call to
// name written without parentheses. A - or ! starts an argument only when it
// is spaced from name and attached to its operand, as in puts -1.
func (p *parser) startsCommandArg(name, tok Token) bool {
	switch tok.Kind {
	case IntToken, FloatToken, StringToken, GlobalToken:
		return true
	case OpToken:
		if tok.Value != "-" && tok.Value != "!" {
			return false
		}
		after := p.peek(2)
		return tok.Line == name.Line && tok.Col > name.Col+len(name.Value) &&
			after.Line == tok.Line && after.Col == tok.Col+1
	case IdentToken:
		return !keywords[tok.Value] || tok.Value == "not" || tok.Value == "true" || tok.Value == "false"
	}
	return false
}

// assignment parses a statement beginning with an identifier and an
// assignment operator or an index.
func (p *parser) assignment() *Node {
	name := p.next()
	if t := p.tok(); t.Kind == OpenToken && t.Value == "[" {
		target := p.index(name)
		op := p.next()
		if !isOp(op, "=") {
			p.fail(op, "expected = after %s, found %s", target.Text(), describe(op))
		}
		return p.node(IndexAssign, name, target, p.term(op), p.expr())
	}
	op := p.next()
	if !p.ops.IsAssign(op) {
		p.fail(op, "expected assignment operator, found %s", describe(op))
	}
	if op.Value == "=" {
		switch t := p.tok(); {
		case t.Kind == OpenToken && t.Value == "[":
			p.next()
			if c := p.next(); c.Kind != CloseToken || c.Value != "]" {
				p.fail(c, "array literals must be empty")
			}
			return p.node(ArrayInit, name, p.term(name), p.term(op))
		case t.Kind == GlobalToken && p.endsStmt(p.peek(1)):
			p.next()
			return p.node(GlobalGet, name, p.term(name), p.term(op), p.term(t))
		}
	}
	p.skipNewlines()
	return p.node(Assign, name, p.term(name), p.term(op), p.expr())
}

func (p *parser) funcdef() *Node {
	tok := p.expectKeyword("def")
	if p.nest > 0 {
		p.fail(tok, "def must be at top level")
	}
	name := p.expectName("function name")
	params := p.node(Params, p.tok())
	if t := p.tok(); t.Kind == OpenToken && t.Value == "(" {
		p.next()
		p.skipNewlines()
		if c := p.tok(); c.Kind != CloseToken {
			p.paramList(params)
		}
		p.skipNewlines()
		p.expect(CloseToken, ")")
	} else if isName(t) {
		p.paramList(params)
	}
	p.nest++
	loops := p.loops
	p.loops = 0
	body := p.body("end")
	p.loops = loops
	p.nest--
	p.expectKeyword("end")
	return p.node(FuncDef, tok, p.term(name), params, body)
}

func (p *parser) paramList(params *Node) {
	for {
		param := p.expectName("parameter name")
		params.Children = append(params.Children, p.term(param))
		if p.tok().Kind != CommaToken {
			return
		}
		p.next()
		p.skipNewlines()
	}
}

// body parses a block of statements and wraps it in a Body node.
func (p *parser) body(stop ...string) *Node {
	tok := p.tok()
	return p.node(Body, tok, p.stmts(stop...))
}

// cond parses a condition followed by an optional keyword and the line end.
func (p *parser) cond(opt string) *Node {
	tok := p.tok()
	e := p.expr()
	switch t := p.tok(); {
	case isKeyword(t, opt):
		p.next()
	case t.Kind == SemiToken:
		// The body's statement list consumes it.
	default:
		p.fail(t, "expected newline after condition, found %s", describe(t))
	}
	return p.node(Cond, tok, e)
}

func (p *parser) ifStmt() *Node {
	tok := p.expectKeyword("if")
	p.nest++
	defer func() { p.nest-- }()
	children := []*Node{p.cond("then"), p.body("elsif", "else", "end")}
	for t := p.tok(); isKeyword(t, "elsif"); t = p.tok() {
		p.next()
		c := p.cond("then")
		b := p.body("elsif", "else", "end")
		children = append(children, p.node(Elsif, t, c, b))
	}
	if t := p.tok(); isKeyword(t, "else") {
		p.next()
		children = append(children, p.node(Else, t, p.body("end")))
	}
	p.expectKeyword("end")
	return p.node(If, tok, children...)
}

func (p *parser) unlessStmt() *Node {
	tok := p.expectKeyword("unless")
	p.nest++
	defer func() { p.nest-- }()
	children := []*Node{p.cond("then"), p.body("else", "end")}
	if t := p.tok(); isKeyword(t, "else") {
		p.next()
		children = append(children, p.node(Else, t, p.body("end")))
	}
	p.expectKeyword("end")
	return p.node(Unless, tok, children...)
}

func (p *parser) whileStmt() *Node {
	tok := p.expectKeyword("while")
	p.nest++
	p.loops++
	defer func() { p.nest--; p.loops-- }()
	c := p.cond("do")
	b := p.body("end")
	p.expectKeyword("end")
	return p.node(While, tok, c, b)
}

func (p *parser) forStmt() *Node {
	tok := p.expectKeyword("for")
	p.nest++
	p.loops++
	defer func() { p.nest--; p.loops-- }()
	p.expect(OpenToken, "(")
	init := p.forClause(ForInit, ";")
	p.expect(SemiToken, ";")
	ctok := p.tok()
	c := p.node(Cond, ctok, p.expr())
	p.expect(SemiToken, ";")
	step := p.forClause(ForStep, ")")
	p.expect(CloseToken, ")")
	b := p.body("end")
	p.expectKeyword("end")
	return p.node(For, tok, init, c, step, b)
}

// forClause parses the comma-separated assignments of a for header up to the
// given closing token, which is left unconsumed.
func (p *parser) forClause(kind Kind, close string) *Node {
	n := p.node(kind, p.tok())
	if p.tok().Value == close {
		return n
	}
	for {
		tok := p.tok()
		if !isName(tok) || !p.ops.IsAssign(p.peek(1)) && !(p.peek(1).Kind == OpenToken && p.peek(1).Value == "[") {
			p.fail(tok, "expected assignment in for header, found %s", describe(tok))
		}
		n.Children = append(n.Children, p.assignment())
		if p.tok().Kind != CommaToken {
			return n
		}
		p.next()
	}
}

// expr parses a full expression.
func (p *parser) expr() *Node {
	return p.binary(maxPrec)
}

// binary parses an expression whose operators are all at most as loose as
// limit.
func (p *parser) binary(limit int) *Node {
	left := p.unary()
	for {
		tok := p.tok()
		op, ok := p.ops.Lookup(tok)
		if !ok || op.Prec > limit {
			return left
		}
		p.next()
		p.skipNewlines()
		right := p.binary(op.limit())
		left = p.node(op.Kind, left.Token, left, p.term(tok), right)
	}
}

func (p *parser) unary() *Node {
	tok := p.tok()
	if isOp(tok, "-") || isOp(tok, "!") || isKeyword(tok, "not") {
		p.next()
		return p.node(Unary, tok, p.term(tok), p.unary())
	}
	return p.primary()
}

func (p *parser) primary() *Node {
	tok := p.next()
	switch tok.Kind {
	case IntToken, FloatToken, StringToken:
		if _, err := literal(tok); err != nil {
			p.fail(tok, "%v", err)
		}
		return p.node(Literal, tok, p.term(tok))
	case GlobalToken:
		return p.node(GlobalRef, tok, p.term(tok))
	case OpenToken:
		if tok.Value != "(" {
			break
		}
		p.skipNewlines()
		e := p.expr()
		p.skipNewlines()
		c := p.expect(CloseToken, ")")
		return p.node(Paren, tok, p.term(tok), e, p.term(c))
	case IdentToken:
		if tok.Value == "true" || tok.Value == "false" {
			return p.node(Literal, tok, p.term(tok))
		}
		if !isName(tok) {
			break
		}
		switch t := p.tok(); {
		case t.Kind == OpenToken && t.Value == "(":
			return p.call(tok)
		case t.Kind == OpenToken && t.Value == "[":
			return p.index(tok)
		}
		return p.node(Ident, tok, p.term(tok))
	}
	p.fail(tok, "unexpected %s in expression", describe(tok))
	panic("unreachable")
}

// call parses the parenthesized arguments of a call to name.
func (p *parser) call(name Token) *Node {
	p.expect(OpenToken, "(")
	p.skipNewlines()
	var args *Node
	if t := p.tok(); t.Kind == CloseToken {
		args = p.node(Args, t)
	} else {
		args = p.args(t, true)
	}
	p.skipNewlines()
	p.expect(CloseToken, ")")
	return p.node(Call, name, p.term(name), args)
}

// args parses a comma-separated argument list.
func (p *parser) args(tok Token, paren bool) *Node {
	n := p.node(Args, tok)
	for {
		t := p.tok()
		if isName(t) && isOp(p.peek(1), ":") {
			p.next()
			p.next()
			n.Children = append(n.Children, p.node(Arg, t, p.term(t), p.expr()))
		} else {
			n.Children = append(n.Children, p.node(Arg, t, p.expr()))
		}
		if p.tok().Kind != CommaToken {
			return n
		}
		p.next()
		if paren {
			p.skipNewlines()
		}
	}
}

// index parses an element access of the array named by name. The current
// token is the opening bracket.
func (p *parser) index(name Token) *Node {
	arr := p.node(Ident, name, p.term(name))
	open := p.expect(OpenToken, "[")
	p.skipNewlines()
	e := p.expr()
	if bad := nonIntegral(e); bad != nil {
		what := "string"
		if bad.Token.Kind == FloatToken {
			what = "float"
		}
		p.fail(bad.Token, "array index cannot contain a %s literal", what)
	}
	p.skipNewlines()
	c := p.expect(CloseToken, "]")
	return p.node(Index, name, arr, p.term(open), e, p.term(c))
}

// nonIntegral finds a float or string literal in an index expression.
func nonIntegral(n *Node) *Node {
	if n.Kind == Literal {
		if k := n.Child(0).Token.Kind; k == FloatToken || k == StringToken {
			return n
		}
		return nil
	}
	if n.Kind == Index || n.Kind == Call {
		// These introduce their own contexts.
		return nil
	}
	for _, c := range n.Children {
		if bad := nonIntegral(c); bad != nil {
			return bad
		}
	}
	return nil
}
