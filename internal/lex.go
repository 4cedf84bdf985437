package internal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// A Token is a single lexical element.
type Token struct {
	Kind  TokenKind
	Value string
	Err   error

	Line, Col int
}

// TokenKind is the lexical class of a token.
type TokenKind int

const (
	BadToken TokenKind = iota

	SemiToken    // semicolon and newline
	IdentToken   // identifier or keyword
	GlobalToken  // $name
	IntToken     // integer, decimal or hexadecimal
	FloatToken   // number with fraction or exponent
	StringToken  // 'string' or "string"
	OpToken      // operator
	OpenToken    // open bracket: (, [
	CloseToken   // close bracket: ), ]
	CommaToken   // comma
	PIRToken     // %pir{ ... }
	CommentToken // # or =begin ... =end
	EOFToken     // end of input, only produced by the parser
)

// String returns the name of a token kind.
func (t TokenKind) String() string {
	switch t {
	case BadToken:
		return "BadToken"
	case SemiToken:
		return "SemiToken"
	case IdentToken:
		return "IdentToken"
	case GlobalToken:
		return "GlobalToken"
	case IntToken:
		return "IntToken"
	case FloatToken:
		return "FloatToken"
	case StringToken:
		return "StringToken"
	case OpToken:
		return "OpToken"
	case OpenToken:
		return "OpenToken"
	case CloseToken:
		return "CloseToken"
	case CommaToken:
		return "CommaToken"
	case PIRToken:
		return "PIRToken"
	case CommentToken:
		return "CommentToken"
	case EOFToken:
		return "EOFToken"
	}
	panic("invalid TokenKind")
}

// operators lists every operator the lexer recognizes, longest first so that
// the first prefix match is the longest match.
var operators = []string{
	"**=",
	"**", "+=", "-=", "*=", "/=", "%=", "==", "!=", "<=", ">=", "&&", "||",
	"+", "-", "*", "/", "%", "=", "<", ">", "!", "&", "|", ":",
}

const opChars = "+-*/%=<>!&|:"

// lexFn is a lexer state function. Each lexFn lexes a token, sends it on the
// supplied channel, and returns the next lexFn to use.
type lexFn func(src *bufio.Reader, tokens chan<- Token, line, col int) (lexFn, int, int)

// Lex converts a source into a stream of tokens. The channel is closed after
// the last token or after the first bad token.
func Lex(src *bufio.Reader, tokens chan<- Token) {
	state := eatSpace
	line, col := 1, 1
	for state != nil {
		state, line, col = state(src, tokens, line, col)
	}
	close(tokens)
}

// accept appends the next run of characters in src which satisfy the predicate
// to b. Returns b after appending, the first rune which did not satisfy the
// predicate, and any error that occurred. If there was no such error, the
// last rune is unread.
func accept(src *bufio.Reader, predicate func(rune) bool, b []byte) ([]byte, rune, error) {
	r, _, err := src.ReadRune()
	for {
		if err != nil {
			return b, r, err
		}
		if !predicate(r) {
			break
		}
		b = append(b, string(r)...)
		r, _, err = src.ReadRune()
	}
	src.UnreadRune()
	return b, r, nil
}

// lexsend is a shortcut for sending a token with error checking. It returns
// eatSpace as the default lexing function.
func lexsend(err error, tokens chan<- Token, good Token) lexFn {
	if err != nil && err != io.EOF {
		good.Kind = BadToken
		good.Err = err
	}
	tokens <- good
	if err != nil {
		return nil
	}
	return eatSpace
}

func isIdentStart(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_' || r >= 0x80
}

func isIdentRune(r rune) bool {
	return isIdentStart(r) || '0' <= r && r <= '9' || r == '?'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// eatSpace consumes space and decides the next lexFn to use.
func eatSpace(src *bufio.Reader, tokens chan<- Token, line, col int) (lexFn, int, int) {
	eaten, r, err := accept(src, func(r rune) bool { return strings.ContainsRune(" \r\f\t\v", r) }, nil)
	col += len(eaten)
	if err != nil {
		if err != io.EOF {
			tokens <- Token{
				Kind:  BadToken,
				Value: string(r),
				Err:   err,
				Line:  line,
				Col:   col,
			}
		}
		return nil, line, col
	}
	switch {
	case r == ';', r == '\n':
		src.ReadRune()
		tokens <- Token{
			Kind:  SemiToken,
			Value: string(r),
			Line:  line,
			Col:   col,
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		return eatSpace, line, col
	case r == '\\':
		// Line continuation.
		peek, _ := src.Peek(2)
		if len(peek) > 1 && peek[1] == '\n' {
			src.Discard(2)
			return eatSpace, line + 1, 1
		}
	case r == '=' && col == 1:
		peek, _ := src.Peek(6)
		if string(peek) == "=begin" {
			return lexBlockComment, line, col
		}
		return lexOp, line, col
	case isIdentStart(r):
		return lexIdent, line, col
	case r == '$':
		return lexGlobal, line, col
	case r == '%':
		peek, _ := src.Peek(5)
		if string(peek) == "%pir{" {
			return lexPIR, line, col
		}
		return lexOp, line, col
	case strings.ContainsRune(opChars, r):
		return lexOp, line, col
	case r == '(' || r == '[':
		src.ReadRune()
		tokens <- Token{
			Kind:  OpenToken,
			Value: string(r),
			Line:  line,
			Col:   col,
		}
		return eatSpace, line, col + 1
	case r == ')' || r == ']':
		src.ReadRune()
		tokens <- Token{
			Kind:  CloseToken,
			Value: string(r),
			Line:  line,
			Col:   col,
		}
		return eatSpace, line, col + 1
	case r == ',':
		src.ReadRune()
		tokens <- Token{
			Kind:  CommaToken,
			Value: ",",
			Line:  line,
			Col:   col,
		}
		return eatSpace, line, col + 1
	case isDigit(r):
		return lexNumber, line, col
	case r == '\'' || r == '"':
		return lexString, line, col
	case r == '#':
		return lexHashComment, line, col
	}
	tokens <- Token{
		Kind:  BadToken,
		Value: string(r),
		Err:   fmt.Errorf("lexer encountered invalid character %q", r),
		Line:  line,
		Col:   col,
	}
	return nil, line, col
}

// lexIdent lexes an identifier, which consists of a-z, A-Z, 0-9, _, a
// trailing ?, and all runes greater than 0x80.
func lexIdent(src *bufio.Reader, tokens chan<- Token, line, col int) (lexFn, int, int) {
	b, _, err := accept(src, isIdentRune, nil)
	ncol := col + len(b)
	return lexsend(err, tokens, Token{Kind: IdentToken, Value: string(b), Line: line, Col: col}), line, ncol
}

// lexGlobal lexes a global variable reference, a $ followed by an identifier.
func lexGlobal(src *bufio.Reader, tokens chan<- Token, line, col int) (lexFn, int, int) {
	src.ReadRune()
	b, _, err := accept(src, isIdentRune, []byte{'$'})
	if len(b) == 1 {
		tokens <- Token{Kind: BadToken, Value: "$", Err: fmt.Errorf("global variable name expected after $"), Line: line, Col: col}
		return nil, line, col
	}
	ncol := col + len(b)
	return lexsend(err, tokens, Token{Kind: GlobalToken, Value: string(b), Line: line, Col: col}), line, ncol
}

// lexOp lexes an operator, choosing the longest operator that prefixes the
// remaining input.
func lexOp(src *bufio.Reader, tokens chan<- Token, line, col int) (lexFn, int, int) {
	peek, _ := src.Peek(3)
	for _, op := range operators {
		if strings.HasPrefix(string(peek), op) {
			src.Discard(len(op))
			tokens <- Token{Kind: OpToken, Value: op, Line: line, Col: col}
			return eatSpace, line, col + len(op)
		}
	}
	tokens <- Token{
		Kind:  BadToken,
		Value: string(peek),
		Err:   fmt.Errorf("lexer encountered invalid operator %q", peek),
		Line:  line,
		Col:   col,
	}
	return nil, line, col
}

// lexHashComment lexes a # comment.
func lexHashComment(src *bufio.Reader, tokens chan<- Token, line, col int) (lexFn, int, int) {
	b, _, err := accept(src, func(r rune) bool { return r != '\n' }, nil)
	ncol := col + len(b)
	return lexsend(err, tokens, Token{Kind: CommentToken, Value: string(b), Line: line, Col: col}), line, ncol
}

// lexBlockComment lexes an =begin ... =end comment. The =end must start a
// line.
func lexBlockComment(src *bufio.Reader, tokens chan<- Token, line, col int) (lexFn, int, int) {
	var b []byte
	nline := line
	for {
		s, err := src.ReadString('\n')
		b = append(b, s...)
		if strings.HasPrefix(s, "=end") && nline > line {
			return lexsend(err, tokens, Token{Kind: CommentToken, Value: strings.TrimRight(string(b), "\n"), Line: line, Col: col}), nline + 1, 1
		}
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			tokens <- Token{Kind: BadToken, Value: string(b), Err: err, Line: line, Col: col}
			return nil, nline, 1
		}
		nline++
	}
}

// lexPIR lexes an inline PIR block, %pir{ ... }. Braces inside the block nest.
func lexPIR(src *bufio.Reader, tokens chan<- Token, line, col int) (lexFn, int, int) {
	src.Discard(len("%pir{"))
	depth := 1
	nline := line
	ncol := col + len("%pir{")
	var b []byte
	for {
		r, _, err := src.ReadRune()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			tokens <- Token{Kind: BadToken, Value: "%pir{" + string(b), Err: err, Line: line, Col: col}
			return nil, nline, ncol
		}
		ncol++
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				tokens <- Token{Kind: PIRToken, Value: string(b), Line: line, Col: col}
				return eatSpace, nline, ncol
			}
		case '\n':
			nline++
			ncol = 1
		}
		b = append(b, string(r)...)
	}
}

// lexNumber lexes an integer or float literal.
func lexNumber(src *bufio.Reader, tokens chan<- Token, line, col int) (lexFn, int, int) {
	b, r, err := accept(src, func(r rune) bool { return isDigit(r) || r == '_' }, nil)
	ncol := col + len(b)
	if err != nil {
		return lexsend(err, tokens, Token{Kind: IntToken, Value: string(b), Line: line, Col: col}), line, ncol
	}
	if r == 'x' || r == 'X' {
		if len(b) != 1 || b[0] != '0' {
			tokens <- Token{Kind: BadToken, Value: string(b), Err: fmt.Errorf("invalid numeric literal %s%c", b, r), Line: line, Col: col}
			return nil, line, ncol
		}
		src.ReadRune()
		b = append(b, 'x')
		prelen := len(b)
		b, _, err = accept(src, func(r rune) bool {
			return isDigit(r) || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
		}, b)
		ncol += len(b) - prelen + 1
		if len(b) == prelen {
			tokens <- Token{Kind: BadToken, Value: string(b), Err: fmt.Errorf("invalid numeric literal %s", b), Line: line, Col: col}
			return nil, line, ncol
		}
		return lexsend(err, tokens, Token{Kind: IntToken, Value: string(b), Line: line, Col: col}), line, ncol
	}
	kind := IntToken
	if r == '.' {
		// A fraction needs a digit after the dot; otherwise the dot belongs
		// to something else.
		peek, _ := src.Peek(2)
		if len(peek) < 2 || !isDigit(rune(peek[1])) {
			return lexsend(nil, tokens, Token{Kind: IntToken, Value: string(b), Line: line, Col: col}), line, ncol
		}
		src.ReadRune()
		b = append(b, '.')
		prelen := len(b)
		b, r, err = accept(src, isDigit, b)
		ncol += len(b) - prelen + 1
		kind = FloatToken
		if err != nil {
			return lexsend(err, tokens, Token{Kind: kind, Value: string(b), Line: line, Col: col}), line, ncol
		}
	}
	if r == 'e' || r == 'E' {
		src.ReadRune()
		b = append(b, 'e')
		ncol++
		peek, _ := src.Peek(1)
		if len(peek) == 1 && (peek[0] == '-' || peek[0] == '+') {
			src.ReadRune()
			b = append(b, peek[0])
			ncol++
		}
		prelen := len(b)
		b, _, err = accept(src, isDigit, b)
		ncol += len(b) - prelen
		if len(b) == prelen {
			tokens <- Token{Kind: BadToken, Value: string(b), Err: fmt.Errorf("invalid numeric literal %s", b), Line: line, Col: col}
			return nil, line, ncol
		}
		kind = FloatToken
	}
	return lexsend(err, tokens, Token{Kind: kind, Value: string(b), Line: line, Col: col}), line, ncol
}

// lexString lexes a single- or double-quoted string. The token value keeps
// its quotes and escapes exactly as written.
func lexString(src *bufio.Reader, tokens chan<- Token, line, col int) (lexFn, int, int) {
	q, _, _ := src.ReadRune()
	b := []byte{byte(q)}
	nline := line
	ncol := col + 1
	ps := false
	for {
		r, _, err := src.ReadRune()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			tokens <- Token{
				Kind:  BadToken,
				Value: string(b),
				Err:   err,
				Line:  line,
				Col:   col,
			}
			return nil, nline, ncol
		}
		ncol++
		b = append(b, string(r)...)
		switch {
		case r == '\\':
			ps = !ps
		case r == q && !ps:
			return lexsend(nil, tokens, Token{Kind: StringToken, Value: string(b), Line: line, Col: col}), nline, ncol
		case r == '\n':
			nline++
			ncol = 1
			ps = false
		default:
			ps = false
		}
	}
}
