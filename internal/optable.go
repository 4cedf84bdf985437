package internal

// An Operator describes how a binary operator parses and which node it
// produces.
type Operator struct {
	// Kind is the kind of node the operator builds.
	Kind Kind
	// Precedence. Lower is more binding.
	Prec int
	// Associativity. Right-associativity is more binding than
	// left-associativity for operators of equal precedence.
	Right bool
}

// OpTable maps operator text to its parsing behavior.
type OpTable struct {
	Operators map[string]Operator
	Assigns   map[string]bool
}

// DefaultOpTable returns the operator table for the language.
func DefaultOpTable() *OpTable {
	return &OpTable{
		Operators: map[string]Operator{
			"**":  {Binary, 1, true},
			"%":   {Binary, 2, false},
			"*":   {Binary, 2, false},
			"/":   {Binary, 2, false},
			"+":   {Binary, 3, false},
			"-":   {Binary, 3, false},
			"<":   {Compare, 5, false},
			"<=":  {Compare, 5, false},
			">":   {Compare, 5, false},
			">=":  {Compare, 5, false},
			"!=":  {Compare, 6, false},
			"==":  {Compare, 6, false},
			"&":   {Logic, 7, false},
			"|":   {Logic, 9, false},
			"&&":  {Logic, 10, false},
			"and": {Logic, 10, false},
			"||":  {Logic, 11, false},
			"or":  {Logic, 11, false},
		},
		Assigns: map[string]bool{
			"=":   true,
			"+=":  true,
			"-=":  true,
			"*=":  true,
			"/=":  true,
			"%=":  true,
			"**=": true,
		},
	}
}

// maxPrec is looser than any operator.
const maxPrec = int(^uint(0) >> 1)

// Lookup returns the binary operator for a token, if it is one.
func (t *OpTable) Lookup(tok Token) (Operator, bool) {
	if tok.Kind != OpToken && tok.Kind != IdentToken {
		return Operator{}, false
	}
	op, ok := t.Operators[tok.Value]
	return op, ok
}

// IsAssign returns whether a token is an assignment operator.
func (t *OpTable) IsAssign(tok Token) bool {
	return tok.Kind == OpToken && t.Assigns[tok.Value]
}

// limit returns the loosest precedence the right operand of op may contain.
func (op Operator) limit() int {
	if op.Right {
		return op.Prec
	}
	return op.Prec - 1
}
