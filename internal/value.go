package internal

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind is what the translator knows statically about an expression's
// type.
type ValueKind int

const (
	// Integer is a compile-time integer constant.
	Integer ValueKind = iota
	// Float is a compile-time floating-point constant.
	Float
	// String is a compile-time string constant.
	String
	// Dynamic is a value whose type is known only at run time. Its Text is
	// the IR reference that holds it: a variable, a register, or an element
	// access.
	Dynamic
)

func (k ValueKind) String() string {
	switch k {
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case String:
		return "String"
	case Dynamic:
		return "Dynamic"
	}
	return "ValueKind(" + itoa(int(k)) + ")"
}

// A Value is the descriptor the translator attaches to an expression node.
// Only the field matching Kind is meaningful.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	// Text is the contents of a String or the reference of a Dynamic value.
	Text string
}

// IntValue creates an Integer descriptor.
func IntValue(n int64) Value {
	return Value{Kind: Integer, Int: n}
}

// FloatValue creates a Float descriptor.
func FloatValue(f float64) Value {
	return Value{Kind: Float, Float: f}
}

// StringValue creates a String descriptor. s is the string's contents as they
// appear between the quotes of the output.
func StringValue(s string) Value {
	return Value{Kind: String, Text: s}
}

// DynamicValue creates a Dynamic descriptor referring to ref.
func DynamicValue(ref string) Value {
	return Value{Kind: Dynamic, Text: ref}
}

// Static returns whether v is a compile-time constant.
func (v Value) Static() bool {
	return v.Kind != Dynamic
}

// Render returns v as an IR operand.
func (v Value) Render() string {
	switch v.Kind {
	case Integer:
		return strconv.FormatInt(v.Int, 10)
	case Float:
		return formatFloat(v.Float)
	case String:
		return `"` + v.Text + `"`
	case Dynamic:
		return v.Text
	}
	panic(ContractError("render of invalid " + v.Kind.String()))
}

// Class returns the runtime class used to construct a variable first
// assigned v. Dynamic values use Integer, which the runtime morphs as needed.
func (v Value) Class() string {
	switch v.Kind {
	case Float:
		return "Double"
	case String:
		return "String"
	}
	return "Integer"
}

// formatFloat formats f so that it always reads as a float in the output.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}

// Values is the side table of descriptors keyed by node identity.
type Values struct {
	m map[NodeID]Value
}

// NewValues creates an empty descriptor table.
func NewValues() *Values {
	return &Values{m: make(map[NodeID]Value)}
}

// Put sets the descriptor for a node, replacing any earlier one.
func (t *Values) Put(id NodeID, v Value) {
	t.m[id] = v
}

// Lookup returns the descriptor for a node and whether it has one.
func (t *Values) Lookup(id NodeID) (Value, bool) {
	v, ok := t.m[id]
	return v, ok
}

// Get returns the descriptor for a node that must already have one.
func (t *Values) Get(id NodeID) Value {
	v, ok := t.m[id]
	if !ok {
		panic(ContractError("no descriptor for node " + itoa(int(id))))
	}
	return v
}

// Len returns the number of nodes with descriptors.
func (t *Values) Len() int {
	return len(t.m)
}

// literal converts a literal terminal to its descriptor.
func literal(tok Token) (Value, error) {
	switch tok.Kind {
	case IntToken:
		s := strings.ReplaceAll(tok.Value, "_", "")
		var n int64
		var err error
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			n, err = strconv.ParseInt(s[2:], 16, 64)
		} else {
			n, err = strconv.ParseInt(s, 10, 64)
		}
		if err != nil {
			return Value{}, fmt.Errorf("invalid integer literal %s: %w", tok.Value, err)
		}
		return IntValue(n), nil
	case FloatToken:
		f, err := strconv.ParseFloat(strings.ReplaceAll(tok.Value, "_", ""), 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid float literal %s: %w", tok.Value, err)
		}
		return FloatValue(f), nil
	case StringToken:
		s := tok.Value
		if len(s) < 2 || s[0] != s[len(s)-1] {
			return Value{}, fmt.Errorf("malformed string literal %s", s)
		}
		q := s[0]
		s = s[1 : len(s)-1]
		if q == '\'' {
			// The output always uses double quotes.
			s = strings.ReplaceAll(s, `\'`, `'`)
			s = strings.ReplaceAll(s, `"`, `\"`)
		}
		return StringValue(s), nil
	case IdentToken:
		switch tok.Value {
		case "true":
			return IntValue(1), nil
		case "false":
			return IntValue(0), nil
		}
	}
	return Value{}, fmt.Errorf("%s %q is not a literal", tok.Kind, tok.Value)
}
