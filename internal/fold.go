package internal

import (
	"errors"
	"fmt"
	"math"
)

// errDivisionByZero is reported when a constant division has a zero divisor.
var errDivisionByZero = errors.New("Division by zero!")

// maxRepeat bounds the length of a folded string repetition.
const maxRepeat = 1 << 24

func unsupported(op string, l, r Value) error {
	return fmt.Errorf("Unsupported operands for %s: %s and %s!", op, l.Kind, r.Kind)
}

// fold combines two static operands of an arithmetic operator. The error, if
// any, is the message of a semantic error; the caller then falls back to a
// runtime operation.
func fold(op string, l, r Value) (Value, error) {
	switch {
	case l.Kind == Integer && r.Kind == Integer:
		return foldInt(op, l.Int, r.Int)
	case isNumber(l) && isNumber(r):
		v, err := foldFloat(op, asFloat(l), asFloat(r))
		if err == errUnknownOp {
			return Value{}, unsupported(op, l, r)
		}
		if err == nil && (math.IsInf(v.Float, 0) || math.IsNaN(v.Float)) {
			return Value{}, errFloatRange
		}
		return v, err
	case l.Kind == String && r.Kind == String && op == "+":
		return StringValue(l.Text + r.Text), nil
	case l.Kind == String && r.Kind == Integer && op == "*":
		return foldRepeat(l.Text, r.Int)
	case l.Kind == Integer && r.Kind == String && op == "*":
		return foldRepeat(r.Text, l.Int)
	}
	return Value{}, unsupported(op, l, r)
}

var (
	errUnknownOp  = errors.New("unknown operator")
	errFloatRange = errors.New("Float result out of range!")
)

func isNumber(v Value) bool {
	return v.Kind == Integer || v.Kind == Float
}

func asFloat(v Value) float64 {
	if v.Kind == Integer {
		return float64(v.Int)
	}
	return v.Float
}

func foldInt(op string, l, r int64) (Value, error) {
	switch op {
	case "+":
		return IntValue(l + r), nil
	case "-":
		return IntValue(l - r), nil
	case "*":
		return IntValue(l * r), nil
	case "/":
		if r == 0 {
			return Value{}, errDivisionByZero
		}
		return IntValue(l / r), nil
	case "%":
		if r == 0 {
			return Value{}, errDivisionByZero
		}
		return IntValue(l % r), nil
	case "**":
		if r < 0 {
			return Value{}, unsupported(op, IntValue(l), IntValue(r))
		}
		return IntValue(ipow(l, r)), nil
	}
	return Value{}, unsupported(op, IntValue(l), IntValue(r))
}

// ipow computes x**n for n >= 0, wrapping on overflow like the other integer
// operations.
func ipow(x, n int64) int64 {
	r := int64(1)
	for n > 0 {
		if n&1 != 0 {
			r *= x
		}
		x *= x
		n >>= 1
	}
	return r
}

func foldFloat(op string, l, r float64) (Value, error) {
	switch op {
	case "+":
		return FloatValue(l + r), nil
	case "-":
		return FloatValue(l - r), nil
	case "*":
		return FloatValue(l * r), nil
	case "/":
		if r == 0 {
			return Value{}, errDivisionByZero
		}
		return FloatValue(l / r), nil
	case "%":
		if r == 0 {
			return Value{}, errDivisionByZero
		}
		return FloatValue(math.Mod(l, r)), nil
	case "**":
		return FloatValue(math.Pow(l, r)), nil
	}
	return Value{}, errUnknownOp
}

var errRepeatTooLong = errors.New("String repetition too long!")

func foldRepeat(s string, n int64) (Value, error) {
	if n > 0 && int64(len(s)) > maxRepeat/n {
		return Value{}, errRepeatTooLong
	}
	return StringValue(repeat(s, n)), nil
}

// repeat returns s repeated n times. Zero and negative counts give the empty
// string.
func repeat(s string, n int64) string {
	return repeatAcc(s, n, "")
}

// repeatAcc appends n copies of s to acc. Each call is in tail position, and
// s doubles as n halves.
func repeatAcc(s string, n int64, acc string) string {
	if n <= 0 {
		return acc
	}
	if n&1 != 0 {
		acc += s
	}
	if n == 1 {
		return acc
	}
	return repeatAcc(s+s, n>>1, acc)
}

// foldNeg negates a static operand.
func foldNeg(v Value) (Value, error) {
	switch v.Kind {
	case Integer:
		return IntValue(-v.Int), nil
	case Float:
		return FloatValue(-v.Float), nil
	}
	return Value{}, fmt.Errorf("Unsupported operand for -: %s!", v.Kind)
}
