package internal

import (
	"testing"
)

func TestScopeDeclare(t *testing.T) {
	s := NewScope()
	if s.Declare("x") {
		t.Error("first declaration of x reported as repeated")
	}
	if !s.Declare("x") {
		t.Error("second declaration of x reported as new")
	}
	s.Declare("y")
	if !s.Declared("y") || s.Declared("z") {
		t.Errorf("wrong declarations: y %t, z %t", s.Declared("y"), s.Declared("z"))
	}
	names := s.Names()
	if len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Errorf("wrong declaration order: %v", names)
	}
}

func TestScopeBools(t *testing.T) {
	s := NewScope()
	for i, want := range []string{"$I0", "$I1", "$I2"} {
		if got := s.NextBool(); got != want {
			t.Errorf("register %d: wanted %s, got %s", i, want, got)
		}
	}
	if got := NewScope().NextBool(); got != "$I0" {
		t.Errorf("new scope started at %s", got)
	}
}

// TestScopesIsolated tests that names declared in an inner scope do not leak
// into the outer one.
func TestScopesIsolated(t *testing.T) {
	var s Scopes
	main := s.Push()
	main.Declare("x")
	fn := s.Push()
	if fn.Declared("x") {
		t.Error("function scope sees main's x")
	}
	fn.Declare("y")
	if s.Depth() != 2 {
		t.Errorf("wrong depth %d", s.Depth())
	}
	if s.Pop() != fn || s.Top() != main {
		t.Error("pop returned the wrong scope")
	}
	if main.Declared("y") {
		t.Error("main sees the function's y")
	}
}

func TestScopesUnderflow(t *testing.T) {
	defer func() {
		if _, ok := recover().(ContractError); !ok {
			t.Error("pop of empty scope stack didn't panic with ContractError")
		}
	}()
	var s Scopes
	s.Pop()
}
