package internal

// A Scope is the set of variables declared in the main program or in one
// function body. It also numbers the boolean registers of its .sub.
type Scope struct {
	names map[string]struct{}
	order []string
	bools int
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{names: make(map[string]struct{})}
}

// Declare adds name to the scope and reports whether it was already there.
func (s *Scope) Declare(name string) (already bool) {
	if _, ok := s.names[name]; ok {
		return true
	}
	s.names[name] = struct{}{}
	s.order = append(s.order, name)
	return false
}

// Declared reports whether name has been declared in the scope.
func (s *Scope) Declared(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Names returns declared names in declaration order.
func (s *Scope) Names() []string {
	return s.order
}

// NextBool returns a fresh boolean register name, $I0 first.
func (s *Scope) NextBool() string {
	r := "$I" + itoa(s.bools)
	s.bools++
	return r
}

// Scopes is the stack of live scopes. In practice it holds at most the main
// scope and one function scope.
type Scopes struct {
	stack []*Scope
}

// Push starts a new innermost scope.
func (s *Scopes) Push() *Scope {
	sc := NewScope()
	s.stack = append(s.stack, sc)
	return sc
}

// Pop discards the innermost scope.
func (s *Scopes) Pop() *Scope {
	if len(s.stack) == 0 {
		panic(ContractError("scope stack underflow"))
	}
	sc := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return sc
}

// Top returns the innermost scope.
func (s *Scopes) Top() *Scope {
	if len(s.stack) == 0 {
		panic(ContractError("no current scope"))
	}
	return s.stack[len(s.stack)-1]
}

// Depth returns the number of live scopes.
func (s *Scopes) Depth() int {
	return len(s.stack)
}
