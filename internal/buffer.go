package internal

import (
	"strings"
)

// indent prefixes every instruction line.
const indent = "    "

// Buffers is the stack of code fragments under assembly. Output always goes
// to the buffer on top.
type Buffers struct {
	stack []*strings.Builder
}

// Push starts a new fragment.
func (b *Buffers) Push() {
	b.stack = append(b.stack, new(strings.Builder))
}

// Pop removes the top fragment and returns its contents.
func (b *Buffers) Pop() string {
	if len(b.stack) == 0 {
		panic(ContractError("buffer stack underflow"))
	}
	s := b.stack[len(b.stack)-1].String()
	b.stack[len(b.stack)-1] = nil
	b.stack = b.stack[:len(b.stack)-1]
	return s
}

func (b *Buffers) top() *strings.Builder {
	if len(b.stack) == 0 {
		panic(ContractError("write with no buffer"))
	}
	return b.stack[len(b.stack)-1]
}

// Line writes an indented instruction.
func (b *Buffers) Line(s string) {
	w := b.top()
	w.WriteString(indent)
	w.WriteString(s)
	w.WriteByte('\n')
}

// Label writes a label definition.
func (b *Buffers) Label(name string) {
	w := b.top()
	w.WriteString(name)
	w.WriteString(":\n")
}

// Directive writes an unindented line, such as .sub or .end.
func (b *Buffers) Directive(s string) {
	w := b.top()
	w.WriteString(s)
	w.WriteByte('\n')
}

// Splice writes an already assembled fragment.
func (b *Buffers) Splice(s string) {
	b.top().WriteString(s)
}

// Depth returns the number of fragments under assembly.
func (b *Buffers) Depth() int {
	return len(b.stack)
}
