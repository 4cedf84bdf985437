package internal

// Registers allocates the $P temporaries of a statement.
type Registers struct {
	n int
}

// Next returns a fresh object register name.
func (r *Registers) Next() string {
	s := "$P" + itoa(r.n)
	r.n++
	return s
}

// Reset starts numbering again from $P0. The translator calls it at every
// statement boundary that owns temporaries.
func (r *Registers) Reset() {
	r.n = 0
}

// A LabelFrame holds the labels of one branch or loop construct.
type LabelFrame struct {
	// Kind is the construct that allocated the frame.
	Kind Kind
	// True is the target of a true condition, or the top of a loop.
	True string
	// False is the target of a false condition, or the exit of a loop.
	False string
	// End is the label after all arms of a branch with else or elsif. It is
	// empty for branches without them and for loops.
	End string
}

// Labels allocates program-wide unique labels and tracks the frames of the
// constructs that use them.
type Labels struct {
	n      int
	frames []LabelFrame
	loops  []string
}

// New returns a fresh label name. Numbers increase in allocation order and
// are never reused within a program.
func (l *Labels) New() string {
	s := "label_" + itoa(l.n)
	l.n++
	return s
}

// Push adds a frame.
func (l *Labels) Push(f LabelFrame) {
	l.frames = append(l.frames, f)
}

// Pop removes and returns the innermost frame.
func (l *Labels) Pop() LabelFrame {
	if len(l.frames) == 0 {
		panic(ContractError("label stack underflow"))
	}
	f := l.frames[len(l.frames)-1]
	l.frames = l.frames[:len(l.frames)-1]
	return f
}

// Top returns the innermost frame.
func (l *Labels) Top() LabelFrame {
	if len(l.frames) == 0 {
		panic(ContractError("label stack is empty"))
	}
	return l.frames[len(l.frames)-1]
}

// PushLoop records the exit label of a loop being entered.
func (l *Labels) PushLoop(exit string) {
	l.loops = append(l.loops, exit)
}

// PopLoop forgets the innermost loop.
func (l *Labels) PopLoop() {
	if len(l.loops) == 0 {
		panic(ContractError("loop stack underflow"))
	}
	l.loops = l.loops[:len(l.loops)-1]
}

// Break returns the exit label of the innermost loop without removing it.
func (l *Labels) Break() string {
	if len(l.loops) == 0 {
		panic(ContractError("break outside of a loop"))
	}
	return l.loops[len(l.loops)-1]
}

// Depth returns the number of open frames and loops.
func (l *Labels) Depth() (frames, loops int) {
	return len(l.frames), len(l.loops)
}
