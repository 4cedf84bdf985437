package internal

import (
	"strings"

	"github.com/zephyrtronium/rubypir/logger"
)

// DefaultStdlib is the runtime library every program includes.
const DefaultStdlib = "stdlib/stdlib.pir"

// Translator lowers a parse tree to IR text. It is a Listener driven by Walk.
// A Translator translates exactly one tree and is not safe for concurrent
// use; independent compilations use independent translators.
type Translator struct {
	// Stdlib is the path of the library included after the main program.
	Stdlib string

	values *Values
	// texts holds fragments popped from the buffer stack, keyed by the node
	// that pushed them, until the parent construct consumes them.
	texts  map[NodeID]string
	scopes Scopes
	bufs   Buffers
	regs   Registers
	labels Labels
	funcs  Functions

	requires []string
	required map[string]bool

	// stmtCall is the call whose result is discarded, if any.
	stmtCall NodeID

	errs ErrorList
	out  string
	used bool
}

// NewTranslator creates a translator that includes DefaultStdlib.
func NewTranslator() *Translator {
	return &Translator{
		Stdlib:   DefaultStdlib,
		values:   NewValues(),
		texts:    make(map[NodeID]string),
		required: make(map[string]bool),
		stmtCall: -1,
	}
}

// Translate walks a tree and returns the assembled program. The output is
// produced even when semantic errors occur; callers must check HasErrors
// before using it.
func (t *Translator) Translate(tree *Tree) string {
	if t.used {
		panic(ContractError("translator reused"))
	}
	t.used = true
	logger.LogPhase("translate", tree.Label)
	Walk(t, tree.Root)
	logger.LogPhaseComplete("translate", tree.Label)
	return t.out
}

// Errors returns the semantic errors recorded so far, in discovery order.
func (t *Translator) Errors() ErrorList {
	return t.errs
}

// HasErrors reports whether any semantic error was recorded.
func (t *Translator) HasErrors() bool {
	return len(t.errs) > 0
}

// Values returns the descriptor table.
func (t *Translator) Values() *Values {
	return t.values
}

// Functions returns the function table.
func (t *Translator) Functions() *Functions {
	return &t.funcs
}

// errorf records a semantic error.
func (t *Translator) errorf(line int, msg string) {
	t.errs.Add(line, msg)
	logger.LogSemanticError(line, msg)
}

// take consumes the fragment assembled under n.
func (t *Translator) take(n *Node) string {
	s, ok := t.texts[n.ID]
	if !ok {
		panic(ContractError("no fragment for " + n.Kind.String() + " node " + itoa(int(n.ID))))
	}
	delete(t.texts, n.ID)
	return s
}

// stash pops the top buffer as the fragment of n.
func (t *Translator) stash(n *Node) {
	t.texts[n.ID] = t.bufs.Pop()
}

// Enter implements Listener.
func (t *Translator) Enter(n *Node) {
	switch n.Kind {
	case Program:
		t.scopes.Push()
		t.bufs.Push()
		t.bufs.Directive(".sub main")
	case FuncDef:
		t.scopes.Push()
		t.regs.Reset()
	case Params, Cond, Body, ForInit, ForStep, Args, InlinePIR:
		t.bufs.Push()
	case If, Unless:
		t.enterBranch(n)
	case Elsif:
		t.enterElsif(n)
	case While, For:
		t.enterLoop(n)
	case Assign, IndexAssign, GlobalSet:
		t.regs.Reset()
		t.bufs.Push()
	case CallStmt:
		t.regs.Reset()
		t.stmtCall = n.Child(0).ID
	case Terminal, StmtList, Return, Else, Break, ArrayInit, GlobalGet, Require,
		Call, Arg, Literal, Ident, GlobalRef, Paren, Unary, Binary, Compare, Logic, Index:
		// nothing
	default:
		panic(ContractError("enter of unknown node kind " + n.Kind.String()))
	}
}

// Exit implements Listener.
func (t *Translator) Exit(n *Node) {
	switch n.Kind {
	case Terminal, StmtList:
		// nothing
	case Program:
		t.exitProgram(n)
	case FuncDef:
		t.exitFuncDef(n)
	case Params:
		t.exitParams(n)
	case Return:
		t.exitReturn(n)
	case If, Unless:
		t.exitBranch(n)
	case Elsif:
		t.exitElsif(n)
	case Else:
		t.texts[n.ID] = t.take(n.Child(0))
	case While:
		t.exitWhile(n)
	case For:
		t.exitFor(n)
	case ForInit, ForStep, Body, Args:
		t.stash(n)
	case Cond:
		t.stash(n)
		t.values.Put(n.ID, t.values.Get(n.Child(0).ID))
	case Break:
		t.bufs.Line("goto " + t.labels.Break())
	case Assign:
		t.exitAssign(n)
	case ArrayInit:
		t.exitArrayInit(n)
	case IndexAssign:
		t.exitIndexAssign(n)
	case GlobalSet:
		t.exitGlobalSet(n)
	case GlobalGet:
		t.exitGlobalGet(n)
	case Require:
		t.exitRequire(n)
	case InlinePIR:
		t.exitInlinePIR(n)
	case CallStmt:
		t.stmtCall = -1
	case Call:
		t.exitCall(n)
	case Arg:
		t.values.Put(n.ID, t.values.Get(n.Children[len(n.Children)-1].ID))
	case Literal:
		t.exitLiteral(n)
	case Ident:
		t.values.Put(n.ID, DynamicValue(n.Child(0).Text()))
	case GlobalRef:
		t.exitGlobalRef(n)
	case Paren:
		t.values.Put(n.ID, t.values.Get(n.Child(1).ID))
	case Unary:
		t.exitUnary(n)
	case Binary:
		t.exitBinary(n)
	case Compare, Logic:
		t.exitBoolean(n)
	case Index:
		t.exitIndex(n)
	default:
		panic(ContractError("exit of unknown node kind " + n.Kind.String()))
	}
}

func (t *Translator) exitProgram(n *Node) {
	main := t.bufs.Pop()
	t.scopes.Pop()
	if d := t.bufs.Depth(); d != 0 {
		panic(ContractError("program ended with " + itoa(d) + " open buffers"))
	}
	if f, l := t.labels.Depth(); f != 0 || l != 0 {
		panic(ContractError("program ended with open label frames"))
	}
	var b strings.Builder
	b.WriteString(main)
	b.WriteString(".end\n\n")
	b.WriteString(".include \"" + t.Stdlib + "\"\n")
	for _, r := range t.requires {
		b.WriteString(".include \"" + r + "\"\n")
	}
	t.funcs.Emit(&b)
	t.out = b.String()
}

func (t *Translator) exitRequire(n *Node) {
	v, err := literal(n.Child(0).Token)
	if err != nil {
		panic(ContractError(err.Error()))
	}
	name := v.Text
	if !strings.HasSuffix(name, ".pir") {
		name += ".pir"
	}
	if !t.required[name] {
		t.required[name] = true
		t.requires = append(t.requires, name)
	}
}

func (t *Translator) exitInlinePIR(n *Node) {
	for _, line := range strings.Split(n.Child(0).Token.Value, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			t.bufs.Line(line)
		}
	}
	t.bufs.Splice(t.bufs.Pop())
}
