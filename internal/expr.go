package internal

import (
	"strings"
)

// booleanOps maps comparison and connective operators to the instructions
// that compute them into an $I register.
var booleanOps = map[string]string{
	"<":   "islt",
	"<=":  "isle",
	">":   "isgt",
	">=":  "isge",
	"==":  "iseq",
	"!=":  "isne",
	"&&":  "and",
	"and": "and",
	"||":  "or",
	"or":  "or",
	"&":   "band",
	"|":   "bor",
}

func (t *Translator) exitLiteral(n *Node) {
	v, err := literal(n.Child(0).Token)
	if err != nil {
		// The parser has already validated literals.
		panic(ContractError(err.Error()))
	}
	t.values.Put(n.ID, v)
}

func (t *Translator) exitGlobalRef(n *Node) {
	r := t.regs.Next()
	t.bufs.Line(r + ` = get_global "` + globalName(n.Child(0)) + `"`)
	t.values.Put(n.ID, DynamicValue(r))
}

// globalName returns the name of a global terminal without its sigil.
func globalName(n *Node) string {
	return strings.TrimPrefix(n.Text(), "$")
}

// temporary allocates an object register and constructs it.
func (t *Translator) temporary() string {
	r := t.regs.Next()
	t.bufs.Line(r + ` = new "Integer"`)
	return r
}

func (t *Translator) exitUnary(n *Node) {
	op := n.Op().Text()
	v := t.values.Get(n.Child(1).ID)
	switch op {
	case "-":
		if v.Static() {
			r, err := foldNeg(v)
			if err == nil {
				t.values.Put(n.ID, r)
				return
			}
			t.errorf(n.Line(), err.Error())
		}
		r := t.temporary()
		t.bufs.Line(r + " = neg " + v.Render())
		t.values.Put(n.ID, DynamicValue(r))
	case "!", "not":
		b := t.scopes.Top().NextBool()
		t.bufs.Line(b + " = not " + v.Render())
		t.values.Put(n.ID, DynamicValue(b))
	default:
		panic(ContractError("unknown unary operator " + op))
	}
}

func (t *Translator) exitBinary(n *Node) {
	op := n.Op().Text()
	l := t.values.Get(n.Child(0).ID)
	r := t.values.Get(n.Child(2).ID)
	if l.Static() && r.Static() {
		v, err := fold(op, l, r)
		if err == nil {
			t.values.Put(n.ID, v)
			return
		}
		t.errorf(n.Op().Line(), err.Error())
	}
	reg := t.temporary()
	if op == "**" {
		t.bufs.Line(reg + " = pow " + l.Render() + ", " + r.Render())
	} else {
		t.bufs.Line(reg + " = " + l.Render() + " " + op + " " + r.Render())
	}
	t.values.Put(n.ID, DynamicValue(reg))
}

// exitBoolean lowers comparisons and connectives. These are never folded,
// even with constant operands.
func (t *Translator) exitBoolean(n *Node) {
	op := n.Op().Text()
	ins, ok := booleanOps[op]
	if !ok {
		panic(ContractError("unknown boolean operator " + op))
	}
	l := t.values.Get(n.Child(0).ID)
	r := t.values.Get(n.Child(2).ID)
	b := t.scopes.Top().NextBool()
	t.bufs.Line(b + " = " + ins + " " + l.Render() + ", " + r.Render())
	t.values.Put(n.ID, DynamicValue(b))
}

func (t *Translator) exitIndex(n *Node) {
	name := n.Child(0).Text()
	i := t.values.Get(n.Child(2).ID)
	switch i.Kind {
	case Integer, Dynamic:
		t.values.Put(n.ID, DynamicValue(name+"["+i.Render()+"]"))
	default:
		panic(ContractError("index of " + name + " is a " + i.Kind.String()))
	}
}

func (t *Translator) exitCall(n *Node) {
	name := n.Child(0).Text()
	args := n.Child(1)
	t.bufs.Splice(t.take(args))
	t.funcs.Call(name)
	call := name + "(" + t.renderArgs(args) + ")"
	if n.ID == t.stmtCall {
		t.bufs.Line(call)
		return
	}
	r := t.regs.Next()
	t.bufs.Line(r + " = " + call)
	t.values.Put(n.ID, DynamicValue(r))
}

func (t *Translator) renderArgs(args *Node) string {
	var b strings.Builder
	for i, a := range args.Children {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.values.Get(a.ID).Render())
		if len(a.Children) == 2 {
			b.WriteString(` :named("` + a.Child(0).Text() + `")`)
		}
	}
	return b.String()
}
