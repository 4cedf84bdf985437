package internal

// declare emits the declaration and constructor of name if it is new to the
// current scope.
func (t *Translator) declare(name, class string) {
	if t.scopes.Top().Declare(name) {
		return
	}
	t.bufs.Line(".local pmc " + name)
	t.bufs.Line(name + ` = new "` + class + `"`)
}

func (t *Translator) exitAssign(n *Node) {
	rhs := t.bufs.Pop()
	name := n.Child(0).Text()
	op := n.Op().Text()
	v := t.values.Get(n.Child(2).ID)
	if op == "=" {
		t.declare(name, v.Class())
	} else if !t.scopes.Top().Declared(name) {
		t.errorf(n.Line(), "Undefined variable "+name+"!")
	}
	t.bufs.Splice(rhs)
	if op == "**=" {
		t.bufs.Line(name + " = pow " + name + ", " + v.Render())
		return
	}
	t.bufs.Line(name + " " + op + " " + v.Render())
}

func (t *Translator) exitArrayInit(n *Node) {
	name := n.Child(0).Text()
	if !t.scopes.Top().Declare(name) {
		t.bufs.Line(".local pmc " + name)
	}
	t.bufs.Line(name + ` = new "ResizablePMCArray"`)
}

func (t *Translator) exitIndexAssign(n *Node) {
	rhs := t.bufs.Pop()
	target := t.values.Get(n.Child(0).ID)
	v := t.values.Get(n.Child(2).ID)
	t.bufs.Splice(rhs)
	t.bufs.Line(target.Render() + " = " + v.Render())
}

func (t *Translator) exitGlobalSet(n *Node) {
	rhs := t.bufs.Pop()
	v := t.values.Get(n.Child(2).ID)
	t.bufs.Splice(rhs)
	t.bufs.Line(`set_global "` + globalName(n.Child(0)) + `", ` + v.Render())
}

func (t *Translator) exitGlobalGet(n *Node) {
	name := n.Child(0).Text()
	t.declare(name, "Integer")
	t.bufs.Line("get_global " + name + `, "` + globalName(n.Child(2)) + `"`)
}

func (t *Translator) exitParams(n *Node) {
	sc := t.scopes.Top()
	for _, p := range n.Children {
		name := p.Text()
		sc.Declare(name)
		t.bufs.Line(".param pmc " + name)
	}
	t.stash(n)
}

func (t *Translator) exitReturn(n *Node) {
	if len(n.Children) == 0 {
		t.bufs.Line(".return()")
		return
	}
	t.bufs.Line(".return(" + t.values.Get(n.Child(0).ID).Render() + ")")
}

// exitFuncDef assembles the function and moves it to the function table. It
// writes nothing to the enclosing buffer.
func (t *Translator) exitFuncDef(n *Node) {
	name := n.Child(0).Text()
	text := ".sub " + name + "\n" + t.take(n.Child(1)) + t.take(n.Child(2)) + ".end\n"
	t.scopes.Pop()
	t.funcs.Define(FunctionRecord{Name: name, Text: text, Line: n.Line()})
}
