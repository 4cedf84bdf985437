package internal

// Branches lower to
//
//	[cond]
//	if c goto T          (unless c goto T)
//	goto F
//	T:
//	[body]
//	goto E               (only with elsif or else)
//	F:
//	[elsif arms, else]
//	E:
//
// and loops to
//
//	[init]               (for only)
//	B:
//	[cond]
//	unless c goto X
//	[body]
//	[step]               (for only)
//	goto B
//	X:

func (t *Translator) enterBranch(n *Node) {
	f := LabelFrame{Kind: n.Kind, True: t.labels.New(), False: t.labels.New()}
	if len(n.Children) > 2 {
		f.End = t.labels.New()
	}
	t.labels.Push(f)
}

func (t *Translator) exitBranch(n *Node) {
	f := t.labels.Pop()
	kw := "if"
	if n.Kind == Unless {
		kw = "unless"
	}
	t.arm(kw, f, n.Child(0), n.Child(1))
	for _, c := range n.Children[2:] {
		t.bufs.Splice(t.take(c))
	}
	if f.End != "" {
		t.bufs.Label(f.End)
	}
}

// arm writes one conditional arm of a branch.
func (t *Translator) arm(kw string, f LabelFrame, cond, body *Node) {
	c := t.values.Get(cond.ID)
	t.bufs.Splice(t.take(cond))
	t.bufs.Line(kw + " " + c.Render() + " goto " + f.True)
	t.bufs.Line("goto " + f.False)
	t.bufs.Label(f.True)
	t.bufs.Splice(t.take(body))
	if f.End != "" {
		t.bufs.Line("goto " + f.End)
	}
	t.bufs.Label(f.False)
}

// enterElsif allocates the arm's own labels and shares the end label of the
// enclosing branch.
func (t *Translator) enterElsif(n *Node) {
	end := t.labels.Top().End
	if end == "" {
		panic(ContractError("elsif without an end label"))
	}
	t.labels.Push(LabelFrame{Kind: Elsif, True: t.labels.New(), False: t.labels.New(), End: end})
	t.bufs.Push()
}

func (t *Translator) exitElsif(n *Node) {
	f := t.labels.Pop()
	t.arm("if", f, n.Child(0), n.Child(1))
	t.stash(n)
}

func (t *Translator) enterLoop(n *Node) {
	f := LabelFrame{Kind: n.Kind, True: t.labels.New(), False: t.labels.New()}
	t.labels.Push(f)
	t.labels.PushLoop(f.False)
}

func (t *Translator) exitWhile(n *Node) {
	f := t.labels.Pop()
	t.labels.PopLoop()
	t.loop(f, n.Child(0), n.Child(1), "")
}

func (t *Translator) exitFor(n *Node) {
	f := t.labels.Pop()
	t.labels.PopLoop()
	t.bufs.Splice(t.take(n.Child(0)))
	t.loop(f, n.Child(1), n.Child(3), t.take(n.Child(2)))
}

func (t *Translator) loop(f LabelFrame, cond, body *Node, step string) {
	c := t.values.Get(cond.ID)
	t.bufs.Label(f.True)
	t.bufs.Splice(t.take(cond))
	t.bufs.Line("unless " + c.Render() + " goto " + f.False)
	t.bufs.Splice(t.take(body))
	t.bufs.Splice(step)
	t.bufs.Line("goto " + f.True)
	t.bufs.Label(f.False)
}
