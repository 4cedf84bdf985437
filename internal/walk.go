package internal

import (
	"github.com/zephyrtronium/contains"
)

// A Listener receives enter and exit events during a walk of a parse tree.
// Enter is called for a node before any of its children; Exit is called after
// all of them.
type Listener interface {
	Enter(n *Node)
	Exit(n *Node)
}

// Walk traverses the tree rooted at n depth-first, calling l.Enter and l.Exit
// for every node, terminals included. Reaching the same node twice means the
// tree shares a subtree, which Walk treats as a contract violation.
func Walk(l Listener, n *Node) {
	var visited contains.Set
	walk(l, n, &visited)
}

func walk(l Listener, n *Node, visited *contains.Set) {
	if n == nil {
		panic(ContractError("walk reached a nil node"))
	}
	if !visited.Add(uintptr(n.ID)) {
		panic(ContractError("walk reached node " + itoa(int(n.ID)) + " twice"))
	}
	l.Enter(n)
	for _, c := range n.Children {
		walk(l, c, visited)
	}
	l.Exit(n)
}
