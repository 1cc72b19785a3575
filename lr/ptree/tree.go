package ptree

import (
	"bytes"

	"github.com/npillmayer/parsekit"
	"github.com/npillmayer/parsekit/lr"
)

// Node is a node of a concrete parse tree. Leaves are terminals or ε; inner
// nodes are non-terminals with the rule they have been derived with.
type Node struct {
	Symbol   *lr.Symbol
	Rule     *lr.Rule // nil for leaves
	Children []*Node
	Span     parsekit.Span // input positions covered by this node
}

// Leaf creates a leaf node for a terminal at input position pos.
func Leaf(a *lr.Symbol, pos uint64) *Node {
	return &Node{Symbol: a, Span: parsekit.Span{pos, pos + 1}}
}

// EpsilonLeaf creates an ε leaf, covering an empty span at input position pos.
func EpsilonLeaf(eps *lr.Symbol, pos uint64) *Node {
	return &Node{Symbol: eps, Span: parsekit.Span{pos, pos}}
}

// Inner creates a node for a non-terminal, derived with rule r. The node's
// span is the extension of its children's spans.
func Inner(r *lr.Rule, children []*Node) *Node {
	n := &Node{Symbol: r.LHS, Rule: r, Children: children}
	for i, ch := range children {
		if i == 0 {
			n.Span = ch.Span
		} else {
			n.Span = n.Span.Extend(ch.Span)
		}
	}
	return n
}

// UpdateSpans recomputes the spans of all inner nodes from their leaves.
// Top-down parsers create inner nodes before their children are complete and
// call this after a successful parse.
func (n *Node) UpdateSpans() parsekit.Span {
	if n.IsLeaf() {
		return n.Span
	}
	for i, ch := range n.Children {
		if i == 0 {
			n.Span = ch.UpdateSpans()
		} else {
			n.Span = n.Span.Extend(ch.UpdateSpans())
		}
	}
	return n.Span
}

// IsLeaf is true for terminal and ε nodes.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// IsEpsilon is true for ε leaves.
func (n *Node) IsEpsilon() bool {
	return n.Symbol != nil && n.Symbol.IsEpsilon()
}

// Leaves returns all leaves of the tree rooted at n, left to right,
// including ε leaves.
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	n.Walk(func(node *Node, depth int) {
		if node.IsLeaf() {
			leaves = append(leaves, node)
		}
	})
	return leaves
}

// Yield returns the names of the terminal leaves, left to right. For a
// successful parse this is the input.
func (n *Node) Yield() []string {
	var y []string
	for _, l := range n.Leaves() {
		if !l.IsEpsilon() {
			y = append(y, l.Symbol.Name)
		}
	}
	return y
}

// Walk visits the tree in pre-order.
func (n *Node) Walk(f func(node *Node, depth int)) {
	n.walk(f, 0)
}

func (n *Node) walk(f func(*Node, int), depth int) {
	f(n, depth)
	for _, ch := range n.Children {
		ch.walk(f, depth+1)
	}
}

// String returns the tree in S-expression form, e.g. "(F ( (E …) ))".
func (n *Node) String() string {
	if n == nil {
		return "()"
	}
	var b bytes.Buffer
	n.sexpr(&b)
	return b.String()
}

func (n *Node) sexpr(b *bytes.Buffer) {
	if n.IsLeaf() && n.Rule == nil {
		b.WriteString(n.Symbol.Name)
		return
	}
	b.WriteString("(")
	b.WriteString(n.Symbol.Name)
	for _, ch := range n.Children {
		b.WriteString(" ")
		ch.sexpr(b)
	}
	b.WriteString(")")
}
