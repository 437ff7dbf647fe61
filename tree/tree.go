// Package tree defines match-tree nodes and functions to traverse and release them.
package tree

import (
	"strings"

	"github.com/mkarev/grx/stream"
)

// Node is a single match-tree node. Leaf nodes own the lease over the span
// they matched, branch nodes own their children. A node is released at most
// once; Release disposes every lease held transitively by the node and its
// descendants, rewinding the stream cursor to where it was before the
// node's first span was consumed.
type Node interface {
	IsBranch () bool
	TypeName () string
	Lease () *stream.Lease
	Parent () BranchNode
	Prev () Node
	Next () Node
	SetParent (BranchNode)
	SetPrev (Node)
	SetNext (Node)
	Release ()
}

// BranchNode is a node accumulating child nodes in match order.
type BranchNode interface {
	Node
	FirstChild () Node
	LastChild () Node
	SetFirstChild (Node)
	AppendChild (Node)
}


func Ancestor (n Node, level int) Node {
	for n != nil && level >= 0 {
		n = n.Parent()
		level--
	}
	return n
}

func NodeLevel (n Node) (l int) {
	if n == nil {
		return
	}

	p := n.Parent()
	for p != nil {
		l++
		p = p.Parent()
	}
	return
}

func SiblingIndex (n Node) (i int) {
	if n == nil {
		return
	}

	p := n.Prev()
	for p != nil {
		i++
		p = p.Prev()
	}
	return
}

func NthChild (n Node, i int) Node {
	if n == nil || !n.IsBranch() {
		return nil
	}

	nn := n.(BranchNode)
	var c Node
	if i >= 0 {
		c = nn.FirstChild()
		for c != nil && i > 0 {
			c = c.Next()
			i--
		}
	} else {
		i++
		c = nn.LastChild()
		for c != nil && i < 0 {
			c = c.Prev()
			i++
		}
	}

	return c
}

func NthSibling (n Node, i int) Node {
	if i < 0 {
		for n != nil && i < 0 {
			n = n.Prev()
			i++
		}
	} else {
		for n != nil && i > 0 {
			n = n.Next()
			i--
		}
	}
	return n
}

func Children (n Node) []Node {
	if n == nil || !n.IsBranch() {
		return nil
	}

	res := make([]Node, 0)
	c := n.(BranchNode).FirstChild()
	for c != nil {
		res = append(res, c)
		c = c.Next()
	}
	return res
}

// FirstLeaf returns the leftmost leaf of the subtree or nil for an empty branch.
func FirstLeaf (n Node) Node {
	if n == nil || !n.IsBranch() {
		return n
	}

	n = n.(BranchNode).FirstChild()
	for n != nil && n.IsBranch() {
		nn := FirstLeaf(n)
		if nn != nil {
			return nn
		}

		n = n.Next()
	}

	return n
}

// LastLeaf returns the rightmost leaf of the subtree or nil for an empty branch.
func LastLeaf (n Node) Node {
	if n == nil || !n.IsBranch() {
		return n
	}

	n = n.(BranchNode).LastChild()
	for n != nil && n.IsBranch() {
		nn := LastLeaf(n)
		if nn != nil {
			return nn
		}

		n = n.Prev()
	}

	return n
}

type NodeVisitor func (n Node) (walkChildren, walkSiblings bool)

// Walk visits n and its descendants left to right.
func Walk (n Node, visitor NodeVisitor) {
	if n != nil {
		visitNode(n, visitor)
	}
}

func visitNode (n Node, v NodeVisitor) (visitSiblings bool) {
	vc, vs := v(n)
	if vc && n.IsBranch() {
		n = n.(BranchNode).FirstChild()
		for n != nil && vc {
			vc = visitNode(n, v)
			n = n.Next()
		}
	}

	return vs
}

// Text concatenates the texts of all leaf leases in the subtree in match order.
func Text (n Node) string {
	var sb strings.Builder
	Walk(n, func (nn Node) (bool, bool) {
		if !nn.IsBranch() && nn.Lease() != nil {
			sb.WriteString(nn.Lease().Text())
		}
		return true, true
	})
	return sb.String()
}

func Detach (n Node) {
	if n == nil || n.Parent() == nil {
		return
	}

	np := n.Prev()
	nn := n.Next()

	if np == nil {
		p := n.Parent()
		if p != nil {
			p.SetFirstChild(nn)
		}
	} else {
		np.SetNext(nn)
		n.SetPrev(nil)
	}
	if nn != nil {
		nn.SetPrev(np)
		n.SetNext(nil)
	}
	n.SetParent(nil)
}

func AppendSibling (prev, node Node) {
	if node == nil || prev == nil {
		return
	}

	Detach(node)
	next := prev.Next()
	node.SetParent(prev.Parent())
	node.SetPrev(prev)
	node.SetNext(next)
	prev.SetNext(node)
	if next != nil {
		next.SetPrev(node)
	}
}


type leafNode struct {
	parent     BranchNode
	prev, next Node
	lease      *stream.Lease
}

// NewLeafNode wraps a lease in a leaf node; the node takes ownership of the lease.
func NewLeafNode (l *stream.Lease) Node {
	return &leafNode{lease: l}
}

func (ln *leafNode) IsBranch () bool {
	return false
}

func (ln *leafNode) TypeName () string {
	return ""
}

func (ln *leafNode) Lease () *stream.Lease {
	return ln.lease
}

func (ln *leafNode) Parent () BranchNode {
	return ln.parent
}

func (ln *leafNode) Prev () Node {
	return ln.prev
}

func (ln *leafNode) Next () Node {
	return ln.next
}

func (ln *leafNode) SetParent (p BranchNode) {
	ln.parent = p
}

func (ln *leafNode) SetPrev (p Node) {
	ln.prev = p
}

func (ln *leafNode) SetNext (n Node) {
	ln.next = n
}

func (ln *leafNode) Release () {
	if ln.lease == nil {
		return
	}

	ln.lease.Release()
	ln.lease = nil
}

type branchNode struct {
	typeName              string
	parent                BranchNode
	prev, next            Node
	firstChild, lastChild Node
}

// NewBranchNode creates an empty branch node. typeName is the name of the
// rule that produced the node or empty for anonymous sequences.
func NewBranchNode (typeName string) BranchNode {
	return &branchNode{typeName: typeName}
}

func (bn *branchNode) IsBranch () bool {
	return true
}

func (bn *branchNode) TypeName () string {
	return bn.typeName
}

func (bn *branchNode) Lease () *stream.Lease {
	return nil
}

func (bn *branchNode) Parent () BranchNode {
	return bn.parent
}

func (bn *branchNode) FirstChild () Node {
	return bn.firstChild
}

func (bn *branchNode) LastChild () Node {
	return bn.lastChild
}

func (bn *branchNode) Prev () Node {
	return bn.prev
}

func (bn *branchNode) Next () Node {
	return bn.next
}

func (bn *branchNode) SetParent (p BranchNode) {
	bn.parent = p
}

func (bn *branchNode) SetFirstChild (c Node) {
	bn.firstChild = c
	if bn.lastChild == nil {
		bn.lastChild = c
	}
	if c != nil {
		c.SetParent(bn)
	}
}

func (bn *branchNode) AppendChild (c Node) {
	if c == nil {
		return
	}

	if bn.firstChild == nil {
		bn.SetFirstChild(c)
	} else {
		AppendSibling(bn.lastChild, c)
		bn.lastChild = c
	}
}

func (bn *branchNode) SetPrev (p Node) {
	bn.prev = p
}

func (bn *branchNode) SetNext (n Node) {
	bn.next = n
}

// Release disposes children right to left so that each lease rewinds the
// cursor over a span no earlier lease still covers.
func (bn *branchNode) Release () {
	c := bn.lastChild
	for c != nil {
		p := c.Prev()
		c.Release()
		c = p
	}
	bn.firstChild = nil
	bn.lastChild = nil
}
