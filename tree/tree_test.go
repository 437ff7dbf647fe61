package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarev/grx/stream"
)

func consumed (t *testing.T, s *stream.Stream, text string) Node {
	l := s.Consume(stream.Text(text))
	require.NotNil(t, l, "cannot consume %q", text)
	return NewLeafNode(l)
}

func TestAppendChild (t *testing.T) {
	root := NewBranchNode("root")
	s := stream.New("", []byte("abc"))
	n1 := consumed(t, s, "a")
	n2 := consumed(t, s, "b")
	n3 := consumed(t, s, "c")

	root.AppendChild(n1)
	assert.Same(t, root, n1.Parent())
	assert.Same(t, n1, root.FirstChild())
	assert.Same(t, n1, root.LastChild())

	root.AppendChild(n2)
	root.AppendChild(n3)
	assert.Same(t, n1, root.FirstChild())
	assert.Same(t, n3, root.LastChild())
	assert.Same(t, n2, n1.Next())
	assert.Same(t, n1, n2.Prev())
	assert.Same(t, n3, n2.Next())

	assert.Equal(t, []Node{n1, n2, n3}, Children(root))
	assert.Equal(t, 2, SiblingIndex(n3))
	assert.Equal(t, 1, NodeLevel(n3))
}

func TestNavigation (t *testing.T) {
	s := stream.New("", []byte("abcd"))
	root := NewBranchNode("root")
	inner := NewBranchNode("")
	a := consumed(t, s, "a")
	b := consumed(t, s, "b")
	c := consumed(t, s, "c")
	inner.AppendChild(b)
	inner.AppendChild(c)
	root.AppendChild(a)
	root.AppendChild(inner)

	assert.Same(t, a, NthChild(root, 0))
	assert.Same(t, inner, NthChild(root, 1))
	assert.Same(t, inner, NthChild(root, -1))
	assert.Nil(t, NthChild(root, 2))
	assert.Nil(t, NthChild(a, 0))

	assert.Same(t, inner, NthSibling(a, 1))
	assert.Same(t, a, NthSibling(inner, -1))

	assert.Same(t, b, Ancestor(b, -1))
	assert.Same(t, inner, Ancestor(b, 0))
	assert.Same(t, root, Ancestor(b, 1))
	assert.Nil(t, Ancestor(b, 2))

	assert.Same(t, a, FirstLeaf(root))
	assert.Same(t, c, LastLeaf(root))
	assert.Equal(t, "abc", Text(root))
}

func TestWalkOrder (t *testing.T) {
	s := stream.New("", []byte("abc"))
	root := NewBranchNode("root")
	inner := NewBranchNode("inner")
	inner.AppendChild(consumed(t, s, "a"))
	root.AppendChild(inner)
	root.AppendChild(consumed(t, s, "b"))
	root.AppendChild(consumed(t, s, "c"))

	names := make([]string, 0)
	Walk(root, func (n Node) (bool, bool) {
		if n.IsBranch() {
			names = append(names, n.TypeName())
		} else {
			names = append(names, n.Lease().Text())
		}
		return true, true
	})
	assert.Equal(t, []string{"root", "inner", "a", "b", "c"}, names)
}

func TestDetach (t *testing.T) {
	s := stream.New("", []byte("ab"))
	root := NewBranchNode("root")
	a := consumed(t, s, "a")
	b := consumed(t, s, "b")
	root.AppendChild(a)
	root.AppendChild(b)

	Detach(a)
	assert.Nil(t, a.Parent())
	assert.Nil(t, a.Next())
	assert.Same(t, b, root.FirstChild())
	assert.Nil(t, b.Prev())
}

func TestReleaseRestoresCursor (t *testing.T) {
	s := stream.New("", []byte("abcdef"))
	root := NewBranchNode("root")
	inner := NewBranchNode("")
	root.AppendChild(consumed(t, s, "ab"))
	inner.AppendChild(consumed(t, s, "cd"))
	inner.AppendChild(consumed(t, s, "ef"))
	root.AppendChild(inner)
	require.Equal(t, 6, s.Pos())

	root.Release()
	assert.Equal(t, 0, s.Pos())
	assert.Nil(t, root.FirstChild())
	assert.Nil(t, root.LastChild())

	root.Release()
	assert.Equal(t, 0, s.Pos(), "second release must not move the cursor")
}

func TestPartialRelease (t *testing.T) {
	s := stream.New("", []byte("abcd"))
	root := NewBranchNode("root")
	root.AppendChild(consumed(t, s, "ab"))
	inner := NewBranchNode("")
	inner.AppendChild(consumed(t, s, "cd"))

	// releasing only the unattached subtree rewinds over its span alone
	inner.Release()
	assert.Equal(t, 2, s.Pos())

	root.Release()
	assert.Equal(t, 0, s.Pos())
}

func TestLeafRelease (t *testing.T) {
	s := stream.New("", []byte("ab"))
	n := consumed(t, s, "ab")
	require.Equal(t, 2, s.Pos())

	n.Release()
	assert.Equal(t, 0, s.Pos())
	assert.Nil(t, n.Lease())

	n.Release()
	assert.Equal(t, 0, s.Pos())
}
