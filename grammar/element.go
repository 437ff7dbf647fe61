package grammar

import (
	"github.com/mkarev/grx/stream"
	"github.com/mkarev/grx/tree"
)

type termElement struct {
	pred stream.Predicate
}

// Literal matches if the next span of input equals text exactly.
func Literal (text string) Element {
	return termElement{stream.Text(text)}
}

// CharRange matches if the next single code point lies in [lo, hi] inclusive.
func CharRange (lo, hi rune) Element {
	return termElement{stream.Range(lo, hi)}
}

func (el termElement) Consume (mc *Context) (tree.Node, error) {
	lease := mc.stream.Consume(el.pred)
	if lease == nil {
		return nil, nil
	}

	return tree.NewLeafNode(lease), nil
}

func (el termElement) collectRefs (names map[string]struct{}) {}

type ruleRefElement struct {
	name string
}

// RuleRef defers to the rule registered under name in the rule map at
// match time. Resolution is late-bound, so rules may reference each other
// in any definition order, including forward and mutual recursion.
func RuleRef (name string) Element {
	return ruleRefElement{name}
}

func (el ruleRefElement) Consume (mc *Context) (tree.Node, error) {
	r := mc.rules[el.name]
	if r == nil {
		return nil, unknownRuleError(el.name)
	}

	return r.Consume(mc)
}

func (el ruleRefElement) collectRefs (names map[string]struct{}) {
	names[el.name] = struct{}{}
}

type groupElement struct {
	elements []Element
}

// Group matches all elements consecutively in order, all or nothing.
func Group (elements ...Element) Element {
	return &groupElement{elements}
}

func (el *groupElement) Consume (mc *Context) (tree.Node, error) {
	return matchSequence(mc, "", el.elements)
}

func (el *groupElement) collectRefs (names map[string]struct{}) {
	collectSequenceRefs(el.elements, names)
}

// Optional matches the element sequence zero or one time, never absent.
func Optional (elements ...Element) Element {
	return Repetition(0, 1, Group(elements...))
}

type alternativeElement struct {
	branches [][]Element
}

// Alternative matches branches in declaration order and keeps the result
// of the first branch that succeeds. This is ordered choice: later
// branches are never attempted once one succeeds, no match lengths are
// compared.
func Alternative (branches ...[]Element) Element {
	return &alternativeElement{branches}
}

func (el *alternativeElement) Consume (mc *Context) (tree.Node, error) {
	for _, branch := range el.branches {
		node, e := matchSequence(mc, "", branch)
		if node != nil || e != nil {
			return node, e
		}
	}

	return nil, nil
}

func (el *alternativeElement) collectRefs (names map[string]struct{}) {
	for _, branch := range el.branches {
		collectSequenceRefs(branch, names)
	}
}

// Unbounded removes the upper repetition bound.
const Unbounded = -1

type repetitionElement struct {
	atLeast, atMost int
	element Element
}

// Repetition matches element greedily until it fails or atMost matches
// are accumulated; atMost may be Unbounded. The whole repetition fails
// unless at least atLeast matches were accumulated. Shorter counts are
// never re-attempted after the loop stops.
func Repetition (atLeast, atMost int, element Element) Element {
	return &repetitionElement{atLeast, atMost, element}
}

func (el *repetitionElement) Consume (mc *Context) (tree.Node, error) {
	node := tree.NewBranchNode("")
	count := 0
	for el.atMost == Unbounded || count < el.atMost {
		pos := mc.stream.Pos()
		child, e := el.element.Consume(mc)
		if e != nil {
			node.Release()
			return nil, e
		}

		if child == nil {
			break
		}

		if mc.stream.Pos() == pos {
			// a zero-width match would repeat forever
			child.Release()
			break
		}

		node.AppendChild(child)
		count++
	}

	if count < el.atLeast {
		node.Release()
		return nil, nil
	}

	return node, nil
}

func (el *repetitionElement) collectRefs (names map[string]struct{}) {
	el.element.collectRefs(names)
}
