// Package grammar defines rule elements, named rules, and the matching protocol.
package grammar

import (
	"sort"
	"strings"

	"github.com/mkarev/grx"
	"github.com/mkarev/grx/stream"
	"github.com/mkarev/grx/tree"
)

// Error codes used by grammar:
const (
	// UnknownRuleError indicates that a rule reference named a rule missing
	// from the rule map at match time. This is a defect in the grammar, not
	// a match failure, so it aborts matching instead of reporting absence.
	UnknownRuleError = grx.GrammarErrors + iota

	// DanglingRefError is reported by RuleMap.Validate for references
	// that cannot be resolved.
	DanglingRefError
)

const (
	// TooDeepError indicates that matching exceeded Context.DepthLimit,
	// usually a sign of left recursion in the grammar.
	TooDeepError = grx.MatchErrors + iota
)

func unknownRuleError (name string) *grx.Error {
	return grx.FormatError(UnknownRuleError, "unknown rule %q", name)
}

func danglingRefError (names []string) *grx.Error {
	return grx.FormatError(DanglingRefError, "dangling rule reference(s): %s", strings.Join(names, ", "))
}

func tooDeepError (limit int) *grx.Error {
	return grx.FormatError(TooDeepError, "rule recursion deeper than %d", limit)
}

// Element is a single grammar matcher. Elements are immutable once
// constructed and hold no stream state; the same element tree may be
// matched against any number of streams in turn.
//
// Consume attempts a match at the current cursor position. It returns
// a non-nil node owning every lease acquired during the attempt, or
// (nil, nil) if the input does not match here, or (nil, error) for a
// grammar defect. On absence and on error every lease acquired during
// the attempt has been released and the cursor is back at its pre-call
// position.
type Element interface {
	Consume (mc *Context) (tree.Node, error)

	collectRefs (names map[string]struct{})
}

// DefaultDepthLimit bounds rule recursion unless a Context overrides it.
const DefaultDepthLimit = 1024

// Context carries the state of one match attempt: the stream, the rule
// map used to resolve references, and the recursion depth. A context is
// used by a single match call chain, never concurrently.
type Context struct {
	stream *stream.Stream
	rules RuleMap
	depth int

	// DepthLimit is the maximum number of nested rule invocations.
	// May be adjusted before matching starts.
	DepthLimit int
}

func NewContext (s *stream.Stream, rules RuleMap) *Context {
	return &Context{stream: s, rules: rules, DepthLimit: DefaultDepthLimit}
}

func (mc *Context) Stream () *stream.Stream {
	return mc.stream
}

func (mc *Context) Rules () RuleMap {
	return mc.rules
}

func (mc *Context) enter () error {
	if mc.depth >= mc.DepthLimit {
		return tooDeepError(mc.DepthLimit)
	}

	mc.depth++
	return nil
}

func (mc *Context) leave () {
	mc.depth--
}

// matchSequence is the all-or-nothing sequence contract shared by rules,
// groups, and alternative branches: either every element matches in order
// and the returned branch node holds all children, or every child matched
// so far is released and the cursor is restored.
func matchSequence (mc *Context, typeName string, elements []Element) (tree.Node, error) {
	node := tree.NewBranchNode(typeName)
	for _, el := range elements {
		child, e := el.Consume(mc)
		if e != nil {
			node.Release()
			return nil, e
		}

		if child == nil {
			node.Release()
			return nil, nil
		}

		node.AppendChild(child)
	}

	return node, nil
}

func collectSequenceRefs (elements []Element, names map[string]struct{}) {
	for _, el := range elements {
		el.collectRefs(names)
	}
}

// Rule is a named grammar production: an ordered sequence of elements
// matching like a Group, with the successful result tagged with the rule
// name. Immutable after construction.
type Rule struct {
	name string
	elements []Element
}

func NewRule (name string, elements ...Element) *Rule {
	return &Rule{name, elements}
}

func (r *Rule) Name () string {
	return r.name
}

// Consume matches the rule against the context's stream.
// Implements the Element contract, counting one level of rule recursion.
func (r *Rule) Consume (mc *Context) (tree.Node, error) {
	e := mc.enter()
	if e != nil {
		return nil, e
	}
	defer mc.leave()

	return matchSequence(mc, r.name, r.elements)
}

func (r *Rule) collectRefs (names map[string]struct{}) {
	collectSequenceRefs(r.elements, names)
}

// Match is the entry point for matching the rule against a stream using
// the default depth limit. rules must contain the target of every rule
// reference reachable from this rule.
func (r *Rule) Match (s *stream.Stream, rules RuleMap) (tree.Node, error) {
	return r.Consume(NewContext(s, rules))
}

// RuleMap resolves rule names at match time. It must be fully populated
// before matching a grammar containing forward references.
type RuleMap map[string]*Rule

func NewRuleMap (rules ...*Rule) RuleMap {
	rm := make(RuleMap, len(rules))
	for _, r := range rules {
		rm.Add(r)
	}
	return rm
}

// Add registers the rule under its own name, replacing any previous entry.
func (rm RuleMap) Add (r *Rule) RuleMap {
	rm[r.name] = r
	return rm
}

// Validate walks every registered rule and reports rule references that
// do not resolve within the map. Running it once after building the map
// catches grammar defects before any input is matched.
func (rm RuleMap) Validate () error {
	refs := make(map[string]struct{})
	for _, r := range rm {
		r.collectRefs(refs)
	}

	missing := make([]string, 0)
	for name := range refs {
		if rm[name] == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	sort.Strings(missing)
	return danglingRefError(missing)
}
