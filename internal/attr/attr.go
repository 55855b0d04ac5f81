// Package attr precomputes formatting-relevant attributes for every node of a parsed document in
// a single pass, so converters never need to re-walk a subtree to answer "does this contain a
// comment" or "is formatting disabled here".
package attr

import (
	"strings"

	"github.com/quillfmt/quill"
	"github.com/quillfmt/quill/token"
)

// key identifies a node without requiring the tree to intern spans: the parser already stamps
// every node with its source Start/End, and those positions are stable for the lifetime of a
// single parse, so they double as the store's node identity.
type key struct {
	start, end token.Position
}

func keyOf(tree *quill.Tree) key {
	return key{tree.Start, tree.End}
}

type attributes struct {
	formatDisabled    bool
	hasComment        bool
	hasMultilineStr   bool
	hasMathAlignPoint bool
	isMultiline       bool
	isMultilineFlavor bool
}

// Store holds precomputed attributes for every node of a tree, keyed by source span. Build one
// with [New] once per parsed document and query it from converters as needed.
type Store struct {
	attrs map[key]*attributes
}

// New computes the attribute store for every descendant of root.
func New(root *quill.Tree) *Store {
	s := &Store{attrs: make(map[key]*attributes)}
	s.computeNoFormat(root)
	s.computeMultiline(root)
	s.computeMathAlignPoint(root)
	return s
}

func (s *Store) entry(tree *quill.Tree) *attributes {
	k := keyOf(tree)
	a, ok := s.attrs[k]
	if !ok {
		a = &attributes{}
		s.attrs[k] = a
	}
	return a
}

func (s *Store) get(tree *quill.Tree) (*attributes, bool) {
	a, ok := s.attrs[keyOf(tree)]
	return a, ok
}

// HasComment reports whether tree or any of its descendants carries a comment, which disqualifies
// it from being collapsed onto one line.
func (s *Store) HasComment(tree *quill.Tree) bool {
	a, ok := s.get(tree)
	return ok && a.hasComment
}

// HasMultilineStr reports whether any descendant is a multiline string literal or a multiline
// inline raw span; fenced raw blocks do not count.
func (s *Store) HasMultilineStr(tree *quill.Tree) bool {
	a, ok := s.get(tree)
	return ok && a.hasMultilineStr
}

// HasMathAlignPoint reports whether tree contains a math alignment point ('&').
func (s *Store) HasMathAlignPoint(tree *quill.Tree) bool {
	a, ok := s.get(tree)
	return ok && a.hasMathAlignPoint
}

// CanAlignInMath reports whether tree should be laid out with aligned columns: it has an
// alignment point and none of its content is a multiline string that would make column alignment
// meaningless.
func (s *Store) CanAlignInMath(tree *quill.Tree) bool {
	a, ok := s.get(tree)
	return ok && a.hasMathAlignPoint && !a.hasMultilineStr
}

// IsMultiline reports whether tree or any descendant spans more than one source line.
func (s *Store) IsMultiline(tree *quill.Tree) bool {
	a, ok := s.get(tree)
	return ok && a.isMultiline
}

// IsMultilineFlavor reports whether tree's first space-like child already contains a linebreak,
// the heuristic used to decide whether a construct should keep its original multiline "flavor"
// even when it would otherwise fit on one line.
func (s *Store) IsMultilineFlavor(tree *quill.Tree) bool {
	a, ok := s.get(tree)
	return ok && a.isMultilineFlavor
}

// IsFormatDisabled reports whether formatting is explicitly disabled for tree via a
// preceding "@typstyle off" comment.
func (s *Store) IsFormatDisabled(tree *quill.Tree) bool {
	a, ok := s.get(tree)
	return ok && a.formatDisabled
}

// IsUnformattable reports whether tree must be emitted verbatim: formatting is disabled for it, or
// it or one of its descendants carries a comment.
func (s *Store) IsUnformattable(tree *quill.Tree) bool {
	a, ok := s.get(tree)
	return ok && (a.formatDisabled || a.hasComment)
}

// --- disable-formatting pass ---

// disableMarker is the comment text that disables formatting for the following construct.
const disableMarker = "@typstyle off"

// computeNoFormat handles the disable-formatting pass and, like [Store.computeMultilineImpl],
// returns whether node or any descendant carries a comment so the caller can OR it into its own
// result: spec.md §3 defines has_comment as "any descendant is a line/block comment", not just a
// direct child, and §4.2 requires it to propagate to every ancestor of a commented node.
func (s *Store) computeNoFormat(node *quill.Tree) (commented bool) {
	disableNext := false

	for _, child := range node.Children {
		switch c := child.(type) {
		case quill.TokenChild:
			if c.Type == token.LineComment || c.Type == token.BlockComment {
				commented = true
				disableNext = strings.Contains(c.Literal, disableMarker)
			}
		case quill.TreeChild:
			switch {
			case disableNext && (c.Type == quill.KindCodeBlock || c.Type == quill.KindMath || c.Type == quill.KindEquation):
				s.disableFirstNontrivialChild(c.Tree)
				disableNext = false
			case disableNext:
				s.entry(c.Tree).formatDisabled = true
				disableNext = false
			default:
				commented = s.computeNoFormat(c.Tree) || commented
			}
		}
	}

	if commented {
		s.entry(node).hasComment = true
	}
	return commented
}

func (s *Store) disableFirstNontrivialChild(node *quill.Tree) {
	for _, child := range node.Children {
		tc, ok := child.(quill.TreeChild)
		if !ok {
			continue
		}
		s.entry(tc.Tree).formatDisabled = true
		return
	}
}

// --- multiline pass ---

func (s *Store) computeMultiline(root *quill.Tree) {
	s.computeMultilineImpl(root)
}

func (s *Store) computeMultilineImpl(node *quill.Tree) (isMultiline, hasMultilineStr bool) {
	seenSpace := false

	for _, child := range node.Children {
		switch c := child.(type) {
		case quill.TokenChild:
			switch c.Type {
			case token.Space:
				if hasLinebreak(c.Literal) {
					isMultiline = true
					if !seenSpace {
						s.entry(node).isMultilineFlavor = true
					}
				}
				seenSpace = true
			case token.BlockComment:
				if hasLinebreak(c.Literal) {
					isMultiline = true
				}
			case token.Str:
				if hasLinebreak(c.Literal) {
					hasMultilineStr = true
				}
			}
		case quill.TreeChild:
			if c.Type == quill.KindRaw && isMultilineRaw(c.Tree) {
				hasMultilineStr = true
			}
			childMultiline, childMultilineStr := s.computeMultilineImpl(c.Tree)
			isMultiline = isMultiline || childMultiline
			hasMultilineStr = hasMultilineStr || childMultilineStr
		}
	}

	if isMultiline {
		s.entry(node).isMultiline = true
	}
	if hasMultilineStr {
		s.entry(node).hasMultilineStr = true
	}
	return isMultiline, hasMultilineStr
}

func hasLinebreak(s string) bool {
	return strings.ContainsAny(s, "\n\r")
}

// isMultilineRaw reports whether an inline (single backtick) raw span has more than one line; a
// fenced (triple backtick) raw block is excluded since its multiline shape is expected, not a
// signal that forces the surrounding construct to stay expanded.
func isMultilineRaw(raw *quill.Tree) bool {
	fence, ok := quill.TokenFirst(raw, token.RawFence)
	if !ok {
		return false
	}
	if len(fence.Literal) >= 3 {
		return false
	}
	return len(quill.Trees(raw, quill.KindRawLine)) > 1
}

// --- math alignment pass ---

func (s *Store) computeMathAlignPoint(root *quill.Tree) {
	s.computeMathAlignPointImpl(root)
}

func (s *Store) computeMathAlignPointImpl(node *quill.Tree) bool {
	if node.Type == quill.KindMathAlignPointNode {
		return true
	}

	var hasAlignPoint bool
	for _, child := range node.Children {
		if tc, ok := child.(quill.TreeChild); ok {
			hasAlignPoint = s.computeMathAlignPointImpl(tc.Tree) || hasAlignPoint
		}
	}

	if hasAlignPoint && (node.Type == quill.KindMath || node.Type == quill.KindMathDelimited) {
		s.entry(node).hasMathAlignPoint = true
		return true
	}
	return false
}
