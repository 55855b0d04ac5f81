package quill

import "github.com/quillfmt/quill/token"

// Children iterates over the non-trivia children of tree, skipping comment tokens the way every
// converter needs to when looking for semantic content.
func Children(tree *Tree) []Child {
	out := make([]Child, 0, len(tree.Children))
	for _, child := range tree.Children {
		if isTrivia(child) {
			continue
		}
		out = append(out, child)
	}
	return out
}

func isTrivia(child Child) bool {
	tc, ok := child.(TokenChild)
	if !ok {
		return false
	}
	return tc.Type == token.Space || tc.Type == token.LineComment || tc.Type == token.BlockComment
}

// TreeFirst returns the first non-trivia child tree of the given kind.
func TreeFirst(tree *Tree, want TreeKind) (*Tree, bool) {
	for _, child := range Children(tree) {
		if tc, ok := child.(TreeChild); ok && tc.Type == want {
			return tc.Tree, true
		}
	}
	return nil, false
}

// TreeLast returns the last non-trivia child tree of the given kind.
func TreeLast(tree *Tree, want TreeKind) (*Tree, bool) {
	children := Children(tree)
	for i := len(children) - 1; i >= 0; i-- {
		if tc, ok := children[i].(TreeChild); ok && tc.Type == want {
			return tc.Tree, true
		}
	}
	return nil, false
}

// TreeAt returns the child tree at semantic index at (counting only non-trivia children) if it
// matches want.
func TreeAt(tree *Tree, want TreeKind, at int) (*Tree, bool) {
	children := Children(tree)
	if at < 0 || at >= len(children) {
		return nil, false
	}
	if tc, ok := children[at].(TreeChild); ok && tc.Type == want {
		return tc.Tree, true
	}
	return nil, false
}

// Trees returns every non-trivia child tree of the given kind, in source order.
func Trees(tree *Tree, want TreeKind) []*Tree {
	var out []*Tree
	for _, child := range Children(tree) {
		if tc, ok := child.(TreeChild); ok && tc.Type == want {
			out = append(out, tc.Tree)
		}
	}
	return out
}

// TokenFirst returns the first non-trivia child token of the given kind.
func TokenFirst(tree *Tree, want token.Kind) (token.Token, bool) {
	for _, child := range Children(tree) {
		if tc, ok := child.(TokenChild); ok && tc.Type == want {
			return tc.Token, true
		}
	}
	return token.Token{}, false
}

// HasComment reports whether tree has any directly attached comment token (not recursing into
// subtrees), used by the attribute store's leaf-level comment detection.
func HasComment(tree *Tree) bool {
	for _, child := range tree.Children {
		if tc, ok := child.(TokenChild); ok && (tc.Type == token.LineComment || tc.Type == token.BlockComment) {
			return true
		}
	}
	return false
}
