// Package ast provides typed views over the concrete syntax tree produced by the parser.
//
// Each view is a thin wrapper around a [quill.Tree] node: it does not copy the tree, it only
// narrows the generic Children slice into named accessors. This mirrors how the parser already
// preserves every token (including trivia) in the CST -- the typed views exist for readability at
// the call site, not to own a second copy of the data.
package ast

import (
	"strings"

	"github.com/quillfmt/quill"
	"github.com/quillfmt/quill/token"
)

// Document wraps the root [quill.Tree] (of kind [quill.KindFile]) produced by parsing a complete
// source file.
type Document struct {
	Tree *quill.Tree
}

func NewDocument(tree *quill.Tree) Document {
	return Document{Tree: tree}
}

// Comments returns every comment token directly attached to node's children, in source order.
func Comments(node *quill.Tree) []token.Token {
	var out []token.Token
	for _, child := range node.Children {
		if tc, ok := child.(quill.TokenChild); ok {
			if tc.Type == token.LineComment || tc.Type == token.BlockComment {
				out = append(out, tc.Token)
			}
		}
	}
	return out
}

// Heading wraps a [quill.KindHeading] node.
type Heading struct{ *quill.Tree }

// Level returns the heading depth, the number of '=' characters in the marker.
func (h Heading) Level() int {
	tok, ok := quill.TokenFirst(h.Tree, token.Eq)
	if !ok {
		return 0
	}
	return len(tok.Literal)
}

// ListItem wraps a [quill.KindListItem] node.
type ListItem struct{ *quill.Tree }

// EnumItem wraps a [quill.KindEnumItem] node.
type EnumItem struct{ *quill.Tree }

// TermItem wraps a [quill.KindTermItem] node.
type TermItem struct{ *quill.Tree }

// Desc returns the description part of a term item, after the ':'.
func (t TermItem) Desc() (*quill.Tree, bool) {
	return quill.TreeFirst(t.Tree, quill.KindTermDesc)
}

// Strong wraps a [quill.KindStrong] node.
type Strong struct{ *quill.Tree }

// Emph wraps a [quill.KindEmph] node.
type Emph struct{ *quill.Tree }

// Raw wraps a [quill.KindRaw] node.
type Raw struct{ *quill.Tree }

// Lang returns the language tag of a fenced raw block, the text immediately following the opening
// fence on its first line, if any.
func (r Raw) Lang() string {
	first, ok := quill.TreeFirst(r.Tree, quill.KindRawLine)
	if !ok {
		return ""
	}
	return strings.TrimSpace(first.Text())
}

// Equation wraps a [quill.KindEquation] node.
type Equation struct{ *quill.Tree }

func (e Equation) Math() (*quill.Tree, bool) {
	return quill.TreeFirst(e.Tree, quill.KindMath)
}

// Ident wraps a [quill.KindIdent] node.
type Ident struct{ *quill.Tree }

func (i Ident) Name() string {
	tok, ok := quill.TokenFirst(i.Tree, token.Ident)
	if !ok {
		return ""
	}
	return tok.Literal
}

// LetBinding wraps a [quill.KindLetBinding] node.
type LetBinding struct{ *quill.Tree }

// Target returns the bound name or destructuring pattern (the first child tree).
func (l LetBinding) Target() (*quill.Tree, bool) {
	ts := trees(l.Tree)
	if len(ts) == 0 {
		return nil, false
	}
	return ts[0], true
}

// Value returns the bound value expression, if the binding has an initializer.
func (l LetBinding) Value() (*quill.Tree, bool) {
	ts := trees(l.Tree)
	if len(ts) < 2 {
		return nil, false
	}
	return ts[len(ts)-1], true
}

// SetRule wraps a [quill.KindSetRule] node.
type SetRule struct{ *quill.Tree }

// ShowRule wraps a [quill.KindShowRule] node.
type ShowRule struct{ *quill.Tree }

// trees returns every non-trivia child tree of tree, in source order.
func trees(tree *quill.Tree) []*quill.Tree {
	var out []*quill.Tree
	for _, c := range quill.Children(tree) {
		if tc, ok := c.(quill.TreeChild); ok {
			out = append(out, tc.Tree)
		}
	}
	return out
}

// Selector returns the optional selector expression before the ':'. A show rule with no selector
// transforms the whole remaining document and has only the Transform tree as its child.
func (s ShowRule) Selector() (*quill.Tree, bool) {
	ts := trees(s.Tree)
	if len(ts) < 2 {
		return nil, false
	}
	return ts[0], true
}

// Transform returns the rule's replacement expression, the last child tree.
func (s ShowRule) Transform() (*quill.Tree, bool) {
	ts := trees(s.Tree)
	if len(ts) == 0 {
		return nil, false
	}
	return ts[len(ts)-1], true
}

// Conditional wraps a [quill.KindConditional] node (if/else chain).
type Conditional struct{ *quill.Tree }

// WhileLoop wraps a [quill.KindWhileLoop] node.
type WhileLoop struct{ *quill.Tree }

// ForLoop wraps a [quill.KindForLoop] node.
type ForLoop struct{ *quill.Tree }

// Import wraps a [quill.KindImport] node.
type Import struct{ *quill.Tree }

// Items returns the imported names, empty when the import binds the whole module or uses '*'.
func (i Import) Items() []*quill.Tree {
	return quill.Trees(i.Tree, quill.KindImportItem)
}

// Include wraps a [quill.KindInclude] node.
type Include struct{ *quill.Tree }

// FuncCall wraps a [quill.KindFuncCall] node.
type FuncCall struct{ *quill.Tree }

// Callee returns the called expression (before the argument list).
func (f FuncCall) Callee() (*quill.Tree, bool) {
	children := quill.Children(f.Tree)
	if len(children) == 0 {
		return nil, false
	}
	if tc, ok := children[0].(quill.TreeChild); ok {
		return tc.Tree, true
	}
	return nil, false
}

// Args returns the call's argument list.
func (f FuncCall) Args() (*quill.Tree, bool) {
	return quill.TreeFirst(f.Tree, quill.KindArgs)
}

// Closure wraps a [quill.KindClosure] node.
type Closure struct{ *quill.Tree }

func (c Closure) Params() (*quill.Tree, bool) {
	return quill.TreeFirst(c.Tree, quill.KindParams)
}

func (c Closure) Body() (*quill.Tree, bool) {
	return quill.TreeLast(c.Tree, quill.KindCodeBlock)
}

// Array wraps a [quill.KindArray] node.
type Array struct{ *quill.Tree }

func (a Array) Items() []*quill.Tree {
	var out []*quill.Tree
	for _, c := range quill.Children(a.Tree) {
		if tc, ok := c.(quill.TreeChild); ok && tc.Type != quill.KindArray {
			out = append(out, tc.Tree)
		}
	}
	return out
}

// Dict wraps a [quill.KindDict] node.
type Dict struct{ *quill.Tree }

func (d Dict) Entries() []*quill.Tree {
	var out []*quill.Tree
	for _, c := range quill.Children(d.Tree) {
		if tc, ok := c.(quill.TreeChild); ok && (tc.Type == quill.KindNamedArg || tc.Type == quill.KindSpread) {
			out = append(out, tc.Tree)
		}
	}
	return out
}
