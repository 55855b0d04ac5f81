package attr_test

import (
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/quillfmt/quill"
	"github.com/quillfmt/quill/internal/attr"
)

func parse(t *testing.T, src string) *quill.Tree {
	t.Helper()
	p := quill.NewParser(strings.NewReader(src))
	tree := p.Parse()
	assert.Equals(t, len(p.Errors()), 0, "unexpected parse errors: %v", p.Errors())
	return tree
}

func TestDisablePassPropagatesToNextSibling(t *testing.T) {
	tree := parse(t, "// @typstyle off\n#let x = 1\n#let y = 2\n")
	store := attr.New(tree)

	lets := quill.Trees(tree, quill.KindLetBinding)
	assert.Equals(t, len(lets), 2, "expected two let bindings")
	assert.Truef(t, store.IsFormatDisabled(lets[0]), "first let binding should have formatting disabled")
	assert.Falsef(t, store.IsFormatDisabled(lets[1]), "second let binding should be unaffected")
}

func TestHasCommentPropagatesToAncestor(t *testing.T) {
	tree := parse(t, "#let x = 1 // trailing\n")
	store := attr.New(tree)

	assert.Truef(t, store.HasComment(tree), "root should report has_comment when a descendant carries one")
}

func TestEquationSpanningLinesIsMultiline(t *testing.T) {
	tree := parse(t, "$\n  a + b\n$")
	equation, ok := quill.TreeFirst(tree, quill.KindEquation)
	assert.Truef(t, ok, "expected an equation")

	store := attr.New(tree)
	assert.Truef(t, store.IsMultiline(equation), "equation spanning multiple lines should be multiline")
}

func TestMathAlignPointDetection(t *testing.T) {
	tree := parse(t, "$ a &= b $")
	equation, ok := quill.TreeFirst(tree, quill.KindEquation)
	assert.Truef(t, ok, "expected an equation")

	store := attr.New(tree)
	math, ok := quill.TreeFirst(equation, quill.KindMath)
	assert.Truef(t, ok, "expected a math node inside the equation")
	assert.Truef(t, store.HasMathAlignPoint(math), "math body with '&' should report an alignment point")
}

func TestIsUnformattableWhenCommented(t *testing.T) {
	tree := parse(t, "#let x = 1 // note\n")
	store := attr.New(tree)

	lets := quill.Trees(tree, quill.KindLetBinding)
	assert.Equals(t, len(lets), 1, "expected one let binding")
	assert.Truef(t, store.IsUnformattable(tree), "root carries the comment so is unformattable")
}
