package ast_test

import (
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
	"github.com/quillfmt/quill"
	"github.com/quillfmt/quill/ast"
)

func parse(t *testing.T, src string) *quill.Tree {
	t.Helper()
	p := quill.NewParser(strings.NewReader(src))
	root := p.Parse()
	require.Equalf(t, len(p.Errors()), 0, "parsing %q should not produce errors, got %v", src, p.Errors())
	return root
}

func findFirst(tree *quill.Tree, want quill.TreeKind) (*quill.Tree, bool) {
	if tree.Type == want {
		return tree, true
	}
	for _, child := range tree.Children {
		if tc, ok := child.(quill.TreeChild); ok {
			if found, ok := findFirst(tc.Tree, want); ok {
				return found, true
			}
		}
	}
	return nil, false
}

func TestHeadingLevel(t *testing.T) {
	root := parse(t, "=== Deep heading")
	node, ok := findFirst(root, quill.KindHeading)
	require.Truef(t, ok, "expected a Heading node")

	h := ast.Heading{Tree: node}

	assert.Equalf(t, h.Level(), 3, "Heading.Level()")
}

func TestRawLangReadsTheFenceTag(t *testing.T) {
	root := parse(t, "```rust\nfn main() {}\n```")
	node, ok := findFirst(root, quill.KindRaw)
	require.Truef(t, ok, "expected a Raw node")

	r := ast.Raw{Tree: node}

	assert.Equalf(t, r.Lang(), "rust", "Raw.Lang()")
}

func TestEquationMath(t *testing.T) {
	root := parse(t, "$ 1 + 1 $")
	node, ok := findFirst(root, quill.KindEquation)
	require.Truef(t, ok, "expected an Equation node")

	e := ast.Equation{Tree: node}
	math, ok := e.Math()

	require.Truef(t, ok, "Equation.Math() should find the math body")
	assert.Equalf(t, math.Type, quill.KindMath, "Math() kind")
}

func TestIdentName(t *testing.T) {
	root := parse(t, "#x")
	node, ok := findFirst(root, quill.KindIdent)
	require.Truef(t, ok, "expected an Ident node")

	i := ast.Ident{Tree: node}

	assert.Equalf(t, i.Name(), "x", "Ident.Name()")
}

func TestLetBindingTargetAndValue(t *testing.T) {
	root := parse(t, "#let x = 1")
	node, ok := findFirst(root, quill.KindLetBinding)
	require.Truef(t, ok, "expected a LetBinding node")

	l := ast.LetBinding{Tree: node}
	target, ok := l.Target()
	require.Truef(t, ok, "LetBinding.Target() should find the bound name")
	assert.Equalf(t, target.Text(), "x", "LetBinding.Target().Text()")

	value, ok := l.Value()
	require.Truef(t, ok, "LetBinding.Value() should find the initializer")
	assert.Equalf(t, value.Text(), "1", "LetBinding.Value().Text()")
}

func TestLetBindingWithoutInitializerHasNoValue(t *testing.T) {
	root := parse(t, "#let x")
	node, ok := findFirst(root, quill.KindLetBinding)
	require.Truef(t, ok, "expected a LetBinding node")

	l := ast.LetBinding{Tree: node}
	_, ok = l.Value()

	assert.Truef(t, !ok, "a let binding with no initializer should report no Value")
}

func TestFuncCallCalleeAndArgs(t *testing.T) {
	root := parse(t, "#foo(1, 2)")
	node, ok := findFirst(root, quill.KindFuncCall)
	require.Truef(t, ok, "expected a FuncCall node")

	f := ast.FuncCall{Tree: node}
	callee, ok := f.Callee()
	require.Truef(t, ok, "FuncCall.Callee() should find the callee")
	assert.Equalf(t, callee.Text(), "foo", "FuncCall.Callee().Text()")

	args, ok := f.Args()
	require.Truef(t, ok, "FuncCall.Args() should find the argument list")
	assert.Equalf(t, args.Type, quill.KindArgs, "Args() kind")
}

func TestArrayItems(t *testing.T) {
	root := parse(t, "#(1, 2, 3)")
	node, ok := findFirst(root, quill.KindArray)
	require.Truef(t, ok, "expected an Array node")

	a := ast.Array{Tree: node}
	items := a.Items()

	assert.Equalf(t, len(items), 3, "Array.Items() count")
}

func TestShowRuleSelectorAndTransform(t *testing.T) {
	root := parse(t, "#show heading: strong")
	node, ok := findFirst(root, quill.KindShowRule)
	require.Truef(t, ok, "expected a ShowRule node")

	s := ast.ShowRule{Tree: node}
	sel, ok := s.Selector()
	require.Truef(t, ok, "ShowRule.Selector() should find the selector")
	assert.Equalf(t, sel.Text(), "heading", "ShowRule.Selector().Text()")

	transform, ok := s.Transform()
	require.Truef(t, ok, "ShowRule.Transform() should find the replacement")
	assert.Equalf(t, transform.Text(), "strong", "ShowRule.Transform().Text()")
}

func TestShowRuleWithoutSelectorHasOnlyTransform(t *testing.T) {
	root := parse(t, "#show: strong")
	node, ok := findFirst(root, quill.KindShowRule)
	require.Truef(t, ok, "expected a ShowRule node")

	s := ast.ShowRule{Tree: node}
	_, ok = s.Selector()
	assert.Truef(t, !ok, "a selector-less show rule should report no Selector")

	transform, ok := s.Transform()
	require.Truef(t, ok, "ShowRule.Transform() should still find the replacement")
	assert.Equalf(t, transform.Text(), "strong", "ShowRule.Transform().Text()")
}

func TestCommentsFindsADirectlyAttachedComment(t *testing.T) {
	root := parse(t, "// a comment\nhello")

	comments := ast.Comments(root)

	assert.Equalf(t, len(comments), 1, "expected one comment directly attached to the file root")
	assert.Equalf(t, comments[0].Literal, "// a comment", "comment literal")
}
