package quill_test

import (
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
	"github.com/quillfmt/quill"
	"github.com/quillfmt/quill/token"
)

func parse(t *testing.T, src string) *quill.Tree {
	t.Helper()
	p := quill.NewParser(strings.NewReader(src))
	root := p.Parse()
	require.Equalf(t, len(p.Errors()), 0, "parsing %q should not produce errors, got %v", src, p.Errors())
	return root
}

// findFirst searches tree and its descendants, depth first, for the first node of kind want.
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

// findAll collects every descendant node of kind want, in source order.
func findAll(tree *quill.Tree, want quill.TreeKind) []*quill.Tree {
	var out []*quill.Tree
	if tree.Type == want {
		out = append(out, tree)
	}
	for _, child := range tree.Children {
		if tc, ok := child.(quill.TreeChild); ok {
			out = append(out, findAll(tc.Tree, want)...)
		}
	}
	return out
}

func TestParseRoundTripsTextThroughTree(t *testing.T) {
	tests := []string{
		"Hello world.",
		"== A heading\n\nSome text.",
		"This is *bold* and _emph_.",
		"- one\n- two\n- three",
		"#let x = 1",
		"#foo(1, 2, 3)",
		"$ x + y $",
		"#if x { 1 } else { 2 }",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			root := parse(t, src)
			assert.Equalf(t, root.Text(), src, "Tree.Text() should round trip the source verbatim")
		})
	}
}

func TestParseFileRootKind(t *testing.T) {
	root := parse(t, "hello")

	assert.Equalf(t, root.Type, quill.KindFile, "the parse root should be a File node")
}

func TestParseHeadingLevel(t *testing.T) {
	root := parse(t, "=== Deep heading")

	heading, ok := findFirst(root, quill.KindHeading)
	require.Truef(t, ok, "expected a Heading node")
	tok, ok := quill.TokenFirst(heading, token.Eq)
	require.Truef(t, ok, "expected the heading's '=' marker token")
	assert.Equalf(t, len(tok.Literal), 3, "=== should carry 3 '=' characters")
}

func TestParseLetBindingIsFound(t *testing.T) {
	root := parse(t, "#let x = 1")

	letBinding, ok := findFirst(root, quill.KindLetBinding)
	require.Truef(t, ok, "expected a LetBinding node")
	assert.Equalf(t, letBinding.Type, quill.KindLetBinding, "LetBinding kind")
}

func TestParseFuncCallHasArgsNode(t *testing.T) {
	root := parse(t, "#foo(1, 2, 3)")

	call, ok := findFirst(root, quill.KindFuncCall)
	require.Truef(t, ok, "expected a FuncCall node")
	args, ok := quill.TreeFirst(call, quill.KindArgs)
	require.Truef(t, ok, "expected the call's Args node")
	assert.Equalf(t, args.Type, quill.KindArgs, "Args kind")
}

func TestParseListItemsAreSiblings(t *testing.T) {
	root := parse(t, "- one\n- two")

	items := findAll(root, quill.KindListItem)
	assert.Equalf(t, len(items), 2, "expected two ListItem nodes, got %d", len(items))
}

func TestParseBinaryExprHasTwoOperands(t *testing.T) {
	root := parse(t, "#(1 + 2)")

	bin, ok := findFirst(root, quill.KindBinary)
	require.Truef(t, ok, "expected a Binary node")
	operands := findAll(bin, quill.KindInt)
	assert.Equalf(t, len(operands), 2, "expected two Int operands in the binary expression, got %d", len(operands))
}

func TestParseEquationContainsMathNode(t *testing.T) {
	root := parse(t, "$ 1 + 1 $")

	eq, ok := findFirst(root, quill.KindEquation)
	require.Truef(t, ok, "expected an Equation node")
	_, ok = quill.TreeFirst(eq, quill.KindMath)
	assert.Truef(t, ok, "an Equation should contain a Math node")
}

func TestParseRecordsErrorsOnUnclosedConstruct(t *testing.T) {
	p := quill.NewParser(strings.NewReader("#foo(1, 2"))

	root := p.Parse()

	assert.Truef(t, len(p.Errors()) > 0, "an unclosed call should produce at least one error")
	assert.Truef(t, root != nil, "Parse should still return a tree for error recovery")
}
