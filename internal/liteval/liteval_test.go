package liteval_test

import (
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/quillfmt/quill"
	"github.com/quillfmt/quill/ast"
	"github.com/quillfmt/quill/internal/liteval"
)

// evalSource parses "#let x = " + src and evaluates the bound value expression, mirroring how a
// converter would pull a literal "columns:" argument out of a table call.
func evalSource(t *testing.T, src string) (liteval.Value, error) {
	t.Helper()
	p := quill.NewParser(strings.NewReader("#let x = " + src))
	tree := p.Parse()
	assert.Equals(t, len(p.Errors()), 0, "unexpected parse errors for %q: %v", src, p.Errors())

	lets := quill.Trees(tree, quill.KindLetBinding)
	assert.Equals(t, len(lets), 1, "expected exactly one let binding for %q", src)

	value, ok := (ast.LetBinding{Tree: lets[0]}).Value()
	assert.Truef(t, ok, "expected a value expression in %q", src)

	return liteval.Eval(value)
}

func TestEvalNoneAndAuto(t *testing.T) {
	v, err := evalSource(t, "none")
	assert.Equals(t, err, nil, "none should evaluate cleanly")
	assert.Truef(t, v.Kind == liteval.KindNone, "expected KindNone, got %v", v.Kind)

	v, err = evalSource(t, "auto")
	assert.Equals(t, err, nil, "auto should evaluate cleanly")
	assert.Truef(t, v.Kind == liteval.KindAuto, "expected KindAuto, got %v", v.Kind)
}

func TestEvalIntArithmetic(t *testing.T) {
	tests := map[string]int64{
		"0":           0,
		"1 + 2":       3,
		"1 * 2":       2,
		"1 - 2":       -1,
		"(1 + 2) * 3": 9,
	}

	for src, want := range tests {
		v, err := evalSource(t, src)
		assert.Equals(t, err, nil, "%q should evaluate cleanly", src)
		assert.Truef(t, v.Kind == liteval.KindInt, "%q: expected KindInt, got %v", src, v.Kind)
		assert.Equals(t, v.Int, want, "%q", src)
	}
}

func TestEvalArrayLength(t *testing.T) {
	tests := map[string]int{
		"(1fr,)":                    1,
		"(1pt, 2em) * 3":            6,
		"(1, 2) + (3, 4, 5)":        5,
		"(1,) * 2 + 2 * (3, 4)":     6,
		"((1,) * 2 + 2 * (3,)) * 4": 16,
	}

	for src, want := range tests {
		v, err := evalSource(t, src)
		assert.Equals(t, err, nil, "%q should evaluate cleanly", src)
		assert.Truef(t, v.Kind == liteval.KindArray, "%q: expected KindArray, got %v", src, v.Kind)
		assert.Equals(t, v.Len, want, "%q", src)
	}
}

func TestEvalDivisionByZeroIsInvalid(t *testing.T) {
	_, err := evalSource(t, "1 / 0")
	assert.Truef(t, err == liteval.ErrInvalidOperation, "dividing by zero should be an invalid operation, got %v", err)
}

func TestEvalUnsupportedExpression(t *testing.T) {
	_, err := evalSource(t, `"hi"`)
	assert.Truef(t, err == liteval.ErrNotSupported, "a string literal should not be supported, got %v", err)
}
