// Package liteval evaluates a small constant subset of code expressions without a scope or a
// virtual machine. It currently exists for one purpose: inferring the column count of a table or
// grid from its "columns:" argument when that argument is a literal (an int, an array, or a
// parenthesized/arithmetic combination of those).
package liteval

import (
	"errors"

	"github.com/quillfmt/quill"
	"github.com/quillfmt/quill/token"
)

// Kind identifies the shape of an evaluated [Value].
type Kind int

const (
	// KindNone is the literal `none`.
	KindNone Kind = iota
	// KindAuto is the literal `auto`.
	KindAuto
	// KindInt is a signed integer.
	KindInt
	// KindArray is represented only by its length, since only the element count matters for
	// column inference.
	KindArray
)

// Value is the result of successfully evaluating an expression.
type Value struct {
	Kind Kind
	Int  int64
	Len  int
}

// ErrNotSupported is returned for any expression shape this tiny evaluator does not model.
var ErrNotSupported = errors.New("liteval: expression not supported")

// ErrInvalidOperation is returned when an operator is applied to operand kinds it is not defined
// for (e.g. negating an array).
var ErrInvalidOperation = errors.New("liteval: invalid operation for operand kinds")

// Eval evaluates expr, a code expression tree, returning its constant [Value] if expr falls
// within the supported subset: none, auto, integer literals, parenthesized expressions, array
// literals (by length only), and unary/binary arithmetic over those.
func Eval(expr *quill.Tree) (Value, error) {
	switch expr.Type {
	case quill.KindNone:
		return Value{Kind: KindNone}, nil
	case quill.KindAuto:
		return Value{Kind: KindAuto}, nil
	case quill.KindInt:
		return evalInt(expr)
	case quill.KindParenthesized:
		inner, ok := firstChildTree(expr)
		if !ok {
			return Value{}, ErrNotSupported
		}
		return Eval(inner)
	case quill.KindArray:
		return Value{Kind: KindArray, Len: len(arrayItems(expr))}, nil
	case quill.KindUnary:
		return evalUnary(expr)
	case quill.KindBinary:
		return evalBinary(expr)
	default:
		return Value{}, ErrNotSupported
	}
}

func firstChildTree(tree *quill.Tree) (*quill.Tree, bool) {
	for _, c := range quill.Children(tree) {
		if tc, ok := c.(quill.TreeChild); ok {
			return tc.Tree, true
		}
	}
	return nil, false
}

// arrayItems returns every non-trivia, non-punctuation child tree of an array literal.
func arrayItems(array *quill.Tree) []*quill.Tree {
	var out []*quill.Tree
	for _, c := range quill.Children(array) {
		if tc, ok := c.(quill.TreeChild); ok {
			out = append(out, tc.Tree)
		}
	}
	return out
}

func evalInt(expr *quill.Tree) (Value, error) {
	tok, ok := quill.TokenFirst(expr, token.Int)
	if !ok {
		return Value{}, ErrNotSupported
	}
	n, ok := parseIntLiteral(tok.Literal)
	if !ok {
		return Value{}, ErrNotSupported
	}
	return Value{Kind: KindInt, Int: n}, nil
}

// parseIntLiteral parses the digit run at the start of literal, ignoring any trailing unit
// suffix the parser folded into the same token (e.g. the "pt" in "12pt").
func parseIntLiteral(literal string) (int64, bool) {
	var n int64
	i := 0
	for i < len(literal) && literal[i] >= '0' && literal[i] <= '9' {
		n = n*10 + int64(literal[i]-'0')
		i++
	}
	if i == 0 {
		return 0, false
	}
	return n, true
}

func evalUnary(expr *quill.Tree) (Value, error) {
	opTok, ok := firstOpToken(expr)
	if !ok {
		return Value{}, ErrNotSupported
	}
	operand, ok := firstChildTree(expr)
	if !ok {
		return Value{}, ErrNotSupported
	}
	v, err := Eval(operand)
	if err != nil {
		return Value{}, err
	}
	switch opTok.Type {
	case token.Plus2:
		if v.Kind != KindInt {
			return Value{}, ErrInvalidOperation
		}
		return v, nil
	case token.Minus2:
		if v.Kind != KindInt {
			return Value{}, ErrInvalidOperation
		}
		return Value{Kind: KindInt, Int: -v.Int}, nil
	default:
		return Value{}, ErrNotSupported
	}
}

func firstOpToken(tree *quill.Tree) (token.Token, bool) {
	for _, c := range tree.Children {
		if tc, ok := c.(quill.TokenChild); ok {
			return tc.Token, true
		}
	}
	return token.Token{}, false
}

func evalBinary(expr *quill.Tree) (Value, error) {
	trees := childTrees(expr)
	if len(trees) != 2 {
		return Value{}, ErrNotSupported
	}
	lhs, err := Eval(trees[0])
	if err != nil {
		return Value{}, err
	}
	rhs, err := Eval(trees[1])
	if err != nil {
		return Value{}, err
	}
	opTok, ok := firstOpToken(expr)
	if !ok {
		return Value{}, ErrNotSupported
	}

	switch opTok.Type {
	case token.Plus2:
		switch {
		case lhs.Kind == KindInt && rhs.Kind == KindInt:
			return Value{Kind: KindInt, Int: lhs.Int + rhs.Int}, nil
		case lhs.Kind == KindArray && rhs.Kind == KindArray:
			return Value{Kind: KindArray, Len: lhs.Len + rhs.Len}, nil
		default:
			return Value{}, ErrInvalidOperation
		}
	case token.Minus2:
		if lhs.Kind == KindInt && rhs.Kind == KindInt {
			return Value{Kind: KindInt, Int: lhs.Int - rhs.Int}, nil
		}
		return Value{}, ErrInvalidOperation
	case token.Star2:
		switch {
		case lhs.Kind == KindInt && rhs.Kind == KindInt:
			return Value{Kind: KindInt, Int: lhs.Int * rhs.Int}, nil
		case lhs.Kind == KindArray && rhs.Kind == KindInt && rhs.Int >= 0:
			return Value{Kind: KindArray, Len: lhs.Len * int(rhs.Int)}, nil
		case lhs.Kind == KindInt && rhs.Kind == KindArray && lhs.Int >= 0:
			return Value{Kind: KindArray, Len: int(lhs.Int) * rhs.Len}, nil
		default:
			return Value{}, ErrInvalidOperation
		}
	case token.Slash2:
		if lhs.Kind == KindInt && rhs.Kind == KindInt && rhs.Int != 0 {
			return Value{Kind: KindInt, Int: lhs.Int / rhs.Int}, nil
		}
		return Value{}, ErrInvalidOperation
	default:
		return Value{}, ErrNotSupported
	}
}

func childTrees(tree *quill.Tree) []*quill.Tree {
	var out []*quill.Tree
	for _, c := range tree.Children {
		if tc, ok := c.(quill.TreeChild); ok {
			out = append(out, tc.Tree)
		}
	}
	return out
}
