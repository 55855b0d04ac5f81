// Package quill provides a parser for the language: a hybrid document/code system with three
// modes (markup, code, math).
package quill

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/quillfmt/quill/internal/assert"
	"github.com/quillfmt/quill/token"
)

// Format specifies the output representation for rendering a [Tree].
type Format int

const (
	// Default renders the tree as indented text.
	Default Format = iota
	// Scheme renders the tree as S-expressions with position annotations. Each node is rendered
	// as (NodeType (@ startLine startCol endLine endCol) children...) and tokens are rendered as
	// ('token' (@ startLine startCol endLine endCol)).
	Scheme
)

var formats = map[string]Format{
	"default": Default,
	"scheme":  Scheme,
}

var validFormats = [...]string{"default", "scheme"}

// NewFormat converts a string to a [Format] constant. Valid values are "default" and "scheme".
func NewFormat(format string) (Format, error) {
	if f, ok := formats[format]; ok {
		return f, nil
	}
	return Default, fmt.Errorf("invalid format string: %q, valid ones are: %q", format, validFormats)
}

// TreeKind represents the type of syntax tree node (non-terminal).
type TreeKind int

const (
	KindErrorTree TreeKind = iota

	// Root
	KindFile

	// Markup
	KindMarkup
	KindStrong
	KindEmph
	KindHeading
	KindListItem
	KindEnumItem
	KindTermItem
	KindTermDesc
	KindRaw
	KindRawLine
	KindLink
	KindLabel
	KindRef

	// Math
	KindEquation
	KindMath
	KindMathDelimited
	KindMathAttach
	KindMathPrimes
	KindMathFrac
	KindMathRoot
	KindMathAlignPointNode
	KindMathIdent

	// Code containers
	KindCodeBlock
	KindContentBlock
	KindParenthesized
	KindArray
	KindDict
	KindDestructuring
	KindDestructItem
	KindParams
	KindParam
	KindSpread

	// Code statements/expressions
	KindIdent
	KindFieldAccess
	KindFuncCall
	KindArgs
	KindNamedArg
	KindClosure
	KindLetBinding
	KindSetRule
	KindShowRule
	KindConditional
	KindWhileLoop
	KindForLoop
	KindForPattern
	KindImport
	KindImportItem
	KindInclude
	KindReturnStmt
	KindBreakStmt
	KindContinueStmt
	KindContextual
	KindUnary
	KindBinary
	KindDestructAssign

	// Literals
	KindInt
	KindFloat
	KindStr
	KindBool
	KindNone
	KindAuto
)

var kindNames = map[TreeKind]string{
	KindErrorTree:          "ErrorTree",
	KindFile:               "File",
	KindMarkup:             "Markup",
	KindStrong:             "Strong",
	KindEmph:               "Emph",
	KindHeading:            "Heading",
	KindListItem:           "ListItem",
	KindEnumItem:           "EnumItem",
	KindTermItem:           "TermItem",
	KindTermDesc:           "TermDesc",
	KindRaw:                "Raw",
	KindRawLine:            "RawLine",
	KindLink:               "Link",
	KindLabel:              "Label",
	KindRef:                "Ref",
	KindEquation:           "Equation",
	KindMath:               "Math",
	KindMathDelimited:      "MathDelimited",
	KindMathAttach:         "MathAttach",
	KindMathPrimes:         "MathPrimes",
	KindMathFrac:           "MathFrac",
	KindMathRoot:           "MathRoot",
	KindMathAlignPointNode: "MathAlignPoint",
	KindMathIdent:          "MathIdent",
	KindCodeBlock:          "CodeBlock",
	KindContentBlock:       "ContentBlock",
	KindParenthesized:      "Parenthesized",
	KindArray:              "Array",
	KindDict:               "Dict",
	KindDestructuring:      "Destructuring",
	KindDestructItem:       "DestructItem",
	KindParams:             "Params",
	KindParam:              "Param",
	KindSpread:             "Spread",
	KindIdent:              "Ident",
	KindFieldAccess:        "FieldAccess",
	KindFuncCall:           "FuncCall",
	KindArgs:               "Args",
	KindNamedArg:           "NamedArg",
	KindClosure:            "Closure",
	KindLetBinding:         "LetBinding",
	KindSetRule:            "SetRule",
	KindShowRule:           "ShowRule",
	KindConditional:        "Conditional",
	KindWhileLoop:          "WhileLoop",
	KindForLoop:            "ForLoop",
	KindForPattern:         "ForPattern",
	KindImport:             "Import",
	KindImportItem:         "ImportItem",
	KindInclude:            "Include",
	KindReturnStmt:         "ReturnStmt",
	KindBreakStmt:          "BreakStmt",
	KindContinueStmt:       "ContinueStmt",
	KindContextual:         "Contextual",
	KindUnary:              "Unary",
	KindBinary:             "Binary",
	KindDestructAssign:     "DestructAssign",
	KindInt:                "Int",
	KindFloat:              "Float",
	KindStr:                "Str",
	KindBool:               "Bool",
	KindNone:               "None",
	KindAuto:               "Auto",
}

// String returns the name of the tree kind.
func (tk TreeKind) String() string {
	if s, ok := kindNames[tk]; ok {
		return s
	}
	panic(fmt.Errorf("TreeKind Stringer missing case for %d", tk))
}

// Tree represents a node in the concrete syntax tree (CST).
//
// Type identifies the syntactic construct. Children contains the node's children in source
// order, which may be either [TreeChild] (subtrees) or [TokenChild] (tokens). Start and End mark
// the source positions. Erroneous is set by the parser when it had to recover from a malformed
// construct while building this node; converters must emit such nodes verbatim rather than
// reformatting them.
type Tree struct {
	Type       TreeKind
	Children   []Child
	Start, End token.Position
	Erroneous  bool
}

func (tree *Tree) appendToken(child token.Token) {
	if len(tree.Children) == 0 {
		tree.Start = child.Start
	}
	tree.End = child.End
	tree.Children = append(tree.Children, TokenChild{child})
}

func (tree *Tree) appendTree(child *Tree) {
	if len(tree.Children) == 0 {
		tree.Start = child.Start
	}
	tree.End = child.End
	tree.Children = append(tree.Children, TreeChild{child})
	if child.Erroneous {
		tree.Erroneous = true
	}
}

// Text reconstructs the original source text covered by tree by concatenating every token's
// literal in source order. This is the "text round-trip" every converter relies on to emit
// format-disabled subtrees verbatim.
func (tree *Tree) Text() string {
	if tree == nil {
		return ""
	}
	var sb strings.Builder
	writeText(&sb, tree)
	return sb.String()
}

func writeText(sb *strings.Builder, tree *Tree) {
	for _, child := range tree.Children {
		switch c := child.(type) {
		case TokenChild:
			sb.WriteString(c.Literal)
		case TreeChild:
			writeText(sb, c.Tree)
		}
	}
}

// String returns the tree formatted using the [Default] format.
func (tree *Tree) String() string {
	if tree == nil {
		return ""
	}

	var sb strings.Builder
	_ = tree.Render(&sb, Default)
	return sb.String()
}

func renderDefault(bw *bufio.Writer, tree *Tree, indent int) error {
	if tree == nil {
		return nil
	}

	if err := writeIndentBuffered(bw, indent); err != nil {
		return err
	}
	if _, err := bw.WriteString(tree.Type.String()); err != nil {
		return err
	}

	for _, child := range tree.Children {
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		switch c := child.(type) {
		case TokenChild:
			if err := writeIndentBuffered(bw, indent+1); err != nil {
				return err
			}
			if err := bw.WriteByte('\''); err != nil {
				return err
			}
			if _, err := bw.WriteString(c.String()); err != nil {
				return err
			}
			if err := bw.WriteByte('\''); err != nil {
				return err
			}
		case TreeChild:
			if err := renderDefault(bw, c.Tree, indent+1); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeIndentBuffered(bw *bufio.Writer, columns int) error {
	for range columns {
		if err := bw.WriteByte('\t'); err != nil {
			return err
		}
	}
	return nil
}

// Render writes the tree to w in the specified format. See [Format] for available formats.
func (tree *Tree) Render(w io.Writer, format Format) error {
	if tree == nil {
		return nil
	}
	bw := bufio.NewWriter(w)

	var err error
	switch format {
	case Default:
		err = renderDefault(bw, tree, 0)
	case Scheme:
		err = renderScheme(bw, tree, 0)
	default:
		panic(fmt.Errorf("rendering tree in format %q is not implemented", format))
	}
	if err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	return bw.Flush()
}

func renderScheme(bw *bufio.Writer, tree *Tree, indent int) error {
	if tree == nil {
		return nil
	}

	if err := writeIndentBuffered(bw, indent); err != nil {
		return err
	}
	if err := bw.WriteByte('('); err != nil {
		return err
	}
	if _, err := bw.WriteString(tree.Type.String()); err != nil {
		return err
	}
	if err := renderPosition(bw, tree.Start, tree.End); err != nil {
		return err
	}

	for _, child := range tree.Children {
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		switch c := child.(type) {
		case TokenChild:
			if err := writeIndentBuffered(bw, indent+1); err != nil {
				return err
			}
			if _, err := bw.WriteString("('"); err != nil {
				return err
			}
			if _, err := bw.WriteString(c.String()); err != nil {
				return err
			}
			if err := bw.WriteByte('\''); err != nil {
				return err
			}
			if err := renderPosition(bw, c.Start, c.End); err != nil {
				return err
			}
			if err := bw.WriteByte(')'); err != nil {
				return err
			}
		case TreeChild:
			if err := renderScheme(bw, c.Tree, indent+1); err != nil {
				return err
			}
		}
	}
	return bw.WriteByte(')')
}

func renderPosition(bw *bufio.Writer, start, end token.Position) error {
	assert.That(start.IsValid() == end.IsValid(), "tree position invariant violated: both Start and End must be valid or both invalid, got Start=%v End=%v", start, end)

	if !start.IsValid() && !end.IsValid() {
		return nil
	}

	if _, err := bw.WriteString(" (@ "); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(bw, "%d %d %d %d", start.Line, start.Column, end.Line, end.Column); err != nil {
		return err
	}
	return bw.WriteByte(')')
}

// Child is a marker interface for tree node children. Implementations are [TreeChild] and
// [TokenChild].
type Child interface {
	child()
}

// TreeChild wraps a [Tree] as a child of another tree node.
type TreeChild struct {
	*Tree
}

func (TreeChild) child() {}

// TokenChild wraps a [token.Token] as a child of a tree node.
type TokenChild struct {
	token.Token
}

func (TokenChild) child() {}
