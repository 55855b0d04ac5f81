package printer

import (
	"sort"
	"strings"

	"github.com/quillfmt/quill"
	"github.com/quillfmt/quill/ast"
	"github.com/quillfmt/quill/internal/layout"
	"github.com/quillfmt/quill/internal/liteval"
	"github.com/quillfmt/quill/internal/stylist"
	"github.com/quillfmt/quill/token"
)

// convertFlow renders a statement as a flat sequence of its keyword tokens and sub-expressions,
// space-separated where both neighbors allow it. This is the "shared expr-flow converter" spec.md
// §4.5 describes for if/while/for/set/show/contextual/return/include: none of these constructs
// need a dedicated stylist, since each is just keywords and expressions in a fixed order that a
// [stylist.FlowStylist] already joins correctly, and every sub-expression's own doc (a func call's
// arg list, a code block's braces) already carries whatever grouping it needs.
func (c *converter) convertFlow(ctx context, tree *quill.Tree) *layout.Doc {
	flow := stylist.NewFlowStylist()
	for _, child := range tree.Children {
		switch ch := child.(type) {
		case quill.TokenChild:
			switch ch.Type {
			case token.Space, token.Parbreak:
				// whitespace between flow items carries no meaning of its own
			case token.LineComment:
				flow.PushSpaced(verbatim(ch.Literal))
				flow.PushHardline()
			case token.BlockComment:
				flow.PushSpaced(verbatim(ch.Literal))
			case token.Colon, token.Comma, token.Semicolon:
				flow.Push(layout.Text(ch.String()), false, true)
			default:
				flow.PushSpaced(layout.Text(ch.String()))
			}
		case quill.TreeChild:
			flow.Push(c.convert(ctx.withMode(ModeCode), ch.Tree), true, true)
		}
	}
	return flow.Doc()
}

func (c *converter) convertLetBinding(ctx context, tree *quill.Tree) *layout.Doc  { return c.convertFlow(ctx, tree) }
func (c *converter) convertSetRule(ctx context, tree *quill.Tree) *layout.Doc     { return c.convertFlow(ctx, tree) }
func (c *converter) convertShowRule(ctx context, tree *quill.Tree) *layout.Doc    { return c.convertFlow(ctx, tree) }
func (c *converter) convertConditional(ctx context, tree *quill.Tree) *layout.Doc { return c.convertFlow(ctx, tree) }
func (c *converter) convertWhileLoop(ctx context, tree *quill.Tree) *layout.Doc   { return c.convertFlow(ctx, tree) }
func (c *converter) convertForLoop(ctx context, tree *quill.Tree) *layout.Doc     { return c.convertFlow(ctx, tree) }
func (c *converter) convertInclude(ctx context, tree *quill.Tree) *layout.Doc     { return c.convertFlow(ctx, tree) }

func (c *converter) convertDestructAssign(ctx context, tree *quill.Tree) *layout.Doc {
	return c.convertFlow(ctx, tree)
}

func (c *converter) convertCodeBlock(ctx context, tree *quill.Tree) *layout.Doc {
	return c.convertBracedStmts(ctx.withMode(ModeCode), tree, "{", "}")
}

func (c *converter) convertContentBlock(ctx context, tree *quill.Tree) *layout.Doc {
	inner := c.convertMarkup(ctx.withMode(ModeMarkup), tree)
	return layout.Concat(layout.Text("["), inner, layout.Text("]"))
}

// convertBracedStmts formats a `{ stmt stmt ... }`-shaped block. A single statement with no
// attached comment is allowed to fold onto one line with the braces; anything else breaks one
// statement per line, indented by [Config.TabSpaces].
func (c *converter) convertBracedStmts(ctx context, tree *quill.Tree, open, closeTok string) *layout.Doc {
	var stmts []*quill.Tree
	hasComment := false
	for _, child := range tree.Children {
		if tc, ok := child.(quill.TreeChild); ok {
			stmts = append(stmts, tc.Tree)
		}
		if tok, ok := child.(quill.TokenChild); ok && (tok.Type == token.LineComment || tok.Type == token.BlockComment) {
			hasComment = true
		}
	}
	if len(stmts) == 0 {
		return layout.Text(open + closeTok)
	}

	// Under break suppression (an inline expression inside markup prose, spec.md §4.5) a hard
	// newline would split the text line this block lives on, so every statement is joined onto one
	// line regardless of count or attached comments.
	if ctx.breakSuppressed {
		var body *layout.Doc = layout.Nil
		for i, s := range stmts {
			if i > 0 {
				body = body.Append(layout.Text("; "))
			}
			body = body.Append(c.convert(ctx, s))
		}
		return layout.Concat(layout.Text(open+" "), body, layout.Text(" "+closeTok))
	}

	var body *layout.Doc = layout.Nil
	for i, s := range stmts {
		if i > 0 {
			body = body.Append(layout.Hardline)
		}
		body = body.Append(c.convert(ctx, s))
	}
	broken := layout.Concat(
		layout.Text(open),
		layout.Nest(c.cfg.TabSpaces(), layout.Concat(layout.Hardline, body)),
		layout.Hardline,
		layout.Text(closeTok),
	)
	if len(stmts) == 1 && !hasComment {
		flat := layout.Concat(layout.Text(open+" "), body, layout.Text(" "+closeTok))
		return layout.Group(layout.FlatAlt(flat, broken))
	}
	return broken
}

func (c *converter) convertParenthesized(ctx context, tree *quill.Tree) *layout.Doc {
	inner, ok := firstChildTree(tree)
	if !ok {
		return layout.Text("()")
	}
	if inner.Type == quill.KindParenthesized && !c.attrs.HasComment(inner) {
		return c.convert(ctx, inner)
	}
	ls := stylist.NewListStylist(c.cfg.TabSpaces())
	ls.PushItem(c.convert(ctx.withMode(ModeCodeCont), inner))
	style := stylist.DefaultListStyle()
	if omittableParens(inner.Type) {
		style.OmitDelimSingle = true
	}
	return ls.WithFoldStyle(stylist.FoldFit).Print(style)
}

func omittableParens(k quill.TreeKind) bool {
	switch k {
	case quill.KindArray, quill.KindDict, quill.KindDestructuring, quill.KindCodeBlock, quill.KindContentBlock:
		return true
	default:
		return false
	}
}

func firstChildTree(tree *quill.Tree) (*quill.Tree, bool) {
	for _, child := range quill.Children(tree) {
		if tc, ok := child.(quill.TreeChild); ok {
			return tc.Tree, true
		}
	}
	return nil, false
}

func (c *converter) convertArray(ctx context, tree *quill.Tree) *layout.Doc {
	items := ast.Array{Tree: tree}.Items()
	ls := c.buildList(ctx, tree, items)
	style := stylist.DefaultListStyle()
	if len(items) == 1 {
		style.AddTrailingSepSingle = true
	}
	return ls.Print(style)
}

func (c *converter) convertDict(ctx context, tree *quill.Tree) *layout.Doc {
	entries := ast.Dict{Tree: tree}.Entries()
	if len(entries) == 0 {
		return layout.Text("(:)")
	}
	onlySpreads := true
	for _, e := range entries {
		if e.Type != quill.KindSpread {
			onlySpreads = false
			break
		}
	}
	ls := c.buildList(ctx, tree, entries)
	style := stylist.DefaultListStyle()
	if onlySpreads {
		style.Open = "(:"
	}
	return ls.Print(style)
}

func (c *converter) convertDestructuring(ctx context, tree *quill.Tree) *layout.Doc {
	items := quill.Trees(tree, quill.KindDestructItem)
	ls := c.buildList(ctx, tree, items)
	style := stylist.DefaultListStyle()
	if len(items) == 1 {
		style.AddTrailingSepSingle = true
	}
	return ls.Print(style)
}

func (c *converter) convertParams(ctx context, tree *quill.Tree) *layout.Doc {
	items := quill.Trees(tree, quill.KindParam)
	if len(items) == 1 {
		if param := items[0]; param.Type == quill.KindParam {
			if ident, ok := firstChildTree(param); ok && ident.Type == quill.KindIdent && !c.attrs.HasComment(tree) {
				return layout.Concat(layout.Text("("), c.convert(ctx, ident), layout.Text(")"))
			}
		}
	}
	ls := c.buildList(ctx, tree, items)
	return ls.Print(stylist.DefaultListStyle())
}

func (c *converter) convertSpread(ctx context, tree *quill.Tree) *layout.Doc {
	inner, ok := firstChildTree(tree)
	if !ok {
		return layout.Text("..")
	}
	return layout.Concat(layout.Text(".."), c.convert(ctx, inner))
}

// buildList walks every child of tree in source order and folds it into a [stylist.ListStylist]:
// commas advance the separator state machine, source linebreaks are recorded for the
// blank-line-preserving logic, comments attach to the preceding item or detach, and each tree in
// items becomes a pushed item (anything else -- delimiters, the introducing keyword -- is
// skipped, since the stylist supplies its own delimiters).
func (c *converter) buildList(ctx context, tree *quill.Tree, items []*quill.Tree) *stylist.ListStylist {
	isItem := make(map[*quill.Tree]bool, len(items))
	for _, it := range items {
		isItem[it] = true
	}
	ls := stylist.NewListStylist(c.cfg.TabSpaces()).KeepLinebreaks(c.cfg.BlankLinesUpperBound())
	hasComment := false
	for _, child := range tree.Children {
		switch ch := child.(type) {
		case quill.TokenChild:
			switch ch.Type {
			case token.Comma:
				ls.SeparatorSeen()
			case token.Space:
				if n := strings.Count(ch.Literal, "\n"); n > 0 {
					ls.LinebreakSeen(n)
				}
			case token.LineComment:
				hasComment = true
				ls.PushComment(verbatim(ch.Literal), true)
			case token.BlockComment:
				ls.PushComment(verbatim(ch.Literal), false)
			}
		case quill.TreeChild:
			if isItem[ch.Tree] {
				ls.PushItem(c.convert(ctx.withMode(ModeCodeCont), ch.Tree))
			}
		}
	}
	fold := stylist.FoldFit
	if c.attrs.IsMultilineFlavor(tree) || hasComment {
		fold = stylist.FoldNever
	}
	return ls.WithFoldStyle(fold)
}

func (c *converter) convertNamedArg(ctx context, tree *quill.Tree) *layout.Doc {
	return c.convertFlow(ctx, tree)
}

func (c *converter) convertFieldAccess(ctx context, tree *quill.Tree) *layout.Doc {
	chain := stylist.NewChainStylist(c.cfg.TabSpaces(), c.cfg.ChainWidth())
	flattenFieldAccess(ctx, c, tree, chain)
	return chain.Print(stylist.ChainStyle{NoBreakSingle: true})
}

func flattenFieldAccess(ctx context, c *converter, tree *quill.Tree, chain *stylist.ChainStylist) {
	children := quill.Children(tree)
	var base *quill.Tree
	var field *quill.Tree
	for _, child := range children {
		if tc, ok := child.(quill.TreeChild); ok {
			if base == nil {
				base = tc.Tree
			} else {
				field = tc.Tree
			}
		}
	}
	if base != nil && base.Type == quill.KindFieldAccess {
		flattenFieldAccess(ctx, c, base, chain)
	} else if base != nil {
		chain.PushBody(c.convert(ctx, base))
	}
	chain.PushOp(layout.Text("."))
	if field != nil {
		chain.PushBody(c.convert(ctx, field))
	}
}

func (c *converter) convertFuncCall(ctx context, tree *quill.Tree) *layout.Doc {
	f := ast.FuncCall{Tree: tree}
	callee, _ := f.Callee()
	args, hasArgs := f.Args()

	var calleeDoc *layout.Doc
	if callee != nil && callee.Type == quill.KindFieldAccess && dotDepth(callee) >= 2 && !c.attrs.HasComment(callee) {
		calleeDoc = c.convertFieldAccess(ctx, callee)
	} else if callee != nil {
		calleeDoc = c.convert(ctx, callee)
	} else {
		calleeDoc = layout.Nil
	}

	if !hasArgs {
		return calleeDoc
	}
	if ctx.isMath() {
		return calleeDoc.Append(c.convertArgsInMath(ctx, args))
	}
	if isTableCallee(callee) {
		if cols, ok := c.tableColumns(args); ok {
			return calleeDoc.Append(c.convertTable(ctx, args, cols))
		}
	}
	return calleeDoc.Append(c.convertArgs(ctx, args))
}

// isTableCallee reports whether callee is a bare identifier named "table" or "grid", the two
// builtins whose positional arguments this module is willing to reflow into fixed-width columns.
func isTableCallee(callee *quill.Tree) bool {
	if callee == nil || callee.Type != quill.KindIdent {
		return false
	}
	name := callee.Text()
	return name == "table" || name == "grid"
}

func dotDepth(tree *quill.Tree) int {
	depth := 0
	for tree != nil && tree.Type == quill.KindFieldAccess {
		depth++
		base, _ := firstChildTree(tree)
		tree = base
	}
	return depth
}

func (c *converter) convertArgs(ctx context, args *quill.Tree) *layout.Doc {
	var items []*quill.Tree
	for _, child := range quill.Children(args) {
		if tc, ok := child.(quill.TreeChild); ok {
			items = append(items, tc.Tree)
		}
	}
	ls := c.buildList(ctx, args, items)
	style := stylist.DefaultListStyle()
	if fold, ok := suggestArgsFoldStyle(items); ok {
		ls.WithFoldStyle(fold)
		style.ArgsWidth = c.cfg.Width()
	}
	return ls.Print(style)
}

// isBlockyArg reports whether tree is one of the argument shapes the folding heuristic below
// treats as "blocky": constructs built from their own braced or keyword-delimited body, where
// breaking the call around them buys nothing because the body already carries its own line
// breaks.
func isBlockyArg(tree *quill.Tree) bool {
	if tree == nil {
		return false
	}
	switch tree.Type {
	case quill.KindCodeBlock, quill.KindConditional, quill.KindWhileLoop, quill.KindForLoop,
		quill.KindContextual, quill.KindClosure:
		return true
	default:
		return false
	}
}

// isCombinableArg reports whether tree, as the final argument of a call, can absorb the call's
// trailing shape without a surrounding group of its own: a content block with real content, a
// non-empty array or dict, a parenthesized expression, a nested call that itself takes arguments,
// or anything blocky.
func isCombinableArg(tree *quill.Tree) bool {
	if tree == nil {
		return false
	}
	switch tree.Type {
	case quill.KindContentBlock:
		n := 0
		for _, child := range quill.Children(tree) {
			if _, ok := child.(quill.TreeChild); ok {
				n++
			}
		}
		return n >= 2
	case quill.KindArray:
		return len(ast.Array{Tree: tree}.Items()) >= 1
	case quill.KindDict:
		return len(ast.Dict{Tree: tree}.Entries()) >= 1
	case quill.KindParenthesized:
		return true
	case quill.KindFuncCall:
		return funcCallIsCombinable(tree)
	default:
		return isBlockyArg(tree)
	}
}

// funcCallIsCombinable approximates the dot-chain-aware check the heuristic is modeled on: a call
// is combinable when it carries its own non-empty argument list, since that list can absorb the
// outer call's trailing shape the same way a content block or array would. Calls reached through a
// long field-access chain are not distinguished from plain ones, a deliberate simplification.
func funcCallIsCombinable(tree *quill.Tree) bool {
	f := ast.FuncCall{Tree: tree}
	args, ok := f.Args()
	if !ok {
		return false
	}
	_, hasArg := firstChildTree(args)
	return hasArg
}

// unwrapArgExpr unwraps a named argument or spread to the expression it carries, so the
// blocky/combinable classification looks at the underlying value rather than the wrapper node.
func unwrapArgExpr(tree *quill.Tree) *quill.Tree {
	if tree == nil {
		return tree
	}
	switch tree.Type {
	case quill.KindNamedArg, quill.KindSpread:
		if v, ok := lastChildTree(tree); ok {
			return v
		}
	}
	return tree
}

// suggestArgsFoldStyle classifies a parenthesized call's argument list and reports the fold style
// it suggests, for the two shapes that override buildList's ordinary fit/never default:
//
//   - a single blocky argument (the call's only argument) always folds flat onto one line, since
//     breaking around it would only indent the blocky construct's own braces for no benefit;
//   - a run of simple, non-blocky leading arguments followed by a combinable final argument folds
//     compact, keeping everything but that last argument on the call's opening line.
//
// The second return value is false when neither shape applies and the caller's existing default
// fold style should stand.
func suggestArgsFoldStyle(items []*quill.Tree) (stylist.FoldStyle, bool) {
	if len(items) == 0 {
		return stylist.FoldFit, false
	}
	if len(items) == 1 {
		if isBlockyArg(unwrapArgExpr(items[0])) {
			return stylist.FoldAlways, true
		}
		return stylist.FoldFit, false
	}

	var seenArray, seenDict bool
	for i, item := range items {
		expr := unwrapArgExpr(item)
		if i != len(items)-1 {
			if isBlockyArg(expr) {
				return stylist.FoldFit, false
			}
			switch expr.Type {
			case quill.KindArray:
				seenArray = true
			case quill.KindDict:
				seenDict = true
			}
			continue
		}
		if (expr.Type == quill.KindArray && seenArray) || (expr.Type == quill.KindDict && seenDict) {
			return stylist.FoldFit, false
		}
		if isCombinableArg(expr) {
			return stylist.FoldCompact, true
		}
	}
	return stylist.FoldFit, false
}

func (c *converter) convertArgsInMath(ctx context, args *quill.Tree) *layout.Doc {
	plain := stylist.NewPlainStylist(c.cfg.BlankLinesUpperBound())
	for _, child := range args.Children {
		switch ch := child.(type) {
		case quill.TreeChild:
			plain.PushItem(c.convert(ctx, ch.Tree))
		case quill.TokenChild:
			switch ch.Type {
			case token.Comma:
				plain.PushComma()
			case token.Space:
				if n := strings.Count(ch.Literal, "\n"); n > 0 {
					plain.PushLinebreak(n)
				}
			case token.LineComment:
				plain.PushLineComment(verbatim(ch.Literal))
			case token.BlockComment:
				plain.PushBlockComment(verbatim(ch.Literal))
			}
		}
	}
	return layout.Concat(layout.Text("("), plain.Print(), layout.Text(")"))
}

// tableColumns reports the column count to reflow a table/grid-like call's positional arguments
// into. A literal or statically-evaluable `columns:` argument sets the count directly; `auto` and a
// bare call with no `columns:` at all both default to 1. A spread argument makes the count
// ambiguous (the columns may be hiding inside it), so that reports false, as does a `columns:`
// value this module cannot evaluate.
func (c *converter) tableColumns(args *quill.Tree) (int, bool) {
	var columnsExpr *quill.Tree
	hasBlockComment := false
	hasSpread := false
	for _, child := range args.Children {
		tc, ok := child.(quill.TreeChild)
		if !ok {
			if tok, ok := child.(quill.TokenChild); ok && tok.Type == token.BlockComment {
				hasBlockComment = true
			}
			continue
		}
		if tc.Type == quill.KindSpread {
			hasSpread = true
		}
		if tc.Type == quill.KindNamedArg {
			if ident, ok := firstChildTree(tc.Tree); ok && ident.Type == quill.KindIdent && ident.Text() == "columns" {
				if val, ok := lastChildTree(tc.Tree); ok {
					columnsExpr = val
				}
			}
		}
	}
	if hasBlockComment || hasSpread {
		return 0, false
	}
	if columnsExpr == nil {
		return 1, true
	}
	if columnsExpr.Type == quill.KindAuto {
		return 1, true
	}
	v, err := liteval.Eval(columnsExpr)
	if err != nil {
		return 0, false
	}
	switch v.Kind {
	case liteval.KindInt:
		if v.Int <= 0 {
			return 0, false
		}
		return int(v.Int), true
	case liteval.KindArray:
		if v.Len <= 0 {
			return 0, false
		}
		return v.Len, true
	default:
		return 0, false
	}
}

func lastChildTree(tree *quill.Tree) (*quill.Tree, bool) {
	children := quill.Children(tree)
	for i := len(children) - 1; i >= 0; i-- {
		if tc, ok := children[i].(quill.TreeChild); ok {
			return tc.Tree, true
		}
	}
	return nil, false
}

// convertTable reflows a call's positional arguments into fixed-width rows via
// [stylist.TableCollector]; named arguments and spreads still print on their own row.
func (c *converter) convertTable(ctx context, args *quill.Tree, columns int) *layout.Doc {
	tc := stylist.NewTableCollector(columns)
	for _, child := range args.Children {
		switch ch := child.(type) {
		case quill.TreeChild:
			switch ch.Type {
			case quill.KindNamedArg, quill.KindSpread:
				tc.PushRow(c.convert(ctx.withMode(ModeCodeCont), ch.Tree))
			default:
				tc.PushCell(c.convert(ctx.withMode(ModeCodeCont), ch.Tree))
			}
		case quill.TokenChild:
			switch ch.Type {
			case token.Space:
				if n := strings.Count(ch.Literal, "\n"); n > 0 {
					tc.PushNewline(n)
				}
			case token.LineComment:
				tc.PushComment(verbatim(ch.Literal))
			case token.BlockComment:
				tc.PushComment(verbatim(ch.Literal))
			}
		}
	}
	body := tc.Collect()
	return layout.Concat(
		layout.Text("("),
		layout.Nest(c.cfg.TabSpaces(), layout.Concat(layout.Hardline, body)),
		layout.Hardline,
		layout.Text(")"),
	)
}

func (c *converter) convertClosure(ctx context, tree *quill.Tree) *layout.Doc {
	cl := ast.Closure{Tree: tree}
	flow := stylist.NewFlowStylist()
	if params, ok := cl.Params(); ok {
		flow.PushTight(c.convert(ctx, params))
	}
	flow.PushSpaced(layout.Text("=>"))
	if body, ok := cl.Body(); ok {
		flow.PushSpaced(c.convert(ctx.withMode(ModeCode), body))
	}
	return flow.Doc()
}

func (c *converter) convertUnary(ctx context, tree *quill.Tree) *layout.Doc {
	var opText string
	var operand *quill.Tree
	for _, child := range quill.Children(tree) {
		switch ch := child.(type) {
		case quill.TokenChild:
			if ch.Type != token.Space {
				opText = ch.String()
			}
		case quill.TreeChild:
			operand = ch.Tree
		}
	}
	doc := c.convert(ctx, operand)
	if opText == "not" {
		return layout.Concat(layout.Text("not "), doc)
	}
	return layout.Concat(layout.Text(opText), doc)
}

func (c *converter) convertBinary(ctx context, tree *quill.Tree) *layout.Doc {
	chain := stylist.NewChainStylist(c.cfg.TabSpaces(), c.cfg.ChainWidth())
	c.flattenBinary(ctx, tree, chain, binaryOp(tree))
	return chain.Print(stylist.ChainStyle{SpaceAroundOp: true})
}

// binaryOp returns the operator token kind of a binary expression's top-level operator.
func binaryOp(tree *quill.Tree) token.Kind {
	for _, child := range quill.Children(tree) {
		if tc, ok := child.(quill.TokenChild); ok && !tc.IsTrivia() {
			return tc.Type
		}
	}
	return token.ERROR
}

// flattenBinary collapses a run of same-precedence binary operators into one ChainStylist, so
// `a + b + c` prints as one chain instead of nested binaries each with their own group.
func (c *converter) flattenBinary(ctx context, tree *quill.Tree, chain *stylist.ChainStylist, op token.Kind) {
	var left, right *quill.Tree
	var opTok token.Token
	for _, child := range quill.Children(tree) {
		switch ch := child.(type) {
		case quill.TreeChild:
			if left == nil {
				left = ch.Tree
			} else {
				right = ch.Tree
			}
		case quill.TokenChild:
			if !ch.IsTrivia() {
				opTok = ch.Token
			}
		}
	}
	if left != nil && left.Type == quill.KindBinary && binaryOp(left) == op && !isAssignOp(opTok.Type) {
		c.flattenBinary(ctx, left, chain, op)
	} else if left != nil {
		chain.PushBody(c.convert(ctx, left))
	}
	chain.PushOp(layout.Text(opTok.String()))
	if right != nil {
		chain.PushBody(c.convert(ctx, right))
	}
}

func isAssignOp(k token.Kind) bool {
	switch k {
	case token.Assign, token.PlusEq, token.MinusEq, token.StarEq, token.SlashEq:
		return true
	default:
		return false
	}
}

func (c *converter) convertImport(ctx context, tree *quill.Tree) *layout.Doc {
	imp := ast.Import{Tree: tree}
	items := imp.Items()
	if len(items) == 0 || c.attrs.HasComment(tree) || !c.cfg.ReorderImports() {
		return c.convertFlow(ctx, tree)
	}
	if hasDuplicateNames(items) {
		return c.convertFlow(ctx, tree)
	}
	sorted := make([]*quill.Tree, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Text() < sorted[j].Text() })

	var prefix *layout.Doc = layout.Nil
	seenColon := false
	flow := stylist.NewFlowStylist()
	idx := 0
	for _, child := range quill.Children(tree) {
		switch ch := child.(type) {
		case quill.TokenChild:
			if ch.Type == token.Space {
				continue
			}
			if ch.Type == token.Colon {
				seenColon = true
			}
			if !seenColon {
				prefix = prefix.Append(layout.Text(" " + ch.String()))
			} else {
				flow.PushSpaced(layout.Text(ch.String()))
			}
		case quill.TreeChild:
			if ch.Type == quill.KindImportItem {
				flow.Push(c.convert(ctx, sorted[idx]), true, true)
				idx++
			} else if !seenColon {
				prefix = prefix.Append(layout.Text(" " + c.textOf(ch.Tree)))
			} else {
				flow.Push(c.convert(ctx, ch.Tree), true, true)
			}
		}
	}
	return layout.Concat(layout.Text("import"), prefix, flow.Doc())
}

func (c *converter) textOf(tree *quill.Tree) string { return tree.Text() }

func hasDuplicateNames(items []*quill.Tree) bool {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		text := it.Text()
		if seen[text] {
			return true
		}
		seen[text] = true
	}
	return false
}
