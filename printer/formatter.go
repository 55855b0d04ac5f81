package printer

import (
	"io"
	"strings"

	"github.com/quillfmt/quill"
	"github.com/quillfmt/quill/internal/layout"
)

// Formatter renders source text through the layout engine with a fixed [Config]. A Formatter
// holds no per-document state, so the same value can format many documents concurrently.
type Formatter struct {
	cfg Config
}

// New returns a Formatter that renders with cfg.
func New(cfg Config) *Formatter {
	return &Formatter{cfg: cfg}
}

// FormatContent reads src in full, parses it, and returns the formatted text. A [*SyntaxError] is
// returned (wrapping every recovered parser error) when src fails to parse; the returned string is
// empty in that case.
func (f *Formatter) FormatContent(src io.Reader) (string, error) {
	p := quill.NewParser(src)
	root := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		return "", &SyntaxError{Errs: errs}
	}
	return f.render(root)
}

// FormatSource formats the string src, a convenience wrapper over [Formatter.FormatContent].
func (f *Formatter) FormatSource(src string) (string, error) {
	return f.FormatContent(strings.NewReader(src))
}

// FormatWithWidth formats src with width substituted for the Formatter's configured
// [Config.Width], leaving every other setting unchanged.
func (f *Formatter) FormatWithWidth(src string, width int) (string, error) {
	f2 := &Formatter{cfg: f.cfg.WithWidth(width)}
	return f2.FormatSource(src)
}

// FormatSourceRange formats only the smallest syntax node that covers [start, end) (a half-open
// byte range into src), returning the formatted replacement together with the byte range of src it
// replaces. See [formatRange] for the full algorithm.
func (f *Formatter) FormatSourceRange(src string, start, end int) (FormattedRange, error) {
	return formatRange(f.cfg, src, start, end)
}

// render lays out root and post-processes the result per the whole-source output contract: every
// line loses its trailing whitespace, and the text ends in exactly one newline (an empty document
// renders as a single newline). Range-based formatting ([formatRange]) does not go through render,
// since it splices a rendered node back into an untouched surrounding file and must not introduce
// whitespace the caller didn't ask for.
func (f *Formatter) render(root *quill.Tree) (string, error) {
	conv := newConverter(f.cfg, root)
	doc := conv.convert(rootContext(), root)
	out, err := layout.Render(doc, f.cfg.Width())
	if err != nil {
		return "", err
	}
	return trimTrailingWhitespace(out), nil
}

// trimTrailingWhitespace strips trailing spaces/tabs from every line and collapses any run of
// trailing newlines to exactly one, so the result always ends in a single "\n" -- including for an
// empty input, which renders as "\n" alone.
func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}

// Dump renders src's layout document using format instead of the normal text renderer, for
// inspecting a document's shape (the node tree, or the Go expression that reconstructs it) without
// going through [Formatter.FormatContent].
func (f *Formatter) Dump(src io.Reader, format layout.Format) (string, error) {
	p := quill.NewParser(src)
	root := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		return "", &SyntaxError{Errs: errs}
	}
	conv := newConverter(f.cfg, root)
	doc := conv.convert(rootContext(), root)
	switch format {
	case layout.Tree:
		return layout.DumpTree(doc), nil
	case layout.Go:
		return doc.GoString(), nil
	default:
		return layout.Render(doc, f.cfg.Width())
	}
}
