package layout_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/quillfmt/quill/internal/layout"
)

func TestRender(t *testing.T) {
	tests := map[string]struct {
		in    *layout.Doc
		width int
		want  string
	}{
		"Nil": {
			in:    layout.Nil,
			width: 80,
			want:  "",
		},
		"Text": {
			in:    layout.Text("hello"),
			width: 80,
			want:  "hello",
		},
		"GroupFitsFlat": {
			in: layout.Group(layout.Concat(
				layout.Text("0123"),
				layout.FlatAlt(layout.Text(" "), layout.Hardline),
				layout.Text("4567"),
			)),
			width: 20,
			want:  "0123 4567",
		},
		"GroupBreaksWhenTooWide": {
			in: layout.Group(layout.Concat(
				layout.Text("0123456"),
				layout.FlatAlt(layout.Text(" "), layout.Hardline),
				layout.Text("789"),
			)),
			width: 8,
			want:  "0123456\n789",
		},
		"NestIndentsAfterHardline": {
			in: layout.Concat(
				layout.Text("a"),
				layout.Nest(2, layout.Concat(layout.Hardline, layout.Text("b"))),
			),
			width: 80,
			want:  "a\n  b",
		},
		"UnionPicksFirstWhenFirstLineFits": {
			in: layout.Union(
				layout.Concat(layout.Text("call("), layout.Hardline, layout.Text("...)")),
				layout.Text("call(...)"),
			),
			width: 20,
			want:  "call(\n...)",
		},
		"UnionFallsBackWhenFirstLineTooWide": {
			in: layout.Union(
				layout.Concat(layout.Text("0123456789"), layout.Hardline, layout.Text("x")),
				layout.Text("short"),
			),
			width: 5,
			want:  "short",
		},
		"ColumnSeesCurrentColumn": {
			in: layout.Concat(
				layout.Text("ab"),
				layout.Column(func(col int) *layout.Doc {
					if col == 2 {
						return layout.Text("!")
					}
					return layout.Text("?")
				}),
			),
			width: 80,
			want:  "ab!",
		},
		"NestingSeesCurrentIndent": {
			in: layout.Nest(3, layout.Nesting(func(indent int) *layout.Doc {
				if indent == 3 {
					return layout.Text("ok")
				}
				return layout.Text("bad")
			})),
			width: 80,
			want:  "ok",
		},
		"AnnotateIsTransparent": {
			in:    layout.Annotate("marker", layout.Text("hi")),
			width: 80,
			want:  "hi",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := layout.Render(test.in, test.width)

			assert.NoErrorf(t, err, "Render(%#v, %d)", test.in, test.width)
			assert.Equals(t, got, test.want, "Render(%#v, %d)", test.in, test.width)
		})
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	d := layout.Group(layout.Concat(
		layout.Text("x := "),
		layout.Group(layout.Concat(
			layout.Text("["),
			layout.Nest(1, layout.Concat(
				layout.FlatAlt(layout.Nil, layout.Hardline),
				layout.Text("1,"),
				layout.FlatAlt(layout.Text(" "), layout.Hardline),
				layout.Text("2,"),
			)),
			layout.FlatAlt(layout.Nil, layout.Hardline),
			layout.Text("]"),
		)),
	))

	first, err := layout.Render(d, 10)
	assert.NoErrorf(t, err, "Render(d, 10)")
	second, err := layout.Render(d, 10)
	assert.NoErrorf(t, err, "Render(d, 10)")

	assert.Equals(t, second, first, "Render must be deterministic across repeated calls on the same Doc")
}
