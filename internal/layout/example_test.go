package layout_test

import (
	"fmt"

	"github.com/quillfmt/quill/internal/layout"
)

func Example() {
	entries := []*layout.Doc{
		layout.Text(`Name: "Alice",`),
		layout.Text("Age: 30,"),
		layout.Text(`Email: "alice@example.com"`),
	}

	var body []*layout.Doc
	for i, e := range entries {
		if i > 0 {
			body = append(body, layout.FlatAlt(layout.Text(" "), layout.Hardline))
		}
		body = append(body, e)
	}

	d := layout.Concat(
		layout.Text("person := Person{"),
		layout.Group(layout.Concat(
			layout.Nest(1, layout.Concat(layout.Hardline, layout.Concat(body...))),
			layout.Hardline,
		)),
		layout.Text("}"),
	)
	out, err := layout.Render(d, 40)
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output:
	// person := Person{
	//  Name: "Alice",
	//  Age: 30,
	//  Email: "alice@example.com"
	// }
}
