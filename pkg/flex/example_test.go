package flex_test

import (
	"fmt"

	"github.com/matzehuels/flexline/pkg/flex"
)

func ExampleCompute() {
	items := []flex.Item{
		flex.NewItem("a", flex.Box(50, 20)),
		flex.NewItem("b", flex.Box(50, 20)),
		flex.NewItem("c", flex.Box(50, 20)),
	}
	items[2].FlexGrow = 1

	res, frames, err := flex.Compute(flex.Config{Wrap: flex.WrapNormal},
		items, flex.ExactSpec(120), flex.UnspecifiedSpec())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("container %dx%d, %d lines\n", res.Width, res.Height, len(res.Lines))
	for _, f := range frames {
		fmt.Printf("%s: %d,%d %dx%d line %d\n", f.ID, f.Rect.X, f.Rect.Y, f.Rect.Width, f.Rect.Height, f.Line)
	}
	// Output:
	// container 120x40, 2 lines
	// a: 0,0 50x20 line 0
	// b: 50,0 50x20 line 0
	// c: 0,20 120x20 line 1
}

func ExampleEngine_Measure() {
	items := []flex.Item{
		flex.NewItem("a", flex.Box(100, 10)),
		flex.NewItem("b", flex.Box(100, 10)),
	}
	items[0].MinWidth = 80

	e, _ := flex.New(flex.Config{})
	res, _ := e.Measure(items, flex.ExactSpec(150), flex.AtMostSpec(40))
	for i := range items {
		w, _ := e.ItemSize(i)
		fmt.Println(items[i].ID, w)
	}
	fmt.Println("height", res.Height)
	// Output:
	// a 80
	// b 70
	// height 10
}
