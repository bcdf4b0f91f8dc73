package render

import (
	"strings"
	"testing"
)

func TestToDOT(t *testing.T) {
	dot := ToDOT(testLayout(), DOTOptions{})

	for _, want := range []string{
		"digraph G {",
		`"container" -> "line:0";`,
		`"container" -> "line:1";`,
		`"line:0" -> "item:a";`,
		`"line:0" -> "item:b";`,
		`"line:1" -> "item:c";`,
		`"container" -> "item:d";`,
		`"item:b" [label="<b>"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\nGot:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "spacer") {
		t.Error("spacers shown without Detailed")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testLayout(), DOTOptions{Detailed: true})

	for _, want := range []string{
		`"spacer-0" [label="spacer 0"`,
		`label="line 1\nmain 120, cross 20"`,
		`label="c\n0,20 120x20"`,
		`label="d\ngone"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\nGot:\n%s", want, dot)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() changed svg without viewBox: %s", got)
	}
}
