package render

import (
	"strings"
	"testing"

	"github.com/otobench/otobench/pkg/digraph"
)

func TestToDOT(t *testing.T) {
	g := digraph.New(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)

	dot := ToDOT(g, Options{})
	for _, want := range []string{"digraph G {", "0 -> 1;", "1 -> 2;"} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "ord") {
		t.Error("DOT output has order labels without an order")
	}
}

func TestToDOTWithOrder(t *testing.T) {
	g := digraph.New(3)
	g.AddEdge(2, 0)

	dot := ToDOT(g, Options{Order: []int{1, 2, 0}, RankByOrder: true})
	for _, want := range []string{`label="0\nord 1"`, `label="2\nord 0"`, "[style=invis]"} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}
