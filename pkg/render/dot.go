// Package render turns graphs into Graphviz DOT and SVG output for
// inspection: small generated DAGs and the orders the algorithms
// maintain over them are much easier to discuss as pictures.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/otobench/otobench/pkg/digraph"
)

// Options configures DOT conversion.
type Options struct {
	// Order labels every vertex with its priority rank when
	// non-nil. Index i holds the rank of vertex i.
	Order []int

	// RankByOrder additionally constrains the layout left to right
	// by priority rank, so the drawing reads as the maintained
	// order.
	RankByOrder bool
}

// ToDOT converts a graph to Graphviz DOT format. The resulting DOT
// string can be rendered with [SVG].
func ToDOT(g *digraph.Digraph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for v := 0; v < g.NumVertices(); v++ {
		if opts.Order != nil {
			fmt.Fprintf(&buf, "  %d [label=\"%d\\nord %d\"];\n", v, v, opts.Order[v])
		} else {
			fmt.Fprintf(&buf, "  %d;\n", v)
		}
	}

	buf.WriteString("\n")
	for v := 0; v < g.NumVertices(); v++ {
		for _, w := range g.Out(v) {
			fmt.Fprintf(&buf, "  %d -> %d;\n", v, w)
		}
	}

	if opts.RankByOrder && opts.Order != nil {
		buf.WriteString("\n")
		pos := make([]int, len(opts.Order))
		for v, r := range opts.Order {
			if r >= 0 && r < len(pos) {
				pos[r] = v
			}
		}
		for r := 1; r < len(pos); r++ {
			fmt.Fprintf(&buf, "  %d -> %d [style=invis];\n", pos[r-1], pos[r])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
