package graphio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/otobench/otobench/pkg/digraph"
	"github.com/otobench/otobench/pkg/errors"
)

// WriteText encodes a graph in the two-line text format.
func WriteText(w io.Writer, g Graph) error {
	var b strings.Builder
	fmt.Fprintf(&b, "V=%d\n", g.V)
	b.WriteString("E={")
	for i, e := range g.Edges {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d>%d", e.From, e.To)
	}
	b.WriteString("}\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "writing text graph")
	}
	return nil
}

// ReadText decodes a graph from the two-line text format.
func ReadText(r io.Reader) (Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	vLine, err := nextLine(sc)
	if err != nil {
		return Graph{}, err
	}
	vStr, ok := strings.CutPrefix(vLine, "V=")
	if !ok {
		return Graph{}, errors.New(errors.ErrCodeCorruptInput, "expected V=<int>, got %q", vLine)
	}
	v, err := strconv.Atoi(strings.TrimSpace(vStr))
	if err != nil || v < 0 {
		return Graph{}, errors.New(errors.ErrCodeCorruptInput, "invalid vertex count %q", vStr)
	}

	eLine, err := nextLine(sc)
	if err != nil {
		return Graph{}, err
	}
	body, ok := strings.CutPrefix(eLine, "E=")
	if !ok {
		return Graph{}, errors.New(errors.ErrCodeCorruptInput, "expected E={...}, got %q", eLine)
	}
	body = strings.TrimSpace(body)
	if !strings.HasPrefix(body, "{") || !strings.HasSuffix(body, "}") {
		return Graph{}, errors.New(errors.ErrCodeCorruptInput, "edge list not braced: %q", body)
	}
	body = strings.TrimSpace(body[1 : len(body)-1])

	g := Graph{V: v}
	if body == "" {
		return g, nil
	}
	for _, part := range strings.Split(body, ",") {
		from, to, ok := strings.Cut(strings.TrimSpace(part), ">")
		if !ok {
			return Graph{}, errors.New(errors.ErrCodeCorruptInput, "malformed edge %q", part)
		}
		u, err1 := strconv.Atoi(strings.TrimSpace(from))
		w, err2 := strconv.Atoi(strings.TrimSpace(to))
		if err1 != nil || err2 != nil || u < 0 || u >= v || w < 0 || w >= v {
			return Graph{}, errors.New(errors.ErrCodeCorruptInput, "edge %q outside vertex range %d", part, v)
		}
		g.Edges = append(g.Edges, digraph.Edge{From: u, To: w})
	}
	return g, nil
}

func nextLine(sc *bufio.Scanner) (string, error) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			return line, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", errors.Wrap(errors.ErrCodeCorruptInput, err, "reading text graph")
	}
	return "", errors.New(errors.ErrCodeCorruptInput, "unexpected end of input")
}
