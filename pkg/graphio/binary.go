// Package graphio reads and writes graph edge lists in the two
// formats the testbed tools exchange: a packed binary format for
// generated graph files and a small text format for inspection.
//
// The binary format is a scratch exchange between sibling tools on
// one machine, so words are host-native byte order:
//
//	uint32 V          number of vertices
//	uint32 E          number of edges
//	uint32[E] packed  one word per edge
//
// Each packed word holds the destination vertex in its low 16 bits
// and the source vertex in its high 16 bits, capping V below 2^16.
// A stream may hold several graphs back to back; each ReadBinary
// call consumes exactly one.
//
// The text format is two lines:
//
//	V=<int>
//	E={u1>v1,u2>v2,...}
//
// where u>v denotes the directed edge u -> v.
package graphio

import (
	"encoding/binary"
	"io"

	"github.com/otobench/otobench/pkg/digraph"
	"github.com/otobench/otobench/pkg/errors"
)

// maxVertices caps V for the packed binary format: vertex ids must
// fit in 16 bits.
const maxVertices = 1 << 16

// Graph is a decoded edge list with its vertex count.
type Graph struct {
	V     int
	Edges []digraph.Edge
}

// ReadBinary decodes one graph from r, leaving the reader
// positioned at the next graph in the stream. Short or malformed
// input yields a CORRUPT_INPUT error.
func ReadBinary(r io.Reader) (Graph, error) {
	var header [2]uint32
	if err := binary.Read(r, binary.NativeEndian, &header); err != nil {
		return Graph{}, errors.Wrap(errors.ErrCodeCorruptInput, err, "reading graph header")
	}
	v, e := int(header[0]), int(header[1])
	if v >= maxVertices {
		return Graph{}, errors.New(errors.ErrCodeCorruptInput, "vertex count %d exceeds format cap %d", v, maxVertices)
	}

	packed := make([]uint32, e)
	if err := binary.Read(r, binary.NativeEndian, packed); err != nil {
		return Graph{}, errors.Wrap(errors.ErrCodeCorruptInput, err, "reading %d packed edges", e)
	}

	g := Graph{V: v, Edges: make([]digraph.Edge, e)}
	for i, word := range packed {
		g.Edges[i] = digraph.Edge{
			From: int(word >> 16),
			To:   int(word & 0xFFFF),
		}
	}
	return g, nil
}

// WriteBinary encodes one graph onto w. Returns INVALID_ARGUMENT
// when a vertex id does not fit the packed format.
func WriteBinary(w io.Writer, g Graph) error {
	if g.V >= maxVertices {
		return errors.New(errors.ErrCodeInvalidArgument, "vertex count %d exceeds format cap %d", g.V, maxVertices)
	}
	header := [2]uint32{uint32(g.V), uint32(len(g.Edges))}
	if err := binary.Write(w, binary.NativeEndian, header); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "writing graph header")
	}

	packed := make([]uint32, len(g.Edges))
	for i, e := range g.Edges {
		if e.From < 0 || e.From >= g.V || e.To < 0 || e.To >= g.V {
			return errors.New(errors.ErrCodeInvalidArgument, "edge %d->%d outside vertex range %d", e.From, e.To, g.V)
		}
		packed[i] = uint32(e.From)<<16 | uint32(e.To)
	}
	if err := binary.Write(w, binary.NativeEndian, packed); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "writing %d packed edges", len(packed))
	}
	return nil
}
