package domain

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint computes a stable hash of the graph structure: node order,
// ops, targets, arguments and attributes. Two graphs with the same
// fingerprint lower to the same artifact, so a stored snapshot is valid
// exactly as long as the fingerprint matches.
func (g *Graph) Fingerprint() string {
	h := xxhash.New()

	for n := range g.Walk() {
		writeString(h, n.Name.String())
		writeString(h, string(n.Op))
		writeString(h, n.Target.String())

		_ = binary.Write(h, binary.LittleEndian, uint64(len(n.Args)))
		for _, arg := range n.Args {
			writeString(h, arg.String())
		}

		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		_ = binary.Write(h, binary.LittleEndian, uint64(len(keys)))
		for _, k := range keys {
			writeString(h, k)
			_ = binary.Write(h, binary.LittleEndian, math.Float64bits(n.Attrs[k]))
		}
	}

	return fmt.Sprintf("%016x", h.Sum64())
}

// writeString writes a length-prefixed string to avoid ambiguity between
// adjacent fields.
func writeString(h *xxhash.Digest, s string) {
	_ = binary.Write(h, binary.LittleEndian, uint64(len(s)))
	_, _ = h.WriteString(s)
}
