package store

import (
	"github.com/dshills/tupshar/internal/cdl"
)

// insertAt returns a new sequence with node placed at index p and every node
// from p onward shifted one position right. p must satisfy 1 <= p < len(seq).
func insertAt(seq []cdl.Node, p int, node cdl.Node) []cdl.Node {
	out := make([]cdl.Node, 0, len(seq)+1)
	out = append(out, seq[:p]...)
	out = append(out, cdl.Reposition(node, p))
	for i, n := range seq[p:] {
		out = append(out, cdl.Reposition(n, p+i+1))
	}
	return out
}

// appendAt returns a new sequence with node appended and repositioned to the
// old sequence length.
func appendAt(seq []cdl.Node, node cdl.Node) []cdl.Node {
	out := make([]cdl.Node, 0, len(seq)+1)
	out = append(out, seq...)
	return append(out, cdl.Reposition(node, len(seq)))
}

// removeAt returns a new sequence without index p. Nodes after p move one
// position left; removing the last node is a plain truncation.
func removeAt(seq []cdl.Node, p int) []cdl.Node {
	if p == len(seq)-1 {
		return append([]cdl.Node(nil), seq[:p]...)
	}

	out := make([]cdl.Node, 0, len(seq)-1)
	out = append(out, seq[:p]...)
	for i, n := range seq[p+1:] {
		out = append(out, cdl.Reposition(n, p+i))
	}
	return out
}

// replaceAt returns a new sequence with index p replaced by node.
func replaceAt(seq []cdl.Node, p int, node cdl.Node) []cdl.Node {
	out := append([]cdl.Node(nil), seq...)
	out[p] = cdl.Reposition(node, p)
	return out
}

// renumber returns seq with every lemma's position set to its index and its
// line set to line.
func renumber(line int, seq []cdl.Node) []cdl.Node {
	out := make([]cdl.Node, len(seq))
	for i, n := range seq {
		if l, ok := n.(cdl.Lemma); ok {
			out[i] = l.WithAddress(line, i)
			continue
		}
		out[i] = n
	}
	return out
}
