// Package levenshtein implements the sparse-vector Levenshtein automaton and
// the DFA lazily compiled from it. The automaton computes bounded
// edit-distance states incrementally, one input rune at a time; the
// DFA cache makes repeated traversals of the same pattern/budget pair reuse
// identical states instead of recomputing them, and is the mechanism the
// trie walker (internal/trie) rides for prefix and fuzzy expansion.
package levenshtein

import "strings"

// Pair is one (position, edit-distance) entry of a sparse vector.
type Pair struct {
	Index int
	Value int
}

// SparseVector is a sorted-by-Index, immutable-after-construction Levenshtein
// automaton state: the set of pattern positions reachable at or below the
// automaton's edit-distance budget, each tagged with its minimal distance.
type SparseVector []Pair

// key renders the vector into a form suitable as a map key, used by the DFA
// cache to canonicalize nodes by state-vector equality — no two cache
// entries should ever carry equal state vectors.
func (v SparseVector) key() string {
	var b strings.Builder
	for _, p := range v {
		b.WriteByte(',')
		writeInt(&b, p.Index)
		b.WriteByte(':')
		writeInt(&b, p.Value)
	}
	return b.String()
}

func writeInt(b *strings.Builder, n int) {
	if n == 0 {
		b.WriteByte('0')
		return
	}
	if n < 0 {
		b.WriteByte('-')
		n = -n
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	b.Write(digits[i:])
}

// Equal reports whether two sparse vectors carry the same entries.
func (v SparseVector) Equal(o SparseVector) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the vector carries no reachable states.
func (v SparseVector) IsEmpty() bool { return len(v) == 0 }
