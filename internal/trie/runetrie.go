// Package trie provides a concrete in-memory trie (over runes, for the term
// dictionary) and byte trie (for tag value maps), the storage the rest of
// the query engine treats as an external collaborator. The node shape is
// grounded on aaw-levtrie's Trie (child map keyed by rune, data at
// terminals), generalized here with sorted-edge traversal for lex-range
// walking and DFA-guided walking for fuzzy/prefix expansion.
package trie

import (
	"sort"

	"github.com/lp177/searchquery/internal/levenshtein"
)

// Entry is one (term, score, distance) match surfaced by a fuzzy or prefix
// expansion walk.
type Entry struct {
	Term  string
	Score float64
	Dist  int
}

type runeNode struct {
	children map[rune]*runeNode
	terminal bool
	term     string
}

// RuneTrie is a sorted trie over rune sequences, used for the term
// dictionary Prefix, Fuzzy, and LexRange nodes traverse.
type RuneTrie struct {
	root *runeNode
}

// NewRuneTrie returns an empty rune trie.
func NewRuneTrie() *RuneTrie {
	return &RuneTrie{root: &runeNode{children: make(map[rune]*runeNode)}}
}

// Insert adds term to the trie. Re-inserting an existing term is a no-op.
func (t *RuneTrie) Insert(term string) {
	n := t.root
	for _, r := range term {
		child, ok := n.children[r]
		if !ok {
			child = &runeNode{children: make(map[rune]*runeNode)}
			n.children[r] = child
		}
		n = child
	}
	n.terminal = true
	n.term = term
}

func sortedRuneEdges(n *runeNode) []rune {
	rs := make([]rune, 0, len(n.children))
	for r := range n.children {
		rs = append(rs, r)
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	return rs
}

// IteratePrefix descends to the subtree rooted at prefix and enumerates
// every term under it, capped at maxExpansions (-1 meaning unbounded). This
// is the traversal a Prefix node's evaluation drives.
func (t *RuneTrie) IteratePrefix(prefix string, maxExpansions int) []Entry {
	n := t.root
	for _, r := range prefix {
		child, ok := n.children[r]
		if !ok {
			return nil
		}
		n = child
	}

	var out []Entry
	var walk func(n *runeNode)
	walk = func(n *runeNode) {
		if maxExpansions != -1 && len(out) >= maxExpansions {
			return
		}
		if n.terminal {
			out = append(out, Entry{Term: n.term, Score: 1})
		}
		for _, r := range sortedRuneEdges(n) {
			if maxExpansions != -1 && len(out) >= maxExpansions {
				return
			}
			walk(n.children[r])
		}
	}
	walk(n)
	return out
}

// IterateDFA walks the whole trie guided by the DFA lazily built from cache:
// at each edge labelled rune r, advance via the node's explicit edge if
// present, else its fallback; a terminal reached through a matching DFA
// state is a fuzzy-expansion candidate. Capped at maxExpansions (-1 meaning
// unbounded), the same cap a Fuzzy node's evaluation applies.
func (t *RuneTrie) IterateDFA(cache *levenshtein.Cache, maxExpansions int) []Entry {
	var out []Entry
	start := cache.Start()

	var walk func(n *runeNode, state *levenshtein.DFANode)
	walk = func(n *runeNode, state *levenshtein.DFANode) {
		if maxExpansions != -1 && len(out) >= maxExpansions {
			return
		}
		if n.terminal && state.Match {
			dist := bestDistance(state.State)
			out = append(out, Entry{Term: n.term, Score: 1, Dist: dist})
		}
		for _, r := range sortedRuneEdges(n) {
			if maxExpansions != -1 && len(out) >= maxExpansions {
				return
			}
			next := state.Edge(r)
			if !next.CanMatch {
				continue
			}
			walk(n.children[r], next)
		}
	}
	walk(t.root, start)
	return out
}

func bestDistance(v levenshtein.SparseVector) int {
	best := -1
	for _, p := range v {
		if best == -1 || p.Value < best {
			best = p.Value
		}
	}
	return best
}

// IterateRange walks every term within [begin, end] (nil bound meaning
// unbounded on that side), honoring inclusivity flags, in ascending order.
func (t *RuneTrie) IterateRange(begin, end *string, inclBegin, inclEnd bool, cb func(term string)) {
	var walk func(n *runeNode)
	walk = func(n *runeNode) {
		if n.terminal && inStringRange(n.term, begin, end, inclBegin, inclEnd) {
			cb(n.term)
		}
		for _, r := range sortedRuneEdges(n) {
			walk(n.children[r])
		}
	}
	walk(t.root)
}

func inStringRange(s string, begin, end *string, inclBegin, inclEnd bool) bool {
	if begin != nil {
		if inclBegin {
			if s < *begin {
				return false
			}
		} else if s <= *begin {
			return false
		}
	}
	if end != nil {
		if inclEnd {
			if s > *end {
				return false
			}
		} else if s >= *end {
			return false
		}
	}
	return true
}
