package trie

import "sort"

type byteNode struct {
	children map[byte]*byteNode
	terminal bool
	value    string
}

// ByteTrie is a sorted trie over raw tag values, separate from the term
// dictionary's RuneTrie: tag sub-evaluation reuses the tag index's own
// value trie-map rather than the term trie.
type ByteTrie struct {
	root *byteNode
}

// NewByteTrie returns an empty tag value trie.
func NewByteTrie() *ByteTrie {
	return &ByteTrie{root: &byteNode{children: make(map[byte]*byteNode)}}
}

// Insert adds value to the trie.
func (t *ByteTrie) Insert(value string) {
	n := t.root
	for i := 0; i < len(value); i++ {
		b := value[i]
		child, ok := n.children[b]
		if !ok {
			child = &byteNode{children: make(map[byte]*byteNode)}
			n.children[b] = child
		}
		n = child
	}
	n.terminal = true
	n.value = value
}

func sortedByteEdges(n *byteNode) []byte {
	bs := make([]byte, 0, len(n.children))
	for b := range n.children {
		bs = append(bs, b)
	}
	sort.Slice(bs, func(i, j int) bool { return bs[i] < bs[j] })
	return bs
}

// IteratePrefix enumerates every tag value under prefix, capped at
// maxExpansions (-1 meaning unbounded).
func (t *ByteTrie) IteratePrefix(prefix string, maxExpansions int) []string {
	n := t.root
	for i := 0; i < len(prefix); i++ {
		child, ok := n.children[prefix[i]]
		if !ok {
			return nil
		}
		n = child
	}

	var out []string
	var walk func(n *byteNode)
	walk = func(n *byteNode) {
		if maxExpansions != -1 && len(out) >= maxExpansions {
			return
		}
		if n.terminal {
			out = append(out, n.value)
		}
		for _, b := range sortedByteEdges(n) {
			if maxExpansions != -1 && len(out) >= maxExpansions {
				return
			}
			walk(n.children[b])
		}
	}
	walk(n)
	return out
}

// IterateRange walks every value within [begin, end] (nil meaning unbounded
// on that side), honoring inclusivity flags, in ascending order — the tag
// counterpart to RuneTrie.IterateRange.
func (t *ByteTrie) IterateRange(begin, end *string, inclBegin, inclEnd bool, cb func(value string)) {
	var walk func(n *byteNode)
	walk = func(n *byteNode) {
		if n.terminal && inStringRange(n.value, begin, end, inclBegin, inclEnd) {
			cb(n.value)
		}
		for _, b := range sortedByteEdges(n) {
			walk(n.children[b])
		}
	}
	walk(t.root)
}
