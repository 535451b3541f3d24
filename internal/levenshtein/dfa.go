package levenshtein

// DFANode is one state of the DFA compiled from an Automaton. Edges
// and Fallback are non-owning references into the node's Cache; the cache
// owns every node for the life of the query, or longer if reused across
// queries.
type DFANode struct {
	State    SparseVector
	Match    bool
	CanMatch bool
	Fallback *DFANode
	edges    map[rune]*DFANode
}

// Edge returns the node reached on rune r: the explicit edge if the trie
// traversal has one, otherwise the node's fallback.
func (n *DFANode) Edge(r rune) *DFANode {
	if e, ok := n.edges[r]; ok {
		return e
	}
	return n.Fallback
}

// Cache is a content-addressed store of DFA nodes keyed by sparse-vector
// state. The first Start call builds every state reachable from the start
// state, recursing over the pattern's runes plus the fallback rune; each
// distinct state is built once and shared.
type Cache struct {
	automaton *Automaton
	nodes     map[string]*DFANode
}

// NewCache builds an (initially empty) DFA cache for automaton a.
func NewCache(a *Automaton) *Cache {
	return &Cache{automaton: a, nodes: make(map[string]*DFANode)}
}

// Start returns the DFA node for the automaton's initial state. The first
// call builds the whole reachable DFA; later calls are served from the cache.
func (c *Cache) Start() *DFANode {
	return c.build(c.automaton.Start())
}

// Len reports the number of distinct states canonicalized so far.
func (c *Cache) Len() int { return len(c.nodes) }

// fallbackRune is a sentinel outside any reasonable pattern alphabet, used to
// compute the "none of the explicit edges" transition once per state.
const fallbackRune = rune(0xFFFF)

func (c *Cache) build(state SparseVector) *DFANode {
	k := state.key()
	if existing, ok := c.nodes[k]; ok {
		return existing
	}

	node := &DFANode{
		State:    state,
		Match:    c.automaton.IsMatch(state),
		CanMatch: c.automaton.CanMatch(state),
		edges:    make(map[rune]*DFANode),
	}
	c.nodes[k] = node

	if !node.CanMatch {
		// Dead state: every continuation already exceeds the edit budget.
		node.Fallback = node
		return node
	}

	seen := make(map[rune]bool, len(c.automaton.Pattern))
	for _, r := range c.automaton.Pattern {
		if seen[r] {
			continue
		}
		seen[r] = true
		node.edges[r] = c.build(c.automaton.Step(state, r))
	}
	node.Fallback = c.build(c.automaton.Step(state, fallbackRune))
	return node
}
