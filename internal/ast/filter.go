package ast

// InjectGlobalFilter implements the legacy global-filter injection: if root
// is a Phrase, filter is prepended as its first (leader) child so
// intersection drives from the typically small filter posting list;
// otherwise root and filter are wrapped in a new Phrase, filter first.
// Mirrors query.c's QueryAST::setFilterNode. The leader-first ordering
// matters for performance, not correctness — Intersect still evaluates
// every child regardless of position.
func InjectGlobalFilter(root, filter *Node) *Node {
	if root == nil {
		return filter
	}
	if filter == nil {
		return root
	}
	if root.Kind == KindPhrase {
		root.Children = append([]*Node{filter}, root.Children...)
		return root
	}
	wrapper := newNode(KindPhrase)
	wrapper.Children = []*Node{filter, root}
	return wrapper
}
