package ast

// SetFieldMask AND-assigns mask into n's field mask and recurses into every
// child with the same mask value — used by the parser to apply field
// scoping (`@field:(...)`) across a whole subtree in one call, mirroring
// query.c's QueryNode::SetFieldMask.
func (n *Node) SetFieldMask(mask uint64) {
	n.Options.FieldMask &= mask
	for _, c := range n.Children {
		c.SetFieldMask(mask)
	}
}
