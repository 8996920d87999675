package ast

// Relatives links a node to its parent.
type Relatives struct {
	node   Node
	parent *Relatives
}

// Link sets the Relatives of every node of the tree rooted at n.
// It must be called again after a rewrite produces a new tree.
func Link(n Node) {
	link(n, nil)
}

func link(n Node, parent *Relatives) {
	r := &Relatives{node: n, parent: parent}
	n.Context().Relatives = r
	for _, k := range Children(n) {
		link(k, r)
	}
}

// Node returns the node.
func (r *Relatives) Node() Node { return r.node }

// Parent returns the parent's Relatives, or nil for the root.
func (r *Relatives) Parent() *Relatives { return r.parent }

// Children returns the Relatives of the node's direct children.
func (r *Relatives) Children() []*Relatives {
	var rs []*Relatives
	for _, k := range Children(r.node) {
		rs = append(rs, k.Context().RequireRelatives())
	}
	return rs
}

// Siblings returns the Relatives of the other children of the node's parent.
func (r *Relatives) Siblings() []*Relatives {
	if r.parent == nil {
		return nil
	}
	var rs []*Relatives
	for _, s := range r.parent.Children() {
		if s.node != r.node {
			rs = append(rs, s)
		}
	}
	return rs
}

// NextSibling returns the sibling after the node, or nil.
func (r *Relatives) NextSibling() *Relatives {
	return r.sibling(1)
}

// PreviousSibling returns the sibling before the node, or nil.
func (r *Relatives) PreviousSibling() *Relatives {
	return r.sibling(-1)
}

func (r *Relatives) sibling(d int) *Relatives {
	if r.parent == nil {
		return nil
	}
	kids := r.parent.Children()
	for i, k := range kids {
		if k.node != r.node {
			continue
		}
		if j := i + d; j >= 0 && j < len(kids) {
			return kids[j]
		}
		return nil
	}
	return nil
}

// Enclosing returns the nearest strict ancestor for which f returns true, or nil.
func (r *Relatives) Enclosing(f func(Node) bool) Node {
	for p := r.parent; p != nil; p = p.parent {
		if f(p.node) {
			return p.node
		}
	}
	return nil
}
