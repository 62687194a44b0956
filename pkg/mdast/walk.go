package mdast

// WalkFunc is called for each node visited by Walk. A non-nil error ends the
// walk and is returned by Walk.
type WalkFunc func(n *Node) error

// Walk visits root and everything below it depth first, a parent before its
// children. A released or nil root visits nothing.
func Walk(root *Node, fn WalkFunc) error {
	pending := []*Node{root}
	for len(pending) > 0 {
		n := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if !n.valid() {
			continue
		}
		if err := fn(n); err != nil {
			return err
		}

		children := n.Children()
		for i := len(children) - 1; i >= 0; i-- {
			pending = append(pending, children[i])
		}
	}
	return nil
}

// FindByKind returns the nodes of kind at or below root in document order.
func FindByKind(root *Node, kind NodeKind) []*Node {
	var found []*Node
	//nolint:errcheck // the callback never fails
	Walk(root, func(n *Node) error {
		if n.Kind() == kind {
			found = append(found, n)
		}
		return nil
	})
	return found
}
