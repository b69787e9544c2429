package syntax

// Walk visits n and all of its descendants in document (pre-order) order.
// Returning false from visit stops the traversal.
func Walk(n *Node, visit func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	for _, c := range n.Children {
		if !Walk(c, visit) {
			return false
		}
	}
	return true
}

// Descendants collects every descendant of n (excluding n itself) with the
// given kind, in document order.
func Descendants(n *Node, kind Kind) []*Node {
	var out []*Node
	Walk(n, func(d *Node) bool {
		if d != n && d.Kind == kind {
			out = append(out, d)
		}
		return true
	})
	return out
}

// Ancestor returns the nearest ancestor of n with the given kind, or nil.
func Ancestor(n *Node, kind Kind) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind == kind {
			return p
		}
	}
	return nil
}

// HasAncestor reports whether any ancestor of n has one of the given kinds.
func HasAncestor(n *Node, kinds ...Kind) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		for _, k := range kinds {
			if p.Kind == k {
				return true
			}
		}
	}
	return false
}

// EnclosingType returns the nearest class, interface or enum declaration
// containing n, or nil when n sits directly in the compilation unit.
func EnclosingType(n *Node) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		switch p.Kind {
		case KindClassDecl, KindInterfaceDecl, KindEnumDecl:
			return p
		}
	}
	return nil
}

// MentionsIdentifier reports whether any identifier below n (or n itself)
// has the given text.
func MentionsIdentifier(n *Node, name string) bool {
	found := false
	Walk(n, func(d *Node) bool {
		if d.Kind == KindIdentifier && d.Text == name {
			found = true
			return false
		}
		return true
	})
	return found
}

// QualifiedText flattens a member-access chain (or a lone identifier) into
// its dotted source form, e.g. "System.GC". Nodes that are not identifier or
// member-access shaped yield "".
func QualifiedText(n *Node) string {
	switch n.Kind {
	case KindIdentifier:
		return n.Text
	case KindMemberAccess:
		if len(n.Children) < 2 {
			return ""
		}
		left := QualifiedText(n.Children[0])
		right := n.Children[len(n.Children)-1]
		if left == "" || right.Kind != KindIdentifier {
			return ""
		}
		return left + "." + right.Text
	default:
		return ""
	}
}
