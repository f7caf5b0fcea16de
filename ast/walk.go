package ast

import "iter"

// Visitor defines the interface for tree traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an expression tree in depth-first order. It starts by
// calling v.Visit(node); if the returned visitor w is not nil, Walk is
// invoked recursively with visitor w for each of the non-nil children.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	switch n := node.(type) {
	case *Infix:
		if n.X != nil {
			Walk(v, n.X)
		}
		if n.Y != nil {
			Walk(v, n.Y)
		}
	case *Prefix:
		if n.X != nil {
			Walk(v, n.X)
		}
	case *Call:
		for _, arg := range n.Args {
			Walk(v, arg)
		}
	case *Conditional:
		if n.Cond != nil {
			Walk(v, n.Cond)
		}
		if n.IfTrue != nil {
			Walk(v, n.IfTrue)
		}
		if n.IfFalse != nil {
			Walk(v, n.IfFalse)
		}
	case *Aggregate:
		if n.Target != nil {
			Walk(v, n.Target)
		}
		if n.Scope != nil {
			Walk(v, n.Scope)
		}
	}
	// Literals and references have no children.
}

// Inspect traverses an expression tree in depth-first order. It calls
// f(node) for each node; if f returns true, Inspect invokes f recursively
// for each of the non-nil children of node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Preorder returns an iterator over all the nodes of the tree rooted at
// node in depth-first preorder. The sequence is finite and single-use.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(Node) bool
		visit = func(n Node) bool {
			if !yield(n) {
				return false
			}
			switch node := n.(type) {
			case *Infix:
				if node.X != nil && !visit(node.X) {
					return false
				}
				if node.Y != nil && !visit(node.Y) {
					return false
				}
			case *Prefix:
				if node.X != nil && !visit(node.X) {
					return false
				}
			case *Call:
				for _, arg := range node.Args {
					if !visit(arg) {
						return false
					}
				}
			case *Conditional:
				if node.Cond != nil && !visit(node.Cond) {
					return false
				}
				if node.IfTrue != nil && !visit(node.IfTrue) {
					return false
				}
				if node.IfFalse != nil && !visit(node.IfFalse) {
					return false
				}
			case *Aggregate:
				if node.Target != nil && !visit(node.Target) {
					return false
				}
				if node.Scope != nil && !visit(node.Scope) {
					return false
				}
			}
			return true
		}
		visit(root)
	}
}
