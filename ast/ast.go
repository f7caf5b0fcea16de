// Package ast defines the expression tree representation of parsed field
// codes. The node vocabulary is closed: literals, three reference kinds,
// infix and prefix operations, function calls, conditionals, and aggregates.
//
// Trees are built once and never mutated. All downstream stages treat them
// as read-only, so structural sharing between branches is safe.
package ast

import "github.com/deepnoodle-ai/rdlgen/token"

// Node represents a portion of the expression tree. All nodes have position
// information indicating where they appear in the source text.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// End returns the position of the first character immediately after the node.
	End() token.Position

	// String returns a human friendly representation of the Node. This should
	// be similar to the original source text, but not necessarily identical.
	String() string
}

// Expr represents an expression node. Every node in a field-code tree is an
// expression; the interface exists to keep the variant closed.
type Expr interface {
	Node
	exprNode()
}
