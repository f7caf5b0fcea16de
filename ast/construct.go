package ast

import (
	"errors"
	"fmt"

	"github.com/deepnoodle-ai/rdlgen/token"
)

// ErrArity indicates that a node was built with the wrong number of
// children. Arity is enforced at construction time so that malformed
// trees never reach the generator.
var ErrArity = errors.New("wrong number of children")

// NewInfix builds a binary operation node, which requires exactly two
// non-nil operands and an operator.
func NewInfix(op string, x, y Expr, opPos token.Position) (*Infix, error) {
	if x == nil || y == nil {
		return nil, fmt.Errorf("%w: binary operation %q requires two operands", ErrArity, op)
	}
	if op == "" {
		return nil, fmt.Errorf("binary operation requires an operator")
	}
	return &Infix{X: x, OpPos: opPos, Op: op, Y: y}, nil
}

// NewPrefix builds a unary operation node, which requires exactly one
// non-nil operand. An empty operator defaults to logical negation.
func NewPrefix(op string, x Expr, opPos token.Position) (*Prefix, error) {
	if x == nil {
		return nil, fmt.Errorf("%w: unary operation %q requires one operand", ErrArity, op)
	}
	if op == "" {
		op = "not"
	}
	return &Prefix{OpPos: opPos, Op: op, X: x}, nil
}

// NewConditional builds a conditional node from a condition, a true-branch
// value, and an optional false-branch value (pass nil to omit it).
func NewConditional(cond, ifTrue, ifFalse Expr, ifPos token.Position) (*Conditional, error) {
	if cond == nil || ifTrue == nil {
		return nil, fmt.Errorf("%w: conditional requires a condition and a true value", ErrArity)
	}
	return &Conditional{IfPos: ifPos, Cond: cond, IfTrue: ifTrue, IfFalse: ifFalse}, nil
}

// NewAggregate builds an aggregate node from a keyword, a target expression,
// and an optional scope (pass nil to omit it).
func NewAggregate(name string, target Expr, scope *String, namePos, lparen, rparen token.Position) (*Aggregate, error) {
	if name == "" {
		return nil, fmt.Errorf("aggregate requires a keyword")
	}
	if target == nil {
		return nil, fmt.Errorf("%w: aggregate %q requires a target expression", ErrArity, name)
	}
	return &Aggregate{
		NamePos: namePos,
		Name:    name,
		Lparen:  lparen,
		Target:  target,
		Scope:   scope,
		Rparen:  rparen,
	}, nil
}
