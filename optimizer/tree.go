package optimizer

import (
	"strings"

	"github.com/deepnoodle-ai/rdlgen/ast"
)

// Tree applies semantics-preserving rewrites to an expression tree before
// generation: constant conditionals collapse to the live branch and double
// negation cancels. Trees are immutable, so rewritten nodes are new
// values; untouched subtrees are shared with the input.
func Tree(expr ast.Expr) ast.Expr {
	switch n := expr.(type) {
	case *ast.Conditional:
		return rewriteConditional(n)
	case *ast.Prefix:
		return rewritePrefix(n)
	case *ast.Infix:
		x, y := Tree(n.X), Tree(n.Y)
		if x == n.X && y == n.Y {
			return n
		}
		return &ast.Infix{X: x, OpPos: n.OpPos, Op: n.Op, Y: y}
	case *ast.Call:
		args, changed := rewriteAll(n.Args)
		if !changed {
			return n
		}
		return &ast.Call{NamePos: n.NamePos, Name: n.Name, Lparen: n.Lparen, Args: args, Rparen: n.Rparen}
	case *ast.Aggregate:
		target := Tree(n.Target)
		if target == n.Target {
			return n
		}
		return &ast.Aggregate{
			NamePos: n.NamePos,
			Name:    n.Name,
			Lparen:  n.Lparen,
			Target:  target,
			Scope:   n.Scope,
			Rparen:  n.Rparen,
		}
	default:
		return expr
	}
}

func rewriteConditional(n *ast.Conditional) ast.Expr {
	cond := Tree(n.Cond)
	ifTrue := Tree(n.IfTrue)
	var ifFalse ast.Expr
	if n.IfFalse != nil {
		ifFalse = Tree(n.IfFalse)
	}
	if b, ok := cond.(*ast.Bool); ok {
		if b.Value {
			return ifTrue
		}
		if ifFalse != nil {
			return ifFalse
		}
		return &ast.Null{NullPos: n.IfPos}
	}
	if cond == n.Cond && ifTrue == n.IfTrue && ifFalse == n.IfFalse {
		return n
	}
	return &ast.Conditional{IfPos: n.IfPos, Cond: cond, IfTrue: ifTrue, IfFalse: ifFalse}
}

func rewritePrefix(n *ast.Prefix) ast.Expr {
	x := Tree(n.X)
	if strings.EqualFold(n.Op, "not") {
		if inner, ok := x.(*ast.Prefix); ok && strings.EqualFold(inner.Op, "not") {
			return inner.X
		}
	}
	if x == n.X {
		return n
	}
	return &ast.Prefix{OpPos: n.OpPos, Op: n.Op, X: x}
}

func rewriteAll(exprs []ast.Expr) ([]ast.Expr, bool) {
	changed := false
	out := make([]ast.Expr, len(exprs))
	for i, e := range exprs {
		out[i] = Tree(e)
		if out[i] != e {
			changed = true
		}
	}
	if !changed {
		return exprs, false
	}
	return out, true
}
