package ast

import (
	"bytes"
	"strings"

	"github.com/deepnoodle-ai/rdlgen/token"
)

// FieldRef is an expression node that refers to a data-set field by name.
type FieldRef struct {
	NamePos token.Position // position of the name
	Name    string         // field name
}

func (x *FieldRef) exprNode() {}

func (x *FieldRef) Pos() token.Position { return x.NamePos }
func (x *FieldRef) End() token.Position { return x.NamePos.Advance(len(x.Name)) }

func (x *FieldRef) String() string { return x.Name }

// ParamRef is an expression node that refers to a report parameter by name.
type ParamRef struct {
	NamePos token.Position // position of the "$" sigil
	Name    string         // parameter name without the sigil
}

func (x *ParamRef) exprNode() {}

func (x *ParamRef) Pos() token.Position { return x.NamePos }
func (x *ParamRef) End() token.Position { return x.NamePos.Advance(len(x.Name) + 1) }

func (x *ParamRef) String() string { return "$" + x.Name }

// GlobalRef is an expression node that refers to a report global by name,
// such as the current page number.
type GlobalRef struct {
	NamePos token.Position // position of the "@" sigil
	Name    string         // global name without the sigil
}

func (x *GlobalRef) exprNode() {}

func (x *GlobalRef) Pos() token.Position { return x.NamePos }
func (x *GlobalRef) End() token.Position { return x.NamePos.Advance(len(x.Name) + 1) }

func (x *GlobalRef) String() string { return "@" + x.Name }

// Infix is an operator expression where the operator is between exactly two
// operands. Examples include "Amount > 100" and "x + y".
type Infix struct {
	X     Expr           // left operand
	OpPos token.Position // position of operator
	Op    string         // operator: "=", "<>", "+", "and", etc.
	Y     Expr           // right operand
}

func (x *Infix) exprNode() {}

func (x *Infix) Pos() token.Position { return x.X.Pos() }
func (x *Infix) End() token.Position { return x.Y.End() }

func (x *Infix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.X.String())
	out.WriteString(" " + x.Op + " ")
	out.WriteString(x.Y.String())
	out.WriteString(")")
	return out.String()
}

// Prefix is an operator expression where the operator precedes a single
// operand. Examples include "not Active" and "-x".
type Prefix struct {
	OpPos token.Position // position of operator
	Op    string         // operator: "not" or "-"
	X     Expr           // operand
}

func (x *Prefix) exprNode() {}

func (x *Prefix) Pos() token.Position { return x.OpPos }
func (x *Prefix) End() token.Position { return x.X.End() }

func (x *Prefix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.Op)
	if x.Op != "-" {
		out.WriteString(" ")
	}
	out.WriteString(x.X.String())
	out.WriteString(")")
	return out.String()
}

// Call is an expression node that describes the invocation of a function
// with zero or more positional arguments.
type Call struct {
	NamePos token.Position // position of the function name
	Name    string         // function name as written in the source
	Lparen  token.Position // position of "("
	Args    []Expr         // positional arguments
	Rparen  token.Position // position of ")"
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.NamePos }
func (x *Call) End() token.Position { return x.Rparen.Advance(1) }

func (x *Call) String() string {
	var out bytes.Buffer
	args := make([]string, 0, len(x.Args))
	for _, a := range x.Args {
		args = append(args, a.String())
	}
	out.WriteString(x.Name)
	out.WriteString("(")
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")
	return out.String()
}

// Conditional is an expression node that evaluates to one of two values
// based on a condition. The false branch is optional.
type Conditional struct {
	IfPos   token.Position // position of "if" keyword
	Cond    Expr           // condition
	IfTrue  Expr           // value if condition is true
	IfFalse Expr           // value if condition is false; nil if absent
}

func (x *Conditional) exprNode() {}

func (x *Conditional) Pos() token.Position { return x.IfPos }
func (x *Conditional) End() token.Position {
	if x.IfFalse != nil {
		return x.IfFalse.End()
	}
	return x.IfTrue.End()
}

func (x *Conditional) String() string {
	var out bytes.Buffer
	out.WriteString("if(")
	out.WriteString(x.Cond.String())
	out.WriteString(", ")
	out.WriteString(x.IfTrue.String())
	if x.IfFalse != nil {
		out.WriteString(", ")
		out.WriteString(x.IfFalse.String())
	}
	out.WriteString(")")
	return out.String()
}

// Aggregate is an expression node that applies an aggregate function such as
// Sum or Count to a target expression, optionally within a named scope.
type Aggregate struct {
	NamePos token.Position // position of the aggregate keyword
	Name    string         // aggregate keyword as written in the source
	Lparen  token.Position // position of "("
	Target  Expr           // expression being aggregated
	Scope   *String        // optional scope argument; nil if absent
	Rparen  token.Position // position of ")"
}

func (x *Aggregate) exprNode() {}

func (x *Aggregate) Pos() token.Position { return x.NamePos }
func (x *Aggregate) End() token.Position { return x.Rparen.Advance(1) }

func (x *Aggregate) String() string {
	var out bytes.Buffer
	out.WriteString(x.Name)
	out.WriteString("(")
	out.WriteString(x.Target.String())
	if x.Scope != nil {
		out.WriteString(", ")
		out.WriteString(x.Scope.String())
	}
	out.WriteString(")")
	return out.String()
}
