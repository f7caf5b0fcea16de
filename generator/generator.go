// Package generator renders expression trees as report-definition
// expression text. Generation is pure, deterministic, and total: every
// node kind renders to some text, and identical trees always render
// identically.
package generator

import (
	"strings"

	"github.com/deepnoodle-ai/rdlgen/ast"
)

// NullKeyword is the sentinel emitted for null literals and omitted
// conditional branches.
const NullKeyword = "Nothing"

// ExpressionMarker prefixes every complete expression in the output
// document.
const ExpressionMarker = "="

// dateLayout is the date-only output form; the time component is never
// emitted.
const dateLayout = "2006-01-02"

// operators maps a lowercase source operator to its target form.
// Comparison and arithmetic operators pass through; logical keywords are
// capitalized; both "%" and "mod" become "Mod".
var operators = map[string]string{
	"=":   "=",
	"<>":  "<>",
	"<":   "<",
	"<=":  "<=",
	">":   ">",
	">=":  ">=",
	"+":   "+",
	"-":   "-",
	"*":   "*",
	"/":   "/",
	"&":   "&",
	"%":   "Mod",
	"mod": "Mod",
	"and": "And",
	"or":  "Or",
	"not": "Not",
}

// functions maps a lowercase portable function name to the target
// built-in. Unknown names pass through verbatim.
var functions = map[string]string{
	"isnull":    "IsNothing",
	"coalesce":  "Coalesce",
	"concat":    "Concat",
	"length":    "Len",
	"len":       "Len",
	"substring": "Mid",
	"substr":    "Mid",
	"upper":     "UCase",
	"lower":     "LCase",
	"trim":      "Trim",
	"now":       "Now",
	"getdate":   "Now",
	"today":     "Today",
	"year":      "Year",
	"month":     "Month",
	"day":       "Day",
	"format":    "Format",
}

// Expression generates the complete expression text for a tree, prefixed
// with the expression marker if not already present.
func Expression(expr ast.Expr) string {
	text := Generate(expr)
	if strings.HasPrefix(text, ExpressionMarker) {
		return text
	}
	return ExpressionMarker + text
}

// Generate renders a single node as expression text. Nodes with missing
// children render as empty text rather than failing; arity-checked
// constructors make such nodes unreachable from the parser, but trees
// assembled by hand keep the historical silent-no-emit behavior.
func Generate(node ast.Node) string {
	switch n := node.(type) {
	case *ast.Null:
		return NullKeyword
	case *ast.String:
		return quote(n.Value)
	case *ast.Bool:
		if n.Value {
			return "True"
		}
		return "False"
	case *ast.Date:
		return "#" + n.Value.Format(dateLayout) + "#"
	case *ast.Number:
		return n.Literal
	case *ast.FieldRef:
		return "Fields!" + refName(n.Name) + ".Value"
	case *ast.ParamRef:
		return "Parameters!" + refName(n.Name) + ".Value"
	case *ast.GlobalRef:
		return "Globals!" + refName(n.Name)
	case *ast.Infix:
		return generateInfix(n)
	case *ast.Prefix:
		return generatePrefix(n)
	case *ast.Call:
		return generateCall(n)
	case *ast.Conditional:
		return generateConditional(n)
	case *ast.Aggregate:
		return generateAggregate(n)
	default:
		return ""
	}
}

func generateInfix(n *ast.Infix) string {
	if n.X == nil || n.Y == nil {
		return ""
	}
	op, ok := operators[strings.ToLower(n.Op)]
	if !ok {
		op = n.Op
	}
	return "(" + Generate(n.X) + " " + op + " " + Generate(n.Y) + ")"
}

func generatePrefix(n *ast.Prefix) string {
	if n.X == nil {
		return ""
	}
	op := n.Op
	if op == "" {
		op = "Not"
	} else if mapped, ok := operators[strings.ToLower(op)]; ok {
		op = mapped
	}
	return op + " " + Generate(n.X)
}

func generateCall(n *ast.Call) string {
	name, ok := functions[strings.ToLower(n.Name)]
	if !ok {
		name = n.Name
	}
	args := make([]string, 0, len(n.Args))
	for _, arg := range n.Args {
		args = append(args, Generate(arg))
	}
	return name + "(" + strings.Join(args, ", ") + ")"
}

func generateConditional(n *ast.Conditional) string {
	if n.Cond == nil || n.IfTrue == nil {
		return ""
	}
	ifFalse := NullKeyword
	if n.IfFalse != nil {
		ifFalse = Generate(n.IfFalse)
	}
	return "IIf(" + Generate(n.Cond) + ", " + Generate(n.IfTrue) + ", " + ifFalse + ")"
}

func generateAggregate(n *ast.Aggregate) string {
	if n.Target == nil {
		return ""
	}
	if n.Scope != nil {
		return n.Name + "(" + Generate(n.Target) + ", " + quote(n.Scope.Value) + ")"
	}
	return n.Name + "(" + Generate(n.Target) + ")"
}

// refName renders a reference name, substituting "Unknown" for a missing
// name. This is documented policy rather than a defect: an unnamed
// reference produced upstream should surface visibly in the rendered
// report instead of aborting conversion.
func refName(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}

// quote renders a string literal with internal quote characters doubled.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
