// Package conditional extracts conditional branches from parsed field
// codes and analyzes their structure. Extraction is best-effort over a
// batch: a field code that cannot contribute a branch is skipped with a
// diagnostic rather than failing the batch.
package conditional

import (
	"context"
	"fmt"

	"github.com/deepnoodle-ai/rdlgen/ast"
	"github.com/deepnoodle-ai/rdlgen/field"
	"github.com/deepnoodle-ai/rdlgen/parser"
)

// Branch is a derived view of one conditional field code. Branches are
// recomputed per analysis pass and never mutated in place.
type Branch struct {
	// ID is assigned in extraction order: "cond_1", "cond_2", ...
	// Nested branches derive their id from the parent id plus a side tag.
	ID string

	// Cond is the branch condition.
	Cond ast.Expr

	// TrueValue is the value when the condition holds.
	TrueValue ast.Expr

	// FalseValue is the value when the condition does not hold; nil if the
	// branch has no false value.
	FalseValue ast.Expr

	// SourceID is the id of the originating field code.
	SourceID string
}

// Diagnostic records why a field code was skipped during extraction.
type Diagnostic struct {
	CodeID  string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.CodeID, d.Message)
}

// Extract returns one branch per field code whose category is "if" and
// whose parsed root is a conditional. Branch ids form a strictly
// increasing sequence in the exact order the field codes are supplied.
// Codes of other categories are ignored; "if" codes that fail to parse or
// parse to another shape are skipped with a diagnostic.
//
// Parser options apply to every code, so a caller that bounds parsing
// depth for item compilation gets the same bound here: a code that fails
// to compile as an item never contributes a branch.
func Extract(ctx context.Context, codes []field.Code, options ...parser.Option) ([]Branch, []Diagnostic) {
	var branches []Branch
	var diags []Diagnostic
	for _, code := range codes {
		if code.Category != field.If {
			continue
		}
		expr, err := parser.ParseFieldCode(ctx, code, options...)
		if err != nil {
			diags = append(diags, Diagnostic{CodeID: code.ID, Message: err.Error()})
			continue
		}
		cond, ok := expr.(*ast.Conditional)
		if !ok || cond.Cond == nil || cond.IfTrue == nil {
			diags = append(diags, Diagnostic{
				CodeID:  code.ID,
				Message: "field code did not parse to a conditional",
			})
			continue
		}
		branches = append(branches, Branch{
			ID:         fmt.Sprintf("cond_%d", len(branches)+1),
			Cond:       cond.Cond,
			TrueValue:  cond.IfTrue,
			FalseValue: cond.IfFalse,
			SourceID:   code.ID,
		})
	}
	return branches, diags
}

// comparisonOps are the operators that qualify a condition for switch
// conversion.
var comparisonOps = map[string]bool{
	"=":  true,
	"<>": true,
	"<":  true,
	"<=": true,
	">":  true,
	">=": true,
}

// CanConvertToSwitch reports whether a group of branches can be expressed
// as a switch over a single tested field: at least two branches, the first
// condition comparing a field reference on its left side, and every other
// condition comparing that same field. A condition of any other shape
// disqualifies the whole group.
func CanConvertToSwitch(branches []Branch) bool {
	if len(branches) < 2 {
		return false
	}
	tested, ok := testedField(branches[0])
	if !ok {
		return false
	}
	for _, b := range branches[1:] {
		name, ok := testedField(b)
		if !ok || name != tested {
			return false
		}
	}
	return true
}

func testedField(b Branch) (string, bool) {
	infix, ok := b.Cond.(*ast.Infix)
	if !ok {
		return "", false
	}
	if !comparisonOps[infix.Op] {
		return "", false
	}
	ref, ok := infix.X.(*ast.FieldRef)
	if !ok {
		return "", false
	}
	return ref.Name, true
}
