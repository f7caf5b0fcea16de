package generator

import (
	"context"
	"testing"

	"github.com/deepnoodle-ai/rdlgen/ast"
	"github.com/deepnoodle-ai/rdlgen/parser"
	"github.com/deepnoodle-ai/wonton/assert"
)

// gen parses source text and generates the expression body without the
// leading marker.
func gen(t *testing.T, input string) string {
	t.Helper()
	expr, err := parser.Parse(context.Background(), input)
	assert.Nil(t, err)
	return Generate(expr)
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"hello"`, `"hello"`},
		{`"O'Brien"`, `"O'Brien"`},
		{`"O""Brien"`, `"O""Brien"`},
		{`true`, "True"},
		{`false`, "False"},
		{`null`, "Nothing"},
		{`42`, "42"},
		{`3.14`, "3.14"},
		{`100.00`, "100.00"},
		{`#2024-01-15#`, "#2024-01-15#"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, gen(t, tt.input))
		})
	}
}

func TestReferences(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"CustomerName", "Fields!CustomerName.Value"},
		{"$Region", "Parameters!Region.Value"},
		{"@PageNumber", "Globals!PageNumber"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, gen(t, tt.input))
		})
	}
}

func TestMissingRefName(t *testing.T) {
	assert.Equal(t, "Fields!Unknown.Value", Generate(&ast.FieldRef{}))
	assert.Equal(t, "Parameters!Unknown.Value", Generate(&ast.ParamRef{}))
	assert.Equal(t, "Globals!Unknown", Generate(&ast.GlobalRef{}))
}

func TestOperators(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a = b", "(Fields!a.Value = Fields!b.Value)"},
		{"a <> b", "(Fields!a.Value <> Fields!b.Value)"},
		{"a + b", "(Fields!a.Value + Fields!b.Value)"},
		{"a % b", "(Fields!a.Value Mod Fields!b.Value)"},
		{"a mod b", "(Fields!a.Value Mod Fields!b.Value)"},
		{"a and b", "(Fields!a.Value And Fields!b.Value)"},
		{"a or b", "(Fields!a.Value Or Fields!b.Value)"},
		{"a & b", "(Fields!a.Value & Fields!b.Value)"},
		{"not a", "Not Fields!a.Value"},
		{"-5", "- 5"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, gen(t, tt.input))
		})
	}
}

func TestFunctionTranslation(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"isnull(a)", "IsNothing(Fields!a.Value)"},
		{"coalesce(a, b)", "Coalesce(Fields!a.Value, Fields!b.Value)"},
		{"length(a)", "Len(Fields!a.Value)"},
		{"len(a)", "Len(Fields!a.Value)"},
		{"substring(a, 1, 3)", "Mid(Fields!a.Value, 1, 3)"},
		{"upper(a)", "UCase(Fields!a.Value)"},
		{"lower(a)", "LCase(Fields!a.Value)"},
		{"trim(a)", "Trim(Fields!a.Value)"},
		{"now()", "Now()"},
		{"getdate()", "Now()"},
		{"today()", "Today()"},
		{"UPPER(a)", "UCase(Fields!a.Value)"},
		{"SomethingCustom(a)", "SomethingCustom(Fields!a.Value)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, gen(t, tt.input))
		})
	}
}

func TestConditional(t *testing.T) {
	assert.Equal(t,
		`IIf((Fields!Amount.Value > 100), "big", "small")`,
		gen(t, `if(Amount > 100, "big", "small")`))

	// A missing false branch renders the null sentinel.
	assert.Equal(t,
		`IIf(Fields!Active.Value, "yes", Nothing)`,
		gen(t, `if(Active, "yes")`))
}

func TestAggregates(t *testing.T) {
	assert.Equal(t, "Sum(Fields!Amount.Value)", gen(t, "sum(Amount)"))
	assert.Equal(t,
		`Sum(Fields!Amount.Value, "OrderGroup")`,
		gen(t, `sum(Amount, "OrderGroup")`))
	assert.Equal(t, "Count(Fields!ID.Value)", gen(t, "count(ID)"))
}

func TestExpressionMarker(t *testing.T) {
	expr, err := parser.Parse(context.Background(), "CustomerName")
	assert.Nil(t, err)
	assert.Equal(t, "=Fields!CustomerName.Value", Expression(expr))
}

func TestDeterminism(t *testing.T) {
	expr, err := parser.Parse(context.Background(),
		`if(Amount > 100, upper(Name), sum(Amount, "G"))`)
	assert.Nil(t, err)
	first := Expression(expr)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Expression(expr))
	}
}

// Hand-built nodes with missing children keep the historical silent
// empty-text behavior; the parser can no longer produce such nodes.
func TestArityFallbacks(t *testing.T) {
	assert.Equal(t, "", Generate(&ast.Infix{Op: "+"}))
	assert.Equal(t, "", Generate(&ast.Prefix{Op: "not"}))
	assert.Equal(t, "", Generate(&ast.Conditional{}))
	assert.Equal(t, "", Generate(&ast.Aggregate{Name: "Sum"}))
}

func TestPrefixDefaultOperator(t *testing.T) {
	expr := &ast.Prefix{X: &ast.FieldRef{Name: "Active"}}
	assert.Equal(t, "Not Fields!Active.Value", Generate(expr))
}
