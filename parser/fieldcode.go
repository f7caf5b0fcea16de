package parser

import (
	"context"
	"strings"

	"github.com/deepnoodle-ai/rdlgen/ast"
	"github.com/deepnoodle-ai/rdlgen/field"
)

// ParseFieldCode compiles a field-code record into an expression tree based
// on its category. Codes whose category is recognized but whose shape
// cannot be compiled fail with an UnsupportedError carrying the category
// and raw text, never a generic syntax error.
func ParseFieldCode(ctx context.Context, code field.Code, options ...Option) (ast.Expr, error) {
	opts := append([]Option{WithFilename(code.ID)}, options...)

	switch code.Category {
	case field.MergeField:
		return parseMergeField(code)
	case field.If:
		return parseIfCode(ctx, code, opts)
	case field.PageNumber:
		return &ast.GlobalRef{Name: "PageNumber"}, nil
	case field.NumPages:
		return &ast.GlobalRef{Name: "TotalPages"}, nil
	case field.Date:
		return &ast.Call{Name: "Today"}, nil
	case field.Time:
		return &ast.Call{Name: "Now"}, nil
	default:
		return nil, &UnsupportedError{Category: code.Category, Text: code.Text}
	}
}

// parseMergeField extracts the field name from a merge-field directive.
// The directive keyword and any formatting switches (e.g. `\* Upper`) are
// discarded; the remainder must be a plain field name.
func parseMergeField(code field.Code) (ast.Expr, error) {
	text := strings.TrimSpace(code.Text)
	if rest, ok := cutKeyword(text, "MERGEFIELD"); ok {
		text = rest
	}
	// Formatting switches follow the name and start with a backslash.
	if i := strings.IndexByte(text, '\\'); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)
	text = strings.Trim(text, `"`)
	if !isFieldName(text) {
		return nil, &UnsupportedError{Category: code.Category, Text: code.Text}
	}
	return &ast.FieldRef{Name: text}, nil
}

// parseIfCode parses an IF directive. The expression grammar accepts the
// directive text as-is: `IF cond "true" "false"` parses as a conditional
// with juxtaposed branch values.
func parseIfCode(ctx context.Context, code field.Code, opts []Option) (ast.Expr, error) {
	expr, err := Parse(ctx, code.Text, opts...)
	if err != nil {
		return nil, err
	}
	cond, ok := expr.(*ast.Conditional)
	if !ok {
		return nil, &UnsupportedError{Category: code.Category, Text: code.Text}
	}
	return cond, nil
}

// cutKeyword strips a leading case-insensitive keyword followed by
// whitespace, reporting whether the keyword was present.
func cutKeyword(text, keyword string) (string, bool) {
	if len(text) < len(keyword) {
		return text, false
	}
	if !strings.EqualFold(text[:len(keyword)], keyword) {
		return text, false
	}
	rest := text[len(keyword):]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return text, false
	}
	return strings.TrimSpace(rest), true
}

func isFieldName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
