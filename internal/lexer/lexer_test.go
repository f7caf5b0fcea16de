package lexer

import (
	"testing"

	"github.com/deepnoodle-ai/rdlgen/token"
	"github.com/deepnoodle-ai/wonton/assert"
)

func TestOperators(t *testing.T) {
	input := `+-*/%&=<><<=>>=(),`
	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.PLUS, "+"},
		{token.MINUS, "-"},
		{token.ASTERISK, "*"},
		{token.SLASH, "/"},
		{token.PERCENT, "%"},
		{token.AMPERSAND, "&"},
		{token.EQ, "="},
		{token.NOT_EQ, "<>"},
		{token.LT, "<"},
		{token.LT_EQUALS, "<="},
		{token.GT, ">"},
		{token.GT_EQUALS, ">="},
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.COMMA, ","},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok, err := l.Next()
		assert.Nil(t, err)
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `if THEN Else and OR not Mod true FALSE null Amount`
	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.IF, "if"},
		{token.THEN, "THEN"},
		{token.ELSE, "Else"},
		{token.AND, "and"},
		{token.OR, "OR"},
		{token.NOT, "not"},
		{token.MOD, "Mod"},
		{token.TRUE, "true"},
		{token.FALSE, "FALSE"},
		{token.NULL, "null"},
		{token.IDENT, "Amount"},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok, err := l.Next()
		assert.Nil(t, err)
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		input string
		value string
	}{
		{`"hello"`, "hello"},
		{`""`, ""},
		{`"O""Brien"`, `O"Brien`},
		{`"a ""b"" c"`, `a "b" c`},
		{`"line one"`, "line one"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := New(tt.input)
			tok, err := l.Next()
			assert.Nil(t, err)
			assert.Equal(t, token.STRING, tok.Type)
			assert.Equal(t, tt.value, tok.Literal)
			eof, err := l.Next()
			assert.Nil(t, err)
			assert.Equal(t, token.EOF, eof.Type)
		})
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"abc`)
	tok, err := l.Next()
	assert.NotNil(t, err)
	assert.Equal(t, token.ILLEGAL, tok.Type)
	assert.Contains(t, err.Error(), "unterminated string literal")
}

func TestDates(t *testing.T) {
	l := New(`#2024-01-15#`)
	tok, err := l.Next()
	assert.Nil(t, err)
	assert.Equal(t, token.DATE, tok.Type)
	assert.Equal(t, "2024-01-15", tok.Literal)
}

func TestUnterminatedDate(t *testing.T) {
	l := New(`#2024-01-15`)
	tok, err := l.Next()
	assert.NotNil(t, err)
	assert.Equal(t, token.ILLEGAL, tok.Type)
	assert.Contains(t, err.Error(), "unterminated date literal")
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input   string
		literal string
	}{
		{"0", "0"},
		{"42", "42"},
		{"3.14", "3.14"},
		{"100.00", "100.00"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := New(tt.input)
			tok, err := l.Next()
			assert.Nil(t, err)
			assert.Equal(t, token.NUMBER, tok.Type)
			assert.Equal(t, tt.literal, tok.Literal)
		})
	}
}

func TestSigilRefs(t *testing.T) {
	l := New(`$Region @PageNumber`)
	tok, err := l.Next()
	assert.Nil(t, err)
	assert.Equal(t, token.PARAM, tok.Type)
	assert.Equal(t, "Region", tok.Literal)

	tok, err = l.Next()
	assert.Nil(t, err)
	assert.Equal(t, token.GLOBAL, tok.Type)
	assert.Equal(t, "PageNumber", tok.Literal)
}

func TestSigilWithoutName(t *testing.T) {
	l := New(`$ 5`)
	tok, err := l.Next()
	assert.NotNil(t, err)
	assert.Equal(t, token.ILLEGAL, tok.Type)
	assert.Contains(t, err.Error(), "expected identifier")
}

func TestStrayCharacter(t *testing.T) {
	l := New(`a ^ b`)
	tok, err := l.Next()
	assert.Nil(t, err)
	assert.Equal(t, token.IDENT, tok.Type)

	tok, err = l.Next()
	assert.NotNil(t, err)
	assert.Equal(t, token.ILLEGAL, tok.Type)
	assert.Contains(t, err.Error(), "unexpected character")
}

func TestPositions(t *testing.T) {
	l := New("Amount > 100")
	tok, err := l.Next()
	assert.Nil(t, err)
	assert.Equal(t, 0, tok.StartPosition.Char)
	assert.Equal(t, 6, tok.EndPosition.Char)

	tok, err = l.Next()
	assert.Nil(t, err)
	assert.Equal(t, 7, tok.StartPosition.Char)

	tok, err = l.Next()
	assert.Nil(t, err)
	assert.Equal(t, 9, tok.StartPosition.Char)
	assert.Equal(t, 1, tok.StartPosition.LineNumber())
	assert.Equal(t, 10, tok.StartPosition.ColumnNumber())
}

func TestGetLineText(t *testing.T) {
	l := New("Amount > 100")
	tok, err := l.Next()
	assert.Nil(t, err)
	assert.Equal(t, "Amount > 100", l.GetLineText(tok))
}

func TestEOFIsSticky(t *testing.T) {
	l := New("")
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		assert.Nil(t, err)
		assert.Equal(t, token.EOF, tok.Type)
	}
}
