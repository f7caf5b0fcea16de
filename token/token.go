// Package token defines the tokens produced when lexing field-code
// expression text.
package token

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Char      int    // byte offset within the input
	LineStart int    // byte offset of the start of the current line
	Line      int    // 0-indexed line number
	Column    int    // 0-indexed column number
	File      string // origin of the input, e.g. a field-code id
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Advance returns a new Position advanced by n bytes.
// Used for computing End positions from a start position.
// Note: This assumes the advance does not cross line boundaries.
func (p Position) Advance(n int) Position {
	return Position{
		Char:      p.Char + n,
		LineStart: p.LineStart,
		Line:      p.Line,
		Column:    p.Column + n,
		File:      p.File,
	}
}

// IsValid returns true if this position has been set.
func (p Position) IsValid() bool {
	return p.File != "" || p.Line > 0 || p.Column > 0 || p.Char > 0
}

// NoPos is the zero value Position, representing an invalid/unset position.
var NoPos = Position{}

// Token represents one token lexed from the input text.
type Token struct {
	Type          Type
	Literal       string
	StartPosition Position
	EndPosition   Position
}

// Token types
const (
	AMPERSAND Type = "&"
	AND       Type = "AND"
	ASTERISK  Type = "*"
	COMMA     Type = ","
	DATE      Type = "DATE"
	ELSE      Type = "ELSE"
	EOF       Type = "EOF"
	EQ        Type = "="
	FALSE     Type = "FALSE"
	GLOBAL    Type = "GLOBAL"
	GT        Type = ">"
	GT_EQUALS Type = ">="
	IDENT     Type = "IDENT"
	IF        Type = "IF"
	ILLEGAL   Type = "ILLEGAL"
	LPAREN    Type = "("
	LT        Type = "<"
	LT_EQUALS Type = "<="
	MINUS     Type = "-"
	MOD       Type = "MOD"
	NOT       Type = "NOT"
	NOT_EQ    Type = "<>"
	NULL      Type = "NULL"
	NUMBER    Type = "NUMBER"
	OR        Type = "OR"
	PARAM     Type = "PARAM"
	PERCENT   Type = "%"
	PLUS      Type = "+"
	RPAREN    Type = ")"
	SLASH     Type = "/"
	STRING    Type = "STRING"
	THEN      Type = "THEN"
	TRUE      Type = "TRUE"
)

// Reserved keywords, matched case-insensitively by the lexer.
var keywords = map[string]Type{
	"and":   AND,
	"else":  ELSE,
	"false": FALSE,
	"if":    IF,
	"mod":   MOD,
	"not":   NOT,
	"null":  NULL,
	"or":    OR,
	"then":  THEN,
	"true":  TRUE,
}

// LookupIdentifier determines whether an identifier is a keyword or not.
// Field-code directives are case-insensitive, so the lookup is too.
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[lower(identifier)]; ok {
		return tok
	}
	return IDENT
}

// lower is an ASCII-only lowercase conversion. Keywords contain only
// ASCII letters, so full Unicode folding is unnecessary here.
func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
