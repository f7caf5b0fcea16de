// Package lexer tokenizes field-code expression text.
//
// A Lexer is created with New() and then consumed one token at a time via
// Next(). Lexing errors (unterminated strings, stray characters) are
// returned from Next alongside an ILLEGAL token.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/deepnoodle-ai/rdlgen/token"
)

// Lexer tokenizes an input string.
type Lexer struct {
	input     string
	pos       int  // byte offset of the current rune
	readPos   int  // byte offset after the current rune
	ch        rune // current rune
	line      int  // 0-indexed current line
	lineStart int  // byte offset of the start of the current line
	filename  string
}

// New returns a Lexer for the given input.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readRune()
	return l
}

// SetFilename sets the origin name used in token positions.
func (l *Lexer) SetFilename(filename string) {
	l.filename = filename
}

// Filename returns the origin name for this input.
func (l *Lexer) Filename() string {
	return l.filename
}

// GetLineText returns the full line of input text containing the token.
func (l *Lexer) GetLineText(tok token.Token) string {
	start := tok.StartPosition.LineStart
	if start < 0 || start > len(l.input) {
		return ""
	}
	end := strings.IndexByte(l.input[start:], '\n')
	if end < 0 {
		return l.input[start:]
	}
	return l.input[start : start+end]
}

// Next returns the next token from the input. After the input is exhausted,
// it returns EOF tokens indefinitely.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()

	start := l.position()
	switch l.ch {
	case 0:
		return l.emit(token.EOF, "", start), nil
	case '(':
		return l.emitRune(token.LPAREN, start), nil
	case ')':
		return l.emitRune(token.RPAREN, start), nil
	case ',':
		return l.emitRune(token.COMMA, start), nil
	case '+':
		return l.emitRune(token.PLUS, start), nil
	case '-':
		return l.emitRune(token.MINUS, start), nil
	case '*':
		return l.emitRune(token.ASTERISK, start), nil
	case '/':
		return l.emitRune(token.SLASH, start), nil
	case '%':
		return l.emitRune(token.PERCENT, start), nil
	case '&':
		return l.emitRune(token.AMPERSAND, start), nil
	case '=':
		return l.emitRune(token.EQ, start), nil
	case '<':
		if l.peekRune() == '>' {
			l.readRune()
			return l.emitRune2(token.NOT_EQ, "<>", start), nil
		}
		if l.peekRune() == '=' {
			l.readRune()
			return l.emitRune2(token.LT_EQUALS, "<=", start), nil
		}
		return l.emitRune(token.LT, start), nil
	case '>':
		if l.peekRune() == '=' {
			l.readRune()
			return l.emitRune2(token.GT_EQUALS, ">=", start), nil
		}
		return l.emitRune(token.GT, start), nil
	case '"':
		return l.readString(start)
	case '#':
		return l.readDate(start)
	case '$':
		return l.readSigilRef(token.PARAM, start)
	case '@':
		return l.readSigilRef(token.GLOBAL, start)
	}

	if isDigit(l.ch) {
		return l.readNumber(start)
	}
	if isIdentStart(l.ch) {
		lit := l.readIdentifier()
		return l.token(token.LookupIdentifier(lit), lit, start), nil
	}

	tok := l.emitRune(token.ILLEGAL, start)
	return tok, fmt.Errorf("unexpected character %q at offset %d", tok.Literal, start.Char)
}

// readString lexes a double-quoted string literal. Embedded double quotes
// are escaped by doubling: "O""Brien" has the value `O"Brien`.
func (l *Lexer) readString(start token.Position) (token.Token, error) {
	var sb strings.Builder
	for {
		l.readRune()
		if l.ch == 0 {
			tok := l.token(token.ILLEGAL, sb.String(), start)
			return tok, fmt.Errorf("unterminated string literal at offset %d", start.Char)
		}
		if l.ch == '"' {
			if l.peekRune() == '"' {
				l.readRune() // doubled quote
				sb.WriteRune('"')
				continue
			}
			break
		}
		sb.WriteRune(l.ch)
	}
	l.readRune() // consume closing quote
	return l.token(token.STRING, sb.String(), start), nil
}

// readDate lexes a #-delimited date literal. The literal text between the
// delimiters is preserved as-is; the parser validates the date format.
func (l *Lexer) readDate(start token.Position) (token.Token, error) {
	var sb strings.Builder
	for {
		l.readRune()
		if l.ch == 0 {
			tok := l.token(token.ILLEGAL, sb.String(), start)
			return tok, fmt.Errorf("unterminated date literal at offset %d", start.Char)
		}
		if l.ch == '#' {
			break
		}
		sb.WriteRune(l.ch)
	}
	l.readRune() // consume closing delimiter
	return l.token(token.DATE, sb.String(), start), nil
}

// readSigilRef lexes a $name parameter reference or @name global reference.
// The token literal is the bare name without the sigil.
func (l *Lexer) readSigilRef(typ token.Type, start token.Position) (token.Token, error) {
	sigil := l.ch
	l.readRune()
	if !isIdentStart(l.ch) {
		tok := l.token(token.ILLEGAL, string(sigil), start)
		return tok, fmt.Errorf("expected identifier after %q at offset %d", sigil, start.Char)
	}
	name := l.readIdentifier()
	return l.token(typ, name, start), nil
}

func (l *Lexer) readNumber(start token.Position) (token.Token, error) {
	var sb strings.Builder
	for isDigit(l.ch) {
		sb.WriteRune(l.ch)
		l.readRune()
	}
	if l.ch == '.' && isDigit(l.peekRune()) {
		sb.WriteRune('.')
		l.readRune()
		for isDigit(l.ch) {
			sb.WriteRune(l.ch)
			l.readRune()
		}
	}
	return l.token(token.NUMBER, sb.String(), start), nil
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isIdentPart(l.ch) {
		l.readRune()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readRune()
	}
}

func (l *Lexer) readRune() {
	if l.ch == '\n' {
		l.line++
		l.lineStart = l.readPos
	}
	if l.readPos >= len(l.input) {
		l.pos = l.readPos
		l.ch = 0
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.pos = l.readPos
	l.readPos += w
	l.ch = r
}

func (l *Lexer) peekRune() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) position() token.Position {
	return token.Position{
		Char:      l.pos,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.pos - l.lineStart,
		File:      l.filename,
	}
}

// token builds a token whose end position is the current lexer position.
func (l *Lexer) token(typ token.Type, literal string, start token.Position) token.Token {
	return token.Token{
		Type:          typ,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   l.position(),
	}
}

// emit builds a token without consuming input (used for EOF).
func (l *Lexer) emit(typ token.Type, literal string, start token.Position) token.Token {
	return token.Token{
		Type:          typ,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   start,
	}
}

// emitRune consumes the current rune and emits it as a single-rune token.
func (l *Lexer) emitRune(typ token.Type, start token.Position) token.Token {
	lit := string(l.ch)
	l.readRune()
	return l.token(typ, lit, start)
}

// emitRune2 consumes the current rune and emits a two-rune token whose first
// rune was already consumed by the caller.
func (l *Lexer) emitRune2(typ token.Type, literal string, start token.Position) token.Token {
	l.readRune()
	return l.token(typ, literal, start)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
