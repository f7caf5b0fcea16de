package parser

import (
	"fmt"
	"strconv"
	"time"

	"github.com/deepnoodle-ai/rdlgen/ast"
	"github.com/deepnoodle-ai/rdlgen/token"
)

// Literal parsing methods for the Parser:
// - Numeric literals
// - Boolean and null literals
// - String literals (doubled-quote escaping handled by the lexer)
// - Date literals

// DateLayout is the date-only layout used by date literals.
const DateLayout = "2006-01-02"

func (p *Parser) parseNumber() ast.Expr {
	tok, lit := p.curToken, p.curToken.Literal
	value, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		p.setError(NewSyntaxError(ErrorOpts{
			Message:       fmt.Sprintf("invalid number: %s", lit),
			File:          p.l.Filename(),
			StartPosition: tok.StartPosition,
			EndPosition:   tok.EndPosition,
			SourceCode:    p.l.GetLineText(tok),
		}))
		return nil
	}
	return &ast.Number{ValuePos: tok.StartPosition, Literal: lit, Value: value}
}

func (p *Parser) parseBoolean() ast.Expr {
	return &ast.Bool{
		ValuePos: p.curToken.StartPosition,
		Value:    p.curTokenIs(token.TRUE),
	}
}

func (p *Parser) parseNull() ast.Expr {
	return &ast.Null{NullPos: p.curToken.StartPosition}
}

func (p *Parser) parseString() ast.Expr {
	return &ast.String{
		ValuePos: p.curToken.StartPosition,
		Value:    p.curToken.Literal,
	}
}

func (p *Parser) parseDate() ast.Expr {
	tok, lit := p.curToken, p.curToken.Literal
	value, err := time.Parse(DateLayout, lit)
	if err != nil {
		p.setError(NewSyntaxError(ErrorOpts{
			Message:       fmt.Sprintf("invalid date literal: #%s# (expected %s)", lit, DateLayout),
			File:          p.l.Filename(),
			StartPosition: tok.StartPosition,
			EndPosition:   tok.EndPosition,
			SourceCode:    p.l.GetLineText(tok),
		}))
		return nil
	}
	return &ast.Date{ValuePos: tok.StartPosition, Literal: lit, Value: value}
}
