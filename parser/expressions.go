package parser

import (
	"strings"

	"github.com/deepnoodle-ai/rdlgen/ast"
	"github.com/deepnoodle-ai/rdlgen/token"
)

// Expression parsing methods for the Parser:
// - References (field, parameter, global)
// - Prefix and infix expressions
// - Grouped expressions
// - Conditionals (call form and directive form)
// - Function calls and aggregates

// aggregateKeywords maps a lowercase aggregate name to its canonical
// keyword, which is stored verbatim in the node payload.
var aggregateKeywords = map[string]string{
	"avg":   "Avg",
	"count": "Count",
	"first": "First",
	"last":  "Last",
	"max":   "Max",
	"min":   "Min",
	"sum":   "Sum",
}

func (p *Parser) parseIdent() ast.Expr {
	if p.curToken.Literal == "" {
		p.setTokenError(p.curToken, "invalid identifier")
		return nil
	}
	return &ast.FieldRef{NamePos: p.curToken.StartPosition, Name: p.curToken.Literal}
}

func (p *Parser) parseParamRef() ast.Expr {
	return &ast.ParamRef{NamePos: p.curToken.StartPosition, Name: p.curToken.Literal}
}

func (p *Parser) parseGlobalRef() ast.Expr {
	return &ast.GlobalRef{NamePos: p.curToken.StartPosition, Name: p.curToken.Literal}
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	opPos := p.curToken.StartPosition
	op := "-"
	if p.curTokenIs(token.NOT) {
		op = "not"
	}
	if err := p.nextToken(); err != nil {
		return nil
	}
	right := p.parseExpression(PREFIX)
	if right == nil {
		p.setTokenError(p.curToken, "invalid operand for %q", op)
		return nil
	}
	expr, err := ast.NewPrefix(op, right, opPos)
	if err != nil {
		p.setTokenError(p.curToken, "%s", err.Error())
		return nil
	}
	return expr
}

func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	opPos := p.curToken.StartPosition
	op := p.operatorLiteral()
	precedence := precedences[p.curToken.Type]
	if err := p.nextToken(); err != nil {
		return nil
	}
	right := p.parseExpression(precedence)
	if right == nil {
		p.setTokenError(p.curToken, "invalid right operand for %q", op)
		return nil
	}
	expr, err := ast.NewInfix(op, left, right, opPos)
	if err != nil {
		p.setTokenError(p.curToken, "%s", err.Error())
		return nil
	}
	return expr
}

// operatorLiteral returns the canonical operator text for the current
// token. Keyword operators are case-insensitive in the source.
func (p *Parser) operatorLiteral() string {
	switch p.curToken.Type {
	case token.AND:
		return "and"
	case token.OR:
		return "or"
	case token.MOD:
		return "mod"
	default:
		return p.curToken.Literal
	}
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	if err := p.nextToken(); err != nil { // move past '('
		return nil
	}
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek("grouped expression", token.RPAREN) {
		return nil
	}
	return expr
}

// parseIf parses a conditional in either the call form `if(cond, a, b)` or
// the directive form `if cond then a else b`. The directive form also
// accepts juxtaposed values without `then`/`else`, matching the shape of
// IF field codes: `if cond "true-value" "false-value"`.
func (p *Parser) parseIf() ast.Expr {
	ifPos := p.curToken.StartPosition
	var cond ast.Expr

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken() // move to '('
		args := p.parseExprList(token.RPAREN)
		if args == nil {
			return nil
		}
		switch len(args) {
		case 1:
			// A single parenthesized expression is the condition; the
			// true/false values follow in directive form.
			cond = args[0]
		case 2:
			return p.newConditional(ifPos, args[0], args[1], nil)
		case 3:
			return p.newConditional(ifPos, args[0], args[1], args[2])
		default:
			p.setTokenError(p.curToken, "conditional requires 2 or 3 arguments (got %d)", len(args))
			return nil
		}
	} else {
		if err := p.nextToken(); err != nil { // move to condition start
			return nil
		}
		cond = p.parseExpression(LOWEST)
		if cond == nil {
			return nil
		}
	}

	// Directive form: optional `then`, required true value.
	if p.peekTokenIs(token.THEN) {
		p.nextToken()
	} else if !p.peekStartsExpression() {
		p.peekError("conditional", token.THEN, p.peekToken)
		return nil
	}
	if err := p.nextToken(); err != nil {
		return nil
	}
	ifTrue := p.parseExpression(LOWEST)
	if ifTrue == nil {
		return nil
	}

	// Optional `else` or juxtaposed false value.
	var ifFalse ast.Expr
	if p.peekTokenIs(token.ELSE) || p.peekStartsExpression() {
		if p.peekTokenIs(token.ELSE) {
			p.nextToken()
		}
		if err := p.nextToken(); err != nil {
			return nil
		}
		ifFalse = p.parseExpression(LOWEST)
		if ifFalse == nil {
			return nil
		}
	}
	return p.newConditional(ifPos, cond, ifTrue, ifFalse)
}

func (p *Parser) newConditional(ifPos token.Position, cond, ifTrue, ifFalse ast.Expr) ast.Expr {
	expr, err := ast.NewConditional(cond, ifTrue, ifFalse, ifPos)
	if err != nil {
		p.setTokenError(p.curToken, "%s", err.Error())
		return nil
	}
	return expr
}

// peekStartsExpression returns true if the next token can begin an
// expression value, which allows the juxtaposed conditional forms.
func (p *Parser) peekStartsExpression() bool {
	switch p.peekToken.Type {
	case token.EOF, token.ILLEGAL:
		return false
	}
	_, ok := p.prefixParseFns[p.peekToken.Type]
	return ok
}

// parseCall parses the argument list of a function call or aggregate. The
// callee must be a bare identifier, which arrives here as a field
// reference.
func (p *Parser) parseCall(fn ast.Expr) ast.Expr {
	ref, ok := fn.(*ast.FieldRef)
	if !ok {
		p.setTokenError(p.curToken, "expected a function name before call arguments")
		return nil
	}
	lparen := p.curToken.StartPosition
	args := p.parseExprList(token.RPAREN)
	if args == nil {
		return nil
	}
	rparen := p.curToken.StartPosition

	if keyword, ok := aggregateKeywords[strings.ToLower(ref.Name)]; ok {
		return p.finishAggregate(ref, keyword, lparen, args, rparen)
	}
	return &ast.Call{
		NamePos: ref.NamePos,
		Name:    ref.Name,
		Lparen:  lparen,
		Args:    args,
		Rparen:  rparen,
	}
}

// finishAggregate validates aggregate arguments: a target expression plus
// an optional scope, which must be a string literal.
func (p *Parser) finishAggregate(ref *ast.FieldRef, keyword string, lparen token.Position, args []ast.Expr, rparen token.Position) ast.Expr {
	if len(args) == 0 || len(args) > 2 {
		p.setTokenError(p.curToken,
			"aggregate %s requires a target expression and an optional scope (got %d arguments)",
			keyword, len(args))
		return nil
	}
	var scope *ast.String
	if len(args) == 2 {
		s, ok := args[1].(*ast.String)
		if !ok {
			p.setTokenError(p.curToken, "aggregate scope must be a string literal")
			return nil
		}
		scope = s
	}
	expr, err := ast.NewAggregate(keyword, args[0], scope, ref.NamePos, lparen, rparen)
	if err != nil {
		p.setTokenError(p.curToken, "%s", err.Error())
		return nil
	}
	return expr
}

// parseExprList parses a comma-separated list of expressions until the end
// token. Returns a non-nil (possibly empty) slice on success.
func (p *Parser) parseExprList(end token.Type) []ast.Expr {
	list := make([]ast.Expr, 0)
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	if err := p.nextToken(); err != nil {
		return nil
	}
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		if p.err == nil {
			p.setTokenError(p.curToken, "invalid expression in argument list")
		}
		return nil
	}
	list = append(list, expr)
	for p.peekTokenIs(token.COMMA) {
		if p.cancelled() {
			return nil
		}
		if err := p.nextToken(); err != nil { // move to the comma
			return nil
		}
		if err := p.nextToken(); err != nil { // move to the next element
			return nil
		}
		expr = p.parseExpression(LOWEST)
		if expr == nil {
			return nil
		}
		list = append(list, expr)
	}
	if !p.expectPeek("argument list", end) {
		return nil
	}
	return list
}
