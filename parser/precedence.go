package parser

import "github.com/deepnoodle-ai/rdlgen/token"

// Precedence order for operators
const (
	_ int = iota
	LOWEST
	CONDOR      // or
	CONDAND     // and
	LESSGREATER // = <> < <= > >=
	CONCAT      // &
	SUM         // + -
	PRODUCT     // * / % mod
	PREFIX      // -X or not X
	CALL        // Name(X)
)

// Precedences for each token type
var precedences = map[token.Type]int{
	token.OR:        CONDOR,
	token.AND:       CONDAND,
	token.EQ:        LESSGREATER,
	token.NOT_EQ:    LESSGREATER,
	token.LT:        LESSGREATER,
	token.LT_EQUALS: LESSGREATER,
	token.GT:        LESSGREATER,
	token.GT_EQUALS: LESSGREATER,
	token.AMPERSAND: CONCAT,
	token.PLUS:      SUM,
	token.MINUS:     SUM,
	token.ASTERISK:  PRODUCT,
	token.SLASH:     PRODUCT,
	token.PERCENT:   PRODUCT,
	token.MOD:       PRODUCT,
	token.LPAREN:    CALL,
}
