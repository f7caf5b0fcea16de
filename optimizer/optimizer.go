// Package optimizer simplifies generated expression text. The primary
// simplifications run on the expression tree before generation; the text
// passes remain as a secondary layer for expressions that arrive
// as text only.
package optimizer

import (
	"regexp"
	"strings"
)

// Optimize applies the text-level rewrite passes, in order, to generated
// expression text. The passes never change expression semantics.
func Optimize(expr string) string {
	expr = collapseParens(expr)
	expr = collapseDoubleNegation(expr)
	expr = foldConstantConditionals(expr)
	expr = simplifyNullChecks(expr)
	return expr
}

// redundantParens matches a directly nested parenthesis pair with no other
// parentheses between them: ((X)).
var redundantParens = regexp.MustCompile(`\(\(([^()]*)\)\)`)

// collapseParens rewrites ((X)) to (X), iterated to a fixed point. Each
// iteration strictly shrinks the text, so termination is guaranteed.
func collapseParens(expr string) string {
	for {
		next := redundantParens.ReplaceAllString(expr, "($1)")
		if next == expr {
			return expr
		}
		expr = next
	}
}

var doubleNegation = regexp.MustCompile(`(?i)\bnot\s+not\s+`)

// collapseDoubleNegation rewrites "Not Not X" to "X" in a single pass.
// Deeper negation chains are not recursively simplified here; the tree
// pass handles those before generation.
func collapseDoubleNegation(expr string) string {
	return doubleNegation.ReplaceAllString(expr, "")
}

// foldConstantConditionals collapses a ternary call whose condition is the
// literal True or False keyword to the corresponding branch text. Single
// pass: a folded branch is not re-scanned for further constant folding.
func foldConstantConditionals(expr string) string {
	var b strings.Builder
	i := 0
	for i < len(expr) {
		j := indexIIf(expr, i)
		if j < 0 {
			b.WriteString(expr[i:])
			break
		}
		b.WriteString(expr[i:j])

		args, end, ok := splitCallArgs(expr, j+len("IIf("))
		if !ok || len(args) != 3 {
			// Malformed or unexpected shape: emit the call opener and keep
			// scanning inside it.
			b.WriteString(expr[j : j+len("IIf(")])
			i = j + len("IIf(")
			continue
		}
		switch strings.ToLower(strings.TrimSpace(args[0])) {
		case "true":
			b.WriteString(strings.TrimSpace(args[1]))
			i = end + 1
		case "false":
			b.WriteString(strings.TrimSpace(args[2]))
			i = end + 1
		default:
			b.WriteString(expr[j : j+len("IIf(")])
			i = j + len("IIf(")
		}
	}
	return b.String()
}

// indexIIf returns the byte offset of the next case-insensitive "IIf("
// at or after start, or -1. The needle is plain ASCII, so comparing
// fixed four-byte windows keeps offsets valid even when the surrounding
// text contains runes whose lowercase form has a different byte length.
func indexIIf(expr string, start int) int {
	for i := start; i+4 <= len(expr); i++ {
		if (expr[i] == 'i' || expr[i] == 'I') && strings.EqualFold(expr[i:i+4], "iif(") {
			return i
		}
	}
	return -1
}

// simplifyNullChecks is a reserved pass for future IsNothing/Coalesce
// simplification. It currently returns its input unchanged.
func simplifyNullChecks(expr string) string {
	return expr
}

// splitCallArgs splits the argument text of a call starting just after its
// opening parenthesis. Top-level commas delimit arguments; nested
// parentheses and double-quoted strings (with doubled-quote escaping) are
// respected. Returns the arguments, the index of the closing parenthesis,
// and whether the call was well formed.
func splitCallArgs(expr string, start int) ([]string, int, bool) {
	var args []string
	depth := 0
	argStart := start
	i := start
	for i < len(expr) {
		switch expr[i] {
		case '"':
			// Skip the string literal, honoring doubled quotes.
			i++
			for i < len(expr) {
				if expr[i] == '"' {
					if i+1 < len(expr) && expr[i+1] == '"' {
						i += 2
						continue
					}
					break
				}
				i++
			}
			if i >= len(expr) {
				return nil, 0, false // unterminated string
			}
		case '(':
			depth++
		case ')':
			if depth == 0 {
				args = append(args, expr[argStart:i])
				return args, i, true
			}
			depth--
		case ',':
			if depth == 0 {
				args = append(args, expr[argStart:i])
				argStart = i + 1
			}
		}
		i++
	}
	return nil, 0, false // unterminated call
}
