// Package sandbox statically checks generated expression text against a
// rule set of disallowed constructs. Checks are informational: a
// violation never blocks generation, and the caller decides whether an
// unsafe expression may be persisted.
package sandbox

import (
	"fmt"
	"regexp"
)

// Rule matches one disallowed construct. Patterns are regular
// expressions, matched case-insensitively against the whole expression
// text.
type Rule struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
	Message string `yaml:"message"`

	re *regexp.Regexp
}

// RuleSet is a compiled, ready-to-run group of rules.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet compiles a group of rules. A rule with an empty name or an
// invalid pattern fails the whole set.
func NewRuleSet(rules ...Rule) (RuleSet, error) {
	compiled := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if rule.Name == "" {
			return RuleSet{}, fmt.Errorf("sandbox rule with pattern %q has no name", rule.Pattern)
		}
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			return RuleSet{}, fmt.Errorf("sandbox rule %q: %w", rule.Name, err)
		}
		rule.re = re
		compiled = append(compiled, rule)
	}
	return RuleSet{rules: compiled}, nil
}

// Rules returns the rules in the set, in check order.
func (s RuleSet) Rules() []Rule {
	return s.rules
}

// Violation reports one matched rule. Fragment is the first matched
// portion of the expression text.
type Violation struct {
	Rule     string
	Message  string
	Fragment string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s (%q)", v.Rule, v.Message, v.Fragment)
}

// Result is the outcome of a sandbox check. OK is true when no rule
// matched.
type Result struct {
	OK         bool
	Violations []Violation
}

// Check runs the given rule sets over expression text, in order. With no
// rule sets, the default set applies.
func Check(expr string, sets ...RuleSet) Result {
	if len(sets) == 0 {
		sets = []RuleSet{Default()}
	}
	var violations []Violation
	for _, set := range sets {
		for _, rule := range set.rules {
			match := rule.re.FindString(expr)
			if match == "" {
				continue
			}
			violations = append(violations, Violation{
				Rule:     rule.Name,
				Message:  rule.Message,
				Fragment: match,
			})
		}
	}
	return Result{OK: len(violations) == 0, Violations: violations}
}

// defaultRules covers the constructs a report host must never evaluate:
// framework namespace access, late-bound object creation, process and
// environment access, and reflection.
var defaultRules = mustRules(
	Rule{
		Name:    "system-namespace",
		Pattern: `\bSystem\s*\.`,
		Message: "expression references the System namespace",
	},
	Rule{
		Name:    "visualbasic-namespace",
		Pattern: `\bMicrosoft\s*\.\s*VisualBasic\b`,
		Message: "expression references the Microsoft.VisualBasic namespace",
	},
	Rule{
		Name:    "create-object",
		Pattern: `\bCreateObject\s*\(`,
		Message: "late-bound object creation is not allowed",
	},
	Rule{
		Name:    "shell",
		Pattern: `\bShell\s*\(`,
		Message: "command execution is not allowed",
	},
	Rule{
		Name:    "get-type",
		Pattern: `\bGetType\b`,
		Message: "reflection is not allowed",
	},
	Rule{
		Name:    "environment-access",
		Pattern: `\bEnviron(ment)?\s*[.(]`,
		Message: "environment access is not allowed",
	},
	Rule{
		Name:    "process-access",
		Pattern: `\bProcess\s*[.(]`,
		Message: "process access is not allowed",
	},
	Rule{
		Name:    "statement-separator",
		Pattern: "[;`]",
		Message: "statement separators are not allowed in expressions",
	},
)

// Default returns the built-in rule set.
func Default() RuleSet {
	return defaultRules
}

func mustRules(rules ...Rule) RuleSet {
	set, err := NewRuleSet(rules...)
	if err != nil {
		panic(err)
	}
	return set
}
