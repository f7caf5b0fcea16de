package parser

import (
	"context"
	"testing"

	"github.com/deepnoodle-ai/rdlgen/token"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Re-parsing a tree's textual form must reproduce the tree, modulo token
// positions. This covers every node kind.
func TestRoundTrip(t *testing.T) {
	tests := []string{
		`"hello"`,
		`42`,
		`3.14`,
		`true`,
		`false`,
		`null`,
		`#2024-01-15#`,
		`CustomerName`,
		`$Region`,
		`@PageNumber`,
		`(Amount > 100)`,
		`(a + (b * c))`,
		`(not Active)`,
		`(-5)`,
		`upper(Name)`,
		`substring(Name, 1, 3)`,
		`if(Amount > 100, "big", "small")`,
		`if(Active, "yes")`,
		`Sum(Amount)`,
		`Sum(Amount, "OrderGroup")`,
		`if((Status = "A"), "active", if((Status = "B"), "blocked", "other"))`,
	}
	ignorePositions := cmpopts.IgnoreTypes(token.Position{})
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			first, err := Parse(context.Background(), input)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			second, err := Parse(context.Background(), first.String())
			if err != nil {
				t.Fatalf("re-parse %q: %v", first.String(), err)
			}
			if diff := cmp.Diff(first, second, ignorePositions); diff != "" {
				t.Errorf("tree mismatch after re-parse (-first +second):\n%s", diff)
			}
		})
	}
}
