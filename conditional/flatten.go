package conditional

import (
	"fmt"
	"iter"

	"github.com/deepnoodle-ai/rdlgen/ast"
)

// DefaultMaxDepth bounds nesting during flattening. Real documents rarely
// nest conditionals more than a handful of levels; anything deeper is
// treated as hostile or corrupt input.
const DefaultMaxDepth = 64

// MaxDepthError reports that flattening stopped because a nested
// conditional exceeded the configured depth bound.
type MaxDepthError struct {
	BranchID string
	Depth    int
}

func (e *MaxDepthError) Error() string {
	return fmt.Sprintf("conditional nesting in %s exceeds maximum depth of %d",
		e.BranchID, e.Depth)
}

// FlattenOption configures a Flatten call.
type FlattenOption func(*flattenConfig)

type flattenConfig struct {
	maxDepth int
}

// WithMaxDepth overrides the nesting bound used during flattening. Values
// below one are ignored.
func WithMaxDepth(depth int) FlattenOption {
	return func(cfg *flattenConfig) {
		if depth > 0 {
			cfg.maxDepth = depth
		}
	}
}

// Flatten yields a branch and every conditional nested inside its values,
// pre-order: the branch itself first, then the true-value subtree, then
// the false-value subtree. The sequence is lazy and finite but not
// restartable. If nesting exceeds the depth bound, the sequence yields a
// zero branch paired with a *MaxDepthError and stops; results already
// yielded remain valid.
func Flatten(branch Branch, opts ...FlattenOption) iter.Seq2[Branch, error] {
	cfg := flattenConfig{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(yield func(Branch, error) bool) {
		type item struct {
			branch Branch
			depth  int
		}
		// Explicit worklist instead of recursion: false side is pushed
		// first so the true side pops first.
		stack := []item{{branch: branch}}
		for len(stack) > 0 {
			it := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if it.depth >= cfg.maxDepth {
				yield(Branch{}, &MaxDepthError{BranchID: branch.ID, Depth: cfg.maxDepth})
				return
			}
			if !yield(it.branch, nil) {
				return
			}
			if nested, ok := nestedConditional(it.branch.FalseValue); ok {
				stack = append(stack, item{
					branch: deriveBranch(it.branch, nested, "_nested_false"),
					depth:  it.depth + 1,
				})
			}
			if nested, ok := nestedConditional(it.branch.TrueValue); ok {
				stack = append(stack, item{
					branch: deriveBranch(it.branch, nested, "_nested_true"),
					depth:  it.depth + 1,
				})
			}
		}
	}
}

// nestedConditional reports whether a branch value is itself a complete
// conditional worth descending into.
func nestedConditional(value ast.Expr) (*ast.Conditional, bool) {
	cond, ok := value.(*ast.Conditional)
	if !ok || cond.Cond == nil || cond.IfTrue == nil {
		return nil, false
	}
	return cond, true
}

// deriveBranch builds the branch for a nested conditional. The derived id
// extends the parent id with the side it was found on; the source id is
// inherited unchanged.
func deriveBranch(parent Branch, nested *ast.Conditional, tag string) Branch {
	return Branch{
		ID:         parent.ID + tag,
		Cond:       nested.Cond,
		TrueValue:  nested.IfTrue,
		FalseValue: nested.IfFalse,
		SourceID:   parent.SourceID,
	}
}
