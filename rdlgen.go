// Package rdlgen compiles field codes extracted from source documents
// into report-definition (RDL) expressions and synthesizes an RDL
// document embedding them.
//
// The pipeline per field code is parse, generate, sandbox-check,
// optimize. Compilation is best-effort over a batch: one bad code never
// aborts the others, and its failure is captured in the per-item result.
package rdlgen

import (
	"context"
	"fmt"

	"github.com/deepnoodle-ai/rdlgen/conditional"
	"github.com/deepnoodle-ai/rdlgen/field"
	"github.com/deepnoodle-ai/rdlgen/generator"
	"github.com/deepnoodle-ai/rdlgen/optimizer"
	"github.com/deepnoodle-ai/rdlgen/parser"
	"github.com/deepnoodle-ai/rdlgen/rdl"
	"github.com/deepnoodle-ai/rdlgen/sandbox"
)

// ItemResult is the outcome of compiling one field code.
type ItemResult struct {
	// CodeID identifies the originating field code.
	CodeID string

	// Expression is the final optimized expression text, including the
	// leading expression marker. Empty when Err is set.
	Expression string

	// Sandbox holds the policy-check outcome for the generated text.
	// Violations are informational; the expression is still produced.
	Sandbox sandbox.Result

	// Err is the compile failure for this item, if any.
	Err error
}

// Result is the outcome of a batch conversion.
type Result struct {
	// Items holds one entry per supplied field code, in order.
	Items []ItemResult

	// Branches are the conditional branches extracted from the batch,
	// ids assigned in supply order.
	Branches []conditional.Branch

	// BranchDiagnostics records conditional codes that could not
	// contribute a branch.
	BranchDiagnostics []conditional.Diagnostic

	// SwitchCandidate reports whether the extracted branches all test the
	// same field and could be expressed as a switch.
	SwitchCandidate bool

	// Document is the synthesized report. It may carry validation
	// problems; serialization is gated on Document.Check.
	Document *rdl.Document
}

// Convert compiles a batch of field codes and synthesizes a report
// document containing one text box per successfully compiled code. The
// returned error is non-nil only for whole-batch failures such as
// context cancellation.
func Convert(ctx context.Context, codes []field.Code, opts ...Option) (*Result, error) {
	cfg := newConfig(opts...)
	logger := cfg.logger

	result := &Result{Items: make([]ItemResult, 0, len(codes))}
	parserOpts := []parser.Option{parser.WithMaxDepth(cfg.maxDepth)}

	for _, code := range codes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		item := ItemResult{CodeID: code.ID}
		expr, err := parser.ParseFieldCode(ctx, code, parserOpts...)
		if err != nil {
			item.Err = err
			logger.Warn().
				Str("code_id", code.ID).
				Str("category", string(code.Category)).
				Err(err).
				Msg("field code failed to compile")
			result.Items = append(result.Items, item)
			continue
		}
		text := generator.Expression(optimizer.Tree(expr))
		item.Sandbox = sandbox.Check(text, cfg.rules...)
		if !item.Sandbox.OK {
			logger.Warn().
				Str("code_id", code.ID).
				Int("violations", len(item.Sandbox.Violations)).
				Msg("expression violates sandbox rules")
		}
		item.Expression = optimizer.Optimize(text)
		logger.Debug().
			Str("code_id", code.ID).
			Str("expression", item.Expression).
			Msg("compiled field code")
		result.Items = append(result.Items, item)
	}

	result.Branches, result.BranchDiagnostics = conditional.Extract(ctx, codes, parserOpts...)
	result.SwitchCandidate = conditional.CanConvertToSwitch(result.Branches)

	doc := rdl.New(cfg.docOpts...)
	n := 0
	for _, item := range result.Items {
		if item.Err != nil {
			continue
		}
		n++
		doc.AddTextbox(fmt.Sprintf("Textbox%d", n), item.Expression)
	}
	result.Document = doc

	logger.Info().
		Int("codes", len(codes)).
		Int("compiled", n).
		Int("branches", len(result.Branches)).
		Bool("switch_candidate", result.SwitchCandidate).
		Msg("conversion complete")
	return result, nil
}
