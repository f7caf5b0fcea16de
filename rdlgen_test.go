package rdlgen

import (
	"context"
	"testing"

	"github.com/deepnoodle-ai/rdlgen/field"
	"github.com/deepnoodle-ai/rdlgen/parser"
	"github.com/deepnoodle-ai/rdlgen/sandbox"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	codes := []field.Code{
		{ID: "f1", Category: field.MergeField, Text: "MERGEFIELD CustomerName"},
		{ID: "f2", Category: field.If, Text: `IF Amount > 100 "big" "small"`},
		{ID: "f3", Category: field.PageNumber},
		{ID: "f4", Category: field.Date},
	}
	result, err := Convert(context.Background(), codes, WithDataSet("Orders"))
	require.NoError(t, err)
	require.Len(t, result.Items, 4)

	require.Equal(t, "=Fields!CustomerName.Value", result.Items[0].Expression)
	require.Equal(t, `=IIf((Fields!Amount.Value > 100), "big", "small")`, result.Items[1].Expression)
	require.Equal(t, "=Globals!PageNumber", result.Items[2].Expression)
	require.Equal(t, "=Today()", result.Items[3].Expression)
	for _, item := range result.Items {
		require.NoError(t, item.Err)
		require.True(t, item.Sandbox.OK)
	}

	require.Len(t, result.Branches, 1)
	require.Equal(t, "cond_1", result.Branches[0].ID)
	require.Equal(t, "f2", result.Branches[0].SourceID)
	require.False(t, result.SwitchCandidate)

	require.NotNil(t, result.Document)
	data, err := result.Document.Bytes()
	require.NoError(t, err)
	xml := string(data)
	require.Contains(t, xml, "=Fields!CustomerName.Value")
	require.Contains(t, xml, `"Orders"`)
}

func TestConvertCapturesPerItemErrors(t *testing.T) {
	codes := []field.Code{
		{ID: "bad", Category: field.If, Text: `IF Amount > "x`},
		{ID: "skip", Category: field.Unsupported, Text: "INDEX \\e"},
		{ID: "good", Category: field.MergeField, Text: "MERGEFIELD Name"},
	}
	result, err := Convert(context.Background(), codes)
	require.NoError(t, err)
	require.Len(t, result.Items, 3)

	require.Error(t, result.Items[0].Err)
	require.IsType(t, &parser.SyntaxError{}, result.Items[0].Err)

	require.Error(t, result.Items[1].Err)
	require.IsType(t, &parser.UnsupportedError{}, result.Items[1].Err)

	require.NoError(t, result.Items[2].Err)
	require.Equal(t, "=Fields!Name.Value", result.Items[2].Expression)

	// Failed items never reach the document.
	data, err := result.Document.Bytes()
	require.NoError(t, err)
	require.Contains(t, string(data), "=Fields!Name.Value")
	require.NotContains(t, string(data), "INDEX")
}

func TestConvertSwitchCandidate(t *testing.T) {
	codes := []field.Code{
		{ID: "c1", Category: field.If, Text: `IF Status = "A" "active" "other"`},
		{ID: "c2", Category: field.If, Text: `IF Status = "B" "blocked" "other"`},
		{ID: "c3", Category: field.If, Text: `IF Status = "C" "closed" "other"`},
	}
	result, err := Convert(context.Background(), codes)
	require.NoError(t, err)
	require.Len(t, result.Branches, 3)
	require.Equal(t, []string{"cond_1", "cond_2", "cond_3"}, []string{
		result.Branches[0].ID, result.Branches[1].ID, result.Branches[2].ID,
	})
	require.True(t, result.SwitchCandidate)

	// One branch testing a different field disqualifies the group.
	codes = append(codes, field.Code{
		ID: "c4", Category: field.If, Text: `IF Region = "EU" "eu" "other"`,
	})
	result, err = Convert(context.Background(), codes)
	require.NoError(t, err)
	require.False(t, result.SwitchCandidate)
}

func TestConvertDepthBoundCoversBranches(t *testing.T) {
	codes := []field.Code{
		{ID: "deep", Category: field.If, Text: `if(a, if(b, if(c, "1", "2"), "3"), "z")`},
	}

	// An item rejected by the depth bound contributes no branch either;
	// it is reported once in the branch diagnostics instead.
	result, err := Convert(context.Background(), codes, WithMaxDepth(3))
	require.NoError(t, err)
	require.Error(t, result.Items[0].Err)
	require.Contains(t, result.Items[0].Err.Error(), "maximum nesting depth")
	require.Empty(t, result.Branches)
	require.Len(t, result.BranchDiagnostics, 1)
	require.Equal(t, "deep", result.BranchDiagnostics[0].CodeID)

	// The default bound accepts the same code everywhere.
	result, err = Convert(context.Background(), codes)
	require.NoError(t, err)
	require.NoError(t, result.Items[0].Err)
	require.Len(t, result.Branches, 1)
	require.Empty(t, result.BranchDiagnostics)
}

func TestConvertSandboxFindings(t *testing.T) {
	codes := []field.Code{
		{ID: "f1", Category: field.MergeField, Text: "MERGEFIELD Shell"},
	}

	// The default rules pass a plain field reference.
	result, err := Convert(context.Background(), codes)
	require.NoError(t, err)
	require.True(t, result.Items[0].Sandbox.OK)

	// A custom rule set can flag the same expression.
	strict, err := sandbox.NewRuleSet(sandbox.Rule{
		Name:    "no-shell-field",
		Pattern: `Fields!Shell`,
		Message: "field name is reserved",
	})
	require.NoError(t, err)
	result, err = Convert(context.Background(), codes, WithRules(strict))
	require.NoError(t, err)
	require.False(t, result.Items[0].Sandbox.OK)
	require.Equal(t, "no-shell-field", result.Items[0].Sandbox.Violations[0].Rule)
}

func TestConvertFormFeedStripped(t *testing.T) {
	codes := []field.Code{
		{ID: "f1", Category: field.If, Text: "IF Active \"with\ffeed\" \"no\""},
	}
	result, err := Convert(context.Background(), codes)
	require.NoError(t, err)
	require.NoError(t, result.Items[0].Err)

	data, err := result.Document.Bytes()
	require.NoError(t, err)
	require.NotContains(t, string(data), "\f")
	require.Contains(t, string(data), "withfeed")
}

func TestConvertCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Convert(ctx, []field.Code{
		{ID: "f1", Category: field.MergeField, Text: "MERGEFIELD Name"},
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestConvertEmptyBatch(t *testing.T) {
	result, err := Convert(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, result.Items)
	require.Empty(t, result.Branches)
	require.False(t, result.SwitchCandidate)

	// The skeleton document alone is valid and serializable.
	_, err = result.Document.Bytes()
	require.NoError(t, err)
}
