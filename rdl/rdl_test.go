package rdl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
)

func TestEmptyDocumentOmitsDataElements(t *testing.T) {
	doc := New()
	require.Empty(t, doc.Validate())

	data, err := doc.Bytes()
	require.NoError(t, err)
	xml := string(data)
	require.NotContains(t, xml, "<DataSources")
	require.NotContains(t, xml, "<DataSets")
}

func TestDocumentWithDataSet(t *testing.T) {
	doc := New(WithDataSet("Orders"))
	require.Empty(t, doc.Validate())

	data, err := doc.Bytes()
	require.NoError(t, err)

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(data))
	root := parsed.Root()

	sets := root.FindElements("./DataSets/DataSet")
	require.Len(t, sets, 1)
	require.Equal(t, "Orders", sets[0].SelectAttrValue("Name", ""))

	// Exactly one placeholder field until real fields are added.
	fields := sets[0].FindElements("./Fields/Field")
	require.Len(t, fields, 1)
	require.Equal(t, "Field1", fields[0].SelectAttrValue("Name", ""))

	sources := root.FindElements("./DataSources/DataSource")
	require.Len(t, sources, 1)
}

func TestAddFieldReplacesPlaceholder(t *testing.T) {
	doc := New(WithDataSet("Orders"))
	doc.AddField("CustomerName", "")
	doc.AddField("Amount", "System.Decimal")
	require.Empty(t, doc.Diagnostics())

	data, err := doc.Bytes()
	require.NoError(t, err)
	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(data))

	fields := parsed.FindElements("//DataSet/Fields/Field")
	require.Len(t, fields, 2)
	require.Equal(t, "CustomerName", fields[0].SelectAttrValue("Name", ""))
	require.Equal(t, "Amount", fields[1].SelectAttrValue("Name", ""))
	require.NotContains(t, string(data), "Field1")
}

func TestAddFieldWithoutDataSet(t *testing.T) {
	doc := New()
	doc.AddField("CustomerName", "")

	diags := doc.Diagnostics()
	require.Len(t, diags, 1)
	require.Equal(t, "AddField", diags[0].Op)
	require.Contains(t, diags[0].Message, "missing anchor")

	// The document is still valid; the mutation was a no-op.
	require.Empty(t, doc.Validate())
}

func TestBodyWidthSubtractsMargins(t *testing.T) {
	doc := New() // 8.50in page, 1.00in margins
	require.Equal(t, In(6, 50), doc.BodyWidth())

	data, err := doc.Bytes()
	require.NoError(t, err)
	require.Contains(t, string(data), "<Width>6.50in</Width>")
	require.Contains(t, string(data), "<PageWidth>8.50in</PageWidth>")

	doc = New(
		WithPageSize(In(11, 0), In(8, 50)),
		WithMargins(In(0, 50), In(0, 50), In(0, 25), In(0, 25)),
	)
	require.Equal(t, In(10, 0), doc.BodyWidth())
}

func TestAddTextbox(t *testing.T) {
	doc := New()
	doc.AddTextbox("Textbox1", `=Fields!CustomerName.Value`)
	doc.AddTextbox("Textbox2", `=Globals!PageNumber`)
	require.Empty(t, doc.Diagnostics())
	require.Empty(t, doc.Validate())

	data, err := doc.Bytes()
	require.NoError(t, err)
	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(data))

	boxes := parsed.FindElements("//Body/ReportItems/Textbox")
	require.Len(t, boxes, 2)
	require.Equal(t, "Textbox1", boxes[0].SelectAttrValue("Name", ""))

	value := boxes[0].FindElement(".//TextRun/Value")
	require.NotNil(t, value)
	require.Equal(t, `=Fields!CustomerName.Value`, value.Text())

	// Boxes stack vertically.
	require.Equal(t, "0.00in", boxes[0].FindElement("./Top").Text())
	require.Equal(t, "0.25in", boxes[1].FindElement("./Top").Text())
}

func TestTextSanitization(t *testing.T) {
	doc := New()
	doc.AddTextbox("Textbox1", "before\fafter\x00end")

	data, err := doc.Bytes()
	require.NoError(t, err)
	xml := string(data)
	require.Contains(t, xml, "beforeafterend")
	require.NotContains(t, xml, "\f")
	require.NotContains(t, xml, "\x00")
}

func TestSetHeaderAppendsFreshBlocks(t *testing.T) {
	doc := New()
	doc.SetHeader(`=Globals!PageNumber`)
	doc.SetHeader(`="Second header"`)
	doc.SetFooter(`=Globals!TotalPages`)
	require.Empty(t, doc.Validate())

	data, err := doc.Bytes()
	require.NoError(t, err)
	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(data))

	headers := parsed.FindElements("//Page/PageHeader")
	require.Len(t, headers, 2) // not idempotent: each call appends
	for _, h := range headers {
		require.NotNil(t, h.FindElement("./PrintOnFirstPage"))
		require.NotNil(t, h.FindElement("./PrintOnLastPage"))
		height, ok := parseInches(h.FindElement("./Height").Text())
		require.True(t, ok)
		require.Greater(t, int(height), 0)
	}
	require.Len(t, parsed.FindElements("//Page/PageFooter"), 1)
}

func TestSetBodyHeight(t *testing.T) {
	doc := New()
	doc.SetBodyHeight(In(4, 25))

	data, err := doc.Bytes()
	require.NoError(t, err)
	require.Contains(t, string(data), "<Height>4.25in</Height>")
}

func TestReportID(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	doc := New(WithReportID(id))
	require.Equal(t, id, doc.ReportID())

	data, err := doc.Bytes()
	require.NoError(t, err)
	require.Contains(t, string(data), "<rd:ReportID>"+id.String()+"</rd:ReportID>")

	// Without the option, each document gets a fresh id.
	a, b := New(), New()
	require.NotEqual(t, a.ReportID(), b.ReportID())
}

func TestValidateCatchesCorruption(t *testing.T) {
	doc := New(WithDataSet("Orders"))

	// Remove all fields from the data set behind the API's back.
	fields := doc.root.FindElement("./DataSets/DataSet/Fields")
	require.NotNil(t, fields)
	for _, f := range fields.FindElements("./Field") {
		fields.RemoveChild(f)
	}

	problems := doc.Validate()
	require.NotEmpty(t, problems)
	found := false
	for _, p := range problems {
		if strings.Contains(p.Message, "field collection is empty") {
			found = true
		}
	}
	require.True(t, found, "problems: %v", problems)

	// Serialization is refused for an invalid document.
	_, err := doc.Bytes()
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed validation")

	var buf bytes.Buffer
	_, err = doc.WriteTo(&buf)
	require.Error(t, err)
	require.Zero(t, buf.Len())
}

func TestValidateEmptyDataSourcesContainer(t *testing.T) {
	doc := New(WithDataSet("Orders"))
	sources := doc.root.SelectElement("DataSources")
	require.NotNil(t, sources)
	for _, s := range sources.FindElements("./DataSource") {
		sources.RemoveChild(s)
	}

	problems := doc.Validate()
	require.NotEmpty(t, problems)
	found := false
	for _, p := range problems {
		if p.Location == "DataSources" {
			found = true
		}
	}
	require.True(t, found, "problems: %v", problems)
}

func TestCheckAggregatesProblems(t *testing.T) {
	doc := New(WithDataSet("Orders"))
	require.NoError(t, doc.Check())

	id := doc.root.SelectElement("rd:ReportID")
	require.NotNil(t, id)
	id.SetText("not-a-uuid")

	err := doc.Check()
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a valid uuid")
}

func TestSerializationDeclaration(t *testing.T) {
	doc := New()
	data, err := doc.Bytes()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), `<?xml version="1.0" encoding="utf-8"?>`))
	require.Contains(t, string(data),
		`xmlns="http://schemas.microsoft.com/sqlserver/reporting/2008/01/reportdefinition"`)
}
