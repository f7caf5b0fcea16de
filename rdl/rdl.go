// Package rdl synthesizes report-definition (RDL) documents. A Document
// wraps an XML element tree built against the 2008/01 report-definition
// schema; mutation operations locate structural anchors by path and
// record a diagnostic instead of failing when an anchor is missing.
// Structural completeness is enforced at validation time, and a document
// that fails validation is never serialized.
//
// A Document is not safe for concurrent mutation.
package rdl

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/gofrs/uuid"
)

// Schema namespaces for the generated document.
const (
	NamespaceReportDefinition = "http://schemas.microsoft.com/sqlserver/reporting/2008/01/reportdefinition"
	NamespaceReportDesigner   = "http://schemas.microsoft.com/SQLServer/reporting/reportdesigner"
)

// Diagnostic records a mutation that could not be applied, typically
// because its structural anchor was missing.
type Diagnostic struct {
	Op      string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Op, d.Message)
}

// Document is an in-progress report definition.
type Document struct {
	doc  *etree.Document
	root *etree.Element
	cfg  config

	// placeholder is the synthesized field in the data set; it is removed
	// when the first real field is added.
	placeholder *etree.Element

	diags []Diagnostic
}

type config struct {
	dataSet      string
	pageWidth    Inches
	pageHeight   Inches
	marginLeft   Inches
	marginRight  Inches
	marginTop    Inches
	marginBottom Inches
	bodyHeight   Inches
	reportID     uuid.UUID
}

// Option configures a new document.
type Option func(*config)

// WithDataSet requests a named data set. Without this option the document
// carries no data-source or data-set elements at all.
func WithDataSet(name string) Option {
	return func(cfg *config) {
		cfg.dataSet = name
	}
}

// WithPageSize overrides the default letter page size.
func WithPageSize(width, height Inches) Option {
	return func(cfg *config) {
		cfg.pageWidth = width
		cfg.pageHeight = height
	}
}

// WithMargins overrides the default one-inch margins.
func WithMargins(left, right, top, bottom Inches) Option {
	return func(cfg *config) {
		cfg.marginLeft = left
		cfg.marginRight = right
		cfg.marginTop = top
		cfg.marginBottom = bottom
	}
}

// WithReportID fixes the report identifier instead of generating one.
func WithReportID(id uuid.UUID) Option {
	return func(cfg *config) {
		cfg.reportID = id
	}
}

// New builds a skeleton document: report root with schema namespaces,
// empty body, page geometry, and a report id. With WithDataSet, a data
// source and a data set with one placeholder field are included; the
// placeholder is replaced by the first AddField call.
func New(opts ...Option) *Document {
	cfg := config{
		pageWidth:    LetterWidth,
		pageHeight:   LetterHeight,
		marginLeft:   DefaultMargin,
		marginRight:  DefaultMargin,
		marginTop:    DefaultMargin,
		marginBottom: DefaultMargin,
		bodyHeight:   In(2, 0),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.reportID.IsNil() {
		cfg.reportID = uuid.Must(uuid.NewV4())
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	root := doc.CreateElement("Report")
	root.CreateAttr("xmlns", NamespaceReportDefinition)
	root.CreateAttr("xmlns:rd", NamespaceReportDesigner)

	d := &Document{doc: doc, root: root, cfg: cfg}
	if cfg.dataSet != "" {
		d.buildDataSet()
	}
	d.buildLayout()
	root.CreateElement("rd:ReportID").SetText(cfg.reportID.String())
	return d
}

func (d *Document) buildDataSet() {
	name := sanitize(d.cfg.dataSet)
	sourceName := name + "Source"

	sources := d.root.CreateElement("DataSources")
	source := sources.CreateElement("DataSource")
	source.CreateAttr("Name", sourceName)
	props := source.CreateElement("ConnectionProperties")
	props.CreateElement("DataProvider").SetText("SQL")
	props.CreateElement("ConnectString")

	sets := d.root.CreateElement("DataSets")
	set := sets.CreateElement("DataSet")
	set.CreateAttr("Name", name)
	fields := set.CreateElement("Fields")
	d.placeholder = newField(fields, "Field1", "System.String")
	query := set.CreateElement("Query")
	query.CreateElement("DataSourceName").SetText(sourceName)
	query.CreateElement("CommandText")
}

func (d *Document) buildLayout() {
	body := d.root.CreateElement("Body")
	body.CreateElement("ReportItems")
	body.CreateElement("Height").SetText(d.cfg.bodyHeight.String())

	// Body width is the printable width, never the raw page width.
	printable := d.cfg.pageWidth - d.cfg.marginLeft - d.cfg.marginRight
	d.root.CreateElement("Width").SetText(printable.String())

	page := d.root.CreateElement("Page")
	page.CreateElement("PageHeight").SetText(d.cfg.pageHeight.String())
	page.CreateElement("PageWidth").SetText(d.cfg.pageWidth.String())
	page.CreateElement("LeftMargin").SetText(d.cfg.marginLeft.String())
	page.CreateElement("RightMargin").SetText(d.cfg.marginRight.String())
	page.CreateElement("TopMargin").SetText(d.cfg.marginTop.String())
	page.CreateElement("BottomMargin").SetText(d.cfg.marginBottom.String())
}

func newField(fields *etree.Element, name, typeName string) *etree.Element {
	field := fields.CreateElement("Field")
	field.CreateAttr("Name", name)
	field.CreateElement("DataField").SetText(name)
	field.CreateElement("rd:TypeName").SetText(typeName)
	return field
}

// BodyWidth returns the printable width the body was built with.
func (d *Document) BodyWidth() Inches {
	return d.cfg.pageWidth - d.cfg.marginLeft - d.cfg.marginRight
}

// ReportID returns the document's report identifier.
func (d *Document) ReportID() uuid.UUID {
	return d.cfg.reportID
}

// Diagnostics returns the mutations that were skipped so far, in order.
func (d *Document) Diagnostics() []Diagnostic {
	return d.diags
}

// anchor locates a structural anchor by path relative to the report root.
// Paths use schema-local names; designer elements carry the rd prefix. A
// missing anchor records a diagnostic and returns nil.
func (d *Document) anchor(op, path string) *etree.Element {
	el := d.root.FindElement(path)
	if el == nil {
		d.diags = append(d.diags, Diagnostic{
			Op:      op,
			Message: fmt.Sprintf("missing anchor %q, mutation skipped", path),
		})
	}
	return el
}
