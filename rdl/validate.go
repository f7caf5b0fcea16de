package rdl

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
)

// Problem is one structural violation found by validation.
type Problem struct {
	Severity string
	Message  string
	Location string
}

func (p Problem) Error() string {
	return fmt.Sprintf("%s at %s: %s", p.Severity, p.Location, p.Message)
}

// Validate checks the document against its structural contract and
// returns every violation found in a single pass. An empty result means
// the document may be serialized.
func (d *Document) Validate() []Problem {
	var problems []Problem
	report := func(location, format string, args ...any) {
		problems = append(problems, Problem{
			Severity: "error",
			Message:  fmt.Sprintf(format, args...),
			Location: location,
		})
	}

	if d.root.SelectAttrValue("xmlns", "") != NamespaceReportDefinition {
		report("Report", "report namespace is missing or wrong")
	}
	if d.root.SelectAttrValue("xmlns:rd", "") != NamespaceReportDesigner {
		report("Report", "designer namespace is missing or wrong")
	}

	// An empty data-sources container violates the schema outright.
	if sources := d.root.SelectElement("DataSources"); sources != nil {
		if len(sources.SelectElements("DataSource")) == 0 {
			report("DataSources", "container present but empty")
		}
	}
	if sets := d.root.SelectElement("DataSets"); sets != nil {
		for _, set := range sets.SelectElements("DataSet") {
			name := set.SelectAttrValue("Name", "")
			if name == "" {
				report("DataSets/DataSet", "data set has no name")
				name = "?"
			}
			location := fmt.Sprintf("DataSets/DataSet[%s]", name)
			fields := set.SelectElement("Fields")
			if fields == nil || len(fields.SelectElements("Field")) == 0 {
				report(location, "field collection is empty")
			}
			if set.SelectElement("Query") == nil {
				report(location, "data set has no query")
			}
		}
	}

	body := d.root.SelectElement("Body")
	if body == nil {
		report("Body", "body is missing")
	} else {
		d.checkLength(&problems, body, "Height", "Body/Height")
	}
	d.checkLength(&problems, d.root, "Width", "Width")

	page := d.root.SelectElement("Page")
	if page == nil {
		report("Page", "page is missing")
	} else {
		for _, tag := range []string{"PageHeight", "PageWidth", "LeftMargin", "RightMargin", "TopMargin", "BottomMargin"} {
			d.checkLength(&problems, page, tag, "Page/"+tag)
		}
		for _, tag := range []string{"PageHeader", "PageFooter"} {
			for _, band := range page.SelectElements(tag) {
				location := "Page/" + tag
				height, ok := lengthOf(band, "Height")
				if !ok || height <= 0 {
					report(location, "band height must be positive")
				}
				if band.SelectElement("PrintOnFirstPage") == nil ||
					band.SelectElement("PrintOnLastPage") == nil {
					report(location, "band is missing print-page flags")
				}
			}
		}
	}

	id := d.root.SelectElement("rd:ReportID")
	if id == nil {
		report("rd:ReportID", "report id is missing")
	} else if _, err := uuid.FromString(id.Text()); err != nil {
		report("rd:ReportID", "report id %q is not a valid uuid", id.Text())
	}

	return problems
}

func (d *Document) checkLength(problems *[]Problem, parent *etree.Element, tag, location string) {
	if _, ok := lengthOf(parent, tag); !ok {
		*problems = append(*problems, Problem{
			Severity: "error",
			Message:  "missing or malformed length",
			Location: location,
		})
	}
}

func lengthOf(parent *etree.Element, tag string) (Inches, bool) {
	el := parent.SelectElement(tag)
	if el == nil {
		return 0, false
	}
	return parseInches(el.Text())
}

// Check runs validation and folds the problems into a single error, or
// nil when the document is valid.
func (d *Document) Check() error {
	var result *multierror.Error
	for _, p := range d.Validate() {
		result = multierror.Append(result, p)
	}
	return result.ErrorOrNil()
}

// WriteTo serializes the document as indented UTF-8 XML. A document that
// fails validation is refused: a non-conformant artifact never ships.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	if err := d.Check(); err != nil {
		return 0, fmt.Errorf("document failed validation: %w", err)
	}
	d.doc.Indent(2)
	return d.doc.WriteTo(w)
}

// Bytes serializes the document, with the same validation gate as
// WriteTo.
func (d *Document) Bytes() ([]byte, error) {
	if err := d.Check(); err != nil {
		return nil, fmt.Errorf("document failed validation: %w", err)
	}
	d.doc.Indent(2)
	return d.doc.WriteToBytes()
}
