// Package field defines the field-code record consumed by the compiler.
// Field codes are produced by an external extraction stage; this package
// only models them.
package field

// Category classifies a field code by the directive it carries.
type Category string

// Field-code categories
const (
	MergeField  Category = "merge-field"
	If          Category = "if"
	PageNumber  Category = "page-number"
	NumPages    Category = "num-pages"
	Date        Category = "date"
	Time        Category = "time"
	Unsupported Category = "unsupported"
)

// Code is a single placeholder directive extracted from a source document.
// Codes are immutable values; the compiler never modifies them.
type Code struct {
	// ID is a stable locator assigned by the extraction stage.
	ID string

	// Category classifies the directive.
	Category Category

	// Text is the raw source text of the directive.
	Text string
}
