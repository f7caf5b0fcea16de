package rdl

import (
	"fmt"
	"strconv"
	"strings"
)

// Inches is a length in hundredths of an inch. Fixed-point arithmetic
// keeps geometry exact: floating-point inch values round-trip badly
// through the document's textual form.
type Inches int

// Default page geometry (US letter, one-inch margins).
const (
	LetterWidth   Inches = 850
	LetterHeight  Inches = 1100
	DefaultMargin Inches = 100

	// HeaderHeight is the height given to appended header and footer
	// blocks.
	HeaderHeight Inches = 50
)

// In builds a length from whole inches and hundredths.
func In(whole, hundredths int) Inches {
	return Inches(whole*100 + hundredths)
}

// String renders the length in the document's textual form, e.g. "8.50in".
func (i Inches) String() string {
	sign := ""
	if i < 0 {
		sign = "-"
		i = -i
	}
	return fmt.Sprintf("%s%d.%02din", sign, i/100, i%100)
}

// parseInches parses the textual form back into a length. Used by
// validation to confirm geometry values are well formed.
func parseInches(s string) (Inches, bool) {
	s, ok := strings.CutSuffix(s, "in")
	if !ok {
		return 0, false
	}
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	w, err := strconv.Atoi(whole)
	if err != nil || w < 0 {
		return 0, false
	}
	n := Inches(w * 100)
	if frac != "" {
		if len(frac) > 2 {
			frac = frac[:2]
		}
		for len(frac) < 2 {
			frac += "0"
		}
		f, err := strconv.Atoi(frac)
		if err != nil || f < 0 {
			return 0, false
		}
		n += Inches(f)
	}
	if negative {
		n = -n
	}
	return n, true
}
