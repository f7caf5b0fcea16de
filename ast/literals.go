package ast

import (
	"fmt"
	"time"

	"github.com/deepnoodle-ai/rdlgen/token"
)

// String is an expression node that holds a string literal.
type String struct {
	ValuePos token.Position // position of opening quote
	Value    string         // the unquoted string value
}

func (x *String) exprNode() {}

func (x *String) Pos() token.Position { return x.ValuePos }
func (x *String) End() token.Position { return x.ValuePos.Advance(len(x.Value) + 2) }

func (x *String) String() string { return fmt.Sprintf("%q", x.Value) }

// Number is an expression node that holds a numeric literal. The literal
// text is preserved so generation can emit the canonical source form.
type Number struct {
	ValuePos token.Position // position of the literal
	Literal  string         // the literal text (e.g. "42", "3.14")
	Value    float64        // the parsed value
}

func (x *Number) exprNode() {}

func (x *Number) Pos() token.Position { return x.ValuePos }
func (x *Number) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Number) String() string { return x.Literal }

// Bool is an expression node that holds a boolean literal.
type Bool struct {
	ValuePos token.Position // position of "true" or "false"
	Value    bool           // the boolean value
}

func (x *Bool) exprNode() {}

func (x *Bool) Pos() token.Position { return x.ValuePos }
func (x *Bool) End() token.Position {
	if x.Value {
		return x.ValuePos.Advance(4) // len("true")
	}
	return x.ValuePos.Advance(5) // len("false")
}

func (x *Bool) String() string {
	if x.Value {
		return "true"
	}
	return "false"
}

// Date is an expression node that holds a date-only literal.
type Date struct {
	ValuePos token.Position // position of opening "#"
	Literal  string         // the literal text between the delimiters
	Value    time.Time      // the parsed date; time component is zero
}

func (x *Date) exprNode() {}

func (x *Date) Pos() token.Position { return x.ValuePos }
func (x *Date) End() token.Position { return x.ValuePos.Advance(len(x.Literal) + 2) }

func (x *Date) String() string { return "#" + x.Literal + "#" }

// Null is an expression node that holds a null literal.
type Null struct {
	NullPos token.Position // position of "null" keyword
}

func (x *Null) exprNode() {}

func (x *Null) Pos() token.Position { return x.NullPos }
func (x *Null) End() token.Position { return x.NullPos.Advance(4) } // len("null")

func (x *Null) String() string { return "null" }
