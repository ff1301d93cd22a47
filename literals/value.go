// Package literals turns bound Go values into SQL literal text.
//
// Every recognised kind of value is a concrete type implementing Value. A
// Visitor has one method per kind, so adding a kind means adding a method
// that every visitor must implement.
package literals

import (
	"time"
)

// Value is a bound value whose kind is known.
type Value interface {
	Accept(v Visitor) Literal
}

// Visitor produces a literal for each kind of Value.
type Visitor interface {
	VisitNull(v Null) Literal
	VisitList(v List) Literal
	VisitInteger(v Integer) Literal
	VisitUnsigned(v Unsigned) Literal
	VisitFloat(v Float) Literal
	VisitDecimal(v Decimal) Literal
	VisitDateTime(v DateTime) Literal
	VisitBoolean(v Boolean) Literal
	VisitEnum(v Enum) Literal
	VisitText(v Text) Literal
	VisitFunction(v Function) Literal
}

// Null is SQL NULL.
type Null struct{}

// List is a collection of values. It is rendered as its elements joined by
// commas and it expands into one placeholder per element when bound.
type List []Value

// Integer is a signed integer.
type Integer int64

// Unsigned is an unsigned integer.
type Unsigned uint64

// Float is a binary floating-point number. BitSize is 32 or 64 and controls
// the shortest representation used when formatting.
type Float struct {
	V       float64
	BitSize int
}

// Decimal is an arbitrary-precision decimal in canonical text form,
// e.g. "12.50" or "-0.005".
type Decimal string

// DateTime is a point in time. A value with a zero time of day is a date.
type DateTime struct {
	Time time.Time
}

// Boolean is a boolean.
type Boolean bool

// Enum is a named integer type rendered as its underlying value.
type Enum int64

// Text is any value rendered through its default string form.
type Text string

// Function is a SQL function call over literal arguments, e.g. NULLIF(a, b).
type Function struct {
	Name string
	Args []Value
}

// Nullif builds NULLIF(expr, comparand). Both arguments are classified.
func Nullif(expr, comparand any) Function {
	return Function{Name: "NULLIF", Args: []Value{Classify(expr), Classify(comparand)}}
}

func (v Null) Accept(vis Visitor) Literal     { return vis.VisitNull(v) }
func (v List) Accept(vis Visitor) Literal     { return vis.VisitList(v) }
func (v Integer) Accept(vis Visitor) Literal  { return vis.VisitInteger(v) }
func (v Unsigned) Accept(vis Visitor) Literal { return vis.VisitUnsigned(v) }
func (v Float) Accept(vis Visitor) Literal    { return vis.VisitFloat(v) }
func (v Decimal) Accept(vis Visitor) Literal  { return vis.VisitDecimal(v) }
func (v DateTime) Accept(vis Visitor) Literal { return vis.VisitDateTime(v) }
func (v Boolean) Accept(vis Visitor) Literal  { return vis.VisitBoolean(v) }
func (v Enum) Accept(vis Visitor) Literal     { return vis.VisitEnum(v) }
func (v Text) Accept(vis Visitor) Literal     { return vis.VisitText(v) }
func (v Function) Accept(vis Visitor) Literal { return vis.VisitFunction(v) }
