package literals

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// FormatterOption configures a Formatter at construction time.
type FormatterOption func(*Formatter)

// WithEscaper runs every Text literal through fn before it is quoted. The
// default formatter performs no escaping.
func WithEscaper(fn func(string) string) FormatterOption {
	return func(f *Formatter) {
		f.escape = fn
	}
}

// Formatter renders values as SQL literals. It holds no mutable state and is
// safe for concurrent use.
type Formatter struct {
	escape func(string) string
}

var _ Visitor = (*Formatter)(nil)

var defaultFormatter = NewFormatter()

// NewFormatter creates a Formatter.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Format classifies v and renders it.
func (f *Formatter) Format(v any) Literal {
	return Classify(v).Accept(f)
}

// FormatValue returns the literal text of v and whether it must be quoted,
// using the default formatter.
func FormatValue(v any) (string, bool) {
	lit := defaultFormatter.Format(v)
	return lit.Text, lit.Quoted
}

func (f *Formatter) VisitNull(Null) Literal { return Bare("NULL") }

// VisitList joins the rendered elements with commas. Quoting applies per
// element, never to the whole list.
func (f *Formatter) VisitList(v List) Literal {
	parts := make([]string, len(v))
	for i, elem := range v {
		parts[i] = elem.Accept(f).SQL()
	}
	return Bare(strings.Join(parts, ","))
}

func (f *Formatter) VisitInteger(v Integer) Literal {
	return Bare(strconv.FormatInt(int64(v), 10))
}

func (f *Formatter) VisitUnsigned(v Unsigned) Literal {
	return Bare(strconv.FormatUint(uint64(v), 10))
}

func (f *Formatter) VisitFloat(v Float) Literal {
	bits := v.BitSize
	if bits != 32 {
		bits = 64
	}
	return Bare(strconv.FormatFloat(v.V, 'f', -1, bits))
}

func (f *Formatter) VisitDecimal(v Decimal) Literal { return Bare(string(v)) }

func (f *Formatter) VisitDateTime(v DateTime) Literal {
	if isMidnight(v.Time) {
		return Quoted(v.Time.Format(dateLayout))
	}
	return Quoted(v.Time.Format(dateTimeLayout))
}

// VisitBoolean renders lower-case true/false. Downstream consumers depend on
// this exact casing.
func (f *Formatter) VisitBoolean(v Boolean) Literal {
	return Bare(strconv.FormatBool(bool(v)))
}

func (f *Formatter) VisitEnum(v Enum) Literal {
	return Bare(strconv.FormatInt(int64(v), 10))
}

func (f *Formatter) VisitText(v Text) Literal {
	s := string(v)
	if f.escape != nil {
		s = f.escape(s)
	}
	return Quoted(s)
}

func (f *Formatter) VisitFunction(v Function) Literal {
	validateFunctionName(v.Name)
	args := make([]string, len(v.Args))
	for i, a := range v.Args {
		args[i] = a.Accept(f).SQL()
	}
	return Bare(v.Name + "(" + strings.Join(args, ", ") + ")")
}

func isMidnight(t time.Time) bool {
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0
}

// validateFunctionName panics if the function name contains characters
// outside the set of letters, digits, and underscores.
func validateFunctionName(name string) {
	if name == "" {
		panic("sqlbind: empty SQL function name")
	}
	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') &&
			(c < '0' || c > '9') && c != '_' {
			panic(fmt.Sprintf("sqlbind: invalid SQL function name character %q in %q", string(c), name))
		}
	}
}
