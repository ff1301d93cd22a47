package placeholders

import (
	"github.com/bawdo/sqlbind/literals"
)

// DefaultPlaceholder is the token used when no WithPlaceholder option is given.
const DefaultPlaceholder = "?"

// Option configures a Materializer at construction time.
type Option func(*Materializer)

// WithPlaceholder sets the placeholder token. It is matched as a literal
// substring, never as a pattern. An empty token is ignored.
func WithPlaceholder(token string) Option {
	return func(m *Materializer) {
		if token != "" {
			m.placeholder = token
		}
	}
}

// WithEscaper runs every text literal through fn before quoting it. Without
// it, embedded single quotes are emitted as they are.
func WithEscaper(fn func(string) string) Option {
	return func(m *Materializer) {
		m.formatterOpts = append(m.formatterOpts, literals.WithEscaper(fn))
	}
}

// Materializer turns (template, bindings) pairs into literal SQL. It has no
// mutable state after construction and is safe for concurrent use.
type Materializer struct {
	placeholder   string
	formatterOpts []literals.FormatterOption
	formatter     *literals.Formatter
}

var defaultMaterializer = New()

// New creates a Materializer using "?" placeholders and no escaping unless
// options say otherwise.
func New(opts ...Option) *Materializer {
	m := &Materializer{placeholder: DefaultPlaceholder}
	for _, o := range opts {
		o(m)
	}
	m.formatter = literals.NewFormatter(m.formatterOpts...)
	return m
}

// Placeholder returns the token this Materializer substitutes.
func (m *Materializer) Placeholder() string { return m.placeholder }

// Expand runs placeholder pre-expansion only.
func (m *Materializer) Expand(template string, binds []any) (string, error) {
	return ExpandParameters(template, m.placeholder, binds)
}

// Materialize expands collection placeholders, flattens binds one level and
// substitutes the formatted literal of each flattened value for its slot. On
// error the returned string is empty.
func (m *Materializer) Materialize(template string, binds []any) (string, error) {
	expanded, counts, err := expand(template, m.placeholder, binds)
	if err != nil {
		return "", err
	}
	flat, err := flatten(binds, counts)
	if err != nil {
		return "", err
	}
	return replace(expanded, m.placeholder, func(j int) (string, error) {
		if j >= len(flat) {
			return "", &IndexError{Index: j, Count: len(flat), Pass: PassSubstitute}
		}
		return m.formatter.Format(flat[j]).SQL(), nil
	})
}

// Materialize uses a Materializer with default options.
func Materialize(template string, binds []any) (string, error) {
	return defaultMaterializer.Materialize(template, binds)
}
