package placeholders

import "github.com/bawdo/sqlbind/bindings"

// Result pairs a raw template with the bindings it was built with. The
// literal SQL is produced on demand; asking again recomputes it and never
// modifies RawSQL or Bindings.
type Result struct {
	RawSQL   string
	Bindings []any

	m *Materializer
}

// NewResult creates a Result materialized with default options.
func NewResult(raw string, binds ...any) *Result {
	return &Result{RawSQL: raw, Bindings: binds}
}

// Result creates a Result bound to m.
func (m *Materializer) Result(raw string, binds ...any) *Result {
	return &Result{RawSQL: raw, Bindings: binds, m: m}
}

func (r *Result) materializer() *Materializer {
	if r.m == nil {
		return defaultMaterializer
	}
	return r.m
}

// SQL returns the fully materialized SQL.
func (r *Result) SQL() (string, error) {
	return r.materializer().Materialize(r.RawSQL, r.Bindings)
}

// MustSQL is like SQL but panics on error.
func (r *Result) MustSQL() string {
	s, err := r.SQL()
	if err != nil {
		panic(err)
	}
	return s
}

// Expanded returns the template after placeholder pre-expansion.
func (r *Result) Expanded() (string, error) {
	return r.materializer().Expand(r.RawSQL, r.Bindings)
}

// Flattened returns the bindings flattened one level.
func (r *Result) Flattened() []any {
	return bindings.Flatten(r.Bindings)
}

// Slots returns the number of placeholder occurrences in the raw template.
func (r *Result) Slots() int {
	return len(Occurrences(r.RawSQL, r.materializer().Placeholder()))
}
