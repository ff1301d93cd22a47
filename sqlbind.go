// Package sqlbind materializes parameterized SQL templates into literal SQL.
//
// This package re-exports commonly used types and functions from subpackages
// for convenience. Advanced users can import subpackages directly:
//   - github.com/bawdo/sqlbind/placeholders (template expansion and substitution)
//   - github.com/bawdo/sqlbind/literals (value classification and formatting)
//   - github.com/bawdo/sqlbind/bindings (collection detection and flattening)
//   - github.com/bawdo/sqlbind/columns (braced column shorthand)
//
// Quoted text is not escaped unless WithEscaper is given, and booleans render
// as lowercase true and false.
package sqlbind

import (
	"github.com/bawdo/sqlbind/bindings"
	"github.com/bawdo/sqlbind/columns"
	"github.com/bawdo/sqlbind/literals"
	"github.com/bawdo/sqlbind/placeholders"
)

// DefaultPlaceholder is the token substituted when no WithPlaceholder option
// is given.
const DefaultPlaceholder = placeholders.DefaultPlaceholder

// --- Errors ---

var (
	// ErrBindingIndexOutOfRange is matched by every *IndexError.
	ErrBindingIndexOutOfRange = placeholders.ErrBindingIndexOutOfRange

	// ErrNonReiterableCollection is matched by every *CollectionError.
	ErrNonReiterableCollection = placeholders.ErrNonReiterableCollection
)

// IndexError reports a placeholder occurrence with no binding to fill it.
type IndexError = placeholders.IndexError

// CollectionError reports a collection binding that changed size between
// counting and flattening.
type CollectionError = placeholders.CollectionError

// --- Materialization ---

// Materializer turns templates and bindings into literal SQL.
type Materializer = placeholders.Materializer

// Option configures a Materializer.
type Option = placeholders.Option

// Result holds a template and its bindings and materializes on demand.
type Result = placeholders.Result

// New creates a Materializer.
func New(opts ...Option) *Materializer {
	return placeholders.New(opts...)
}

// WithPlaceholder sets the placeholder token.
func WithPlaceholder(token string) Option {
	return placeholders.WithPlaceholder(token)
}

// WithEscaper runs text literals through fn before they are quoted.
func WithEscaper(fn func(string) string) Option {
	return placeholders.WithEscaper(fn)
}

// Materialize replaces every "?" in template with the literal of its binding.
// A collection binding fills as many slots as it has elements.
func Materialize(template string, binds []any) (string, error) {
	return placeholders.Materialize(template, binds)
}

// NewResult pairs a template with its bindings.
func NewResult(raw string, binds ...any) *Result {
	return placeholders.NewResult(raw, binds...)
}

// ReplaceOccurrences replaces the k-th occurrence of token with produce(k).
func ReplaceOccurrences(template, token string, produce func(index int) string) string {
	return placeholders.ReplaceOccurrences(template, token, produce)
}

// --- Literals ---

// Literal is the text of a formatted value and whether it is quoted.
type Literal = literals.Literal

// Value is a classified binding.
type Value = literals.Value

// FormatValue returns the literal text of v and whether it needs quoting.
func FormatValue(v any) (string, bool) {
	return literals.FormatValue(v)
}

// Nullif builds a NULLIF(expr, comparand) function literal.
func Nullif(expr, comparand any) literals.Function {
	return literals.Nullif(expr, comparand)
}

// --- Bindings ---

// Flatten expands collection bindings by one level.
func Flatten(binds []any) []any {
	return bindings.Flatten(binds)
}

// FlattenDeep expands collection bindings at every level.
func FlattenDeep(binds []any) []any {
	return bindings.FlattenDeep(binds)
}

// --- Columns ---

// ExpandBracedColumns rewrites `table.{a, b}` into `table.a` and `table.b`.
func ExpandBracedColumns(expr string) []string {
	return columns.ExpandBraced(expr)
}
