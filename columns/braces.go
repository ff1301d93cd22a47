// Package columns expands the braced column shorthand `table.{a, b}` into
// fully qualified column references.
package columns

import (
	"regexp"
	"strings"
)

// Expander turns one column expression into the column references it stands
// for.
type Expander func(expr string) []string

var (
	// Qualifier segments are runs of Unicode word characters.
	bracedPattern = regexp.MustCompile(`^(?:[\p{L}\p{Mn}\p{Nd}\p{Pc}]+\.){1,2}\{(.*)\}`)
	listSeparator = regexp.MustCompile(`\s*,\s*`)
)

// ExpandBraced rewrites `users.{id, name}` into `users.id` and `users.name`.
// One or two qualifier segments are accepted, so `app.users.{id}` works too.
// Input of any other shape is returned as the only element.
func ExpandBraced(expr string) []string {
	m := bracedPattern.FindStringSubmatch(expr)
	if m == nil {
		return []string{expr}
	}
	qualifier := expr[:strings.Index(expr, ".{")]

	names := listSeparator.Split(m[1], -1)
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = qualifier + "." + strings.TrimSpace(name)
	}
	return out
}

// Default is the Expander used by the package-level helpers.
var Default Expander = ExpandBraced

// ExpandAll expands every expression with e and concatenates the results in
// order.
func (e Expander) ExpandAll(exprs ...string) []string {
	var out []string
	for _, expr := range exprs {
		out = append(out, e(expr)...)
	}
	return out
}
