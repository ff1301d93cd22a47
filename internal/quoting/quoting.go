// Package quoting holds the quoting helpers shared by the literal formatter
// and the REPL.
package quoting

import "strings"

// SingleQuote wraps a literal in single quotes. Embedded quotes are left
// alone; callers that need escaping run one of the Escape functions first.
func SingleQuote(s string) string {
	return "'" + s + "'"
}

// EscapeQuotes doubles single quotes (standard SQL string escaping).
func EscapeQuotes(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// EscapeString doubles single quotes and escapes backslashes, for MySQL.
func EscapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return EscapeQuotes(s)
}

// DoubleQuote quotes an identifier with double quotes (PostgreSQL, SQLite).
// Internal double quotes are doubled.
func DoubleQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Backtick quotes an identifier with backticks (MySQL).
// Internal backticks are doubled.
func Backtick(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// Bracket quotes an identifier with square brackets (SQL Server).
// Internal closing brackets are doubled.
func Bracket(s string) string {
	return "[" + strings.ReplaceAll(s, "]", "]]") + "]"
}

// Qualified quotes every dot-separated segment of name with quote.
func Qualified(name string, quote func(string) string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = quote(p)
	}
	return strings.Join(parts, ".")
}
