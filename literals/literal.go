package literals

import "github.com/bawdo/sqlbind/internal/quoting"

// Literal is the text of one formatted value together with whether it is
// rendered inside single quotes.
type Literal struct {
	Text   string
	Quoted bool
}

// Bare returns an unquoted literal.
func Bare(text string) Literal { return Literal{Text: text} }

// Quoted returns a literal rendered inside single quotes.
func Quoted(text string) Literal { return Literal{Text: text, Quoted: true} }

// SQL renders the literal as it appears in a statement.
//
// Quoted text is wrapped as-is: embedded single quotes are NOT escaped here.
// Escaping belongs to the caller (see WithEscaper).
func (l Literal) SQL() string {
	if l.Quoted {
		return quoting.SingleQuote(l.Text)
	}
	return l.Text
}
