package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bawdo/sqlbind/literals"
	"github.com/golang-sql/civil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/oklog/ulid/v2"
)

const timestampLayout = "2006-01-02 15:04:05"

// tokenize splits input into tokens, respecting single-quoted strings and
// recognising list and call punctuation.
func tokenize(input string) []string {
	var tokens []string
	var cur strings.Builder
	inQuote := false

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(input); i++ {
		ch := input[i]

		if inQuote {
			cur.WriteByte(ch)
			if ch == '\'' {
				if i+1 < len(input) && input[i+1] == '\'' {
					cur.WriteByte('\'')
					i++
				} else {
					inQuote = false
					flush()
				}
			}
			continue
		}

		switch ch {
		case '\'':
			flush()
			cur.WriteByte(ch)
			inQuote = true
		case '(', ')', '[', ']', ',':
			flush()
			tokens = append(tokens, string(ch))
		case ' ', '\t':
			flush()
		default:
			cur.WriteByte(ch)
		}
	}
	flush()
	return tokens
}

// valueParser is a recursive-descent parser over tokenize output.
type valueParser struct {
	tokens []string
	pos    int
}

func (p *valueParser) peek() string {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return ""
}

func (p *valueParser) next() string {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *valueParser) expect(tok string) error {
	if got := p.next(); got != tok {
		if got == "" {
			return fmt.Errorf("expected %q, got end of input", tok)
		}
		return fmt.Errorf("expected %q, got %q", tok, got)
	}
	return nil
}

// parseValue parses a single binding value.
func parseValue(input string) (any, error) {
	p := &valueParser{tokens: tokenize(input)}
	if len(p.tokens) == 0 {
		return nil, errors.New("empty value")
	}
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("unexpected %q after value", p.peek())
	}
	return v, nil
}

// parseValues parses a comma-separated list of binding values. Empty input
// yields no values.
func parseValues(input string) ([]any, error) {
	p := &valueParser{tokens: tokenize(input)}
	if len(p.tokens) == 0 {
		return nil, nil
	}
	vals, err := p.list("")
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("unexpected %q after value", p.peek())
	}
	return vals, nil
}

// list parses values separated by commas until closing (or end of input
// when closing is empty). The closing token is consumed.
func (p *valueParser) list(closing string) ([]any, error) {
	vals := []any{}
	if closing != "" && p.peek() == closing {
		p.next()
		return vals, nil
	}
	for {
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
		switch p.peek() {
		case ",":
			p.next()
		case closing:
			if closing != "" {
				p.next()
			}
			return vals, nil
		default:
			return nil, fmt.Errorf("expected ',' or %q, got %q", closing, p.peek())
		}
	}
}

func (p *valueParser) value() (any, error) {
	tok := p.next()
	lower := strings.ToLower(tok)
	switch lower {
	case "":
		return nil, errors.New("unexpected end of input")
	case "null":
		return nil, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "[":
		return p.list("]")
	case "nullif":
		return p.nullif()
	case "date", "timestamp", "numeric", "uuid", "ulid":
		return p.typed(lower)
	}

	if isQuoted(tok) {
		return unquote(tok), nil
	}
	if i, err := strconv.Atoi(tok); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return f, nil
	}
	return nil, fmt.Errorf("cannot parse value: %s", tok)
}

func (p *valueParser) nullif() (any, error) {
	if err := p.expect("("); err != nil {
		return nil, fmt.Errorf("nullif: %w", err)
	}
	args, err := p.list(")")
	if err != nil {
		return nil, fmt.Errorf("nullif: %w", err)
	}
	if len(args) != 2 {
		return nil, fmt.Errorf("nullif takes 2 arguments, got %d", len(args))
	}
	return literals.Nullif(args[0], args[1]), nil
}

// typed parses a keyword-prefixed string such as date '2024-01-05'.
func (p *valueParser) typed(kind string) (any, error) {
	tok := p.next()
	if !isQuoted(tok) {
		return nil, fmt.Errorf("%s requires a quoted string", kind)
	}
	s := unquote(tok)
	switch kind {
	case "date":
		d, err := civil.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", s, err)
		}
		return d, nil
	case "timestamp":
		ts, err := time.Parse(timestampLayout, s)
		if err != nil {
			if ts, err = time.Parse(time.RFC3339, s); err != nil {
				return nil, fmt.Errorf("invalid timestamp %q: %w", s, err)
			}
		}
		return ts, nil
	case "numeric":
		var n pgtype.Numeric
		if err := n.Scan(s); err != nil {
			return nil, fmt.Errorf("invalid numeric %q: %w", s, err)
		}
		return n, nil
	case "uuid":
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid uuid %q: %w", s, err)
		}
		return id, nil
	case "ulid":
		id, err := ulid.ParseStrict(s)
		if err != nil {
			return nil, fmt.Errorf("invalid ulid %q: %w", s, err)
		}
		return id, nil
	}
	panic("unreachable: unknown typed literal " + kind)
}

func isQuoted(tok string) bool {
	return len(tok) >= 2 && strings.HasPrefix(tok, "'") && strings.HasSuffix(tok, "'")
}

func unquote(tok string) string {
	return strings.ReplaceAll(tok[1:len(tok)-1], "''", "'")
}
