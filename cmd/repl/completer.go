package main

import (
	"sort"
	"strings"
)

// completionContext describes what kind of completion is appropriate.
type completionContext int

const (
	contextCommand   completionContext = iota // start of line or partial command
	contextTableName                          // after FROM/JOIN in a template
	contextColumnRef                          // table.column references
	contextEngine                             // after engine
	contextValue                              // after bind/binds/format
)

var engineNames = []string{"mysql", "postgres", "sqlite", "sqlserver"}

var valueKeywords = []string{
	"date '", "false", "null", "nullif(", "numeric '", "timestamp '", "true", "ulid '", "uuid '",
}

// replCompleter implements readline's AutoCompleter interface.
type replCompleter struct {
	sess *Session
}

// Do returns completion candidates for the current line/cursor position.
// length is the number of chars from end of line[:pos] that form the prefix being completed.
// newLine contains the suffixes to append for each candidate.
func (c *replCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	lineStr := string(line[:pos])
	ctx, prefix := c.parseContext(lineStr)

	var candidates []string
	switch ctx {
	case contextCommand:
		candidates = c.completeCommands(prefix)
	case contextTableName:
		candidates = c.completeTableNames(prefix)
	case contextColumnRef:
		candidates = c.completeColumnRef(prefix)
	case contextEngine:
		candidates = filterPrefix(engineNames, prefix)
	case contextValue:
		candidates = filterPrefix(valueKeywords, prefix)
	}

	for _, cand := range candidates {
		suffix := cand[len(prefix):]
		// Keywords that open a quote or call need no trailing space.
		if !strings.HasSuffix(cand, "'") && !strings.HasSuffix(cand, "(") && !strings.HasSuffix(cand, "{") {
			suffix += " "
		}
		newLine = append(newLine, []rune(suffix))
	}
	length = len([]rune(prefix))
	return
}

// parseContext examines the line up to cursor and determines what kind of
// completion is needed and the current prefix being typed.
func (c *replCompleter) parseContext(line string) (completionContext, string) {
	lower := strings.ToLower(line)

	for _, cmd := range c.sess.commands {
		if !strings.HasSuffix(cmd.prefix, " ") {
			continue // exact-match commands have no arg completion
		}
		if strings.HasPrefix(lower, cmd.prefix) && cmd.completer != nil {
			return cmd.completer(line[len(cmd.prefix):])
		}
	}

	// Default: command completion.
	return contextCommand, strings.TrimSpace(line)
}

// completeCommands returns command names matching the prefix.
func (c *replCompleter) completeCommands(prefix string) []string {
	return filterPrefix(c.sess.commandNames(), prefix)
}

// completeTableNames returns DB table names matching prefix.
func (c *replCompleter) completeTableNames(prefix string) []string {
	if c.sess.conn == nil {
		return nil
	}
	names := dedup(c.sess.conn.schemaTables())
	sort.Strings(names)
	return filterPrefix(names, prefix)
}

// completeColumnRef handles both table-name and table.column completion.
// After "table." the braced form "table.{" is offered as well.
func (c *replCompleter) completeColumnRef(prefix string) []string {
	if !strings.Contains(prefix, ".") {
		return c.completeTableNames(prefix)
	}
	dot := strings.LastIndex(prefix, ".")
	tableName := prefix[:dot]

	candidates := []string{tableName + ".{"}
	if c.sess.conn != nil {
		for _, col := range c.sess.conn.schemaColumns(tableName) {
			candidates = append(candidates, tableName+"."+col)
		}
	}
	return filterPrefix(candidates, prefix)
}

// filterPrefix returns items that start with prefix (case-insensitive).
func filterPrefix(items []string, prefix string) []string {
	if prefix == "" {
		result := make([]string, len(items))
		copy(result, items)
		return result
	}
	lowerPrefix := strings.ToLower(prefix)
	var result []string
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(item), lowerPrefix) {
			result = append(result, item)
		}
	}
	return result
}

// dedup removes duplicate strings.
func dedup(items []string) []string {
	seen := make(map[string]bool, len(items))
	var result []string
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}

// lastToken returns the last whitespace-separated token, handling commas.
func lastToken(s string) string {
	// Find the last comma or space.
	lastSep := -1
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ' ' || s[i] == ',' || s[i] == '\t' {
			lastSep = i
			break
		}
	}
	if lastSep >= 0 {
		return s[lastSep+1:]
	}
	return s
}
