// Package placeholders materializes SQL templates: it finds placeholder
// tokens, expands the ones bound to collections and substitutes formatted
// literals for every slot.
package placeholders

import "strings"

// Occurrences returns the byte offset of every non-overlapping occurrence of
// token in template, left to right. An empty token never occurs.
func Occurrences(template, token string) []int {
	if token == "" {
		return nil
	}
	var offsets []int
	for pos := 0; pos < len(template); {
		i := strings.Index(template[pos:], token)
		if i < 0 {
			break
		}
		offsets = append(offsets, pos+i)
		pos += i + len(token)
	}
	return offsets
}

// ReplaceOccurrences replaces the k-th occurrence of token with produce(k),
// counting from zero. The template is returned unchanged when token does not
// occur. Text returned by produce is never scanned for further occurrences.
func ReplaceOccurrences(template, token string, produce func(index int) string) string {
	out, _ := replace(template, token, func(i int) (string, error) {
		return produce(i), nil
	})
	return out
}

// replace is ReplaceOccurrences with a callback that can fail. The first
// error stops the scan and no partial output is returned.
func replace(template, token string, produce func(index int) (string, error)) (string, error) {
	if token == "" || strings.TrimSpace(template) == "" || !strings.Contains(template, token) {
		return template, nil
	}

	parts := strings.Split(template, token)
	var b strings.Builder
	b.Grow(len(template))
	b.WriteString(parts[0])
	for i, part := range parts[1:] {
		s, err := produce(i)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
		b.WriteString(part)
	}
	return b.String(), nil
}
