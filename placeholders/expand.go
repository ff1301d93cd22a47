package placeholders

import (
	"slices"
	"strings"

	"github.com/bawdo/sqlbind/bindings"
)

// scalarSlot marks a binding that was reached by a placeholder but is not a
// collection, or was never reached at all.
const scalarSlot = -1

// ExpandParameters rewrites each occurrence of token whose binding is a
// collection of N elements into N tokens joined by commas. Occurrences bound
// to scalars are left as they are. The i-th occurrence always refers to
// binds[i].
func ExpandParameters(template, token string, binds []any) (string, error) {
	out, _, err := expand(template, token, binds)
	return out, err
}

// expand also returns the element count it saw for every collection binding,
// so flattening can check it gets the same count.
func expand(template, token string, binds []any) (string, []int, error) {
	counts := make([]int, len(binds))
	for i := range counts {
		counts[i] = scalarSlot
	}

	out, err := replace(template, token, func(i int) (string, error) {
		if i >= len(binds) {
			return "", &IndexError{Index: i, Count: len(binds), Pass: PassExpand}
		}
		if !bindings.IsCollection(binds[i]) {
			return token, nil
		}
		n := bindings.Count(binds[i])
		counts[i] = n
		return strings.Join(slices.Repeat([]string{token}, n), ","), nil
	})
	if err != nil {
		return "", nil, err
	}
	return out, counts, nil
}

// flatten expands collections one level, failing when a collection yields a
// different number of elements than expand counted.
func flatten(binds []any, counts []int) ([]any, error) {
	flat := make([]any, 0, len(binds))
	for i, b := range binds {
		if !bindings.IsCollection(b) {
			flat = append(flat, b)
			continue
		}
		elems := bindings.Elements(b)
		if counts[i] != scalarSlot && len(elems) != counts[i] {
			return nil, &CollectionError{Index: i, Counted: counts[i], Iterated: len(elems)}
		}
		flat = append(flat, elems...)
	}
	return flat, nil
}
