package bindings

// Flatten expands collection bindings one level down, keeping order. Scalars
// pass through, and so do collections nested inside a collection.
func Flatten(binds []any) []any {
	out := make([]any, 0, len(binds))
	for _, b := range binds {
		if IsCollection(b) {
			out = append(out, Elements(b)...)
			continue
		}
		out = append(out, b)
	}
	return out
}

// FlattenDeep expands collections at every depth.
func FlattenDeep(binds []any) []any {
	out := make([]any, 0, len(binds))
	for _, b := range binds {
		if IsCollection(b) {
			out = append(out, FlattenDeep(Elements(b))...)
			continue
		}
		out = append(out, b)
	}
	return out
}
