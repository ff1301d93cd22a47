// Package bindings decides which bound values are collections and flattens
// binding lists. Placeholder expansion and literal formatting both go through
// this package so that they agree on what a collection is.
package bindings

import (
	"database/sql/driver"
	"iter"
	"reflect"
)

// IsCollection reports whether v expands into one placeholder per element.
//
// Slices, arrays and iter.Seq[any] are collections. Strings, byte slices and
// byte arrays are binary or text data, not collections. Anything implementing
// driver.Valuer is a single value even when its underlying type is an array
// (uuid.UUID, ulid.ULID).
func IsCollection(v any) bool {
	switch v.(type) {
	case nil, string, []byte, driver.Valuer:
		return false
	case iter.Seq[any], func(func(any) bool):
		return true
	}
	rv, ok := indirect(reflect.ValueOf(v))
	if !ok {
		return false
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Type().Elem().Kind() != reflect.Uint8
	}
	return false
}

// Elements returns the elements of a collection in iteration order. It
// returns nil when v is not a collection.
func Elements(v any) []any {
	if !IsCollection(v) {
		return nil
	}
	if seq, ok := asSeq(v); ok {
		var out []any
		for elem := range seq {
			out = append(out, elem)
		}
		return out
	}
	rv, _ := indirect(reflect.ValueOf(v))
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// Count returns the number of elements in a collection, or 0 when v is not a
// collection. Sequences are iterated to count them.
func Count(v any) int {
	if !IsCollection(v) {
		return 0
	}
	if seq, ok := asSeq(v); ok {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	rv, _ := indirect(reflect.ValueOf(v))
	return rv.Len()
}

func asSeq(v any) (iter.Seq[any], bool) {
	switch seq := v.(type) {
	case iter.Seq[any]:
		return seq, true
	case func(func(any) bool):
		return seq, true
	}
	return nil, false
}

// indirect follows pointers. It reports false for an invalid value or a nil
// pointer.
func indirect(rv reflect.Value) (reflect.Value, bool) {
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	return rv, rv.IsValid()
}
