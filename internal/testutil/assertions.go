// Package testutil provides shared test helpers for the sqlbind project.
package testutil

import (
	"errors"
	"slices"
	"testing"
)

// AssertEqual checks that got == want and reports a descriptive error if not.
func AssertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("expected:\n  %v\ngot:\n  %v", want, got)
	}
}

// AssertSlice checks that two slices hold the same elements in the same order.
func AssertSlice[T comparable](t *testing.T, got, want []T) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("expected:\n  %#v\ngot:\n  %#v", want, got)
	}
}

// AssertNoError fails the test if err is non-nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error but got nil")
	}
}

// AssertErrorIs fails the test unless errors.Is(err, target).
func AssertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected error matching %v, got %v", target, err)
	}
}

// Materializer is the subset of placeholders.Materializer used by AssertSQL.
type Materializer interface {
	Materialize(template string, binds []any) (string, error)
}

// AssertSQL materializes template with binds and compares the result with
// the expected SQL.
func AssertSQL(t *testing.T, m Materializer, template string, binds []any, expected string) {
	t.Helper()
	got, err := m.Materialize(template, binds)
	if err != nil {
		t.Fatalf("materialize %q: unexpected error: %v", template, err)
	}
	if got != expected {
		t.Errorf("expected:\n  %s\ngot:\n  %s", expected, got)
	}
}
