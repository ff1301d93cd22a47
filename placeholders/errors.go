package placeholders

import (
	"errors"
	"fmt"
)

var (
	// ErrBindingIndexOutOfRange matches every *IndexError.
	ErrBindingIndexOutOfRange = errors.New("binding index out of range")

	// ErrNonReiterableCollection matches every *CollectionError.
	ErrNonReiterableCollection = errors.New("collection binding is not re-iterable")
)

// Pass identifies the materialization pass that failed.
type Pass int

const (
	// PassExpand is placeholder pre-expansion over the bindings as given.
	PassExpand Pass = iota + 1
	// PassSubstitute is literal substitution over the flattened bindings.
	PassSubstitute
)

func (p Pass) String() string {
	switch p {
	case PassExpand:
		return "expand"
	case PassSubstitute:
		return "substitute"
	default:
		return "unknown"
	}
}

// IndexError reports a placeholder occurrence with no binding to fill it.
type IndexError struct {
	Index int
	// Count is the "total bindings count" of the message. In PassExpand it
	// is the number of bindings as given. In PassSubstitute it is the
	// number of flattened values, so binding [1, 2] counts as two.
	Count int
	Pass  Pass
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("sqlbind: failed to retrieve a binding at index %d, the total bindings count is %d", e.Index, e.Count)
}

func (e *IndexError) Unwrap() error { return ErrBindingIndexOutOfRange }

// CollectionError reports a collection binding whose element count changed
// between pre-expansion and flattening.
type CollectionError struct {
	Index    int
	Counted  int
	Iterated int
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("sqlbind: binding %d yielded %d elements when counted but %d when flattened", e.Index, e.Counted, e.Iterated)
}

func (e *CollectionError) Unwrap() error { return ErrNonReiterableCollection }
