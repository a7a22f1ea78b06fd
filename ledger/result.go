package ledger

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Result.Err when the addressed entity is absent.
var ErrNotFound = errors.New("not found")

// Result reports what a mutation-by-id did. Ignoring it gives the lenient
// no-op behaviour; strict callers check Err.
type Result int

const (
	// Updated means the store changed.
	Updated Result = iota
	// Unchanged means the entity exists but the call had no effect.
	Unchanged
	// NotFound means no entity matched.
	NotFound
)

func (r Result) String() string {
	switch r {
	case Updated:
		return "updated"
	case Unchanged:
		return "unchanged"
	case NotFound:
		return "not found"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// Err returns ErrNotFound for NotFound and nil otherwise.
func (r Result) Err() error {
	if r == NotFound {
		return ErrNotFound
	}
	return nil
}

// Changed reports whether the store was modified.
func (r Result) Changed() bool { return r == Updated }
