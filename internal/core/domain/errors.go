package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input rejected locally, before any network call.
	ErrValidation = errors.New("validation failure")
	// ErrBackend is the single opaque failure kind for backend calls: callers
	// cannot distinguish a transport error from a non-2xx status.
	ErrBackend = errors.New("backend failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
