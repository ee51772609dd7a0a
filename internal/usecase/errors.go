package usecase

import (
	"errors"
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrStoreFailure          = errors.New("store failure")

	ErrParticipantNotFound = fmt.Errorf("%w: participant", ErrNotFound)
)

// storeFailure keeps the driver error as the cause and marks it so IsStoreFailure matches.
func storeFailure(err error, op string) error {
	return crerr.Mark(crerr.Wrap(err, op), ErrStoreFailure)
}

func IsStoreFailure(err error) bool {
	return crerr.Is(err, ErrStoreFailure)
}
