package storage

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks a failure of the database or another collaborator,
// as opposed to a refusal by domain rules.
var ErrUnavailable = errors.New("storage unavailable")

// Wrap marks err as a collaborator failure. The cause stays matchable.
func Wrap(err error) error {
	if err == nil || errors.Is(err, ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// Keep returns err unchanged when it matches one of the domain errors and
// wraps it otherwise.
func Keep(err error, domainErrs ...error) error {
	for _, d := range domainErrs {
		if errors.Is(err, d) {
			return err
		}
	}
	return Wrap(err)
}
