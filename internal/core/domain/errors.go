package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidSchool = errors.New("unknown school")
	ErrCatalogEmpty  = errors.New("no documents for school")
	ErrRankingEmpty  = errors.New("ranking returned no candidates")
	ErrNoMatches     = errors.New("no relevant pages found")
	ErrTimeout       = errors.New("external call timed out")
	ErrTemporary     = errors.New("temporary failure")
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
