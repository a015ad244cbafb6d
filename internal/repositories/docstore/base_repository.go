package docstore

import (
	"errors"
	"fmt"

	"github.com/SscSPs/monetra/internal/apperrors"
	portsrepo "github.com/SscSPs/monetra/internal/core/ports/repositories"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Store portsrepo.DocumentStore
}

// notFoundAs replaces a generic not-found error with the entity specific one.
func notFoundAs(err error, entityErr error, id string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: %s", entityErr, id)
	}
	return err
}
