package service

import (
	"errors"

	domainerrors "github.com/listenupapp/habits-server/internal/errors"
	"github.com/listenupapp/habits-server/internal/store"
)

// storeError translates a store error into a domain error.
// Anything the store does not classify becomes a STORAGE error.
func storeError(err error, msg string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.NotFound(msg).WithCause(err)
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.Conflict(msg).WithCause(err)
	case errors.Is(err, store.ErrConstraint):
		return domainerrors.Constraint(msg).WithCause(err)
	default:
		return domainerrors.Storage(err, msg)
	}
}
