package core

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// Repository is the persistent credential store. Uniqueness of the client
// uuid (and of the secret key hash, see the sqlite schema) is enforced by the
// store itself: Create must return ErrAlreadyExists on a constraint
// violation, which closes the check-then-insert race in registration.
type Repository interface {
	FindByUUID(ctx context.Context, clientUUID string) (*Credential, error)

	FindByID(ctx context.Context, id uuid.UUID) (*Credential, error)

	Create(ctx context.Context, cred *Credential) error
}
