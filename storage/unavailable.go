package storage

import (
	"context"

	"authgate/core"

	"github.com/google/uuid"
)

// Unavailable stands in for the record store when it could not be opened at
// startup. The process keeps serving; every store-touching request fails
// with the original connection error.
type Unavailable struct {
	Err error
}

func (u Unavailable) FindByUUID(ctx context.Context, clientUUID string) (*core.Credential, error) {
	return nil, u.Err
}

func (u Unavailable) FindByID(ctx context.Context, id uuid.UUID) (*core.Credential, error) {
	return nil, u.Err
}

func (u Unavailable) Create(ctx context.Context, cred *core.Credential) error {
	return u.Err
}
