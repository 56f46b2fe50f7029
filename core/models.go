package core

import (
	"time"

	"github.com/google/uuid"
)

// Credential is a registered client: a client-supplied identifier (called
// "uuid" on the wire, though not necessarily UUID-formatted) paired with a
// bcrypt hash of its secret key. Records are created by registration and
// never updated or deleted afterwards.
type Credential struct {
	ID            uuid.UUID // system-assigned, subject of issued tokens
	UUID          string    // client-supplied, unique
	SecretKeyHash string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
