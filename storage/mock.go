package storage

import (
	"context"
	"sync"
	"time"

	"authgate/core"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Test fixtures: pre-registered credentials with known secret keys.
const (
	Cred1Secret = "test_secret_key_1"
	Cred2Secret = "test_secret_key_2"
)

var (
	cred1Hash, _ = bcrypt.GenerateFromPassword([]byte(Cred1Secret), 10)
	cred2Hash, _ = bcrypt.GenerateFromPassword([]byte(Cred2Secret), 10)

	Cred1 = &core.Credential{
		ID:            uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		UUID:          "client-alpha",
		SecretKeyHash: string(cred1Hash),
		CreatedAt:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	Cred2 = &core.Credential{
		ID:            uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		UUID:          "client-beta",
		SecretKeyHash: string(cred2Hash),
		CreatedAt:     time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	AllCredentials = []*core.Credential{Cred1, Cred2}
)

// MockRepository is an in-memory Repository seeded with the fixtures above.
// Create actually stores, so registered clients can log in within a test.
type MockRepository struct {
	mu     sync.Mutex
	byUUID map[string]*core.Credential
	byID   map[uuid.UUID]*core.Credential

	// Track method calls for verification
	FindByUUIDCalls int
	FindByIDCalls   int
	CreateCalls     int

	// When set, every call fails with this error.
	Err error
}

func NewMockRepository() *MockRepository {
	repo := &MockRepository{
		byUUID: make(map[string]*core.Credential),
		byID:   make(map[uuid.UUID]*core.Credential),
	}

	for _, cred := range AllCredentials {
		repo.byUUID[cred.UUID] = cred
		repo.byID[cred.ID] = cred
	}

	return repo
}

func (m *MockRepository) FindByUUID(ctx context.Context, clientUUID string) (*core.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindByUUIDCalls++

	if m.Err != nil {
		return nil, m.Err
	}

	cred, ok := m.byUUID[clientUUID]
	if !ok {
		return nil, core.ErrNotFound
	}
	return cred, nil
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*core.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindByIDCalls++

	if m.Err != nil {
		return nil, m.Err
	}

	cred, ok := m.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return cred, nil
}

func (m *MockRepository) Create(ctx context.Context, cred *core.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++

	if m.Err != nil {
		return m.Err
	}

	if _, exists := m.byUUID[cred.UUID]; exists {
		return core.ErrAlreadyExists
	}
	for _, existing := range m.byUUID {
		if existing.SecretKeyHash == cred.SecretKeyHash {
			return core.ErrAlreadyExists
		}
	}

	m.byUUID[cred.UUID] = cred
	m.byID[cred.ID] = cred
	return nil
}

// Delete removes a record; only tests use it, to simulate a token whose
// record no longer exists.
func (m *MockRepository) Delete(clientUUID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cred, ok := m.byUUID[clientUUID]; ok {
		delete(m.byID, cred.ID)
		delete(m.byUUID, clientUUID)
	}
}
