package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingCredentials = errors.New("uuid and secret key are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthResult struct {
	Token string `json:"token"`
	UUID  string `json:"uuid"`
}

type AuthService struct {
	repo   Repository
	config *Config
}

func NewAuthService(repo Repository, config *Config) *AuthService {
	return &AuthService{
		repo:   repo,
		config: config,
	}
}

// Register creates a credential record for a new client uuid and issues its
// first access token. The existence check below is not transactional with the
// insert; two concurrent registrations of the same uuid can both pass it, and
// the store's unique index rejects the second Create with ErrAlreadyExists.
func (s *AuthService) Register(ctx context.Context, clientUUID, secretKey string) (*AuthResult, error) {
	if clientUUID == "" || secretKey == "" {
		return nil, ErrMissingCredentials
	}

	_, err := s.repo.FindByUUID(ctx, clientUUID)
	if err == nil {
		return nil, ErrAlreadyExists
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to look up uuid: %w", err)
	}

	hash, err := HashSecretKey(secretKey)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cred := &Credential{
		ID:            uuid.New(),
		UUID:          clientUUID,
		SecretKeyHash: hash,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, cred); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create credential: %w", err)
	}

	token, err := GenerateAccessToken(cred.ID, cred.UUID, s.config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResult{Token: token, UUID: cred.UUID}, nil
}

// Login verifies a uuid/secret key pair and issues a fresh access token.
func (s *AuthService) Login(ctx context.Context, clientUUID, secretKey string) (*AuthResult, error) {
	if clientUUID == "" || secretKey == "" {
		return nil, ErrMissingCredentials
	}

	cred, err := s.repo.FindByUUID(ctx, clientUUID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up uuid: %w", err)
	}

	if !VerifySecretKey(secretKey, cred.SecretKeyHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := GenerateAccessToken(cred.ID, cred.UUID, s.config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResult{Token: token, UUID: cred.UUID}, nil
}

// Profile resolves verified claims back to the stored record. The record is
// re-fetched on every call: a token outlives its claims only as long as the
// record it references still exists.
func (s *AuthService) Profile(ctx context.Context, claims *Claims) (string, error) {
	cred, err := s.repo.FindByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to look up credential: %w", err)
	}
	return cred.UUID, nil
}
