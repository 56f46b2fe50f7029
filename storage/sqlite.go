package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"authgate/core"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema/sqlite/schema.sql
var sqliteSchema string

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &SQLiteRepository{db: db}

	if err := repo.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) initSchema() error {
	_, err := r.db.Exec(sqliteSchema)
	return err
}

func (r *SQLiteRepository) FindByUUID(ctx context.Context, clientUUID string) (*core.Credential, error) {
	query := `
		SELECT id, uuid, secret_key_hash, created_at, updated_at
		FROM credentials
		WHERE uuid = ?
	`
	return r.scanCredential(r.db.QueryRowContext(ctx, query, clientUUID))
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id uuid.UUID) (*core.Credential, error) {
	query := `
		SELECT id, uuid, secret_key_hash, created_at, updated_at
		FROM credentials
		WHERE id = ?
	`
	return r.scanCredential(r.db.QueryRowContext(ctx, query, id.String()))
}

func (r *SQLiteRepository) Create(ctx context.Context, cred *core.Credential) error {
	query := `
		INSERT INTO credentials (id, uuid, secret_key_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		cred.ID.String(),
		cred.UUID,
		cred.SecretKeyHash,
		cred.CreatedAt.Unix(),
		cred.UpdatedAt.Unix(),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return core.ErrAlreadyExists
		}
		return err
	}

	return nil
}

func (r *SQLiteRepository) scanCredential(row *sql.Row) (*core.Credential, error) {
	var cred core.Credential
	var idStr string
	var createdAt, updatedAt int64

	err := row.Scan(
		&idStr,
		&cred.UUID,
		&cred.SecretKeyHash,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	cred.ID = uuid.MustParse(idStr)
	cred.CreatedAt = time.Unix(createdAt, 0)
	cred.UpdatedAt = time.Unix(updatedAt, 0)

	return &cred, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	return strings.Contains(errMsg, "UNIQUE constraint failed") ||
		strings.Contains(errMsg, "UNIQUE") ||
		strings.Contains(errMsg, "unique")
}
