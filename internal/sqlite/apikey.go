package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/rpggio/coachboard/internal/repository"
)

// APIKeyRepository implements repository.APIKeyRepository for SQLite.
// Only the SHA-256 of each token is stored.
type APIKeyRepository struct {
	db *DB
}

// NewAPIKeyRepository creates a new APIKeyRepository
func NewAPIKeyRepository(db *DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// Create registers a token under a label
func (r *APIKeyRepository) Create(ctx context.Context, token, label string) error {
	if token == "" || label == "" {
		return repository.ErrInvalidInput
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO api_keys (key_hash, label) VALUES (?, ?)`,
		HashToken(token), label)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create api key: %w", err)
	}
	return nil
}

// Resolve returns the label registered for token and stamps last_used
func (r *APIKeyRepository) Resolve(ctx context.Context, token string) (string, error) {
	hash := HashToken(token)

	var label string
	err := r.db.QueryRowContext(ctx, `SELECT label FROM api_keys WHERE key_hash = ?`, hash).Scan(&label)
	if err == sql.ErrNoRows {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve api key: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE api_keys SET last_used = CURRENT_TIMESTAMP WHERE key_hash = ?`, hash); err != nil {
		return "", fmt.Errorf("failed to stamp api key: %w", err)
	}
	return label, nil
}

// HashToken returns the hex SHA-256 of a bearer token
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
