package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rpggio/coachboard/internal/repository"
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// affectedOne maps an UPDATE or DELETE that touched no rows to ErrNotFound.
func affectedOne(result sql.Result, what string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for %s: %w", what, err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
