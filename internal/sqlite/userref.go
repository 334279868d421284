package sqlite

import (
	"database/sql"

	"github.com/rpggio/coachboard/internal/domain/entity"
)

// userRefColumns scans the id/email/name column triple used for embedded users.
type userRefColumns struct {
	id    sql.NullInt64
	email sql.NullString
	name  sql.NullString
}

func (c *userRefColumns) dest() []any {
	return []any{&c.id, &c.email, &c.name}
}

func (c *userRefColumns) ref() *entity.UserRef {
	if !c.id.Valid {
		return nil
	}
	return &entity.UserRef{
		ID:    int(c.id.Int64),
		Email: c.email.String,
		Name:  c.name.String,
	}
}

func userRefArgs(u *entity.UserRef) []any {
	if u == nil {
		return []any{nil, nil, nil}
	}
	return []any{u.ID, u.Email, u.Name}
}

// recordID returns nil for a zero id so SQLite assigns one.
func recordID(id int) any {
	if id == 0 {
		return nil
	}
	return id
}
