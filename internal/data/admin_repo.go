package data

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"

	"github.com/hirebase/jobboard/internal/data/pgxutil"
	apperrors "github.com/hirebase/jobboard/internal/errors"
)

// AdminRepo provides database operations for admin membership.
type AdminRepo struct {
	DB *sql.DB
}

// NewAdminRepo creates a new AdminRepo.
func NewAdminRepo(db *sql.DB) *AdminRepo {
	return &AdminRepo{DB: db}
}

// IsMember reports whether the user has a row in the admins table.
// A user without a row is simply not an admin; only infrastructure
// failures return an error.
func (r *AdminRepo) IsMember(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	var exists bool
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM admins WHERE user_id = $1)`,
			userID,
		).Scan(&exists)
	}); err != nil {
		return false, apperrors.MapDBError(err)
	}
	return exists, nil
}
