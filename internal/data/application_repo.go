package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/hirebase/jobboard/internal/data/pgxutil"
	"github.com/hirebase/jobboard/internal/domain/model"
	apperrors "github.com/hirebase/jobboard/internal/errors"
)

const applicationColumns = `id, job_id, user_id, created_at`

// ApplicationRepo provides database operations for job applications.
type ApplicationRepo struct {
	DB *sql.DB
}

// NewApplicationRepo creates a new ApplicationRepo.
func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{DB: db}
}

// Create inserts an application row. The unique constraint on
// (job_id, user_id) is the source of truth for duplicates: a violation
// comes back as a Conflict, regardless of what any prior Exists check said.
func (r *ApplicationRepo) Create(ctx context.Context, req *model.ApplyRequest) (*model.Application, error) {
	if req == nil {
		return nil, errors.New("apply request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.Application
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO applications (job_id, user_id)
			VALUES ($1, $2)
			RETURNING `+applicationColumns,
			req.JobID,
			req.UserID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Exists reports whether the user has already applied to the job.
func (r *ApplicationRepo) Exists(ctx context.Context, jobID, userID string) (bool, error) {
	var exists bool
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND user_id = $2)`,
			jobID, userID,
		).Scan(&exists)
	}); err != nil {
		return false, apperrors.MapDBError(err)
	}
	return exists, nil
}
