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

const jobColumns = `id, title, company, description, created_by, created_at`

// JobRepo provides database operations for job postings.
type JobRepo struct {
	DB *sql.DB
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{DB: db}
}

// Create inserts a new job posting.
func (r *JobRepo) Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, errors.New("create job request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var description *string
	if req.Description != "" {
		description = &req.Description
	}

	var out model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO jobs (title, company, description, created_by)
			VALUES ($1, $2, $3, $4)
			RETURNING `+jobColumns,
			req.Title,
			req.Company,
			description,
			req.CreatedBy,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a job by ID.
func (r *JobRepo) GetByID(ctx context.Context, id string) (*model.Job, error) {
	var out model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List retrieves all jobs, newest first.
func (r *JobRepo) List(ctx context.Context) ([]*model.Job, error) {
	var rowsOut []model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC, id DESC`)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.Job, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Delete removes a job by ID and returns the number of rows affected.
// Deleting a job that no longer exists affects zero rows and is not an error.
func (r *JobRepo) Delete(ctx context.Context, id string) (int64, error) {
	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	}); err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return affected, nil
}

// DeleteMany removes the given jobs in a single filtered statement so the
// batch succeeds or fails as one unit.
func (r *JobRepo) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `DELETE FROM jobs WHERE id = ANY($1)`, ids)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	}); err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return affected, nil
}
