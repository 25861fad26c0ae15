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

const userColumns = `id, email, full_name, avatar_url, password_hash, provider, created_at`

// UserRepo provides database operations for accounts.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// Create inserts a new account. A duplicate email surfaces as a Conflict.
func (r *UserRepo) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if req == nil {
		return nil, errors.New("create user request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (email, full_name, avatar_url, password_hash, provider)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+userColumns,
			req.Email,
			req.FullName,
			req.AvatarURL,
			req.PasswordHash,
			req.Provider,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves an account by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getByQuery(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail retrieves an account by email. The lookup is case-insensitive
// because emails are normalized to lowercase on write.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getByQuery(ctx, `SELECT `+userColumns+` FROM users WHERE email = lower($1)`, email)
}

func (r *UserRepo) getByQuery(ctx context.Context, query string, arg any) (*model.User, error) {
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// UpsertOAuth inserts or refreshes an OAuth-backed account keyed by email.
// Profile fields come from the identity provider on every login, so the
// conflict branch keeps them current. The password hash is never touched.
func (r *UserRepo) UpsertOAuth(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if req == nil {
		return nil, errors.New("create user request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (email, full_name, avatar_url, provider)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO UPDATE SET
				full_name = EXCLUDED.full_name,
				avatar_url = EXCLUDED.avatar_url,
				provider = EXCLUDED.provider
			RETURNING `+userColumns,
			req.Email,
			req.FullName,
			req.AvatarURL,
			req.Provider,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
