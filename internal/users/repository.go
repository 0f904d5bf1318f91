package users

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olufinja/naijafind/internal/shared"
)

// Repository persists user accounts.
type Repository interface {
	Get(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user User) (*User, error)
	Ensure(ctx context.Context, email, name string) (*User, error)
	SetRole(ctx context.Context, id int64, role string) error
	PromoteToAdmin(ctx context.Context, email string) (*User, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const userColumns = `id, email, name, user_type, is_admin, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.UserType, &u.IsAdmin, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *repository) Create(ctx context.Context, user User) (*User, error) {
	now := time.Now()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, name, user_type, is_admin, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING `+userColumns,
		user.Email, user.Name, user.UserType, user.IsAdmin, user.PasswordHash, now)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, shared.ErrAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

// Ensure upserts a user row on first authentication, keyed by email.
func (r *repository) Ensure(ctx context.Context, email, name string) (*User, error) {
	now := time.Now()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, name, user_type, is_admin, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, FALSE, '', $4, $4)
		ON CONFLICT (email) DO UPDATE SET updated_at = EXCLUDED.updated_at
		RETURNING `+userColumns,
		email, name, RoleUser, now)
	return scanUser(row)
}

func (r *repository) SetRole(ctx context.Context, id int64, role string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET user_type = $1, updated_at = $2 WHERE id = $3`, role, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// PromoteToAdmin upgrades an existing account, or creates a fresh admin row
// when the email is unknown. Used by the one-time bootstrap endpoint.
func (r *repository) PromoteToAdmin(ctx context.Context, email string) (*User, error) {
	now := time.Now()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, name, user_type, is_admin, password_hash, created_at, updated_at)
		VALUES ($1, '', $2, TRUE, '', $3, $3)
		ON CONFLICT (email) DO UPDATE SET user_type = $2, is_admin = TRUE, updated_at = $3
		RETURNING `+userColumns,
		email, RoleAdmin, now)
	return scanUser(row)
}
