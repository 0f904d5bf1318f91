package newsletter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olufinja/naijafind/internal/shared"
)

// Repository persists newsletter subscribers.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Subscriber, error)
	FindByToken(ctx context.Context, token string) (*Subscriber, error)
	Create(ctx context.Context, email, token string) (*Subscriber, error)
	Reactivate(ctx context.Context, id int64) error
	Deactivate(ctx context.Context, id int64) error
	ListActive(ctx context.Context) ([]Subscriber, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const subscriberColumns = `id, email, token, active, subscribed_at, unsubscribed_at`

func scanSubscriber(row pgx.Row) (*Subscriber, error) {
	var s Subscriber
	err := row.Scan(&s.ID, &s.Email, &s.Token, &s.Active, &s.SubscribedAt, &s.UnsubscribedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Subscriber, error) {
	return scanSubscriber(r.pool.QueryRow(ctx,
		`SELECT `+subscriberColumns+` FROM newsletter_subscribers WHERE email = $1`, email))
}

func (r *repository) FindByToken(ctx context.Context, token string) (*Subscriber, error) {
	return scanSubscriber(r.pool.QueryRow(ctx,
		`SELECT `+subscriberColumns+` FROM newsletter_subscribers WHERE token = $1`, token))
}

func (r *repository) Create(ctx context.Context, email, token string) (*Subscriber, error) {
	return scanSubscriber(r.pool.QueryRow(ctx, `
		INSERT INTO newsletter_subscribers (email, token, active, subscribed_at)
		VALUES ($1, $2, TRUE, $3)
		RETURNING `+subscriberColumns, email, token, time.Now()))
}

func (r *repository) Reactivate(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE newsletter_subscribers
		SET active = TRUE, subscribed_at = $1, unsubscribed_at = NULL
		WHERE id = $2`, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE newsletter_subscribers
		SET active = FALSE, unsubscribed_at = $1
		WHERE id = $2`, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) ListActive(ctx context.Context) ([]Subscriber, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+subscriberColumns+` FROM newsletter_subscribers WHERE active ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Subscriber
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}
