package contact

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists contact messages. Messages are kept even when the
// forwarding email fails so nothing a visitor wrote is lost.
type Repository interface {
	Create(ctx context.Context, m Message) (*Message, error)
	ListBySupplier(ctx context.Context, supplierID int64, limit, offset int) ([]Message, int, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, m Message) (*Message, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO contact_messages (supplier_id, name, email, subject, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		m.SupplierID, m.Name, m.Email, m.Subject, m.Body, time.Now()).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) ListBySupplier(ctx context.Context, supplierID int64, limit, offset int) ([]Message, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM contact_messages WHERE supplier_id = $1`, supplierID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, supplier_id, name, email, subject, body, created_at
		FROM contact_messages
		WHERE supplier_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, supplierID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SupplierID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}
