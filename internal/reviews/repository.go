package reviews

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olufinja/naijafind/internal/shared"
)

// Repository persists reviews and keeps the supplier aggregate consistent.
type Repository interface {
	// Create inserts the review and refreshes the supplier's rating and
	// reviews_count in the same transaction.
	Create(ctx context.Context, rev Review) (*Review, error)
	ListBySupplier(ctx context.Context, supplierID int64, limit, offset int) ([]Review, int, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const reviewColumns = `r.id, r.supplier_id, r.user_id, u.name, r.rating, r.comment, r.created_at`

func (r *repository) Create(ctx context.Context, rev Review) (*Review, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var out Review
	err = tx.QueryRow(ctx, `
		INSERT INTO reviews (supplier_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, supplier_id, user_id, rating, comment, created_at`,
		rev.SupplierID, rev.UserID, rev.Rating, rev.Comment, time.Now()).
		Scan(&out.ID, &out.SupplierID, &out.UserID, &out.Rating, &out.Comment, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, shared.ErrAlreadyExists
		}
		return nil, err
	}

	// The listing carries the aggregate so search never joins reviews.
	_, err = tx.Exec(ctx, `
		UPDATE suppliers
		SET rating = agg.avg_rating, reviews_count = agg.total, updated_at = now()
		FROM (
			SELECT ROUND(AVG(rating)::numeric, 2) AS avg_rating, COUNT(*) AS total
			FROM reviews WHERE supplier_id = $1
		) agg
		WHERE suppliers.id = $1`, rev.SupplierID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repository) ListBySupplier(ctx context.Context, supplierID int64, limit, offset int) ([]Review, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM reviews WHERE supplier_id = $1`, supplierID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.supplier_id = $1
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2 OFFSET $3`, supplierID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var rev Review
		if err := rows.Scan(&rev.ID, &rev.SupplierID, &rev.UserID, &rev.UserName, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, rev)
	}
	return out, total, rows.Err()
}
