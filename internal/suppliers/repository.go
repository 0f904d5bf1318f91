package suppliers

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olufinja/naijafind/internal/shared"
)

// Repository persists suppliers.
type Repository interface {
	Get(ctx context.Context, id int64) (*Supplier, error)
	GetByOwner(ctx context.Context, ownerID int64) (*Supplier, error)
	ListApproved(ctx context.Context) ([]Supplier, error)
	ListPending(ctx context.Context, limit, offset int) ([]Supplier, int, error)
	Create(ctx context.Context, s Supplier) (*Supplier, error)
	UpdateProfile(ctx context.Context, id int64, p Profile) error
	SetApproved(ctx context.Context, id int64, approved bool) error
	SetFeatured(ctx context.Context, id int64, featured bool) error
	SetVerified(ctx context.Context, id int64, verified bool) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const supplierColumns = `id, owner_id, business_name, category, description, address, city, state, country,
	latitude, longitude, phone, email, website, image_url, gallery, rating, reviews_count,
	verified, featured, approved, created_at, updated_at`

func scanSupplier(row pgx.Row) (*Supplier, error) {
	var s Supplier
	err := row.Scan(
		&s.ID, &s.OwnerID, &s.BusinessName, &s.Category, &s.Description, &s.Address, &s.City, &s.State, &s.Country,
		&s.Latitude, &s.Longitude, &s.Phone, &s.Email, &s.Website, &s.ImageURL, &s.Gallery, &s.Rating, &s.ReviewsCount,
		&s.Verified, &s.Featured, &s.Approved, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func collectSuppliers(rows pgx.Rows) ([]Supplier, error) {
	defer rows.Close()
	var out []Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (*Supplier, error) {
	return scanSupplier(r.pool.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
}

func (r *repository) GetByOwner(ctx context.Context, ownerID int64) (*Supplier, error) {
	return scanSupplier(r.pool.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE owner_id = $1`, ownerID))
}

// ListApproved returns the public dataset in creation order. The search
// layer filters and ranks in memory on top of this.
func (r *repository) ListApproved(ctx context.Context) ([]Supplier, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE approved ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	return collectSuppliers(rows)
}

func (r *repository) ListPending(ctx context.Context, limit, offset int) ([]Supplier, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers WHERE NOT approved`).Scan(&total); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE NOT approved ORDER BY created_at, id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	list, err := collectSuppliers(rows)
	return list, total, err
}

func (r *repository) Create(ctx context.Context, s Supplier) (*Supplier, error) {
	now := time.Now()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO suppliers (owner_id, business_name, category, description, address, city, state, country,
			latitude, longitude, phone, email, website, image_url, gallery, rating, reviews_count,
			verified, featured, approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, 0, 0, FALSE, FALSE, FALSE, $16, $16)
		RETURNING `+supplierColumns,
		s.OwnerID, s.BusinessName, s.Category, s.Description, s.Address, s.City, s.State, s.Country,
		s.Latitude, s.Longitude, s.Phone, s.Email, s.Website, s.ImageURL, s.Gallery, now)
	return scanSupplier(row)
}

func (r *repository) UpdateProfile(ctx context.Context, id int64, p Profile) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE suppliers
		SET business_name = $1, category = $2, description = $3, address = $4, city = $5, state = $6,
			country = $7, latitude = $8, longitude = $9, phone = $10, email = $11, website = $12,
			image_url = $13, gallery = $14, updated_at = $15
		WHERE id = $16`,
		p.BusinessName, p.Category, p.Description, p.Address, p.City, p.State,
		p.Country, p.Latitude, p.Longitude, p.Phone, p.Email, p.Website,
		p.ImageURL, p.Gallery, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) setFlag(ctx context.Context, id int64, column string, value bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE suppliers SET `+column+` = $1, updated_at = $2 WHERE id = $3`, value, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) SetApproved(ctx context.Context, id int64, approved bool) error {
	return r.setFlag(ctx, id, "approved", approved)
}

func (r *repository) SetFeatured(ctx context.Context, id int64, featured bool) error {
	return r.setFlag(ctx, id, "featured", featured)
}

func (r *repository) SetVerified(ctx context.Context, id int64, verified bool) error {
	return r.setFlag(ctx, id, "verified", verified)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
