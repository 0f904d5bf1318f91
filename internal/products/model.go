package products

import "time"

// Product is one catalog entry on a supplier's listing.
type Product struct {
	ID          int64     `json:"id"`
	SupplierID  int64     `json:"supplier_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	// Price in kobo to avoid floating point money.
	PriceKobo int64     `json:"price_kobo"`
	ImageURL  string    `json:"image_url"`
	InStock   bool      `json:"in_stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
