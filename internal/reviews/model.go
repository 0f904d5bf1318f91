package reviews

import "time"

// Review is a rating left by a user on a supplier. One review per user per
// supplier; the supplier row carries the running aggregate.
type Review struct {
	ID         int64     `json:"id"`
	SupplierID int64     `json:"supplier_id"`
	UserID     int64     `json:"user_id"`
	UserName   string    `json:"user_name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}
