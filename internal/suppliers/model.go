package suppliers

import "time"

// Supplier is a business listed in the directory. A supplier row starts
// life unapproved after sign-up and only shows publicly once an admin
// approves it. Category is referenced by name, matching Category.Name.
type Supplier struct {
	ID           int64      `json:"id"`
	OwnerID      int64      `json:"owner_id"`
	BusinessName string     `json:"business_name"`
	Category     string     `json:"category"`
	Description  string     `json:"description"`
	Address      string     `json:"address"`
	City         string     `json:"city"`
	State        string     `json:"state"`
	Country      string     `json:"country"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	Phone        string     `json:"phone"`
	Email        string     `json:"email"`
	Website      string     `json:"website"`
	ImageURL     string     `json:"image_url"`
	Gallery      []string   `json:"gallery"`
	Rating       float64    `json:"rating"`
	ReviewsCount int        `json:"reviews_count"`
	Verified     bool       `json:"verified"`
	Featured     bool       `json:"featured"`
	Approved     bool       `json:"approved"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Profile carries the owner-editable fields of a supplier.
type Profile struct {
	BusinessName string   `json:"business_name"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Country      string   `json:"country"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	Website      string   `json:"website"`
	ImageURL     string   `json:"image_url"`
	Gallery      []string `json:"gallery"`
}
