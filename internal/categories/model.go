package categories

import "time"

// Category groups suppliers in the directory. Suppliers reference a
// category by name, not id; renaming a category does not cascade.
type Category struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SeedCategory is one entry of a bulk seed payload.
type SeedCategory struct {
	Name         string `json:"name" validate:"required,min=2,max=80"`
	Description  string `json:"description" validate:"max=500"`
	Icon         string `json:"icon" validate:"max=80"`
	DisplayOrder int    `json:"display_order"`
}
