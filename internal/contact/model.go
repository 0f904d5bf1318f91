package contact

import "time"

// Message is an inbound contact message, either to a supplier or to the
// site operators (SupplierID nil).
type Message struct {
	ID         int64     `json:"id"`
	SupplierID *int64    `json:"supplier_id,omitempty"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}
