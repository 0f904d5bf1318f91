package users

import "time"

// Role values for User.UserType.
const (
	RoleUser     = "user"
	RoleSupplier = "supplier"
	RoleAdmin    = "admin"
)

// User represents an account. Accounts are created on first authentication
// and pick their role afterwards via the choose-role flow.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	UserType     string    `json:"user_type"`
	IsAdmin      bool      `json:"is_admin"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CanModerate reports whether the user may perform admin actions.
func (u *User) CanModerate() bool {
	return u != nil && (u.IsAdmin || u.UserType == RoleAdmin)
}
