package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/olufinja/naijafind/internal/platform/httpx"
)

// Service wraps account business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get loads a user by id.
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.Get(ctx, id)
}

// Ensure creates the account on first authentication, or refreshes the
// existing row. Idempotent per email.
func (s *Service) Ensure(ctx context.Context, email, name string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email required", httpx.ErrValidation)
	}
	return s.repo.Ensure(ctx, email, strings.TrimSpace(name))
}

// ChooseRole records the role picked during onboarding. Admin cannot be
// self-assigned here; that only happens through the bootstrap endpoint.
func (s *Service) ChooseRole(ctx context.Context, id int64, role string) error {
	switch role {
	case RoleUser, RoleSupplier:
	default:
		return fmt.Errorf("%w: role must be user or supplier", httpx.ErrValidation)
	}
	return s.repo.SetRole(ctx, id, role)
}

// PromoteToAdmin upgrades or creates an admin account by email.
func (s *Service) PromoteToAdmin(ctx context.Context, email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email required", httpx.ErrValidation)
	}
	return s.repo.PromoteToAdmin(ctx, email)
}
