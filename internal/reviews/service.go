package reviews

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/olufinja/naijafind/internal/platform/httpx"
	"github.com/olufinja/naijafind/internal/ratelimit"
	"github.com/olufinja/naijafind/internal/shared"
	"github.com/olufinja/naijafind/internal/suppliers"
	"github.com/olufinja/naijafind/internal/users"
)

const (
	reviewAction = "review_create"
	reviewLimit  = 10
	reviewWindow = time.Hour
)

// Service owns review rules: ratings stay in 1..5, one review per user per
// supplier, and only approved suppliers can be reviewed.
type Service struct {
	repo      Repository
	suppliers suppliers.Repository
	limiter   *ratelimit.Limiter
}

// NewService constructs a new Service.
func NewService(repo Repository, suppliersRepo suppliers.Repository, limiter *ratelimit.Limiter) *Service {
	return &Service{repo: repo, suppliers: suppliersRepo, limiter: limiter}
}

// Create records a review and refreshes the supplier aggregate.
func (s *Service) Create(ctx context.Context, caller *users.User, supplierID int64, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", httpx.ErrValidation)
	}
	if len(comment) > 2000 {
		return nil, fmt.Errorf("%w: comment too long", httpx.ErrValidation)
	}
	decision, err := s.limiter.Allow(ctx, caller.Email, reviewAction, reviewLimit, reviewWindow)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, fmt.Errorf("%w: try again after %s", httpx.ErrRateLimited, decision.ResetAt.Format(time.RFC3339))
	}
	supplier, err := s.suppliers.Get(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.Approved {
		return nil, shared.ErrNotFound
	}
	if supplier.OwnerID == caller.ID {
		return nil, fmt.Errorf("%w: cannot review your own listing", httpx.ErrForbidden)
	}

	created, err := s.repo.Create(ctx, Review{
		SupplierID: supplierID,
		UserID:     caller.ID,
		Rating:     rating,
		Comment:    comment,
	})
	if err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: you already reviewed this supplier", httpx.ErrDuplicate)
		}
		return nil, err
	}
	created.UserName = caller.Name
	return created, nil
}

// ListBySupplier returns a page of reviews for a supplier, newest first.
func (s *Service) ListBySupplier(ctx context.Context, supplierID int64, limit, offset int) ([]Review, int, error) {
	if _, err := s.suppliers.Get(ctx, supplierID); err != nil {
		return nil, 0, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListBySupplier(ctx, supplierID, limit, offset)
}
