package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/olufinja/naijafind/internal/platform/httpx"
	"github.com/olufinja/naijafind/internal/shared"
	"github.com/olufinja/naijafind/internal/suppliers"
	"github.com/olufinja/naijafind/internal/users"
)

const maxProductsPerSupplier = 200

// Service owns catalog rules. Products belong to a supplier listing and are
// only editable by the listing owner or a moderator.
type Service struct {
	repo      Repository
	suppliers suppliers.Repository
}

// NewService constructs a new Service.
func NewService(repo Repository, suppliersRepo suppliers.Repository) *Service {
	return &Service{repo: repo, suppliers: suppliersRepo}
}

// ListForSupplier returns the public catalog of an approved supplier.
func (s *Service) ListForSupplier(ctx context.Context, supplierID int64, viewer *users.User) ([]Product, error) {
	supplier, err := s.suppliers.Get(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.Approved {
		if viewer == nil || (viewer.ID != supplier.OwnerID && !viewer.CanModerate()) {
			return nil, shared.ErrNotFound
		}
	}
	return s.repo.ListBySupplier(ctx, supplierID)
}

// Create adds a product to the caller's own listing.
func (s *Service) Create(ctx context.Context, caller *users.User, p Product) (*Product, error) {
	supplier, err := s.ownListing(ctx, caller)
	if err != nil {
		return nil, err
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	existing, err := s.repo.ListBySupplier(ctx, supplier.ID)
	if err != nil {
		return nil, err
	}
	if len(existing) >= maxProductsPerSupplier {
		return nil, fmt.Errorf("%w: catalog limit of %d products reached", httpx.ErrValidation, maxProductsPerSupplier)
	}
	p.SupplierID = supplier.ID
	return s.repo.Create(ctx, p)
}

// Update edits a product on the caller's own listing.
func (s *Service) Update(ctx context.Context, caller *users.User, id int64, p Product) (*Product, error) {
	if _, err := s.owned(ctx, caller, id); err != nil {
		return nil, err
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, p); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a product from the caller's own listing.
func (s *Service) Delete(ctx context.Context, caller *users.User, id int64) error {
	if _, err := s.owned(ctx, caller, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ownListing(ctx context.Context, caller *users.User) (*suppliers.Supplier, error) {
	supplier, err := s.suppliers.GetByOwner(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("%w: no supplier listing for this account", httpx.ErrForbidden)
		}
		return nil, err
	}
	return supplier, nil
}

func (s *Service) owned(ctx context.Context, caller *users.User, productID int64) (*Product, error) {
	product, err := s.repo.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if caller.CanModerate() {
		return product, nil
	}
	supplier, err := s.ownListing(ctx, caller)
	if err != nil {
		return nil, err
	}
	if product.SupplierID != supplier.ID {
		return nil, fmt.Errorf("%w: product belongs to another supplier", httpx.ErrForbidden)
	}
	return product, nil
}

func validateProduct(p Product) error {
	name := strings.TrimSpace(p.Name)
	switch {
	case name == "":
		return fmt.Errorf("%w: product name is required", httpx.ErrValidation)
	case len(name) > 160:
		return fmt.Errorf("%w: product name too long", httpx.ErrValidation)
	case len(p.Description) > 2000:
		return fmt.Errorf("%w: description too long", httpx.ErrValidation)
	case p.PriceKobo < 0:
		return fmt.Errorf("%w: price cannot be negative", httpx.ErrValidation)
	}
	return nil
}
