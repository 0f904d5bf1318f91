package suppliers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olufinja/naijafind/internal/categories"
	"github.com/olufinja/naijafind/internal/mailer"
	"github.com/olufinja/naijafind/internal/platform/httpx"
	"github.com/olufinja/naijafind/internal/ratelimit"
	"github.com/olufinja/naijafind/internal/shared"
	"github.com/olufinja/naijafind/internal/users"
)

const (
	signupAction = "supplier_signup"
	signupLimit  = 3
	signupWindow = time.Hour
)

// Service wraps supplier lifecycle rules: sign-up, dashboard edits and
// admin moderation.
type Service struct {
	repo       Repository
	users      users.Repository
	categories categories.Repository
	limiter    *ratelimit.Limiter
	outbox     mailer.Outbox
	logger     *slog.Logger
	onChange   func(context.Context)
}

// NewService constructs a new Service.
func NewService(repo Repository, usersRepo users.Repository, categoriesRepo categories.Repository, limiter *ratelimit.Limiter, outbox mailer.Outbox, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		users:      usersRepo,
		categories: categoriesRepo,
		limiter:    limiter,
		outbox:     outbox,
		logger:     logger,
	}
}

// OnChange registers a callback fired after any mutation that can alter
// the public dataset. The search service hooks its cache invalidation
// here; a direct call would cycle the imports.
func (s *Service) OnChange(fn func(context.Context)) {
	s.onChange = fn
}

func (s *Service) notifyChange(ctx context.Context) {
	if s.onChange != nil {
		s.onChange(ctx)
	}
}

// enqueueEmail pushes to the outbox; failures are logged and swallowed so
// the triggering mutation still succeeds.
func (s *Service) enqueueEmail(ctx context.Context, email mailer.Email) {
	if s.outbox == nil {
		return
	}
	if err := s.outbox.Enqueue(ctx, email); err != nil {
		s.logger.Error("enqueue email", slog.String("to", email.To), slog.Any("error", err))
	}
}

func (s *Service) checkCategory(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	if _, err := s.categories.GetByName(ctx, name); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("%w: unknown category %q", httpx.ErrValidation, name)
		}
		return err
	}
	return nil
}

// SignUp creates a pending supplier for the user, flips their role to
// supplier and notifies them. Rate limited per account email.
func (s *Service) SignUp(ctx context.Context, userID int64, p Profile) (*Supplier, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	decision, err := s.limiter.Allow(ctx, user.Email, signupAction, signupLimit, signupWindow)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, fmt.Errorf("%w: try again after %s", httpx.ErrRateLimited, decision.ResetAt.Format(time.RFC3339))
	}

	if err := validateProfile(p); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, p.Category); err != nil {
		return nil, err
	}
	if existing, err := s.repo.GetByOwner(ctx, userID); err == nil {
		return nil, fmt.Errorf("%w: supplier profile already exists (id %d)", httpx.ErrDuplicate, existing.ID)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	created, err := s.repo.Create(ctx, Supplier{
		OwnerID:      userID,
		BusinessName: strings.TrimSpace(p.BusinessName),
		Category:     p.Category,
		Description:  p.Description,
		Address:      p.Address,
		City:         p.City,
		State:        p.State,
		Country:      p.Country,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		Phone:        p.Phone,
		Email:        p.Email,
		Website:      p.Website,
		ImageURL:     p.ImageURL,
		Gallery:      p.Gallery,
	})
	if err != nil {
		return nil, err
	}
	if err := s.users.SetRole(ctx, userID, users.RoleSupplier); err != nil {
		s.logger.Warn("set supplier role", slog.Int64("user_id", userID), slog.Any("error", err))
	}

	s.enqueueEmail(ctx, mailer.Email{
		To:      user.Email,
		Subject: "Your NaijaFind supplier application",
		Body: fmt.Sprintf("Hello %s,\n\nWe received your application for %q. "+
			"Our team reviews new suppliers within 2 business days.\n\nNaijaFind", user.Name, created.BusinessName),
	})
	return created, nil
}

// Get returns a supplier. Unapproved suppliers are hidden unless the caller
// is the owner or a moderator.
func (s *Service) Get(ctx context.Context, id int64, viewer *users.User) (*Supplier, error) {
	supplier, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier.Approved {
		return supplier, nil
	}
	if viewer != nil && (viewer.ID == supplier.OwnerID || viewer.CanModerate()) {
		return supplier, nil
	}
	return nil, shared.ErrNotFound
}

// MyProfile returns the supplier owned by the user.
func (s *Service) MyProfile(ctx context.Context, ownerID int64) (*Supplier, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

// UpdateProfile applies a dashboard edit by the owner.
func (s *Service) UpdateProfile(ctx context.Context, ownerID int64, p Profile) (*Supplier, error) {
	existing, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := validateProfile(p); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, p.Category); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProfile(ctx, existing.ID, p); err != nil {
		return nil, err
	}
	s.notifyChange(ctx)
	return s.repo.Get(ctx, existing.ID)
}

// ListPending returns suppliers awaiting moderation.
func (s *Service) ListPending(ctx context.Context, limit, offset int) ([]Supplier, int, error) {
	return s.repo.ListPending(ctx, limit, offset)
}

// Approve publishes a supplier and notifies the owner.
func (s *Service) Approve(ctx context.Context, id int64) error {
	supplier, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SetApproved(ctx, id, true); err != nil {
		return err
	}
	s.notifyChange(ctx)
	s.notifyOwner(ctx, supplier, "Your NaijaFind listing is live",
		fmt.Sprintf("Good news: %q has been approved and is now visible in the directory.", supplier.BusinessName))
	return nil
}

// Reject unpublishes a supplier and notifies the owner with the reason.
func (s *Service) Reject(ctx context.Context, id int64, reason string) error {
	supplier, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SetApproved(ctx, id, false); err != nil {
		return err
	}
	s.notifyChange(ctx)
	body := fmt.Sprintf("Your listing %q was not approved.", supplier.BusinessName)
	if reason != "" {
		body += "\n\nReason: " + reason
	}
	s.notifyOwner(ctx, supplier, "Your NaijaFind application", body)
	return nil
}

// SetFeatured toggles the featured flag.
func (s *Service) SetFeatured(ctx context.Context, id int64, featured bool) error {
	if err := s.repo.SetFeatured(ctx, id, featured); err != nil {
		return err
	}
	s.notifyChange(ctx)
	return nil
}

// SetVerified toggles the verified badge.
func (s *Service) SetVerified(ctx context.Context, id int64, verified bool) error {
	if err := s.repo.SetVerified(ctx, id, verified); err != nil {
		return err
	}
	s.notifyChange(ctx)
	return nil
}

// Delete removes a supplier entirely. Admin only; suppliers themselves are
// never hard-deleted through the dashboard.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifyChange(ctx)
	return nil
}

func (s *Service) notifyOwner(ctx context.Context, supplier *Supplier, subject, body string) {
	owner, err := s.users.Get(ctx, supplier.OwnerID)
	if err != nil {
		s.logger.Warn("load supplier owner", slog.Int64("supplier_id", supplier.ID), slog.Any("error", err))
		return
	}
	s.enqueueEmail(ctx, mailer.Email{To: owner.Email, Subject: subject, Body: body + "\n\nNaijaFind"})
}
