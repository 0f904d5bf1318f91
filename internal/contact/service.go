package contact

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/olufinja/naijafind/internal/mailer"
	"github.com/olufinja/naijafind/internal/platform/httpx"
	"github.com/olufinja/naijafind/internal/ratelimit"
	"github.com/olufinja/naijafind/internal/shared"
	"github.com/olufinja/naijafind/internal/suppliers"
	"github.com/olufinja/naijafind/internal/users"
)

const (
	contactAction = "contact_message"
	contactLimit  = 5
	contactWindow = time.Hour
)

// Service handles inbound contact messages. Every message is persisted
// first; forwarding by email is best effort.
type Service struct {
	repo      Repository
	suppliers suppliers.Repository
	users     users.Repository
	limiter   *ratelimit.Limiter
	outbox    mailer.Outbox
	inbox     string
	logger    *slog.Logger
}

// NewService constructs a new Service. inbox is the address site-level
// messages are forwarded to.
func NewService(repo Repository, suppliersRepo suppliers.Repository, usersRepo users.Repository, limiter *ratelimit.Limiter, outbox mailer.Outbox, inbox string, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		suppliers: suppliersRepo,
		users:     usersRepo,
		limiter:   limiter,
		outbox:    outbox,
		inbox:     inbox,
		logger:    logger,
	}
}

// Send persists a message and forwards it. supplierID nil addresses the
// site operators. Rate limited per sender address.
func (s *Service) Send(ctx context.Context, m Message) (*Message, error) {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	m.Subject = strings.TrimSpace(m.Subject)

	if m.Name == "" {
		return nil, fmt.Errorf("%w: name is required", httpx.ErrValidation)
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", httpx.ErrValidation)
	}
	if strings.TrimSpace(m.Body) == "" {
		return nil, fmt.Errorf("%w: message body is required", httpx.ErrValidation)
	}
	if len(m.Body) > 5000 {
		return nil, fmt.Errorf("%w: message too long", httpx.ErrValidation)
	}

	decision, err := s.limiter.Allow(ctx, m.Email, contactAction, contactLimit, contactWindow)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, fmt.Errorf("%w: try again after %s", httpx.ErrRateLimited, decision.ResetAt.Format(time.RFC3339))
	}

	to := s.inbox
	if m.SupplierID != nil {
		supplier, err := s.suppliers.Get(ctx, *m.SupplierID)
		if err != nil {
			return nil, err
		}
		if !supplier.Approved {
			return nil, shared.ErrNotFound
		}
		to = s.recipient(ctx, supplier)
	}

	created, err := s.repo.Create(ctx, m)
	if err != nil {
		return nil, err
	}

	// The message is stored; a dead outbox must not fail the request.
	if s.outbox != nil && to != "" {
		err := s.outbox.Enqueue(ctx, mailer.Email{
			To:      to,
			Subject: "New message via NaijaFind: " + m.Subject,
			Body:    fmt.Sprintf("From: %s <%s>\n\n%s", m.Name, m.Email, m.Body),
		})
		if err != nil {
			s.logger.Error("enqueue contact email", slog.Int64("message_id", created.ID), slog.Any("error", err))
		}
	}
	return created, nil
}

// Inbox returns the stored messages addressed to the caller's listing.
func (s *Service) Inbox(ctx context.Context, caller *users.User, limit, offset int) ([]Message, int, error) {
	supplier, err := s.suppliers.GetByOwner(ctx, caller.ID)
	if err != nil {
		return nil, 0, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListBySupplier(ctx, supplier.ID, limit, offset)
}

// recipient prefers the listing's public contact address and falls back to
// the owner's account address.
func (s *Service) recipient(ctx context.Context, supplier *suppliers.Supplier) string {
	if supplier.Email != "" {
		return supplier.Email
	}
	owner, err := s.users.Get(ctx, supplier.OwnerID)
	if err != nil {
		s.logger.Warn("load listing owner", slog.Int64("supplier_id", supplier.ID), slog.Any("error", err))
		return ""
	}
	return owner.Email
}
