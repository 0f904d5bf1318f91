package newsletter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olufinja/naijafind/internal/mailer"
	"github.com/olufinja/naijafind/internal/platform/httpx"
	"github.com/olufinja/naijafind/internal/ratelimit"
	"github.com/olufinja/naijafind/internal/shared"
)

const (
	subscribeAction = "newsletter_subscribe"
	subscribeLimit  = 5
	subscribeWindow = time.Hour
)

// Service owns newsletter subscription state and broadcasts.
type Service struct {
	repo    Repository
	limiter *ratelimit.Limiter
	outbox  mailer.Outbox
	logger  *slog.Logger
}

// NewService constructs a new Service.
func NewService(repo Repository, limiter *ratelimit.Limiter, outbox mailer.Outbox, logger *slog.Logger) *Service {
	return &Service{repo: repo, limiter: limiter, outbox: outbox, logger: logger}
}

// Subscribe adds or reactivates a subscription. An address that previously
// unsubscribed is silently reactivated; only an address that is currently
// active reports AlreadySubscribed.
func (s *Service) Subscribe(ctx context.Context, email string) (SubscribeResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return SubscribeResult{}, fmt.Errorf("%w: invalid email address", httpx.ErrValidation)
	}

	decision, err := s.limiter.Allow(ctx, email, subscribeAction, subscribeLimit, subscribeWindow)
	if err != nil {
		return SubscribeResult{}, err
	}
	if !decision.Allowed {
		return SubscribeResult{}, fmt.Errorf("%w: try again later", httpx.ErrRateLimited)
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.Active:
		return SubscribeResult{AlreadySubscribed: true, Message: "You are already subscribed"}, nil
	case err == nil:
		if err := s.repo.Reactivate(ctx, existing.ID); err != nil {
			return SubscribeResult{}, err
		}
		s.sendWelcome(ctx, email, existing.Token)
		return SubscribeResult{AlreadySubscribed: false, Message: "Successfully resubscribed"}, nil
	case errors.Is(err, shared.ErrNotFound):
		created, err := s.repo.Create(ctx, email, uuid.NewString())
		if err != nil {
			return SubscribeResult{}, err
		}
		s.sendWelcome(ctx, email, created.Token)
		return SubscribeResult{AlreadySubscribed: false, Message: "Successfully subscribed"}, nil
	default:
		return SubscribeResult{}, err
	}
}

// Unsubscribe deactivates the subscription behind the token. Unknown tokens
// surface not found.
func (s *Service) Unsubscribe(ctx context.Context, token string) error {
	if _, err := uuid.Parse(token); err != nil {
		return fmt.Errorf("%w: malformed unsubscribe token", httpx.ErrValidation)
	}
	sub, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return err
	}
	if !sub.Active {
		return nil
	}
	return s.repo.Deactivate(ctx, sub.ID)
}

// Broadcast enqueues the issue for every active subscriber. Individual
// enqueue failures are logged and skipped; the count of enqueued emails is
// returned.
func (s *Service) Broadcast(ctx context.Context, subject, body string) (int, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return 0, fmt.Errorf("%w: subject is required", httpx.ErrValidation)
	}
	if strings.TrimSpace(body) == "" {
		return 0, fmt.Errorf("%w: body is required", httpx.ErrValidation)
	}

	subs, err := s.repo.ListActive(ctx)
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, sub := range subs {
		err := s.outbox.Enqueue(ctx, mailer.Email{
			To:      sub.Email,
			Subject: subject,
			Body:    body + s.footer(sub.Token),
		})
		if err != nil {
			s.logger.Error("enqueue newsletter", slog.String("to", sub.Email), slog.Any("error", err))
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *Service) sendWelcome(ctx context.Context, email, token string) {
	if s.outbox == nil {
		return
	}
	err := s.outbox.Enqueue(ctx, mailer.Email{
		To:      email,
		Subject: "Welcome to the NaijaFind newsletter",
		Body:    "Thanks for subscribing. You will hear from us with new suppliers and market updates." + s.footer(token),
	})
	if err != nil {
		s.logger.Error("enqueue welcome email", slog.String("to", email), slog.Any("error", err))
	}
}

func (s *Service) footer(token string) string {
	return "\n\nUnsubscribe: https://naijafind.ng/newsletter/unsubscribe/" + token
}
