package newsletter

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/olufinja/naijafind/internal/mailer"
	"github.com/olufinja/naijafind/internal/ratelimit"
	"github.com/olufinja/naijafind/internal/shared"
)

// memRepo is an in-memory Repository for service tests.
type memRepo struct {
	nextID int64
	byID   map[int64]*Subscriber
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1, byID: make(map[int64]*Subscriber)}
}

func (m *memRepo) FindByEmail(ctx context.Context, email string) (*Subscriber, error) {
	for _, s := range m.byID {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memRepo) FindByToken(ctx context.Context, token string) (*Subscriber, error) {
	for _, s := range m.byID {
		if s.Token == token {
			cp := *s
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memRepo) Create(ctx context.Context, email, token string) (*Subscriber, error) {
	s := &Subscriber{ID: m.nextID, Email: email, Token: token, Active: true, SubscribedAt: time.Now()}
	m.byID[s.ID] = s
	m.nextID++
	cp := *s
	return &cp, nil
}

func (m *memRepo) Reactivate(ctx context.Context, id int64) error {
	s, ok := m.byID[id]
	if !ok {
		return shared.ErrNotFound
	}
	s.Active = true
	s.UnsubscribedAt = nil
	return nil
}

func (m *memRepo) Deactivate(ctx context.Context, id int64) error {
	s, ok := m.byID[id]
	if !ok {
		return shared.ErrNotFound
	}
	now := time.Now()
	s.Active = false
	s.UnsubscribedAt = &now
	return nil
}

func (m *memRepo) ListActive(ctx context.Context) ([]Subscriber, error) {
	var out []Subscriber
	for id := int64(1); id < m.nextID; id++ {
		if s, ok := m.byID[id]; ok && s.Active {
			out = append(out, *s)
		}
	}
	return out, nil
}

// recordingOutbox collects enqueued emails.
type recordingOutbox struct {
	emails []mailer.Email
}

func (o *recordingOutbox) Enqueue(ctx context.Context, e mailer.Email) error {
	o.emails = append(o.emails, e)
	return nil
}

func newTestService(t *testing.T) (*Service, *memRepo, *recordingOutbox) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := newMemRepo()
	outbox := &recordingOutbox{}
	svc := NewService(repo, ratelimit.NewLimiter(client), outbox, slog.Default())
	return svc, repo, outbox
}

func TestSubscribeNewAddress(t *testing.T) {
	svc, repo, outbox := newTestService(t)

	res, err := svc.Subscribe(context.Background(), "Ada@Example.COM")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if res.AlreadySubscribed {
		t.Fatal("new address reported as already subscribed")
	}
	if res.Message != "Successfully subscribed" {
		t.Fatalf("unexpected message %q", res.Message)
	}

	sub, err := repo.FindByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("address not normalised or not stored: %v", err)
	}
	if !sub.Active {
		t.Fatal("subscriber not active")
	}
	if len(outbox.emails) != 1 {
		t.Fatalf("expected welcome email, got %d", len(outbox.emails))
	}
}

func TestSubscribeActiveAddressReportsAlready(t *testing.T) {
	svc, _, outbox := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Subscribe(ctx, "ada@example.com"); err != nil {
		t.Fatalf("first subscribe: %v", err)
	}
	res, err := svc.Subscribe(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("second subscribe: %v", err)
	}
	if !res.AlreadySubscribed {
		t.Fatal("active address should report already subscribed")
	}
	if len(outbox.emails) != 1 {
		t.Fatalf("no second welcome email expected, got %d", len(outbox.emails))
	}
}

func TestSubscribeReactivatesUnsubscribed(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Subscribe(ctx, "ada@example.com"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	sub, _ := repo.FindByEmail(ctx, "ada@example.com")
	if err := svc.Unsubscribe(ctx, sub.Token); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}

	res, err := svc.Subscribe(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("resubscribe: %v", err)
	}
	if res.AlreadySubscribed {
		t.Fatal("reactivation must not report already subscribed")
	}
	if res.Message != "Successfully resubscribed" {
		t.Fatalf("unexpected message %q", res.Message)
	}
	sub, _ = repo.FindByEmail(ctx, "ada@example.com")
	if !sub.Active || sub.UnsubscribedAt != nil {
		t.Fatal("subscription not fully reactivated")
	}
}

func TestUnsubscribeUnknownToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Unsubscribe(context.Background(), "1db9f6b4-9e39-4f3a-b9a4-19f4a0a7c9f1")
	if err == nil {
		t.Fatal("expected not found for unknown token")
	}
}

func TestUnsubscribeMalformedToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	if err := svc.Unsubscribe(context.Background(), "not-a-uuid"); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestBroadcastSkipsInactive(t *testing.T) {
	svc, repo, outbox := newTestService(t)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		if _, err := svc.Subscribe(ctx, email); err != nil {
			t.Fatalf("subscribe %s: %v", email, err)
		}
	}
	sub, _ := repo.FindByEmail(ctx, "b@example.com")
	if err := svc.Unsubscribe(ctx, sub.Token); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	outbox.emails = nil

	sent, err := svc.Broadcast(ctx, "August digest", "New suppliers this month.")
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if sent != 2 {
		t.Fatalf("expected 2 enqueued, got %d", sent)
	}
	for _, e := range outbox.emails {
		if e.To == "b@example.com" {
			t.Fatal("unsubscribed address received the broadcast")
		}
	}
}

func TestSubscribeRateLimited(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < subscribeLimit; i++ {
		if _, err := svc.Subscribe(ctx, "ada@example.com"); err != nil {
			t.Fatalf("subscribe %d: %v", i, err)
		}
	}
	if _, err := svc.Subscribe(ctx, "ada@example.com"); err == nil {
		t.Fatal("expected rate limit error")
	}
}
