package suppliers

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/olufinja/naijafind/internal/categories"
	"github.com/olufinja/naijafind/internal/mailer"
	"github.com/olufinja/naijafind/internal/platform/httpx"
	"github.com/olufinja/naijafind/internal/ratelimit"
	"github.com/olufinja/naijafind/internal/shared"
	"github.com/olufinja/naijafind/internal/users"
)

type memSupplierRepo struct {
	Repository
	nextID int64
	byID   map[int64]*Supplier
}

func newMemSupplierRepo() *memSupplierRepo {
	return &memSupplierRepo{nextID: 1, byID: make(map[int64]*Supplier)}
}

func (m *memSupplierRepo) Get(ctx context.Context, id int64) (*Supplier, error) {
	s, ok := m.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSupplierRepo) GetByOwner(ctx context.Context, ownerID int64) (*Supplier, error) {
	for _, s := range m.byID {
		if s.OwnerID == ownerID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memSupplierRepo) Create(ctx context.Context, s Supplier) (*Supplier, error) {
	s.ID = m.nextID
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	m.byID[s.ID] = &s
	m.nextID++
	cp := s
	return &cp, nil
}

func (m *memSupplierRepo) SetApproved(ctx context.Context, id int64, approved bool) error {
	s, ok := m.byID[id]
	if !ok {
		return shared.ErrNotFound
	}
	s.Approved = approved
	return nil
}

type memUserRepo struct {
	users.Repository
	byID map[int64]*users.User
}

func (m *memUserRepo) Get(ctx context.Context, id int64) (*users.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) SetRole(ctx context.Context, id int64, role string) error {
	u, ok := m.byID[id]
	if !ok {
		return shared.ErrNotFound
	}
	u.UserType = role
	return nil
}

type memCategoryRepo struct {
	categories.Repository
	names map[string]bool
}

func (m *memCategoryRepo) GetByName(ctx context.Context, name string) (*categories.Category, error) {
	if m.names[name] {
		return &categories.Category{Name: name}, nil
	}
	return nil, shared.ErrNotFound
}

type recordingOutbox struct {
	emails []mailer.Email
}

func (o *recordingOutbox) Enqueue(ctx context.Context, e mailer.Email) error {
	o.emails = append(o.emails, e)
	return nil
}

type failingOutbox struct{}

func (failingOutbox) Enqueue(ctx context.Context, e mailer.Email) error {
	return errors.New("queue down")
}

func newTestService(t *testing.T, outbox mailer.Outbox) (*Service, *memSupplierRepo, *memUserRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := newMemSupplierRepo()
	usersRepo := &memUserRepo{byID: map[int64]*users.User{
		1: {ID: 1, Email: "tunde@example.com", Name: "Tunde", UserType: users.RoleUser},
	}}
	catRepo := &memCategoryRepo{names: map[string]bool{"Agriculture": true}}
	svc := NewService(repo, usersRepo, catRepo, ratelimit.NewLimiter(client), outbox, slog.Default())
	return svc, repo, usersRepo
}

func validProfile() Profile {
	return Profile{BusinessName: "Bakare Agro", Category: "Agriculture", City: "Ibadan"}
}

func TestSignUpCreatesPendingSupplier(t *testing.T) {
	outbox := &recordingOutbox{}
	svc, _, usersRepo := newTestService(t, outbox)

	created, err := svc.SignUp(context.Background(), 1, validProfile())
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if created.Approved {
		t.Fatal("new supplier must start unapproved")
	}
	if created.OwnerID != 1 {
		t.Fatalf("owner id = %d, want 1", created.OwnerID)
	}
	if usersRepo.byID[1].UserType != users.RoleSupplier {
		t.Fatal("owner role not flipped to supplier")
	}
	if len(outbox.emails) != 1 || !strings.Contains(outbox.emails[0].Subject, "application") {
		t.Fatalf("expected application-received email, got %+v", outbox.emails)
	}
}

func TestSignUpRejectsSecondProfile(t *testing.T) {
	svc, _, _ := newTestService(t, &recordingOutbox{})
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, 1, validProfile()); err != nil {
		t.Fatalf("first sign up: %v", err)
	}
	_, err := svc.SignUp(ctx, 1, validProfile())
	if !errors.Is(err, httpx.ErrDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestSignUpUnknownCategory(t *testing.T) {
	svc, _, _ := newTestService(t, &recordingOutbox{})

	p := validProfile()
	p.Category = "Spacecraft"
	_, err := svc.SignUp(context.Background(), 1, p)
	if !errors.Is(err, httpx.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSignUpSucceedsWhenOutboxFails(t *testing.T) {
	svc, _, _ := newTestService(t, failingOutbox{})

	if _, err := svc.SignUp(context.Background(), 1, validProfile()); err != nil {
		t.Fatalf("sign up must not fail on outbox error: %v", err)
	}
}

func TestGetHidesUnapprovedFromPublic(t *testing.T) {
	svc, repo, _ := newTestService(t, &recordingOutbox{})
	ctx := context.Background()

	created, err := svc.SignUp(ctx, 1, validProfile())
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	if _, err := svc.Get(ctx, created.ID, nil); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("anonymous viewer should see not found, got %v", err)
	}
	owner := &users.User{ID: 1}
	if _, err := svc.Get(ctx, created.ID, owner); err != nil {
		t.Fatalf("owner should see own pending listing: %v", err)
	}
	admin := &users.User{ID: 99, IsAdmin: true}
	if _, err := svc.Get(ctx, created.ID, admin); err != nil {
		t.Fatalf("admin should see pending listing: %v", err)
	}

	if err := repo.SetApproved(ctx, created.ID, true); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID, nil); err != nil {
		t.Fatalf("approved listing should be public: %v", err)
	}
}

func TestApproveNotifiesOwner(t *testing.T) {
	outbox := &recordingOutbox{}
	svc, _, _ := newTestService(t, outbox)
	ctx := context.Background()

	created, err := svc.SignUp(ctx, 1, validProfile())
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	outbox.emails = nil

	if err := svc.Approve(ctx, created.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	got, err := svc.Get(ctx, created.ID, nil)
	if err != nil {
		t.Fatalf("get after approve: %v", err)
	}
	if !got.Approved {
		t.Fatal("supplier not approved")
	}
	if len(outbox.emails) != 1 || outbox.emails[0].To != "tunde@example.com" {
		t.Fatalf("expected approval email to owner, got %+v", outbox.emails)
	}
}

func TestSignUpRateLimited(t *testing.T) {
	svc, repo, _ := newTestService(t, &recordingOutbox{})
	ctx := context.Background()

	for i := 0; i < signupLimit; i++ {
		if _, err := svc.SignUp(ctx, 1, validProfile()); err != nil {
			t.Fatalf("sign up %d: %v", i, err)
		}
		// Drop the profile so the next attempt passes the duplicate check.
		repo.byID = make(map[int64]*Supplier)
	}
	_, err := svc.SignUp(ctx, 1, validProfile())
	if !errors.Is(err, httpx.ErrRateLimited) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
}
