package categories

import (
	"context"
	"errors"
	"testing"

	"github.com/olufinja/naijafind/internal/platform/httpx"
	"github.com/olufinja/naijafind/internal/shared"
)

type memRepo struct {
	Repository
	nextID int64
	byName map[string]*Category
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1, byName: make(map[string]*Category)}
}

func (m *memRepo) Create(ctx context.Context, c Category) (*Category, error) {
	if _, ok := m.byName[c.Name]; ok {
		return nil, shared.ErrAlreadyExists
	}
	c.ID = m.nextID
	m.nextID++
	m.byName[c.Name] = &c
	cp := c
	return &cp, nil
}

func (m *memRepo) Upsert(ctx context.Context, c Category) error {
	if _, ok := m.byName[c.Name]; ok {
		return nil
	}
	c.ID = m.nextID
	m.nextID++
	m.byName[c.Name] = &c
	return nil
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"agriculture":        "Agriculture",
		"  food & beverages": "Food & Beverages",
		"LOGISTICS":          "Logistics",
		"Fashion & Textiles": "Fashion & Textiles",
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCreateNormalizesAndRequiresName(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), Category{Name: "  agriculture "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "Agriculture" {
		t.Fatalf("name = %q, want Agriculture", created.Name)
	}

	if _, err := svc.Create(context.Background(), Category{Name: "   "}); !errors.Is(err, httpx.ErrValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
}

func TestBootstrapIsIdempotent(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Bootstrap(ctx); err != nil {
		t.Fatalf("first bootstrap: %v", err)
	}
	first := len(repo.byName)
	if first != len(defaultCategories) {
		t.Fatalf("seeded %d categories, want %d", first, len(defaultCategories))
	}

	if _, err := svc.Bootstrap(ctx); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	if len(repo.byName) != first {
		t.Fatalf("second bootstrap added rows: %d != %d", len(repo.byName), first)
	}
}

func TestSeedAssignsDisplayOrder(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)

	_, err := svc.Seed(context.Background(), []SeedCategory{
		{Name: "Alpha"},
		{Name: "Beta", DisplayOrder: 10},
		{Name: "Gamma"},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got := repo.byName["Alpha"].DisplayOrder; got != 1 {
		t.Errorf("Alpha order = %d, want 1", got)
	}
	if got := repo.byName["Beta"].DisplayOrder; got != 10 {
		t.Errorf("Beta order = %d, want 10", got)
	}
	if got := repo.byName["Gamma"].DisplayOrder; got != 3 {
		t.Errorf("Gamma order = %d, want 3", got)
	}
}
