package categories

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/olufinja/naijafind/internal/platform/httpx"
)

var titleCaser = cases.Title(language.English)

// NormalizeName trims and title-cases a category name so "agriculture" and
// "Agriculture " land on the same unique row.
func NormalizeName(name string) string {
	return titleCaser.String(strings.TrimSpace(name))
}

// Service wraps category business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns categories; activeOnly hides disabled ones from the public.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]Category, error) {
	return s.repo.List(ctx, activeOnly)
}

// Get loads a category by id.
func (s *Service) Get(ctx context.Context, id int64) (*Category, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid category id", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// Create inserts an admin-authored category.
func (s *Service) Create(ctx context.Context, c Category) (*Category, error) {
	c.Name = NormalizeName(c.Name)
	if c.Name == "" {
		return nil, fmt.Errorf("%w: name required", httpx.ErrValidation)
	}
	return s.repo.Create(ctx, c)
}

// Update rewrites a category. Renaming does not touch suppliers that
// reference the old name; that is long-standing behaviour.
func (s *Service) Update(ctx context.Context, id int64, c Category) (*Category, error) {
	c.Name = NormalizeName(c.Name)
	if c.Name == "" {
		return nil, fmt.Errorf("%w: name required", httpx.ErrValidation)
	}
	if err := s.repo.Update(ctx, id, c); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a category.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid category id", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

// Seed bulk-inserts categories, skipping names that already exist.
// Returns the number of rows attempted.
func (s *Service) Seed(ctx context.Context, seeds []SeedCategory) (int, error) {
	for i, seed := range seeds {
		c := Category{
			Name:         NormalizeName(seed.Name),
			Description:  strings.TrimSpace(seed.Description),
			Icon:         seed.Icon,
			DisplayOrder: seed.DisplayOrder,
		}
		if c.Name == "" {
			return i, fmt.Errorf("%w: seed entry %d has no name", httpx.ErrValidation, i)
		}
		if c.DisplayOrder == 0 {
			c.DisplayOrder = i + 1
		}
		if err := s.repo.Upsert(ctx, c); err != nil {
			return i, err
		}
	}
	return len(seeds), nil
}

// Bootstrap seeds the default directory categories. Idempotent: existing
// names are left alone.
func (s *Service) Bootstrap(ctx context.Context) (int, error) {
	return s.Seed(ctx, defaultCategories)
}

var defaultCategories = []SeedCategory{
	{Name: "Agriculture", Description: "Farm produce, agro-processing and farm inputs", Icon: "leaf"},
	{Name: "Fashion & Textiles", Description: "Clothing, fabrics, footwear and accessories", Icon: "shirt"},
	{Name: "Electronics", Description: "Consumer electronics, phones and components", Icon: "cpu"},
	{Name: "Building Materials", Description: "Cement, roofing, tiles and hardware", Icon: "bricks"},
	{Name: "Food & Beverages", Description: "Packaged foods, drinks and ingredients", Icon: "utensils"},
	{Name: "Health & Beauty", Description: "Cosmetics, personal care and wellness", Icon: "heart"},
	{Name: "Automotive", Description: "Vehicles, spare parts and accessories", Icon: "car"},
	{Name: "Home & Furniture", Description: "Furniture, decor and homeware", Icon: "sofa"},
	{Name: "Industrial Equipment", Description: "Machinery, tools and plant equipment", Icon: "factory"},
	{Name: "Packaging & Printing", Description: "Packaging materials and print services", Icon: "package"},
	{Name: "Logistics", Description: "Haulage, courier and freight services", Icon: "truck"},
	{Name: "Professional Services", Description: "Business, legal and technical services", Icon: "briefcase"},
}
