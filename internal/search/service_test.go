package search

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olufinja/naijafind/internal/suppliers"
)

// fakeRepo serves a fixed approved-supplier set and counts loads.
type fakeRepo struct {
	suppliers.Repository
	approved []suppliers.Supplier
	loads    int
}

func (f *fakeRepo) ListApproved(ctx context.Context) ([]suppliers.Supplier, error) {
	f.loads++
	out := make([]suppliers.Supplier, len(f.approved))
	copy(out, f.approved)
	return out, nil
}

func ptr(v float64) *float64 { return &v }

func newService(t *testing.T, dataset []suppliers.Supplier) (*Service, *fakeRepo) {
	t.Helper()
	repo := &fakeRepo{approved: dataset}
	return NewService(repo, nil, time.Minute, nil, slog.Default()), repo
}

func supplier(id int64, name, category string) suppliers.Supplier {
	return suppliers.Supplier{
		ID:           id,
		BusinessName: name,
		Category:     category,
		City:         "Lagos",
		Country:      "Nigeria",
		Approved:     true,
		CreatedAt:    time.Unix(1700000000+id, 0),
	}
}

func TestSearchCategoryExactMatch(t *testing.T) {
	svc, _ := newService(t, []suppliers.Supplier{
		supplier(1, "AgroMart", "Agriculture"),
		supplier(2, "Textile Hub", "Fashion & Textiles"),
		supplier(3, "Farm Direct", "Agriculture"),
	})

	res, err := svc.Search(context.Background(), Params{Category: "Agriculture"})
	require.NoError(t, err)
	require.Equal(t, 2, res.Total)
	for _, item := range res.Suppliers {
		assert.Equal(t, "Agriculture", item.Category)
	}

	// Category matching is case-sensitive.
	res, err = svc.Search(context.Background(), Params{Category: "agriculture"})
	require.NoError(t, err)
	assert.Zero(t, res.Total)
}

func TestSearchQueryMatchesNameAndDescription(t *testing.T) {
	a := supplier(1, "Lekki Cement Depot", "Building Materials")
	b := supplier(2, "BuildRight", "Building Materials")
	b.Description = "Wholesale cement and aggregates"
	c := supplier(3, "Fresh Foods", "Food & Beverages")
	svc, _ := newService(t, []suppliers.Supplier{a, b, c})

	res, err := svc.Search(context.Background(), Params{Query: "CEMENT"})
	require.NoError(t, err)
	require.Equal(t, 2, res.Total)
	assert.Equal(t, int64(1), res.Suppliers[0].ID)
	assert.Equal(t, int64(2), res.Suppliers[1].ID)
}

func TestSearchMinRatingAndRatingSort(t *testing.T) {
	var dataset []suppliers.Supplier
	ratings := []float64{4.8, 3.2, 4.0, 4.8, 2.5}
	reviews := []int{10, 50, 7, 30, 1}
	for i, r := range ratings {
		s := supplier(int64(i+1), fmt.Sprintf("Vendor %d", i+1), "Electronics")
		s.Rating = r
		s.ReviewsCount = reviews[i]
		dataset = append(dataset, s)
	}
	svc, _ := newService(t, dataset)

	res, err := svc.Search(context.Background(), Params{MinRating: 4, SortBy: SortRating})
	require.NoError(t, err)
	require.Equal(t, 3, res.Total)
	for i := 1; i < len(res.Suppliers); i++ {
		assert.GreaterOrEqual(t, res.Suppliers[i-1].Rating, res.Suppliers[i].Rating)
	}
	// Equal ratings break the tie on review count.
	assert.Equal(t, int64(4), res.Suppliers[0].ID)
	assert.Equal(t, int64(1), res.Suppliers[1].ID)
}

func TestSearchVerifiedOnly(t *testing.T) {
	a := supplier(1, "Alpha", "Logistics")
	b := supplier(2, "Beta", "Logistics")
	b.Verified = true
	svc, _ := newService(t, []suppliers.Supplier{a, b})

	res, err := svc.Search(context.Background(), Params{VerifiedOnly: true})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, int64(2), res.Suppliers[0].ID)
}

func TestSearchRadiusExcludesFarSuppliers(t *testing.T) {
	near := supplier(1, "Ikeja Spares", "Automotive")
	near.Latitude, near.Longitude = ptr(6.6018), ptr(3.3515)
	far := supplier(2, "Kano Spares", "Automotive")
	far.Latitude, far.Longitude = ptr(12.0022), ptr(8.5920)
	svc, _ := newService(t, []suppliers.Supplier{near, far})

	res, err := svc.Search(context.Background(), Params{
		Lat: ptr(6.6), Lng: ptr(3.35), RadiusKm: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, int64(1), res.Suppliers[0].ID)
	require.NotNil(t, res.Suppliers[0].DistanceKm)
	assert.Less(t, *res.Suppliers[0].DistanceKm, 10.0)
}

func TestSearchDistanceSort(t *testing.T) {
	lagos := supplier(1, "Lagos Depot", "Logistics")
	lagos.Latitude, lagos.Longitude = ptr(6.5244), ptr(3.3792)
	ibadan := supplier(2, "Ibadan Depot", "Logistics")
	ibadan.Latitude, ibadan.Longitude = ptr(7.3775), ptr(3.9470)
	abuja := supplier(3, "Abuja Depot", "Logistics")
	abuja.Latitude, abuja.Longitude = ptr(9.0765), ptr(7.3986)
	svc, _ := newService(t, []suppliers.Supplier{abuja, ibadan, lagos})

	res, err := svc.Search(context.Background(), Params{
		Location: "Lagos", SortBy: SortDistance,
	})
	require.NoError(t, err)
	require.Equal(t, 3, res.Total)
	assert.Equal(t, int64(1), res.Suppliers[0].ID)
	assert.Equal(t, int64(2), res.Suppliers[1].ID)
	assert.Equal(t, int64(3), res.Suppliers[2].ID)
}

func TestSearchRelevanceKeepsCreationOrder(t *testing.T) {
	svc, _ := newService(t, []suppliers.Supplier{
		supplier(1, "First", "Logistics"),
		supplier(2, "Second", "Logistics"),
		supplier(3, "Third", "Logistics"),
	})

	res, err := svc.Search(context.Background(), Params{})
	require.NoError(t, err)
	ids := []int64{res.Suppliers[0].ID, res.Suppliers[1].ID, res.Suppliers[2].ID}
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestSearchPagination(t *testing.T) {
	var dataset []suppliers.Supplier
	for i := 1; i <= 45; i++ {
		dataset = append(dataset, supplier(int64(i), fmt.Sprintf("Vendor %d", i), "Electronics"))
	}
	svc, _ := newService(t, dataset)

	res, err := svc.Search(context.Background(), Params{Limit: 20, Offset: 20})
	require.NoError(t, err)
	assert.Equal(t, 45, res.Total)
	require.Len(t, res.Suppliers, 20)
	assert.Equal(t, int64(21), res.Suppliers[0].ID)
	assert.Equal(t, int64(40), res.Suppliers[19].ID)

	res, err = svc.Search(context.Background(), Params{Limit: 20, Offset: 40})
	require.NoError(t, err)
	assert.Len(t, res.Suppliers, 5)

	res, err = svc.Search(context.Background(), Params{Limit: 20, Offset: 100})
	require.NoError(t, err)
	assert.Empty(t, res.Suppliers)
	assert.Equal(t, 45, res.Total)
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	svc, _ := newService(t, nil)
	res, err := svc.Search(context.Background(), Params{Query: "anything"})
	require.NoError(t, err)
	assert.Zero(t, res.Total)
	assert.Empty(t, res.Suppliers)
}

func TestSearchResolvesCoordinatesForEveryHit(t *testing.T) {
	noCoords := supplier(1, "Surulere Prints", "Packaging & Printing")
	noCoords.City = "Surulere"
	svc, _ := newService(t, []suppliers.Supplier{noCoords})

	res, err := svc.Search(context.Background(), Params{})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.NotZero(t, res.Suppliers[0].ResolvedLat)
	assert.NotZero(t, res.Suppliers[0].ResolvedLng)
}
