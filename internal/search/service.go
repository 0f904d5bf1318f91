// Package search implements the public directory search: filtering, ranking
// and pagination over the approved supplier set, with geocode approximation
// for suppliers that never entered exact coordinates.
package search

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/olufinja/naijafind/internal/geo"
	"github.com/olufinja/naijafind/internal/observability"
	"github.com/olufinja/naijafind/internal/shared"
	"github.com/olufinja/naijafind/internal/suppliers"
)

const datasetKey = "search:suppliers"

// Service answers directory searches. The approved-supplier dataset is
// loaded through the repository, deduplicated under concurrent load with
// singleflight and cached briefly in redis.
type Service struct {
	repo     suppliers.Repository
	cache    *redis.Client
	cacheTTL time.Duration
	resolver *geo.Resolver
	metrics  *observability.Metrics
	logger   *slog.Logger
	group    singleflight.Group
}

// NewService constructs a Service. cache may be nil, in which case every
// search hits the repository.
func NewService(repo suppliers.Repository, cache *redis.Client, cacheTTL time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		resolver: geo.NewResolver(),
		metrics:  metrics,
		logger:   logger,
	}
}

// Search filters, ranks and paginates the approved suppliers.
func (s *Service) Search(ctx context.Context, p Params) (Result, error) {
	dataset, err := s.dataset(ctx)
	if err != nil {
		return Result{}, err
	}

	origin, hasOrigin := s.origin(p)
	items := s.filter(dataset, p, origin, hasOrigin)
	sortItems(items, p.SortBy)

	total := len(items)
	if s.metrics != nil {
		s.metrics.ObserveSearchResults(total)
	}
	start, end := shared.Window(p.Limit, p.Offset, total)
	return Result{Suppliers: items[start:end], Total: total}, nil
}

// InvalidateDataset drops the cached supplier set, forcing the next search
// to reload from the repository.
func (s *Service) InvalidateDataset(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, datasetKey).Err(); err != nil {
		s.logger.Warn("invalidate search dataset", slog.Any("error", err))
	}
}

// dataset returns the approved suppliers in creation order. Concurrent
// cache misses collapse into a single repository query.
func (s *Service) dataset(ctx context.Context) ([]suppliers.Supplier, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, datasetKey).Bytes()
		if err == nil {
			var out []suppliers.Supplier
			if err := json.Unmarshal(raw, &out); err == nil {
				return out, nil
			}
			s.logger.Warn("corrupt search dataset cache, reloading")
		} else if err != redis.Nil {
			s.logger.Warn("search dataset cache read", slog.Any("error", err))
		}
	}

	v, err, _ := s.group.Do(datasetKey, func() (any, error) {
		list, err := s.repo.ListApproved(ctx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if raw, err := json.Marshal(list); err == nil {
				if err := s.cache.Set(ctx, datasetKey, raw, s.cacheTTL).Err(); err != nil {
					s.logger.Warn("search dataset cache write", slog.Any("error", err))
				}
			}
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]suppliers.Supplier), nil
}

// origin determines the coordinate distances are measured from. Explicit
// lat/lng wins; otherwise free-text location is matched against the known
// places table.
func (s *Service) origin(p Params) (geo.Point, bool) {
	if p.Lat != nil && p.Lng != nil {
		return geo.Point{Lat: *p.Lat, Lng: *p.Lng}, true
	}
	if p.Location != "" {
		if pt, ok := geo.Locate(p.Location); ok {
			return pt, true
		}
	}
	return geo.Point{}, false
}

// filter applies the search predicates in a fixed order: category, free
// text, verified badge, minimum rating, then radius.
func (s *Service) filter(dataset []suppliers.Supplier, p Params, origin geo.Point, hasOrigin bool) []Item {
	query := strings.ToLower(strings.TrimSpace(p.Query))
	items := make([]Item, 0, len(dataset))

	for i := range dataset {
		sup := dataset[i]
		if p.Category != "" && sup.Category != p.Category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(sup.BusinessName), query) &&
			!strings.Contains(strings.ToLower(sup.Description), query) {
			continue
		}
		if p.VerifiedOnly && !sup.Verified {
			continue
		}
		if p.MinRating > 0 && sup.Rating < p.MinRating {
			continue
		}

		pt := s.resolver.Resolve(geo.Location{
			SupplierID: strconv.FormatInt(sup.ID, 10),
			Lat:        sup.Latitude,
			Lng:        sup.Longitude,
			Address:    sup.Address,
			City:       sup.City,
			State:      sup.State,
			Country:    sup.Country,
		})
		item := Item{Supplier: sup, ResolvedLat: pt.Lat, ResolvedLng: pt.Lng}
		if hasOrigin {
			d := geo.DistanceKm(origin, pt)
			item.DistanceKm = &d
			if p.RadiusKm > 0 && d > p.RadiusKm {
				continue
			}
		}
		items = append(items, item)
	}
	return items
}

// sortItems ranks the filtered set. Relevance keeps creation order, which
// the dataset already carries. All sorts are stable so equal keys keep
// that order too.
func sortItems(items []Item, sortBy string) {
	switch sortBy {
	case SortDistance:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i].DistanceKm, items[j].DistanceKm
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return *a < *b
		})
	case SortRating:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Rating != items[j].Rating {
				return items[i].Rating > items[j].Rating
			}
			return items[i].ReviewsCount > items[j].ReviewsCount
		})
	case SortReviews:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].ReviewsCount > items[j].ReviewsCount
		})
	default:
		// relevance: creation order, already sorted.
	}
}
