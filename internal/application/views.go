package application

import (
	"context"

	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
	"github.com/atvirokodosprendimai/pantrypal/internal/inventory"
)

// BrowseQuery narrows the pantry list. Search, CategoryID and LocationID
// are combined with AND; Selection is applied to what remains.
type BrowseQuery struct {
	Search     string
	CategoryID *uint
	LocationID *uint
	Selection  inventory.Selection
}

// Catalog loads the reference tables used to label items.
func (s *PantryService) Catalog(ctx context.Context) (inventory.Catalog, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return inventory.Catalog{}, err
	}
	locations, err := s.ListLocations(ctx)
	if err != nil {
		return inventory.Catalog{}, err
	}
	brands, err := s.ListBrands(ctx)
	if err != nil {
		return inventory.Catalog{}, err
	}
	return inventory.Catalog{Categories: categories, Locations: locations, Brands: brands}, nil
}

func (s *PantryService) Browse(ctx context.Context, q BrowseQuery) ([]inventory.ItemView, error) {
	if err := q.Selection.Validate(); err != nil {
		return nil, err
	}
	return s.view(ctx, func(items []domain.PantryItem) ([]domain.PantryItem, error) {
		narrowed := inventory.Filter(items, q.Search, q.CategoryID, q.LocationID)
		return inventory.Apply(narrowed, q.Selection, s.options())
	})
}

// ExpiringSoon lists items expiring within horizonDays of today. A negative
// horizon uses the configured default.
func (s *PantryService) ExpiringSoon(ctx context.Context, horizonDays int) ([]inventory.ItemView, error) {
	if horizonDays < 0 {
		horizonDays = s.horizonDays
	}
	return s.view(ctx, func(items []domain.PantryItem) ([]domain.PantryItem, error) {
		return inventory.ClassifyExpiringSoon(items, s.clock.Now(), horizonDays), nil
	})
}

func (s *PantryService) Expired(ctx context.Context) ([]inventory.ItemView, error) {
	return s.view(ctx, func(items []domain.PantryItem) ([]domain.PantryItem, error) {
		return inventory.ClassifyExpired(items, s.clock.Now()), nil
	})
}

// RunningLow lists items at or below threshold. A negative threshold uses
// the configured default.
func (s *PantryService) RunningLow(ctx context.Context, threshold int) ([]inventory.ItemView, error) {
	if threshold < 0 {
		threshold = s.lowThreshold
	}
	return s.view(ctx, func(items []domain.PantryItem) ([]domain.PantryItem, error) {
		return inventory.ClassifyRunningLow(items, threshold), nil
	})
}

func (s *PantryService) Stats(ctx context.Context) (inventory.Tally, error) {
	items, err := s.ListItems(ctx)
	if err != nil {
		return inventory.Tally{}, err
	}
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return inventory.Tally{}, err
	}
	return inventory.TallyItems(items, catalog), nil
}

func (s *PantryService) options() inventory.Options {
	return inventory.Options{
		Reference:    s.clock.Now(),
		HorizonDays:  s.horizonDays,
		LowThreshold: s.lowThreshold,
	}
}

func (s *PantryService) view(ctx context.Context, pick func([]domain.PantryItem) ([]domain.PantryItem, error)) ([]inventory.ItemView, error) {
	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	picked, err := pick(items)
	if err != nil {
		return nil, err
	}
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return inventory.Annotate(picked, catalog, s.clock.Now(), s.horizonDays), nil
}
