package inventory

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
)

const (
	DefaultHorizonDays  = 7
	DefaultLowThreshold = 2
)

// Filter keeps items whose name contains query (case-insensitive) and that
// match categoryID and locationID when those are set.
func Filter(items []domain.PantryItem, query string, categoryID, locationID *uint) []domain.PantryItem {
	needle := strings.ToLower(query)
	result := make([]domain.PantryItem, 0, len(items))
	for _, item := range items {
		if categoryID != nil && item.CategoryID != *categoryID {
			continue
		}
		if locationID != nil && item.LocationID != *locationID {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(item.Name), needle) {
			continue
		}
		result = append(result, item)
	}
	return result
}

// ClassifyExpiringSoon returns items expiring between reference and
// reference+horizonDays, both days inclusive. A negative horizon uses
// DefaultHorizonDays.
func ClassifyExpiringSoon(items []domain.PantryItem, reference time.Time, horizonDays int) []domain.PantryItem {
	if horizonDays < 0 {
		horizonDays = DefaultHorizonDays
	}
	start := startOfDay(reference)
	end := start.AddDate(0, 0, horizonDays)
	result := make([]domain.PantryItem, 0)
	for _, item := range items {
		exp, ok := ParseDate(item.ExpirationDate, reference.Location())
		if !ok {
			continue
		}
		if exp.Before(start) || exp.After(end) {
			continue
		}
		result = append(result, item)
	}
	return result
}

func ClassifyExpired(items []domain.PantryItem, reference time.Time) []domain.PantryItem {
	start := startOfDay(reference)
	result := make([]domain.PantryItem, 0)
	for _, item := range items {
		exp, ok := ParseDate(item.ExpirationDate, reference.Location())
		if ok && exp.Before(start) {
			result = append(result, item)
		}
	}
	return result
}

// ClassifyRunningLow returns items with quantity <= threshold, ordered by
// quantity ascending; equal quantities keep their input order.
func ClassifyRunningLow(items []domain.PantryItem, threshold int) []domain.PantryItem {
	result := make([]domain.PantryItem, 0)
	for _, item := range items {
		if item.Quantity <= threshold {
			result = append(result, item)
		}
	}
	slices.SortStableFunc(result, func(a, b domain.PantryItem) int {
		return cmp.Compare(a.Quantity, b.Quantity)
	})
	return result
}

type Dimension string

const (
	ByCategory Dimension = "category"
	ByLocation Dimension = "location"
)

func CountBy(items []domain.PantryItem, dimension Dimension, value uint) int {
	n := 0
	for _, item := range items {
		switch dimension {
		case ByCategory:
			if item.CategoryID == value {
				n++
			}
		case ByLocation:
			if item.LocationID == value {
				n++
			}
		}
	}
	return n
}
