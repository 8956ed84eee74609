package inventory

import (
	"time"

	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
)

type ExpiryStatus string

const (
	StatusNone     ExpiryStatus = "none"
	StatusFresh    ExpiryStatus = "fresh"
	StatusExpiring ExpiryStatus = "expiring"
	StatusExpired  ExpiryStatus = "expired"
)

// Catalog is an in-memory snapshot of the reference tables.
type Catalog struct {
	Categories []domain.Category `json:"categories"`
	Locations  []domain.Location `json:"locations"`
	Brands     []domain.Brand    `json:"brands"`
}

// ItemView is a pantry item ready for display.
type ItemView struct {
	domain.PantryItem
	LocationName string       `json:"location_name"`
	BrandName    string       `json:"brand_name"`
	Status       ExpiryStatus `json:"status"`
	DaysLeft     *int         `json:"days_left,omitempty"`
}

func Annotate(items []domain.PantryItem, catalog Catalog, reference time.Time, horizonDays int) []ItemView {
	if horizonDays < 0 {
		horizonDays = DefaultHorizonDays
	}
	today := startOfDay(reference)
	result := make([]ItemView, 0, len(items))
	for _, item := range items {
		view := ItemView{PantryItem: item, Status: StatusNone}
		view.CategoryName = ResolveCategoryName(item.CategoryID, catalog.Categories)
		view.LocationName = ResolveLocationName(item.LocationID, catalog.Locations)
		view.BrandName = ResolveBrandName(item.BrandID, catalog.Brands)

		if exp, ok := ParseDate(item.ExpirationDate, reference.Location()); ok {
			days := daysBetween(today, exp)
			view.DaysLeft = &days
			switch {
			case days < 0:
				view.Status = StatusExpired
			case days <= horizonDays:
				view.Status = StatusExpiring
			default:
				view.Status = StatusFresh
			}
		}
		result = append(result, view)
	}
	return result
}

// daysBetween counts calendar days, ignoring DST shifts.
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

type Count struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Items int    `json:"items"`
}

type Tally struct {
	Total      int     `json:"total"`
	Categories []Count `json:"categories"`
	Locations  []Count `json:"locations"`
}

// TallyItems counts items per category and per location. Items pointing at
// missing rows are grouped under an Unknown entry with ID 0.
func TallyItems(items []domain.PantryItem, catalog Catalog) Tally {
	t := Tally{
		Total:      len(items),
		Categories: make([]Count, 0, len(catalog.Categories)+1),
		Locations:  make([]Count, 0, len(catalog.Locations)+1),
	}
	known := 0
	for _, c := range catalog.Categories {
		n := CountBy(items, ByCategory, c.ID)
		known += n
		t.Categories = append(t.Categories, Count{ID: c.ID, Name: c.Name, Items: n})
	}
	if rest := len(items) - known; rest > 0 {
		t.Categories = append(t.Categories, Count{Name: UnknownCategory, Items: rest})
	}

	known = 0
	for _, l := range catalog.Locations {
		n := CountBy(items, ByLocation, l.ID)
		known += n
		t.Locations = append(t.Locations, Count{ID: l.ID, Name: l.Name, Items: n})
	}
	if rest := len(items) - known; rest > 0 {
		t.Locations = append(t.Locations, Count{Name: UnknownLocation, Items: rest})
	}
	return t
}
