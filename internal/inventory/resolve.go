package inventory

import "github.com/atvirokodosprendimai/pantrypal/internal/domain"

const (
	UnknownCategory = "Unknown Category"
	UnknownLocation = "Unknown Location"
	UnknownBrand    = "Unknown Brand"
)

func ResolveCategoryName(categoryID uint, categories []domain.Category) string {
	for _, c := range categories {
		if c.ID == categoryID {
			return c.Name
		}
	}
	return UnknownCategory
}

func ResolveLocationName(locationID uint, locations []domain.Location) string {
	for _, l := range locations {
		if l.ID == locationID {
			return l.Name
		}
	}
	return UnknownLocation
}

// ResolveBrandName returns "" for items without a brand.
func ResolveBrandName(brandID uint, brands []domain.Brand) string {
	if brandID == domain.NoBrand {
		return ""
	}
	for _, b := range brands {
		if b.ID == brandID {
			return b.Name
		}
	}
	return UnknownBrand
}
