package domain

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Brand struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Location struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Allergen struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type PantryItemAllergen struct {
	ID         uint `json:"id"`
	ItemID     uint `json:"item_id"`
	AllergenID uint `json:"allergen_id"`
}

// NoBrand is the BrandID of an item without a brand.
const NoBrand uint = 0

// PantryItem is a stocked grocery item. ExpirationDate is a YYYY-MM-DD
// calendar date, or empty when the item does not expire.
type PantryItem struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	CategoryID     uint   `json:"category_id"`
	BrandID        uint   `json:"brand_id"`
	LocationID     uint   `json:"location_id"`
	ExpirationDate string `json:"expiration_date"`
	Quantity       int    `json:"quantity"`
	AddedDate      string `json:"added_date"`
	Notes          string `json:"notes"`

	// CategoryName is filled by reads only; empty when the category is gone.
	CategoryName string `json:"category_name,omitempty"`
}

type ShoppingListEntry struct {
	ID        uint   `json:"id"`
	ItemName  string `json:"item_name"`
	Quantity  int    `json:"quantity"`
	AddedDate string `json:"added_date"`
	Notes     string `json:"notes"`
}

// SeedCounts reports how many rows each seeded table holds.
type SeedCounts struct {
	Categories int64 `json:"categories"`
	Allergens  int64 `json:"allergens"`
	Locations  int64 `json:"locations"`
}
