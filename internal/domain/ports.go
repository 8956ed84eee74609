package domain

import "context"

type ReferenceRepository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	AddCategory(ctx context.Context, name string) (Category, error)
	UpdateCategory(ctx context.Context, id uint, name string) error
	DeleteCategory(ctx context.Context, id uint) error

	ListBrands(ctx context.Context) ([]Brand, error)
	AddBrand(ctx context.Context, name string) (Brand, error)
	UpdateBrand(ctx context.Context, id uint, name string) error
	DeleteBrand(ctx context.Context, id uint) error

	ListLocations(ctx context.Context) ([]Location, error)
	AddLocation(ctx context.Context, name string) (Location, error)
	UpdateLocation(ctx context.Context, id uint, name string) error
	DeleteLocation(ctx context.Context, id uint) error

	ListAllergens(ctx context.Context) ([]Allergen, error)
}

type PantryRepository interface {
	AddItem(ctx context.Context, value PantryItem) (PantryItem, error)
	ListItems(ctx context.Context) ([]PantryItem, error)
	GetItem(ctx context.Context, id uint) (PantryItem, error)
	UpdateItem(ctx context.Context, value PantryItem) error
	DeleteItem(ctx context.Context, id uint) error

	SetItemAllergens(ctx context.Context, itemID uint, allergenIDs []uint) error
	ListItemAllergens(ctx context.Context, itemID uint) ([]Allergen, error)

	AddShoppingEntry(ctx context.Context, value ShoppingListEntry) (ShoppingListEntry, error)
	ListShoppingEntries(ctx context.Context) ([]ShoppingListEntry, error)
	UpdateShoppingEntry(ctx context.Context, value ShoppingListEntry) error
	DeleteShoppingEntry(ctx context.Context, id uint) error
}

// Store is the full persistence port: schema ownership plus both repositories.
type Store interface {
	ReferenceRepository
	PantryRepository

	Initialize(ctx context.Context) error
	SeedCounts(ctx context.Context) (SeedCounts, error)
}
