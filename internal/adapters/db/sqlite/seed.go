package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// SeedCategories is inserted, in order, by Seed while categories is empty.
var SeedCategories = []string{
	"Dairy",
	"Meat & Poultry",
	"Seafood",
	"Produce",
	"Bakery",
	"Canned Goods",
	"Grains & Pasta",
	"Snacks",
	"Frozen Foods",
	"Beverages",
	"Condiments & Sauces",
	"Spices & Herbs",
	"Baking Supplies",
	"Breakfast Items",
	"Health & Supplements",
	"Miscellaneous",
}

// SeedAllergens is the fixed allergen list.
var SeedAllergens = []string{
	"Gluten",
	"Peanuts",
	"Tree Nuts",
	"Dairy",
	"Eggs",
	"Soy",
	"Shellfish",
	"Fish",
	"Wheat",
	"Sesame",
	"Mustard",
	"Sulphites",
	"Celery",
	"Lupin",
	"Corn",
	"Artificial Preservatives",
	"Coconut",
}

// SeedLocations lists the default storage places.
var SeedLocations = []string{"Fridge", "Freezer", "Pantry"}

// Seed fills categories, allergens and locations with their fixed lists.
// Each table is checked on its own and only seeded while empty.
func Seed(ctx context.Context, db *gorm.DB) error {
	if err := seedTable(ctx, db, SeedCategories, func(name string) CategoryModel { return CategoryModel{Name: name} }); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	if err := seedTable(ctx, db, SeedAllergens, func(name string) AllergenModel { return AllergenModel{Name: name} }); err != nil {
		return fmt.Errorf("seed allergens: %w", err)
	}
	if err := seedTable(ctx, db, SeedLocations, func(name string) LocationModel { return LocationModel{Name: name} }); err != nil {
		return fmt.Errorf("seed locations: %w", err)
	}
	return nil
}

func seedTable[M any](ctx context.Context, db *gorm.DB, names []string, build func(string) M) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(new(M)).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		rows := make([]M, 0, len(names))
		for _, name := range names {
			rows = append(rows, build(name))
		}
		return tx.Create(&rows).Error
	})
}
