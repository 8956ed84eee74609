package application

import (
	"context"
	"slices"

	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
	"github.com/atvirokodosprendimai/pantrypal/internal/inventory"
)

func (s *PantryService) ListItems(ctx context.Context) ([]domain.PantryItem, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	out, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list items", err)
	}
	return out, nil
}

func (s *PantryService) GetItem(ctx context.Context, id uint) (domain.PantryItem, error) {
	if err := s.ready(); err != nil {
		return domain.PantryItem{}, err
	}
	out, err := s.store.GetItem(ctx, id)
	if err != nil {
		return domain.PantryItem{}, s.fail(ctx, "get item", err)
	}
	return out, nil
}

// AddItem validates and stores a new item. The category and location (and
// brand, when set) must exist. The ID of the argument is ignored; an empty
// AddedDate becomes today's date.
func (s *PantryService) AddItem(ctx context.Context, item domain.PantryItem) (domain.PantryItem, error) {
	if err := s.ready(); err != nil {
		return domain.PantryItem{}, err
	}
	item.ID = 0
	item, err := s.normalizeItem(item, true)
	if err != nil {
		return domain.PantryItem{}, err
	}
	if err := s.checkReferences(ctx, item); err != nil {
		return domain.PantryItem{}, err
	}
	out, err := s.store.AddItem(ctx, item)
	if err != nil {
		return domain.PantryItem{}, s.fail(ctx, "add item", err)
	}
	s.logger.InfoContext(ctx, "item added", "id", out.ID, "name", out.Name)
	return out, nil
}

// UpdateItem replaces every stored field of the item with the given ID.
// References are not checked so an item whose category was deleted can
// still be edited.
func (s *PantryService) UpdateItem(ctx context.Context, item domain.PantryItem) (domain.PantryItem, error) {
	if err := s.ready(); err != nil {
		return domain.PantryItem{}, err
	}
	if item.ID == 0 {
		return domain.PantryItem{}, domain.Invalid("id", "is required")
	}
	item, err := s.normalizeItem(item, false)
	if err != nil {
		return domain.PantryItem{}, err
	}
	if err := s.store.UpdateItem(ctx, item); err != nil {
		return domain.PantryItem{}, s.fail(ctx, "update item", err)
	}
	return s.GetItem(ctx, item.ID)
}

func (s *PantryService) DeleteItem(ctx context.Context, id uint) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.store.DeleteItem(ctx, id); err != nil {
		return s.fail(ctx, "delete item", err)
	}
	return nil
}

func (s *PantryService) SetItemAllergens(ctx context.Context, itemID uint, allergenIDs []uint) error {
	if err := s.ready(); err != nil {
		return err
	}
	if itemID == 0 {
		return domain.Invalid("item_id", "is required")
	}
	for _, id := range allergenIDs {
		if id == 0 {
			return domain.Invalid("allergen_ids", "must not contain 0")
		}
	}
	if err := s.store.SetItemAllergens(ctx, itemID, allergenIDs); err != nil {
		return s.fail(ctx, "set item allergens", err)
	}
	return nil
}

func (s *PantryService) ListItemAllergens(ctx context.Context, itemID uint) ([]domain.Allergen, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	out, err := s.store.ListItemAllergens(ctx, itemID)
	if err != nil {
		return nil, s.fail(ctx, "list item allergens", err)
	}
	return out, nil
}

func (s *PantryService) normalizeItem(item domain.PantryItem, creating bool) (domain.PantryItem, error) {
	if _, err := cleanName("name", item.Name); err != nil {
		return item, err
	}
	item.CategoryName = ""

	switch {
	case item.CategoryID == 0:
		return item, domain.Invalid("category_id", "is required")
	case item.LocationID == 0:
		return item, domain.Invalid("location_id", "is required")
	case item.Quantity < 0:
		return item, domain.Invalid("quantity", "must not be negative")
	case creating && item.Quantity == 0:
		return item, domain.Invalid("quantity", "must be positive")
	case !inventory.ValidDate(item.ExpirationDate):
		return item, domain.Invalid("expiration_date", "must be YYYY-MM-DD")
	case !inventory.ValidDate(item.AddedDate):
		return item, domain.Invalid("added_date", "must be YYYY-MM-DD")
	}
	if item.AddedDate == "" {
		item.AddedDate = s.today()
	}
	return item, nil
}

func (s *PantryService) checkReferences(ctx context.Context, item domain.PantryItem) error {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(categories, func(c domain.Category) bool { return c.ID == item.CategoryID }) {
		return domain.Invalid("category_id", "does not exist")
	}
	locations, err := s.ListLocations(ctx)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(locations, func(l domain.Location) bool { return l.ID == item.LocationID }) {
		return domain.Invalid("location_id", "does not exist")
	}
	if item.BrandID == domain.NoBrand {
		return nil
	}
	brands, err := s.ListBrands(ctx)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(brands, func(b domain.Brand) bool { return b.ID == item.BrandID }) {
		return domain.Invalid("brand_id", "does not exist")
	}
	return nil
}
