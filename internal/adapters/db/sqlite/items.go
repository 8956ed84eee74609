package sqlite

import (
	"context"

	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
	"gorm.io/gorm"
)

type itemRow struct {
	ID             uint
	Name           string
	CategoryID     uint
	BrandID        uint
	LocationID     uint
	ExpirationDate string
	Quantity       int
	AddedDate      string
	Notes          string
	CategoryName   string
}

const selectItems = `
SELECT p.id,
       p.name,
       p.category_id,
       p.brand_id,
       p.location_id,
       p.expiration_date,
       p.quantity,
       p.added_date,
       p.notes,
       COALESCE(c.name, '') AS category_name
FROM pantry_items p
LEFT JOIN categories c ON c.id = p.category_id
`

func (row itemRow) toDomain() domain.PantryItem {
	return domain.PantryItem{
		ID:             row.ID,
		Name:           row.Name,
		CategoryID:     row.CategoryID,
		BrandID:        row.BrandID,
		LocationID:     row.LocationID,
		ExpirationDate: row.ExpirationDate,
		Quantity:       row.Quantity,
		AddedDate:      row.AddedDate,
		Notes:          row.Notes,
		CategoryName:   row.CategoryName,
	}
}

func (r *Repository) AddItem(ctx context.Context, value domain.PantryItem) (domain.PantryItem, error) {
	m := PantryItemModel{
		Name:           value.Name,
		CategoryID:     value.CategoryID,
		BrandID:        value.BrandID,
		LocationID:     value.LocationID,
		ExpirationDate: value.ExpirationDate,
		Quantity:       value.Quantity,
		AddedDate:      value.AddedDate,
		Notes:          value.Notes,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.PantryItem{}, err
	}

	value.ID = m.ID
	value.CategoryName = ""
	return value, nil
}

// ListItems returns every item in insertion order, annotated with its
// category name when the category still exists.
func (r *Repository) ListItems(ctx context.Context) ([]domain.PantryItem, error) {
	rows := make([]itemRow, 0)
	if err := r.db.WithContext(ctx).Raw(selectItems + "ORDER BY p.id ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.PantryItem, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}
	return result, nil
}

func (r *Repository) GetItem(ctx context.Context, id uint) (domain.PantryItem, error) {
	var row itemRow
	if err := r.db.WithContext(ctx).Raw(selectItems+"WHERE p.id = ?", id).Scan(&row).Error; err != nil {
		return domain.PantryItem{}, err
	}
	if row.ID == 0 {
		return domain.PantryItem{}, domain.ErrNotFound
	}
	return row.toDomain(), nil
}

// UpdateItem replaces every column of the row with value.ID.
func (r *Repository) UpdateItem(ctx context.Context, value domain.PantryItem) error {
	res := r.db.WithContext(ctx).Model(&PantryItemModel{}).Where("id = ?", value.ID).Updates(map[string]any{
		"name":            value.Name,
		"category_id":     value.CategoryID,
		"brand_id":        value.BrandID,
		"location_id":     value.LocationID,
		"expiration_date": value.ExpirationDate,
		"quantity":        value.Quantity,
		"added_date":      value.AddedDate,
		"notes":           value.Notes,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItem removes the item and its allergen links. Missing ids are not an error.
func (r *Repository) DeleteItem(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&PantryItemAllergenModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&PantryItemModel{}).Error
	})
}

// SetItemAllergens replaces the allergen set of an item.
func (r *Repository) SetItemAllergens(ctx context.Context, itemID uint, allergenIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&PantryItemModel{}).Where("id = ?", itemID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrNotFound
		}
		if err := tx.Where("item_id = ?", itemID).Delete(&PantryItemAllergenModel{}).Error; err != nil {
			return err
		}

		seen := make(map[uint]struct{}, len(allergenIDs))
		links := make([]PantryItemAllergenModel, 0, len(allergenIDs))
		for _, id := range allergenIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			links = append(links, PantryItemAllergenModel{ItemID: itemID, AllergenID: id})
		}
		if len(links) == 0 {
			return nil
		}
		return tx.Create(&links).Error
	})
}

func (r *Repository) ListItemAllergens(ctx context.Context, itemID uint) ([]domain.Allergen, error) {
	rows := make([]AllergenModel, 0)
	err := r.db.WithContext(ctx).Raw(`
SELECT a.id, a.name
FROM allergens a
JOIN pantry_item_allergens pia ON pia.allergen_id = a.id
WHERE pia.item_id = ?
ORDER BY a.id ASC
`, itemID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]domain.Allergen, 0, len(rows))
	for _, m := range rows {
		result = append(result, domain.Allergen{ID: m.ID, Name: m.Name})
	}
	return result, nil
}

func (r *Repository) AddShoppingEntry(ctx context.Context, value domain.ShoppingListEntry) (domain.ShoppingListEntry, error) {
	m := ShoppingListModel{ItemName: value.ItemName, Quantity: value.Quantity, AddedDate: value.AddedDate, Notes: value.Notes}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.ShoppingListEntry{}, err
	}
	return domain.ShoppingListEntry{ID: m.ID, ItemName: m.ItemName, Quantity: m.Quantity, AddedDate: m.AddedDate, Notes: m.Notes}, nil
}

func (r *Repository) ListShoppingEntries(ctx context.Context) ([]domain.ShoppingListEntry, error) {
	rows := make([]ShoppingListModel, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.ShoppingListEntry, 0, len(rows))
	for _, m := range rows {
		result = append(result, domain.ShoppingListEntry{ID: m.ID, ItemName: m.ItemName, Quantity: m.Quantity, AddedDate: m.AddedDate, Notes: m.Notes})
	}
	return result, nil
}

func (r *Repository) UpdateShoppingEntry(ctx context.Context, value domain.ShoppingListEntry) error {
	res := r.db.WithContext(ctx).Model(&ShoppingListModel{}).Where("id = ?", value.ID).Updates(map[string]any{
		"item_name":  value.ItemName,
		"quantity":   value.Quantity,
		"added_date": value.AddedDate,
		"notes":      value.Notes,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteShoppingEntry(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&ShoppingListModel{}).Error
}
