package application

import (
	"context"
	"strings"

	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
	"github.com/atvirokodosprendimai/pantrypal/internal/inventory"
)

const restockNote = "restock"

func (s *PantryService) ListShopping(ctx context.Context) ([]domain.ShoppingListEntry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	out, err := s.store.ListShoppingEntries(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list shopping", err)
	}
	return out, nil
}

func (s *PantryService) AddShopping(ctx context.Context, entry domain.ShoppingListEntry) (domain.ShoppingListEntry, error) {
	if err := s.ready(); err != nil {
		return domain.ShoppingListEntry{}, err
	}
	entry.ID = 0
	entry, err := s.normalizeEntry(entry, true)
	if err != nil {
		return domain.ShoppingListEntry{}, err
	}
	out, err := s.store.AddShoppingEntry(ctx, entry)
	if err != nil {
		return domain.ShoppingListEntry{}, s.fail(ctx, "add shopping", err)
	}
	return out, nil
}

// UpdateShopping replaces the entry with the given ID and returns what was
// stored.
func (s *PantryService) UpdateShopping(ctx context.Context, entry domain.ShoppingListEntry) (domain.ShoppingListEntry, error) {
	if err := s.ready(); err != nil {
		return domain.ShoppingListEntry{}, err
	}
	if entry.ID == 0 {
		return domain.ShoppingListEntry{}, domain.Invalid("id", "is required")
	}
	entry, err := s.normalizeEntry(entry, false)
	if err != nil {
		return domain.ShoppingListEntry{}, err
	}
	if err := s.store.UpdateShoppingEntry(ctx, entry); err != nil {
		return domain.ShoppingListEntry{}, s.fail(ctx, "update shopping", err)
	}
	return entry, nil
}

func (s *PantryService) DeleteShopping(ctx context.Context, id uint) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.store.DeleteShoppingEntry(ctx, id); err != nil {
		return s.fail(ctx, "delete shopping", err)
	}
	return nil
}

// RestockRunningLow puts every running-low item on the shopping list unless
// an entry with the same name (ignoring case) is already there. It returns
// only the entries it added, so a second call adds nothing.
func (s *PantryService) RestockRunningLow(ctx context.Context, threshold int) ([]domain.ShoppingListEntry, error) {
	if threshold < 0 {
		threshold = s.lowThreshold
	}
	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := s.ListShopping(ctx)
	if err != nil {
		return nil, err
	}
	listed := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		listed[strings.ToLower(e.ItemName)] = struct{}{}
	}

	added := make([]domain.ShoppingListEntry, 0)
	for _, item := range inventory.ClassifyRunningLow(items, threshold) {
		key := strings.ToLower(item.Name)
		if _, ok := listed[key]; ok {
			continue
		}
		entry, err := s.store.AddShoppingEntry(ctx, domain.ShoppingListEntry{
			ItemName:  item.Name,
			Quantity:  1,
			AddedDate: s.today(),
			Notes:     restockNote,
		})
		if err != nil {
			return added, s.fail(ctx, "restock", err)
		}
		listed[key] = struct{}{}
		added = append(added, entry)
	}
	if len(added) > 0 {
		s.logger.InfoContext(ctx, "restocked running-low items", "added", len(added), "threshold", threshold)
	}
	return added, nil
}

func (s *PantryService) normalizeEntry(entry domain.ShoppingListEntry, creating bool) (domain.ShoppingListEntry, error) {
	if _, err := cleanName("item_name", entry.ItemName); err != nil {
		return entry, err
	}

	switch {
	case entry.Quantity < 0:
		return entry, domain.Invalid("quantity", "must not be negative")
	case creating && entry.Quantity == 0:
		return entry, domain.Invalid("quantity", "must be positive")
	case !inventory.ValidDate(entry.AddedDate):
		return entry, domain.Invalid("added_date", "must be YYYY-MM-DD")
	}
	if entry.AddedDate == "" {
		entry.AddedDate = s.today()
	}
	return entry, nil
}
