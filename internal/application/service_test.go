package application

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/atvirokodosprendimai/pantrypal/internal/adapters/db/sqlite"
	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
	"github.com/atvirokodosprendimai/pantrypal/internal/inventory"
	"github.com/atvirokodosprendimai/pantrypal/internal/logging"
)

var testNow = time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) *PantryService {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "pantry_service.db")

	db, err := sqlite.Open(dbPath, nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close(db) })

	svc := NewPantryService(sqlite.NewStore(db),
		WithClock(inventory.FixedClock(testNow)),
		WithLogger(logging.Discard()),
	)
	if err := svc.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return svc
}

func milk() domain.PantryItem {
	return domain.PantryItem{
		Name:           "Milk",
		CategoryID:     1,
		BrandID:        domain.NoBrand,
		LocationID:     1,
		ExpirationDate: "2024-01-03",
		Quantity:       1,
		AddedDate:      "2024-01-01",
	}
}

func TestMilkLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	item, err := svc.AddItem(ctx, milk())
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	expiring, err := svc.ExpiringSoon(ctx, 7)
	if err != nil {
		t.Fatalf("expiring soon: %v", err)
	}
	if len(expiring) != 1 || expiring[0].Name != "Milk" {
		t.Fatalf("expected Milk to be expiring soon, got %+v", expiring)
	}
	if expiring[0].CategoryName != "Dairy" || expiring[0].LocationName != "Fridge" {
		t.Fatalf("unexpected labels: %+v", expiring[0])
	}
	if expiring[0].DaysLeft == nil || *expiring[0].DaysLeft != 2 {
		t.Fatalf("expected 2 days left, got %v", expiring[0].DaysLeft)
	}

	if err := svc.DeleteItem(ctx, item.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	items, err := svc.ListItems(ctx)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty pantry, got %+v", items)
	}
}

func TestAddItemValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	cases := []struct {
		name  string
		edit  func(*domain.PantryItem)
		field string
	}{
		{"blank name", func(i *domain.PantryItem) { i.Name = "   " }, "name"},
		{"no category", func(i *domain.PantryItem) { i.CategoryID = 0 }, "category_id"},
		{"no location", func(i *domain.PantryItem) { i.LocationID = 0 }, "location_id"},
		{"zero quantity", func(i *domain.PantryItem) { i.Quantity = 0 }, "quantity"},
		{"negative quantity", func(i *domain.PantryItem) { i.Quantity = -1 }, "quantity"},
		{"bad expiration", func(i *domain.PantryItem) { i.ExpirationDate = "03/01/2024" }, "expiration_date"},
		{"unknown category", func(i *domain.PantryItem) { i.CategoryID = 99 }, "category_id"},
		{"unknown location", func(i *domain.PantryItem) { i.LocationID = 9 }, "location_id"},
		{"unknown brand", func(i *domain.PantryItem) { i.BrandID = 5 }, "brand_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := milk()
			tc.edit(&item)
			_, err := svc.AddItem(ctx, item)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
			var verr *domain.ValidationError
			if !errors.As(err, &verr) || verr.Field != tc.field {
				t.Fatalf("expected field %q, got %v", tc.field, err)
			}
		})
	}

	items, err := svc.ListItems(ctx)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("rejected items reached the store: %+v", items)
	}
}

func TestAddItemDefaultsAddedDate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	item := milk()
	item.AddedDate = ""
	got, err := svc.AddItem(ctx, item)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if got.AddedDate != "2024-01-01" {
		t.Fatalf("unexpected item: %+v", got)
	}
}

func TestAddItemKeepsSuppliedText(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	item := milk()
	item.Name = "  Milk  "
	item.Notes = "line one\nline two\n"
	if _, err := svc.AddItem(ctx, item); err != nil {
		t.Fatalf("add item: %v", err)
	}

	items, err := svc.ListItems(ctx)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	got := items[0]
	if got.Name != item.Name || got.Notes != item.Notes || got.ExpirationDate != item.ExpirationDate || got.AddedDate != item.AddedDate {
		t.Fatalf("stored item differs from input: got %+v want %+v", got, item)
	}

	item.ExpirationDate = " 2024-01-03 "
	if _, err := svc.AddItem(ctx, item); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected padded date to be rejected, got %v", err)
	}
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	item, err := svc.AddItem(ctx, milk())
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	item.Quantity = 0
	item.LocationID = 2
	updated, err := svc.UpdateItem(ctx, item)
	if err != nil {
		t.Fatalf("update to zero quantity: %v", err)
	}
	if updated.Quantity != 0 || updated.LocationID != 2 || updated.CategoryName != "Dairy" {
		t.Fatalf("unexpected updated item: %+v", updated)
	}

	item.ID = 999
	if _, err := svc.UpdateItem(ctx, item); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	item.ID = 0
	if _, err := svc.UpdateItem(ctx, item); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for id 0, got %v", err)
	}
}

func TestCategoryNamesAreUnique(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.AddCategory(ctx, "dairy"); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected duplicate, got %v", err)
	}
	if _, err := svc.AddCategory(ctx, ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	added, err := svc.AddCategory(ctx, "  Baby Food ")
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	if added.Name != "Baby Food" {
		t.Fatalf("expected trimmed name, got %q", added.Name)
	}
	if err := svc.RenameCategory(ctx, added.ID, "Snacks"); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected duplicate on rename, got %v", err)
	}
	if err := svc.RenameCategory(ctx, added.ID, "baby food"); err != nil {
		t.Fatalf("rename to own name in other case: %v", err)
	}
	if err := svc.RenameCategory(ctx, 999, "Nowhere"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBrowseCombinesSearchAndSelection(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	seed := []domain.PantryItem{
		{Name: "Whole Milk", CategoryID: 1, LocationID: 1, ExpirationDate: "2023-12-30", Quantity: 1},
		{Name: "Oat Milk", CategoryID: 10, LocationID: 3, ExpirationDate: "2024-02-01", Quantity: 4},
		{Name: "Cheddar", CategoryID: 1, LocationID: 1, Quantity: 2},
	}
	for _, item := range seed {
		if _, err := svc.AddItem(ctx, item); err != nil {
			t.Fatalf("add %s: %v", item.Name, err)
		}
	}

	views, err := svc.Browse(ctx, BrowseQuery{Search: "milk"})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected two milks, got %+v", views)
	}

	views, err = svc.Browse(ctx, BrowseQuery{Search: "milk", Selection: inventory.SelectExpired()})
	if err != nil {
		t.Fatalf("browse expired: %v", err)
	}
	if len(views) != 1 || views[0].Name != "Whole Milk" || views[0].Status != inventory.StatusExpired {
		t.Fatalf("unexpected expired view: %+v", views)
	}

	loc := uint(1)
	views, err = svc.Browse(ctx, BrowseQuery{LocationID: &loc, Selection: inventory.SelectRunningLow()})
	if err != nil {
		t.Fatalf("browse low: %v", err)
	}
	if len(views) != 2 || views[0].Name != "Whole Milk" || views[1].Name != "Cheddar" {
		t.Fatalf("unexpected running low view: %+v", views)
	}

	if _, err := svc.Browse(ctx, BrowseQuery{Selection: inventory.Selection{Kind: inventory.KindCategory}}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid selection, got %v", err)
	}
}

func TestRestockRunningLowIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, item := range []domain.PantryItem{
		{Name: "Eggs", CategoryID: 1, LocationID: 1, Quantity: 1},
		{Name: "Rice", CategoryID: 7, LocationID: 3, Quantity: 2},
		{Name: "Flour", CategoryID: 13, LocationID: 3, Quantity: 5},
	} {
		if _, err := svc.AddItem(ctx, item); err != nil {
			t.Fatalf("add %s: %v", item.Name, err)
		}
	}
	if _, err := svc.AddShopping(ctx, domain.ShoppingListEntry{ItemName: "rice", Quantity: 1}); err != nil {
		t.Fatalf("add shopping: %v", err)
	}

	added, err := svc.RestockRunningLow(ctx, -1)
	if err != nil {
		t.Fatalf("restock: %v", err)
	}
	if len(added) != 1 || added[0].ItemName != "Eggs" || added[0].AddedDate != "2024-01-01" {
		t.Fatalf("unexpected restock result: %+v", added)
	}

	added, err = svc.RestockRunningLow(ctx, -1)
	if err != nil {
		t.Fatalf("second restock: %v", err)
	}
	if len(added) != 0 {
		t.Fatalf("second restock added %+v", added)
	}

	list, err := svc.ListShopping(ctx)
	if err != nil {
		t.Fatalf("list shopping: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected two shopping entries, got %+v", list)
	}
}

func TestShoppingValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.AddShopping(ctx, domain.ShoppingListEntry{ItemName: "Bread"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
	entry, err := svc.AddShopping(ctx, domain.ShoppingListEntry{ItemName: "Bread", Quantity: 2})
	if err != nil {
		t.Fatalf("add shopping: %v", err)
	}
	entry.Quantity = 0
	if _, err := svc.UpdateShopping(ctx, entry); err != nil {
		t.Fatalf("update to zero: %v", err)
	}
	entry.ID = 404
	if _, err := svc.UpdateShopping(ctx, entry); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestShoppingKeepsSuppliedText(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	want := domain.ShoppingListEntry{ItemName: " Sourdough ", Quantity: 1, AddedDate: "2024-01-01", Notes: "from the bakery\n"}
	if _, err := svc.AddShopping(ctx, want); err != nil {
		t.Fatalf("add shopping: %v", err)
	}
	entries, err := svc.ListShopping(ctx)
	if err != nil {
		t.Fatalf("list shopping: %v", err)
	}
	if len(entries) != 1 || entries[0].ItemName != want.ItemName || entries[0].Notes != want.Notes {
		t.Fatalf("stored entry differs from input: %+v", entries)
	}
	if _, err := svc.AddShopping(ctx, domain.ShoppingListEntry{ItemName: "  ", Quantity: 1}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected blank name to be rejected, got %v", err)
	}
}

func TestBrandAndLocationNamesMayRepeat(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	first, err := svc.AddBrand(ctx, "Acme")
	if err != nil {
		t.Fatalf("add brand: %v", err)
	}
	second, err := svc.AddBrand(ctx, "acme")
	if err != nil {
		t.Fatalf("add repeated brand: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected a second brand row, got id %d twice", first.ID)
	}
	if _, err := svc.AddLocation(ctx, "fridge"); err != nil {
		t.Fatalf("add repeated location: %v", err)
	}
	locations, err := svc.ListLocations(ctx)
	if err != nil {
		t.Fatalf("list locations: %v", err)
	}
	if len(locations) != 4 {
		t.Fatalf("expected 3 seeded locations plus 1, got %d", len(locations))
	}
}

func TestStatsCountsUnknownCategory(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	cat, err := svc.AddCategory(ctx, "Leftovers")
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	if _, err := svc.AddItem(ctx, domain.PantryItem{Name: "Soup", CategoryID: cat.ID, LocationID: 1, Quantity: 1}); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if err := svc.DeleteCategory(ctx, cat.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	tally, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	last := tally.Categories[len(tally.Categories)-1]
	if tally.Total != 1 || last.Name != inventory.UnknownCategory || last.Items != 1 {
		t.Fatalf("unexpected tally: %+v", tally)
	}

	views, err := svc.Browse(ctx, BrowseQuery{})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if views[0].CategoryName != inventory.UnknownCategory {
		t.Fatalf("expected unknown category label, got %q", views[0].CategoryName)
	}
}

// brokenStore fails to initialize. Any other call panics on the nil
// embedded interface, which proves the service never reached it.
type brokenStore struct {
	domain.Store
}

func (brokenStore) Initialize(context.Context) error {
	return errors.New("disk full")
}

func TestInitializationFailureIsSticky(t *testing.T) {
	ctx := context.Background()
	svc := NewPantryService(brokenStore{}, WithLogger(logging.Discard()))

	if err := svc.Initialize(ctx); !errors.Is(err, domain.ErrInitialization) {
		t.Fatalf("expected initialization error, got %v", err)
	}
	if _, err := svc.ListItems(ctx); !errors.Is(err, domain.ErrInitialization) {
		t.Fatalf("list items: expected initialization error, got %v", err)
	}
	if _, err := svc.AddItem(ctx, milk()); !errors.Is(err, domain.ErrInitialization) {
		t.Fatalf("add item: expected initialization error, got %v", err)
	}
	if _, err := svc.RestockRunningLow(ctx, 2); !errors.Is(err, domain.ErrInitialization) {
		t.Fatalf("restock: expected initialization error, got %v", err)
	}
}
