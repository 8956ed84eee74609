package inventory

import (
	"testing"

	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
)

func TestAnnotateResolvesNamesAndStatus(t *testing.T) {
	catalog := Catalog{
		Categories: []domain.Category{{ID: 1, Name: "Dairy"}},
		Locations:  []domain.Location{{ID: 1, Name: "Fridge"}},
		Brands:     []domain.Brand{{ID: 4, Name: "Acme"}},
	}
	items := []domain.PantryItem{
		{ID: 1, Name: "Milk", CategoryID: 1, LocationID: 1, BrandID: 4, ExpirationDate: "2024-01-03"},
		{ID: 2, Name: "Orphan", CategoryID: 42, LocationID: 9, ExpirationDate: ""},
		{ID: 3, Name: "Old", CategoryID: 1, LocationID: 1, ExpirationDate: "2023-12-30"},
		{ID: 4, Name: "Later", CategoryID: 1, LocationID: 1, ExpirationDate: "2024-03-01"},
	}

	views := Annotate(items, catalog, day(t, "2024-01-01"), DefaultHorizonDays)
	if len(views) != 4 {
		t.Fatalf("expected 4 views, got %d", len(views))
	}

	milk := views[0]
	if milk.CategoryName != "Dairy" || milk.LocationName != "Fridge" || milk.BrandName != "Acme" {
		t.Fatalf("unexpected names: %+v", milk)
	}
	if milk.Status != StatusExpiring || milk.DaysLeft == nil || *milk.DaysLeft != 2 {
		t.Fatalf("unexpected milk status: %+v", milk)
	}

	orphan := views[1]
	if orphan.CategoryName != UnknownCategory || orphan.LocationName != UnknownLocation {
		t.Fatalf("dangling references not labelled: %+v", orphan)
	}
	if orphan.Status != StatusNone || orphan.DaysLeft != nil {
		t.Fatalf("item without expiration should have no status: %+v", orphan)
	}

	if views[2].Status != StatusExpired || *views[2].DaysLeft != -2 {
		t.Fatalf("unexpected old status: %+v", views[2])
	}
	if views[3].Status != StatusFresh {
		t.Fatalf("unexpected later status: %+v", views[3])
	}
}

func TestTallyItemsGroupsUnknown(t *testing.T) {
	catalog := Catalog{
		Categories: []domain.Category{{ID: 1, Name: "Dairy"}, {ID: 2, Name: "Produce"}},
		Locations:  []domain.Location{{ID: 1, Name: "Fridge"}},
	}
	items := []domain.PantryItem{
		{CategoryID: 1, LocationID: 1},
		{CategoryID: 1, LocationID: 1},
		{CategoryID: 9, LocationID: 5},
	}
	tally := TallyItems(items, catalog)
	if tally.Total != 3 {
		t.Fatalf("total = %d", tally.Total)
	}
	if len(tally.Categories) != 3 {
		t.Fatalf("expected dairy, produce and unknown buckets, got %+v", tally.Categories)
	}
	if tally.Categories[0].Items != 2 || tally.Categories[1].Items != 0 {
		t.Fatalf("unexpected category counts: %+v", tally.Categories)
	}
	if last := tally.Categories[2]; last.Name != UnknownCategory || last.Items != 1 {
		t.Fatalf("unexpected unknown bucket: %+v", last)
	}
	if len(tally.Locations) != 2 || tally.Locations[1].Name != UnknownLocation {
		t.Fatalf("unexpected location buckets: %+v", tally.Locations)
	}
}
