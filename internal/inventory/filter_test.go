package inventory

import (
	"testing"
	"time"

	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return d
}

func names(items []domain.PantryItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func uintPtr(v uint) *uint { return &v }

func sampleItems() []domain.PantryItem {
	return []domain.PantryItem{
		{ID: 1, Name: "Whole Milk", CategoryID: 1, LocationID: 1, Quantity: 1},
		{ID: 2, Name: "Oat milk", CategoryID: 10, LocationID: 3, Quantity: 4},
		{ID: 3, Name: "Chicken thighs", CategoryID: 2, LocationID: 2, Quantity: 2},
		{ID: 4, Name: "Cheddar", CategoryID: 1, LocationID: 1, Quantity: 0},
	}
}

func TestFilterEmptyInput(t *testing.T) {
	got := Filter(nil, "", nil, nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	got := names(Filter(sampleItems(), "MILK", nil, nil))
	if len(got) != 2 || got[0] != "Whole Milk" || got[1] != "Oat milk" {
		t.Fatalf("unexpected match set: %v", got)
	}
}

func TestFilterPredicatesAreConjunctive(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		category *uint
		location *uint
		want     []string
	}{
		{name: "all", want: []string{"Whole Milk", "Oat milk", "Chicken thighs", "Cheddar"}},
		{name: "category", category: uintPtr(1), want: []string{"Whole Milk", "Cheddar"}},
		{name: "location", location: uintPtr(3), want: []string{"Oat milk"}},
		{name: "query and category", query: "milk", category: uintPtr(1), want: []string{"Whole Milk"}},
		{name: "query and location mismatch", query: "milk", location: uintPtr(2), want: []string{}},
		{name: "space is matched literally", query: " ", location: uintPtr(1), want: []string{"Whole Milk"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Filter(sampleItems(), tt.query, tt.category, tt.location))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v want %v", got, tt.want)
				}
			}
		})
	}
}

func TestClassifyExpiringSoon(t *testing.T) {
	ref := day(t, "2024-01-01")
	items := []domain.PantryItem{
		{ID: 1, Name: "inside", ExpirationDate: "2024-01-05"},
		{ID: 2, Name: "none", ExpirationDate: ""},
		{ID: 3, Name: "outside", ExpirationDate: "2024-01-10"},
		{ID: 4, Name: "today", ExpirationDate: "2024-01-01"},
		{ID: 5, Name: "last day", ExpirationDate: "2024-01-08"},
		{ID: 6, Name: "garbage", ExpirationDate: "soon"},
		{ID: 7, Name: "yesterday", ExpirationDate: "2023-12-31"},
	}
	got := names(ClassifyExpiringSoon(items, ref, 7))
	want := []string{"inside", "today", "last day"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestClassifyExpiringSoonIgnoresTimeOfDay(t *testing.T) {
	ref := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	items := []domain.PantryItem{{Name: "today", ExpirationDate: "2024-01-01"}}
	if got := ClassifyExpiringSoon(items, ref, 0); len(got) != 1 {
		t.Fatalf("expected item expiring today to be included, got %v", got)
	}
}

func TestClassifyExpired(t *testing.T) {
	ref := day(t, "2024-01-01")
	items := []domain.PantryItem{
		{Name: "old", ExpirationDate: "2023-12-31"},
		{Name: "today", ExpirationDate: "2024-01-01"},
		{Name: "none", ExpirationDate: ""},
		{Name: "bad", ExpirationDate: "31/12/2023"},
	}
	got := names(ClassifyExpired(items, ref))
	if len(got) != 1 || got[0] != "old" {
		t.Fatalf("unexpected expired set: %v", got)
	}
}

func TestClassifyRunningLowIsStableAscending(t *testing.T) {
	items := []domain.PantryItem{
		{ID: 1, Name: "a", Quantity: 5},
		{ID: 2, Name: "b", Quantity: 1},
		{ID: 3, Name: "c", Quantity: 2},
		{ID: 4, Name: "d", Quantity: 0},
		{ID: 5, Name: "e", Quantity: 1},
	}
	got := ClassifyRunningLow(items, DefaultLowThreshold)
	wantIDs := []uint{4, 2, 5, 3}
	if len(got) != len(wantIDs) {
		t.Fatalf("got %d items, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Fatalf("position %d: got id %d want %d", i, got[i].ID, id)
		}
	}
	if items[0].ID != 1 || items[1].ID != 2 {
		t.Fatalf("input slice was reordered")
	}
}

func TestCountBy(t *testing.T) {
	items := sampleItems()
	if n := CountBy(items, ByCategory, 1); n != 2 {
		t.Fatalf("category count = %d", n)
	}
	if n := CountBy(items, ByLocation, 2); n != 1 {
		t.Fatalf("location count = %d", n)
	}
	if n := CountBy(items, ByLocation, 99); n != 0 {
		t.Fatalf("missing location count = %d", n)
	}
}

func TestResolveNames(t *testing.T) {
	categories := []domain.Category{{ID: 1, Name: "Dairy"}}
	if got := ResolveCategoryName(1, categories); got != "Dairy" {
		t.Fatalf("got %q", got)
	}
	if got := ResolveCategoryName(99, categories); got != "Unknown Category" {
		t.Fatalf("got %q", got)
	}
	if got := ResolveLocationName(4, nil); got != "Unknown Location" {
		t.Fatalf("got %q", got)
	}
	if got := ResolveBrandName(domain.NoBrand, nil); got != "" {
		t.Fatalf("no brand resolved to %q", got)
	}
	if got := ResolveBrandName(3, []domain.Brand{{ID: 2, Name: "Acme"}}); got != UnknownBrand {
		t.Fatalf("got %q", got)
	}
}
