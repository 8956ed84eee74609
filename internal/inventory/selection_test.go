package inventory

import (
	"errors"
	"testing"

	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		in   string
		want Selection
	}{
		{"", NoSelection()},
		{"none", NoSelection()},
		{"category:3", SelectCategory(3)},
		{"Location: 2", SelectLocation(2)},
		{"expiring", SelectExpiringSoon()},
		{"expiringSoon", SelectExpiringSoon()},
		{"expired", SelectExpired()},
		{"low", SelectRunningLow()},
		{"runningLow", SelectRunningLow()},
	}
	for _, tt := range tests {
		got, err := ParseSelection(tt.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("parse %q: got %+v want %+v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"category", "category:x", "location:0", "breakfast"} {
		if _, err := ParseSelection(bad); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("parse %q: expected invalid input, got %v", bad, err)
		}
	}
}

func TestSelectionStringRoundTrip(t *testing.T) {
	for _, sel := range []Selection{NoSelection(), SelectCategory(7), SelectLocation(1), SelectExpired()} {
		got, err := ParseSelection(sel.String())
		if err != nil {
			t.Fatalf("parse %q: %v", sel.String(), err)
		}
		if got != sel {
			t.Fatalf("got %+v want %+v", got, sel)
		}
	}
}

func TestApplySelections(t *testing.T) {
	ref := day(t, "2024-01-01")
	items := []domain.PantryItem{
		{ID: 1, Name: "Milk", CategoryID: 1, LocationID: 1, Quantity: 1, ExpirationDate: "2024-01-03"},
		{ID: 2, Name: "Rice", CategoryID: 7, LocationID: 3, Quantity: 6},
		{ID: 3, Name: "Yogurt", CategoryID: 1, LocationID: 1, Quantity: 3, ExpirationDate: "2023-12-20"},
	}
	opts := DefaultOptions(ref)

	cases := map[Selection][]uint{
		NoSelection():        {1, 2, 3},
		SelectCategory(1):    {1, 3},
		SelectLocation(3):    {2},
		SelectExpiringSoon(): {1},
		SelectExpired():      {3},
		SelectRunningLow():   {1},
	}
	for sel, want := range cases {
		got, err := Apply(items, sel, opts)
		if err != nil {
			t.Fatalf("apply %s: %v", sel, err)
		}
		if len(got) != len(want) {
			t.Fatalf("apply %s: got %d items want %d", sel, len(got), len(want))
		}
		for i := range want {
			if got[i].ID != want[i] {
				t.Fatalf("apply %s: position %d got %d want %d", sel, i, got[i].ID, want[i])
			}
		}
	}

	if _, err := Apply(items, Selection{Kind: "breakfast"}, opts); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid kind error, got %v", err)
	}
}
