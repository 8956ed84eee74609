package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
	"github.com/atvirokodosprendimai/pantrypal/internal/inventory"
)

// named is the wire shape shared by categories, brands, locations and
// allergens.
type named struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func printKV(rows [][2]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}
	_ = w.Flush()
}

func printTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Println("no results")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func printNamed(items []named) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{uintToString(item.ID), item.Name})
	}
	printTable([]string{"ID", "NAME"}, rows)
}

func printItemViews(items []inventory.ItemView) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		days := "-"
		if item.DaysLeft != nil {
			days = strconv.Itoa(*item.DaysLeft)
		}
		rows = append(rows, []string{
			uintToString(item.ID),
			item.Name,
			strconv.Itoa(item.Quantity),
			item.CategoryName,
			item.LocationName,
			orDash(item.BrandName),
			orDash(item.ExpirationDate),
			days,
			string(item.Status),
		})
	}
	printTable([]string{"ID", "NAME", "QTY", "CATEGORY", "LOCATION", "BRAND", "EXPIRES", "DAYS", "STATUS"}, rows)
}

func printItem(item domain.PantryItem) {
	printKV([][2]string{
		{"id", uintToString(item.ID)},
		{"name", item.Name},
		{"quantity", strconv.Itoa(item.Quantity)},
		{"category_id", uintToString(item.CategoryID)},
		{"category", orDash(item.CategoryName)},
		{"location_id", uintToString(item.LocationID)},
		{"brand_id", uintToString(item.BrandID)},
		{"expiration_date", orDash(item.ExpirationDate)},
		{"added_date", orDash(item.AddedDate)},
		{"notes", orDash(item.Notes)},
	})
}

func printShopping(entries []domain.ShoppingListEntry) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			uintToString(e.ID),
			e.ItemName,
			strconv.Itoa(e.Quantity),
			orDash(e.AddedDate),
			orDash(e.Notes),
		})
	}
	printTable([]string{"ID", "ITEM", "QTY", "ADDED", "NOTES"}, rows)
}

func printTally(t inventory.Tally) {
	fmt.Printf("total items: %d\n\n", t.Total)
	printCounts("CATEGORY", t.Categories)
	fmt.Println()
	printCounts("LOCATION", t.Locations)
}

func printCounts(label string, counts []inventory.Count) {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		if c.Items == 0 {
			continue
		}
		rows = append(rows, []string{c.Name, strconv.Itoa(c.Items)})
	}
	printTable([]string{label, "ITEMS"}, rows)
}

func printSeedCounts(c domain.SeedCounts) {
	printKV([][2]string{
		{"categories", strconv.FormatInt(c.Categories, 10)},
		{"allergens", strconv.FormatInt(c.Allergens, 10)},
		{"locations", strconv.FormatInt(c.Locations, 10)},
	})
}
