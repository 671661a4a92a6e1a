package catalog

import (
	"testing"

	"card-advisor/internal/domain"
)

func TestDefault_HasFourteenUniqueCategories(t *testing.T) {
	all := Default().All()
	if len(all) != 14 {
		t.Fatalf("len(All()) = %d, want 14", len(all))
	}
	seen := map[string]bool{}
	for _, c := range all {
		if seen[c.ID] {
			t.Errorf("duplicate id %q", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestNew_RejectsBadEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []domain.Category
	}{
		{name: "duplicate id", entries: []domain.Category{{ID: "dining"}, {ID: "Dining"}}},
		{name: "empty id", entries: []domain.Category{{ID: "  "}}},
		{name: "unknown parent", entries: []domain.Category{{ID: "streaming", Parent: "entertainment"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.entries); err == nil {
				t.Error("New() error = nil, want error")
			}
		})
	}
}

func TestFindByAlias(t *testing.T) {
	c := Default()
	tests := []struct {
		alias string
		want  string
		found bool
	}{
		{alias: "dining", want: "dining", found: true},
		{alias: "Restaurants", want: "dining", found: true},
		{alias: "gas-stations", want: "gas", found: true},
		{alias: "travel_airfare", want: "travel", found: true},
		{alias: "Warehouse Clubs", want: "warehouse", found: true},
		{alias: "spaceflight", found: false},
		{alias: "", found: false},
	}
	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			got, ok := c.FindByAlias(tt.alias)
			if ok != tt.found {
				t.Fatalf("FindByAlias(%q) found = %v, want %v", tt.alias, ok, tt.found)
			}
			if ok && got.ID != tt.want {
				t.Errorf("FindByAlias(%q) = %q, want %q", tt.alias, got.ID, tt.want)
			}
		})
	}
}

func TestFindByKeyword(t *testing.T) {
	c := Default()
	tests := []struct {
		text  string
		want  string
		found bool
	}{
		{text: "pizza", want: "dining", found: true},
		{text: "Joe's Pizza Place", want: "dining", found: true},
		{text: "HOME DEPOT #1234", want: "home_improvement", found: true},
		{text: "costco", want: "warehouse", found: true},
		{text: "pizzeria", found: false},
		{text: "", found: false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := c.FindByKeyword(tt.text)
			if ok != tt.found {
				t.Fatalf("FindByKeyword(%q) found = %v, want %v", tt.text, ok, tt.found)
			}
			if ok && got.ID != tt.want {
				t.Errorf("FindByKeyword(%q) = %q, want %q", tt.text, got.ID, tt.want)
			}
		})
	}
}

func TestFindByMccCode(t *testing.T) {
	c := Default()
	if got, ok := c.FindByMccCode(5812); !ok || got.ID != "dining" {
		t.Errorf("FindByMccCode(5812) = %q, %v; want dining", got.ID, ok)
	}
	if got := c.CategoriesForMcc(5411); len(got) != 2 || got[0] != "groceries" || got[1] != "warehouse" {
		t.Errorf("CategoriesForMcc(5411) = %v, want [groceries warehouse]", got)
	}
	if _, ok := c.FindByMccCode(1234); ok {
		t.Error("FindByMccCode(1234) should not match")
	}
}

func TestFind_Order(t *testing.T) {
	c := Default()
	tests := []struct {
		query string
		want  string
	}{
		{query: "restaurants", want: "dining"},  // alias
		{query: "sushi bar", want: "dining"},    // keyword
		{query: "5912", want: "drugstores"},     // mcc
		{query: "insurance", want: "insurance"}, // id
	}
	for _, tt := range tests {
		got, ok := c.Find(tt.query)
		if !ok || got.ID != tt.want {
			t.Errorf("Find(%q) = %q, %v; want %q", tt.query, got.ID, ok, tt.want)
		}
	}
	if _, ok := c.Find("nothing relevant"); ok {
		t.Error("Find(nothing relevant) should return no match")
	}
}

func TestAreCompatible(t *testing.T) {
	c := Default()
	tests := []struct {
		a, b string
		want bool
	}{
		{"travel", "travel", true},
		{"travel", "travel_airfare", true},
		{"travel_airfare", "travel", true},
		{"transit", "travel", true},
		{"streaming", "entertainment", true},
		{"travel_hotels", "travel_airfare", false},
		{"groceries", "warehouse", false},
		{"dining", "", false},
	}
	for _, tt := range tests {
		if got := c.AreCompatible(tt.a, tt.b); got != tt.want {
			t.Errorf("AreCompatible(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParentOfAndKnown(t *testing.T) {
	c := Default()
	if p, ok := c.ParentOf("travel_airfare"); !ok || p != "travel" {
		t.Errorf("ParentOf(travel_airfare) = %q, %v", p, ok)
	}
	if _, ok := c.ParentOf("dining"); ok {
		t.Error("dining should have no parent")
	}
	if !c.Known("travel_hotels") || c.Known("lunar_travel") {
		t.Error("Known() mismatch for subcategory ids")
	}
}
