package matcher

import (
	"encoding/json"
	"testing"

	"card-advisor/internal/catalog"
	"card-advisor/internal/domain"
)

func TestFindMultiplier_Basic(t *testing.T) {
	m := New(catalog.Default())
	table := domain.RewardTable{"dining": domain.Multiplier(4), "default": domain.Multiplier(1)}

	if got := m.FindMultiplier(table, "dining"); got != 4 {
		t.Errorf("FindMultiplier(dining) = %v, want 4", got)
	}
	if got := m.FindMultiplier(table, "insurance"); got != 1 {
		t.Errorf("FindMultiplier(insurance) = %v, want 1", got)
	}
}

func TestResolve_Order(t *testing.T) {
	m := New(catalog.Default())

	tests := []struct {
		name       string
		table      domain.RewardTable
		category   string
		want       float64
		wantSource MatchSource
		wantKey    string
	}{
		{
			name:       "exact key",
			table:      domain.RewardTable{"groceries": domain.Multiplier(1.5), "default": domain.Multiplier(1)},
			category:   "groceries",
			want:       1.5,
			wantSource: MatchExact,
			wantKey:    "groceries",
		},
		{
			name:       "detailed descriptor same as number",
			table:      domain.RewardTable{"groceries": domain.Detailed(6), "default": domain.Multiplier(1)},
			category:   "groceries",
			want:       6,
			wantSource: MatchExact,
		},
		{
			name:       "rotating active",
			table:      domain.RewardTable{"q4_bonus": domain.Rotating(5, "gas", "transit"), "default": domain.Multiplier(1)},
			category:   "gas",
			want:       5,
			wantSource: MatchRotating,
			wantKey:    "q4_bonus",
		},
		{
			name:       "rotating inactive falls to default",
			table:      domain.RewardTable{"q4_bonus": domain.Rotating(5, "gas"), "default": domain.Multiplier(1)},
			category:   "dining",
			want:       1,
			wantSource: MatchDefault,
		},
		{
			name:       "rotating keyed by inactive category",
			table:      domain.RewardTable{"dining": domain.Rotating(5, "gas"), "default": domain.Multiplier(1.5)},
			category:   "dining",
			want:       1.5,
			wantSource: MatchDefault,
		},
		{
			name:       "alias key",
			table:      domain.RewardTable{"restaurants": domain.Multiplier(3), "default": domain.Multiplier(1)},
			category:   "dining",
			want:       3,
			wantSource: MatchAlias,
		},
		{
			name:       "subcategory key matches parent lookup",
			table:      domain.RewardTable{"travel_airfare": domain.Multiplier(5), "default": domain.Multiplier(1)},
			category:   "travel",
			want:       5,
			wantSource: MatchAlias,
		},
		{
			name:       "parent key matches subcategory lookup",
			table:      domain.RewardTable{"travel": domain.Multiplier(3), "default": domain.Multiplier(1)},
			category:   "travel_airfare",
			want:       3,
			wantSource: MatchAlias,
		},
		{
			name:       "descriptor subcategories",
			table:      domain.RewardTable{"portal": domain.Detailed(4, "travel_hotels"), "default": domain.Multiplier(1)},
			category:   "travel_hotels",
			want:       4,
			wantSource: MatchAlias,
		},
		{
			name:       "ancestor fallback",
			table:      domain.RewardTable{"travel": domain.Multiplier(2), "default": domain.Multiplier(1)},
			category:   "transit",
			want:       2,
			wantSource: MatchParent,
		},
		{
			name:       "sibling subcategories do not match",
			table:      domain.RewardTable{"travel_hotels": domain.Multiplier(10), "default": domain.Multiplier(1)},
			category:   "travel_airfare",
			want:       1,
			wantSource: MatchDefault,
		},
		{
			name:       "no default entry",
			table:      domain.RewardTable{"dining": domain.Multiplier(4)},
			category:   "gas",
			want:       1.0,
			wantSource: MatchHardDefault,
		},
		{
			name:       "nil table",
			table:      nil,
			category:   "gas",
			want:       1.0,
			wantSource: MatchHardDefault,
		},
		{
			name:       "unclassified purchase uses default",
			table:      domain.RewardTable{"dining": domain.Multiplier(4), "default": domain.Multiplier(2)},
			category:   catalog.DefaultID,
			want:       2,
			wantSource: MatchDefault,
		},
		{
			name:       "highest of several alias matches",
			table:      domain.RewardTable{"restaurant": domain.Multiplier(2), "restaurants": domain.Multiplier(3), "default": domain.Multiplier(1)},
			category:   "dining",
			want:       3,
			wantSource: MatchAlias,
			wantKey:    "restaurants",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Resolve(tt.table, tt.category)
			if err != nil {
				t.Fatalf("Resolve error: %v", err)
			}
			if got.Multiplier != tt.want {
				t.Errorf("Multiplier = %v, want %v", got.Multiplier, tt.want)
			}
			if got.Source != tt.wantSource {
				t.Errorf("Source = %q, want %q", got.Source, tt.wantSource)
			}
			if tt.wantKey != "" && got.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", got.Key, tt.wantKey)
			}
		})
	}
}

func TestResolve_UnusualValuesAcceptedAsIs(t *testing.T) {
	m := New(nil)
	for _, v := range []float64{0, -2, 25, 1e6} {
		table := domain.RewardTable{"gas": domain.Multiplier(v)}
		if got := m.FindMultiplier(table, "gas"); got != v {
			t.Errorf("FindMultiplier with value %v = %v", v, got)
		}
	}
}

func TestResolve_MalformedEntry(t *testing.T) {
	m := New(nil)
	var table domain.RewardTable
	if err := json.Unmarshal([]byte(`{"dining": "lots", "default": 1.25}`), &table); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got, err := m.Resolve(table, "dining")
	if err == nil {
		t.Fatal("Resolve(dining) error = nil, want error for malformed entry")
	}
	if got.Multiplier != HardFallback {
		t.Errorf("Multiplier = %v, want %v", got.Multiplier, HardFallback)
	}
	if m.FindMultiplier(table, "dining") != HardFallback {
		t.Error("FindMultiplier should hard-fallback on malformed entry")
	}

	// entries that do not apply are never inspected
	if got := m.FindMultiplier(table, "gas"); got != 1.25 {
		t.Errorf("FindMultiplier(gas) = %v, want 1.25", got)
	}

	bad := domain.InvalidRewardTable([]byte(`[1,2,3]`))
	if _, err := m.Resolve(bad, "gas"); err == nil {
		t.Error("Resolve on invalid table should report error")
	}
}
