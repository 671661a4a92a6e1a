// Package matcher finds the reward multiplier a card's reward table gives a
// category.
package matcher

import (
	"fmt"

	"card-advisor/internal/catalog"
	"card-advisor/internal/domain"
)

// HardFallback is used when a table has no usable entry, not even default.
const HardFallback = 1.0

type MatchSource string

const (
	MatchExact       MatchSource = "exact"
	MatchRotating    MatchSource = "rotating"
	MatchAlias       MatchSource = "alias"
	MatchParent      MatchSource = "parent"
	MatchDefault     MatchSource = "default"
	MatchHardDefault MatchSource = "fallback"
)

// Match explains where a multiplier came from.
type Match struct {
	Multiplier float64
	Key        string
	Source     MatchSource
	Descriptor domain.RewardDescriptor
}

type Matcher struct {
	catalog *catalog.Catalog
}

func New(cat *catalog.Catalog) *Matcher {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Matcher{catalog: cat}
}

// FindMultiplier returns the multiplier for categoryID, or HardFallback when the
// table is unusable.
func (m *Matcher) FindMultiplier(table domain.RewardTable, categoryID string) float64 {
	match, err := m.Resolve(table, categoryID)
	if err != nil {
		return HardFallback
	}
	return match.Multiplier
}

// Resolve walks the resolution order:
//
//	exact key -> active rotating descriptor -> alias/subcategory -> ancestor
//	-> default entry -> 1.0
//
// Values are returned as stored: zero, negative and very large multipliers are
// valid data. The error is non-nil only when the descriptor that should have
// applied is malformed; the returned Match then carries HardFallback.
func (m *Matcher) Resolve(table domain.RewardTable, categoryID string) (Match, error) {
	if d, ok := table[categoryID]; ok && categoryID != domain.DefaultRewardKey {
		if d.Kind != domain.KindRotating || d.IsActiveFor(categoryID) {
			return m.matchOf(d, categoryID, MatchExact)
		}
	}

	keys := table.Keys()

	if match, ok, err := m.best(table, keys, func(key string, d domain.RewardDescriptor) bool {
		return d.Kind == domain.KindRotating && m.rotatingCovers(d, categoryID)
	}, MatchRotating); ok {
		return match, err
	}

	if match, ok, err := m.best(table, keys, func(key string, d domain.RewardDescriptor) bool {
		if d.Kind == domain.KindRotating {
			return false
		}
		return m.sameCategory(key, categoryID) || containsID(d.Subcategories, categoryID)
	}, MatchAlias); ok {
		return match, err
	}

	if match, ok, err := m.best(table, keys, func(key string, d domain.RewardDescriptor) bool {
		if d.Kind == domain.KindRotating {
			return false
		}
		return m.catalog.AreCompatible(m.canonical(key), categoryID)
	}, MatchParent); ok {
		return match, err
	}

	if d, ok := table[domain.DefaultRewardKey]; ok {
		return m.matchOf(d, domain.DefaultRewardKey, MatchDefault)
	}
	return Match{Multiplier: HardFallback, Source: MatchHardDefault}, nil
}

// best picks the highest multiplier among entries accepted by pred. A
// malformed accepted entry wins immediately so the caller hears about it.
func (m *Matcher) best(table domain.RewardTable, keys []string, pred func(string, domain.RewardDescriptor) bool, source MatchSource) (Match, bool, error) {
	var (
		found bool
		out   Match
	)
	for _, k := range keys {
		if k == domain.DefaultRewardKey {
			continue
		}
		d := table[k]
		if !pred(k, d) {
			continue
		}
		v, err := d.Multiplier()
		if err != nil {
			return Match{Multiplier: HardFallback, Key: k, Source: source}, true, fmt.Errorf("reward entry %q: %w", k, err)
		}
		if !found || v > out.Multiplier {
			out = Match{Multiplier: v, Key: k, Source: source, Descriptor: d}
			found = true
		}
	}
	return out, found, nil
}

func (m *Matcher) matchOf(d domain.RewardDescriptor, key string, source MatchSource) (Match, error) {
	v, err := d.Multiplier()
	if err != nil {
		return Match{Multiplier: HardFallback, Key: key, Source: source}, fmt.Errorf("reward entry %q: %w", key, err)
	}
	return Match{Multiplier: v, Key: key, Source: source, Descriptor: d}, nil
}

func (m *Matcher) rotatingCovers(d domain.RewardDescriptor, categoryID string) bool {
	for _, active := range d.ActiveCategories {
		if active == categoryID || m.sameCategory(active, categoryID) {
			return true
		}
	}
	return false
}

// sameCategory: key and id name the same catalog entry, or one is a
// subcategory id (travel_airfare) of the other.
func (m *Matcher) sameCategory(key, id string) bool {
	if key == id {
		return true
	}
	ck, ci := m.canonical(key), m.canonical(id)
	if ck == "" || ci == "" {
		return false
	}
	if ck == ci {
		return true
	}
	if p, ok := m.catalog.ParentOf(ck); ok && p == ci && !isEntry(m.catalog, ck) {
		return true
	}
	if p, ok := m.catalog.ParentOf(ci); ok && p == ck && !isEntry(m.catalog, ci) {
		return true
	}
	return false
}

// canonical resolves aliases to category ids but keeps subcategory ids as-is.
func (m *Matcher) canonical(key string) string {
	if _, ok := m.catalog.ParentOf(key); ok && !isEntry(m.catalog, key) {
		return key
	}
	if cat, ok := m.catalog.FindByAlias(key); ok {
		return cat.ID
	}
	return ""
}

func isEntry(cat *catalog.Catalog, id string) bool {
	_, ok := cat.Get(id)
	return ok
}

func containsID(ids []string, id string) bool {
	for _, s := range ids {
		if s == id {
			return true
		}
	}
	return false
}
