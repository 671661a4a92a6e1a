// Package classifier resolves merchant text and MCC codes to catalog
// categories with a confidence score.
//
// Stages run in order and stop at the first match:
//
//	1. MCC code       0.85-0.95
//	2. known merchant 0.95-0.99 (MerchantLookup)
//	3. keyword        0.60-0.90
//	4. default        0
package classifier

import (
	"fmt"
	"log/slog"
	"strings"

	"card-advisor/internal/catalog"
	"card-advisor/internal/domain"
)

const (
	confidenceMccUnique      = 0.95
	confidenceMccDisambig    = 0.92
	confidenceMccShared      = 0.85
	confidenceMerchantMin    = 0.95
	confidenceMerchantMax    = 0.99
	confidenceKeywordExact   = 0.90
	confidenceKeywordPhrase  = 0.85
	confidenceKeywordWord    = 0.75
	confidenceKeywordPartial = 0.60

	minPartialKeywordLen = 4
)

// MerchantMatch is what a merchant directory knows about a name.
type MerchantMatch struct {
	CategoryID string
	Confidence float64
}

// MerchantLookup is the known-merchant directory. Names arrive normalized.
type MerchantLookup interface {
	Lookup(normalizedName string) (MerchantMatch, bool)
}

// LookupFunc adapts a function to MerchantLookup.
type LookupFunc func(normalizedName string) (MerchantMatch, bool)

func (f LookupFunc) Lookup(name string) (MerchantMatch, bool) { return f(name) }

type Classifier struct {
	catalog  *catalog.Catalog
	merchant MerchantLookup
	cache    *Cache
}

// New builds a classifier. merchant and cache may be nil.
func New(cat *catalog.Catalog, merchant MerchantLookup, cache *Cache) *Classifier {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Classifier{catalog: cat, merchant: merchant, cache: cache}
}

// Classify never fails: unresolvable input yields the default category with
// confidence 0. mcc <= 0 means no code. Results are cached per
// (normalized text, mcc).
func (c *Classifier) Classify(merchantText string, mcc int) domain.ClassificationResult {
	text := Normalize(merchantText)
	if mcc < 0 {
		mcc = 0
	}
	key := cacheKey{text: text, mcc: mcc}
	if r, ok := c.cache.get(key); ok {
		return r
	}

	r := c.classify(text, mcc)
	c.cache.put(key, r)
	slog.Debug("merchant classified", "text", text, "mcc", mcc, "category", r.CategoryID, "source", r.Source, "confidence", r.Confidence)
	return r
}

func (c *Classifier) classify(text string, mcc int) domain.ClassificationResult {
	var warning string

	if mcc > 0 {
		if r, ok := c.byMcc(text, mcc); ok {
			return r
		}
		warning = fmt.Sprintf("MCC %d is not a known category code", mcc)
	}

	if text != "" && c.merchant != nil {
		if m, ok := c.merchant.Lookup(text); ok {
			if id, known := c.canonical(m.CategoryID); known {
				return domain.ClassificationResult{
					CategoryID:  id,
					Confidence:  merchantConfidence(m.Confidence),
					Source:      domain.SourceDatabase,
					Explanation: fmt.Sprintf("known merchant %q", text),
					Warning:     warning,
				}
			}
		}
	}

	if hit, ok := c.bestKeyword(text, nil); ok {
		return domain.ClassificationResult{
			CategoryID:  hit.categoryID,
			Confidence:  hit.score,
			Source:      domain.SourceKeyword,
			Explanation: fmt.Sprintf("merchant text matches keyword %q", hit.keyword),
			Warning:     warning,
		}
	}

	if warning == "" {
		warning = "unresolved merchant"
	}
	return domain.ClassificationResult{
		CategoryID:  catalog.DefaultID,
		Confidence:  0,
		Source:      domain.SourceDefault,
		Explanation: "no classification signal",
		Warning:     warning,
	}
}

func (c *Classifier) byMcc(text string, mcc int) (domain.ClassificationResult, bool) {
	ids := c.catalog.CategoriesForMcc(mcc)
	switch len(ids) {
	case 0:
		return domain.ClassificationResult{}, false
	case 1:
		return domain.ClassificationResult{
			CategoryID:  ids[0],
			Confidence:  confidenceMccUnique,
			Source:      domain.SourceMccCode,
			Explanation: fmt.Sprintf("MCC %d maps to %s", mcc, ids[0]),
		}, true
	}

	allowed := make(map[string]bool, len(ids))
	for _, id := range ids {
		allowed[id] = true
	}
	if hit, ok := c.bestKeyword(text, allowed); ok {
		return domain.ClassificationResult{
			CategoryID:  hit.categoryID,
			Confidence:  confidenceMccDisambig,
			Source:      domain.SourceMccCode,
			Explanation: fmt.Sprintf("MCC %d is shared; keyword %q picks %s", mcc, hit.keyword, hit.categoryID),
		}, true
	}
	return domain.ClassificationResult{
		CategoryID:  ids[0],
		Confidence:  confidenceMccShared,
		Source:      domain.SourceMccCode,
		Explanation: fmt.Sprintf("MCC %d maps to %s", mcc, ids[0]),
		Warning:     fmt.Sprintf("MCC %d is shared by %s", mcc, strings.Join(ids, ", ")),
	}, true
}

// canonical maps a directory category ("Dining", "restaurants",
// "travel-airfare") to a catalog id. Subcategory ids are kept.
func (c *Classifier) canonical(id string) (string, bool) {
	key := catalog.CanonicalID(id)
	if _, isEntry := c.catalog.Get(key); !isEntry && c.catalog.Known(key) {
		return key, true
	}
	if cat, ok := c.catalog.FindByAlias(id); ok {
		return cat.ID, true
	}
	return "", false
}

func merchantConfidence(conf float64) float64 {
	switch {
	case conf < confidenceMerchantMin:
		return confidenceMerchantMin
	case conf > confidenceMerchantMax:
		return confidenceMerchantMax
	}
	return conf
}

type keywordHit struct {
	categoryID string
	keyword    string
	score      float64
}

// bestKeyword scores every catalog keyword against text. Exact matches beat
// multi-word phrases, which beat single words, which beat plural forms.
// Ties go to the longer keyword, then to catalog order. allowed, when non-nil,
// restricts the candidate categories.
func (c *Classifier) bestKeyword(text string, allowed map[string]bool) (keywordHit, bool) {
	if text == "" {
		return keywordHit{}, false
	}
	var best keywordHit
	for _, cat := range c.catalog.All() {
		if allowed != nil && !allowed[cat.ID] {
			continue
		}
		for _, kw := range cat.Keywords {
			score := keywordScore(text, kw)
			if score == 0 {
				continue
			}
			if score > best.score || (score == best.score && len(kw) > len(best.keyword)) {
				best = keywordHit{categoryID: cat.ID, keyword: kw, score: score}
			}
		}
	}
	return best, best.score > 0
}

func keywordScore(text, kw string) float64 {
	switch {
	case text == kw:
		return confidenceKeywordExact
	case catalog.ContainsPhrase(text, kw):
		if strings.Contains(kw, " ") {
			return confidenceKeywordPhrase
		}
		return confidenceKeywordWord
	case len(kw) >= minPartialKeywordLen && containsPlural(text, kw):
		return confidenceKeywordPartial
	}
	return 0
}

// containsPlural matches kw followed by a plural ending, so "trader joe"
// finds "trader joes" but "shell" does not find "shellfish".
func containsPlural(text, kw string) bool {
	for _, suffix := range pluralSuffixes {
		if catalog.ContainsPhrase(text, kw+suffix) {
			return true
		}
	}
	return false
}

var pluralSuffixes = []string{"s", "es"}
