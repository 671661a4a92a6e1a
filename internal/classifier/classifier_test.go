package classifier

import (
	"fmt"
	"strings"
	"testing"

	"card-advisor/internal/catalog"
	"card-advisor/internal/domain"
)

func knownMerchants(calls *int) MerchantLookup {
	table := map[string]MerchantMatch{
		"starbucks": {CategoryID: "dining", Confidence: 0.97},
		"delta":     {CategoryID: "travel_airfare", Confidence: 0.99},
		"mystery":   {CategoryID: "spaceflight", Confidence: 0.99},
	}
	return LookupFunc(func(name string) (MerchantMatch, bool) {
		if calls != nil {
			*calls++
		}
		m, ok := table[name]
		return m, ok
	})
}

func TestClassify(t *testing.T) {
	c := New(catalog.Default(), knownMerchants(nil), nil)

	tests := []struct {
		name        string
		text        string
		mcc         int
		wantCat     string
		wantSource  domain.ClassificationSource
		wantConf    float64
		wantWarning bool
	}{
		{name: "unique mcc", text: "anything", mcc: 5812, wantCat: "dining", wantSource: domain.SourceMccCode, wantConf: 0.95},
		{name: "shared mcc disambiguated by text", text: "COSTCO WHSE #123", mcc: 5411, wantCat: "warehouse", wantSource: domain.SourceMccCode, wantConf: 0.92},
		{name: "shared mcc without text", text: "", mcc: 5411, wantCat: "groceries", wantSource: domain.SourceMccCode, wantConf: 0.85, wantWarning: true},
		{name: "unknown mcc falls through", text: "pizza", mcc: 1234, wantCat: "dining", wantSource: domain.SourceKeyword, wantConf: 0.90, wantWarning: true},
		{name: "known merchant", text: "Starbucks", wantCat: "dining", wantSource: domain.SourceDatabase, wantConf: 0.97},
		{name: "known merchant subcategory", text: "DELTA", wantCat: "travel_airfare", wantSource: domain.SourceDatabase, wantConf: 0.99},
		{name: "merchant with unknown category ignored", text: "mystery", wantCat: catalog.DefaultID, wantSource: domain.SourceDefault, wantConf: 0, wantWarning: true},
		{name: "exact keyword", text: "fast food", wantCat: "dining", wantSource: domain.SourceKeyword, wantConf: 0.90},
		{name: "multi-word phrase", text: "best fast food place", wantCat: "dining", wantSource: domain.SourceKeyword, wantConf: 0.85},
		{name: "single word", text: "Joe's Sushi", wantCat: "dining", wantSource: domain.SourceKeyword, wantConf: 0.75},
		{name: "plural keyword", text: "Pizzas Palace", wantCat: "dining", wantSource: domain.SourceKeyword, wantConf: 0.60},
		{name: "possessive brand", text: "TRADER JOE'S #552", wantCat: "groceries", wantSource: domain.SourceKeyword, wantConf: 0.60},
		{name: "keyword inside word", text: "superpizza", wantCat: catalog.DefaultID, wantSource: domain.SourceDefault, wantConf: 0, wantWarning: true},
		{name: "brand prefix of other word", text: "Shellfish Shack", wantCat: catalog.DefaultID, wantSource: domain.SourceDefault, wantConf: 0, wantWarning: true},
		{name: "mobil in mobile", text: "Mobile Pet Grooming", wantCat: catalog.DefaultID, wantSource: domain.SourceDefault, wantConf: 0, wantWarning: true},
		{name: "train in trainer", text: "Trainer Gym", wantCat: catalog.DefaultID, wantSource: domain.SourceDefault, wantConf: 0, wantWarning: true},
		{name: "accents", text: "Café Olé", wantCat: "dining", wantSource: domain.SourceKeyword, wantConf: 0.75},
		{name: "phrase beats word", text: "home depot hardware", wantCat: "home_improvement", wantSource: domain.SourceKeyword, wantConf: 0.85},
		{name: "empty", text: "", wantCat: catalog.DefaultID, wantSource: domain.SourceDefault, wantConf: 0, wantWarning: true},
		{name: "symbols only", text: "#$%^&*", wantCat: catalog.DefaultID, wantSource: domain.SourceDefault, wantConf: 0, wantWarning: true},
		{name: "very long text", text: strings.Repeat("x ", 300) + "hotel", wantCat: "travel", wantSource: domain.SourceKeyword, wantConf: 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text, tt.mcc)
			if got.CategoryID != tt.wantCat {
				t.Errorf("CategoryID = %q, want %q", got.CategoryID, tt.wantCat)
			}
			if got.Source != tt.wantSource {
				t.Errorf("Source = %q, want %q", got.Source, tt.wantSource)
			}
			if got.Confidence != tt.wantConf {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConf)
			}
			if (got.Warning != "") != tt.wantWarning {
				t.Errorf("Warning = %q, wantWarning %v", got.Warning, tt.wantWarning)
			}
			if got.Confidence < 0 || got.Confidence > 1 {
				t.Errorf("Confidence %v outside [0,1]", got.Confidence)
			}
		})
	}
}

func TestClassify_KnownMerchantCanonical(t *testing.T) {
	table := map[string]MerchantMatch{
		"joes diner":    {CategoryID: "Dining", Confidence: 0.97},
		"noodle bar":    {CategoryID: "restaurants", Confidence: 0.96},
		"sky air":       {CategoryID: "Travel-Airfare", Confidence: 0.98},
		"corner store":  {CategoryID: "groceries", Confidence: 0.5},
		"rideshare app": {CategoryID: "transit", Confidence: 1},
		"fuel stop":     {CategoryID: "gas"},
	}
	c := New(catalog.Default(), LookupFunc(func(name string) (MerchantMatch, bool) {
		m, ok := table[name]
		return m, ok
	}), nil)

	tests := []struct {
		text     string
		wantCat  string
		wantConf float64
	}{
		{text: "Joes Diner", wantCat: "dining", wantConf: 0.97},
		{text: "Noodle Bar", wantCat: "dining", wantConf: 0.96},
		{text: "Sky Air", wantCat: "travel_airfare", wantConf: 0.98},
		{text: "Corner Store", wantCat: "groceries", wantConf: 0.95},
		{text: "Rideshare App", wantCat: "transit", wantConf: 0.99},
		{text: "Fuel Stop", wantCat: "gas", wantConf: 0.95},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := c.Classify(tt.text, 0)
			if got.Source != domain.SourceDatabase || got.CategoryID != tt.wantCat || got.Confidence != tt.wantConf {
				t.Errorf("Classify(%q) = %s %s %v, want database %s %v", tt.text, got.Source, got.CategoryID, got.Confidence, tt.wantCat, tt.wantConf)
			}
		})
	}
}

func TestClassify_NilInputIsDefault(t *testing.T) {
	c := New(nil, nil, nil)
	got := c.Classify(TextOf(nil), 0)
	if got.CategoryID != catalog.DefaultID || got.Confidence != 0 {
		t.Errorf("Classify(nil) = %+v, want default with confidence 0", got)
	}
	if got.Explanation != "no classification signal" {
		t.Errorf("Explanation = %q", got.Explanation)
	}
	if got := c.Classify(TextOf(42), 0); got.Source != domain.SourceDefault {
		t.Errorf("Classify(42) source = %q, want default", got.Source)
	}
}

func TestClassify_IdempotentAndCached(t *testing.T) {
	calls := 0
	cache := NewCache(100)
	c := New(catalog.Default(), knownMerchants(&calls), cache)

	first := c.Classify("Starbucks", 0)
	second := c.Classify("Starbucks", 0)
	if first != second {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
	if calls != 1 {
		t.Errorf("merchant lookup calls = %d, want 1", calls)
	}
	if cache.Len() != 1 {
		t.Errorf("cache.Len() = %d, want 1", cache.Len())
	}

	// same text, different code is a different key
	c.Classify("Starbucks", 5812)
	if cache.Len() != 2 {
		t.Errorf("cache.Len() = %d, want 2", cache.Len())
	}

	uncached := New(catalog.Default(), knownMerchants(nil), nil)
	if got := uncached.Classify("Starbucks", 0); got != first {
		t.Errorf("uncached result %+v differs from cached %+v", got, first)
	}
}

func TestCache_FIFOEviction(t *testing.T) {
	cache := NewCache(10) // clamped up to MinCacheSize
	if cache.Size() != MinCacheSize {
		t.Fatalf("Size() = %d, want %d", cache.Size(), MinCacheSize)
	}
	if NewCache(5000).Size() != MaxCacheSize {
		t.Errorf("NewCache(5000).Size() should clamp to %d", MaxCacheSize)
	}

	for i := 0; i <= MinCacheSize; i++ {
		cache.put(cacheKey{text: fmt.Sprintf("m%d", i)}, domain.ClassificationResult{CategoryID: "dining"})
	}
	if cache.Len() != MinCacheSize {
		t.Errorf("Len() = %d, want %d", cache.Len(), MinCacheSize)
	}
	if _, ok := cache.get(cacheKey{text: "m0"}); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok := cache.get(cacheKey{text: fmt.Sprintf("m%d", MinCacheSize)}); !ok {
		t.Error("newest entry missing")
	}
}

func TestCache_NilIsNoop(t *testing.T) {
	var cache *Cache
	cache.put(cacheKey{text: "x"}, domain.ClassificationResult{})
	if _, ok := cache.get(cacheKey{text: "x"}); ok {
		t.Error("nil cache returned a hit")
	}
	if cache.Len() != 0 {
		t.Error("nil cache Len() != 0")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  STARBUCKS   STORE #1234 ", want: "starbucks store 1234"},
		{in: "Joe's Diner", want: "joes diner"},
		{in: "T-Mobile*Autopay", want: "t mobile autopay"},
		{in: "Café", want: "cafe"},
		{in: "ＡＭＡＺＯＮ", want: "amazon"},
		{in: "caf\xe9", want: "cafe"},
		{in: "", want: ""},
		{in: "\t\n", want: ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTextOf(t *testing.T) {
	s := "Target"
	tests := []struct {
		in   any
		want string
	}{
		{in: nil, want: ""},
		{in: "Target", want: "Target"},
		{in: &s, want: "Target"},
		{in: (*string)(nil), want: ""},
		{in: 123.4, want: ""},
		{in: map[string]any{"name": "x"}, want: ""},
	}
	for _, tt := range tests {
		if got := TextOf(tt.in); got != tt.want {
			t.Errorf("TextOf(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
