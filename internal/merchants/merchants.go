// internal/merchants/merchants.go
package merchants

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"card-advisor/internal/classifier"
	"card-advisor/internal/domain"
	"card-advisor/internal/storage"
)

// Table: справочник известных мерчантов по нормализованному имени.
// Built once and read-only afterwards.
type Table struct {
	byName map[string]classifier.MerchantMatch
}

func NewTable(rows []domain.KnownMerchant) *Table {
	t := &Table{byName: make(map[string]classifier.MerchantMatch, len(rows))}
	for _, r := range rows {
		key := classifier.Normalize(r.Name)
		if key == "" || r.CategoryID == "" {
			continue
		}
		t.byName[key] = classifier.MerchantMatch{CategoryID: r.CategoryID, Confidence: r.Confidence}
	}
	return t
}

// Lookup tries the full name, then drops trailing words so that
// "starbucks store 1234" still finds "starbucks".
func (t *Table) Lookup(name string) (classifier.MerchantMatch, bool) {
	if t == nil || len(t.byName) == 0 {
		return classifier.MerchantMatch{}, false
	}
	words := strings.Fields(name)
	for n := len(words); n > 0; n-- {
		if m, ok := t.byName[strings.Join(words[:n], " ")]; ok {
			return m, true
		}
	}
	return classifier.MerchantMatch{}, false
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byName)
}

// Load builds a table from storage rows, falling back to seed rows when the
// database has none.
func Load(ctx context.Context, ms storage.MerchantStorage, seed []domain.KnownMerchant) (*Table, error) {
	rows, err := ms.ListMerchants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list merchants: %w", err)
	}
	if len(rows) == 0 {
		rows = seed
	}
	return NewTable(rows), nil
}

// LoadWithSeed is Load with the seed read from seedPath. A missing seed file
// only means there is no fallback.
func LoadWithSeed(ctx context.Context, ms storage.MerchantStorage, seedPath string) (*Table, error) {
	var seed []domain.KnownMerchant
	if seedPath != "" {
		rows, err := LoadSeedFile(seedPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			slog.Warn("merchant seed file not found", "path", seedPath)
		case err != nil:
			return nil, err
		default:
			seed = rows
		}
	}
	t, err := Load(ctx, ms, seed)
	if err != nil {
		return nil, err
	}
	slog.Info("merchant directory loaded", "merchants", t.Len())
	return t, nil
}

type seedFile struct {
	Merchants []domain.KnownMerchant `yaml:"merchants"`
}

// LoadSeedFile reads a YAML file of the form
//
//	merchants:
//	  - name: Starbucks
//	    category: dining
//	    confidence: 0.98
func LoadSeedFile(path string) ([]domain.KnownMerchant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) ([]domain.KnownMerchant, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for i, m := range f.Merchants {
		if strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("merchant #%d: name is required", i+1)
		}
		if strings.TrimSpace(m.CategoryID) == "" {
			return nil, fmt.Errorf("merchant %q: category is required", m.Name)
		}
		if m.Confidence < 0 || m.Confidence > 1 {
			return nil, fmt.Errorf("merchant %q: confidence %v not in [0,1]", m.Name, m.Confidence)
		}
	}
	return f.Merchants, nil
}
