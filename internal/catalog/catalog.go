// Package catalog holds the fixed registry of purchase categories.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"card-advisor/internal/domain"
)

// DefaultID is the category of purchases nothing could classify.
const DefaultID = domain.DefaultRewardKey

// Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	entries []domain.Category
	byID    map[string]int
	aliases map[string]string // alias, id or subcategory id -> category id
	mcc     map[int][]string  // in catalog order
	parent  map[string]string // child id -> parent id
}

// New indexes entries. Category ids must be unique and parents must exist.
func New(entries []domain.Category) (*Catalog, error) {
	c := &Catalog{
		entries: make([]domain.Category, 0, len(entries)),
		byID:    make(map[string]int, len(entries)),
		aliases: make(map[string]string),
		mcc:     make(map[int][]string),
		parent:  make(map[string]string),
	}

	for _, e := range entries {
		id := aliasKey(e.ID)
		if id == "" {
			return nil, fmt.Errorf("category with empty id")
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("duplicate category id %q", id)
		}
		e.ID = id
		c.byID[id] = len(c.entries)
		c.entries = append(c.entries, e)
	}

	for _, e := range c.entries {
		if e.Parent != "" {
			if _, ok := c.byID[e.Parent]; !ok {
				return nil, fmt.Errorf("category %q: unknown parent %q", e.ID, e.Parent)
			}
			c.parent[e.ID] = e.Parent
		}
		for _, sub := range e.Subcategories {
			sub = aliasKey(sub)
			if _, isEntry := c.byID[sub]; !isEntry {
				c.parent[sub] = e.ID
			}
		}
	}

	// ids first so an alias can never shadow a real category
	for _, e := range c.entries {
		c.aliases[e.ID] = e.ID
	}
	for _, e := range c.entries {
		for _, a := range append(append([]string{}, e.Aliases...), e.Subcategories...) {
			k := aliasKey(a)
			if _, taken := c.aliases[k]; !taken && k != "" {
				c.aliases[k] = e.ID
			}
		}
		for _, code := range e.MccCodes {
			c.mcc[code] = append(c.mcc[code], e.ID)
		}
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(builtinCategories())
		if err != nil {
			panic(fmt.Sprintf("catalog: built-in categories invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

func (c *Catalog) Get(id string) (domain.Category, bool) {
	i, ok := c.byID[aliasKey(id)]
	if !ok {
		return domain.Category{}, false
	}
	return c.entries[i], true
}

// All returns the categories in catalog order.
func (c *Catalog) All() []domain.Category {
	out := make([]domain.Category, len(c.entries))
	copy(out, c.entries)
	return out
}

// Known reports whether id is a category or a subcategory of one.
func (c *Catalog) Known(id string) bool {
	id = aliasKey(id)
	if _, ok := c.byID[id]; ok {
		return true
	}
	_, ok := c.parent[id]
	return ok
}

// FindByAlias resolves a reward-table key, category id or subcategory id.
// Subcategory ids resolve to their parent category.
func (c *Catalog) FindByAlias(alias string) (domain.Category, bool) {
	id, ok := c.aliases[aliasKey(alias)]
	if !ok {
		return domain.Category{}, false
	}
	return c.Get(id)
}

// FindByKeyword returns the first category, in catalog order, with a keyword
// equal to text or contained in it as whole words.
func (c *Catalog) FindByKeyword(text string) (domain.Category, bool) {
	text = strings.Join(strings.Fields(strings.ToLower(text)), " ")
	if text == "" {
		return domain.Category{}, false
	}
	for _, e := range c.entries {
		for _, kw := range e.Keywords {
			if kw == text {
				return e, true
			}
		}
	}
	for _, e := range c.entries {
		for _, kw := range e.Keywords {
			if ContainsPhrase(text, kw) {
				return e, true
			}
		}
	}
	return domain.Category{}, false
}

// FindByMccCode returns the first category listing code.
func (c *Catalog) FindByMccCode(code int) (domain.Category, bool) {
	ids := c.mcc[code]
	if len(ids) == 0 {
		return domain.Category{}, false
	}
	return c.Get(ids[0])
}

// CategoriesForMcc returns every category id listing code, in catalog order.
func (c *Catalog) CategoriesForMcc(code int) []string {
	return append([]string(nil), c.mcc[code]...)
}

// Find tries alias, then keyword, then MCC code.
func (c *Catalog) Find(query string) (domain.Category, bool) {
	if cat, ok := c.FindByAlias(query); ok {
		return cat, true
	}
	if cat, ok := c.FindByKeyword(query); ok {
		return cat, true
	}
	if code, err := strconv.Atoi(strings.TrimSpace(query)); err == nil {
		return c.FindByMccCode(code)
	}
	return domain.Category{}, false
}

// ParentOf returns the parent of a category or subcategory id.
func (c *Catalog) ParentOf(id string) (string, bool) {
	p, ok := c.parent[aliasKey(id)]
	return p, ok
}

// AreCompatible is true when a == b or one is an ancestor of the other.
func (c *Catalog) AreCompatible(a, b string) bool {
	a, b = aliasKey(a), aliasKey(b)
	if a == "" || b == "" {
		return false
	}
	return a == b || c.isAncestor(a, b) || c.isAncestor(b, a)
}

func (c *Catalog) isAncestor(ancestor, id string) bool {
	// depth is bounded by the catalog size, which also stops a parent cycle
	for i := 0; i <= len(c.parent); i++ {
		p, ok := c.parent[id]
		if !ok {
			return false
		}
		if p == ancestor {
			return true
		}
		id = p
	}
	return false
}

// ContainsPhrase reports whether phrase occurs in text on word boundaries.
// Both are expected lower-cased with single spaces.
func ContainsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	padded := " " + text + " "
	return strings.Contains(padded, " "+phrase+" ")
}

// CanonicalID maps user spelling of an id ("Travel-Airfare") to catalog
// form ("travel_airfare"). The result need not be a known id.
func CanonicalID(s string) string { return aliasKey(s) }

func aliasKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	return s
}
