// Package advisor is the entry point the bot and the HTTP API talk to. It
// wires classification, reward matching, scoring and profile detection into
// one recommendation per purchase.
package advisor

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"card-advisor/internal/catalog"
	"card-advisor/internal/classifier"
	"card-advisor/internal/cycle"
	"card-advisor/internal/domain"
	"card-advisor/internal/matcher"
	"card-advisor/internal/profile"
	"card-advisor/internal/strategy"
)

type Advisor struct {
	catalog    *catalog.Catalog
	classifier *classifier.Classifier
	engine     *strategy.Engine
	now        func() time.Time
}

type Option func(*Advisor)

// WithClock sets the clock used when a purchase comes without a date.
func WithClock(now func() time.Time) Option {
	return func(a *Advisor) { a.now = now }
}

// New builds an advisor over cat. A nil classifier gets one with a default
// sized cache and no merchant directory.
func New(cat *catalog.Catalog, cls *classifier.Classifier, opts ...Option) *Advisor {
	if cat == nil {
		cat = catalog.Default()
	}
	if cls == nil {
		cls = classifier.New(cat, nil, classifier.NewCache(classifier.DefaultCacheSize))
	}
	a := &Advisor{
		catalog:    cat,
		classifier: cls,
		engine:     strategy.NewEngine(matcher.New(cat)),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Advisor) Classify(merchantText string, mcc int) domain.ClassificationResult {
	return a.classifier.Classify(merchantText, mcc)
}

// confidenceNamedCategory matches the classifier's exact-keyword score.
const confidenceNamedCategory = 0.90

// Resolve turns a purchase query into a category. A query naming a category
// (id or alias) is taken as is; anything else goes through the classifier.
func (a *Advisor) Resolve(query string, mcc int) domain.ClassificationResult {
	q := strings.TrimSpace(query)
	if q != "" {
		id := catalog.CanonicalID(q)
		if _, isEntry := a.catalog.Get(id); !isEntry && a.catalog.Known(id) {
			// subcategory ids keep their own reward entries
			return named(q, id)
		}
		if cat, ok := a.catalog.FindByAlias(q); ok {
			return named(q, cat.ID)
		}
	}
	return a.classifier.Classify(query, mcc)
}

func named(query, id string) domain.ClassificationResult {
	return domain.ClassificationResult{
		CategoryID:  id,
		Confidence:  confidenceNamedCategory,
		Source:      domain.SourceKeyword,
		Explanation: fmt.Sprintf("%q names category %s", query, id),
	}
}

// GetAllStrategies classifies the purchase and scores every card under all
// three strategies. A zero purchaseDate means today.
func (a *Advisor) GetAllStrategies(cards []domain.Card, query string, amount float64, purchaseDate time.Time, mcc int) (domain.Recommendation, error) {
	if purchaseDate.IsZero() {
		purchaseDate = a.now()
	}
	category := a.Resolve(query, mcc)

	sets, err := a.engine.All(cards, category.CategoryID, amount, purchaseDate)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("score strategies: %w", err)
	}
	slog.Debug("strategies scored", "category", category.CategoryID, "cards", len(cards), "amount", amount)

	return domain.Recommendation{
		Category:     category,
		Amount:       amount,
		PurchaseDate: purchaseDate,
		Strategies:   sets,
		Profile:      profile.Detect(cards),
	}, nil
}

func (a *Advisor) DetectProfile(cards []domain.Card) domain.UserProfile {
	return profile.Detect(cards)
}

func (a *Advisor) StatementClose(closeDay int, ref time.Time) (time.Time, error) {
	return cycle.StatementClose(closeDay, ref)
}

func (a *Advisor) PaymentDue(closeDay, dueDay int, closeDate time.Time) (time.Time, error) {
	return cycle.PaymentDue(closeDay, dueDay, closeDate)
}

// Grace returns the grace length between a close and its due date, with a
// data-quality warning when it is outside the usual range.
func (a *Advisor) Grace(closeDate, dueDate time.Time) (int, string) {
	days := cycle.GracePeriod(closeDate, dueDate)
	return days, cycle.GraceWarning(days)
}

// CycleInfo describes the statement cycle covering a reference date.
type CycleInfo struct {
	StatementClose time.Time `json:"statement_close"`
	PaymentDue     time.Time `json:"payment_due"`
	GraceDays      int       `json:"grace_days"`
	Warning        string    `json:"warning,omitempty"`
}

// Cycle computes the most recent close on or before ref and its due date.
// A zero ref means today.
func (a *Advisor) Cycle(closeDay, dueDay int, ref time.Time) (CycleInfo, error) {
	if ref.IsZero() {
		ref = a.now()
	}
	closeDate, err := cycle.StatementClose(closeDay, ref)
	if err != nil {
		return CycleInfo{}, err
	}
	due, err := cycle.PaymentDue(closeDay, dueDay, closeDate)
	if err != nil {
		return CycleInfo{}, err
	}
	days, warning := a.Grace(closeDate, due)
	return CycleInfo{StatementClose: closeDate, PaymentDue: due, GraceDays: days, Warning: warning}, nil
}

// Catalog exposes the category registry the advisor classifies against.
func (a *Advisor) Catalog() *catalog.Catalog {
	return a.catalog
}
