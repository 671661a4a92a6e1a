// Package strategy scores every card in a wallet against three independent
// objectives: rewards earned, interest cost, and interest-free float.
//
// Scorers never drop a card. An unusable card is reported with Eligible=false
// and a Warning; only a bad purchase amount or date fails the whole call.
package strategy

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"card-advisor/internal/cycle"
	"card-advisor/internal/domain"
	"card-advisor/internal/matcher"
)

// IneligibleGraceScore keeps cards without a grace period below every
// eligible card whatever its float.
const IneligibleGraceScore = -1000

const balanceExplanation = "carries a balance — grace period unavailable."

var hundred = decimal.NewFromInt(100)

type Engine struct {
	matcher *matcher.Matcher
}

func NewEngine(m *matcher.Matcher) *Engine {
	if m == nil {
		m = matcher.New(nil)
	}
	return &Engine{matcher: m}
}

// All runs the three scorers for one purchase.
func (e *Engine) All(cards []domain.Card, categoryID string, amount float64, purchaseDate time.Time) (domain.StrategySets, error) {
	rewards, err := e.ScoreRewards(cards, categoryID, amount)
	if err != nil {
		return domain.StrategySets{}, err
	}
	apr, err := e.ScoreApr(cards, amount)
	if err != nil {
		return domain.StrategySets{}, err
	}
	grace, err := e.ScoreGracePeriod(cards, purchaseDate)
	if err != nil {
		return domain.StrategySets{}, err
	}
	return domain.StrategySets{Rewards: rewards, APR: apr, GracePeriod: grace}, nil
}

// ScoreRewards: cashback = amount * multiplier / 100, rounded to cents.
// Only cards with no balance are eligible.
func (e *Engine) ScoreRewards(cards []domain.Card, categoryID string, amount float64) ([]domain.StrategyResult, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	out := make([]domain.StrategyResult, 0, len(cards))
	for _, card := range cards {
		out = append(out, e.rewardsFor(card, categoryID, amount))
	}
	rank(out)
	return out, nil
}

func (e *Engine) rewardsFor(card domain.Card, categoryID string, amount float64) domain.StrategyResult {
	r := domain.StrategyResult{
		Strategy: domain.StrategyRewards,
		CardID:   card.ID,
		CardName: card.Name,
	}
	if !card.GraceEligible() {
		r.Explanation = balanceExplanation
		return r
	}

	match, err := e.matcher.Resolve(card.Rewards, categoryID)
	if err != nil {
		slog.Debug("reward table fallback", "card_id", card.ID, "category", categoryID, "error", err)
		r.Warning = fmt.Sprintf("reward table unusable (%v); assuming %gx", err, matcher.HardFallback)
		match = matcher.Match{Multiplier: matcher.HardFallback, Source: matcher.MatchHardDefault}
	}

	cashback := percentOf(amount, match.Multiplier)
	r.Eligible = true
	r.Multiplier = match.Multiplier
	r.RewardKey = match.Key
	r.Cashback = cashback.InexactFloat64()
	r.ProjectedAnnual = cashback.Mul(decimal.NewFromInt(12)).InexactFloat64()
	r.Score = r.Cashback
	r.Explanation = rewardsExplanation(match, categoryID, cashback)

	d := match.Descriptor
	if d.Kind == domain.KindRotating && d.MaxPerPeriod != nil && amount > *d.MaxPerPeriod {
		r.Warning = joinWarnings(r.Warning, fmt.Sprintf("rotating bonus %q is capped at $%.2f per period", match.Key, *d.MaxPerPeriod))
	}
	return r
}

func rewardsExplanation(m matcher.Match, categoryID string, cashback decimal.Decimal) string {
	switch m.Source {
	case matcher.MatchExact:
		return fmt.Sprintf("%gx on %s earns $%s", m.Multiplier, categoryID, cashback.StringFixed(2))
	case matcher.MatchHardDefault:
		return fmt.Sprintf("no matching reward entry, base %gx earns $%s", m.Multiplier, cashback.StringFixed(2))
	case matcher.MatchDefault:
		return fmt.Sprintf("default %gx earns $%s", m.Multiplier, cashback.StringFixed(2))
	}
	return fmt.Sprintf("%gx via %s entry %q earns $%s", m.Multiplier, m.Source, m.Key, cashback.StringFixed(2))
}

// ScoreApr prices carrying amount for a month and a year. Every card with a
// sane APR is eligible; the score is the negated monthly interest.
func (e *Engine) ScoreApr(cards []domain.Card, amount float64) ([]domain.StrategyResult, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	out := make([]domain.StrategyResult, 0, len(cards))
	for _, card := range cards {
		r := domain.StrategyResult{
			Strategy: domain.StrategyAPR,
			CardID:   card.ID,
			CardName: card.Name,
		}
		if math.IsNaN(card.APR) || math.IsInf(card.APR, 0) || card.APR < 0 || card.APR > 100 {
			r.Explanation = "APR unavailable"
			r.Warning = fmt.Sprintf("APR %v is outside 0-100", card.APR)
			out = append(out, r)
			continue
		}

		annual := percentOf(amount, card.APR)
		monthly := decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(card.APR)).Div(hundred).Div(decimal.NewFromInt(12)).Round(2)

		r.Eligible = true
		r.MonthlyInterest = monthly.InexactFloat64()
		r.AnnualInterest = annual.InexactFloat64()
		r.Score = -r.MonthlyInterest
		r.Explanation = fmt.Sprintf("%.2f%% APR costs $%s a month, $%s a year if carried", card.APR, monthly.StringFixed(2), annual.StringFixed(2))
		out = append(out, r)
	}
	rank(out)
	return out, nil
}

// ScoreGracePeriod scores float days until the due date of the statement the
// purchase lands on. Cards carrying a balance score IneligibleGraceScore.
func (e *Engine) ScoreGracePeriod(cards []domain.Card, purchaseDate time.Time) ([]domain.StrategyResult, error) {
	if purchaseDate.IsZero() {
		return nil, fmt.Errorf("%w: purchase date is required", domain.ErrContractViolation)
	}
	out := make([]domain.StrategyResult, 0, len(cards))
	for _, card := range cards {
		out = append(out, graceFor(card, purchaseDate))
	}
	rank(out)
	return out, nil
}

func graceFor(card domain.Card, purchaseDate time.Time) domain.StrategyResult {
	r := domain.StrategyResult{
		Strategy: domain.StrategyGracePeriod,
		CardID:   card.ID,
		CardName: card.Name,
		Score:    IneligibleGraceScore,
	}
	if !card.GraceEligible() {
		r.Explanation = balanceExplanation
		r.Warning = fmt.Sprintf("balance of $%.2f means new purchases accrue interest from day one", card.Balance)
		return r
	}

	closeDate, due, err := cycle.NextPaymentDue(card.StatementCloseDay, card.PaymentDueDay, purchaseDate)
	if err != nil {
		slog.Debug("card cycle unusable", "card_id", card.ID, "error", err)
		r.Explanation = "statement cycle unknown"
		r.Warning = err.Error()
		return r
	}
	days, _, err := cycle.FloatDays(purchaseDate, card.StatementCloseDay, card.PaymentDueDay)
	if err != nil {
		r.Explanation = "statement cycle unknown"
		r.Warning = err.Error()
		return r
	}

	r.Eligible = true
	r.FloatDays = days
	r.DueDate = &due
	r.Score = float64(days)
	r.Explanation = fmt.Sprintf("statement closes %s, payment due %s: %d days of float",
		closeDate.Format(time.DateOnly), due.Format(time.DateOnly), days)
	r.Warning = cycle.GraceWarning(cycle.GracePeriod(closeDate, due))
	return r
}

// rank orders eligible results first, then by score, keeping input order for
// ties, and numbers them from 1.
func rank(results []domain.StrategyResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Eligible != results[j].Eligible {
			return results[i].Eligible
		}
		return results[i].Score > results[j].Score
	})
	for i := range results {
		results[i].Rank = i + 1
	}
}

// percentOf returns amount * pct / 100 rounded half away from zero to cents.
func percentOf(amount, pct float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(pct)).Div(hundred).Round(2)
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: amount %v is not a number", domain.ErrContractViolation, amount)
	}
	if amount < 0 {
		return fmt.Errorf("%w: negative amount %.2f", domain.ErrContractViolation, amount)
	}
	return nil
}

func joinWarnings(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + "; " + b
}
