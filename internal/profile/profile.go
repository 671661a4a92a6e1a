// Package profile guesses how a user pays off their cards, which decides the
// order strategies are presented in. It never changes scores.
package profile

import (
	"card-advisor/internal/domain"
)

const (
	lowUtilization     = 0.10
	highAvgUtilization = 0.30
	highCardUtil       = 0.50
)

// Stats are the wallet aggregates the rules look at.
type Stats struct {
	Cards              int     `json:"cards"`
	CardsWithBalance   int     `json:"cards_with_balance"`
	AverageUtilization float64 `json:"average_utilization"`
	HighUtilization    int     `json:"high_utilization_cards"`
}

// Metrics computes Stats. Cards without a positive limit are left out of the
// utilization average.
func Metrics(cards []domain.Card) Stats {
	s := Stats{Cards: len(cards)}
	var (
		sum     float64
		limited int
	)
	for _, c := range cards {
		if c.Balance > 0 {
			s.CardsWithBalance++
		}
		u, ok := c.Utilization()
		if !ok {
			continue
		}
		sum += u
		limited++
		if u > highCardUtil {
			s.HighUtilization++
		}
	}
	if limited > 0 {
		s.AverageUtilization = sum / float64(limited)
	}
	return s
}

// Detect applies, in order:
//
//	no balances or average utilization < 10%     -> REWARDS_MAXIMIZER
//	any card over 50% or average utilization > 30% -> APR_MINIMIZER
//	otherwise                                      -> BALANCED
func Detect(cards []domain.Card) domain.UserProfile {
	s := Metrics(cards)
	switch {
	case s.CardsWithBalance == 0 || s.AverageUtilization < lowUtilization:
		return build(domain.ProfileRewardsMaximizer)
	case s.HighUtilization > 0 || s.AverageUtilization > highAvgUtilization:
		return build(domain.ProfileAPRMinimizer)
	default:
		return build(domain.ProfileBalanced)
	}
}

// Priorities returns a fresh copy of the strategy order for t.
func Priorities(t domain.ProfileType) []domain.Strategy {
	switch t {
	case domain.ProfileRewardsMaximizer:
		return []domain.Strategy{domain.StrategyRewards, domain.StrategyGracePeriod, domain.StrategyAPR}
	case domain.ProfileAPRMinimizer:
		return []domain.Strategy{domain.StrategyAPR, domain.StrategyRewards, domain.StrategyGracePeriod}
	default:
		return []domain.Strategy{domain.StrategyRewards, domain.StrategyAPR, domain.StrategyGracePeriod}
	}
}

func build(t domain.ProfileType) domain.UserProfile {
	return domain.UserProfile{
		Type:        t,
		Priorities:  Priorities(t),
		Description: descriptions[t],
	}
}

var descriptions = map[domain.ProfileType]string{
	domain.ProfileRewardsMaximizer: "Pays in full: pick the card that earns the most and keeps the longest float.",
	domain.ProfileAPRMinimizer:     "Carries significant balances: interest cost matters more than rewards.",
	domain.ProfileBalanced:         "Carries small balances: earn rewards, but keep an eye on interest.",
}
