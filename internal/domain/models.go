// internal/domain/models.go
package domain

import "time"

// Card: одна карта из кошелька пользователя.
// Balance above CreditLimit is allowed; only Balance gates the grace period.
type Card struct {
	ID                string      `json:"id"`
	UserID            int64       `json:"-"`
	Name              string      `json:"name"`
	Balance           float64     `json:"current_balance"`
	CreditLimit       float64     `json:"credit_limit"`
	APR               float64     `json:"apr"`
	StatementCloseDay int         `json:"statement_close_day"`
	PaymentDueDay     int         `json:"payment_due_day"`
	GracePeriodDays   int         `json:"grace_period_days"`
	Rewards           RewardTable `json:"reward_table"`
}

// GraceEligible reports whether new purchases on the card stay interest free.
// Zero and credit (negative) balances qualify, anything above zero does not.
func (c Card) GraceEligible() bool {
	return c.Balance <= 0
}

// Utilization returns balance/limit; ok is false when the limit is not positive.
func (c Card) Utilization() (ratio float64, ok bool) {
	if c.CreditLimit <= 0 {
		return 0, false
	}
	return c.Balance / c.CreditLimit, true
}

type Category struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Keywords      []string `json:"keywords"`
	MccCodes      []int    `json:"mcc_codes"`
	Aliases       []string `json:"aliases"`
	Parent        string   `json:"parent,omitempty"`
	Subcategories []string `json:"subcategories,omitempty"`
}

type ClassificationSource string

const (
	SourceMccCode  ClassificationSource = "mcc-code"
	SourceKeyword  ClassificationSource = "keyword"
	SourceDatabase ClassificationSource = "database"
	SourceDefault  ClassificationSource = "default"
)

// ClassificationResult: итог классификации покупки.
type ClassificationResult struct {
	CategoryID  string               `json:"category_id"`
	Confidence  float64              `json:"confidence"`
	Source      ClassificationSource `json:"source"`
	Explanation string               `json:"explanation"`
	Warning     string               `json:"warning,omitempty"`
}

// KnownMerchant is one row of the merchant directory.
type KnownMerchant struct {
	Name       string  `json:"name" yaml:"name"`
	CategoryID string  `json:"category" yaml:"category"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

type Strategy string

const (
	StrategyRewards     Strategy = "rewards"
	StrategyAPR         Strategy = "apr"
	StrategyGracePeriod Strategy = "grace_period"
)

// StrategyResult: оценка одной карты по одной стратегии.
// Score units depend on Strategy: dollars earned, negated monthly interest, or float days.
type StrategyResult struct {
	Strategy    Strategy `json:"strategy"`
	CardID      string   `json:"card_id"`
	CardName    string   `json:"card_name"`
	Rank        int      `json:"rank"`
	Score       float64  `json:"score"`
	Eligible    bool     `json:"eligible"`
	Explanation string   `json:"explanation"`
	Warning     string   `json:"warning,omitempty"`

	// rewards
	Multiplier      float64 `json:"multiplier"`
	RewardKey       string  `json:"reward_key,omitempty"`
	Cashback        float64 `json:"cashback"`
	ProjectedAnnual float64 `json:"projected_annual"`

	// apr
	MonthlyInterest float64 `json:"monthly_interest"`
	AnnualInterest  float64 `json:"annual_interest"`

	// grace period
	FloatDays int        `json:"float_days"`
	DueDate   *time.Time `json:"due_date,omitempty"`
}

type ProfileType string

const (
	ProfileRewardsMaximizer ProfileType = "REWARDS_MAXIMIZER"
	ProfileAPRMinimizer     ProfileType = "APR_MINIMIZER"
	ProfileBalanced         ProfileType = "BALANCED"
)

type UserProfile struct {
	Type        ProfileType `json:"profile"`
	Priorities  []Strategy  `json:"priorities"`
	Description string      `json:"description"`
}

// StrategySets holds the three ranked result sets.
type StrategySets struct {
	Rewards     []StrategyResult `json:"rewards"`
	APR         []StrategyResult `json:"apr"`
	GracePeriod []StrategyResult `json:"grace_period"`
}

// Recommendation: полный ответ по одной покупке.
type Recommendation struct {
	Category     ClassificationResult `json:"category"`
	Amount       float64              `json:"amount"`
	PurchaseDate time.Time            `json:"purchase_date"`
	Strategies   StrategySets         `json:"strategies"`
	Profile      UserProfile          `json:"profile"`
}
