package bot

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"card-advisor/internal/advisor"
	"card-advisor/internal/domain"
)

func renderCards(cards []domain.Card) string {
	lines := []string{"💳 *Your cards*"}
	for _, c := range cards {
		status := "✅ paid off"
		if !c.GraceEligible() {
			status = fmt.Sprintf("⚠️ balance $%.2f", c.Balance)
		}
		lines = append(lines, fmt.Sprintf("\n*%s* — %s\nAPR %.2f%%, closes on %d, due on %d",
			md(c.Name), status, c.APR, c.StatementCloseDay, c.PaymentDueDay))
	}
	return strings.Join(lines, "\n")
}

func renderRecommendation(rec domain.Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🛒 *$%.2f* at *%s*", rec.Amount, md(rec.Category.CategoryID))
	if rec.Category.Confidence < 1 {
		fmt.Fprintf(&b, " (%.0f%% sure)", rec.Category.Confidence*100)
	}
	b.WriteString("\n")
	if rec.Category.Warning != "" {
		fmt.Fprintf(&b, "_%s_\n", md(rec.Category.Warning))
	}

	for _, s := range rec.Profile.Priorities {
		b.WriteString("\n")
		switch s {
		case domain.StrategyRewards:
			b.WriteString("🎁 *Rewards*\n")
			writeTop(&b, rec.Strategies.Rewards, func(r domain.StrategyResult) string {
				return fmt.Sprintf("$%.2f back (%gx)", r.Cashback, r.Multiplier)
			})
		case domain.StrategyAPR:
			b.WriteString("📉 *If you carry it*\n")
			writeTop(&b, rec.Strategies.APR, func(r domain.StrategyResult) string {
				return fmt.Sprintf("$%.2f interest a month", r.MonthlyInterest)
			})
		case domain.StrategyGracePeriod:
			b.WriteString("⏳ *Float*\n")
			writeTop(&b, rec.Strategies.GracePeriod, func(r domain.StrategyResult) string {
				due := ""
				if r.DueDate != nil {
					due = ", due " + r.DueDate.Format(time.DateOnly)
				}
				return fmt.Sprintf("%d days%s", r.FloatDays, due)
			})
		}
	}
	fmt.Fprintf(&b, "\n_%s_", md(rec.Profile.Description))
	return b.String()
}

// writeTop lists at most three results; ineligible ones show why.
func writeTop(b *strings.Builder, results []domain.StrategyResult, detail func(domain.StrategyResult) string) {
	const top = 3
	for i, r := range results {
		if i == top {
			break
		}
		if r.Eligible {
			fmt.Fprintf(b, "%d. %s — %s\n", r.Rank, md(r.CardName), detail(r))
		} else {
			fmt.Fprintf(b, "%d. %s — %s\n", r.Rank, md(r.CardName), md(r.Explanation))
		}
		if r.Warning != "" {
			fmt.Fprintf(b, "   ⚠️ %s\n", md(r.Warning))
		}
	}
}

func renderProfile(p domain.UserProfile) string {
	order := make([]string, len(p.Priorities))
	for i, s := range p.Priorities {
		order[i] = string(s)
	}
	return fmt.Sprintf("👤 *%s*\n%s\nOrder: %s", md(string(p.Type)), md(p.Description), md(strings.Join(order, " → ")))
}

func renderCycle(info advisor.CycleInfo) string {
	out := fmt.Sprintf("🗓 Statement closed *%s*, payment due *%s* (%d days)",
		info.StatementClose.Format(time.DateOnly), info.PaymentDue.Format(time.DateOnly), info.GraceDays)
	if info.Warning != "" {
		out += "\n⚠️ " + md(info.Warning)
	}
	return out
}

func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}
