// internal/bot/bot.go
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"card-advisor/internal/advisor"
	"card-advisor/internal/domain"
	"card-advisor/internal/storage"
)

const helpText = "💳 *Card advisor*\n\n" +
	"Commands:\n" +
	"`/cards` — your cards\n" +
	"`/best 120 Whole Foods` — which card to use for a purchase\n" +
	"`/profile` — how you pay off your cards\n" +
	"`/cycle 25 20` — statement close and due dates for close day 25, due day 20"

// Bot answers chat commands. Telegram user id is the storage user id.
// Used by both the webhook in cmd/api and long polling in cmd/bot.
type Bot struct {
	store   storage.CardStorage
	advisor *advisor.Advisor
}

func New(store storage.CardStorage, adv *advisor.Advisor) *Bot {
	return &Bot{store: store, advisor: adv}
}

// Reply builds the answer to an update; ok is false when there is nothing
// to answer.
func (b *Bot) Reply(ctx context.Context, update tgbotapi.Update) (tgbotapi.MessageConfig, bool) {
	if update.Message == nil || update.Message.From == nil {
		return tgbotapi.MessageConfig{}, false
	}
	userID := update.Message.From.ID
	text := SanitizeInput(update.Message.Text)
	slog.Info("📥 Получено сообщение", "user_id", userID, "text", text)

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, b.Handle(ctx, userID, text))
	msg.ParseMode = tgbotapi.ModeMarkdown
	return msg, true
}

// Handle runs one command and returns the Markdown answer.
func (b *Bot) Handle(ctx context.Context, userID int64, text string) string {
	cmd, args := splitCommand(text)

	var (
		out string
		err error
	)
	switch cmd {
	case "/start", "/help":
		out = helpText
	case "/cards":
		out, err = b.cards(ctx, userID)
	case "/best":
		out, err = b.best(ctx, userID, args)
	case "/profile":
		out, err = b.profile(ctx, userID)
	case "/cycle":
		out, err = b.cycle(args)
	default:
		out = "Unknown command. Try /help"
	}

	if err != nil {
		var ue usageError
		if errors.As(err, &ue) {
			return "❌ " + ue.Error()
		}
		if errors.Is(err, domain.ErrContractViolation) {
			return "❌ " + err.Error()
		}
		slog.Error("bot command failed", "error", err, "user_id", userID, "command", cmd)
		return "❌ Something went wrong, try again later"
	}
	return out
}

func (b *Bot) cards(ctx context.Context, userID int64) (string, error) {
	cards, err := b.store.ListCards(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(cards) == 0 {
		return "📭 No cards yet. Add them through the API.", nil
	}
	return renderCards(cards), nil
}

func (b *Bot) best(ctx context.Context, userID int64, args []string) (string, error) {
	if len(args) < 2 {
		return "", usageError("Usage: /best <amount> <merchant>")
	}
	amount, err := ParseAmount(args[0])
	if err != nil {
		return "", usageError(err.Error())
	}
	cards, err := b.store.ListCards(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(cards) == 0 {
		return "📭 No cards yet. Add them through the API.", nil
	}

	rec, err := b.advisor.GetAllStrategies(cards, strings.Join(args[1:], " "), amount, time.Time{}, 0)
	if err != nil {
		return "", err
	}
	return renderRecommendation(rec), nil
}

func (b *Bot) profile(ctx context.Context, userID int64) (string, error) {
	cards, err := b.store.ListCards(ctx, userID)
	if err != nil {
		return "", err
	}
	return renderProfile(b.advisor.DetectProfile(cards)), nil
}

func (b *Bot) cycle(args []string) (string, error) {
	if len(args) != 2 {
		return "", usageError("Usage: /cycle <close_day> <due_day>")
	}
	closeDay, err1 := strconv.Atoi(args[0])
	dueDay, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return "", usageError("days must be numbers 1-31")
	}
	info, err := b.advisor.Cycle(closeDay, dueDay, time.Time{})
	if err != nil {
		return "", err
	}
	return renderCycle(info), nil
}

type usageError string

func (e usageError) Error() string { return string(e) }

// ParseAmount accepts "120", "$1,250.50" and "99.9". Negative or empty
// amounts are rejected.
func ParseAmount(s string) (float64, error) {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if clean == "" {
		return 0, fmt.Errorf("amount is required")
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("amount must not be negative")
	}
	return v, nil
}

// SanitizeInput replaces every whitespace rune with a plain space and
// collapses runs of them.
func SanitizeInput(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// splitCommand returns the lower-cased command, without any @botname
// suffix, and its arguments.
func splitCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", nil
	}
	cmd := strings.ToLower(fields[0])
	if i := strings.IndexByte(cmd, '@'); i > 0 {
		cmd = cmd[:i]
	}
	return cmd, fields[1:]
}
