// cmd/bot/main.go
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"card-advisor/internal/advisor"
	"card-advisor/internal/bot"
	"card-advisor/internal/catalog"
	"card-advisor/internal/classifier"
	"card-advisor/internal/config"
	"card-advisor/internal/merchants"
	"card-advisor/internal/storage/postgres"
)

// Long-polling variant of the bot, for local runs without a public URL.
func main() {
	cfg := config.MustLoad()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if cfg.BotToken == "" {
		slog.Error("TELEGRAM_BOT_TOKEN not set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := pgxpool.New(ctx, cfg.DBConn)
	if err != nil {
		slog.Error("Failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := postgres.NewStorage(db)
	directory, err := merchants.LoadWithSeed(ctx, store, cfg.MerchantSeed)
	if err != nil {
		slog.Error("Failed to load merchants", "error", err)
		os.Exit(1)
	}
	cat := catalog.Default()
	b := bot.New(store, advisor.New(cat, classifier.New(cat, directory, classifier.NewCache(cfg.CacheSize))))

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		slog.Error("Failed to start bot", "error", err)
		os.Exit(1)
	}
	// polling does not work while a webhook is set
	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		slog.Warn("Failed to delete webhook", "error", err)
	}
	slog.Info("Bot started", "username", api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			api.StopReceivingUpdates()
			slog.Info("Bot stopped")
			return
		case update := <-updates:
			msg, ok := b.Reply(ctx, update)
			if !ok {
				continue
			}
			if _, err := api.Send(msg); err != nil {
				slog.Error("Failed to send reply", "error", err, "chat_id", msg.ChatID)
			}
		}
	}
}
