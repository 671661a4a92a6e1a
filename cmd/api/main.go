// cmd/api/main.go
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"card-advisor/internal/advisor"
	"card-advisor/internal/auth"
	"card-advisor/internal/bot"
	"card-advisor/internal/catalog"
	"card-advisor/internal/classifier"
	"card-advisor/internal/config"
	"card-advisor/internal/handler"
	"card-advisor/internal/merchants"
	"card-advisor/internal/middleware"
	"card-advisor/internal/storage/postgres"
)

func main() {
	cfg := config.MustLoad()

	// Настройка логгера
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DBConn)
	if err != nil {
		slog.Error("Не удалось подключиться к БД", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := postgres.NewStorage(pool)

	directory, err := merchants.LoadWithSeed(ctx, store, cfg.MerchantSeed)
	if err != nil {
		slog.Error("Не удалось загрузить справочник мерчантов", "error", err)
		os.Exit(1)
	}
	cat := catalog.Default()
	adv := advisor.New(cat, classifier.New(cat, directory, classifier.NewCache(cfg.CacheSize)))

	// JWT
	tokenService := auth.NewTokenService(cfg)

	// Gin
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Telegram webhook
	if cfg.BotToken != "" {
		if err := registerWebhook(router, cfg, bot.New(store, adv)); err != nil {
			slog.Error("Не удалось инициализировать Telegram бота", "error", err)
			os.Exit(1)
		}
	}

	router.POST("/api/v1/login", func(c *gin.Context) {
		var req struct {
			UserID int64 `json:"user_id" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
			return
		}
		token, err := tokenService.GenerateToken(req.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	})

	cards := handler.NewCardHandler(store)
	advice := handler.NewAdvisorHandler(store, adv)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	{
		v1.GET("/cards", cards.ListCards)
		v1.GET("/cards/:id", cards.GetCard)
		v1.PUT("/cards", cards.SaveCard)
		v1.DELETE("/cards/:id", cards.DeleteCard)
		v1.POST("/classify", advice.Classify)
		v1.POST("/recommend", advice.Recommend)
		v1.GET("/profile", advice.Profile)
		v1.GET("/cycle", advice.Cycle)
	}

	slog.Info("🚀 Сервер запущен", "port", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		slog.Error("Сервер завершил работу с ошибкой", "error", err)
	}
}

func registerWebhook(router *gin.Engine, cfg config.Config, b *bot.Bot) error {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return err
	}

	webhookURL := cfg.WebhookBaseURL + "/telegram"
	if _, err := api.MakeRequest("setWebhook", tgbotapi.Params{"url": webhookURL}); err != nil {
		return err
	}
	slog.Info("Telegram webhook установлен", "url", webhookURL)

	router.POST("/telegram", func(c *gin.Context) {
		var update tgbotapi.Update
		if err := c.ShouldBindJSON(&update); err != nil {
			slog.Error("Ошибка парсинга обновления", "error", err)
			c.Status(http.StatusBadRequest)
			return
		}
		if msg, ok := b.Reply(c.Request.Context(), update); ok {
			if _, err := api.Send(msg); err != nil {
				slog.Error("Не удалось отправить ответ", "error", err)
			}
		}
		c.Status(http.StatusOK)
	})
	return nil
}
