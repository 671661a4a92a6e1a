// internal/handler/cards.go
package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"card-advisor/internal/cycle"
	"card-advisor/internal/domain"
	"card-advisor/internal/middleware"
	"card-advisor/internal/storage"
	val "card-advisor/internal/validator"
)

type CardHandler struct {
	store storage.CardStorage
	now   func() time.Time
}

func NewCardHandler(store storage.CardStorage) *CardHandler {
	return &CardHandler{store: store, now: time.Now}
}

// ListCards godoc
// @Summary List the user's cards
// @Success 200 {array} domain.Card
// @Router /api/v1/cards [get]
func (h *CardHandler) ListCards(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	cards, err := h.store.ListCards(c.Request.Context(), userID)
	if err != nil {
		slog.Error("ListCards failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cards"})
		return
	}
	if cards == nil {
		cards = []domain.Card{}
	}
	c.JSON(http.StatusOK, cards)
}

// GetCard godoc
// @Summary Get one card
// @Param id path string true "Card id"
// @Success 200 {object} domain.Card
// @Failure 404 {object} map[string]string
// @Router /api/v1/cards/{id} [get]
func (h *CardHandler) GetCard(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	cardID := c.Param("id")

	card, err := h.store.GetCard(c.Request.Context(), userID, cardID)
	if err != nil {
		slog.Error("GetCard failed", "error", err, "user_id", userID, "card_id", cardID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load card"})
		return
	}
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}
	c.JSON(http.StatusOK, card)
}

// SaveCard godoc
// @Summary Create or update a card
// @Description The grace period is derived from the close and due days.
// @Param request body CardRequest true "Card"
// @Success 200 {object} SaveCardResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/cards [put]
func (h *CardHandler) SaveCard(c *gin.Context) {
	var req CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateRewardTable(req.RewardTable); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	grace, err := cycle.GraceDays(req.StatementCloseDay, req.PaymentDueDay, h.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card := domain.Card{
		ID:                req.ID,
		Name:              req.Name,
		Balance:           req.CurrentBalance,
		CreditLimit:       req.CreditLimit,
		APR:               req.APR,
		StatementCloseDay: req.StatementCloseDay,
		PaymentDueDay:     req.PaymentDueDay,
		GracePeriodDays:   grace,
		Rewards:           req.RewardTable,
	}

	saved, err := h.store.SaveCard(c.Request.Context(), userID, card)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		slog.Error("SaveCard failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save card"})
		return
	}

	slog.Info("Card saved", "user_id", userID, "card_id", saved.ID, "grace_days", grace)
	c.JSON(http.StatusOK, SaveCardResponse{Card: saved, Warning: cycle.GraceWarning(grace)})
}

// DeleteCard godoc
// @Summary Delete a card
// @Param id path string true "Card id"
// @Router /api/v1/cards/{id} [delete]
func (h *CardHandler) DeleteCard(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	cardID := c.Param("id")

	if err := h.store.DeleteCard(c.Request.Context(), userID, cardID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		slog.Error("DeleteCard failed", "error", err, "user_id", userID, "card_id", cardID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// validateRewardTable rejects entries that would only ever score as 1.0x.
func validateRewardTable(t domain.RewardTable) error {
	var bad []string
	for _, key := range t.Keys() {
		if _, err := t[key].Multiplier(); err != nil {
			bad = append(bad, key)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	return fmt.Errorf("invalid input: reward_table entries %s are malformed", strings.Join(bad, ", "))
}

func requireUser(c *gin.Context) (int64, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "user_id missing"})
		return 0, false
	}
	return userID, true
}

// === DTO ===

type CardRequest struct {
	ID                string             `json:"id" validate:"omitempty,uuid"`
	Name              string             `json:"name" validate:"required,notblank"`
	CurrentBalance    float64            `json:"current_balance" validate:"gte=0"`
	CreditLimit       float64            `json:"credit_limit" validate:"gt=0"`
	APR               float64            `json:"apr" validate:"gte=0,lte=100"`
	StatementCloseDay int                `json:"statement_close_day" validate:"dayofmonth"`
	PaymentDueDay     int                `json:"payment_due_day" validate:"dayofmonth"`
	RewardTable       domain.RewardTable `json:"reward_table"`
}

type SaveCardResponse struct {
	Card    domain.Card `json:"card"`
	Warning string      `json:"warning,omitempty"`
}

func validateStruct(v any) error {
	if err := val.Validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("invalid input: %w", err)
		}
		var errs []string
		for _, e := range verrs {
			errs = append(errs, fieldErrorToString(e))
		}
		return fmt.Errorf("invalid input: %s", strings.Join(errs, "; "))
	}
	return nil
}

func fieldErrorToString(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", e.Field())
	case "dayofmonth":
		return fmt.Sprintf("%s must be a day of month 1-31", e.Field())
	case "isodate":
		return fmt.Sprintf("%s must be in YYYY-MM-DD format", e.Field())
	case "uuid":
		return fmt.Sprintf("%s must be a UUID", e.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
