// internal/handler/advisor.go
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"card-advisor/internal/advisor"
	"card-advisor/internal/classifier"
	"card-advisor/internal/domain"
	"card-advisor/internal/profile"
	"card-advisor/internal/storage"
)

type AdvisorHandler struct {
	store   storage.CardStorage
	advisor *advisor.Advisor
}

func NewAdvisorHandler(store storage.CardStorage, adv *advisor.Advisor) *AdvisorHandler {
	return &AdvisorHandler{store: store, advisor: adv}
}

// Classify godoc
// @Summary Classify a merchant
// @Description merchant may be any JSON value; non-strings classify as empty text.
// @Param request body ClassifyRequest true "Merchant"
// @Success 200 {object} domain.ClassificationResult
// @Router /api/v1/classify [post]
func (h *AdvisorHandler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.advisor.Classify(classifier.TextOf(req.Merchant), req.MCC))
}

// Recommend godoc
// @Summary Score the user's cards for a purchase
// @Param request body RecommendRequest true "Purchase"
// @Success 200 {object} domain.Recommendation
// @Failure 400 {object} map[string]string
// @Router /api/v1/recommend [post]
func (h *AdvisorHandler) Recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var purchase time.Time
	if req.Date != "" {
		// format already checked by isodate
		purchase, _ = time.Parse(time.DateOnly, req.Date)
	}

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

	rec, err := h.advisor.GetAllStrategies(cards, req.Query, *req.Amount, purchase, req.MCC)
	if err != nil {
		if errors.Is(err, domain.ErrContractViolation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("Recommend failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to score cards"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Profile godoc
// @Summary Detect the user's payoff profile
// @Success 200 {object} ProfileResponse
// @Router /api/v1/profile [get]
func (h *AdvisorHandler) Profile(c *gin.Context) {
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
	c.JSON(http.StatusOK, ProfileResponse{
		Profile: h.advisor.DetectProfile(cards),
		Metrics: profile.Metrics(cards),
	})
}

// Cycle godoc
// @Summary Statement cycle for a close/due day pair
// @Param close_day query int true "Statement close day"
// @Param due_day query int true "Payment due day"
// @Param date query string false "Reference date YYYY-MM-DD"
// @Success 200 {object} advisor.CycleInfo
// @Router /api/v1/cycle [get]
func (h *AdvisorHandler) Cycle(c *gin.Context) {
	closeDay, err1 := strconv.Atoi(c.Query("close_day"))
	dueDay, err2 := strconv.Atoi(c.Query("due_day"))
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "close_day and due_day query params required"})
		return
	}

	var ref time.Time
	if s := c.Query("date"); s != "" {
		ref, err1 = time.Parse(time.DateOnly, s)
		if err1 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
			return
		}
	}

	info, err := h.advisor.Cycle(closeDay, dueDay, ref)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

// === DTO ===

type ClassifyRequest struct {
	Merchant any `json:"merchant"`
	MCC      int `json:"mcc" validate:"gte=0"`
}

type RecommendRequest struct {
	Query  string   `json:"query"`
	Amount *float64 `json:"amount" validate:"required,gte=0"`
	Date   string   `json:"date" validate:"omitempty,isodate"`
	MCC    int      `json:"mcc" validate:"gte=0"`
}

type ProfileResponse struct {
	Profile domain.UserProfile `json:"profile"`
	Metrics profile.Stats      `json:"metrics"`
}
