package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ajharbinger/golfleague-skins/internal/errors"
	"github.com/ajharbinger/golfleague-skins/internal/services"
)

// SkinsHandler handles skins calculation and reporting
type SkinsHandler struct {
	skins services.SkinsService
}

// NewSkinsHandler creates a new skins handler
func NewSkinsHandler(skins services.SkinsService) *SkinsHandler {
	return &SkinsHandler{skins: skins}
}

// CalculateRequest names the round to calculate
type CalculateRequest struct {
	Year  int `json:"year" binding:"required,min=1"`
	Round int `json:"round" binding:"required,min=1"`
}

// Calculate runs the skins calculation for one stored round
func (h *SkinsHandler) Calculate(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.InvalidInput("year and round are required", err))
		return
	}

	result, err := h.skins.CalculateRound(ctx, c.Param("league"), req.Year, req.Round)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":    result,
		"timestamp": time.Now(),
	})
}

// Recalculate replays every stored round of a season
func (h *SkinsHandler) Recalculate(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*requestTimeout)
	defer cancel()

	year, err := intParam(c, "year")
	if err != nil {
		respondError(c, err)
		return
	}

	results, err := h.skins.RecalculateSeason(ctx, c.Param("league"), year)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results":   results,
		"count":     len(results),
		"timestamp": time.Now(),
	})
}

// ListResults returns a season's stored results
func (h *SkinsHandler) ListResults(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	year, err := yearQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	results, err := h.skins.ListRoundResults(ctx, c.Param("league"), year)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results":   results,
		"count":     len(results),
		"timestamp": time.Now(),
	})
}

// GetResult returns one stored round result
func (h *SkinsHandler) GetResult(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	year, round, ok := yearAndRound(c)
	if !ok {
		return
	}

	result, err := h.skins.GetRoundResult(ctx, c.Param("league"), year, round)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":    result,
		"timestamp": time.Now(),
	})
}

// GetWinners returns the won holes of a round with their payouts
func (h *SkinsHandler) GetWinners(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	year, round, ok := yearAndRound(c)
	if !ok {
		return
	}

	winners, err := h.skins.GetRoundWinners(ctx, c.Param("league"), year, round)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"winners":   winners,
		"timestamp": time.Now(),
	})
}

// GetSummary returns the season standings
func (h *SkinsHandler) GetSummary(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	year, err := intParam(c, "year")
	if err != nil {
		respondError(c, err)
		return
	}

	summary, err := h.skins.GetSeasonSummary(ctx, c.Param("league"), year)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":   summary,
		"timestamp": time.Now(),
	})
}

func yearAndRound(c *gin.Context) (int, int, bool) {
	year, err := intParam(c, "year")
	if err != nil {
		respondError(c, err)
		return 0, 0, false
	}
	round, err := intParam(c, "round")
	if err != nil {
		respondError(c, err)
		return 0, 0, false
	}
	return year, round, true
}
