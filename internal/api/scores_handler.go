package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ajharbinger/golfleague-skins/internal/errors"
	"github.com/ajharbinger/golfleague-skins/internal/services"
	"github.com/ajharbinger/golfleague-skins/internal/skins"
)

// ScoresHandler handles round score sheets
type ScoresHandler struct {
	scores services.ScoreService
}

// NewScoresHandler creates a new score sheet handler
func NewScoresHandler(scores services.ScoreService) *ScoresHandler {
	return &ScoresHandler{scores: scores}
}

// SaveScores stores one round's score sheet
func (h *ScoresHandler) SaveScores(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	var input skins.RoundScoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperrors.InvalidInput("invalid score sheet", err))
		return
	}

	record, err := h.scores.SaveRoundScores(ctx, c.Param("league"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"scores":    record,
		"timestamp": time.Now(),
	})
}

// ListScores returns every score sheet of the requested year
func (h *ScoresHandler) ListScores(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	year, err := yearQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	rounds, err := h.scores.ListRoundScores(ctx, c.Param("league"), year)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rounds":    rounds,
		"count":     len(rounds),
		"timestamp": time.Now(),
	})
}

// GetScores returns one round's score sheet
func (h *ScoresHandler) GetScores(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	year, err := intParam(c, "year")
	if err != nil {
		respondError(c, err)
		return
	}
	round, err := intParam(c, "round")
	if err != nil {
		respondError(c, err)
		return
	}

	record, err := h.scores.GetRoundScores(ctx, c.Param("league"), year, round)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scores":    record,
		"timestamp": time.Now(),
	})
}
