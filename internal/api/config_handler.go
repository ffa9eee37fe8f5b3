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

// ConfigHandler handles league course configuration
type ConfigHandler struct {
	courses services.CourseService
}

// NewConfigHandler creates a new course configuration handler
func NewConfigHandler(courses services.CourseService) *ConfigHandler {
	return &ConfigHandler{courses: courses}
}

// SaveConfig stores the course layout posted for a league
func (h *ConfigHandler) SaveConfig(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	var course skins.CourseConfig
	if err := c.ShouldBindJSON(&course); err != nil {
		respondError(c, apperrors.InvalidInput("invalid course configuration", err))
		return
	}

	config, err := h.courses.SaveConfig(ctx, c.Param("league"), course)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"config":    config,
		"timestamp": time.Now(),
	})
}

// GetConfig returns a league's course layout
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	config, err := h.courses.GetConfig(ctx, c.Param("league"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"config":    config,
		"timestamp": time.Now(),
	})
}
