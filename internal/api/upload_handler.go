package api

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ajharbinger/golfleague-skins/internal/errors"
	"github.com/ajharbinger/golfleague-skins/internal/importer"
	"github.com/ajharbinger/golfleague-skins/internal/services"
)

// UploadHandler imports league scoring workbooks
type UploadHandler struct {
	scores services.ScoreService
	skins  services.SkinsService
}

// NewUploadHandler creates a new workbook upload handler
func NewUploadHandler(scores services.ScoreService, skins services.SkinsService) *UploadHandler {
	return &UploadHandler{scores: scores, skins: skins}
}

// UploadWorkbookRequest holds the form fields sent with a workbook
type UploadWorkbookRequest struct {
	Year      int  `form:"year" binding:"required,min=1"`
	SkinsOnly bool `form:"skins_only"`
	Calculate bool `form:"calculate"`
}

// UploadWorkbook parses an uploaded season workbook and stores its rounds.
// With calculate set the season is recalculated afterwards.
func (h *UploadHandler) UploadWorkbook(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*requestTimeout)
	defer cancel()

	var req UploadWorkbookRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, apperrors.InvalidInput("year is required", err))
		return
	}

	file, header, err := c.Request.FormFile("workbook")
	if err != nil {
		respondError(c, apperrors.InvalidInput("no workbook provided", err))
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".xlsx" && ext != ".xlsm" {
		respondError(c, apperrors.InvalidInput("workbook must be an .xlsx file", nil))
		return
	}

	wb, err := importer.Parse(file, importer.Options{Year: req.Year, SkinsOnly: req.SkinsOnly})
	if err != nil {
		respondError(c, err)
		return
	}

	league := c.Param("league")
	imported, err := h.scores.ImportRounds(ctx, league, wb.Rounds)
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{
		"message":        "Workbook imported",
		"filename":       header.Filename,
		"year":           req.Year,
		"rounds":         imported,
		"golfers":        len(wb.Participation),
		"skipped_sheets": wb.Skipped,
		"timestamp":      time.Now(),
	}

	if req.Calculate {
		results, err := h.skins.RecalculateSeason(ctx, league, req.Year)
		if err != nil {
			respondError(c, err)
			return
		}
		response["calculated"] = len(results)
	}

	c.JSON(http.StatusCreated, response)
}
