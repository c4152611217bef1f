package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/username/cardfolio/backend/internal/metrics"
	"github.com/username/cardfolio/backend/internal/services"
)

type HistoryHandler struct {
	historyService *services.HistoryService
}

func NewHistoryHandler(history *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: history}
}

func (h *HistoryHandler) GetHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	page, err := h.historyService.List(callerID(c), limit, offset)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Backfill synthesizes history for cards that predate the change log.
// Idempotent: repeated calls after the first are no-ops.
func (h *HistoryHandler) Backfill(c *gin.Context) {
	if err := h.historyService.Backfill(callerID(c)); err != nil {
		serviceError(c, err)
		return
	}

	metrics.HistoryBackfillsTotal.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "history backfill complete"})
}
