package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"frameworks/api_detector/internal/models"
	"frameworks/api_detector/pkg/logging"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type HistoryHandler struct {
	store  HistoryStore
	logger logging.Logger
}

func NewHistoryHandler(store HistoryStore, logger logging.Logger) *HistoryHandler {
	return &HistoryHandler{
		store:  store,
		logger: logger,
	}
}

func (h *HistoryHandler) Handle(c *gin.Context) {
	limit := parseBoundedInt(c.Query("limit"), defaultHistoryLimit, 1, maxHistoryLimit)
	offset := parseBoundedInt(c.Query("offset"), 0, 0, 1<<30)
	author := c.Query("author")

	items, total, err := h.store.ListRecent(c.Request.Context(), limit, offset, author)
	if err != nil {
		h.logger.WithFields(logging.Fields{
			"error": err.Error(),
		}).Error("Failed to load analysis history")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, models.HistoryResponse{
		Items: items,
		Total: total,
	})
}

// parseBoundedInt clamps bad or out-of-range query values to the
// fallback rather than rejecting the request.
func parseBoundedInt(raw string, fallback, min, max int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		return fallback
	}
	if v > max {
		return max
	}
	return v
}
