package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"frameworks/api_detector/internal/detector"
	"frameworks/api_detector/internal/llm"
	"frameworks/api_detector/internal/models"
	"frameworks/api_detector/pkg/logging"
)

// analyzeTimeout bounds a single analysis including the LLM round trip
// and its retries.
const analyzeTimeout = 2 * time.Minute

type AnalyzeHandler struct {
	analyzer Analyzer
	logger   logging.Logger
}

func NewAnalyzeHandler(analyzer Analyzer, logger logging.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		logger:   logger,
	}
}

func (h *AnalyzeHandler) Handle(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), analyzeTimeout)
	defer cancel()

	resp, err := h.analyzer.Analyze(ctx, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// respondError maps pipeline errors onto HTTP statuses. Provider
// details are logged for operators but never echoed to callers.
func (h *AnalyzeHandler) respondError(c *gin.Context, err error) {
	var invalid *detector.InvalidInputError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": invalid.Message,
		})
		return
	}

	var provErr *llm.ProviderError
	var parseErr *llm.ParseError
	if errors.As(err, &provErr) || errors.As(err, &parseErr) {
		h.logger.WithFields(logging.Fields{
			"error": err.Error(),
		}).Error("LLM judge failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "LLM API error",
		})
		return
	}

	h.logger.WithFields(logging.Fields{
		"error": err.Error(),
	}).Error("Analysis failed")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}
