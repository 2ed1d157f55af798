package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"frameworks/api_detector/internal/llm"
)

// DetectorHealthHandler reports the resolved judge configuration. This
// is the detail view behind the service-level /health endpoint.
type DetectorHealthHandler struct {
	cfg      llm.Config
	analyzer Analyzer
}

func NewDetectorHealthHandler(cfg llm.Config, analyzer Analyzer) *DetectorHealthHandler {
	return &DetectorHealthHandler{
		cfg:      cfg,
		analyzer: analyzer,
	}
}

func (h *DetectorHealthHandler) Handle(c *gin.Context) {
	mode := "combined"
	if h.analyzer.HeuristicsOnly() {
		mode = "heuristics_only"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"provider": string(h.cfg.Provider),
		"model":    h.cfg.Model(),
		"mode":     mode,
	})
}
