package handlers

import (
	"context"

	"frameworks/api_detector/internal/models"
)

type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalyzeResponse, error)
	HeuristicsOnly() bool
}

type HistoryStore interface {
	ListRecent(ctx context.Context, limit, offset int, author string) ([]models.HistoryItem, int64, error)
}
