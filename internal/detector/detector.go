package detector

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"frameworks/api_detector/internal/heuristics"
	"frameworks/api_detector/internal/llm"
	"frameworks/api_detector/internal/models"
	"frameworks/api_detector/internal/store"
	"frameworks/api_detector/pkg/logging"
)

// InvalidInputError rejects a request before any analysis work begins.
// Its message is safe to return to callers verbatim.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

const (
	llmWeight       = 0.6
	heuristicWeight = 0.4

	// Confidence floor: even a judge reporting zero confidence still
	// contributes the heuristic baseline.
	confidenceBase  = 0.3
	confidenceScale = 0.7

	heuristicsOnlyConfidence = 0.5
)

// Detector runs the full analysis pipeline: fingerprint, cache lookup,
// parallel heuristic and LLM scoring, score combination, persistence.
type Detector struct {
	judge   llm.Judge
	store   store.AnalysisStore
	logger  logging.Logger
	metrics *Metrics

	// Concurrent requests for the same fingerprint collapse into one
	// analysis; the rest wait and share the result.
	inflight singleflight.Group
}

func New(judge llm.Judge, st store.AnalysisStore, logger logging.Logger, metrics *Metrics) *Detector {
	return &Detector{
		judge:   judge,
		store:   st,
		logger:  logger,
		metrics: metrics,
	}
}

// HeuristicsOnly reports whether no LLM judge is configured.
func (d *Detector) HeuristicsOnly() bool {
	return d.judge == nil
}

// Fingerprint returns the SHA-256 hex digest of the raw content. The
// digest keys the cache, so it must cover the exact bytes submitted.
func Fingerprint(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func validate(req *models.AnalyzeRequest) error {
	if strings.TrimSpace(req.Content) == "" {
		return &InvalidInputError{Message: "Content cannot be empty"}
	}
	if utf8.RuneCountInString(req.Content) > models.MaxContentLength {
		return &InvalidInputError{Message: fmt.Sprintf("Content too long (max %d chars)", models.MaxContentLength)}
	}
	if err := req.Validate(); err != nil {
		return &InvalidInputError{Message: err.Error()}
	}
	return nil
}

// Analyze scores a document. Identical content always maps to the same
// stored record regardless of platform or author metadata.
func (d *Detector) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}

	hash := Fingerprint(req.Content)

	v, err, _ := d.inflight.Do(hash, func() (interface{}, error) {
		return d.analyzeOnce(ctx, req, hash)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.AnalyzeResponse), nil
}

func (d *Detector) analyzeOnce(ctx context.Context, req models.AnalyzeRequest, hash string) (*models.AnalyzeResponse, error) {
	start := time.Now()

	if cached := d.lookupCache(ctx, hash); cached != nil {
		d.metrics.ObserveCacheHit()
		return cached, nil
	}

	var heurResult heuristics.Result
	var llmResult llm.Result

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		// Heuristics are pure string math over untrusted text; a panic
		// here must surface as an error, not take the process down.
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("heuristic analysis panicked: %v", r)
			}
		}()
		heurResult = heuristics.Analyze(req.Content)
		return nil
	})
	if d.judge != nil {
		g.Go(func() error {
			llmStart := time.Now()
			result, err := d.judge.Score(gctx, req.Content)
			d.metrics.ObserveLLMDuration(d.judge.Name(), time.Since(llmStart))
			if err != nil {
				return err
			}
			llmResult = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	response, record := d.combine(heurResult, llmResult, hash, req)

	if err := d.store.Insert(ctx, record, req.Content); err != nil {
		// The caller already has a valid result; losing the cache entry
		// only costs a recomputation later.
		d.metrics.ObserveInsertFailure()
		d.logger.WithFields(logging.Fields{
			"content_hash": hash,
			"error":        err.Error(),
		}).Error("Failed to persist analysis result")
	}

	d.metrics.ObserveAnalysis(d.mode(), record.Label, time.Since(start))
	return response, nil
}

func (d *Detector) mode() string {
	if d.judge == nil {
		return "heuristics_only"
	}
	return "combined"
}

// lookupCache treats any read failure as a miss: a broken cache should
// slow the service down, not take it out.
func (d *Detector) lookupCache(ctx context.Context, hash string) *models.AnalyzeResponse {
	record, err := d.store.FindByFingerprint(ctx, hash)
	if err != nil {
		d.logger.WithFields(logging.Fields{
			"content_hash": hash,
			"error":        err.Error(),
		}).Warn("Cache lookup failed, recomputing analysis")
		return nil
	}
	if record == nil {
		return nil
	}
	return recordToResponse(record)
}

func (d *Detector) combine(heur heuristics.Result, llmRes llm.Result, hash string, req models.AnalyzeRequest) (*models.AnalyzeResponse, models.AnalysisRecord) {
	var score int
	var confidence float64
	var label string
	var llmScore *int

	if d.judge != nil {
		score = clampScore(int(math.Round(float64(llmRes.Score)*llmWeight + float64(heur.Score)*heuristicWeight)))
		confidence = math.Min(1.0, llmRes.Confidence*confidenceScale+confidenceBase)
		label = models.ScoreToLabel(score, false)
		s := llmRes.Score
		llmScore = &s
	} else {
		score = clampScore(heur.Score)
		confidence = heuristicsOnlyConfidence
		label = models.ScoreToLabel(score, true)
	}

	response := &models.AnalyzeResponse{
		Score:      score,
		Confidence: confidence,
		Label:      label,
		Breakdown: models.Breakdown{
			LlmScore:       llmScore,
			HeuristicScore: heur.Score,
			Signals:        heur.Signals,
		},
	}

	record := models.AnalysisRecord{
		ID:             uuid.New().String(),
		ContentHash:    hash,
		Platform:       req.Platform.String(),
		PostID:         req.PostID,
		Author:         req.Author,
		Score:          score,
		Confidence:     confidence,
		Label:          label,
		LlmScore:       llmScore,
		HeuristicScore: heur.Score,
		Signals:        marshalSignals(heur.Signals),
		CreatedAt:      time.Now().UTC(),
	}

	return response, record
}

func recordToResponse(record *models.AnalysisRecord) *models.AnalyzeResponse {
	var signals []string
	if err := json.Unmarshal([]byte(record.Signals), &signals); err != nil {
		signals = nil
	}
	return &models.AnalyzeResponse{
		Score:      record.Score,
		Confidence: record.Confidence,
		Label:      record.Label,
		Breakdown: models.Breakdown{
			LlmScore:       record.LlmScore,
			HeuristicScore: record.HeuristicScore,
			Signals:        signals,
		},
	}
}

func marshalSignals(signals []string) string {
	if signals == nil {
		signals = []string{}
	}
	data, err := json.Marshal(signals)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
