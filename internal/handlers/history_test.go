package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"frameworks/api_detector/internal/llm"
	"frameworks/api_detector/internal/models"
	"frameworks/api_detector/pkg/logging"
)

func llmConfigForTest() llm.Config {
	return llm.Config{
		Provider:        llm.ProviderAnthropic,
		AnthropicAPIKey: "sk-ant-test",
	}
}

func llmNoneConfigForTest() llm.Config {
	return llm.Config{Provider: llm.ProviderNone}
}

type historyStoreStub struct {
	items      []models.HistoryItem
	total      int64
	err        error
	lastLimit  int
	lastOffset int
	lastAuthor string
}

func (s *historyStoreStub) ListRecent(ctx context.Context, limit, offset int, author string) ([]models.HistoryItem, int64, error) {
	s.lastLimit = limit
	s.lastOffset = offset
	s.lastAuthor = author
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.items, s.total, nil
}

func setupHistoryHandler(stub *historyStoreStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHistoryHandler(stub, logging.NewLoggerWithService("handlers-test"))
	router.GET("/api/history", handler.Handle)
	return router
}

func getHistory(router *gin.Engine, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/history"+query, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestHistoryHandlerDefaults(t *testing.T) {
	stub := &historyStoreStub{
		items: []models.HistoryItem{{
			ID:             "id-1",
			ContentPreview: "a short preview",
			Platform:       "twitter",
			Score:          3,
			Label:          "human",
			CreatedAt:      time.Now().UTC(),
		}},
		total: 1,
	}
	router := setupHistoryHandler(stub)

	resp := getHistory(router, "")

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if stub.lastLimit != 20 || stub.lastOffset != 0 || stub.lastAuthor != "" {
		t.Errorf("unexpected defaults: limit=%d offset=%d author=%q", stub.lastLimit, stub.lastOffset, stub.lastAuthor)
	}

	var payload models.HistoryResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Total != 1 || len(payload.Items) != 1 {
		t.Errorf("unexpected payload: %+v", payload)
	}
	if payload.Items[0].ContentPreview != "a short preview" {
		t.Errorf("unexpected preview: %q", payload.Items[0].ContentPreview)
	}
}

func TestHistoryHandlerClampsLimit(t *testing.T) {
	stub := &historyStoreStub{}
	router := setupHistoryHandler(stub)

	getHistory(router, "?limit=500")
	if stub.lastLimit != 100 {
		t.Errorf("limit should clamp to 100, got %d", stub.lastLimit)
	}

	getHistory(router, "?limit=0")
	if stub.lastLimit != 20 {
		t.Errorf("non-positive limit should fall back to 20, got %d", stub.lastLimit)
	}

	getHistory(router, "?limit=abc")
	if stub.lastLimit != 20 {
		t.Errorf("unparseable limit should fall back to 20, got %d", stub.lastLimit)
	}
}

func TestHistoryHandlerPassesFilters(t *testing.T) {
	stub := &historyStoreStub{}
	router := setupHistoryHandler(stub)

	getHistory(router, "?limit=5&offset=10&author=carol")

	if stub.lastLimit != 5 || stub.lastOffset != 10 || stub.lastAuthor != "carol" {
		t.Errorf("filters not forwarded: limit=%d offset=%d author=%q", stub.lastLimit, stub.lastOffset, stub.lastAuthor)
	}
}

func TestHistoryHandlerStoreErrorIs500(t *testing.T) {
	stub := &historyStoreStub{err: errors.New("db down")}
	router := setupHistoryHandler(stub)

	resp := getHistory(router, "")

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestDetectorHealthReportsProvider(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	cfg := llmConfigForTest()
	handler := NewDetectorHealthHandler(cfg, &analyzerStub{heuristicsOnly: false})
	router.GET("/api/detector/health", handler.Handle)

	req := httptest.NewRequest(http.MethodGet, "/api/detector/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["provider"] != "anthropic" {
		t.Errorf("provider = %q, want anthropic", payload["provider"])
	}
	if payload["mode"] != "combined" {
		t.Errorf("mode = %q, want combined", payload["mode"])
	}
	if payload["model"] == "" {
		t.Error("model should be reported")
	}
}

func TestDetectorHealthHeuristicsOnlyMode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewDetectorHealthHandler(llmNoneConfigForTest(), &analyzerStub{heuristicsOnly: true})
	router.GET("/api/detector/health", handler.Handle)

	req := httptest.NewRequest(http.MethodGet, "/api/detector/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var payload map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["mode"] != "heuristics_only" {
		t.Errorf("mode = %q, want heuristics_only", payload["mode"])
	}
}
