package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"frameworks/api_detector/internal/detector"
	"frameworks/api_detector/internal/llm"
	"frameworks/api_detector/internal/models"
	"frameworks/api_detector/pkg/logging"
)

type analyzerStub struct {
	resp           *models.AnalyzeResponse
	err            error
	heuristicsOnly bool
	lastReq        models.AnalyzeRequest
	calls          int
}

func (a *analyzerStub) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	a.calls++
	a.lastReq = req
	if a.err != nil {
		return nil, a.err
	}
	return a.resp, nil
}

func (a *analyzerStub) HeuristicsOnly() bool { return a.heuristicsOnly }

func setupAnalyzeHandler(stub *analyzerStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAnalyzeHandler(stub, logging.NewLoggerWithService("handlers-test"))
	router.POST("/api/analyze", handler.Handle)
	return router
}

func postAnalyze(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAnalyzeHandlerRejectsMalformedJSON(t *testing.T) {
	stub := &analyzerStub{}
	router := setupAnalyzeHandler(stub)

	resp := postAnalyze(router, "{not json")

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if stub.calls != 0 {
		t.Fatal("analyzer must not run on malformed input")
	}
}

func TestAnalyzeHandlerReturnsResult(t *testing.T) {
	llmScore := 8
	stub := &analyzerStub{
		resp: &models.AnalyzeResponse{
			Score:      7,
			Confidence: 0.86,
			Label:      "likely_ai",
			Breakdown: models.Breakdown{
				LlmScore:       &llmScore,
				HeuristicScore: 6,
				Signals:        []string{"em_dash_usage"},
			},
		},
	}
	router := setupAnalyzeHandler(stub)

	resp := postAnalyze(router, `{"content":"some text","platform":"twitter","author":"alice"}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result models.AnalyzeResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Score != 7 || result.Label != "likely_ai" {
		t.Errorf("unexpected result: %+v", result)
	}
	if stub.lastReq.Author != "alice" || stub.lastReq.Platform != models.PlatformTwitter {
		t.Errorf("request not forwarded: %+v", stub.lastReq)
	}
}

func TestAnalyzeHandlerMapsInvalidInputTo400(t *testing.T) {
	stub := &analyzerStub{err: &detector.InvalidInputError{Message: "Content cannot be empty"}}
	router := setupAnalyzeHandler(stub)

	resp := postAnalyze(router, `{"content":"","platform":"twitter"}`)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Content cannot be empty") {
		t.Errorf("validation message should reach the caller, got %s", resp.Body.String())
	}
}

func TestAnalyzeHandlerMapsProviderErrorTo502(t *testing.T) {
	stub := &analyzerStub{err: &llm.ProviderError{Provider: "anthropic", Status: 529, Detail: "overloaded_error: secret internal detail"}}
	router := setupAnalyzeHandler(stub)

	resp := postAnalyze(router, `{"content":"text","platform":"linkedin"}`)

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, "LLM API error") {
		t.Errorf("expected generic LLM error, got %s", body)
	}
	if strings.Contains(body, "secret internal detail") {
		t.Errorf("provider detail leaked to caller: %s", body)
	}
}

func TestAnalyzeHandlerMapsParseErrorTo502(t *testing.T) {
	stub := &analyzerStub{err: &llm.ParseError{Raw: "garbage", Reason: "no JSON object in reply"}}
	router := setupAnalyzeHandler(stub)

	resp := postAnalyze(router, `{"content":"text","platform":"instagram"}`)

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
}

func TestAnalyzeHandlerMapsUnknownErrorTo500(t *testing.T) {
	stub := &analyzerStub{err: errors.New("something unexpected")}
	router := setupAnalyzeHandler(stub)

	resp := postAnalyze(router, `{"content":"text","platform":"twitter"}`)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), "something unexpected") {
		t.Errorf("internal error detail leaked: %s", resp.Body.String())
	}
}
