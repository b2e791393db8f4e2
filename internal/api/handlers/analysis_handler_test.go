package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synchealth/wellness-backend/internal/application/services"
	"github.com/synchealth/wellness-backend/internal/domain/entities"
	"github.com/synchealth/wellness-backend/internal/domain/providers"
	queryservices "github.com/synchealth/wellness-backend/internal/query/services"
	"github.com/synchealth/wellness-backend/pkg/config"
)

type stubAnalysisProvider struct {
	response string
	err      error
	calls    int
}

func (s *stubAnalysisProvider) Analyze(ctx context.Context, prompt string) (string, error) {
	s.calls++
	return s.response, s.err
}

type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, ok := c.entries[key]
	if !ok {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	return value, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.entries[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.entries[key]
	return ok, nil
}

func newAnalysisHandler(provider providers.AnalysisProvider, cache providers.CacheProvider) *AnalysisHandler {
	filterService := services.NewRiskFilterService(services.NewTieredMemberMatcher())
	repo := &stubMemberRepo{members: []entities.Member{
		{ID: "emp-1", FullName: "Jane Doe"},
		{ID: "emp-2", FullName: "John Smith"},
	}}
	return NewAnalysisHandler(provider, filterService, queryservices.NewMemberQueryService(), repo, cache, config.AIServiceConfig{CacheTTLSeconds: 300})
}

func analysisRequestBody(prompt string) *strings.Reader {
	return strings.NewReader(fmt.Sprintf(`{"prompt":%q}`, prompt))
}

func TestAnalyze_StructuredResponseReturnsFilter(t *testing.T) {
	provider := &stubAnalysisProvider{
		response: `{"condition":"hypertension","scored_employees":[{"employee_id":"emp-1","risk_probability":0.82}]}`,
	}
	handler := newAnalysisHandler(provider, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/analysis", analysisRequestBody("who is at risk of hypertension?"))
	rec := httptest.NewRecorder()

	handler.Analyze(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Type    string                 `json:"type"`
		Message string                 `json:"message"`
		Disease string                 `json:"disease"`
		Entries []entities.AIRiskEntry `json:"entries"`
		Members []entities.Member      `json:"members"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "risk_filter", resp.Type)
	assert.Equal(t, "Hypertension", resp.Disease)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "emp-1", resp.Entries[0].MemberID)
	require.Len(t, resp.Members, 1)
	assert.Equal(t, "emp-1", resp.Members[0].ID)
	assert.Contains(t, resp.Message, "Jane Doe")
}

func TestAnalyze_ConversationalResponseReturnsMessage(t *testing.T) {
	provider := &stubAnalysisProvider{response: "I can only answer health-related questions."}
	handler := newAnalysisHandler(provider, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/analysis", analysisRequestBody("hello"))
	rec := httptest.NewRecorder()

	handler.Analyze(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "message", resp.Type)
	assert.Equal(t, "I can only answer health-related questions.", resp.Message)
}

func TestAnalyze_CachesRawResponse(t *testing.T) {
	provider := &stubAnalysisProvider{response: "Nothing to report."}
	cache := newMemoryCache()
	handler := newAnalysisHandler(provider, cache)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/analysis", analysisRequestBody("any risks?"))
		rec := httptest.NewRecorder()
		handler.Analyze(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 1, provider.calls)
}

func TestAnalyze_Unauthorized(t *testing.T) {
	provider := &stubAnalysisProvider{err: fmt.Errorf("wrap: %w", providers.ErrAnalysisUnauthorized)}
	handler := newAnalysisHandler(provider, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/analysis", analysisRequestBody("who is at risk?"))
	rec := httptest.NewRecorder()

	handler.Analyze(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAnalyze_UpstreamFailure(t *testing.T) {
	provider := &stubAnalysisProvider{err: fmt.Errorf("connection refused")}
	handler := newAnalysisHandler(provider, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/analysis", analysisRequestBody("who is at risk?"))
	rec := httptest.NewRecorder()

	handler.Analyze(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestAnalyze_EmptyPrompt(t *testing.T) {
	handler := newAnalysisHandler(&stubAnalysisProvider{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/analysis", analysisRequestBody("   "))
	rec := httptest.NewRecorder()

	handler.Analyze(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze_NotConfigured(t *testing.T) {
	handler := NewAnalysisHandler(nil, nil, nil, nil, nil, config.AIServiceConfig{})

	req := httptest.NewRequest(http.MethodPost, "/api/analysis", analysisRequestBody("who is at risk?"))
	rec := httptest.NewRecorder()

	handler.Analyze(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
