package aiservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synchealth/wellness-backend/internal/domain/providers"
	"github.com/synchealth/wellness-backend/pkg/config"
)

func testConfig(baseURL string) *config.AIServiceConfig {
	return &config.AIServiceConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		TimeoutSeconds: 5,
		RateLimitRPM:   600,
		RateLimitBurst: 10,
	}
}

func TestAnalyze_ReturnsRawBody(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody analyseRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"condition":"hypertension","scored_employees":[]}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	raw, err := client.Analyze(context.Background(), "who is at risk?")

	require.NoError(t, err)
	assert.Equal(t, "/ai/analyse", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "who is at risk?", gotBody.Prompt)
	assert.Equal(t, `{"condition":"hypertension","scored_employees":[]}`, raw)
}

func TestAnalyze_UnauthorizedWrapsSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	_, err = client.Analyze(context.Background(), "prompt")

	require.Error(t, err)
	assert.ErrorIs(t, err, providers.ErrAnalysisUnauthorized)
}

func TestAnalyze_ServerErrorIsNotSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	_, err = client.Analyze(context.Background(), "prompt")

	require.Error(t, err)
	assert.NotErrorIs(t, err, providers.ErrAnalysisUnauthorized)
}

func TestAnalyze_EmptyPromptRejected(t *testing.T) {
	client, err := NewClient(testConfig("http://localhost:9999"))
	require.NoError(t, err)

	_, err = client.Analyze(context.Background(), "   ")

	assert.Error(t, err)
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(&config.AIServiceConfig{})

	assert.Error(t, err)
}
