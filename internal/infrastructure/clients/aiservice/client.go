package aiservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/synchealth/wellness-backend/internal/domain/providers"
	"github.com/synchealth/wellness-backend/pkg/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Client implements the analysis provider against the external AI
// risk analysis service. Responses are returned verbatim so the
// normalization layer can decide how to interpret them.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *tokenBucket
}

// NewClient creates a new AI analysis client.
func NewClient(cfg *config.AIServiceConfig) (*Client, error) {
	if cfg == nil || cfg.BaseURL == "" {
		return nil, errors.New("ai service base url is required")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: newTokenBucket(cfg.RateLimitRPM, cfg.RateLimitBurst),
	}, nil
}

type analyseRequest struct {
	Prompt string `json:"prompt"`
}

// Analyze sends the prompt to the analysis endpoint and returns the
// raw response body as a string.
func (c *Client) Analyze(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt is required")
	}

	if c.limiter != nil {
		waitStart := time.Now()
		if err := c.limiter.Wait(ctx); err != nil {
			recordAnalysisMetric(ctx, 0, 0, err)
			return "", err
		}
		recordAnalysisRateLimitWait(ctx, time.Since(waitStart))
	}

	body, err := json.Marshal(analyseRequest{Prompt: prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ai/analyse", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordAnalysisMetric(ctx, 0, time.Since(start), err)
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		recordAnalysisMetric(ctx, resp.StatusCode, time.Since(start), err)
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		recordAnalysisMetric(ctx, resp.StatusCode, time.Since(start), fmt.Errorf("status %d", resp.StatusCode))
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return "", fmt.Errorf("%w: analysis request failed with status %d", providers.ErrAnalysisUnauthorized, resp.StatusCode)
		}
		return "", fmt.Errorf("analysis request failed with status %d", resp.StatusCode)
	}

	recordAnalysisMetric(ctx, resp.StatusCode, time.Since(start), nil)
	return string(raw), nil
}

func newTokenBucket(rpm int, burst int) *tokenBucket {
	if rpm == 0 {
		rpm = 60
	}
	if rpm < 0 {
		return nil
	}
	if burst <= 0 {
		burst = 5
	}
	return newTokenBucketWithRate(rpm, burst)
}

type tokenBucket struct {
	tokens chan struct{}
}

func newTokenBucketWithRate(rpm int, burst int) *tokenBucket {
	bucket := &tokenBucket{
		tokens: make(chan struct{}, burst),
	}

	for i := 0; i < burst; i++ {
		bucket.tokens <- struct{}{}
	}

	interval := time.Minute / time.Duration(rpm)
	if interval <= 0 {
		interval = time.Millisecond
	}

	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			select {
			case bucket.tokens <- struct{}{}:
			default:
			}
		}
	}()

	return bucket
}

func (b *tokenBucket) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.tokens:
		return nil
	}
}

type analysisMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
	rateLimitWait   metric.Float64Histogram
}

var analysisMetricsInit = false
var analysisMetricsStore analysisMetrics

func ensureAnalysisMetrics() {
	if analysisMetricsInit {
		return
	}
	meter := otel.Meter("github.com/synchealth/wellness-backend/aiservice")

	requestCount, err := meter.Int64Counter(
		"ai.analysis.request.count",
		metric.WithDescription("Number of AI analysis requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.analysis.request.duration",
		metric.WithDescription("AI analysis request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.analysis.request.errors",
		metric.WithDescription("Number of AI analysis request errors"),
	)
	if err != nil {
		return
	}
	rateLimitWait, err := meter.Float64Histogram(
		"ai.analysis.rate_limit.wait",
		metric.WithDescription("Time spent waiting for the analysis rate limiter in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}

	analysisMetricsStore = analysisMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
		rateLimitWait:   rateLimitWait,
	}
	analysisMetricsInit = true
}

func recordAnalysisMetric(ctx context.Context, statusCode int, duration time.Duration, err error) {
	ensureAnalysisMetrics()
	if !analysisMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "synchealth"),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	analysisMetricsStore.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	analysisMetricsStore.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		analysisMetricsStore.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

func recordAnalysisRateLimitWait(ctx context.Context, wait time.Duration) {
	ensureAnalysisMetrics()
	if !analysisMetricsInit {
		return
	}
	analysisMetricsStore.rateLimitWait.Record(ctx, float64(wait.Milliseconds()),
		metric.WithAttributes(attribute.String("ai.provider", "synchealth")))
}
