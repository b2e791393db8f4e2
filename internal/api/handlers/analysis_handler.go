package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/synchealth/wellness-backend/internal/application/services"
	"github.com/synchealth/wellness-backend/internal/domain/providers"
	"github.com/synchealth/wellness-backend/internal/domain/repositories"
	"github.com/synchealth/wellness-backend/internal/infrastructure/observability"
	queryservices "github.com/synchealth/wellness-backend/internal/query/services"
	"github.com/synchealth/wellness-backend/pkg/config"
)

// AnalysisHandler handles AI risk analysis requests
type AnalysisHandler struct {
	analysisProvider providers.AnalysisProvider
	filterService    *services.RiskFilterService
	queryService     *queryservices.MemberQueryService
	memberRepo       repositories.MemberRepository
	cache            providers.CacheProvider
	cfg              config.AIServiceConfig
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(
	analysisProvider providers.AnalysisProvider,
	filterService *services.RiskFilterService,
	queryService *queryservices.MemberQueryService,
	memberRepo repositories.MemberRepository,
	cache providers.CacheProvider,
	cfg config.AIServiceConfig,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysisProvider: analysisProvider,
		filterService:    filterService,
		queryService:     queryService,
		memberRepo:       memberRepo,
		cache:            cache,
		cfg:              cfg,
	}
}

type analysisRequest struct {
	Prompt string `json:"prompt"`
}

// Analyze handles POST /api/analysis. Raw AI responses are cached per
// prompt; resolution against the current roster always runs fresh so
// a roster change between identical prompts is reflected.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if h.analysisProvider == nil {
		respondWithError(w, http.StatusServiceUnavailable, "AI analysis is not configured")
		return
	}

	var req analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		respondWithError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	logger := observability.LoggerFromContext(r.Context())

	raw, cached := h.cachedResponse(r, prompt)
	if !cached {
		var err error
		raw, err = h.analysisProvider.Analyze(r.Context(), prompt)
		if err != nil {
			if errors.Is(err, providers.ErrAnalysisUnauthorized) {
				respondWithError(w, http.StatusUnauthorized, "AI service rejected the configured credentials")
				return
			}
			logger.Error().Err(err).Msg("analysis request failed")
			respondWithError(w, http.StatusBadGateway, "AI analysis failed")
			return
		}
		h.storeResponse(r, prompt, raw)
	}

	members, err := h.memberRepo.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list members")
		return
	}

	filter := h.filterService.Resolve(r.Context(), raw, prompt, members)
	message := h.filterService.FormatForChat(raw, members)

	if filter == nil {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"type":    "message",
			"message": message,
		})
		return
	}

	ranked := h.queryService.Filter(members, queryservices.MemberFilter{}, filter)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"type":    "risk_filter",
		"disease": filter.Disease,
		"entries": filter.Entries,
		"members": ranked,
		"message": message,
	})
}

func (h *AnalysisHandler) cachedResponse(r *http.Request, prompt string) (string, bool) {
	if h.cache == nil {
		return "", false
	}
	raw, err := h.cache.Get(r.Context(), analysisCacheKey(prompt))
	if err != nil {
		return "", false
	}
	return string(raw), true
}

func (h *AnalysisHandler) storeResponse(r *http.Request, prompt, raw string) {
	if h.cache == nil || h.cfg.CacheTTLSeconds <= 0 {
		return
	}
	if err := h.cache.Set(r.Context(), analysisCacheKey(prompt), []byte(raw), h.cfg.CacheTTLSeconds); err != nil {
		observability.LoggerFromContext(r.Context()).Warn().Err(err).Msg("failed to cache analysis response")
	}
}

func analysisCacheKey(prompt string) string {
	hash := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(prompt))))
	return "analysis:" + hex.EncodeToString(hash[:])
}
