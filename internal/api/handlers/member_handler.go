package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/synchealth/wellness-backend/internal/domain/providers"
	"github.com/synchealth/wellness-backend/internal/domain/repositories"
	"github.com/synchealth/wellness-backend/internal/infrastructure/observability"
	queryservices "github.com/synchealth/wellness-backend/internal/query/services"
	apperrors "github.com/synchealth/wellness-backend/pkg/errors"
)

// SyncService runs a roster refresh from the HR directory
type SyncService interface {
	Sync(ctx context.Context) (int, error)
}

// MemberHandler handles member-related HTTP requests
type MemberHandler struct {
	memberRepo   repositories.MemberRepository
	queryService *queryservices.MemberQueryService
	syncService  SyncService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberRepo repositories.MemberRepository, queryService *queryservices.MemberQueryService, syncService SyncService) *MemberHandler {
	return &MemberHandler{
		memberRepo:   memberRepo,
		queryService: queryService,
		syncService:  syncService,
	}
}

// ListMembers handles GET /api/members
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	filter := queryservices.MemberFilter{
		Query:      r.URL.Query().Get("q"),
		Department: r.URL.Query().Get("department"),
		Gender:     r.URL.Query().Get("gender"),
		AgeMin:     parseIntParam(r, "age_min"),
		AgeMax:     parseIntParam(r, "age_max"),
		WeightMin:  parseFloatParam(r, "weight_min"),
		WeightMax:  parseFloatParam(r, "weight_max"),
	}

	members, err := h.memberRepo.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list members")
		return
	}

	filtered := h.queryService.Filter(members, filter, nil)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"members": filtered,
		"total":   len(filtered),
	})
}

// GetMember handles GET /api/members/{id}
func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	memberID := r.PathValue("id")
	if memberID == "" {
		respondWithError(w, http.StatusBadRequest, "member ID is required")
		return
	}

	member, err := h.memberRepo.GetByID(r.Context(), memberID)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			switch appErr.Type {
			case apperrors.ErrorTypeNotFound:
				respondWithError(w, http.StatusNotFound, appErr.Message)
			default:
				respondWithError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, member)
}

// ListDepartments handles GET /api/members/departments
func (h *MemberHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	members, err := h.memberRepo.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list members")
		return
	}

	departments := h.queryService.Departments(members)
	if departments == nil {
		departments = []string{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"departments": departments,
	})
}

// SyncMembers handles POST /api/members/sync
func (h *MemberHandler) SyncMembers(w http.ResponseWriter, r *http.Request) {
	if h.syncService == nil {
		respondWithError(w, http.StatusServiceUnavailable, "directory sync is not configured")
		return
	}

	count, err := h.syncService.Sync(r.Context())
	if err != nil {
		if errors.Is(err, providers.ErrDirectoryUnauthorized) {
			respondWithError(w, http.StatusUnauthorized, "directory rejected the configured credentials")
			return
		}
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("directory sync failed")
		respondWithError(w, http.StatusBadGateway, "directory sync failed")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"synced": count,
	})
}

func parseIntParam(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}

func parseFloatParam(r *http.Request, name string) *float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
