package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/synchealth/wellness-backend/internal/application/services"
	"github.com/synchealth/wellness-backend/internal/domain/repositories"
	"github.com/synchealth/wellness-backend/internal/infrastructure/observability"
	"github.com/synchealth/wellness-backend/pkg/config"
	apperrors "github.com/synchealth/wellness-backend/pkg/errors"
)

// SheetReader extracts raw rows from an uploaded workbook
type SheetReader interface {
	ReadRows(reader io.Reader) ([][]string, error)
}

// ImportHandler handles spreadsheet roster uploads
type ImportHandler struct {
	sheetReader   SheetReader
	importService *services.MemberImportService
	memberRepo    repositories.MemberRepository
	cfg           config.ImportConfig
}

// NewImportHandler creates a new import handler
func NewImportHandler(sheetReader SheetReader, importService *services.MemberImportService, memberRepo repositories.MemberRepository, cfg config.ImportConfig) *ImportHandler {
	return &ImportHandler{
		sheetReader:   sheetReader,
		importService: importService,
		memberRepo:    memberRepo,
		cfg:           cfg,
	}
}

// ImportMembers handles POST /api/members/import. The uploaded sheet
// replaces the entire roster; rows that fail validation are reported
// as warnings without blocking the rest of the batch.
func (h *ImportHandler) ImportMembers(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "a spreadsheet file upload is required")
		return
	}
	defer file.Close()

	rows, err := h.sheetReader.ReadRows(file)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.Type == apperrors.ErrorTypeValidation {
			respondWithError(w, http.StatusBadRequest, appErr.Message)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to read spreadsheet")
		return
	}

	result := h.importService.ParseSheet(rows)
	if len(result.Members) == 0 {
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":    "no valid rows found in the spreadsheet",
			"warnings": h.capWarnings(result.Errors),
		})
		return
	}

	if err := h.memberRepo.ReplaceAll(r.Context(), result.Members); err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("failed to store imported members")
		respondWithError(w, http.StatusInternalServerError, "failed to store imported members")
		return
	}

	observability.LoggerFromContext(r.Context()).Info().
		Int("imported", len(result.Members)).
		Int("warnings", len(result.Errors)).
		Msg("roster imported")

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"imported": len(result.Members),
		"warnings": h.capWarnings(result.Errors),
		"members":  result.Members,
	})
}

// capWarnings truncates long warning lists, keeping the response small
func (h *ImportHandler) capWarnings(warnings []string) []string {
	if warnings == nil {
		return []string{}
	}
	max := h.cfg.MaxWarnings
	if max <= 0 || len(warnings) <= max {
		return warnings
	}
	capped := make([]string, 0, max+1)
	capped = append(capped, warnings[:max]...)
	capped = append(capped, fmt.Sprintf("+%d more warnings", len(warnings)-max))
	return capped
}
