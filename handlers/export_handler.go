package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hireflow/talent-gateway/export"
)

// ExportService defines the export row fetches the handler needs.
type ExportService interface {
	Candidates(ctx context.Context) ([]export.CandidateRow, error)
	Matches(ctx context.Context) ([]export.MatchResultRow, error)
}

// ExportHandler streams candidate and match exports as file downloads.
type ExportHandler struct {
	service ExportService
	logger  *zap.Logger
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(service ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{service: service, logger: logger}
}

// HandleCandidates handles GET /api/v1/export/candidates.{csv,json,xlsx}.
func (h *ExportHandler) HandleCandidates(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.service.Candidates(r.Context())
		if err != nil {
			HandleServiceError(w, err, h.logger)
			return
		}
		h.write(w, "candidates", format, func() error {
			switch format {
			case "csv":
				return export.WriteCandidatesCSV(w, rows)
			case "xlsx":
				return export.WriteCandidatesXLSX(w, rows)
			default:
				return export.WriteJSON(w, rows)
			}
		})
	}
}

// HandleMatches handles GET /api/v1/export/matches.{csv,json,xlsx}.
func (h *ExportHandler) HandleMatches(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.service.Matches(r.Context())
		if err != nil {
			HandleServiceError(w, err, h.logger)
			return
		}
		h.write(w, "matches", format, func() error {
			switch format {
			case "csv":
				return export.WriteMatchesCSV(w, rows)
			case "xlsx":
				return export.WriteMatchesXLSX(w, rows)
			default:
				return export.WriteJSON(w, rows)
			}
		})
	}
}

// write sets download headers and renders the body. Headers must be
// set before the first body byte, so render errors past that point can
// only be logged.
func (h *ExportHandler) write(w http.ResponseWriter, name, format string, render func() error) {
	filename := fmt.Sprintf("%s-%s.%s", name, time.Now().UTC().Format("2006-01-02"), format)
	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := render(); err != nil {
		h.logger.Error("export rendering failed",
			zap.String("export", name),
			zap.String("format", format),
			zap.Error(err))
	}
}

func contentType(format string) string {
	switch format {
	case "csv":
		return "text/csv; charset=utf-8"
	case "xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}
