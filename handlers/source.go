// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/election-dashboard/middleware"
	"github.com/danielhkuo/election-dashboard/models"
	"github.com/danielhkuo/election-dashboard/source"
	"github.com/danielhkuo/election-dashboard/store"
)

// SourceHandler serves the results backend endpoints from the local
// database, so other dashboards can poll this process.
type SourceHandler struct {
	store *store.Store
}

func NewSourceHandler(st *store.Store) *SourceHandler {
	return &SourceHandler{store: st}
}

// GetTallies handles GET /votos[?departamento=<key>]
func (h *SourceHandler) GetTallies(w http.ResponseWriter, r *http.Request) {
	filter, err := models.ParseRegionFilter(r.URL.Query().Get(source.RegionParam))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	tallies, err := h.store.Tallies(r.Context(), filter)
	if err != nil {
		slog.Error("failed to load tallies", "filter", filter, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DataEnvelope[models.TallyRecord]{Data: tallies})
}

// GetAuditLog handles GET /auditoria
func (h *SourceHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.AuditLog(r.Context())
	if err != nil {
		slog.Error("failed to load audit log", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DataEnvelope[models.AuditEntry]{Data: entries})
}

// GetRegionResults handles GET /votos_por_departamento
func (h *SourceHandler) GetRegionResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.store.RegionResults(r.Context())
	if err != nil {
		slog.Error("failed to load region results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DataEnvelope[models.RegionResult]{Data: results})
}
