// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/election-dashboard/cliparse"
	"github.com/danielhkuo/election-dashboard/dashboard"
	"github.com/danielhkuo/election-dashboard/middleware"
	"github.com/danielhkuo/election-dashboard/models"
)

type DashboardHandler struct {
	poller *dashboard.Poller
	cfg    cliparse.Config
}

func NewDashboardHandler(poller *dashboard.Poller, cfg cliparse.Config) *DashboardHandler {
	return &DashboardHandler{poller: poller, cfg: cfg}
}

// GetView handles GET /dashboard
// Returns the render-ready view of the latest snapshot
func (h *DashboardHandler) GetView(w http.ResponseWriter, r *http.Request) {
	view := dashboard.BuildView(h.poller.Snapshot())
	middleware.JSONResponse(w, http.StatusOK, view)
}

// GetState handles GET /dashboard/state
// Returns the raw ViewState
func (h *DashboardHandler) GetState(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.poller.Snapshot())
}

// SetFilter handles PUT /dashboard/filter
func (h *DashboardHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req models.SetFilterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	filter, err := models.ParseRegionFilter(req.Region)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	h.poller.SetFilter(filter)

	middleware.JSONResponse(w, http.StatusAccepted, models.SetFilterRequest{Region: string(filter)})
}

// Refresh handles POST /dashboard/refresh
// Runs one fetch cycle with the current filter and waits for it. Failed
// sub-fetches are reported but the response is still 200, since the
// previous data is kept.
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	err := h.poller.Refresh(r.Context())
	if err == nil {
		middleware.JSONResponse(w, http.StatusOK, models.RefreshResponse{Message: "refreshed"})
		return
	}

	slog.Warn("on-demand refresh incomplete", "error", err)

	middleware.JSONResponse(w, http.StatusOK, models.RefreshResponse{
		Message: "refreshed with errors",
		Errors:  errorMessages(err),
	})
}

// GetRegions handles GET /dashboard/regions
func (h *DashboardHandler) GetRegions(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.RegionsResponse{Regions: models.Regions})
}

// errorMessages flattens a joined error into one message per cause
func errorMessages(err error) []string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		msgs := []string{}
		for _, e := range joined.Unwrap() {
			msgs = append(msgs, e.Error())
		}
		return msgs
	}
	return []string{err.Error()}
}
