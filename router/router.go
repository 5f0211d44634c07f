// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/election-dashboard/cliparse"
	"github.com/danielhkuo/election-dashboard/dashboard"
	"github.com/danielhkuo/election-dashboard/handlers"
	"github.com/danielhkuo/election-dashboard/middleware"
	"github.com/danielhkuo/election-dashboard/source"
	"github.com/danielhkuo/election-dashboard/store"
)

// NewRouter registers every endpoint. The results backend endpoints are
// only served when st is non-nil and cfg.ServeSource is set.
func NewRouter(poller *dashboard.Poller, authenticator handlers.Authenticator, st *store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(poller, cfg)
	loginHandler := handlers.NewLoginHandler(authenticator, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Dashboard
	mux.HandleFunc("GET /dashboard", middleware.WithLogging(dashboardHandler.GetView))
	mux.HandleFunc("GET /dashboard/state", middleware.WithLogging(dashboardHandler.GetState))
	mux.HandleFunc("PUT /dashboard/filter", middleware.WithLogging(dashboardHandler.SetFilter))
	mux.HandleFunc("POST /dashboard/refresh", middleware.WithLogging(dashboardHandler.Refresh))
	mux.HandleFunc("GET /dashboard/regions", middleware.WithLogging(dashboardHandler.GetRegions))

	// Login
	mux.HandleFunc("POST /login/admin", middleware.WithLogging(loginHandler.LoginAdmin))
	mux.HandleFunc("POST /login/juror", middleware.WithLogging(loginHandler.LoginJuror))

	// Results backend endpoints served from the local database
	if st != nil && cfg.ServeSource {
		sourceHandler := handlers.NewSourceHandler(st)
		mux.HandleFunc("GET "+source.PathTallies, middleware.WithLogging(sourceHandler.GetTallies))
		mux.HandleFunc("GET "+source.PathAudit, middleware.WithLogging(sourceHandler.GetAuditLog))
		mux.HandleFunc("GET "+source.PathRegionResults, middleware.WithLogging(sourceHandler.GetRegionResults))
	}

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("election-dashboard API v1"))
	})

	return mux
}
