// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /dashboard", middleware.WithLogging(handler))

Each request gets an ID (reused from X-Request-ID when present) that is
echoed back in the response and attached to the completion log line
together with the status code and duration_ms.

# CORS Middleware

Enable cross-origin requests for the dashboard frontend:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, view)
	middleware.ErrorResponse(w, http.StatusBadRequest, "unknown region")

	var req models.SetFilterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Used to correlate login attempts through a salted hash.
*/
package middleware
