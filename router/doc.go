// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the election dashboard API.

# Route Registration

	mux := router.NewRouter(poller, identityClient, st, cfg)

# Endpoints

Health:

	GET /health

Dashboard:

	GET  /dashboard          - Render-ready view of the latest snapshot
	GET  /dashboard/state    - Raw ViewState
	PUT  /dashboard/filter   - Switch region filter ({"region": "Oruro"} or "all")
	POST /dashboard/refresh  - Fetch now with the current filter
	GET  /dashboard/regions  - Region keys in display order

Login (administrators and electoral jurors):

	POST /login/admin
	POST /login/juror

Results backend, only with a local database and SERVE_SOURCE:

	GET /votos[?departamento=<key>]
	GET /auditoria
	GET /votos_por_departamento

st may be nil when results come from a remote backend.
*/
package router
