// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the election dashboard API.

# Handler Types

Each handler is a struct built by a constructor:

  - DashboardHandler: snapshot, view model, filter and refresh
  - LoginHandler: administrator and juror login
  - SourceHandler: results backend endpoints served from the local database

	dashboardHandler := handlers.NewDashboardHandler(poller, cfg)
	loginHandler := handlers.NewLoginHandler(identityClient, cfg)
	sourceHandler := handlers.NewSourceHandler(st)

# Dashboard

	GET  /dashboard         → GetView (BuildView of the latest snapshot)
	GET  /dashboard/state   → GetState (raw ViewState)
	PUT  /dashboard/filter  → SetFilter (400 for unknown regions)
	POST /dashboard/refresh → Refresh (fetch failures listed, old data kept)
	GET  /dashboard/regions → GetRegions

Handlers only read the poller's snapshot, so a failing results source
never turns into an error response on the read endpoints.

# Login

	POST /login/admin → LoginAdmin
	POST /login/juror → LoginJuror

Rejected credentials return 401, missing fields 400, and an unreachable
identity provider 502. Attempts are logged with a salted hash of the
client IP instead of the address itself.
*/
package handlers
