// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package source is the HTTP client for the election results backend.

# Endpoints

	GET /votos[?departamento=<key>]  → {"data": TallyRecord[]}
	GET /auditoria                   → {"data": AuditEntry[]}
	GET /votos_por_departamento      → {"data": RegionResult[]}

Client implements dashboard.Source:

	c := source.NewClient("http://localhost:5000", &http.Client{})
	p := dashboard.NewPoller(c, 20, 4*time.Second)

# Errors

Transport failures, non-200 responses, and undecodable bodies are returned
as *NetworkError:

	var netErr *source.NetworkError
	if errors.As(err, &netErr) {
		slog.Warn("backend unavailable", "endpoint", netErr.Endpoint)
	}
*/
package source
