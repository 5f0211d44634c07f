// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, view, request, and response types.

# Domain Types

Records produced by the results source. JSON tags follow the source's
wire format:

  - TallyRecord: nombre, sigla, votos
  - RegionResult: departamento, nombre, sigla, porcentaje
  - AuditEntry: fecha_hora, user_id, accion, id_mesa
  - DataEnvelope: {"data": [...]} wrapper used by every endpoint

# Regions

The nine department keys are fixed:

	La_Paz, Cochabamba, Santa_Cruz, Oruro, Potosí,
	Chuquisaca, Tarija, Pando, Beni

A RegionFilter is one of those keys or "all":

	filter, err := models.ParseRegionFilter("Oruro")

# View State

ViewState is the immutable snapshot held by the dashboard poller. Each
refresh produces a new value; published slices are never modified.

DashboardView is the render-ready form built from a ViewState: sorted bars
with percentages and colors, region map entries, and the audit feed.

# Request/Response Types

  - SetFilterRequest: region
  - LoginRequest: email, password
  - LoginResponse: role, email, user_id, id_token, expires_in
  - ErrorResponse: error, message
*/
package models
