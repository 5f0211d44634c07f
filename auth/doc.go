// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth signs administrators and electoral jurors in with the
identity provider.

# Credential Exchange

Client posts email and password to the provider's signInWithPassword
endpoint and returns an opaque Session:

	client := auth.NewClient(cfg.IdentityURL, cfg.IdentityAPIKey, nil)
	session, err := client.SignIn(ctx, email, password)

The ID token is passed through to the browser unchanged. This service
does not inspect, store, or refresh it.

# Errors

	ErrInvalidCredentials  - provider rejected the email/password
	ErrMissingCredentials  - email or password empty
	ErrNotConfigured       - no API key configured
	ErrProviderUnavailable - transport failure or unexpected response

Rejections are shown to the user and never retried.

# IP Hashing

For privacy-preserving login logs:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
