// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultIdentityURL is the identity provider used when none is configured
const DefaultIdentityURL = "https://identitytoolkit.googleapis.com/v1"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrMissingCredentials  = errors.New("email and password are required")
	ErrNotConfigured       = errors.New("identity provider not configured")
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

// Provider error codes that mean the credentials were rejected
var rejectionCodes = map[string]bool{
	"EMAIL_NOT_FOUND":           true,
	"INVALID_PASSWORD":          true,
	"INVALID_LOGIN_CREDENTIALS": true,
	"INVALID_EMAIL":             true,
	"USER_DISABLED":             true,
	"MISSING_PASSWORD":          true,
}

// Session is the result of a successful credential exchange.
// The tokens are opaque to this service.
type Session struct {
	UserID       string
	Email        string
	IDToken      string
	RefreshToken string
	ExpiresIn    int // seconds
}

// Client exchanges email/password credentials with the identity provider
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates an identity client. An empty baseURL uses
// DefaultIdentityURL; a nil httpClient uses http.DefaultClient.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultIdentityURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpClient,
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type providerError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn exchanges email and password for a session.
// Rejected credentials return an error wrapping ErrInvalidCredentials;
// transport or provider failures wrap ErrProviderUnavailable.
func (c *Client) SignIn(ctx context.Context, email, password string) (Session, error) {
	if c.apiKey == "" {
		return Session{}, ErrNotConfigured
	}
	if email == "" || password == "" {
		return Session{}, ErrMissingCredentials
	}

	body, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return Session{}, fmt.Errorf("failed to encode sign-in request: %w", err)
	}

	endpoint := c.baseURL + "/accounts:signInWithPassword?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Session{}, fmt.Errorf("failed to build sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		var perr providerError
		json.Unmarshal(raw, &perr)
		code := providerCode(perr.Error.Message)
		if resp.StatusCode == http.StatusBadRequest && rejectionCodes[code] {
			return Session{}, fmt.Errorf("%w (%s)", ErrInvalidCredentials, code)
		}
		return Session{}, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var out signInResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return Session{}, fmt.Errorf("%w: invalid response: %v", ErrProviderUnavailable, err)
	}

	expiresIn, _ := strconv.Atoi(out.ExpiresIn)
	return Session{
		UserID:       out.LocalID,
		Email:        out.Email,
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

// providerCode strips the detail suffix from messages like
// "INVALID_PASSWORD : The password is invalid."
func providerCode(message string) string {
	code, _, _ := strings.Cut(message, " ")
	return strings.TrimSpace(code)
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for correlating attempts
	return hex.EncodeToString(sum[:8])
}
