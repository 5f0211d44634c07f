// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/election-dashboard/auth"
	"github.com/danielhkuo/election-dashboard/models"
	"github.com/danielhkuo/election-dashboard/testutil"
)

// fakeAuthenticator accepts a single email/password pair, or fails with err
type fakeAuthenticator struct {
	email    string
	password string
	err      error
}

func (f *fakeAuthenticator) SignIn(ctx context.Context, email, password string) (auth.Session, error) {
	if f.err != nil {
		return auth.Session{}, f.err
	}
	if email == "" || password == "" {
		return auth.Session{}, auth.ErrMissingCredentials
	}
	if email != f.email || password != f.password {
		return auth.Session{}, fmt.Errorf("%w (INVALID_PASSWORD)", auth.ErrInvalidCredentials)
	}
	return auth.Session{
		UserID:    "uid-42",
		Email:     email,
		IDToken:   "token-42",
		ExpiresIn: 3600,
	}, nil
}

func TestLogin(t *testing.T) {
	valid := &fakeAuthenticator{email: "jurado@example.com", password: "s3cret"}

	tests := []struct {
		name           string
		authenticator  Authenticator
		admin          bool
		body           any
		expectedStatus int
		expectedRole   string
	}{
		{
			name:           "juror login",
			authenticator:  valid,
			body:           models.LoginRequest{Email: "jurado@example.com", Password: "s3cret"},
			expectedStatus: http.StatusOK,
			expectedRole:   models.RoleJuror,
		},
		{
			name:           "admin login",
			authenticator:  valid,
			admin:          true,
			body:           models.LoginRequest{Email: "jurado@example.com", Password: "s3cret"},
			expectedStatus: http.StatusOK,
			expectedRole:   models.RoleAdmin,
		},
		{
			name:           "wrong password",
			authenticator:  valid,
			body:           models.LoginRequest{Email: "jurado@example.com", Password: "nope"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing password",
			authenticator:  valid,
			body:           models.LoginRequest{Email: "jurado@example.com"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "provider unavailable",
			authenticator:  &fakeAuthenticator{err: fmt.Errorf("%w: status 503", auth.ErrProviderUnavailable)},
			body:           models.LoginRequest{Email: "a@b.c", Password: "pw"},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "provider not configured",
			authenticator:  &fakeAuthenticator{err: auth.ErrNotConfigured},
			admin:          true,
			body:           models.LoginRequest{Email: "a@b.c", Password: "pw"},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewLoginHandler(tt.authenticator, testutil.GetTestConfig())

			w := httptest.NewRecorder()
			if tt.admin {
				handler.LoginAdmin(w, testutil.MakeRequest("POST", "/login/admin", tt.body, nil))
			} else {
				handler.LoginJuror(w, testutil.MakeRequest("POST", "/login/juror", tt.body, nil))
			}

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus != http.StatusOK {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Message == "" {
					t.Error("Expected an error message")
				}
				return
			}

			var resp models.LoginResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Role != tt.expectedRole {
				t.Errorf("Expected role %s, got %s", tt.expectedRole, resp.Role)
			}
			if resp.IDToken != "token-42" || resp.UserID != "uid-42" || resp.ExpiresIn != 3600 {
				t.Errorf("Unexpected session in response: %+v", resp)
			}
		})
	}
}

func TestLogin_InvalidJSON(t *testing.T) {
	handler := NewLoginHandler(&fakeAuthenticator{}, testutil.GetTestConfig())

	req := httptest.NewRequest("POST", "/login/juror", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	handler.LoginJuror(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestLogin_RejectionMessageHidesProviderCode(t *testing.T) {
	handler := NewLoginHandler(&fakeAuthenticator{email: "a@b.c", password: "pw"}, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	handler.LoginAdmin(w, testutil.MakeRequest("POST", "/login/admin", models.LoginRequest{Email: "x@b.c", Password: "pw"}, nil))

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if strings.Contains(resp.Message, "INVALID_PASSWORD") {
		t.Errorf("Expected provider code to stay internal, got '%s'", resp.Message)
	}
}
