// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestProvider starts a fake identity provider that accepts a single
// email/password pair
func newTestProvider(t *testing.T, email, password string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/accounts:signInWithPassword" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("key") != "test-api-key" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":400,"message":"API key not valid. Please pass a valid API key."}}`))
			return
		}

		var req signInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if !req.ReturnSecureToken {
			t.Error("Expected returnSecureToken to be true")
		}

		w.Header().Set("Content-Type", "application/json")
		if req.Email != email {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":400,"message":"EMAIL_NOT_FOUND"}}`))
			return
		}
		if req.Password != password {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":400,"message":"INVALID_PASSWORD : The password is invalid."}}`))
			return
		}
		w.Write([]byte(`{"localId":"uid-123","email":"` + email + `","idToken":"id-token","refreshToken":"refresh-token","expiresIn":"3600"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSignIn(t *testing.T) {
	srv := newTestProvider(t, "jurado@example.com", "s3cret")
	client := NewClient(srv.URL, "test-api-key", srv.Client())

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid credentials", "jurado@example.com", "s3cret", nil},
		{"wrong password", "jurado@example.com", "nope", ErrInvalidCredentials},
		{"unknown email", "otro@example.com", "s3cret", ErrInvalidCredentials},
		{"empty email", "", "s3cret", ErrMissingCredentials},
		{"empty password", "jurado@example.com", "", ErrMissingCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := client.SignIn(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("SignIn() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SignIn() error = %v", err)
			}

			if session.UserID != "uid-123" {
				t.Errorf("UserID = %q, want uid-123", session.UserID)
			}
			if session.Email != tt.email {
				t.Errorf("Email = %q, want %q", session.Email, tt.email)
			}
			if session.IDToken != "id-token" || session.RefreshToken != "refresh-token" {
				t.Errorf("unexpected tokens: %+v", session)
			}
			if session.ExpiresIn != 3600 {
				t.Errorf("ExpiresIn = %d, want 3600", session.ExpiresIn)
			}
		})
	}
}

func TestSignIn_ProviderFailures(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		client := NewClient("", "", nil)
		if _, err := client.SignIn(context.Background(), "a@b.c", "pw"); !errors.Is(err, ErrNotConfigured) {
			t.Errorf("expected ErrNotConfigured, got %v", err)
		}
	})

	t.Run("bad api key is not a credential rejection", func(t *testing.T) {
		srv := newTestProvider(t, "a@b.c", "pw")
		client := NewClient(srv.URL, "wrong-key", srv.Client())
		_, err := client.SignIn(context.Background(), "a@b.c", "pw")
		if !errors.Is(err, ErrProviderUnavailable) {
			t.Errorf("expected ErrProviderUnavailable, got %v", err)
		}
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "k", srv.Client())
		_, err := client.SignIn(context.Background(), "a@b.c", "pw")
		if !errors.Is(err, ErrProviderUnavailable) {
			t.Errorf("expected ErrProviderUnavailable, got %v", err)
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		client := NewClient(url, "k", nil)
		_, err := client.SignIn(context.Background(), "a@b.c", "pw")
		if !errors.Is(err, ErrProviderUnavailable) {
			t.Errorf("expected ErrProviderUnavailable, got %v", err)
		}
	})
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("", "k", nil)
	if client.baseURL != DefaultIdentityURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultIdentityURL)
	}
	if client.http != http.DefaultClient {
		t.Error("expected http.DefaultClient")
	}

	client = NewClient("http://idp.local/v1/", "k", nil)
	if client.baseURL != "http://idp.local/v1" {
		t.Errorf("trailing slash not trimmed: %q", client.baseURL)
	}
}

func TestProviderCode(t *testing.T) {
	tests := map[string]string{
		"INVALID_PASSWORD : The password is invalid.": "INVALID_PASSWORD",
		"EMAIL_NOT_FOUND":                             "EMAIL_NOT_FOUND",
		"":                                            "",
	}
	for in, want := range tests {
		if got := providerCode(in); got != want {
			t.Errorf("providerCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHashIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		salt string
	}{
		{"IPv4", "192.168.1.1", "ip-salt"},
		{"IPv6", "2001:0db8:85a3::8a2e:0370:7334", "ip-salt"},
		{"localhost", "127.0.0.1", "ip-salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := HashIP(tt.ip, tt.salt)

			// Should not be empty
			if hash == "" {
				t.Error("HashIP() returned empty string")
			}

			// Should be 16 hex characters (8 bytes * 2)
			if len(hash) != 16 {
				t.Errorf("HashIP() length = %d, want 16", len(hash))
			}

			// Should be valid hex
			for _, c := range hash {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("HashIP() contains invalid hex char: %c", c)
				}
			}

			// Should be deterministic
			hash2 := HashIP(tt.ip, tt.salt)
			if hash != hash2 {
				t.Error("HashIP() is not deterministic")
			}
		})
	}

	// Different IPs should produce different hashes
	hash1 := HashIP("192.168.1.1", "salt")
	hash2 := HashIP("192.168.1.2", "salt")
	if hash1 == hash2 {
		t.Error("HashIP() produced same hash for different IPs")
	}

	// Different salts should produce different hashes
	hash3 := HashIP("192.168.1.1", "salt1")
	hash4 := HashIP("192.168.1.1", "salt2")
	if hash3 == hash4 {
		t.Error("HashIP() produced same hash for different salts")
	}
}

func BenchmarkHashIP(b *testing.B) {
	for i := 0; i < b.N; i++ {
		HashIP("192.168.1.1", "ip-salt")
	}
}
