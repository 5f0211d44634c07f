// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/election-dashboard/cliparse"
	"github.com/danielhkuo/election-dashboard/db"
	"github.com/danielhkuo/election-dashboard/models"
)

// TestDBURL opens a private in-memory SQLite database
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           cliparse.DefaultPort,
		DatabaseURL:    TestDBURL,
		DatabaseType:   db.TypeSQLite,
		PollInterval:   cliparse.DefaultPollInterval,
		RequestTimeout: time.Second,
		AuditLimit:     cliparse.DefaultAuditLimit,
		IPHashSalt:     "test-ip-salt",
	}
}

// CreateTestParty inserts an active party and returns its ID
func CreateTestParty(t *testing.T, conn *sql.DB, name, shortCode string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO party (id, name, short_code, status)
		VALUES ($1, $2, $3, 'activo')
	`, id, name, shortCode)
	if err != nil {
		t.Fatalf("Failed to create test party: %v", err)
	}

	return id
}

// CreateTestStation inserts a ballot station in region and returns its ID
func CreateTestStation(t *testing.T, conn *sql.DB, region models.Region) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO station (id, region, municipality, venue)
		VALUES ($1, $2, 'Municipio_1', 'Recinto_1')
	`, id, string(region))
	if err != nil {
		t.Fatalf("Failed to create test station: %v", err)
	}

	return id
}

// AddTestVotes records votes for a party at a station
func AddTestVotes(t *testing.T, conn *sql.DB, stationID, partyID string, votes int) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO vote (station_id, party_id, votes, recorded_at)
		VALUES ($1, $2, $3, '2025-08-17 12:00:00')
	`, stationID, partyID, votes)
	if err != nil {
		t.Fatalf("Failed to add test votes: %v", err)
	}
}

// AddTestAuditEntry appends an audit entry with the given sequence number
func AddTestAuditEntry(t *testing.T, conn *sql.DB, seq int, entry models.AuditEntry) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO audit_log (seq, station_id, user_id, action, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
	`, seq, entry.StationID, entry.ActorID, entry.Action, entry.Timestamp)
	if err != nil {
		t.Fatalf("Failed to add test audit entry: %v", err)
	}
}

// FakeSource is an in-memory data source with canned responses.
// Errors, when set, are returned instead of the data.
type FakeSource struct {
	mu sync.Mutex

	TalliesData  []models.TallyRecord
	AuditData    []models.AuditEntry
	RegionData   []models.RegionResult
	TalliesErr   error
	AuditErr     error
	RegionErr    error
	TallyFilters []models.RegionFilter
}

func (f *FakeSource) Tallies(ctx context.Context, filter models.RegionFilter) ([]models.TallyRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TallyFilters = append(f.TallyFilters, filter)
	if f.TalliesErr != nil {
		return nil, f.TalliesErr
	}
	return f.TalliesData, nil
}

func (f *FakeSource) AuditLog(ctx context.Context) ([]models.AuditEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.AuditErr != nil {
		return nil, f.AuditErr
	}
	return f.AuditData, nil
}

func (f *FakeSource) RegionResults(ctx context.Context) ([]models.RegionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RegionErr != nil {
		return nil, f.RegionErr
	}
	return f.RegionData, nil
}

// Filters returns the filters Tallies was called with
func (f *FakeSource) Filters() []models.RegionFilter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.RegionFilter(nil), f.TallyFilters...)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
