// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/danielhkuo/election-dashboard/models"
	"github.com/danielhkuo/election-dashboard/store"
	"github.com/danielhkuo/election-dashboard/testutil"
)

func newTestSourceHandler(t *testing.T) *SourceHandler {
	t.Helper()
	conn := testutil.SetupTestDB(t)

	un := testutil.CreateTestParty(t, conn, "Unidad Nacional", "UN")
	cc := testutil.CreateTestParty(t, conn, "Creemos", "CREEMOS")

	lp := testutil.CreateTestStation(t, conn, models.RegionLaPaz)
	sc := testutil.CreateTestStation(t, conn, models.RegionSantaCruz)

	testutil.AddTestVotes(t, conn, lp, un, 120)
	testutil.AddTestVotes(t, conn, lp, cc, 30)
	testutil.AddTestVotes(t, conn, sc, un, 10)
	testutil.AddTestVotes(t, conn, sc, cc, 90)

	testutil.AddTestAuditEntry(t, conn, 1, models.AuditEntry{
		Timestamp: "2025-08-17 09:00:00", ActorID: "Usuario_3", Action: models.ActionInsert, StationID: lp,
	})

	return NewSourceHandler(store.New(conn))
}

func TestSourceGetTallies(t *testing.T) {
	handler := newTestSourceHandler(t)

	tests := []struct {
		name           string
		region         string
		expectedStatus int
		expected       []models.TallyRecord
	}{
		{
			name:           "all regions",
			expectedStatus: http.StatusOK,
			expected: []models.TallyRecord{
				{Name: "Unidad Nacional", ShortCode: "UN", VoteCount: 130},
				{Name: "Creemos", ShortCode: "CREEMOS", VoteCount: 120},
			},
		},
		{
			name:           "single region",
			region:         "Santa_Cruz",
			expectedStatus: http.StatusOK,
			expected: []models.TallyRecord{
				{Name: "Creemos", ShortCode: "CREEMOS", VoteCount: 90},
				{Name: "Unidad Nacional", ShortCode: "UN", VoteCount: 10},
			},
		},
		{
			name:           "unknown region",
			region:         "Atlantis",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := "/votos"
			if tt.region != "" {
				path += "?departamento=" + url.QueryEscape(tt.region)
			}

			w := httptest.NewRecorder()
			handler.GetTallies(w, testutil.MakeRequest("GET", path, nil, nil))

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp models.DataEnvelope[models.TallyRecord]
			testutil.AssertJSON(t, w, &resp)
			if len(resp.Data) != len(tt.expected) {
				t.Fatalf("Expected %d tallies, got %d", len(tt.expected), len(resp.Data))
			}
			for i := range tt.expected {
				if resp.Data[i] != tt.expected[i] {
					t.Errorf("Tally %d: expected %+v, got %+v", i, tt.expected[i], resp.Data[i])
				}
			}
		})
	}
}

func TestSourceGetAuditLog(t *testing.T) {
	handler := newTestSourceHandler(t)

	w := httptest.NewRecorder()
	handler.GetAuditLog(w, testutil.MakeRequest("GET", "/auditoria", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.DataEnvelope[models.AuditEntry]
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Data) != 1 || resp.Data[0].ActorID != "Usuario_3" || resp.Data[0].Action != models.ActionInsert {
		t.Errorf("Unexpected audit log: %+v", resp.Data)
	}
}

func TestSourceGetRegionResults(t *testing.T) {
	handler := newTestSourceHandler(t)

	w := httptest.NewRecorder()
	handler.GetRegionResults(w, testutil.MakeRequest("GET", "/votos_por_departamento", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.DataEnvelope[models.RegionResult]
	testutil.AssertJSON(t, w, &resp)

	expected := []models.RegionResult{
		{RegionID: models.RegionLaPaz, WinningPartyName: "Unidad Nacional", WinningPartyCode: "UN", WinningPercentage: 80},
		{RegionID: models.RegionSantaCruz, WinningPartyName: "Creemos", WinningPartyCode: "CREEMOS", WinningPercentage: 90},
	}
	if len(resp.Data) != len(expected) {
		t.Fatalf("Expected %d results, got %+v", len(expected), resp.Data)
	}
	for i := range expected {
		if resp.Data[i] != expected[i] {
			t.Errorf("Result %d: expected %+v, got %+v", i, expected[i], resp.Data[i])
		}
	}
}
