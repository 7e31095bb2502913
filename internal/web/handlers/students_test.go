package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/facegate/internal/registry"
)

type studentsResponse struct {
	Count    int           `json:"count"`
	Students []studentJSON `json:"students"`
}

func TestStudentsList_All(t *testing.T) {
	_, cache := testStoreAndCache(
		seedRecord("Jiří Novák", "a123", testVector(0)),
		seedRecord("Bob", "b456", testVector(1)),
	)
	h := NewStudentsHandler(cache)

	req := httptest.NewRequest("GET", "/api/v1/students", nil)
	recorder := httptest.NewRecorder()
	h.List(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var result studentsResponse
	parseJSONResponse(t, recorder, &result)
	if result.Count != 2 || len(result.Students) != 2 {
		t.Fatalf("expected 2 students, got count=%d len=%d", result.Count, len(result.Students))
	}
	if result.Students[0].Name != "Jiří Novák" {
		t.Errorf("expected registration order preserved, got %+v", result.Students)
	}
}

func TestStudentsList_Query(t *testing.T) {
	_, cache := testStoreAndCache(
		seedRecord("Jiří Novák", "a123", testVector(0)),
		seedRecord("Bob", "b456", testVector(1)),
	)
	h := NewStudentsHandler(cache)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"DiacriticInsensitiveName", "jiri", []string{"Jiří Novák"}},
		{"StudentID", "b456", []string{"Bob"}},
		{"NoMatch", "zzz", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/students?q="+tc.query, nil)
			recorder := httptest.NewRecorder()
			h.List(recorder, req)

			assertStatusCode(t, recorder, http.StatusOK)

			var result studentsResponse
			parseJSONResponse(t, recorder, &result)
			if result.Count != len(tc.want) {
				t.Fatalf("expected %d matches, got %d", len(tc.want), result.Count)
			}
			for i, name := range tc.want {
				if result.Students[i].Name != name {
					t.Errorf("expected match %d to be '%s', got '%s'", i, name, result.Students[i].Name)
				}
			}
		})
	}
}

func TestStudentsList_NeverExposesEncoding(t *testing.T) {
	_, cache := testStoreAndCache(seedRecord("Alice", "a123", testVector(0)))
	h := NewStudentsHandler(cache)

	req := httptest.NewRequest("GET", "/api/v1/students", nil)
	recorder := httptest.NewRecorder()
	h.List(recorder, req)

	var result struct {
		Students []map[string]any `json:"students"`
	}
	parseJSONResponse(t, recorder, &result)
	if len(result.Students) != 1 {
		t.Fatalf("expected 1 student, got %d", len(result.Students))
	}
	if _, ok := result.Students[0]["encoding"]; ok {
		t.Error("embedding encoding must not appear in API responses")
	}
}

func TestStudentsRefresh(t *testing.T) {
	store, cache := testStoreAndCache(seedRecord("Alice", "a123", testVector(0)))
	h := NewStudentsHandler(cache)

	// Add a record behind the cache's back plus one with a broken encoding.
	store.Seed([]registry.Record{
		seedRecord("Alice", "a123", testVector(0)),
		seedRecord("Bob", "b456", testVector(1)),
		{Timestamp: "2024-09-03T10:00:00Z", StudentID: "c789", Name: "Broken", Encoding: "not,numbers"},
	})

	req := httptest.NewRequest("POST", "/api/v1/students/refresh", nil)
	recorder := httptest.NewRecorder()
	h.Refresh(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var result struct {
		Count   int `json:"count"`
		Skipped int `json:"skipped"`
	}
	parseJSONResponse(t, recorder, &result)
	if result.Count != 2 {
		t.Errorf("expected 2 admitted entries, got %d", result.Count)
	}
	if result.Skipped != 1 {
		t.Errorf("expected 1 skipped record, got %d", result.Skipped)
	}
}

func TestStudentsRefresh_FetchFailure(t *testing.T) {
	store, cache := testStoreAndCache(seedRecord("Alice", "a123", testVector(0)))
	store.FetchAllError = errDatabaseDown
	h := NewStudentsHandler(cache)

	req := httptest.NewRequest("POST", "/api/v1/students/refresh", nil)
	recorder := httptest.NewRecorder()
	h.Refresh(recorder, req)

	assertStatusCode(t, recorder, http.StatusInternalServerError)
}
