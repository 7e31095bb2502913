package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/facegate/internal/constants"
	"github.com/kozaktomas/facegate/internal/embedding"
)

func TestRegister_NewStudent(t *testing.T) {
	store, cache := testStoreAndCache()
	extractor := &stubExtractor{embedding: testVector(0)}
	h := NewRegisterHandler(extractor, store, cache, constants.DefaultMatchThreshold)

	req := multipartPhotoRequest(t, "/api/v1/register", map[string]string{
		"name":       "Alice",
		"student_id": "a123",
	})
	recorder := httptest.NewRecorder()
	h.Register(recorder, req)

	assertStatusCode(t, recorder, http.StatusCreated)

	var result struct {
		Status  string      `json:"status"`
		Student studentJSON `json:"student"`
	}
	parseJSONResponse(t, recorder, &result)

	if result.Status != "registered" {
		t.Errorf("expected status 'registered', got '%s'", result.Status)
	}
	if result.Student.Name != "Alice" || result.Student.StudentID != "a123" {
		t.Errorf("unexpected student in response: %+v", result.Student)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 stored record, got %d", store.Len())
	}
}

func TestRegister_DuplicateFaceSkipped(t *testing.T) {
	store, cache := testStoreAndCache(seedRecord("Alice", "a123", testVector(0)))
	extractor := &stubExtractor{embedding: testVector(0)}
	h := NewRegisterHandler(extractor, store, cache, constants.DefaultMatchThreshold)

	req := multipartPhotoRequest(t, "/api/v1/register", map[string]string{
		"name":       "Mallory",
		"student_id": "m666",
	})
	recorder := httptest.NewRecorder()
	h.Register(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var result struct {
		Status      string `json:"status"`
		MatchedName string `json:"matched_name"`
	}
	parseJSONResponse(t, recorder, &result)

	if result.Status != "skipped" {
		t.Errorf("expected status 'skipped', got '%s'", result.Status)
	}
	if result.MatchedName != "Alice" {
		t.Errorf("expected matched_name 'Alice', got '%s'", result.MatchedName)
	}
	if store.AppendCalls != 0 {
		t.Errorf("expected no append for duplicate face, got %d", store.AppendCalls)
	}
}

func TestRegister_SecondSnapshotSeesNewRecord(t *testing.T) {
	store, cache := testStoreAndCache()
	extractor := &stubExtractor{embedding: testVector(0)}
	h := NewRegisterHandler(extractor, store, cache, constants.DefaultMatchThreshold)

	first := multipartPhotoRequest(t, "/api/v1/register", map[string]string{
		"name":       "Alice",
		"student_id": "a123",
	})
	h.Register(httptest.NewRecorder(), first)

	// Same face under another identity must now be deduplicated.
	second := multipartPhotoRequest(t, "/api/v1/register", map[string]string{
		"name":       "Alice Again",
		"student_id": "a999",
	})
	recorder := httptest.NewRecorder()
	h.Register(recorder, second)

	assertStatusCode(t, recorder, http.StatusOK)
	if store.Len() != 1 {
		t.Errorf("expected 1 stored record after duplicate attempt, got %d", store.Len())
	}
}

func TestRegister_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
	}{
		{"MissingName", map[string]string{"student_id": "a123"}},
		{"MissingStudentID", map[string]string{"name": "Alice"}},
		{"BlankName", map[string]string{"name": "   ", "student_id": "a123"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store, cache := testStoreAndCache()
			extractor := &stubExtractor{embedding: testVector(0)}
			h := NewRegisterHandler(extractor, store, cache, constants.DefaultMatchThreshold)

			req := multipartPhotoRequest(t, "/api/v1/register", tc.fields)
			recorder := httptest.NewRecorder()
			h.Register(recorder, req)

			assertStatusCode(t, recorder, http.StatusBadRequest)
			if store.AppendCalls != 0 {
				t.Errorf("expected no append on validation failure, got %d", store.AppendCalls)
			}
		})
	}
}

func TestRegister_MissingPhoto(t *testing.T) {
	store, cache := testStoreAndCache()
	extractor := &stubExtractor{embedding: testVector(0)}
	h := NewRegisterHandler(extractor, store, cache, constants.DefaultMatchThreshold)

	req := httptest.NewRequest("POST", "/api/v1/register", nil)
	recorder := httptest.NewRecorder()
	h.Register(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadRequest)
}

func TestRegister_ExtractorErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"NoFace", embedding.ErrNoFace, http.StatusBadRequest},
		{"MultipleFaces", embedding.ErrMultipleFaces, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store, cache := testStoreAndCache()
			h := NewRegisterHandler(&stubExtractor{err: tc.err}, store, cache, constants.DefaultMatchThreshold)

			req := multipartPhotoRequest(t, "/api/v1/register", map[string]string{
				"name":       "Alice",
				"student_id": "a123",
			})
			recorder := httptest.NewRecorder()
			h.Register(recorder, req)

			assertStatusCode(t, recorder, tc.want)
		})
	}
}

func TestRegister_StoreFetchFailure(t *testing.T) {
	store, cache := testStoreAndCache()
	store.FetchAllError = errDatabaseDown
	h := NewRegisterHandler(&stubExtractor{embedding: testVector(0)}, store, cache, constants.DefaultMatchThreshold)

	req := multipartPhotoRequest(t, "/api/v1/register", map[string]string{
		"name":       "Alice",
		"student_id": "a123",
	})
	recorder := httptest.NewRecorder()
	h.Register(recorder, req)

	assertStatusCode(t, recorder, http.StatusInternalServerError)
}
