package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/facegate/internal/config"
)

func TestConfigGet(t *testing.T) {
	cfg := &config.Config{
		Embedding: config.EmbeddingConfig{Model: "facenet512"},
		Store:     config.StoreConfig{Backend: "postgres"},
		Registry:  config.RegistryConfig{Threshold: 0.4},
		Models: config.ModelsConfig{
			Models: map[string]config.ModelSpec{
				"facenet512": {Dim: 512},
			},
		},
	}
	h := NewConfigHandler(cfg)

	req := httptest.NewRequest("GET", "/api/v1/config", nil)
	recorder := httptest.NewRecorder()
	h.Get(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var result struct {
		Model        string  `json:"model"`
		Dim          int     `json:"dim"`
		Threshold    float64 `json:"threshold"`
		StoreBackend string  `json:"store_backend"`
	}
	parseJSONResponse(t, recorder, &result)

	if result.Model != "facenet512" {
		t.Errorf("expected model 'facenet512', got '%s'", result.Model)
	}
	if result.Dim != 512 {
		t.Errorf("expected dim 512, got %d", result.Dim)
	}
	if result.Threshold != 0.4 {
		t.Errorf("expected threshold 0.4, got %f", result.Threshold)
	}
	if result.StoreBackend != "postgres" {
		t.Errorf("expected store_backend 'postgres', got '%s'", result.StoreBackend)
	}
}

func TestConfigGet_HidesConnectionStrings(t *testing.T) {
	cfg := &config.Config{
		Store: config.StoreConfig{
			Backend:     "postgres",
			DatabaseURL: "postgres://user:secret@db/facegate",
		},
	}
	h := NewConfigHandler(cfg)

	req := httptest.NewRequest("GET", "/api/v1/config", nil)
	recorder := httptest.NewRecorder()
	h.Get(recorder, req)

	var result map[string]any
	parseJSONResponse(t, recorder, &result)
	for key, value := range result {
		if s, ok := value.(string); ok && s == cfg.Store.DatabaseURL {
			t.Errorf("connection string leaked under key '%s'", key)
		}
	}
}
