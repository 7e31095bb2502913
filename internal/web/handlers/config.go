package handlers

import (
	"net/http"

	"github.com/kozaktomas/facegate/internal/config"
)

// ConfigHandler exposes the effective runtime configuration.
type ConfigHandler struct {
	cfg *config.Config
}

// NewConfigHandler creates a config handler.
func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// Get handles GET /api/v1/config. Secrets and connection strings stay out of
// the response.
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"model":         h.cfg.Embedding.Model,
		"dim":           h.cfg.EmbeddingDim(),
		"threshold":     h.cfg.Registry.Threshold,
		"store_backend": h.cfg.Store.Backend,
	})
}
