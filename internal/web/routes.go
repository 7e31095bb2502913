package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/facegate/internal/registry"
	"github.com/kozaktomas/facegate/internal/web/handlers"
)

func (s *Server) setupRoutes(extractor handlers.Extractor, store registry.Store) {
	threshold := s.config.Registry.Threshold

	registerHandler := handlers.NewRegisterHandler(extractor, store, s.cache, threshold)
	loginHandler := handlers.NewLoginHandler(extractor, s.cache, s.sessionManager, threshold)
	studentsHandler := handlers.NewStudentsHandler(s.cache)
	configHandler := handlers.NewConfigHandler(s.config)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handlers.HealthCheck)

		r.Post("/register", registerHandler.Register)
		r.Post("/login", loginHandler.Login)
		r.Post("/logout", loginHandler.Logout)
		r.Get("/session", loginHandler.Session)

		r.Get("/students", studentsHandler.List)
		r.Post("/students/refresh", studentsHandler.Refresh)

		r.Get("/config", configHandler.Get)
	})
}
