// Package service exposes the session and realtime stores over an HTTP JSON
// API. The dashboard, auth and payment pages are its only consumers.
package service

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reposelink/reposelink/internal/auth"
	"github.com/reposelink/reposelink/internal/middleware"
	"github.com/reposelink/reposelink/internal/realtime"
	"github.com/reposelink/reposelink/internal/session"
)

// Server bundles the two stores and the token manager behind the API routes.
type Server struct {
	sessions *session.Store
	store    *realtime.Store
	jwt      *auth.JWTManager
	logger   *slog.Logger
}

// NewServer creates a Server over the given stores.
func NewServer(sessions *session.Store, store *realtime.Store, jwt *auth.JWTManager, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		sessions: sessions,
		store:    store,
		jwt:      jwt,
		logger:   logger,
	}
}

// Router builds the chi router for the API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/register", s.handleRegister)
		r.Get("/plans", s.handlePlans)

		// Everything below requires a session token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(s.jwt))

			r.Post("/auth/logout", s.handleLogout)
			r.Get("/auth/me", s.handleCurrentUser)
			r.Patch("/auth/me", s.handleUpdateUser)

			r.Get("/clients", s.handleListClients)
			r.Post("/clients", s.handleAddClient)
			r.Get("/clients/{id}", s.handleGetClient)
			r.Patch("/clients/{id}", s.handleUpdateClient)
			r.Delete("/clients/{id}", s.handleDeleteClient)
			r.Get("/clients/{id}/payments", s.handleClientPayments)

			r.Get("/payments", s.handleListPayments)
			r.Post("/payments", s.handleAddPayment)
			r.Patch("/payments/{id}", s.handleUpdatePayment)

			r.Get("/notifications", s.handleListNotifications)
			r.Post("/notifications", s.handleAddNotification)
			r.Post("/notifications/{id}/read", s.handleMarkNotificationRead)
			r.Delete("/notifications", s.handleClearNotifications)
			r.Get("/notifications/unread-count", s.handleUnreadCount)

			r.Get("/sync/status", s.handleSyncStatus)
			r.Post("/sync", s.handleSync)
			r.Get("/dashboard/stats", s.handleDashboardStats)
			r.Post("/demo/initialize", s.handleInitializeDemo)
		})
	})

	return r
}
