package service

import (
	"net/http"

	"github.com/reposelink/reposelink/internal/billing"
	"github.com/reposelink/reposelink/internal/middleware"
	"github.com/reposelink/reposelink/internal/models"
)

func (s *Server) handleSyncStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Status())
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if err := s.store.SyncData(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.store.Status())
}

type dashboardResponse struct {
	Stats    billing.DashboardStats `json:"stats"`
	Upcoming []models.Client        `json:"upcomingServices"`
}

func (s *Server) handleDashboardStats(w http.ResponseWriter, _ *http.Request) {
	clients := s.store.Clients()
	writeJSON(w, http.StatusOK, dashboardResponse{
		Stats:    billing.Stats(clients, s.store.Payments()),
		Upcoming: billing.UpcomingServices(clients, 5),
	})
}

func (s *Server) handleInitializeDemo(w http.ResponseWriter, r *http.Request) {
	s.store.Initialize(r.Context(), middleware.GetUserID(r.Context()))
	writeJSON(w, http.StatusOK, map[string]string{"status": "initialized"})
}
