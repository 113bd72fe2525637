package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reposelink/reposelink/internal/middleware"
	"github.com/reposelink/reposelink/internal/realtime"
)

func (s *Server) handleListNotifications(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Notifications())
}

func (s *Server) handleAddNotification(w http.ResponseWriter, r *http.Request) {
	var in realtime.NotificationInput
	if !decode(w, r, &in) {
		return
	}
	in.OwnerID = middleware.GetUserID(r.Context())

	notification, err := s.store.AddNotification(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, notification)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := s.store.MarkNotificationRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

func (s *Server) handleClearNotifications(w http.ResponseWriter, r *http.Request) {
	s.store.ClearNotifications(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handleUnreadCount(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"count": s.store.UnreadCount()})
}
