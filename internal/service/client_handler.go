package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reposelink/reposelink/internal/middleware"
	"github.com/reposelink/reposelink/internal/realtime"
)

func (s *Server) handleListClients(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Clients())
}

func (s *Server) handleAddClient(w http.ResponseWriter, r *http.Request) {
	var in realtime.ClientInput
	if !decode(w, r, &in) {
		return
	}
	// Owner is always the authenticated user, never the request body.
	in.OwnerID = middleware.GetUserID(r.Context())

	client, err := s.store.AddClient(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	client, err := s.store.GetClient(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	var update realtime.ClientUpdate
	if !decode(w, r, &update) {
		return
	}

	client, err := s.store.UpdateClient(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteClient(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleClientPayments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.GetClientPayments(chi.URLParam(r, "id")))
}
