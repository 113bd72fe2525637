package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reposelink/reposelink/internal/middleware"
	"github.com/reposelink/reposelink/internal/realtime"
)

func (s *Server) handleListPayments(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Payments())
}

func (s *Server) handleAddPayment(w http.ResponseWriter, r *http.Request) {
	var in realtime.PaymentInput
	if !decode(w, r, &in) {
		return
	}
	in.OwnerID = middleware.GetUserID(r.Context())

	payment, err := s.store.AddPayment(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (s *Server) handleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	var update realtime.PaymentUpdate
	if !decode(w, r, &update) {
		return
	}

	payment, err := s.store.UpdatePayment(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}
