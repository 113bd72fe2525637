package service

import (
	"net/http"

	"github.com/reposelink/reposelink/internal/billing"
	"github.com/reposelink/reposelink/internal/models"
	"github.com/reposelink/reposelink/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := s.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		s.logger.Error("failed to generate token", "user_id", user.ID, "error", err)
		writeError(w, err)
		return
	}

	// A fresh session gets the seeded demo dataset.
	s.store.Initialize(r.Context(), user.ID)

	writeJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req session.RegisterInput
	if !decode(w, r, &req) {
		return
	}

	user, err := s.sessions.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		s.logger.Error("failed to generate token", "user_id", user.ID, "error", err)
		writeError(w, err)
		return
	}

	s.store.Initialize(r.Context(), user.ID)

	writeJSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Logout(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user := s.sessions.CurrentUser()
	if user == nil {
		writeError(w, session.ErrNotAuthenticated)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var update session.UserUpdate
	if !decode(w, r, &update) {
		return
	}

	user, err := s.sessions.UpdateUser(r.Context(), update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type planInfo struct {
	Plan  models.Plan `json:"plan"`
	Price float64     `json:"price"`
}

func (s *Server) handlePlans(w http.ResponseWriter, _ *http.Request) {
	plans := []planInfo{
		{Plan: models.PlanFree, Price: billing.PlanPrice(models.PlanFree)},
		{Plan: models.PlanProfessional, Price: billing.PlanPrice(models.PlanProfessional)},
		{Plan: models.PlanPremium, Price: billing.PlanPrice(models.PlanPremium)},
	}
	writeJSON(w, http.StatusOK, plans)
}
