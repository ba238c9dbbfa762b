package httpx

import (
	"net/http"

	"github.com/jobdeck/jobdeck/internal/domain/model"
	"github.com/jobdeck/jobdeck/internal/service"
)

// AuthHandlers provides HTTP handlers for registration, login, and
// token refresh.
type AuthHandlers struct {
	Svc *service.AuthService
}

// Register handles HTTP requests to create an account. A successful
// registration logs the user in immediately by returning a token pair.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	pair, err := h.Svc.Register(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, pair)
}

// Login handles HTTP requests to exchange credentials for a token pair.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	pair, err := h.Svc.Login(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, pair)
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// Refresh handles HTTP requests to mint a new access token from a
// refresh token.
func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	access, err := h.Svc.Refresh(r.Context(), req.Refresh)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"access": access})
}
