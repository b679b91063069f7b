package api

import (
	"encoding/json"
	"net/http"

	"github.com/reminisce-app/journal-server/internal/api/respond"
	"github.com/reminisce-app/journal-server/internal/api/validate"
	"github.com/reminisce-app/journal-server/internal/session"
)

// AuthHandler exposes the session manager over HTTP. The service carries one
// active session, matching the single-user device the API fronts for.
type AuthHandler struct {
	sess *session.Manager
}

func NewAuthHandler(sess *session.Manager) *AuthHandler { return &AuthHandler{sess: sess} }

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	// required-presence only; email format and password strength are not
	// checked, matching the signup contract
	if err := validate.NonEmpty("name", req.Name); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.NonEmpty("email", req.Email); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.NonEmpty("password", req.Password); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	ok, err := h.sess.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	if !ok {
		respond.WriteConflict(w, "email already registered")
		return
	}
	respond.WriteJSON(w, http.StatusCreated, h.sess.Current())
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	ok, err := h.sess.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	if !ok {
		respond.WriteUnauthorized(w, "invalid credentials")
		return
	}
	respond.WriteJSON(w, http.StatusOK, h.sess.Current())
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sess.Logout(r.Context()); err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSession GET /api/auth/session
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	u := h.sess.Current()
	if u == nil {
		respond.WriteNotFound(w, "no active session")
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}

// UpdateProfile PATCH /api/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.NonEmpty("name", req.Name); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	u, err := h.sess.UpdateProfile(r.Context(), req.Name)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	if u == nil {
		respond.WriteUnauthorized(w, "not authenticated")
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}
