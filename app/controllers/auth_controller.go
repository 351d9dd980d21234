package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"journal/app/auth"
	"journal/app/middleware"
)

// AuthController handles registration, login and logout
type AuthController struct {
	gate *auth.Service
}

// NewAuthController creates a new AuthController
func NewAuthController(gate *auth.Service) *AuthController {
	return &AuthController{gate: gate}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new user and opens a session for it
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, token, err := ac.gate.Register(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			sendError(w, "Username already taken!", http.StatusConflict)
			return
		}
		sendTypedError(w, err, "")
		return
	}

	sendJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Login authenticates a user and issues a session token
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	token, err := ac.gate.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrAuthenticationFailed) {
			sendError(w, "Unable to validate login. Try again.", http.StatusUnauthorized)
			return
		}
		sendTypedError(w, err, "")
		return
	}

	sendJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Logout invalidates the session token. Idempotent.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	ac.gate.Logout(middleware.TokenFromRequest(r))
	w.WriteHeader(http.StatusNoContent)
}
