// Package http provides the HTTP handlers and routing for the DreamNotes
// API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/dreamnotes/internal/common"
	"github.com/dmitrijs2005/dreamnotes/internal/server/models"
	"github.com/go-chi/chi/v5"
)

// UserService defines the authentication operations required by the HTTP
// handlers.
type UserService interface {
	// Register creates a new user from a username and plaintext password.
	Register(ctx context.Context, username, password string) (*models.User, error)
	// Login verifies credentials and returns a signed access token.
	Login(ctx context.Context, username, password string) (string, error)
	// GetByID looks up a user by id.
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// UserHandler handles registration, login, and public user lookup.
type UserHandler struct {
	UserService UserService
}

// credentialsRequest is the JSON payload for registration and login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userResponse is the public view of a user. The password hash is never
// part of it.
type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// tokenResponse is the login response payload.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register handles user registration requests. It expects a JSON body with
// non-empty "username" and "password" fields and responds with the created
// user's public fields. A taken username yields 409.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			http.Error(w, "user already exists", http.StatusConflict)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(userResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
}

// Login handles login requests. On success it returns a bearer access
// token. Whether the username existed is not revealed: unknown user and
// wrong password produce the same 401.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	token, err := h.UserService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			http.Error(w, "incorrect username or password", http.StatusUnauthorized)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// GetByID handles public user lookup by id, returning public fields only.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(userResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
}
