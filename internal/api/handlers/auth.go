package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/NeroQue/course-generator-backend/internal/models"
	"github.com/NeroQue/course-generator-backend/internal/services"
)

// CallbackRequest is the body of POST /auth/google/callback
type CallbackRequest struct {
	Code    string       `json:"code"`
	User    *models.User `json:"user,omitempty"`
	IDToken string       `json:"idToken,omitempty"` // credential for a client-verified user when code is empty
}

// TokenRequest carries a session token in the body
type TokenRequest struct {
	SessionToken string `json:"sessionToken"`
}

type authURLResponse struct {
	AuthURL string `json:"authUrl"`
}

type sessionResponse struct {
	Success      bool        `json:"success"`
	SessionToken string      `json:"sessionToken"`
	User         models.User `json:"user"`
}

type userResponse struct {
	Success bool        `json:"success"`
	User    models.User `json:"user"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// AuthHandler processes login, session and profile requests
type AuthHandler struct {
	Service *services.AuthService
}

// NewAuthHandler creates handler with injected service
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{Service: service}
}

// GoogleURL handles GET /auth/google - returns the consent page url
func (h *AuthHandler) GoogleURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.Service.AuthURL()
	if err != nil {
		SendErrorResponse(w, "Google sign-in is not configured", http.StatusServiceUnavailable, "Auth url requested without provider", err)
		return
	}
	SendJSON(w, http.StatusOK, authURLResponse{AuthURL: url})
}

// GoogleCallback handles POST /auth/google/callback - trades a code or a
// client-verified user for a session token
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	var req CallbackRequest
	if err := ValidateJSONBody(r, &req); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, "Invalid callback body", err)
		return
	}

	assertion, err := services.ParseAssertion(req.Code, req.User, req.IDToken)
	if err != nil {
		SendErrorResponse(w, "Either code or user with uid is required", http.StatusBadRequest, "Invalid identity assertion", err)
		return
	}

	token, user, err := h.Service.Exchange(r.Context(), assertion)
	if err != nil {
		SendErrorResponse(w, "Authentication failed", http.StatusUnauthorized, "Identity exchange failed", err)
		return
	}

	log.Printf("User %s signed in", user.UID)
	SendJSON(w, http.StatusOK, sessionResponse{
		Success:      true,
		SessionToken: token,
		User:         user,
	})
}

// Verify handles POST /auth/verify - checks a token is live
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := ValidateJSONBody(r, &req); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, "Invalid verify body", err)
		return
	}

	user, err := h.Service.Verify(req.SessionToken)
	if err != nil {
		message := "Invalid session"
		if errors.Is(err, services.ErrSessionExpired) {
			message = "Session expired"
		}
		SendErrorResponse(w, message, http.StatusUnauthorized, "Session verification failed", err)
		return
	}

	SendJSON(w, http.StatusOK, userResponse{Success: true, User: user})
}

// Logout handles POST /auth/logout - token from the body or the bearer header.
// Always succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if r.Body != nil {
		// body is optional here
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	token := req.SessionToken
	if token == "" {
		token = BearerToken(r)
	}
	h.Service.Logout(token)

	SendJSON(w, http.StatusOK, successResponse{Success: true})
}

// Profile handles GET /user/profile - looks up the bearer token's user
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.Profile(BearerToken(r))
	if err != nil {
		SendErrorResponse(w, "Invalid session", http.StatusUnauthorized, "Profile lookup failed", err)
		return
	}

	SendJSON(w, http.StatusOK, userResponse{Success: true, User: user})
}
