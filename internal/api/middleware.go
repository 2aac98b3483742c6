package api

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"
	"github.com/felixge/httpsnoop"
	"github.com/rs/cors"

	"github.com/NeroQue/course-generator-backend/internal/api/handlers"
	"github.com/NeroQue/course-generator-backend/internal/models"
	"github.com/NeroQue/course-generator-backend/pkg/session"
)

// AuthGate resolves the bearer token on a request into an identity.
// By default it lets everyone through and marks unknown callers as guests.
type AuthGate struct {
	Sessions *session.Store

	FailClosed    bool // reject missing or unknown tokens with 401
	EnforceExpiry bool // treat expired sessions like unknown ones

	now func() time.Time
}

// NewAuthGate creates a gate over the session store
func NewAuthGate(sessions *session.Store, failClosed, enforceExpiry bool) *AuthGate {
	return &AuthGate{
		Sessions:      sessions,
		FailClosed:    failClosed,
		EnforceExpiry: enforceExpiry,
		now:           time.Now,
	}
}

// Wrap puts the gate in front of next
func (g *AuthGate) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := g.resolve(handlers.BearerToken(r))
		if !ok && g.FailClosed {
			handlers.SendErrorResponse(w, "Authentication required", http.StatusUnauthorized, "Rejected unauthenticated request", nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(session.WithIdentity(r.Context(), identity)))
	})
}

// resolve maps a token to an identity, ok is false for a guest
func (g *AuthGate) resolve(token string) (models.RequestIdentity, bool) {
	if token == "" {
		return models.GuestIdentity(""), false
	}

	record, found := g.Sessions.Get(token)
	if found && g.EnforceExpiry && record.IsExpired(g.now()) {
		found = false
	}
	if !found {
		log.Warn("Unknown session token, continuing as guest", "token", maskToken(token))
		return models.GuestIdentity(token), false
	}

	return models.RequestIdentity{
		User:  record.User(),
		Token: token,
	}, true
}

// maskToken keeps enough of a token to tell them apart in logs
func maskToken(token string) string {
	if len(token) <= 8 {
		return "***"
	}
	return token[:8] + "..."
}

// Recover turns a panic in a handler into a 500
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("Panic while handling request", "path", r.URL.Path, "panic", rec, "stack", string(debug.Stack()))
				handlers.SendErrorResponse(w, "Internal server error", http.StatusInternalServerError,
					"Recovered from panic", fmt.Errorf("%v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// RequestLogger logs one line per request with status, size and timing
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		log.Info("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", m.Code,
			"bytes", m.Written,
			"duration", m.Duration,
		)
	})
}

// CORS lets the frontend talk to the API. No origins means any origin.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	wildcard := len(allowedOrigins) == 0
	if wildcard {
		allowedOrigins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: !wildcard,
	})
	return c.Handler
}
