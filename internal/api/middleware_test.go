package api

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NeroQue/course-generator-backend/internal/models"
	"github.com/NeroQue/course-generator-backend/pkg/session"
)

// captureIdentity records what the gate attached to the request
func captureIdentity(got *models.RequestIdentity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = session.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func newGateStore(t *testing.T, now func() time.Time) *session.Store {
	t.Helper()
	return session.NewStore(filepath.Join(t.TempDir(), "sessions.json"), session.WithClock(now))
}

func TestAuthGate_FailOpen(t *testing.T) {
	store := newGateStore(t, time.Now)
	token, err := store.Create(models.User{UID: "uid-1", Email: "a@example.com"}, "", session.TTL(time.Hour))
	require.NoError(t, err)

	gate := NewAuthGate(store, false, false)

	t.Run("no header is a guest", func(t *testing.T) {
		var got models.RequestIdentity
		rec := httptest.NewRecorder()
		gate.Wrap(captureIdentity(&got)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/courses/generate", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.True(t, got.Guest)
		assert.Equal(t, models.GuestUserID, got.User.UID)
		assert.Empty(t, got.RejectedToken)
	})

	t.Run("unknown token is a guest that keeps the token", func(t *testing.T) {
		var got models.RequestIdentity
		req := httptest.NewRequest(http.MethodPost, "/courses/generate", nil)
		req.Header.Set("Authorization", "Bearer not-a-real-token")
		rec := httptest.NewRecorder()
		gate.Wrap(captureIdentity(&got)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.True(t, got.Guest)
		assert.Equal(t, models.GuestUserID, got.User.UID)
		assert.Equal(t, "not-a-real-token", got.RejectedToken)
	})

	t.Run("known token resolves", func(t *testing.T) {
		var got models.RequestIdentity
		req := httptest.NewRequest(http.MethodPost, "/courses/generate", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		gate.Wrap(captureIdentity(&got)).ServeHTTP(rec, req)

		assert.False(t, got.Guest)
		assert.Equal(t, "uid-1", got.User.UID)
		assert.Equal(t, token, got.Token)
	})
}

func TestAuthGate_ExpiryIsIgnoredByDefault(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := newGateStore(t, clock)

	token, err := store.Create(models.User{UID: "uid-1"}, "", session.TTL(time.Minute))
	require.NoError(t, err)
	now = now.Add(time.Hour) // past expiry, not swept yet

	lenient := NewAuthGate(store, false, false)
	lenient.now = clock
	strict := NewAuthGate(store, false, true)
	strict.now = clock

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	var got models.RequestIdentity
	lenient.Wrap(captureIdentity(&got)).ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "uid-1", got.User.UID)

	strict.Wrap(captureIdentity(&got)).ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, got.Guest)
	assert.Equal(t, token, got.RejectedToken)
}

func TestAuthGate_FailClosed(t *testing.T) {
	store := newGateStore(t, time.Now)
	token, err := store.Create(models.User{UID: "uid-1"}, "", session.TTL(time.Hour))
	require.NoError(t, err)

	gate := NewAuthGate(store, true, false)
	var got models.RequestIdentity

	rec := httptest.NewRecorder()
	gate.Wrap(captureIdentity(&got)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	gate.Wrap(captureIdentity(&got)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "uid-1", got.User.UID)
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something broke")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal server error"}`, rec.Body.String())
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	t.Run("any origin by default", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		CORS(nil)(ok).ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("restricted origins", func(t *testing.T) {
		handler := CORS([]string{"https://app.example.com"})(ok)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

		req = httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
