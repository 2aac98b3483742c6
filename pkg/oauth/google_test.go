package oauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

func tokenServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.Form.Get("code") == "bad-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func fakeValidator(wantToken string) Validator {
	return func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		if token != wantToken || audience != "client-id" {
			return nil, errors.New("invalid token")
		}
		return &idtoken.Payload{
			Subject: "google-sub-1",
			Claims: map[string]interface{}{
				"email":   "ada@example.com",
				"name":    "Ada Lovelace",
				"picture": "https://example.com/ada.png",
			},
		}, nil
	}
}

func newTestProvider(t *testing.T, srv *httptest.Server, v Validator) *Google {
	t.Helper()
	g, err := NewGoogle("client-id", "secret", "http://localhost/callback",
		WithEndpoint(oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token", AuthStyle: oauth2.AuthStyleInParams}),
		WithValidator(v),
	)
	require.NoError(t, err)
	return g
}

func TestNewGoogle_NotConfigured(t *testing.T) {
	_, err := NewGoogle("", "secret", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGoogle_AuthCodeURL(t *testing.T) {
	g, err := NewGoogle("client-id", "secret", "http://localhost/callback")
	require.NoError(t, err)

	u, err := url.Parse(g.AuthCodeURL("state-123"))
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "state-123", u.Query().Get("state"))
	assert.Equal(t, "client-id", u.Query().Get("client_id"))
	assert.Contains(t, u.Query().Get("scope"), "email")
}

func TestGoogle_Exchange(t *testing.T) {
	srv := tokenServer(t, `{"access_token":"access-1","token_type":"Bearer","expires_in":3600,"id_token":"raw-id"}`)
	g := newTestProvider(t, srv, fakeValidator("raw-id"))

	before := time.Now()
	identity, err := g.Exchange(context.Background(), "good-code")
	require.NoError(t, err)

	assert.Equal(t, "google-sub-1", identity.User.UID)
	assert.Equal(t, "ada@example.com", identity.User.Email)
	assert.Equal(t, "Ada Lovelace", identity.User.DisplayName)
	assert.Equal(t, "https://example.com/ada.png", identity.User.PhotoURL)
	assert.Equal(t, "access-1", identity.Credential)
	assert.WithinDuration(t, before.Add(time.Hour), identity.ExpiresAt, 5*time.Second)
}

func TestGoogle_ExchangeFailures(t *testing.T) {
	t.Run("provider rejects code", func(t *testing.T) {
		srv := tokenServer(t, `{}`)
		g := newTestProvider(t, srv, fakeValidator("raw-id"))
		_, err := g.Exchange(context.Background(), "bad-code")
		assert.Error(t, err)
	})

	t.Run("no id token", func(t *testing.T) {
		srv := tokenServer(t, `{"access_token":"access-1","token_type":"Bearer","expires_in":3600}`)
		g := newTestProvider(t, srv, fakeValidator("raw-id"))
		_, err := g.Exchange(context.Background(), "good-code")
		assert.ErrorIs(t, err, ErrNoIDToken)
	})

	t.Run("id token fails validation", func(t *testing.T) {
		srv := tokenServer(t, `{"access_token":"access-1","token_type":"Bearer","id_token":"forged"}`)
		g := newTestProvider(t, srv, fakeValidator("raw-id"))
		_, err := g.Exchange(context.Background(), "good-code")
		assert.Error(t, err)
	})
}

func TestGoogle_ExchangeWithoutExpiry(t *testing.T) {
	srv := tokenServer(t, `{"access_token":"access-1","token_type":"Bearer","id_token":"raw-id"}`)
	g := newTestProvider(t, srv, fakeValidator("raw-id"))

	identity, err := g.Exchange(context.Background(), "good-code")
	require.NoError(t, err)
	assert.True(t, identity.ExpiresAt.IsZero())
}
