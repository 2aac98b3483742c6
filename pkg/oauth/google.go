// Package oauth handles the Google OAuth2 code exchange and ID-token check.
package oauth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/NeroQue/course-generator-backend/internal/models"
)

var (
	// ErrNotConfigured means client id/secret are missing
	ErrNotConfigured = errors.New("google oauth is not configured")
	// ErrNoIDToken means the token response didn't carry an id_token
	ErrNoIDToken = errors.New("token response has no id_token")
)

var defaultScopes = []string{"openid", "email", "profile"}

// Validator checks a raw ID token against an audience
type Validator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// Google performs the authorization-code flow against Google
type Google struct {
	config   *oauth2.Config
	validate Validator
}

// Option tweaks the provider, mostly for tests
type Option func(*Google)

// WithEndpoint swaps Google's auth/token URLs
func WithEndpoint(endpoint oauth2.Endpoint) Option {
	return func(g *Google) {
		g.config.Endpoint = endpoint
	}
}

// WithValidator swaps the ID-token validator
func WithValidator(v Validator) Option {
	return func(g *Google) {
		g.validate = v
	}
}

// NewGoogle creates the provider from app credentials
func NewGoogle(clientID, clientSecret, redirectURL string, opts ...Option) (*Google, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrNotConfigured
	}

	g := &Google{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       defaultScopes,
			Endpoint:     google.Endpoint,
		},
		validate: idtoken.Validate,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// AuthCodeURL is the consent page the client should send the user to
func (g *Google) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades an authorization code for the user's identity.
// ExpiresAt is the access token's own expiry, zero if Google didn't say.
func (g *Google) Exchange(ctx context.Context, code string) (models.ProviderIdentity, error) {
	tok, err := g.config.Exchange(ctx, code)
	if err != nil {
		return models.ProviderIdentity{}, fmt.Errorf("exchanging code: %w", err)
	}

	rawID, _ := tok.Extra("id_token").(string)
	if rawID == "" {
		return models.ProviderIdentity{}, ErrNoIDToken
	}

	payload, err := g.validate(ctx, rawID, g.config.ClientID)
	if err != nil {
		return models.ProviderIdentity{}, fmt.Errorf("validating id token: %w", err)
	}

	return models.ProviderIdentity{
		User: models.User{
			UID:         payload.Subject,
			Email:       claim(payload, "email"),
			DisplayName: claim(payload, "name"),
			PhotoURL:    claim(payload, "picture"),
		},
		Credential: tok.AccessToken,
		ExpiresAt:  tok.Expiry,
	}, nil
}

func claim(p *idtoken.Payload, key string) string {
	if v, ok := p.Claims[key].(string); ok {
		return v
	}
	return ""
}
