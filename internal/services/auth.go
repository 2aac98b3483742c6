package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/NeroQue/course-generator-backend/internal/models"
	"github.com/NeroQue/course-generator-backend/pkg/session"
)

// DefaultPreVerifiedTTL is how long a session from a client-verified user lives
const DefaultPreVerifiedTTL = 24 * time.Hour

// providerFallbackTTL is used when the provider doesn't say when its token expires
const providerFallbackTTL = time.Hour

// IdentityProvider is the external OAuth provider
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (models.ProviderIdentity, error)
}

// Assertion is what a client presents to get a session: PreVerified or ProviderCode
type Assertion interface {
	isAssertion()
}

// PreVerified is a user the client already verified with the provider
type PreVerified struct {
	User       models.User
	Credential string // opaque provider credential, may be empty
}

// ProviderCode is an authorization code still to be exchanged
type ProviderCode struct {
	Code string
}

func (PreVerified) isAssertion()  {}
func (ProviderCode) isAssertion() {}

// ParseAssertion picks the assertion variant from a callback body.
// A user object wins over a code when both are sent, and the code is then
// kept as the opaque credential. idToken only stands in when code is empty.
func ParseAssertion(code string, user *models.User, idToken string) (Assertion, error) {
	code = strings.TrimSpace(code)

	if user != nil {
		if strings.TrimSpace(user.UID) == "" {
			return nil, fmt.Errorf("%w: user object has no uid", ErrValidation)
		}
		credential := code
		if credential == "" {
			credential = strings.TrimSpace(idToken)
		}
		return PreVerified{User: *user, Credential: credential}, nil
	}

	if code != "" {
		return ProviderCode{Code: code}, nil
	}

	return nil, fmt.Errorf("%w: either code or user is required", ErrValidation)
}

// AuthService turns identity assertions into sessions
type AuthService struct {
	Sessions       *session.Store
	Provider       IdentityProvider // nil when OAuth isn't configured
	PreVerifiedTTL time.Duration

	now func() time.Time
}

// NewAuthService creates the service, provider may be nil
func NewAuthService(sessions *session.Store, provider IdentityProvider, preVerifiedTTL time.Duration) *AuthService {
	if preVerifiedTTL <= 0 {
		preVerifiedTTL = DefaultPreVerifiedTTL
	}
	return &AuthService{
		Sessions:       sessions,
		Provider:       provider,
		PreVerifiedTTL: preVerifiedTTL,
		now:            time.Now,
	}
}

// AuthURL returns the provider consent page with a fresh state value
func (s *AuthService) AuthURL() (string, error) {
	if s.Provider == nil {
		return "", ErrProviderUnavailable
	}
	return s.Provider.AuthCodeURL(uuid.NewString()), nil
}

// Exchange creates a session for the assertion and returns its token
func (s *AuthService) Exchange(ctx context.Context, assertion Assertion) (string, models.User, error) {
	var (
		user       models.User
		credential string
		lifetime   session.Lifetime
	)

	switch a := assertion.(type) {
	case PreVerified:
		user = a.User
		credential = a.Credential
		lifetime = session.TTL(s.PreVerifiedTTL)

	case ProviderCode:
		if s.Provider == nil {
			return "", models.User{}, ErrProviderUnavailable
		}

		identity, err := s.Provider.Exchange(ctx, a.Code)
		if err != nil {
			return "", models.User{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
		}

		expiresAt := identity.ExpiresAt
		if expiresAt.IsZero() {
			expiresAt = s.now().Add(providerFallbackTTL)
		}
		user = identity.User
		credential = identity.Credential
		lifetime = session.Until(expiresAt)

	default:
		return "", models.User{}, fmt.Errorf("%w: unsupported assertion %T", ErrValidation, assertion)
	}

	token, err := s.Sessions.Create(user, credential, lifetime)
	if err != nil {
		return "", models.User{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	log.Info("Session created", "user", user.UID)
	return token, user, nil
}

// Verify checks that the token names a live session and returns its user
func (s *AuthService) Verify(token string) (models.User, error) {
	record, err := s.lookup(token)
	if err != nil {
		return models.User{}, err
	}
	if record.IsExpired(s.now()) {
		return models.User{}, ErrSessionExpired
	}
	return record.User(), nil
}

// Logout removes the session. Unknown tokens are fine.
func (s *AuthService) Logout(token string) {
	if token == "" {
		return
	}
	s.Sessions.Delete(token)
}

// Profile returns the user behind a token without checking expiry
func (s *AuthService) Profile(token string) (models.User, error) {
	record, err := s.lookup(token)
	if err != nil {
		return models.User{}, err
	}
	return record.User(), nil
}

func (s *AuthService) lookup(token string) (models.SessionRecord, error) {
	if token == "" {
		return models.SessionRecord{}, ErrSessionNotFound
	}
	record, ok := s.Sessions.Get(token)
	if !ok {
		return models.SessionRecord{}, ErrSessionNotFound
	}
	return record, nil
}
