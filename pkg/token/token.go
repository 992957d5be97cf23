package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/taskdeck/backend/domain"
)

// DefaultTTL is the session token lifetime when none is configured.
const DefaultTTL = 24 * time.Hour

// Claims is the verified content of a session token. TokenID is the jti used
// as the revocation key; ExpiresAt bounds how long a revocation entry must live.
type Claims struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

// Manager issues and verifies stateless session tokens (HS256 JWTs).
// A token is valid iff its signature verifies against the configured secret
// and the current time is before its expiry. Revocation is layered on top by
// the auth middleware, not here.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewManager builds a Manager. The secret is mandatory: an empty secret is a
// configuration error, never substituted with a default.
func NewManager(secret, issuer string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a new token for the given user id.
func (m *Manager) Issue(userID string) (string, *Claims, error) {
	if userID == "" {
		return "", nil, errors.New("token: empty user id")
	}

	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)
	tokenID := uuid.NewString()

	registered := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    m.issuer,
		ID:        tokenID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, registered).SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}

	return signed, &Claims{
		UserID:    userID,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify parses and validates a raw token string. Every failure mode
// (tampered payload, wrong algorithm, expiry in the past, malformed input)
// collapses into the same opaque error so callers leak nothing.
func (m *Manager) Verify(raw string) (*Claims, error) {
	var registered jwt.RegisteredClaims

	parsed, err := jwt.ParseWithClaims(raw, &registered, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if registered.Subject == "" || registered.ExpiresAt == nil {
		return nil, domain.ErrInvalidToken
	}

	return &Claims{
		UserID:    registered.Subject,
		TokenID:   registered.ID,
		ExpiresAt: registered.ExpiresAt.Time,
	}, nil
}
