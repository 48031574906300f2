package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ErrNoSession is returned when a cookie is absent, malformed, forged, or
// refers to a session that no longer exists.
var ErrNoSession = errors.New("no active session")

// CookieName is the name of the session cookie.
const CookieName = "portal_session"

const signingKeySize = 32

// Identity is the server-side record bound to a logged-in request.
type Identity struct {
	UserID   int64
	Username string
}

// Manager issues and resolves session identities. The cookie handed to the
// browser is an HS256-signed token carrying only a random session id; the
// identity itself never leaves the server. The signing key is generated once
// at startup, so all sessions die with the process.
type Manager struct {
	signingKey []byte
	store      *cache.Cache
	ttl        time.Duration
}

func NewManager(ttl time.Duration) (*Manager, error) {
	key := make([]byte, signingKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate signing key: %w", err)
	}

	return &Manager{
		signingKey: key,
		store:      cache.New(ttl, 2*ttl),
		ttl:        ttl,
	}, nil
}

// Issue creates a new session for identity and returns the signed cookie
// value. Each call produces a fresh session id.
func (m *Manager) Issue(identity Identity) (string, error) {
	sid := uuid.New().String()

	claims := jwt.RegisteredClaims{
		ID:        sid,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	m.store.Set(sid, identity, m.ttl)
	return token, nil
}

// Resolve maps a cookie value back to its identity.
func (m *Manager) Resolve(cookie string) (*Identity, error) {
	sid, err := m.sessionID(cookie)
	if err != nil {
		return nil, ErrNoSession
	}

	v, ok := m.store.Get(sid)
	if !ok {
		return nil, ErrNoSession
	}

	identity := v.(Identity)
	return &identity, nil
}

// Clear destroys the session behind cookie. Clearing an absent, expired or
// garbage cookie is a no-op.
func (m *Manager) Clear(cookie string) {
	sid, err := m.sessionID(cookie)
	if err != nil {
		return
	}
	m.store.Delete(sid)
}

func (m *Manager) sessionID(cookie string) (string, error) {
	if cookie == "" {
		return "", ErrNoSession
	}

	token, err := jwt.ParseWithClaims(cookie, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.signingKey, nil
	})
	if err != nil || !token.Valid {
		return "", ErrNoSession
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ID == "" {
		return "", ErrNoSession
	}

	return claims.ID, nil
}
