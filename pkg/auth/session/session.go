package session

import (
	"strings"
	"sync"

	"github.com/storely/wishsync/pkg/auth"
	"github.com/storely/wishsync/pkg/enums"
	pkgerrors "github.com/storely/wishsync/pkg/errors"
)

// Identity is the authenticated principal as seen by the client session.
type Identity struct {
	UserID int64
	Role   enums.UserRole
}

// Session holds the caller's access token and decoded identity for the
// lifetime of a client session. It is the authorization source the wishlist
// store consults before mutating or fetching.
type Session struct {
	mu       sync.RWMutex
	token    string
	identity Identity
}

func New() *Session {
	return &Session{}
}

// SignIn stores the access token and decodes the identity embedded in it.
// The token is not signature-verified here; the backend rejects forgeries.
func (s *Session) SignIn(token string) error {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access token is required")
	}

	claims, err := auth.DecodeAccessTokenClaims(trimmed)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode access token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = trimmed
	s.identity = Identity{UserID: claims.UserID, Role: claims.Role}
	return nil
}

// SignOut clears the token and identity.
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.identity = Identity{}
}

// AccessToken returns the current token, or empty when signed out.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Identity returns the decoded principal for the current token.
func (s *Session) Identity() Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Role returns the current role, or empty when signed out.
func (s *Session) Role() enums.UserRole {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity.Role
}
