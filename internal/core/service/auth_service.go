package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ovl11/club-payment/internal/core/domain"
	"github.com/ovl11/club-payment/internal/core/ports"
)

// AuthService resolves credentials to users.
type AuthService struct {
	users ports.CredentialStore
	log   zerolog.Logger
}

func NewAuthService(users ports.CredentialStore, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, log: log}
}

// AuthenticateToken resolves a bearer token. Unknown tokens and inactive
// users fail the same way.
func (s *AuthService) AuthenticateToken(token string) (domain.User, error) {
	u, ok := s.users.GetByToken(token)
	if !ok || !u.Active {
		return domain.User{}, domain.Unauthorized("invalid or inactive token")
	}
	return u, nil
}

// AuthenticateHeaders trusts a caller-asserted user id and role. It only
// checks that they match an active user; there is no proof of identity.
func (s *AuthService) AuthenticateHeaders(userID, role string) (domain.User, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(role) == "" {
		return domain.User{}, domain.Unauthorized("missing identity headers")
	}
	id, err := strconv.ParseInt(strings.TrimSpace(userID), 10, 64)
	if err != nil {
		return domain.User{}, domain.Unauthorized("invalid identity headers")
	}
	u, ok := s.users.GetByID(id)
	if !ok || !u.Active || string(u.Role) != strings.TrimSpace(role) {
		return domain.User{}, domain.Unauthorized("invalid identity headers")
	}
	return u, nil
}

// Login exchanges a username and password for the user's bearer token.
func (s *AuthService) Login(_ context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, domain.Validation("username is required")
	}
	if strings.TrimSpace(password) == "" {
		return domain.User{}, domain.Validation("password is required")
	}

	u, ok := s.users.Authenticate(username, password)
	if !ok {
		return domain.User{}, domain.Unauthorized("invalid username or password")
	}
	if !u.Active {
		return domain.User{}, domain.Forbidden("user is deactivated")
	}

	s.log.Info().Int64("user_id", u.ID).Msg("user logged in")
	return u, nil
}
