// Package memory holds the process-local stores. Nothing here survives a
// restart.
package memory

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sort"
	"sync"

	"github.com/ovl11/club-payment/internal/core/domain"
	"github.com/ovl11/club-payment/internal/pkg/password"
)

const tokenBytes = 32

// GenerateToken returns a URL-safe token carrying 32 bytes of entropy.
func GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// UserStore keeps users keyed by id.
type UserStore struct {
	mu           sync.RWMutex
	users        map[int64]domain.User
	nextID       int64
	bootstrapped bool
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[int64]domain.User), nextID: 1}
}

// Create stores a new user under the next sequential id. Username and token
// uniqueness is checked under the same lock as the insert; violations return
// domain.ErrUsernameTaken or domain.ErrTokenInUse.
func (s *UserStore) Create(nu domain.NewUser) (domain.User, error) {
	token := nu.APIToken
	if token == "" {
		var err error
		if token, err = GenerateToken(); err != nil {
			return domain.User{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if nu.Username != "" && existing.Username == nu.Username {
			return domain.User{}, domain.ErrUsernameTaken
		}
		if existing.APIToken == token {
			return domain.User{}, domain.ErrTokenInUse
		}
	}

	u := domain.User{
		ID:           s.nextID,
		Name:         nu.Name,
		Role:         nu.Role,
		Active:       nu.Active,
		APIToken:     token,
		Username:     nu.Username,
		PasswordHash: nu.PasswordHash,
	}
	s.users[u.ID] = u
	s.nextID++
	return u, nil
}

// Bootstrap creates the configured admin exactly once per store. Later calls
// return false and leave the store untouched.
func (s *UserStore) Bootstrap(nu domain.NewUser) (domain.User, bool, error) {
	s.mu.Lock()
	if s.bootstrapped {
		s.mu.Unlock()
		return domain.User{}, false, nil
	}
	s.bootstrapped = true
	s.mu.Unlock()

	nu.Role = domain.RoleAdmin
	nu.Active = true
	u, err := s.Create(nu)
	if err != nil {
		return domain.User{}, false, err
	}
	return u, true, nil
}

func (s *UserStore) GetByID(id int64) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// GetByToken scans all users; deployments hold a handful of them.
func (s *UserStore) GetByToken(token string) (domain.User, bool) {
	if token == "" {
		return domain.User{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.APIToken == token {
			return u, true
		}
	}
	return domain.User{}, false
}

func (s *UserStore) GetByUsername(username string) (domain.User, bool) {
	if username == "" {
		return domain.User{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return domain.User{}, false
}

// List returns every user ordered by id.
func (s *UserStore) List() []domain.User {
	s.mu.RLock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *UserStore) Update(id int64, patch domain.UserPatch) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return domain.User{}, false
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.Active != nil {
		u.Active = *patch.Active
	}
	s.users[id] = u
	return u, true
}

// Authenticate checks a username/password pair. Unknown usernames cost the
// same bcrypt comparison as a wrong password. The active flag is not checked
// here.
func (s *UserStore) Authenticate(username, plain string) (domain.User, bool) {
	u, found := s.GetByUsername(username)
	if !password.Verify(u.PasswordHash, plain) || !found {
		return domain.User{}, false
	}
	return u, true
}
