package ports

import "github.com/ovl11/club-payment/internal/core/domain"

// CredentialStore owns every User record. Create rejects a username or token
// already held by another user with domain.ErrUsernameTaken or
// domain.ErrTokenInUse.
type CredentialStore interface {
	Create(u domain.NewUser) (domain.User, error)
	GetByID(id int64) (domain.User, bool)
	GetByToken(token string) (domain.User, bool)
	GetByUsername(username string) (domain.User, bool)
	List() []domain.User
	Update(id int64, patch domain.UserPatch) (domain.User, bool)
	Authenticate(username, password string) (domain.User, bool)
}
