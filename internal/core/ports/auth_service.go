package ports

import (
	"context"

	"github.com/ovl11/club-payment/internal/core/domain"
)

type AuthService interface {
	AuthenticateToken(token string) (domain.User, error)
	AuthenticateHeaders(userID, role string) (domain.User, error)
	Login(ctx context.Context, username, password string) (domain.User, error)
}
