package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ovl11/club-payment/internal/core/domain"
	"github.com/ovl11/club-payment/internal/infrastructure/memory"
	"github.com/ovl11/club-payment/internal/pkg/password"
)

func TestAuthService_AuthenticateToken(t *testing.T) {
	store := memory.NewUserStore()
	active, _ := store.Create(domain.NewUser{Name: "Erik", Role: domain.RoleCashier, Active: true, APIToken: "good"})
	_, _ = store.Create(domain.NewUser{Name: "Old", Role: domain.RoleCashier, Active: false, APIToken: "inactive"})
	svc := NewAuthService(store, zerolog.Nop())

	u, err := svc.AuthenticateToken("good")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if u.ID != active.ID {
		t.Fatalf("unexpected user: %+v", u)
	}

	for _, tok := range []string{"inactive", "unknown", ""} {
		if _, err := svc.AuthenticateToken(tok); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("token %q: expected ErrUnauthorized, got %v", tok, err)
		}
	}
}

func TestAuthService_AuthenticateHeaders(t *testing.T) {
	store := memory.NewUserStore()
	admin, _ := store.Create(domain.NewUser{Name: "Admin", Role: domain.RoleAdmin, Active: true})
	svc := NewAuthService(store, zerolog.Nop())

	u, err := svc.AuthenticateHeaders("1", "admin")
	if err != nil || u.ID != admin.ID {
		t.Fatalf("expected admin, got %+v, %v", u, err)
	}

	cases := [][2]string{
		{"", "admin"},
		{"1", ""},
		{"x", "admin"},
		{"1", "kassierer"},
		{"2", "admin"},
	}
	for _, c := range cases {
		if _, err := svc.AuthenticateHeaders(c[0], c[1]); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("headers %v: expected ErrUnauthorized, got %v", c, err)
		}
	}
}

func TestAuthService_Login(t *testing.T) {
	store := memory.NewUserStore()
	hash, err := password.Hash("pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	erik, _ := store.Create(domain.NewUser{Name: "Erik", Role: domain.RoleCashier, Active: true, Username: "erik", PasswordHash: hash})
	_, _ = store.Create(domain.NewUser{Name: "Gone", Role: domain.RoleCashier, Active: false, Username: "gone", PasswordHash: hash})
	svc := NewAuthService(store, zerolog.Nop())

	u, err := svc.Login(context.Background(), " erik ", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if u.APIToken != erik.APIToken {
		t.Fatalf("expected erik's token")
	}

	if _, err := svc.Login(context.Background(), "erik", "bad"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ghost", "pw"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown user, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "gone", "pw"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for inactive user, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "gone", "bad"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("inactive user with wrong password must look like a bad login, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "", "pw"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "erik", "  "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
