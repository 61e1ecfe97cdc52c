package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ovl11/club-payment/internal/core/domain"
	"github.com/ovl11/club-payment/internal/infrastructure/memory"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) CreateConnectionToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockProcessor) CreatePaymentIntent(ctx context.Context, req domain.PaymentIntentRequest) (*domain.PaymentIntent, error) {
	args := m.Called(ctx, req)
	pi, _ := args.Get(0).(*domain.PaymentIntent)
	return pi, args.Error(1)
}

type fixture struct {
	users   *memory.UserStore
	devices *memory.DeviceRegistry
}

func newFixture() *fixture {
	return &fixture{users: memory.NewUserStore(), devices: memory.NewDeviceRegistry()}
}

func (f *fixture) user(name string, role domain.Role, active bool) domain.User {
	u, err := f.users.Create(domain.NewUser{Name: name, Role: role, Active: active})
	if err != nil {
		panic(err)
	}
	return u
}
