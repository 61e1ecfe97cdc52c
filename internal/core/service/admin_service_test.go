package service

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovl11/club-payment/internal/core/domain"
	"github.com/ovl11/club-payment/internal/core/ports"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool { return &b }

func newAdminSvc(f *fixture) *AdminService {
	return NewAdminService(f.users, f.devices, zerolog.Nop())
}

func TestAdminService_CreateUser(t *testing.T) {
	f := newFixture()
	svc := newAdminSvc(f)

	u, err := svc.CreateUser(ports.CreateUserInput{Name: "  Erik ", Role: "kassierer", Username: strPtr("erik"), Password: strPtr("pw")})
	require.NoError(t, err)
	assert.Equal(t, "Erik", u.Name)
	assert.Equal(t, domain.RoleCashier, u.Role)
	assert.True(t, u.Active, "active defaults to true")
	assert.NotEmpty(t, u.APIToken)
	assert.NotEqual(t, "pw", u.PasswordHash)

	got, ok := f.users.Authenticate("erik", "pw")
	require.True(t, ok)
	assert.Equal(t, u.ID, got.ID)

	inactive, err := svc.CreateUser(ports.CreateUserInput{Name: "Old", Role: "admin", Active: boolPtr(false), APIToken: strPtr("chosen")})
	require.NoError(t, err)
	assert.False(t, inactive.Active)
	assert.Equal(t, "chosen", inactive.APIToken)
	assert.Empty(t, inactive.Username)
}

func TestAdminService_CreateUser_Validation(t *testing.T) {
	f := newFixture()
	svc := newAdminSvc(f)
	_, err := svc.CreateUser(ports.CreateUserInput{Name: "Erik", Role: "kassierer", Username: strPtr("erik"), Password: strPtr("pw"), APIToken: strPtr("taken")})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   ports.CreateUserInput
		msg  string
	}{
		{"blank name", ports.CreateUserInput{Name: "  ", Role: "admin"}, "name is required"},
		{"bad role", ports.CreateUserInput{Name: "x", Role: "root"}, "role must be 'admin' or 'kassierer'"},
		{"username only", ports.CreateUserInput{Name: "x", Role: "admin", Username: strPtr("x")}, "username and password must be set together"},
		{"password only", ports.CreateUserInput{Name: "x", Role: "admin", Password: strPtr("x")}, "username and password must be set together"},
		{"blank username", ports.CreateUserInput{Name: "x", Role: "admin", Username: strPtr(" "), Password: strPtr("x")}, "username must not be empty"},
		{"blank password", ports.CreateUserInput{Name: "x", Role: "admin", Username: strPtr("x"), Password: strPtr("")}, "password must not be empty"},
		{"duplicate username", ports.CreateUserInput{Name: "x", Role: "admin", Username: strPtr("erik"), Password: strPtr("x")}, "username is already taken"},
		{"duplicate token", ports.CreateUserInput{Name: "x", Role: "admin", APIToken: strPtr("taken")}, "api_token is already in use"},
		{"password too long", ports.CreateUserInput{Name: "x", Role: "admin", Username: strPtr("long"), Password: strPtr(strings.Repeat("p", 73))}, "password must be at most 72 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateUser(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))
			assert.Equal(t, tt.msg, err.Error())
		})
	}
	assert.Len(t, svc.ListUsers(), 1)
}

func TestAdminService_CreateUser_PasswordAtLimit(t *testing.T) {
	f := newFixture()
	svc := newAdminSvc(f)
	pw := strings.Repeat("p", 72)

	_, err := svc.CreateUser(ports.CreateUserInput{Name: "x", Role: "admin", Username: strPtr("max"), Password: strPtr(pw)})
	require.NoError(t, err)

	_, ok := f.users.Authenticate("max", pw)
	assert.True(t, ok)
}

func TestAdminService_CreateUser_ConcurrentSameUsername(t *testing.T) {
	f := newFixture()
	svc := newAdminSvc(f)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateUser(ports.CreateUserInput{Name: "x", Role: "kassierer", Username: strPtr("dup"), Password: strPtr("pw")})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.True(t, errors.Is(err, domain.ErrValidation))
			assert.Equal(t, "username is already taken", err.Error())
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Len(t, svc.ListUsers(), 1)
}

func TestAdminService_UpdateUser_Partial(t *testing.T) {
	f := newFixture()
	erik := f.user("Erik", domain.RoleCashier, true)
	svc := newAdminSvc(f)

	u, err := svc.UpdateUser(erik.ID, ports.UpdateUserInput{Active: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, u.Active)
	assert.Equal(t, "Erik", u.Name)
	assert.Equal(t, domain.RoleCashier, u.Role)

	u, err = svc.UpdateUser(erik.ID, ports.UpdateUserInput{Name: strPtr(" Erik B. "), Role: strPtr("admin")})
	require.NoError(t, err)
	assert.Equal(t, "Erik B.", u.Name)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.False(t, u.Active)

	_, err = svc.UpdateUser(erik.ID, ports.UpdateUserInput{Role: strPtr("boss")})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	_, err = svc.UpdateUser(erik.ID, ports.UpdateUserInput{Name: strPtr("")})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	_, err = svc.UpdateUser(404, ports.UpdateUserInput{Active: boolPtr(true)})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAdminService_AssignDevice(t *testing.T) {
	f := newFixture()
	erik := f.user("Erik", domain.RoleCashier, true)
	anna := f.user("Anna", domain.RoleCashier, true)
	svc := newAdminSvc(f)

	a, u, err := svc.AssignDevice("device1", json.RawMessage(`1`))
	require.NoError(t, err)
	assert.Equal(t, erik.ID, a.UserID)
	assert.Equal(t, "Erik", u.Name)

	_, _, err = svc.AssignDevice(" device1 ", json.RawMessage(`"2"`))
	require.NoError(t, err)
	got, ok := f.devices.Get("device1")
	require.True(t, ok)
	assert.Equal(t, anna.ID, got.UserID)

	_, _, err = svc.AssignDevice("", json.RawMessage(`1`))
	assert.True(t, errors.Is(err, domain.ErrValidation))
	_, _, err = svc.AssignDevice("d", json.RawMessage(`"one"`))
	assert.True(t, errors.Is(err, domain.ErrValidation))
	_, _, err = svc.AssignDevice("d", nil)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	_, _, err = svc.AssignDevice("d", json.RawMessage(`77`))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAdminService_ListDevicesToleratesDanglingUser(t *testing.T) {
	f := newFixture()
	erik := f.user("Erik", domain.RoleCashier, true)
	f.devices.Assign("a-device", erik.ID)
	f.devices.Assign("b-orphan", 42)

	views := newAdminSvc(f).ListDevices()
	require.Len(t, views, 2)

	require.NotNil(t, views[0].Name)
	assert.Equal(t, "Erik", *views[0].Name)
	assert.Equal(t, domain.RoleCashier, *views[0].Role)
	assert.True(t, *views[0].Active)

	assert.Equal(t, int64(42), views[1].UserID)
	assert.Nil(t, views[1].Name)
	assert.Nil(t, views[1].Role)
	assert.Nil(t, views[1].Active)
}
