package service

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ovl11/club-payment/internal/core/domain"
	"github.com/ovl11/club-payment/internal/core/ports"
	"github.com/ovl11/club-payment/internal/pkg/password"
)

// AdminService manages users and device assignments.
type AdminService struct {
	users   ports.CredentialStore
	devices ports.DeviceRegistry
	log     zerolog.Logger
}

func NewAdminService(users ports.CredentialStore, devices ports.DeviceRegistry, log zerolog.Logger) *AdminService {
	return &AdminService{users: users, devices: devices, log: log}
}

func (s *AdminService) CreateUser(in ports.CreateUserInput) (domain.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.User{}, domain.Validation("name is required")
	}
	role, ok := domain.ParseRole(in.Role)
	if !ok {
		return domain.User{}, domain.Validation("role must be 'admin' or 'kassierer'")
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}

	if in.Username != nil && strings.TrimSpace(*in.Username) == "" {
		return domain.User{}, domain.Validation("username must not be empty")
	}
	if in.Password != nil && strings.TrimSpace(*in.Password) == "" {
		return domain.User{}, domain.Validation("password must not be empty")
	}
	if in.Password != nil && len(*in.Password) > password.MaxBytes {
		return domain.User{}, domain.Validation("password must be at most %d bytes", password.MaxBytes)
	}
	if (in.Username == nil) != (in.Password == nil) {
		return domain.User{}, domain.Validation("username and password must be set together")
	}

	nu := domain.NewUser{Name: name, Role: role, Active: active}
	if in.APIToken != nil {
		nu.APIToken = strings.TrimSpace(*in.APIToken)
	}

	// Hash before touching the store; Create checks username and token
	// uniqueness atomically with the insert.
	if in.Username != nil {
		hash, err := password.Hash(*in.Password)
		if err != nil {
			return domain.User{}, err
		}
		nu.Username = strings.TrimSpace(*in.Username)
		nu.PasswordHash = hash
	}

	u, err := s.users.Create(nu)
	if err != nil {
		return domain.User{}, err
	}

	s.log.Info().Int64("user_id", u.ID).Str("role", string(u.Role)).Msg("user created")
	return u, nil
}

func (s *AdminService) ListUsers() []domain.User {
	return s.users.List()
}

// UpdateUser applies a partial update; fields left nil are untouched.
func (s *AdminService) UpdateUser(id int64, in ports.UpdateUserInput) (domain.User, error) {
	var patch domain.UserPatch

	if in.Role != nil {
		role, ok := domain.ParseRole(*in.Role)
		if !ok {
			return domain.User{}, domain.Validation("role must be 'admin' or 'kassierer'")
		}
		patch.Role = &role
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return domain.User{}, domain.Validation("name must not be empty")
		}
		patch.Name = &name
	}
	patch.Active = in.Active

	u, ok := s.users.Update(id, patch)
	if !ok {
		return domain.User{}, domain.NotFound("user not found")
	}

	s.log.Info().Int64("user_id", u.ID).Msg("user updated")
	return u, nil
}

// AssignDevice binds deviceID to an existing user, replacing any previous
// owner of the device.
func (s *AdminService) AssignDevice(deviceID string, rawUserID json.RawMessage) (domain.DeviceAssignment, domain.User, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return domain.DeviceAssignment{}, domain.User{}, domain.Validation("device_id is required")
	}
	userID, ok := domain.CoerceInt(rawUserID)
	if !ok {
		return domain.DeviceAssignment{}, domain.User{}, domain.Validation("user_id must be an integer")
	}

	u, ok := s.users.GetByID(userID)
	if !ok {
		return domain.DeviceAssignment{}, domain.User{}, domain.NotFound("user not found")
	}

	a := s.devices.Assign(deviceID, u.ID)
	s.log.Info().Str("device", deviceID).Int64("user_id", u.ID).Msg("device assigned")
	return a, u, nil
}

// ListDevices joins each assignment with its current owner. Assignments that
// point at a missing user are listed with empty owner fields.
func (s *AdminService) ListDevices() []ports.DeviceView {
	assignments := s.devices.List()
	out := make([]ports.DeviceView, 0, len(assignments))
	for _, a := range assignments {
		v := ports.DeviceView{DeviceID: a.DeviceID, UserID: a.UserID}
		if u, ok := s.users.GetByID(a.UserID); ok {
			name, role, active := u.Name, u.Role, u.Active
			v.Name, v.Role, v.Active = &name, &role, &active
		}
		out = append(out, v)
	}
	return out
}
