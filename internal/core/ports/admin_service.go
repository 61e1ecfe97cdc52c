package ports

import (
	"encoding/json"

	"github.com/ovl11/club-payment/internal/core/domain"
)

// CreateUserInput mirrors the admin create payload. Pointer fields are
// optional; nil means "not given".
type CreateUserInput struct {
	Name     string
	Role     string
	Active   *bool
	APIToken *string
	Username *string
	Password *string
}

// UpdateUserInput is a partial update; nil fields are left unchanged.
type UpdateUserInput struct {
	Name   *string
	Role   *string
	Active *bool
}

// DeviceView joins an assignment with its owner. Owner fields are nil when
// the assignment points at a user that no longer exists.
type DeviceView struct {
	DeviceID string       `json:"device_id"`
	UserID   int64        `json:"user_id"`
	Name     *string      `json:"name"`
	Role     *domain.Role `json:"role"`
	Active   *bool        `json:"active"`
}

type AdminService interface {
	CreateUser(in CreateUserInput) (domain.User, error)
	ListUsers() []domain.User
	UpdateUser(id int64, in UpdateUserInput) (domain.User, error)
	AssignDevice(deviceID string, userID json.RawMessage) (domain.DeviceAssignment, domain.User, error)
	ListDevices() []DeviceView
}
