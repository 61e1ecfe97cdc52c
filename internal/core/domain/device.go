package domain

import "time"

// DeviceAssignment binds a physical device to the user who owns it.
// UserID is a weak reference: the user may no longer exist.
type DeviceAssignment struct {
	DeviceID   string    `json:"device_id"`
	UserID     int64     `json:"user_id"`
	AssignedAt time.Time `json:"assigned_at"`
}
