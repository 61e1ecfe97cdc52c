package ports

import "github.com/ovl11/club-payment/internal/core/domain"

// DeviceRegistry owns every DeviceAssignment. Assign is an upsert and does
// not check that the user exists.
type DeviceRegistry interface {
	Assign(deviceID string, userID int64) domain.DeviceAssignment
	Get(deviceID string) (domain.DeviceAssignment, bool)
	List() []domain.DeviceAssignment
}
