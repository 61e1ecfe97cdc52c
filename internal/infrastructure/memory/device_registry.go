package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/ovl11/club-payment/internal/core/domain"
)

// DeviceRegistry keeps one assignment per device id; the last write wins.
type DeviceRegistry struct {
	mu      sync.RWMutex
	devices map[string]domain.DeviceAssignment
	now     func() time.Time
}

func NewDeviceRegistry() *DeviceRegistry {
	return &DeviceRegistry{
		devices: make(map[string]domain.DeviceAssignment),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *DeviceRegistry) Assign(deviceID string, userID int64) domain.DeviceAssignment {
	a := domain.DeviceAssignment{DeviceID: deviceID, UserID: userID, AssignedAt: r.now()}

	r.mu.Lock()
	r.devices[deviceID] = a
	r.mu.Unlock()
	return a
}

func (r *DeviceRegistry) Get(deviceID string) (domain.DeviceAssignment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.devices[deviceID]
	return a, ok
}

// List returns all assignments ordered by device id.
func (r *DeviceRegistry) List() []domain.DeviceAssignment {
	r.mu.RLock()
	out := make([]domain.DeviceAssignment, 0, len(r.devices))
	for _, a := range r.devices {
		out = append(out, a)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].DeviceID < out[j].DeviceID })
	return out
}
