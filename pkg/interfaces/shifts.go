package interfaces

import (
	"time"

	"github.com/opticbee/24X7HEALTHCARE/pkg/types"
)

// ShiftService defines the interface for shift scheduling and live availability
type ShiftService interface {
	// Scheduling
	AssignShift(req *types.AssignShiftRequest) (*types.ShiftAssignment, error)
	GetShift(shiftID string) (*types.ShiftAssignment, error)
	TransitionShift(shiftID string, to types.ShiftStatus) error

	// Roster queries
	ListAllocations(shiftDate string, slot types.SlotLabel) ([]*types.ShiftRoster, error)
	ListHistory() ([]*types.ShiftRoster, error)

	// Live availability; now is a parameter so snapshots are reproducible
	ListAvailableVehicles(now time.Time) ([]*types.AvailableVehicle, error)

	// Service management
	Start(addr string) error
	Stop() error
}

// ShiftRepository defines the interface for shift assignment persistence.
// CreateAssignment performs the conflict check and the insert as a single
// transactional unit; concurrent duplicates are rejected by the storage
// layer's uniqueness constraints.
type ShiftRepository interface {
	CreateAssignment(a *types.ShiftAssignment) error
	GetAssignmentByID(id string) (*types.ShiftAssignment, error)

	// TransitionStatus applies a compare-and-set status change and reports
	// the status actually stored when the expected one no longer matches.
	TransitionStatus(id string, from, to types.ShiftStatus) error

	ListByDateAndSlot(shiftDate string, slot types.SlotLabel) ([]*types.ShiftRoster, error)
	ListHistory() ([]*types.ShiftRoster, error)
	ListAvailableVehicles(now time.Time) ([]*types.AvailableVehicle, error)
}
