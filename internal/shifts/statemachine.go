package shifts

import (
	"github.com/opticbee/24X7HEALTHCARE/pkg/types"
)

// nextStatus defines the linear shift lifecycle. Each status has exactly
// one successor; Completed is terminal. No-ops and backward moves are not
// allowed.
var nextStatus = map[types.ShiftStatus]types.ShiftStatus{
	types.ShiftScheduled: types.ShiftOnDuty,
	types.ShiftOnDuty:    types.ShiftCompleted,
}

// CanTransition reports whether from -> to follows the shift lifecycle
func CanTransition(from, to types.ShiftStatus) bool {
	next, ok := nextStatus[from]
	return ok && next == to
}

// ValidStatus reports whether the value is a known shift status
func ValidStatus(status types.ShiftStatus) bool {
	switch status {
	case types.ShiftScheduled, types.ShiftOnDuty, types.ShiftCompleted:
		return true
	}
	return false
}
