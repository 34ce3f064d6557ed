package shifts

import (
	"database/sql"
	"fmt"

	"github.com/opticbee/24X7HEALTHCARE/pkg/types"
)

const (
	driverConflictQuery = `
		SELECT 1 FROM ambulance_shifts
		WHERE driver_id = $1 AND shift_date = $2
		LIMIT 1`

	vehicleConflictQuery = `
		SELECT 1 FROM ambulance_shifts
		WHERE vehicle_id = $1 AND shift_date = $2 AND slot = $3
		LIMIT 1`
)

// Queryer is satisfied by *sql.DB and *sql.Tx; the detector runs inside the
// create transaction so the check and the insert commit as one unit.
type Queryer interface {
	QueryRow(query string, args ...interface{}) *sql.Row
}

// ConflictDetector checks a proposed assignment against existing
// commitments. It is read-only; callers decide what happens on conflict.
type ConflictDetector struct{}

// Check probes the two scheduling invariants in report order: the driver
// conflict is reported before the vehicle/slot conflict when both hold.
func (ConflictDetector) Check(q Queryer, vehicleID, driverID string, slot types.SlotLabel, shiftDate string) error {
	var one int

	err := q.QueryRow(driverConflictQuery, driverID, shiftDate).Scan(&one)
	switch {
	case err == nil:
		return types.NewConflictError(types.ErrDriverAlreadyAssigned, map[string]interface{}{
			"driver_id":  driverID,
			"shift_date": shiftDate,
		})
	case err != sql.ErrNoRows:
		return fmt.Errorf("driver conflict check failed: %w", err)
	}

	err = q.QueryRow(vehicleConflictQuery, vehicleID, shiftDate, string(slot)).Scan(&one)
	switch {
	case err == nil:
		return types.NewConflictError(types.ErrSlotAlreadyTaken, map[string]interface{}{
			"vehicle_id": vehicleID,
			"shift_date": shiftDate,
			"slot":       string(slot),
		})
	case err != sql.ErrNoRows:
		return fmt.Errorf("vehicle slot conflict check failed: %w", err)
	}

	return nil
}
