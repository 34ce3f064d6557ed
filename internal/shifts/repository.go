package shifts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/opticbee/24X7HEALTHCARE/pkg/database"
	"github.com/opticbee/24X7HEALTHCARE/pkg/interfaces"
	"github.com/opticbee/24X7HEALTHCARE/pkg/logger"
	"github.com/opticbee/24X7HEALTHCARE/pkg/types"
)

// Repository implements the ShiftRepository interface
type Repository struct {
	db        *database.DB
	logger    *logger.Logger
	conflicts ConflictDetector
}

// NewRepository creates a new shift repository
func NewRepository(db *database.DB, log *logger.Logger) interfaces.ShiftRepository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

// CreateAssignment inserts a new shift assignment. The conflict check and
// the insert run in one transaction; the table's unique constraints settle
// any race between concurrent requests for the same driver or vehicle slot.
func (r *Repository) CreateAssignment(a *types.ShiftAssignment) error {
	tx, err := r.db.BeginTx(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.conflicts.Check(tx, a.VehicleID, a.DriverID, a.Slot, a.ShiftDate); err != nil {
		return err
	}

	query := `
		INSERT INTO ambulance_shifts (
			id, vehicle_id, driver_id, slot, shift_date, start_time, end_time, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = tx.Exec(query,
		a.ID,
		a.VehicleID,
		a.DriverID,
		string(a.Slot),
		a.ShiftDate,
		a.StartTime,
		a.EndTime,
		string(a.Status),
	)
	if err != nil {
		return r.mapInsertError(a, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit shift assignment: %w", err)
	}

	r.logger.Infof("Created shift assignment %s: vehicle %s, driver %s, %s %s",
		a.ID, a.VehicleID, a.DriverID, a.ShiftDate, a.Slot)
	return nil
}

// mapInsertError converts a unique_violation raised by a losing concurrent
// insert back into the same typed conflict the pre-check would have found.
func (r *Repository) mapInsertError(a *types.ShiftAssignment, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		switch pqErr.Constraint {
		case database.ShiftDriverDateConstraint:
			return types.NewConflictError(types.ErrDriverAlreadyAssigned, map[string]interface{}{
				"driver_id":  a.DriverID,
				"shift_date": a.ShiftDate,
			})
		case database.ShiftVehicleSlotConstraint:
			return types.NewConflictError(types.ErrSlotAlreadyTaken, map[string]interface{}{
				"vehicle_id": a.VehicleID,
				"shift_date": a.ShiftDate,
				"slot":       string(a.Slot),
			})
		}
	}

	r.logger.Errorf("Failed to create shift assignment: %v", err)
	return fmt.Errorf("failed to create shift assignment: %w", err)
}

// GetAssignmentByID retrieves a shift assignment by ID
func (r *Repository) GetAssignmentByID(id string) (*types.ShiftAssignment, error) {
	query := `
		SELECT id, vehicle_id, driver_id, slot, shift_date::text, start_time, end_time,
		       status, created_at, updated_at
		FROM ambulance_shifts
		WHERE id = $1`

	a := &types.ShiftAssignment{}
	err := r.db.QueryRow(query, id).Scan(
		&a.ID,
		&a.VehicleID,
		&a.DriverID,
		&a.Slot,
		&a.ShiftDate,
		&a.StartTime,
		&a.EndTime,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError("shift assignment", id)
		}
		r.logger.Errorf("Failed to get shift assignment %s: %v", id, err)
		return nil, fmt.Errorf("failed to get shift assignment: %w", err)
	}

	return a, nil
}

// TransitionStatus applies a compare-and-set status change. When the update
// affects no rows the current state is re-read so the caller can tell a
// missing record from a transition that lost a concurrent race.
func (r *Repository) TransitionStatus(id string, from, to types.ShiftStatus) error {
	query := `
		UPDATE ambulance_shifts
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3`

	result, err := r.db.Exec(query, string(to), id, string(from))
	if err != nil {
		r.logger.Errorf("Failed to transition shift %s: %v", id, err)
		return fmt.Errorf("failed to transition shift status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		var current string
		err := r.db.QueryRow(`SELECT status FROM ambulance_shifts WHERE id = $1`, id).Scan(&current)
		if err == sql.ErrNoRows {
			return types.NewNotFoundError("shift assignment", id)
		}
		if err != nil {
			return fmt.Errorf("failed to read shift status: %w", err)
		}
		return types.NewValidationError(types.ErrInvalidTransition.Code,
			fmt.Sprintf("shift is %s, cannot move to %s", current, to),
			map[string]interface{}{"current": current, "requested": string(to)},
		)
	}

	r.logger.Infof("Shift %s transitioned %s -> %s", id, from, to)
	return nil
}

// ListByDateAndSlot retrieves the roster for one date and slot, joined with
// vehicle and driver display data
func (r *Repository) ListByDateAndSlot(shiftDate string, slot types.SlotLabel) ([]*types.ShiftRoster, error) {
	query := `
		SELECT s.id, s.shift_date::text, s.slot, s.status,
		       s.vehicle_id, a.vehicle_number, s.driver_id, d.full_name,
		       s.start_time, s.end_time
		FROM ambulance_shifts s
		JOIN ambulances a ON s.vehicle_id = a.id
		JOIN ambulance_drivers d ON s.driver_id = d.id
		WHERE s.shift_date = $1 AND s.slot = $2
		ORDER BY a.vehicle_number ASC`

	rows, err := r.db.Query(query, shiftDate, string(slot))
	if err != nil {
		r.logger.Errorf("Failed to list shift allocations: %v", err)
		return nil, fmt.Errorf("failed to list shift allocations: %w", err)
	}
	defer rows.Close()

	return scanRoster(rows)
}

// ListHistory retrieves all shift assignments ordered newest-first
func (r *Repository) ListHistory() ([]*types.ShiftRoster, error) {
	query := `
		SELECT s.id, s.shift_date::text, s.slot, s.status,
		       s.vehicle_id, a.vehicle_number, s.driver_id, d.full_name,
		       s.start_time, s.end_time
		FROM ambulance_shifts s
		JOIN ambulances a ON s.vehicle_id = a.id
		JOIN ambulance_drivers d ON s.driver_id = d.id
		ORDER BY s.shift_date DESC, s.start_time DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Errorf("Failed to list shift history: %v", err)
		return nil, fmt.Errorf("failed to list shift history: %w", err)
	}
	defer rows.Close()

	return scanRoster(rows)
}

func scanRoster(rows *sql.Rows) ([]*types.ShiftRoster, error) {
	var roster []*types.ShiftRoster
	for rows.Next() {
		entry := &types.ShiftRoster{}
		err := rows.Scan(
			&entry.ID,
			&entry.ShiftDate,
			&entry.Slot,
			&entry.Status,
			&entry.VehicleID,
			&entry.VehicleNumber,
			&entry.DriverID,
			&entry.DriverName,
			&entry.StartTime,
			&entry.EndTime,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift roster entry: %w", err)
		}
		roster = append(roster, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift roster: %w", err)
	}

	return roster, nil
}

// ListAvailableVehicles answers the live availability query: a vehicle is
// available when its provider is Approved, the vehicle and the assigned
// driver are Active, the assignment is On-duty, and now falls inside the
// half-open shift window. One query, one consistent snapshot.
func (r *Repository) ListAvailableVehicles(now time.Time) ([]*types.AvailableVehicle, error) {
	query := `
		SELECT DISTINCT a.id, a.vehicle_number, a.category
		FROM ambulances a
		JOIN ambulance_providers p ON a.provider_id = p.id
		JOIN ambulance_shifts s ON s.vehicle_id = a.id
		JOIN ambulance_drivers d ON s.driver_id = d.id
		WHERE p.status = 'Approved'
		  AND a.status = 'Active'
		  AND d.status = 'Active'
		  AND s.status = 'On-duty'
		  AND s.start_time <= $1
		  AND s.end_time > $1
		ORDER BY a.vehicle_number ASC`

	rows, err := r.db.Query(query, now)
	if err != nil {
		r.logger.Errorf("Failed to query available vehicles: %v", err)
		return nil, fmt.Errorf("failed to query available vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []*types.AvailableVehicle{}
	for rows.Next() {
		v := &types.AvailableVehicle{}
		if err := rows.Scan(&v.VehicleID, &v.VehicleNumber, &v.Category); err != nil {
			return nil, fmt.Errorf("failed to scan available vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating available vehicles: %w", err)
	}

	return vehicles, nil
}
