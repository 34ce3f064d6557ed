package types

import "time"

// SlotLabel identifies one of the three fixed daily shift windows
type SlotLabel string

const (
	SlotEarly     SlotLabel = "early"     // 06:00 - 14:00
	SlotMid       SlotLabel = "mid"       // 14:00 - 22:00
	SlotOvernight SlotLabel = "overnight" // 22:00 - 06:00 next day
)

// ShiftStatus represents shift assignment status values
type ShiftStatus string

const (
	ShiftScheduled ShiftStatus = "Scheduled"
	ShiftOnDuty    ShiftStatus = "On-duty"
	ShiftCompleted ShiftStatus = "Completed"
)

// ShiftAssignment represents a driver and vehicle committed to one shift
// slot on a calendar date. ShiftDate is the civil date the slot begins;
// StartTime and EndTime are the absolute window derived from the slot.
// Assignments are a historical record and are never deleted.
type ShiftAssignment struct {
	ID        string      `json:"id" db:"id"`
	VehicleID string      `json:"vehicle_id" db:"vehicle_id"`
	DriverID  string      `json:"driver_id" db:"driver_id"`
	Slot      SlotLabel   `json:"slot" db:"slot"`
	ShiftDate string      `json:"shift_date" db:"shift_date"`
	StartTime time.Time   `json:"start_time" db:"start_time"`
	EndTime   time.Time   `json:"end_time" db:"end_time"`
	Status    ShiftStatus `json:"status" db:"status"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// ShiftRoster is an assignment joined with vehicle and driver display data
// for allocation and history listings.
type ShiftRoster struct {
	ID            string      `json:"id" db:"id"`
	ShiftDate     string      `json:"shift_date" db:"shift_date"`
	Slot          SlotLabel   `json:"slot" db:"slot"`
	Status        ShiftStatus `json:"status" db:"status"`
	VehicleID     string      `json:"vehicle_id" db:"vehicle_id"`
	VehicleNumber string      `json:"vehicle_number" db:"vehicle_number"`
	DriverID      string      `json:"driver_id" db:"driver_id"`
	DriverName    string      `json:"driver_name" db:"driver_name"`
	StartTime     time.Time   `json:"start_time" db:"start_time"`
	EndTime       time.Time   `json:"end_time" db:"end_time"`
}

// AvailableVehicle is one entry of a live availability snapshot
type AvailableVehicle struct {
	VehicleID     string          `json:"vehicle_id" db:"vehicle_id"`
	VehicleNumber string          `json:"vehicle_number" db:"vehicle_number"`
	Category      VehicleCategory `json:"category" db:"category"`
}

// AssignShiftRequest carries the inputs of a shift assignment
type AssignShiftRequest struct {
	VehicleID string    `json:"vehicle_id"`
	DriverID  string    `json:"driver_id"`
	Slot      SlotLabel `json:"slot"`
	ShiftDate string    `json:"shift_date"`
}

// ShiftDateLayout is the wire and storage format for calendar dates
const ShiftDateLayout = "2006-01-02"
