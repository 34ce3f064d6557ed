package types

import "time"

// BookingStatus represents ambulance booking states
type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCompleted BookingStatus = "Completed"
	BookingCancelled BookingStatus = "Cancelled"
)

// Booking is a public ambulance booking request
type Booking struct {
	ID            string          `json:"id" db:"id"`
	PatientName   string          `json:"patient_name" db:"patient_name"`
	PatientPhone  string          `json:"patient_phone" db:"patient_phone"`
	PatientEmail  string          `json:"patient_email,omitempty" db:"patient_email"`
	PickupAddress string          `json:"pickup_address" db:"pickup_address"`
	DropAddress   string          `json:"drop_address" db:"drop_address"`
	EmergencyType string          `json:"emergency_type,omitempty" db:"emergency_type"`
	Category      VehicleCategory `json:"ambulance_type" db:"ambulance_type"`
	Status        BookingStatus   `json:"status" db:"booking_status"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}
