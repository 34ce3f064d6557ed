package booking

import (
	"fmt"

	"github.com/opticbee/24X7HEALTHCARE/pkg/database"
	"github.com/opticbee/24X7HEALTHCARE/pkg/logger"
	"github.com/opticbee/24X7HEALTHCARE/pkg/types"
)

// Repository implements the BookingRepository interface
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a new booking repository
func NewRepository(db *database.DB, log *logger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

// CreateBooking persists a public ambulance booking request
func (r *Repository) CreateBooking(b *types.Booking) error {
	query := `
		INSERT INTO ambulance_bookings (
			id, patient_name, patient_phone, patient_email, pickup_address,
			drop_address, emergency_type, ambulance_type, booking_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		b.ID,
		b.PatientName,
		b.PatientPhone,
		b.PatientEmail,
		b.PickupAddress,
		b.DropAddress,
		b.EmergencyType,
		string(b.Category),
		string(b.Status),
	)

	if err != nil {
		r.logger.Errorf("Failed to create booking: %v", err)
		return fmt.Errorf("failed to create booking: %w", err)
	}

	r.logger.Infof("Created booking %s for %s", b.ID, b.PatientName)
	return nil
}

// ListBookings returns all bookings, newest first
func (r *Repository) ListBookings() ([]*types.Booking, error) {
	query := `
		SELECT id, patient_name, patient_phone, patient_email, pickup_address,
		       drop_address, emergency_type, ambulance_type, booking_status, created_at
		FROM ambulance_bookings
		ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Errorf("Failed to list bookings: %v", err)
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*types.Booking{}
	for rows.Next() {
		b := &types.Booking{}
		if err := rows.Scan(
			&b.ID,
			&b.PatientName,
			&b.PatientPhone,
			&b.PatientEmail,
			&b.PickupAddress,
			&b.DropAddress,
			&b.EmergencyType,
			&b.Category,
			&b.Status,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}
