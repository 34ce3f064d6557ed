package interfaces

import (
	"github.com/opticbee/24X7HEALTHCARE/pkg/types"
)

// BookingService defines the interface for public ambulance bookings
type BookingService interface {
	CreateBooking(b *types.Booking) (*types.Booking, error)
	ListBookings() ([]*types.Booking, error)

	Start(addr string) error
	Stop() error
}

// BookingRepository defines the interface for booking persistence
type BookingRepository interface {
	CreateBooking(b *types.Booking) error
	ListBookings() ([]*types.Booking, error)
}
