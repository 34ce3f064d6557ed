package booking

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/opticbee/24X7HEALTHCARE/pkg/config"
	"github.com/opticbee/24X7HEALTHCARE/pkg/database"
	"github.com/opticbee/24X7HEALTHCARE/pkg/interfaces"
	"github.com/opticbee/24X7HEALTHCARE/pkg/logger"
	"github.com/opticbee/24X7HEALTHCARE/pkg/monitoring"
	"github.com/opticbee/24X7HEALTHCARE/pkg/types"
)

// Service implements the BookingService interface
type Service struct {
	config     *config.Config
	logger     *logger.Logger
	repository interfaces.BookingRepository
	db         *database.DB
	server     *http.Server
	metrics    *monitoring.MetricsCollector
	health     *monitoring.HealthManager
}

// New creates a new booking service
func New(cfg *config.Config, log *logger.Logger) interfaces.BookingService {
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Errorf("Failed to connect to database: %v", err)
		panic(err)
	}

	repository := NewRepository(db, log)

	metrics := monitoring.NewMetricsCollector("booking-service")
	health := monitoring.NewHealthManager("booking-service")
	health.RegisterChecker("database", monitoring.NewDatabaseHealthChecker(db.DB))

	return &Service{
		config:     cfg,
		logger:     log,
		repository: repository,
		db:         db,
		metrics:    metrics,
		health:     health,
	}
}

// CreateBooking records a public ambulance booking request in Pending state
func (s *Service) CreateBooking(b *types.Booking) (*types.Booking, error) {
	s.logger.Infof("Creating booking for %q", b.PatientName)

	if err := validateBooking(b); err != nil {
		return nil, err
	}

	b.ID = uuid.New().String()
	b.Status = types.BookingPending
	b.CreatedAt = time.Now()
	if b.Category == "" {
		b.Category = types.CategoryBasic
	}

	if err := s.repository.CreateBooking(b); err != nil {
		return nil, err
	}

	s.logger.Infof("Booking %s created", b.ID)
	return b, nil
}

// ListBookings returns all bookings, newest first
func (s *Service) ListBookings() ([]*types.Booking, error) {
	return s.repository.ListBookings()
}

// Start starts the booking service HTTP server
func (s *Service) Start(addr string) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:    addr,
		Handler: router,
	}

	s.logger.Infof("Starting Booking Service on %s", addr)
	return s.server.ListenAndServe()
}

// Stop stops the booking service
func (s *Service) Stop() error {
	if s.server != nil {
		s.logger.Info("Stopping Booking Service")
		return s.server.Close()
	}
	return nil
}

// validateBooking validates a booking request
func validateBooking(b *types.Booking) error {
	if b.PatientName == "" {
		return types.NewValidationError("missing_field", "patient name is required", nil)
	}
	if b.PatientPhone == "" {
		return types.NewValidationError("missing_field", "patient phone is required", nil)
	}
	if b.PickupAddress == "" {
		return types.NewValidationError("missing_field", "pickup address is required", nil)
	}
	if b.DropAddress == "" {
		return types.NewValidationError("missing_field", "drop address is required", nil)
	}
	switch b.Category {
	case "", types.CategoryBasic, types.CategoryICU, types.CategoryCardiac, types.CategoryNeonatal:
	default:
		return types.NewValidationError("invalid_category",
			fmt.Sprintf("unknown ambulance category: %q", b.Category), nil)
	}
	return nil
}
