package fleet

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opticbee/24X7HEALTHCARE/pkg/config"
	"github.com/opticbee/24X7HEALTHCARE/pkg/database"
	"github.com/opticbee/24X7HEALTHCARE/pkg/interfaces"
	"github.com/opticbee/24X7HEALTHCARE/pkg/logger"
	"github.com/opticbee/24X7HEALTHCARE/pkg/monitoring"
	"github.com/opticbee/24X7HEALTHCARE/pkg/types"
)

// Service implements the FleetService interface
type Service struct {
	config     *config.Config
	logger     *logger.Logger
	repository interfaces.FleetRepository
	db         *database.DB
	server     *http.Server
	metrics    *monitoring.MetricsCollector
	health     *monitoring.HealthManager
}

// New creates a new fleet service
func New(cfg *config.Config, log *logger.Logger) interfaces.FleetService {
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Errorf("Failed to connect to database: %v", err)
		panic(err)
	}

	repository := NewRepository(db, log)

	metrics := monitoring.NewMetricsCollector("fleet-service")
	health := monitoring.NewHealthManager("fleet-service")
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

// generateProviderUID produces a public provider identifier, HH-AMB-XXXXXX
func generateProviderUID() string {
	buf := make([]byte, 3)
	rand.Read(buf)
	return "HH-AMB-" + strings.ToUpper(hex.EncodeToString(buf))
}

// RegisterProvider registers a new ambulance provider in Pending state.
// Approval is a separate administrative action.
func (s *Service) RegisterProvider(p *types.Provider) (*types.Provider, error) {
	s.logger.Infof("Registering provider %q", p.Name)

	if err := validateProvider(p); err != nil {
		return nil, err
	}

	now := time.Now()
	p.ID = uuid.New().String()
	p.UID = generateProviderUID()
	p.Status = types.ProviderPending
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.repository.CreateProvider(p); err != nil {
		return nil, err
	}

	s.logger.Infof("Provider %s registered, awaiting approval", p.UID)
	return p, nil
}

// GetProviderByUID retrieves a provider by its public UID
func (s *Service) GetProviderByUID(uid string) (*types.Provider, error) {
	return s.repository.GetProviderByUID(uid)
}

// SetProviderStatus applies an administrative approval decision
func (s *Service) SetProviderStatus(uid string, status types.ProviderStatus, actor string) error {
	if status != types.ProviderApproved && status != types.ProviderRejected {
		return types.NewValidationError("invalid_provider_status",
			fmt.Sprintf("provider status must be Approved or Rejected, got %q", status), nil)
	}

	p, err := s.repository.GetProviderByUID(uid)
	if err != nil {
		return err
	}

	if err := s.repository.UpdateProviderStatus(p.ID, status); err != nil {
		s.logger.Audit(actor, "provider_status_change", uid, false, map[string]interface{}{
			"requested": string(status),
		})
		return err
	}

	s.logger.Audit(actor, "provider_status_change", uid, true, map[string]interface{}{
		"from": string(p.Status),
		"to":   string(status),
	})
	return nil
}

// ListProviders lists providers, optionally filtered by status
func (s *Service) ListProviders(status types.ProviderStatus) ([]*types.Provider, error) {
	return s.repository.ListProviders(status)
}

// RegisterVehicle registers an ambulance under an Approved provider
func (s *Service) RegisterVehicle(providerUID string, v *types.Vehicle) (*types.Vehicle, error) {
	s.logger.Infof("Registering vehicle %q for provider %s", v.VehicleNumber, providerUID)

	p, err := s.requireApprovedProvider(providerUID, "add vehicles")
	if err != nil {
		return nil, err
	}

	if err := validateVehicle(v); err != nil {
		return nil, err
	}

	now := time.Now()
	v.ID = uuid.New().String()
	v.ProviderID = p.ID
	v.VehicleNumber = strings.ToUpper(v.VehicleNumber)
	if v.Status == "" {
		v.Status = types.StatusActive
	}
	v.CreatedAt = now
	v.UpdatedAt = now

	if err := s.repository.CreateVehicle(v); err != nil {
		return nil, err
	}

	return v, nil
}

// ListVehiclesByProvider lists the vehicles owned by a provider
func (s *Service) ListVehiclesByProvider(providerUID string) ([]*types.Vehicle, error) {
	p, err := s.repository.GetProviderByUID(providerUID)
	if err != nil {
		return nil, err
	}
	return s.repository.ListVehiclesByProvider(p.ID)
}

// SetVehicleStatus mutates a vehicle's operational status
func (s *Service) SetVehicleStatus(vehicleID string, status types.OperationalStatus) error {
	if status != types.StatusActive && status != types.StatusInactive {
		return types.NewValidationError("invalid_operational_status",
			fmt.Sprintf("status must be Active or Inactive, got %q", status), nil)
	}
	return s.repository.UpdateVehicleStatus(vehicleID, status)
}

// RegisterDriver registers a driver under an Approved provider
func (s *Service) RegisterDriver(providerUID string, d *types.Driver) (*types.Driver, error) {
	s.logger.Infof("Registering driver %q for provider %s", d.FullName, providerUID)

	p, err := s.requireApprovedProvider(providerUID, "add drivers")
	if err != nil {
		return nil, err
	}

	if err := validateDriver(d); err != nil {
		return nil, err
	}

	now := time.Now()
	d.ID = uuid.New().String()
	d.ProviderID = p.ID
	if d.Status == "" {
		d.Status = types.StatusActive
	}
	d.CreatedAt = now
	d.UpdatedAt = now

	if err := s.repository.CreateDriver(d); err != nil {
		return nil, err
	}

	return d, nil
}

// ListDriversByProvider lists the drivers employed by a provider
func (s *Service) ListDriversByProvider(providerUID string) ([]*types.Driver, error) {
	p, err := s.repository.GetProviderByUID(providerUID)
	if err != nil {
		return nil, err
	}
	return s.repository.ListDriversByProvider(p.ID)
}

// SetDriverStatus mutates a driver's operational status
func (s *Service) SetDriverStatus(driverID string, status types.OperationalStatus) error {
	if status != types.StatusActive && status != types.StatusInactive {
		return types.NewValidationError("invalid_operational_status",
			fmt.Sprintf("status must be Active or Inactive, got %q", status), nil)
	}
	return s.repository.UpdateDriverStatus(driverID, status)
}

// requireApprovedProvider resolves a provider UID and enforces the
// approval gate for fleet registration
func (s *Service) requireApprovedProvider(providerUID, action string) (*types.Provider, error) {
	p, err := s.repository.GetProviderByUID(providerUID)
	if err != nil {
		return nil, err
	}

	if p.Status != types.ProviderApproved {
		return nil, types.NewValidationError(types.ErrProviderNotApproved.Code,
			fmt.Sprintf("provider not approved, cannot %s", action),
			map[string]interface{}{"provider_uid": providerUID, "status": string(p.Status)},
		)
	}

	return p, nil
}

// Start starts the fleet service HTTP server
func (s *Service) Start(addr string) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:    addr,
		Handler: router,
	}

	s.logger.Infof("Starting Fleet Service on %s", addr)
	return s.server.ListenAndServe()
}

// Stop stops the fleet service
func (s *Service) Stop() error {
	if s.server != nil {
		s.logger.Info("Stopping Fleet Service")
		return s.server.Close()
	}
	return nil
}

// validateProvider validates provider registration data
func validateProvider(p *types.Provider) error {
	if p.Name == "" {
		return types.NewValidationError("missing_field", "provider name is required", nil)
	}
	switch p.Type {
	case types.ProviderIndividual, types.ProviderHospital, types.ProviderCompany:
	default:
		return types.NewValidationError("invalid_provider_type",
			fmt.Sprintf("unknown provider type: %q", p.Type), nil)
	}
	if p.ContactPerson == "" || p.ContactPhone == "" || p.ContactEmail == "" {
		return types.NewValidationError("missing_field", "contact person, phone and email are required", nil)
	}
	if p.Address == "" {
		return types.NewValidationError("missing_field", "address is required", nil)
	}
	return nil
}

// validateVehicle validates vehicle registration data
func validateVehicle(v *types.Vehicle) error {
	if v.VehicleNumber == "" {
		return types.NewValidationError("missing_field", "vehicle number is required", nil)
	}
	switch v.Category {
	case types.CategoryBasic, types.CategoryICU, types.CategoryCardiac, types.CategoryNeonatal:
	default:
		return types.NewValidationError("invalid_category",
			fmt.Sprintf("unknown ambulance category: %q", v.Category), nil)
	}
	return nil
}

// validateDriver validates driver registration data
func validateDriver(d *types.Driver) error {
	if d.FullName == "" {
		return types.NewValidationError("missing_field", "driver name is required", nil)
	}
	if d.Mobile == "" {
		return types.NewValidationError("missing_field", "driver mobile is required", nil)
	}
	if d.LicenseNumber == "" {
		return types.NewValidationError("missing_field", "driving license number is required", nil)
	}
	if d.LicenseExpiry.IsZero() {
		return types.NewValidationError("missing_field", "license expiry date is required", nil)
	}
	if d.LicenseExpiry.Before(time.Now()) {
		return types.NewValidationError("license_expired", "driving license has expired",
			map[string]interface{}{"license_expiry": d.LicenseExpiry})
	}
	return nil
}
