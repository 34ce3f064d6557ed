package shifts

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/opticbee/24X7HEALTHCARE/internal/fleet"
	"github.com/opticbee/24X7HEALTHCARE/pkg/config"
	"github.com/opticbee/24X7HEALTHCARE/pkg/database"
	"github.com/opticbee/24X7HEALTHCARE/pkg/interfaces"
	"github.com/opticbee/24X7HEALTHCARE/pkg/logger"
	"github.com/opticbee/24X7HEALTHCARE/pkg/monitoring"
	"github.com/opticbee/24X7HEALTHCARE/pkg/types"
)

// Service implements the ShiftService interface
type Service struct {
	config     *config.Config
	logger     *logger.Logger
	repository interfaces.ShiftRepository
	fleet      interfaces.FleetDirectory
	db         *database.DB
	server     *http.Server
	metrics    *monitoring.MetricsCollector
	health     *monitoring.HealthManager
}

// New creates a new shift scheduling service
func New(cfg *config.Config, log *logger.Logger) interfaces.ShiftService {
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Errorf("Failed to connect to database: %v", err)
		panic(err)
	}

	repository := NewRepository(db, log)
	fleetDirectory := fleet.NewRepository(db, log)

	metrics := monitoring.NewMetricsCollector("shift-service")
	health := monitoring.NewHealthManager("shift-service")
	health.RegisterChecker("database", monitoring.NewDatabaseHealthChecker(db.DB))

	return &Service{
		config:     cfg,
		logger:     log,
		repository: repository,
		fleet:      fleetDirectory,
		db:         db,
		metrics:    metrics,
		health:     health,
	}
}

// AssignShift schedules a driver and vehicle into a shift slot. The
// assignment is created only when the slot label resolves to a valid
// window, the vehicle's provider is Approved, and neither scheduling
// invariant is violated.
func (s *Service) AssignShift(req *types.AssignShiftRequest) (*types.ShiftAssignment, error) {
	s.logger.Infof("Assigning shift: vehicle %s, driver %s, %s %s",
		req.VehicleID, req.DriverID, req.ShiftDate, req.Slot)

	if err := validateAssignRequest(req); err != nil {
		return nil, err
	}

	start, end, err := ShiftWindow(req.Slot, req.ShiftDate)
	if err != nil {
		return nil, err
	}

	if err := s.checkFleetEligibility(req.VehicleID, req.DriverID); err != nil {
		return nil, err
	}

	now := time.Now()
	a := &types.ShiftAssignment{
		ID:        uuid.New().String(),
		VehicleID: req.VehicleID,
		DriverID:  req.DriverID,
		Slot:      req.Slot,
		ShiftDate: req.ShiftDate,
		StartTime: start,
		EndTime:   end,
		Status:    types.ShiftScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repository.CreateAssignment(a); err != nil {
		s.recordAssignment(req.Slot, err)
		return nil, err
	}
	s.recordAssignment(req.Slot, nil)

	s.logger.Infof("Successfully assigned shift %s", a.ID)
	return a, nil
}

// checkFleetEligibility enforces the provider approval gate and confirms
// the referenced vehicle and driver exist. Collaborator failures surface
// as dependency errors, never as a scheduling decision.
func (s *Service) checkFleetEligibility(vehicleID, driverID string) error {
	providerID, err := s.fleet.GetOwningProvider(vehicleID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return err
		}
		return types.NewDependencyError("vehicle", err)
	}

	status, err := s.fleet.GetProviderStatus(providerID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return err
		}
		return types.NewDependencyError("provider", err)
	}
	if status != types.ProviderApproved {
		return types.NewValidationError(types.ErrProviderNotApproved.Code,
			fmt.Sprintf("provider %s is %s, shifts require an Approved provider", providerID, status),
			map[string]interface{}{"provider_id": providerID, "status": string(status)},
		)
	}

	if _, err := s.fleet.GetDriverStatus(driverID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return err
		}
		return types.NewDependencyError("driver", err)
	}

	return nil
}

// GetShift retrieves a shift assignment by ID
func (s *Service) GetShift(shiftID string) (*types.ShiftAssignment, error) {
	return s.repository.GetAssignmentByID(shiftID)
}

// TransitionShift moves a shift assignment along its lifecycle. The
// Scheduled -> On-duty transition is an explicit operator action; nothing
// fires it automatically at shift start.
func (s *Service) TransitionShift(shiftID string, to types.ShiftStatus) error {
	if !ValidStatus(to) {
		return types.NewValidationError(types.ErrInvalidTransition.Code,
			fmt.Sprintf("unknown shift status: %q", to),
			map[string]interface{}{"requested": string(to)},
		)
	}

	a, err := s.repository.GetAssignmentByID(shiftID)
	if err != nil {
		return err
	}

	if !CanTransition(a.Status, to) {
		s.recordTransition(to, false)
		return types.NewValidationError(types.ErrInvalidTransition.Code,
			fmt.Sprintf("shift is %s, cannot move to %s", a.Status, to),
			map[string]interface{}{"current": string(a.Status), "requested": string(to)},
		)
	}

	// Compare-and-set in the repository settles concurrent transitions;
	// the loser re-reads and reports the winner's state.
	if err := s.repository.TransitionStatus(shiftID, a.Status, to); err != nil {
		s.recordTransition(to, false)
		return err
	}
	s.recordTransition(to, true)

	s.logger.Infof("Shift %s moved to %s", shiftID, to)
	return nil
}

// ListAllocations lists the roster for one date and slot
func (s *Service) ListAllocations(shiftDate string, slot types.SlotLabel) ([]*types.ShiftRoster, error) {
	if _, _, err := ShiftWindow(slot, shiftDate); err != nil {
		return nil, err
	}
	return s.repository.ListByDateAndSlot(shiftDate, slot)
}

// ListHistory lists all shift assignments, newest date first
func (s *Service) ListHistory() ([]*types.ShiftRoster, error) {
	return s.repository.ListHistory()
}

// ListAvailableVehicles produces a live availability snapshot at the given
// instant. Recomputed on every call; statuses and the clock move
// continuously, so nothing here is cached.
func (s *Service) ListAvailableVehicles(now time.Time) ([]*types.AvailableVehicle, error) {
	vehicles, err := s.repository.ListAvailableVehicles(now)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordAvailabilityQuery(len(vehicles))
	}
	return vehicles, nil
}

// Start starts the shift service HTTP server
func (s *Service) Start(addr string) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:    addr,
		Handler: router,
	}

	s.logger.Infof("Starting Shift Service on %s", addr)
	return s.server.ListenAndServe()
}

// Stop stops the shift service
func (s *Service) Stop() error {
	if s.server != nil {
		s.logger.Info("Stopping Shift Service")
		return s.server.Close()
	}
	return nil
}

func (s *Service) recordAssignment(slot types.SlotLabel, err error) {
	if s.metrics == nil {
		return
	}

	switch {
	case err == nil:
		s.metrics.RecordShiftAssignment(string(slot), "created")
	case errors.Is(err, types.ErrDriverAlreadyAssigned):
		s.metrics.RecordShiftAssignment(string(slot), "conflict")
		s.metrics.RecordShiftConflict("driver_already_assigned")
	case errors.Is(err, types.ErrSlotAlreadyTaken):
		s.metrics.RecordShiftAssignment(string(slot), "conflict")
		s.metrics.RecordShiftConflict("slot_already_taken")
	default:
		s.metrics.RecordShiftAssignment(string(slot), "error")
	}
}

func (s *Service) recordTransition(to types.ShiftStatus, success bool) {
	if s.metrics != nil {
		s.metrics.RecordShiftTransition(string(to), success)
	}
}

// validateAssignRequest validates the assignment inputs
func validateAssignRequest(req *types.AssignShiftRequest) error {
	if req.VehicleID == "" {
		return types.NewValidationError("missing_field", "vehicle ID is required", nil)
	}
	if req.DriverID == "" {
		return types.NewValidationError("missing_field", "driver ID is required", nil)
	}
	if req.Slot == "" {
		return types.NewValidationError("missing_field", "slot label is required", nil)
	}
	if req.ShiftDate == "" {
		return types.NewValidationError("missing_field", "shift date is required", nil)
	}
	return nil
}
