// +build integration

package integration

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opticbee/24X7HEALTHCARE/internal/fleet"
	"github.com/opticbee/24X7HEALTHCARE/internal/shifts"
	"github.com/opticbee/24X7HEALTHCARE/pkg/logger"
	"github.com/opticbee/24X7HEALTHCARE/pkg/types"
)

// fixture seeds an approved provider with one active vehicle and driver and
// returns their IDs.
type fixture struct {
	providerID string
	vehicleID  string
	driverID   string
}

func seedFleet(t *testing.T) fixture {
	t.Helper()
	log := logger.New("debug")
	repo := fleet.NewRepository(testDB, log)

	p := &types.Provider{
		ID:            uuid.New().String(),
		UID:           "HH-AMB-" + uuid.New().String()[:6],
		Name:          "Test Provider",
		Type:          types.ProviderCompany,
		ContactPerson: "Ops Desk",
		ContactPhone:  "9876543210",
		ContactEmail:  "ops@test.example",
		Address:       "12 MG Road",
		City:          "Bengaluru",
		State:         "Karnataka",
		Status:        types.ProviderApproved,
	}
	require.NoError(t, repo.CreateProvider(p))

	v := &types.Vehicle{
		ID:            uuid.New().String(),
		ProviderID:    p.ID,
		VehicleNumber: "KA01" + uuid.New().String()[:6],
		Category:      types.CategoryBasic,
		Status:        types.StatusActive,
	}
	require.NoError(t, repo.CreateVehicle(v))

	d := &types.Driver{
		ID:            uuid.New().String(),
		ProviderID:    p.ID,
		FullName:      "Test Driver",
		Mobile:        "9876501234",
		LicenseNumber: uuid.New().String(),
		LicenseExpiry: time.Now().AddDate(2, 0, 0),
		Status:        types.StatusActive,
	}
	require.NoError(t, repo.CreateDriver(d))

	return fixture{providerID: p.ID, vehicleID: v.ID, driverID: d.ID}
}

func newAssignment(f fixture, slot types.SlotLabel, shiftDate string) *types.ShiftAssignment {
	start, end, _ := shifts.ShiftWindow(slot, shiftDate)
	now := time.Now()
	return &types.ShiftAssignment{
		ID:        uuid.New().String(),
		VehicleID: f.vehicleID,
		DriverID:  f.driverID,
		Slot:      slot,
		ShiftDate: shiftDate,
		StartTime: start,
		EndTime:   end,
		Status:    types.ShiftScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestShiftAssignment_UniquenessEnforcedByDatabase(t *testing.T) {
	log := logger.New("debug")
	repo := shifts.NewRepository(testDB, log)
	f := seedFleet(t)

	require.NoError(t, repo.CreateAssignment(newAssignment(f, types.SlotEarly, "2030-01-10")))

	// Same driver, same date, different slot
	err := repo.CreateAssignment(newAssignment(f, types.SlotMid, "2030-01-10"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, types.ErrDriverAlreadyAssigned)

	// Same vehicle, same date and slot, different driver
	f2 := seedFleet(t)
	a := newAssignment(f2, types.SlotEarly, "2030-01-10")
	a.VehicleID = f.vehicleID
	err = repo.CreateAssignment(a)
	assert.Error(t, err)
	assert.ErrorIs(t, err, types.ErrSlotAlreadyTaken)
}

func TestShiftAssignment_ConcurrentInsertsSettleToOneWinner(t *testing.T) {
	log := logger.New("debug")
	repo := shifts.NewRepository(testDB, log)
	f := seedFleet(t)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.CreateAssignment(newAssignment(f, types.SlotOvernight, "2030-02-01"))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		// Losers surface one of the two scheduling conflicts depending on
		// which constraint the database checks first.
		conflict := errors.Is(err, types.ErrDriverAlreadyAssigned) ||
			errors.Is(err, types.ErrSlotAlreadyTaken)
		assert.True(t, conflict, "unexpected error: %v", err)
	}
	assert.Equal(t, 1, winners)
}

func TestShiftLifecycle(t *testing.T) {
	log := logger.New("debug")
	repo := shifts.NewRepository(testDB, log)
	f := seedFleet(t)

	a := newAssignment(f, types.SlotMid, "2030-03-01")
	require.NoError(t, repo.CreateAssignment(a))

	require.NoError(t, repo.TransitionStatus(a.ID, types.ShiftScheduled, types.ShiftOnDuty))
	require.NoError(t, repo.TransitionStatus(a.ID, types.ShiftOnDuty, types.ShiftCompleted))

	// The compare-and-set rejects a stale transition
	err := repo.TransitionStatus(a.ID, types.ShiftOnDuty, types.ShiftCompleted)
	assert.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidTransition)

	stored, err := repo.GetAssignmentByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, types.ShiftCompleted, stored.Status)
}

func TestLiveAvailability(t *testing.T) {
	log := logger.New("debug")
	repo := shifts.NewRepository(testDB, log)
	f := seedFleet(t)

	a := newAssignment(f, types.SlotEarly, "2030-04-01")
	require.NoError(t, repo.CreateAssignment(a))
	require.NoError(t, repo.TransitionStatus(a.ID, types.ShiftScheduled, types.ShiftOnDuty))

	inWindow := time.Date(2030, 4, 1, 10, 0, 0, 0, time.Local)
	vehicles, err := repo.ListAvailableVehicles(inWindow)
	require.NoError(t, err)
	assert.True(t, containsVehicle(vehicles, f.vehicleID))

	// End boundary is exclusive
	atEnd := time.Date(2030, 4, 1, 14, 0, 0, 0, time.Local)
	vehicles, err = repo.ListAvailableVehicles(atEnd)
	require.NoError(t, err)
	assert.False(t, containsVehicle(vehicles, f.vehicleID))

	outOfWindow := time.Date(2030, 4, 1, 15, 0, 0, 0, time.Local)
	vehicles, err = repo.ListAvailableVehicles(outOfWindow)
	require.NoError(t, err)
	assert.False(t, containsVehicle(vehicles, f.vehicleID))
}

func TestLiveAvailability_ExcludesInactiveFleet(t *testing.T) {
	log := logger.New("debug")
	repo := shifts.NewRepository(testDB, log)
	fleetRepo := fleet.NewRepository(testDB, log)
	f := seedFleet(t)

	a := newAssignment(f, types.SlotEarly, "2030-05-01")
	require.NoError(t, repo.CreateAssignment(a))
	require.NoError(t, repo.TransitionStatus(a.ID, types.ShiftScheduled, types.ShiftOnDuty))

	inWindow := time.Date(2030, 5, 1, 10, 0, 0, 0, time.Local)

	require.NoError(t, fleetRepo.UpdateDriverStatus(f.driverID, types.StatusInactive))
	vehicles, err := repo.ListAvailableVehicles(inWindow)
	require.NoError(t, err)
	assert.False(t, containsVehicle(vehicles, f.vehicleID))

	// Reactivating the driver restores the snapshot
	require.NoError(t, fleetRepo.UpdateDriverStatus(f.driverID, types.StatusActive))
	vehicles, err = repo.ListAvailableVehicles(inWindow)
	require.NoError(t, err)
	assert.True(t, containsVehicle(vehicles, f.vehicleID))
}

func containsVehicle(vehicles []*types.AvailableVehicle, id string) bool {
	for _, v := range vehicles {
		if v.VehicleID == id {
			return true
		}
	}
	return false
}
