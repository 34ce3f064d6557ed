package fleet

import (
	"regexp"
	"testing"
	"time"

	"github.com/opticbee/24X7HEALTHCARE/pkg/config"
	"github.com/opticbee/24X7HEALTHCARE/pkg/logger"
	"github.com/opticbee/24X7HEALTHCARE/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFleetRepository is a mock implementation of FleetRepository
type MockFleetRepository struct {
	mock.Mock
}

func (m *MockFleetRepository) CreateProvider(p *types.Provider) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockFleetRepository) GetProviderByID(id string) (*types.Provider, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Provider), args.Error(1)
}

func (m *MockFleetRepository) GetProviderByUID(uid string) (*types.Provider, error) {
	args := m.Called(uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Provider), args.Error(1)
}

func (m *MockFleetRepository) UpdateProviderStatus(id string, status types.ProviderStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockFleetRepository) ListProviders(status types.ProviderStatus) ([]*types.Provider, error) {
	args := m.Called(status)
	return args.Get(0).([]*types.Provider), args.Error(1)
}

func (m *MockFleetRepository) CreateVehicle(v *types.Vehicle) error {
	args := m.Called(v)
	return args.Error(0)
}

func (m *MockFleetRepository) GetVehicleByID(id string) (*types.Vehicle, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Vehicle), args.Error(1)
}

func (m *MockFleetRepository) ListVehiclesByProvider(providerID string) ([]*types.Vehicle, error) {
	args := m.Called(providerID)
	return args.Get(0).([]*types.Vehicle), args.Error(1)
}

func (m *MockFleetRepository) UpdateVehicleStatus(id string, status types.OperationalStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockFleetRepository) CreateDriver(d *types.Driver) error {
	args := m.Called(d)
	return args.Error(0)
}

func (m *MockFleetRepository) GetDriverByID(id string) (*types.Driver, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Driver), args.Error(1)
}

func (m *MockFleetRepository) ListDriversByProvider(providerID string) ([]*types.Driver, error) {
	args := m.Called(providerID)
	return args.Get(0).([]*types.Driver), args.Error(1)
}

func (m *MockFleetRepository) UpdateDriverStatus(id string, status types.OperationalStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

// Test setup helper
func setupTestService() (*Service, *MockFleetRepository) {
	cfg := &config.Config{}
	log := logger.New("debug")
	mockRepo := &MockFleetRepository{}

	service := &Service{
		config:     cfg,
		logger:     log,
		repository: mockRepo,
	}

	return service, mockRepo
}

func testProvider() *types.Provider {
	return &types.Provider{
		Name:          "City Ambulance Services",
		Type:          types.ProviderCompany,
		ContactPerson: "Suresh Rao",
		ContactPhone:  "9876543210",
		ContactEmail:  "ops@cityambulance.example",
		Address:       "12 MG Road",
		City:          "Bengaluru",
		State:         "Karnataka",
	}
}

func approvedProvider() *types.Provider {
	p := testProvider()
	p.ID = "provider-1"
	p.UID = "HH-AMB-A1B2C3"
	p.Status = types.ProviderApproved
	return p
}

func TestRegisterProvider_Success(t *testing.T) {
	service, mockRepo := setupTestService()

	mockRepo.On("CreateProvider", mock.AnythingOfType("*types.Provider")).Return(nil)

	p, err := service.RegisterProvider(testProvider())

	assert.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, types.ProviderPending, p.Status)
	assert.Regexp(t, regexp.MustCompile(`^HH-AMB-[0-9A-F]{6}$`), p.UID)
	mockRepo.AssertExpectations(t)
}

func TestRegisterProvider_ValidationErrors(t *testing.T) {
	service, mockRepo := setupTestService()

	missingName := testProvider()
	missingName.Name = ""
	_, err := service.RegisterProvider(missingName)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "provider name is required")

	badType := testProvider()
	badType.Type = "Cooperative"
	_, err = service.RegisterProvider(badType)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider type")

	mockRepo.AssertNotCalled(t, "CreateProvider")
}

func TestSetProviderStatus(t *testing.T) {
	service, mockRepo := setupTestService()

	pending := testProvider()
	pending.ID = "provider-1"
	pending.UID = "HH-AMB-A1B2C3"
	pending.Status = types.ProviderPending

	mockRepo.On("GetProviderByUID", pending.UID).Return(pending, nil)
	mockRepo.On("UpdateProviderStatus", pending.ID, types.ProviderApproved).Return(nil)

	err := service.SetProviderStatus(pending.UID, types.ProviderApproved, "admin-1")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestSetProviderStatus_RejectsPending(t *testing.T) {
	service, mockRepo := setupTestService()

	// Back to Pending is not an administrative decision
	err := service.SetProviderStatus("HH-AMB-A1B2C3", types.ProviderPending, "admin-1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be Approved or Rejected")
	mockRepo.AssertNotCalled(t, "UpdateProviderStatus")
}

func TestRegisterVehicle_Success(t *testing.T) {
	service, mockRepo := setupTestService()

	p := approvedProvider()
	mockRepo.On("GetProviderByUID", p.UID).Return(p, nil)
	mockRepo.On("CreateVehicle", mock.AnythingOfType("*types.Vehicle")).Return(nil)

	v, err := service.RegisterVehicle(p.UID, &types.Vehicle{
		VehicleNumber: "ka01ab1234",
		Category:      types.CategoryICU,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, p.ID, v.ProviderID)
	assert.Equal(t, "KA01AB1234", v.VehicleNumber)
	assert.Equal(t, types.StatusActive, v.Status)
}

func TestRegisterVehicle_UnapprovedProvider(t *testing.T) {
	service, mockRepo := setupTestService()

	p := testProvider()
	p.ID = "provider-1"
	p.UID = "HH-AMB-A1B2C3"
	p.Status = types.ProviderPending

	mockRepo.On("GetProviderByUID", p.UID).Return(p, nil)

	_, err := service.RegisterVehicle(p.UID, &types.Vehicle{
		VehicleNumber: "KA01AB1234",
		Category:      types.CategoryBasic,
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, types.ErrProviderNotApproved)
	mockRepo.AssertNotCalled(t, "CreateVehicle")
}

func TestRegisterVehicle_InvalidCategory(t *testing.T) {
	service, mockRepo := setupTestService()

	p := approvedProvider()
	mockRepo.On("GetProviderByUID", p.UID).Return(p, nil)

	_, err := service.RegisterVehicle(p.UID, &types.Vehicle{
		VehicleNumber: "KA01AB1234",
		Category:      "Deluxe",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown ambulance category")
	mockRepo.AssertNotCalled(t, "CreateVehicle")
}

func TestRegisterDriver_Success(t *testing.T) {
	service, mockRepo := setupTestService()

	p := approvedProvider()
	mockRepo.On("GetProviderByUID", p.UID).Return(p, nil)
	mockRepo.On("CreateDriver", mock.AnythingOfType("*types.Driver")).Return(nil)

	d, err := service.RegisterDriver(p.UID, &types.Driver{
		FullName:      "Ravi Kumar",
		Mobile:        "9876501234",
		LicenseNumber: "KA0420230001234",
		LicenseExpiry: time.Now().AddDate(2, 0, 0),
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, p.ID, d.ProviderID)
	assert.Equal(t, types.StatusActive, d.Status)
}

func TestRegisterDriver_ExpiredLicense(t *testing.T) {
	service, mockRepo := setupTestService()

	p := approvedProvider()
	mockRepo.On("GetProviderByUID", p.UID).Return(p, nil)

	_, err := service.RegisterDriver(p.UID, &types.Driver{
		FullName:      "Ravi Kumar",
		Mobile:        "9876501234",
		LicenseNumber: "KA0420230001234",
		LicenseExpiry: time.Now().AddDate(-1, 0, 0),
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "license has expired")
	mockRepo.AssertNotCalled(t, "CreateDriver")
}

func TestRegisterDriver_UnapprovedProvider(t *testing.T) {
	service, mockRepo := setupTestService()

	p := testProvider()
	p.ID = "provider-1"
	p.UID = "HH-AMB-A1B2C3"
	p.Status = types.ProviderRejected

	mockRepo.On("GetProviderByUID", p.UID).Return(p, nil)

	_, err := service.RegisterDriver(p.UID, &types.Driver{
		FullName:      "Ravi Kumar",
		Mobile:        "9876501234",
		LicenseNumber: "KA0420230001234",
		LicenseExpiry: time.Now().AddDate(2, 0, 0),
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, types.ErrProviderNotApproved)
}

func TestSetVehicleStatus_InvalidValue(t *testing.T) {
	service, mockRepo := setupTestService()

	err := service.SetVehicleStatus("vehicle-1", "Broken")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be Active or Inactive")
	mockRepo.AssertNotCalled(t, "UpdateVehicleStatus")
}

func TestSetDriverStatus(t *testing.T) {
	service, mockRepo := setupTestService()

	mockRepo.On("UpdateDriverStatus", "driver-1", types.StatusInactive).Return(nil)

	err := service.SetDriverStatus("driver-1", types.StatusInactive)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
