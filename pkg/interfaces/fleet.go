package interfaces

import (
	"github.com/opticbee/24X7HEALTHCARE/pkg/types"
)

// FleetService defines the interface for provider onboarding and fleet management
type FleetService interface {
	// Provider onboarding
	RegisterProvider(p *types.Provider) (*types.Provider, error)
	GetProviderByUID(uid string) (*types.Provider, error)
	SetProviderStatus(uid string, status types.ProviderStatus, actor string) error
	ListProviders(status types.ProviderStatus) ([]*types.Provider, error)

	// Vehicle management; registration requires an Approved provider
	RegisterVehicle(providerUID string, v *types.Vehicle) (*types.Vehicle, error)
	ListVehiclesByProvider(providerUID string) ([]*types.Vehicle, error)
	SetVehicleStatus(vehicleID string, status types.OperationalStatus) error

	// Driver management; registration requires an Approved provider
	RegisterDriver(providerUID string, d *types.Driver) (*types.Driver, error)
	ListDriversByProvider(providerUID string) ([]*types.Driver, error)
	SetDriverStatus(driverID string, status types.OperationalStatus) error

	// Service management
	Start(addr string) error
	Stop() error
}

// FleetRepository defines the interface for fleet data persistence
type FleetRepository interface {
	// Providers
	CreateProvider(p *types.Provider) error
	GetProviderByID(id string) (*types.Provider, error)
	GetProviderByUID(uid string) (*types.Provider, error)
	UpdateProviderStatus(id string, status types.ProviderStatus) error
	ListProviders(status types.ProviderStatus) ([]*types.Provider, error)

	// Vehicles
	CreateVehicle(v *types.Vehicle) error
	GetVehicleByID(id string) (*types.Vehicle, error)
	ListVehiclesByProvider(providerID string) ([]*types.Vehicle, error)
	UpdateVehicleStatus(id string, status types.OperationalStatus) error

	// Drivers
	CreateDriver(d *types.Driver) error
	GetDriverByID(id string) (*types.Driver, error)
	ListDriversByProvider(providerID string) ([]*types.Driver, error)
	UpdateDriverStatus(id string, status types.OperationalStatus) error
}

// FleetDirectory is the read-only collaborator view the scheduling core
// consumes. Failures here are reported as dependency errors, never as an
// implicit "not approved" or "inactive".
type FleetDirectory interface {
	GetProviderStatus(providerID string) (types.ProviderStatus, error)
	GetVehicleStatus(vehicleID string) (types.OperationalStatus, error)
	GetOwningProvider(vehicleID string) (string, error)
	GetDriverStatus(driverID string) (types.OperationalStatus, error)
}
