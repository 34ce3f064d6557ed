package fleet

import (
	"github.com/opticbee/24X7HEALTHCARE/pkg/types"
)

// The scheduling core consumes the fleet store through the narrow
// FleetDirectory view: status lookups only, no mutation.

// GetProviderStatus returns the approval status of a provider
func (r *Repository) GetProviderStatus(providerID string) (types.ProviderStatus, error) {
	p, err := r.GetProviderByID(providerID)
	if err != nil {
		return "", err
	}
	return p.Status, nil
}

// GetVehicleStatus returns the operational status of a vehicle
func (r *Repository) GetVehicleStatus(vehicleID string) (types.OperationalStatus, error) {
	v, err := r.GetVehicleByID(vehicleID)
	if err != nil {
		return "", err
	}
	return v.Status, nil
}

// GetOwningProvider returns the provider ID a vehicle belongs to
func (r *Repository) GetOwningProvider(vehicleID string) (string, error) {
	v, err := r.GetVehicleByID(vehicleID)
	if err != nil {
		return "", err
	}
	return v.ProviderID, nil
}

// GetDriverStatus returns the operational status of a driver
func (r *Repository) GetDriverStatus(driverID string) (types.OperationalStatus, error) {
	d, err := r.GetDriverByID(driverID)
	if err != nil {
		return "", err
	}
	return d.Status, nil
}
