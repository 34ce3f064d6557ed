package types

import "time"

// ProviderStatus represents provider approval workflow states
type ProviderStatus string

const (
	ProviderPending  ProviderStatus = "Pending"
	ProviderApproved ProviderStatus = "Approved"
	ProviderRejected ProviderStatus = "Rejected"
)

// ProviderType represents the kind of organization operating ambulances
type ProviderType string

const (
	ProviderIndividual ProviderType = "Individual"
	ProviderHospital   ProviderType = "Hospital"
	ProviderCompany    ProviderType = "Company"
)

// Provider is an organizational entity owning vehicles and drivers. Only
// Approved providers may register vehicles or drivers, or receive shift
// assignments. Status is mutated exclusively by an admin approval action.
type Provider struct {
	ID            string         `json:"id" db:"id"`
	UID           string         `json:"provider_uid" db:"provider_uid"`
	Name          string         `json:"provider_name" db:"provider_name"`
	Type          ProviderType   `json:"provider_type" db:"provider_type"`
	ContactPerson string         `json:"contact_person" db:"contact_person"`
	ContactPhone  string         `json:"contact_phone" db:"contact_phone"`
	ContactEmail  string         `json:"contact_email" db:"contact_email"`
	Address       string         `json:"address" db:"address"`
	City          string         `json:"city,omitempty" db:"city"`
	State         string         `json:"state,omitempty" db:"state"`
	GSTNumber     string         `json:"gst_number,omitempty" db:"gst_number"`
	Status        ProviderStatus `json:"status" db:"status"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

// VehicleCategory represents the fixed ambulance category enumeration
type VehicleCategory string

const (
	CategoryBasic    VehicleCategory = "Basic"
	CategoryICU      VehicleCategory = "ICU"
	CategoryCardiac  VehicleCategory = "Cardiac"
	CategoryNeonatal VehicleCategory = "Neonatal"
)

// OperationalStatus is shared by vehicles and drivers
type OperationalStatus string

const (
	StatusActive   OperationalStatus = "Active"
	StatusInactive OperationalStatus = "Inactive"
)

// Vehicle is an ambulance owned by exactly one provider
type Vehicle struct {
	ID            string            `json:"id" db:"id"`
	ProviderID    string            `json:"provider_id" db:"provider_id"`
	VehicleNumber string            `json:"vehicle_number" db:"vehicle_number"`
	Category      VehicleCategory   `json:"category" db:"category"`
	Model         string            `json:"model,omitempty" db:"model"`
	GPSEnabled    bool              `json:"gps_enabled" db:"gps_enabled"`
	Status        OperationalStatus `json:"status" db:"status"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" db:"updated_at"`
}

// Driver is an ambulance driver employed by exactly one provider
type Driver struct {
	ID              string            `json:"id" db:"id"`
	ProviderID      string            `json:"provider_id" db:"provider_id"`
	FullName        string            `json:"full_name" db:"full_name"`
	Mobile          string            `json:"mobile" db:"mobile"`
	LicenseNumber   string            `json:"driving_license_no" db:"driving_license_no"`
	LicenseExpiry   time.Time         `json:"license_expiry" db:"license_expiry"`
	ExperienceYears int               `json:"experience_years,omitempty" db:"experience_years"`
	Status          OperationalStatus `json:"status" db:"status"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`
}
