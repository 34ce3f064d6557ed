package fleet

import (
	"database/sql"
	"fmt"

	"github.com/opticbee/24X7HEALTHCARE/pkg/database"
	"github.com/opticbee/24X7HEALTHCARE/pkg/logger"
	"github.com/opticbee/24X7HEALTHCARE/pkg/types"
)

// Repository implements the FleetRepository and FleetDirectory interfaces
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a new fleet repository
func NewRepository(db *database.DB, log *logger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

// CreateProvider creates a new ambulance provider in Pending state
func (r *Repository) CreateProvider(p *types.Provider) error {
	query := `
		INSERT INTO ambulance_providers (
			id, provider_uid, provider_name, provider_type, contact_person,
			contact_phone, contact_email, address, city, state, gst_number, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(query,
		p.ID,
		p.UID,
		p.Name,
		string(p.Type),
		p.ContactPerson,
		p.ContactPhone,
		p.ContactEmail,
		p.Address,
		p.City,
		p.State,
		p.GSTNumber,
		string(p.Status),
	)

	if err != nil {
		r.logger.Errorf("Failed to create provider: %v", err)
		return fmt.Errorf("failed to create provider: %w", err)
	}

	r.logger.Infof("Created provider %s (%s)", p.ID, p.UID)
	return nil
}

const providerColumns = `id, provider_uid, provider_name, provider_type, contact_person,
	       contact_phone, contact_email, address, city, state, gst_number,
	       status, created_at, updated_at`

func scanProvider(row *sql.Row) (*types.Provider, error) {
	p := &types.Provider{}
	err := row.Scan(
		&p.ID,
		&p.UID,
		&p.Name,
		&p.Type,
		&p.ContactPerson,
		&p.ContactPhone,
		&p.ContactEmail,
		&p.Address,
		&p.City,
		&p.State,
		&p.GSTNumber,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetProviderByID retrieves a provider by ID
func (r *Repository) GetProviderByID(id string) (*types.Provider, error) {
	query := fmt.Sprintf(`SELECT %s FROM ambulance_providers WHERE id = $1`, providerColumns)

	p, err := scanProvider(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError("provider", id)
		}
		r.logger.Errorf("Failed to get provider %s: %v", id, err)
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}

	return p, nil
}

// GetProviderByUID retrieves a provider by its public UID
func (r *Repository) GetProviderByUID(uid string) (*types.Provider, error) {
	query := fmt.Sprintf(`SELECT %s FROM ambulance_providers WHERE provider_uid = $1`, providerColumns)

	p, err := scanProvider(r.db.QueryRow(query, uid))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError("provider", uid)
		}
		r.logger.Errorf("Failed to get provider %s: %v", uid, err)
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}

	return p, nil
}

// UpdateProviderStatus mutates the provider approval status
func (r *Repository) UpdateProviderStatus(id string, status types.ProviderStatus) error {
	query := `UPDATE ambulance_providers SET status = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.Exec(query, string(status), id)
	if err != nil {
		r.logger.Errorf("Failed to update provider %s status: %v", id, err)
		return fmt.Errorf("failed to update provider status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return types.NewNotFoundError("provider", id)
	}

	r.logger.Infof("Provider %s status set to %s", id, status)
	return nil
}

// ListProviders retrieves providers, optionally filtered by status
func (r *Repository) ListProviders(status types.ProviderStatus) ([]*types.Provider, error) {
	query := fmt.Sprintf(`SELECT %s FROM ambulance_providers`, providerColumns)
	args := []interface{}{}

	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Errorf("Failed to list providers: %v", err)
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	defer rows.Close()

	var providers []*types.Provider
	for rows.Next() {
		p := &types.Provider{}
		err := rows.Scan(
			&p.ID,
			&p.UID,
			&p.Name,
			&p.Type,
			&p.ContactPerson,
			&p.ContactPhone,
			&p.ContactEmail,
			&p.Address,
			&p.City,
			&p.State,
			&p.GSTNumber,
			&p.Status,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan provider: %w", err)
		}
		providers = append(providers, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating providers: %w", err)
	}

	return providers, nil
}

// CreateVehicle creates a new ambulance
func (r *Repository) CreateVehicle(v *types.Vehicle) error {
	query := `
		INSERT INTO ambulances (
			id, provider_id, vehicle_number, category, model, gps_enabled, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		v.ID,
		v.ProviderID,
		v.VehicleNumber,
		string(v.Category),
		v.Model,
		v.GPSEnabled,
		string(v.Status),
	)

	if err != nil {
		r.logger.Errorf("Failed to create vehicle: %v", err)
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	r.logger.Infof("Created vehicle %s (%s) for provider %s", v.ID, v.VehicleNumber, v.ProviderID)
	return nil
}

// GetVehicleByID retrieves a vehicle by ID
func (r *Repository) GetVehicleByID(id string) (*types.Vehicle, error) {
	query := `
		SELECT id, provider_id, vehicle_number, category, model, gps_enabled,
		       status, created_at, updated_at
		FROM ambulances
		WHERE id = $1`

	v := &types.Vehicle{}
	err := r.db.QueryRow(query, id).Scan(
		&v.ID,
		&v.ProviderID,
		&v.VehicleNumber,
		&v.Category,
		&v.Model,
		&v.GPSEnabled,
		&v.Status,
		&v.CreatedAt,
		&v.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError("vehicle", id)
		}
		r.logger.Errorf("Failed to get vehicle %s: %v", id, err)
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return v, nil
}

// ListVehiclesByProvider retrieves all vehicles owned by a provider
func (r *Repository) ListVehiclesByProvider(providerID string) ([]*types.Vehicle, error) {
	query := `
		SELECT id, provider_id, vehicle_number, category, model, gps_enabled,
		       status, created_at, updated_at
		FROM ambulances
		WHERE provider_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(query, providerID)
	if err != nil {
		r.logger.Errorf("Failed to list vehicles: %v", err)
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*types.Vehicle
	for rows.Next() {
		v := &types.Vehicle{}
		err := rows.Scan(
			&v.ID,
			&v.ProviderID,
			&v.VehicleNumber,
			&v.Category,
			&v.Model,
			&v.GPSEnabled,
			&v.Status,
			&v.CreatedAt,
			&v.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vehicles: %w", err)
	}

	return vehicles, nil
}

// UpdateVehicleStatus mutates a vehicle's operational status
func (r *Repository) UpdateVehicleStatus(id string, status types.OperationalStatus) error {
	query := `UPDATE ambulances SET status = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.Exec(query, string(status), id)
	if err != nil {
		r.logger.Errorf("Failed to update vehicle %s status: %v", id, err)
		return fmt.Errorf("failed to update vehicle status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return types.NewNotFoundError("vehicle", id)
	}

	r.logger.Infof("Vehicle %s status set to %s", id, status)
	return nil
}

// CreateDriver creates a new ambulance driver
func (r *Repository) CreateDriver(d *types.Driver) error {
	query := `
		INSERT INTO ambulance_drivers (
			id, provider_id, full_name, mobile, driving_license_no,
			license_expiry, experience_years, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		d.ID,
		d.ProviderID,
		d.FullName,
		d.Mobile,
		d.LicenseNumber,
		d.LicenseExpiry,
		d.ExperienceYears,
		string(d.Status),
	)

	if err != nil {
		r.logger.Errorf("Failed to create driver: %v", err)
		return fmt.Errorf("failed to create driver: %w", err)
	}

	r.logger.Infof("Created driver %s for provider %s", d.ID, d.ProviderID)
	return nil
}

// GetDriverByID retrieves a driver by ID
func (r *Repository) GetDriverByID(id string) (*types.Driver, error) {
	query := `
		SELECT id, provider_id, full_name, mobile, driving_license_no,
		       license_expiry, experience_years, status, created_at, updated_at
		FROM ambulance_drivers
		WHERE id = $1`

	d := &types.Driver{}
	err := r.db.QueryRow(query, id).Scan(
		&d.ID,
		&d.ProviderID,
		&d.FullName,
		&d.Mobile,
		&d.LicenseNumber,
		&d.LicenseExpiry,
		&d.ExperienceYears,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError("driver", id)
		}
		r.logger.Errorf("Failed to get driver %s: %v", id, err)
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}

	return d, nil
}

// ListDriversByProvider retrieves all drivers employed by a provider
func (r *Repository) ListDriversByProvider(providerID string) ([]*types.Driver, error) {
	query := `
		SELECT id, provider_id, full_name, mobile, driving_license_no,
		       license_expiry, experience_years, status, created_at, updated_at
		FROM ambulance_drivers
		WHERE provider_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(query, providerID)
	if err != nil {
		r.logger.Errorf("Failed to list drivers: %v", err)
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	defer rows.Close()

	var drivers []*types.Driver
	for rows.Next() {
		d := &types.Driver{}
		err := rows.Scan(
			&d.ID,
			&d.ProviderID,
			&d.FullName,
			&d.Mobile,
			&d.LicenseNumber,
			&d.LicenseExpiry,
			&d.ExperienceYears,
			&d.Status,
			&d.CreatedAt,
			&d.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		drivers = append(drivers, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating drivers: %w", err)
	}

	return drivers, nil
}

// UpdateDriverStatus mutates a driver's operational status
func (r *Repository) UpdateDriverStatus(id string, status types.OperationalStatus) error {
	query := `UPDATE ambulance_drivers SET status = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.Exec(query, string(status), id)
	if err != nil {
		r.logger.Errorf("Failed to update driver %s status: %v", id, err)
		return fmt.Errorf("failed to update driver status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return types.NewNotFoundError("driver", id)
	}

	r.logger.Infof("Driver %s status set to %s", id, status)
	return nil
}
