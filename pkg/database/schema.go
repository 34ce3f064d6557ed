package database

import (
	"context"
	"fmt"
)

// CreateSchema creates the database schema for the ambulance operations platform
func (db *DB) CreateSchema(ctx context.Context) error {
	db.logger.Info("Creating database schema...")

	if err := db.createExtensions(ctx); err != nil {
		return fmt.Errorf("failed to create extensions: %w", err)
	}

	tables := []string{
		createProvidersTable,
		createVehiclesTable,
		createDriversTable,
		createShiftsTable,
		createBookingsTable,
	}

	for _, table := range tables {
		if _, err := db.ExecContext(ctx, table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		createProvidersIndexes,
		createVehiclesIndexes,
		createDriversIndexes,
		createShiftsIndexes,
	}

	for _, index := range indexes {
		if _, err := db.ExecContext(ctx, index); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
	}

	db.logger.Info("Database schema created successfully")
	return nil
}

// createExtensions creates required PostgreSQL extensions
func (db *DB) createExtensions(ctx context.Context) error {
	extensions := []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, ext := range extensions {
		if _, err := db.ExecContext(ctx, ext); err != nil {
			return fmt.Errorf("failed to create extension: %w", err)
		}
	}

	return nil
}

// Constraint names referenced by the shift repository when mapping
// unique_violation errors back to the conflict that caused them.
const (
	ShiftDriverDateConstraint  = "uq_shift_driver_date"
	ShiftVehicleSlotConstraint = "uq_shift_vehicle_date_slot"
)

// SQL DDL statements for table creation
const (
	createProvidersTable = `
		CREATE TABLE IF NOT EXISTS ambulance_providers (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			provider_uid VARCHAR(20) UNIQUE NOT NULL,
			provider_name VARCHAR(255) NOT NULL,
			provider_type VARCHAR(20) NOT NULL CHECK (provider_type IN ('Individual', 'Hospital', 'Company')),
			contact_person VARCHAR(255) NOT NULL,
			contact_phone VARCHAR(20) NOT NULL,
			contact_email VARCHAR(255) NOT NULL,
			address TEXT NOT NULL,
			city VARCHAR(100),
			state VARCHAR(100),
			gst_number VARCHAR(50),
			status VARCHAR(10) NOT NULL DEFAULT 'Pending' CHECK (status IN ('Pending', 'Approved', 'Rejected')),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);`

	createVehiclesTable = `
		CREATE TABLE IF NOT EXISTS ambulances (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			provider_id UUID NOT NULL REFERENCES ambulance_providers(id),
			vehicle_number VARCHAR(20) UNIQUE NOT NULL,
			category VARCHAR(10) NOT NULL CHECK (category IN ('Basic', 'ICU', 'Cardiac', 'Neonatal')),
			model VARCHAR(100),
			gps_enabled BOOLEAN NOT NULL DEFAULT FALSE,
			status VARCHAR(10) NOT NULL DEFAULT 'Active' CHECK (status IN ('Active', 'Inactive')),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);`

	createDriversTable = `
		CREATE TABLE IF NOT EXISTS ambulance_drivers (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			provider_id UUID NOT NULL REFERENCES ambulance_providers(id),
			full_name VARCHAR(255) NOT NULL,
			mobile VARCHAR(15) NOT NULL,
			driving_license_no VARCHAR(100) NOT NULL,
			license_expiry DATE NOT NULL,
			experience_years INT,
			status VARCHAR(10) NOT NULL DEFAULT 'Active' CHECK (status IN ('Active', 'Inactive')),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);`

	// The two unique constraints are the arbiter for concurrent assignment
	// requests: a vehicle holds one assignment per (date, slot), a driver
	// holds one assignment per date.
	createShiftsTable = `
		CREATE TABLE IF NOT EXISTS ambulance_shifts (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			vehicle_id UUID NOT NULL REFERENCES ambulances(id),
			driver_id UUID NOT NULL REFERENCES ambulance_drivers(id),
			slot VARCHAR(10) NOT NULL CHECK (slot IN ('early', 'mid', 'overnight')),
			shift_date DATE NOT NULL,
			start_time TIMESTAMP WITH TIME ZONE NOT NULL,
			end_time TIMESTAMP WITH TIME ZONE NOT NULL,
			status VARCHAR(10) NOT NULL DEFAULT 'Scheduled' CHECK (status IN ('Scheduled', 'On-duty', 'Completed')),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			CONSTRAINT uq_shift_driver_date UNIQUE (driver_id, shift_date),
			CONSTRAINT uq_shift_vehicle_date_slot UNIQUE (vehicle_id, shift_date, slot),
			CONSTRAINT ck_shift_window CHECK (end_time > start_time)
		);`

	createBookingsTable = `
		CREATE TABLE IF NOT EXISTS ambulance_bookings (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			patient_name VARCHAR(100) NOT NULL,
			patient_phone VARCHAR(20) NOT NULL,
			patient_email VARCHAR(100),
			pickup_address TEXT NOT NULL,
			drop_address TEXT NOT NULL,
			emergency_type VARCHAR(100),
			ambulance_type VARCHAR(10) NOT NULL DEFAULT 'Basic' CHECK (ambulance_type IN ('Basic', 'ICU', 'Cardiac', 'Neonatal')),
			booking_status VARCHAR(10) NOT NULL DEFAULT 'Pending',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);`
)

// SQL DDL statements for index creation
const (
	createProvidersIndexes = `
		CREATE INDEX IF NOT EXISTS idx_providers_status ON ambulance_providers(status);
		CREATE INDEX IF NOT EXISTS idx_providers_uid ON ambulance_providers(provider_uid);`

	createVehiclesIndexes = `
		CREATE INDEX IF NOT EXISTS idx_ambulances_provider ON ambulances(provider_id);
		CREATE INDEX IF NOT EXISTS idx_ambulances_status ON ambulances(status);`

	createDriversIndexes = `
		CREATE INDEX IF NOT EXISTS idx_drivers_provider ON ambulance_drivers(provider_id);
		CREATE INDEX IF NOT EXISTS idx_drivers_status ON ambulance_drivers(status);`

	createShiftsIndexes = `
		CREATE INDEX IF NOT EXISTS idx_shifts_vehicle ON ambulance_shifts(vehicle_id);
		CREATE INDEX IF NOT EXISTS idx_shifts_driver ON ambulance_shifts(driver_id);
		CREATE INDEX IF NOT EXISTS idx_shifts_date_slot ON ambulance_shifts(shift_date, slot);
		CREATE INDEX IF NOT EXISTS idx_shifts_window ON ambulance_shifts(status, start_time, end_time);`
)
