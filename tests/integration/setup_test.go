// +build integration

package integration

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/opticbee/24X7HEALTHCARE/pkg/database"
	"github.com/opticbee/24X7HEALTHCARE/pkg/logger"
)

var (
	testDB    *database.DB
	testDBURL string
	container testcontainers.Container
)

// TestMain sets up the test environment
func TestMain(m *testing.M) {
	ctx := context.Background()

	if err := setupTestDatabase(ctx); err != nil {
		log.Fatalf("Failed to setup test database: %v", err)
	}

	code := m.Run()

	cleanup(ctx)
	os.Exit(code)
}

// setupTestDatabase creates a PostgreSQL container for testing
func setupTestDatabase(ctx context.Context) error {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:15",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "ambulance_test",
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}

	postgres, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return fmt.Errorf("failed to start postgres container: %w", err)
	}
	container = postgres

	host, err := postgres.Host(ctx)
	if err != nil {
		return fmt.Errorf("failed to get postgres host: %w", err)
	}

	port, err := postgres.MappedPort(ctx, "5432")
	if err != nil {
		return fmt.Errorf("failed to get postgres port: %w", err)
	}

	testDBURL = fmt.Sprintf("postgres://test:testpass@%s:%s/ambulance_test?sslmode=disable", host, port.Port())

	sqlDB, err := sql.Open("postgres", testDBURL)
	if err != nil {
		return fmt.Errorf("failed to connect to test database: %w", err)
	}

	for i := 0; i < 30; i++ {
		if err := sqlDB.Ping(); err == nil {
			break
		}
		time.Sleep(time.Second)
	}

	testDB = database.NewWithDB(sqlDB, logger.New("debug"))

	if err := testDB.CreateSchema(ctx); err != nil {
		return fmt.Errorf("failed to create test schema: %w", err)
	}

	return nil
}

// cleanup tears down the test environment
func cleanup(ctx context.Context) {
	if testDB != nil {
		testDB.Close()
	}
	if container != nil {
		if err := container.Terminate(ctx); err != nil {
			log.Printf("Failed to terminate postgres container: %v", err)
		}
	}
}
