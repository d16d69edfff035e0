package integration_test

import (
	"context"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/rentfolio/internal/config"
	"github.com/localnerve/rentfolio/internal/database"
	"github.com/localnerve/rentfolio/internal/handlers"
	"github.com/localnerve/rentfolio/internal/services"
	"github.com/localnerve/rentfolio/tests/helpers"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// setDefaultEnv sets an environment variable only when it is not already set
func setDefaultEnv(t *testing.T, key, value string) {
	t.Helper()
	if os.Getenv(key) == "" {
		t.Setenv(key, value)
	}
}

// TestWithMariaDB tests the service with a real MariaDB container bootstrapped
// from the embedded DDL
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	setDefaultEnv(t, "DB_IMAGE", "mariadb:11")
	setDefaultEnv(t, "DB_HOST", "rentfolio-db")
	setDefaultEnv(t, "DB_PORT", "3306")
	setDefaultEnv(t, "DB_ROOT_PASSWORD", "rootpass")
	setDefaultEnv(t, "DB_DATABASE", "rentfolio")
	setDefaultEnv(t, "DB_USER", "rentfolio")
	setDefaultEnv(t, "DB_PASSWORD", "testpass")

	tc, err := helpers.CreateDBTestContainer(t)
	if err != nil {
		t.Fatalf("Failed to start database container: %v", err)
	}
	defer tc.Terminate(t)

	cfg := &config.Config{
		DBType:            "mysql",
		DBHost:            tc.DBHost,
		DBPort:            tc.DBPort.Port(),
		DBDatabase:        os.Getenv("DB_DATABASE"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBConnectionLimit: 5,
	}

	// Schema comes from the embedded DDL, no AutoMigrate here
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	t.Run("AssignReleaseLifecycle", func(t *testing.T) {
		testAssignReleaseLifecycle(t, db)
	})

	t.Run("PortfolioExclusivity", func(t *testing.T) {
		testPortfolioExclusivity(t, db)
	})

	t.Run("PortfolioReports", func(t *testing.T) {
		testPortfolioReports(t, db)
	})

	t.Run("PropertyReadAPI", func(t *testing.T) {
		testPropertyReadAPI(t, db)
	})
}

// TestWithPostgreSQL tests the service with a real PostgreSQL container
func TestWithPostgreSQL(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	setDefaultEnv(t, "POSTGRES_IMAGE", "postgres:17")

	ctx := context.Background()

	// Start PostgreSQL container
	postgresContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("POSTGRES_IMAGE"),
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_PASSWORD": "testpass",
				"POSTGRES_USER":     "testuser",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}()

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := postgresContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	cfg := &config.Config{
		DBType:            "postgres",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,
	}

	// Wait for database to be ready
	time.Sleep(2 * time.Second)

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Run("AssignReleaseLifecycle", func(t *testing.T) {
		testAssignReleaseLifecycle(t, db)
	})

	t.Run("PortfolioExclusivity", func(t *testing.T) {
		testPortfolioExclusivity(t, db)
	})

	t.Run("PortfolioReports", func(t *testing.T) {
		testPortfolioReports(t, db)
	})
}

// testAssignReleaseLifecycle walks a tenant through assignment and release
func testAssignReleaseLifecycle(t *testing.T, db *gorm.DB) {
	property := helpers.CreateTestProperty(t, db, "1 Lifecycle Way", 2)
	tenant := helpers.CreateTestTenant(t, db, "Jordan Miles", 1200)

	room := helpers.CreateTestRoom(t, db, "L1")
	if err := services.RoomAttachProperty(db, room.RoomID, property.PropertyID); err != nil {
		t.Fatalf("Failed to attach room: %v", err)
	}

	if err := services.AssignTenant(db, property.PropertyID, tenant.TenantID, &room.RoomID); err != nil {
		t.Fatalf("Failed to assign tenant: %v", err)
	}

	got, err := services.GetTenant(db, tenant.TenantID)
	if err != nil {
		t.Fatalf("Failed to reload tenant: %v", err)
	}
	if got.Unit != "L1" {
		t.Errorf("Expected unit L1, got %q", got.Unit)
	}

	updated, err := services.GetProperty(db, property.PropertyID)
	if err != nil {
		t.Fatalf("Failed to reload property: %v", err)
	}
	if updated.CurrentUnits != 1 {
		t.Errorf("Expected current_units 1, got %d", updated.CurrentUnits)
	}

	if err := services.ReleaseTenant(db, property.PropertyID, tenant.TenantID); err != nil {
		t.Fatalf("Failed to release tenant: %v", err)
	}

	got, err = services.GetTenant(db, tenant.TenantID)
	if err != nil {
		t.Fatalf("Failed to reload tenant: %v", err)
	}
	if got.Unit != "" {
		t.Errorf("Expected unit cleared after release, got %q", got.Unit)
	}

	updated, err = services.GetProperty(db, property.PropertyID)
	if err != nil {
		t.Fatalf("Failed to reload property: %v", err)
	}
	if updated.CurrentUnits != 0 {
		t.Errorf("Expected current_units 0 after release, got %d", updated.CurrentUnits)
	}
}

// testPortfolioExclusivity verifies the one portfolio per property rule
func testPortfolioExclusivity(t *testing.T, db *gorm.DB) {
	property := helpers.CreateTestProperty(t, db, "2 Exclusive Court", 3)
	first := helpers.CreateTestManager(t, db, "First Holdings")
	second := helpers.CreateTestManager(t, db, "Second Holdings")

	if err := services.AddProperty(db, first.ManagerID, &property.PropertyID); err != nil {
		t.Fatalf("Failed to add property to first portfolio: %v", err)
	}

	// Re-adding to the same portfolio is a no-op
	if err := services.AddProperty(db, first.ManagerID, &property.PropertyID); err != nil {
		t.Errorf("Expected idempotent re-add, got %v", err)
	}

	// Another portfolio cannot claim it
	if err := services.AddProperty(db, second.ManagerID, &property.PropertyID); err == nil {
		t.Error("Expected conflict adding managed property to a second portfolio")
	}

	if err := services.RemoveProperty(db, first.ManagerID, &property.PropertyID); err != nil {
		t.Fatalf("Failed to remove property: %v", err)
	}

	// Released property can join another portfolio
	if err := services.AddProperty(db, second.ManagerID, &property.PropertyID); err != nil {
		t.Errorf("Expected add after removal to succeed, got %v", err)
	}
}

// testPortfolioReports exercises expiry reports, revenue, and overdue scans
func testPortfolioReports(t *testing.T, db *gorm.DB) {
	property := helpers.CreateTestProperty(t, db, "3 Report Row", 5)

	now := time.Now().UTC()
	overdueDate := now.AddDate(0, 0, -3)
	tenant, err := services.CreateTenant(db, services.TenantInput{
		Name:           "Riley Chen",
		LeaseStart:     now.AddDate(0, -6, 0),
		LeaseEnd:       now.AddDate(0, 3, 0),
		NextPaymentDue: &overdueDate,
		MonthlyRent:    decimal.NewFromInt(2000),
	})
	if err != nil {
		t.Fatalf("Failed to create tenant: %v", err)
	}

	room := helpers.CreateTestRoom(t, db, "R1")
	if err := services.RoomAttachProperty(db, room.RoomID, property.PropertyID); err != nil {
		t.Fatalf("Failed to attach room: %v", err)
	}
	if err := services.AssignTenant(db, property.PropertyID, tenant.TenantID, &room.RoomID); err != nil {
		t.Fatalf("Failed to assign tenant: %v", err)
	}

	manager := helpers.CreateTestManager(t, db, "Report Holdings")
	if err := services.AddProperty(db, manager.ManagerID, &property.PropertyID); err != nil {
		t.Fatalf("Failed to add property: %v", err)
	}

	// Lease expiry within range, inclusive
	tenants, snapshot, err := services.LeaseExpiryReport(db, manager.ManagerID,
		now, now.AddDate(0, 6, 0), []uint64{property.PropertyID})
	if err != nil {
		t.Fatalf("Failed to run expiry report: %v", err)
	}
	if len(tenants) != 1 {
		t.Errorf("Expected 1 expiring tenant, got %d", len(tenants))
	}
	if snapshot.Reference == "" {
		t.Error("Expected a snapshot reference")
	}

	snapshots, err := services.ListSnapshots(db, manager.ManagerID)
	if err != nil {
		t.Fatalf("Failed to list snapshots: %v", err)
	}
	if len(snapshots) == 0 {
		t.Error("Expected persisted snapshots")
	}

	// Revenue includes the assigned tenant's rent
	total, err := services.TotalRevenue(db, manager.ManagerID)
	if err != nil {
		t.Fatalf("Failed to compute revenue: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("Expected revenue 2000, got %s", total)
	}

	// Overdue scan catches the past-due tenant
	overdue, err := services.OverdueTenants(db, manager.ManagerID, now)
	if err != nil {
		t.Fatalf("Failed to scan overdue tenants: %v", err)
	}
	if len(overdue) != 1 {
		t.Errorf("Expected 1 overdue tenant, got %d", len(overdue))
	}

	// Vacancy scan sees the remaining units
	vacant, err := services.FindVacantProperties(db, manager.ManagerID)
	if err != nil {
		t.Fatalf("Failed to find vacant properties: %v", err)
	}
	if len(vacant) != 1 {
		t.Errorf("Expected 1 vacant property, got %d", len(vacant))
	}
}

// testPropertyReadAPI drives the HTTP surface for properties
func testPropertyReadAPI(t *testing.T, db *gorm.DB) {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	propertyHandler := &handlers.PropertyHandler{DB: db}
	app.Get("/api/properties/:id", propertyHandler.GetProperty)

	property := helpers.CreateTestProperty(t, db, "4 Read Terrace", 10)

	req := httptest.NewRequest("GET", "/api/properties/"+strconv.FormatUint(property.PropertyID, 10), nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	var view struct {
		Address       string  `json:"address"`
		OccupancyRate float64 `json:"occupancy_rate"`
	}
	helpers.ParseJSON(t, resp, &view)
	if view.Address != "4 Read Terrace" {
		t.Errorf("Expected address, got %q", view.Address)
	}
	if view.OccupancyRate != 0 {
		t.Errorf("Expected 0 occupancy, got %f", view.OccupancyRate)
	}
}
