// portfolio_handlers_test.go
//
// Property rental back office data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of rentfolio.
// rentfolio is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// rentfolio is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with rentfolio.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/rentfolio/internal/models"
	"github.com/localnerve/rentfolio/internal/services"
	"gorm.io/gorm"
)

// doJSONList executes a request and decodes a JSON array response
func doJSONList(t *testing.T, app *fiber.App, method, url string) (int, []map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, url, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	var result []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		result = nil
	}
	return resp.StatusCode, result
}

// seedManagedProperty creates a property with one assigned tenant under a manager
func seedManagedProperty(t *testing.T, db *gorm.DB, managerID uint64, address, unitNumber string) (*models.Property, *models.Tenant) {
	t.Helper()

	property, err := services.CreateProperty(db, services.PropertyInput{Address: address, Units: 3})
	if err != nil {
		t.Fatalf("Failed to create property: %v", err)
	}
	tenant := createTenant(t, db, "Managed Tenant")
	room, err := services.CreateRoom(db, unitNumber)
	if err != nil {
		t.Fatalf("Failed to create room: %v", err)
	}
	if err := services.RoomAttachProperty(db, room.RoomID, property.PropertyID); err != nil {
		t.Fatalf("Failed to attach room: %v", err)
	}
	if err := services.AssignTenant(db, property.PropertyID, tenant.TenantID, &room.RoomID); err != nil {
		t.Fatalf("Failed to assign tenant: %v", err)
	}
	if err := services.AddProperty(db, managerID, &property.PropertyID); err != nil {
		t.Fatalf("Failed to add to portfolio: %v", err)
	}
	return property, tenant
}

// TestCreatePropertyEndpoint tests POST /api/properties
func TestCreatePropertyEndpoint(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)

	status, result := doJSON(t, app, "POST", "/api/properties", map[string]interface{}{
		"address": "15 Quay St",
		"units":   4,
	})
	if status != 201 {
		t.Fatalf("Expected status 201, got %d: %v", status, result)
	}
	if result["property_type"] != models.PropertyTypePrivate {
		t.Errorf("Expected default type, got %v", result["property_type"])
	}

	// Duplicate address is a 400
	status, _ = doJSON(t, app, "POST", "/api/properties", map[string]interface{}{
		"address": "15 Quay St",
		"units":   2,
	})
	if status != 400 {
		t.Errorf("Expected status 400 for duplicate address, got %d", status)
	}
}

// TestGetPropertyView tests the extended read shape
func TestGetPropertyView(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)

	property, err := services.CreateProperty(db, services.PropertyInput{Address: "16 Quay St", Units: 2})
	if err != nil {
		t.Fatalf("Failed to create property: %v", err)
	}

	status, result := doJSON(t, app, "GET", fmt.Sprintf("/api/properties/%d", property.PropertyID), nil)
	if status != 200 {
		t.Fatalf("Expected status 200, got %d", status)
	}
	if result["occupancy_rate"] != 0.0 {
		t.Errorf("Expected occupancy_rate 0, got %v", result["occupancy_rate"])
	}
	if result["tenants"] == nil {
		t.Error("Expected tenants array in view")
	}
}

// TestAssignTenantEndpoint drives assignment through the HTTP surface
func TestAssignTenantEndpoint(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)

	property, _ := services.CreateProperty(db, services.PropertyInput{Address: "17 Quay St", Units: 1})
	tenant := createTenant(t, db, "Quinn Marsh")
	room, _ := services.CreateRoom(db, "Q1")
	_ = services.RoomAttachProperty(db, room.RoomID, property.PropertyID)

	// No room given is a 400
	status, _ := doJSON(t, app, "POST", fmt.Sprintf("/api/properties/%d/tenants", property.PropertyID),
		map[string]interface{}{"tenant_id": tenant.TenantID})
	if status != 400 {
		t.Errorf("Expected status 400 without a room, got %d", status)
	}

	status, result := doJSON(t, app, "POST", fmt.Sprintf("/api/properties/%d/tenants", property.PropertyID),
		map[string]interface{}{"tenant_id": tenant.TenantID, "room_id": room.RoomID})
	if status != 200 {
		t.Fatalf("Expected status 200, got %d: %v", status, result)
	}

	// The single unit is now full, the next assignment is a 409
	second := createTenant(t, db, "Reese Calder")
	extra, _ := services.CreateRoom(db, "Q2")
	status, result = doJSON(t, app, "POST", fmt.Sprintf("/api/properties/%d/tenants", property.PropertyID),
		map[string]interface{}{"tenant_id": second.TenantID, "room_id": extra.RoomID})
	if status != 409 {
		t.Fatalf("Expected status 409 at capacity, got %d", status)
	}
	if result["type"] != "capacity" {
		t.Errorf("Expected type capacity, got %v", result["type"])
	}
}

// TestManagerPortfolioEndpoints drives the portfolio exclusivity rules over HTTP
func TestManagerPortfolioEndpoints(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)

	status, result := doJSON(t, app, "POST", "/api/managers", map[string]interface{}{"name": "Quayside Rentals"})
	if status != 201 {
		t.Fatalf("Expected status 201, got %d: %v", status, result)
	}
	managerID := uint64(result["id"].(float64))

	property, _ := services.CreateProperty(db, services.PropertyInput{Address: "18 Quay St", Units: 2})

	status, _ = doJSON(t, app, "POST", fmt.Sprintf("/api/managers/%d/properties", managerID),
		map[string]interface{}{"property_id": property.PropertyID})
	if status != 200 {
		t.Fatalf("Expected status 200, got %d", status)
	}

	// A second manager hits the exclusivity conflict
	other, _ := services.CreateManager(db, "Rival Rentals")
	status, result = doJSON(t, app, "POST", fmt.Sprintf("/api/managers/%d/properties", other.ManagerID),
		map[string]interface{}{"property_id": property.PropertyID})
	if status != 409 {
		t.Fatalf("Expected status 409, got %d", status)
	}
	if result["type"] != "conflict" {
		t.Errorf("Expected type conflict, got %v", result["type"])
	}

	// Manager view includes its properties
	status, result = doJSON(t, app, "GET", fmt.Sprintf("/api/managers/%d", managerID), nil)
	if status != 200 {
		t.Fatalf("Expected status 200, got %d", status)
	}
	if result["properties"] == nil {
		t.Error("Expected properties in manager view")
	}
}

// TestPortfolioReportEndpoints drives vacancy, revenue, and expiry reports
func TestPortfolioReportEndpoints(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)

	manager, err := services.CreateManager(db, "Reports Rentals")
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	property, tenant := seedManagedProperty(t, db, manager.ManagerID, "19 Quay St", "R1")

	// 1 of 3 units occupied, the property shows as vacant
	status, vacancies := doJSONList(t, app, "GET", fmt.Sprintf("/api/managers/%d/vacancies", manager.ManagerID))
	if status != 200 {
		t.Fatalf("Expected status 200, got %d", status)
	}
	if len(vacancies) != 1 {
		t.Errorf("Expected 1 vacant property, got %d", len(vacancies))
	}

	status, result := doJSON(t, app, "GET", fmt.Sprintf("/api/managers/%d/revenue", manager.ManagerID), nil)
	if status != 200 {
		t.Fatalf("Expected status 200, got %d", status)
	}
	if result["total_revenue"] == nil {
		t.Error("Expected total_revenue in response")
	}

	status, result = doJSON(t, app, "POST", fmt.Sprintf("/api/managers/%d/reports/lease-expiry", manager.ManagerID),
		map[string]interface{}{
			"start":       tenant.LeaseEnd.AddDate(0, -1, 0).Format(time.RFC3339),
			"end":         tenant.LeaseEnd.AddDate(0, 1, 0).Format(time.RFC3339),
			"property_id": property.PropertyID,
		})
	if status != 200 {
		t.Fatalf("Expected status 200, got %d: %v", status, result)
	}
	if result["reference"] == nil || result["reference"] == "" {
		t.Error("Expected a snapshot reference")
	}

	status, snapshots := doJSONList(t, app, "GET", fmt.Sprintf("/api/managers/%d/reports", manager.ManagerID))
	if status != 200 {
		t.Fatalf("Expected status 200, got %d", status)
	}
	if len(snapshots) != 1 {
		t.Errorf("Expected 1 snapshot, got %d", len(snapshots))
	}
}

// TestOverdueEndpoint returns an empty list when nothing is overdue
func TestOverdueEndpoint(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)

	manager, _ := services.CreateManager(db, "Quiet Rentals")
	seedManagedProperty(t, db, manager.ManagerID, "20 Quay St", "O1")

	status, overdue := doJSONList(t, app, "GET", fmt.Sprintf("/api/managers/%d/overdue", manager.ManagerID))
	if status != 200 {
		t.Fatalf("Expected status 200, got %d", status)
	}
	if len(overdue) != 0 {
		t.Errorf("Expected no overdue tenants, got %d", len(overdue))
	}
}
