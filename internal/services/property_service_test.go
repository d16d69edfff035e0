package services_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/localnerve/rentfolio/internal/models"
	"github.com/localnerve/rentfolio/internal/services"
	"github.com/localnerve/rentfolio/internal/types"
	"github.com/shopspring/decimal"
)

func TestCreatePropertyValidation(t *testing.T) {
	db := setupTestDB(t)

	cases := []struct {
		name  string
		input services.PropertyInput
	}{
		{"EmptyAddress", services.PropertyInput{Address: "", Units: 5}},
		{"ZeroUnits", services.PropertyInput{Address: "1 Main St", Units: 0}},
		{"TooManyUnits", services.PropertyInput{Address: "1 Main St", Units: models.MaximumUnits + 1}},
		{"BadType", services.PropertyInput{Address: "1 Main St", Units: 5, PropertyType: "Castle"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := services.CreateProperty(db, tc.input)
			var domainErr *types.DomainError
			if !errors.As(err, &domainErr) || domainErr.Kind != types.KindValidation {
				t.Errorf("Expected validation error, got %v", err)
			}
		})
	}

	// Default type is Private
	property, err := services.CreateProperty(db, services.PropertyInput{Address: "2 Main St", Units: 5})
	if err != nil {
		t.Fatalf("Failed to create property: %v", err)
	}
	if property.PropertyType != models.PropertyTypePrivate {
		t.Errorf("Expected default type Private, got %q", property.PropertyType)
	}

	// Duplicate address rejected
	if _, err := services.CreateProperty(db, services.PropertyInput{Address: "2 Main St", Units: 3}); err == nil {
		t.Error("Expected duplicate address to fail")
	}
}

func TestAssignTenantRequiresRoom(t *testing.T) {
	db := setupTestDB(t)

	property, _ := services.CreateProperty(db, services.PropertyInput{Address: "3 Oak Ave", Units: 2})
	tenant, _ := services.CreateTenant(db, validTenantInput())

	err := services.AssignTenant(db, property.PropertyID, tenant.TenantID, nil)
	var domainErr *types.DomainError
	if !errors.As(err, &domainErr) || domainErr.Kind != types.KindValidation {
		t.Errorf("Expected validation error without a room, got %v", err)
	}
}

func TestAssignTenantOccupiedRoomUnchangedState(t *testing.T) {
	db := setupTestDB(t)

	property, _ := services.CreateProperty(db, services.PropertyInput{Address: "4 Oak Ave", Units: 5})
	room, _ := services.CreateRoom(db, "O1")
	_ = services.RoomAttachProperty(db, room.RoomID, property.PropertyID)

	first, _ := services.CreateTenant(db, validTenantInput())
	in := validTenantInput()
	in.Name = "Casey Flint"
	second, _ := services.CreateTenant(db, in)

	if err := services.AssignTenant(db, property.PropertyID, first.TenantID, &room.RoomID); err != nil {
		t.Fatalf("Failed to assign first tenant: %v", err)
	}

	// Second tenant into the same room fails and nothing moves
	err := services.AssignTenant(db, property.PropertyID, second.TenantID, &room.RoomID)
	if err == nil {
		t.Fatal("Expected occupied room to reject assignment")
	}

	got, _ := services.GetTenant(db, second.TenantID)
	if got.Unit != "" {
		t.Errorf("Expected second tenant unassigned, got unit %q", got.Unit)
	}
	updated, _ := services.GetProperty(db, property.PropertyID)
	if updated.CurrentUnits != 1 {
		t.Errorf("Expected current_units 1 after failed assign, got %d", updated.CurrentUnits)
	}
	vacant, _ := services.VacantUnits(db, property.PropertyID)
	if vacant != 4 {
		t.Errorf("Expected 4 vacant units, got %d", vacant)
	}
}

func TestAssignTenantCapacity(t *testing.T) {
	db := setupTestDB(t)

	property, _ := services.CreateProperty(db, services.PropertyInput{Address: "5 Oak Ave", Units: 2})

	// Fill both units
	for i := 0; i < 2; i++ {
		in := validTenantInput()
		in.Name = fmt.Sprintf("Tenant %c", 'A'+i)
		tenant, err := services.CreateTenant(db, in)
		if err != nil {
			t.Fatalf("Failed to create tenant: %v", err)
		}
		room, err := services.CreateRoom(db, fmt.Sprintf("C%d", i+1))
		if err != nil {
			t.Fatalf("Failed to create room: %v", err)
		}
		_ = services.RoomAttachProperty(db, room.RoomID, property.PropertyID)
		if err := services.AssignTenant(db, property.PropertyID, tenant.TenantID, &room.RoomID); err != nil {
			t.Fatalf("Failed to assign tenant %d: %v", i, err)
		}
	}

	// A third is over capacity
	in := validTenantInput()
	in.Name = "Tenant Overflow"
	extra, _ := services.CreateTenant(db, in)
	room, _ := services.CreateRoom(db, "C3")

	err := services.AssignTenant(db, property.PropertyID, extra.TenantID, &room.RoomID)
	var domainErr *types.DomainError
	if !errors.As(err, &domainErr) || domainErr.Kind != types.KindCapacity {
		t.Errorf("Expected capacity error, got %v", err)
	}
}

func TestReleaseTenantNoOps(t *testing.T) {
	db := setupTestDB(t)

	property, _ := services.CreateProperty(db, services.PropertyInput{Address: "6 Oak Ave", Units: 3})
	tenant, _ := services.CreateTenant(db, validTenantInput())

	// Nothing assigned yet, release is a no-op
	if err := services.ReleaseTenant(db, property.PropertyID, tenant.TenantID); err != nil {
		t.Errorf("Expected release no-op, got %v", err)
	}

	// Assign someone else, then release a non-member: still a no-op
	in := validTenantInput()
	in.Name = "Member Tenant"
	member, _ := services.CreateTenant(db, in)
	room, _ := services.CreateRoom(db, "N1")
	_ = services.RoomAttachProperty(db, room.RoomID, property.PropertyID)
	if err := services.AssignTenant(db, property.PropertyID, member.TenantID, &room.RoomID); err != nil {
		t.Fatalf("Failed to assign: %v", err)
	}
	if err := services.ReleaseTenant(db, property.PropertyID, tenant.TenantID); err != nil {
		t.Errorf("Expected non-member release no-op, got %v", err)
	}
	updated, _ := services.GetProperty(db, property.PropertyID)
	if updated.CurrentUnits != 1 {
		t.Errorf("Expected counter untouched at 1, got %d", updated.CurrentUnits)
	}
}

func TestOccupancyRate(t *testing.T) {
	db := setupTestDB(t)

	property, _ := services.CreateProperty(db, services.PropertyInput{Address: "7 Oak Ave", Units: 10})

	for i := 0; i < 3; i++ {
		in := validTenantInput()
		in.Name = fmt.Sprintf("Occupant %c", 'A'+i)
		tenant, _ := services.CreateTenant(db, in)
		room, _ := services.CreateRoom(db, fmt.Sprintf("OC%d", i+1))
		_ = services.RoomAttachProperty(db, room.RoomID, property.PropertyID)
		if err := services.AssignTenant(db, property.PropertyID, tenant.TenantID, &room.RoomID); err != nil {
			t.Fatalf("Failed to assign: %v", err)
		}
	}

	rate, err := services.OccupancyRate(db, property.PropertyID)
	if err != nil {
		t.Fatalf("Failed to compute rate: %v", err)
	}
	if rate != 30.0 {
		t.Errorf("Expected 30.0, got %f", rate)
	}
}

func TestTotalRentExcludesUnitless(t *testing.T) {
	db := setupTestDB(t)

	property, _ := services.CreateProperty(db, services.PropertyInput{Address: "8 Oak Ave", Units: 5})

	// One assigned tenant with a unit and rent 1500
	in := validTenantInput()
	in.Name = "Paying Tenant"
	in.MonthlyRent = decimal.NewFromInt(1500)
	paying, _ := services.CreateTenant(db, in)
	room, _ := services.CreateRoom(db, "P1")
	_ = services.RoomAttachProperty(db, room.RoomID, property.PropertyID)
	if err := services.AssignTenant(db, property.PropertyID, paying.TenantID, &room.RoomID); err != nil {
		t.Fatalf("Failed to assign: %v", err)
	}

	// One member without a unit label contributes nothing
	in = validTenantInput()
	in.Name = "Unitless Tenant"
	in.MonthlyRent = decimal.NewFromInt(900)
	unitless, _ := services.CreateTenant(db, in)
	if err := db.Exec("INSERT INTO property_tenants (property_id, tenant_id) VALUES (?, ?)",
		property.PropertyID, unitless.TenantID).Error; err != nil {
		t.Fatalf("Failed to insert membership: %v", err)
	}

	total, err := services.TotalRent(db, property.PropertyID)
	if err != nil {
		t.Fatalf("Failed to sum rent: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("Expected total 1500, got %s", total)
	}
}

func TestAttachRoomCapacity(t *testing.T) {
	db := setupTestDB(t)

	property, _ := services.CreateProperty(db, services.PropertyInput{Address: "9 Oak Ave", Units: 1})

	first, _ := services.CreateRoom(db, "AR1")
	if err := services.AttachRoom(db, property.PropertyID, first.RoomID); err != nil {
		t.Fatalf("Failed to attach first room: %v", err)
	}

	second, _ := services.CreateRoom(db, "AR2")
	err := services.AttachRoom(db, property.PropertyID, second.RoomID)
	var domainErr *types.DomainError
	if !errors.As(err, &domainErr) || domainErr.Kind != types.KindCapacity {
		t.Errorf("Expected capacity error, got %v", err)
	}
}

func TestDetachRoomClearsTenant(t *testing.T) {
	db := setupTestDB(t)

	property, _ := services.CreateProperty(db, services.PropertyInput{Address: "10 Oak Ave", Units: 2})
	tenant, _ := services.CreateTenant(db, validTenantInput())
	room, _ := services.CreateRoom(db, "DR1")
	_ = services.RoomAttachProperty(db, room.RoomID, property.PropertyID)
	if err := services.AssignTenant(db, property.PropertyID, tenant.TenantID, &room.RoomID); err != nil {
		t.Fatalf("Failed to assign: %v", err)
	}

	if err := services.DetachRoom(db, property.PropertyID, room.RoomID); err != nil {
		t.Fatalf("Failed to detach room: %v", err)
	}

	got, _ := services.GetRoom(db, room.RoomID)
	if got.PropertyID != nil {
		t.Error("Expected property link cleared")
	}
	if got.TenantID != nil {
		t.Error("Expected tenant link cleared with the property")
	}
}

func TestDeletePropertyTenantsSurvive(t *testing.T) {
	db := setupTestDB(t)

	property, _ := services.CreateProperty(db, services.PropertyInput{Address: "11 Oak Ave", Units: 2})
	tenant, _ := services.CreateTenant(db, validTenantInput())
	room, _ := services.CreateRoom(db, "DP1")
	_ = services.RoomAttachProperty(db, room.RoomID, property.PropertyID)
	if err := services.AssignTenant(db, property.PropertyID, tenant.TenantID, &room.RoomID); err != nil {
		t.Fatalf("Failed to assign: %v", err)
	}

	if err := services.DeleteProperty(db, property.PropertyID); err != nil {
		t.Fatalf("Failed to delete property: %v", err)
	}

	// Tenant survives with the unit label cleared
	got, err := services.GetTenant(db, tenant.TenantID)
	if err != nil {
		t.Fatalf("Expected tenant to survive: %v", err)
	}
	if got.Unit != "" {
		t.Errorf("Expected unit cleared, got %q", got.Unit)
	}

	// The property's rooms do not survive
	if _, err := services.GetRoom(db, room.RoomID); err == nil {
		t.Error("Expected room deleted with the property")
	}
}
