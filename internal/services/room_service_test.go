package services_test

import (
	"errors"
	"testing"

	"github.com/localnerve/rentfolio/internal/services"
	"github.com/localnerve/rentfolio/internal/types"
)

func TestCreateRoomValidation(t *testing.T) {
	db := setupTestDB(t)

	// Empty number fails
	if _, err := services.CreateRoom(db, ""); err == nil {
		t.Error("Expected empty unit number to fail")
	}

	// Over 10 characters fails
	if _, err := services.CreateRoom(db, "ABCDEFGHIJK"); err == nil {
		t.Error("Expected long unit number to fail")
	}

	// Valid
	if _, err := services.CreateRoom(db, "101"); err != nil {
		t.Fatalf("Failed to create room: %v", err)
	}

	// Duplicates are rejected everywhere, not per property
	_, err := services.CreateRoom(db, "101")
	var domainErr *types.DomainError
	if !errors.As(err, &domainErr) || domainErr.Kind != types.KindValidation {
		t.Errorf("Expected validation error for duplicate number, got %v", err)
	}
}

func TestRoomDetachPropertyClearsTenant(t *testing.T) {
	db := setupTestDB(t)

	property, _ := services.CreateProperty(db, services.PropertyInput{Address: "1 Room Rd", Units: 2})
	tenant, _ := services.CreateTenant(db, validTenantInput())
	room, _ := services.CreateRoom(db, "RD1")

	if err := services.RoomAttachProperty(db, room.RoomID, property.PropertyID); err != nil {
		t.Fatalf("Failed to attach property: %v", err)
	}
	if err := services.AttachRoomToTenant(db, tenant.TenantID, room.RoomID); err != nil {
		t.Fatalf("Failed to attach tenant: %v", err)
	}

	if err := services.RoomDetachProperty(db, room.RoomID); err != nil {
		t.Fatalf("Failed to detach property: %v", err)
	}

	got, _ := services.GetRoom(db, room.RoomID)
	if got.PropertyID != nil {
		t.Error("Expected property link cleared")
	}
	if got.TenantID != nil {
		t.Error("Expected tenant link cleared along with the property")
	}
}

func TestRoomDetachTenantNoOpWhenEmpty(t *testing.T) {
	db := setupTestDB(t)

	room, _ := services.CreateRoom(db, "NT1")

	if err := services.RoomDetachTenant(db, room.RoomID); err != nil {
		t.Errorf("Expected detach of empty room to be a no-op, got %v", err)
	}
}

func TestDeleteRoom(t *testing.T) {
	db := setupTestDB(t)

	room, _ := services.CreateRoom(db, "DEL1")
	if err := services.DeleteRoom(db, room.RoomID); err != nil {
		t.Fatalf("Failed to delete room: %v", err)
	}
	if _, err := services.GetRoom(db, room.RoomID); err == nil {
		t.Error("Expected room to be gone")
	}

	// Deleting an unknown room is a not found error
	err := services.DeleteRoom(db, room.RoomID)
	var domainErr *types.DomainError
	if !errors.As(err, &domainErr) || domainErr.Kind != types.KindNotFound {
		t.Errorf("Expected not found, got %v", err)
	}
}
