package services

import (
	"github.com/localnerve/rentfolio/internal/models"
	"github.com/localnerve/rentfolio/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateRoom persists a new unit room. Unit numbers are unique across the
// whole system, not per property.
func CreateRoom(db *gorm.DB, unitNumber string) (*models.UnitRoom, error) {
	if unitNumber == "" {
		return nil, types.NewValidationError("unit number is required")
	}
	if len(unitNumber) > 10 {
		return nil, types.NewValidationError("unit number exceeds 10 characters")
	}

	var count int64
	if err := db.Model(&models.UnitRoom{}).
		Where("unit_number = ?", unitNumber).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, types.NewValidationError("a unit with this number already exists")
	}

	room := models.UnitRoom{UnitNumber: unitNumber}
	if err := db.Create(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// GetRoom fetches a unit room by ID.
func GetRoom(db *gorm.DB, roomID uint64) (*models.UnitRoom, error) {
	var room models.UnitRoom
	if err := db.First(&room, "room_id = ?", roomID).Error; err != nil {
		return nil, notFoundOr(err, "unit room %d not found", roomID)
	}
	return &room, nil
}

// ListRooms returns all unit rooms in ID order.
func ListRooms(db *gorm.DB) ([]models.UnitRoom, error) {
	var rooms []models.UnitRoom
	if err := db.Order("room_id").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// RoomAttachProperty sets the room's owning property link.
func RoomAttachProperty(db *gorm.DB, roomID, propertyID uint64) error {
	room, err := GetRoom(db, roomID)
	if err != nil {
		return err
	}
	if _, err := GetProperty(db, propertyID); err != nil {
		return err
	}
	return db.Model(room).Update("property_id", propertyID).Error
}

// RoomDetachProperty clears the room's owning property link and, because a
// room without a property cannot house anyone, its tenant link as well.
func RoomDetachProperty(db *gorm.DB, roomID uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var room models.UnitRoom
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&room, "room_id = ?", roomID).Error; err != nil {
			return notFoundOr(err, "unit room %d not found", roomID)
		}
		return tx.Model(&room).Updates(map[string]interface{}{
			"property_id": nil,
			"tenant_id":   nil,
		}).Error
	})
}

// RoomDetachTenant clears the room's tenant link. No-op when already empty.
func RoomDetachTenant(db *gorm.DB, roomID uint64) error {
	room, err := GetRoom(db, roomID)
	if err != nil {
		return err
	}
	if room.TenantID == nil {
		return nil
	}
	return db.Model(room).Update("tenant_id", nil).Error
}

// DeleteRoom removes the room record.
func DeleteRoom(db *gorm.DB, roomID uint64) error {
	room, err := GetRoom(db, roomID)
	if err != nil {
		return err
	}
	return db.Delete(room).Error
}
