// property_service.go
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

package services

import (
	"github.com/localnerve/rentfolio/internal/models"
	"github.com/localnerve/rentfolio/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PropertyInput carries the fields accepted when creating a property.
type PropertyInput struct {
	Address      string
	PropertyType string
	Units        int
}

// CreateProperty validates the input and persists a new property.
func CreateProperty(db *gorm.DB, in PropertyInput) (*models.Property, error) {
	if in.Address == "" {
		return nil, types.NewValidationError("property address is required")
	}
	if len(in.Address) > 200 {
		return nil, types.NewValidationError("property address exceeds 200 characters")
	}
	if in.Units < models.MinimumUnits || in.Units > models.MaximumUnits {
		return nil, types.NewValidationError("units must be between %d and %d",
			models.MinimumUnits, models.MaximumUnits)
	}

	propertyType := in.PropertyType
	if propertyType == "" {
		propertyType = models.PropertyTypePrivate
	}
	if propertyType != models.PropertyTypePrivate && propertyType != models.PropertyTypeCommercial {
		return nil, types.NewValidationError("property type must be %q or %q",
			models.PropertyTypeCommercial, models.PropertyTypePrivate)
	}

	var count int64
	if err := db.Model(&models.Property{}).
		Where("address = ?", in.Address).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, types.NewValidationError("a property with this address already exists")
	}

	property := models.Property{
		Address:      in.Address,
		PropertyType: propertyType,
		Units:        in.Units,
	}
	if err := db.Create(&property).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

// GetProperty fetches a property by ID.
func GetProperty(db *gorm.DB, propertyID uint64) (*models.Property, error) {
	var property models.Property
	if err := db.First(&property, "property_id = ?", propertyID).Error; err != nil {
		return nil, notFoundOr(err, "property %d not found", propertyID)
	}
	return &property, nil
}

// ListProperties returns all properties in ID order.
func ListProperties(db *gorm.DB) ([]models.Property, error) {
	var properties []models.Property
	if err := db.Order("property_id").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// AssignTenant places a tenant into a property together with a unit room.
// The whole placement is one transaction: property membership, the room's
// tenant link, the tenant's unit label, and the assigned-unit counter either
// all change or none do.
//
// Preconditions: the room must be given and unoccupied, and the property
// must have a free tenant slot.
func AssignTenant(db *gorm.DB, propertyID, tenantID uint64, roomID *uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&property, "property_id = ?", propertyID).Error; err != nil {
			return notFoundOr(err, "property %d not found", propertyID)
		}

		if roomID == nil {
			return types.NewValidationError("a unit room is required to assign a tenant")
		}

		var room models.UnitRoom
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&room, "room_id = ?", *roomID).Error; err != nil {
			return notFoundOr(err, "unit room %d not found", *roomID)
		}
		if room.TenantID != nil {
			return types.NewValidationError("preferred unit is occupied")
		}

		var tenant models.Tenant
		if err := tx.First(&tenant, "tenant_id = ?", tenantID).Error; err != nil {
			return notFoundOr(err, "tenant %d not found", tenantID)
		}

		var members int64
		if err := tx.Table("property_tenants").
			Where("property_id = ?", propertyID).Count(&members).Error; err != nil {
			return err
		}
		if members >= int64(property.Units) {
			return types.NewCapacityError("all units are occupied")
		}

		if err := tx.Model(&property).Association("Tenants").Append(&tenant); err != nil {
			return err
		}
		if err := tx.Model(&room).Update("tenant_id", tenant.TenantID).Error; err != nil {
			return err
		}
		if err := tx.Model(&tenant).Update("unit", room.UnitNumber).Error; err != nil {
			return err
		}
		return tx.Model(&property).Update("current_units", property.CurrentUnits+1).Error
	})
}

// ReleaseTenant removes a tenant from a property: membership row, every room
// link pointing at the tenant, the tenant's unit label, and the counter. It
// is a no-op when the property has no assigned units or the tenant is not a
// member.
func ReleaseTenant(db *gorm.DB, propertyID, tenantID uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&property, "property_id = ?", propertyID).Error; err != nil {
			return notFoundOr(err, "property %d not found", propertyID)
		}
		if property.CurrentUnits <= 0 {
			return nil
		}

		var tenant models.Tenant
		if err := tx.First(&tenant, "tenant_id = ?", tenantID).Error; err != nil {
			return notFoundOr(err, "tenant %d not found", tenantID)
		}

		var member int64
		if err := tx.Table("property_tenants").
			Where("property_id = ? AND tenant_id = ?", propertyID, tenantID).
			Count(&member).Error; err != nil {
			return err
		}
		if member == 0 {
			return nil
		}

		if err := tx.Model(&property).Association("Tenants").Delete(&tenant); err != nil {
			return err
		}
		if err := tx.Model(&models.UnitRoom{}).
			Where("tenant_id = ?", tenantID).
			Update("tenant_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&tenant).Update("unit", "").Error; err != nil {
			return err
		}
		return tx.Model(&property).Update("current_units", property.CurrentUnits-1).Error
	})
}

// AttachRoom attaches an existing room to the property, bounded by the
// property's declared capacity.
func AttachRoom(db *gorm.DB, propertyID, roomID uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&property, "property_id = ?", propertyID).Error; err != nil {
			return notFoundOr(err, "property %d not found", propertyID)
		}

		var rooms int64
		if err := tx.Model(&models.UnitRoom{}).
			Where("property_id = ?", propertyID).Count(&rooms).Error; err != nil {
			return err
		}
		if rooms >= int64(property.Units) {
			return types.NewCapacityError("property units already full")
		}

		var room models.UnitRoom
		if err := tx.First(&room, "room_id = ?", roomID).Error; err != nil {
			return notFoundOr(err, "unit room %d not found", roomID)
		}
		return tx.Model(&room).Update("property_id", propertyID).Error
	})
}

// DetachRoom detaches a room from the property unconditionally. A room
// without a property cannot house anyone, so the tenant link is cleared too.
func DetachRoom(db *gorm.DB, propertyID, roomID uint64) error {
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

// OccupancyRate is the percentage of the property's capacity filled by
// tenant count, rounded to two decimal places.
func OccupancyRate(db *gorm.DB, propertyID uint64) (float64, error) {
	property, err := GetProperty(db, propertyID)
	if err != nil {
		return 0, err
	}

	var members int64
	if err := db.Table("property_tenants").
		Where("property_id = ?", propertyID).Count(&members).Error; err != nil {
		return 0, err
	}
	return round2(float64(members) / float64(property.Units) * 100), nil
}

// TotalRent sums the monthly rent of the property's tenants that have a unit
// assigned. Tenants without a unit occupy a slot but contribute no revenue.
func TotalRent(db *gorm.DB, propertyID uint64) (decimal.Decimal, error) {
	total := decimal.Zero

	if _, err := GetProperty(db, propertyID); err != nil {
		return total, err
	}

	var tenants []models.Tenant
	if err := db.
		Joins("JOIN property_tenants pt ON pt.tenant_id = tenants.tenant_id").
		Where("pt.property_id = ? AND tenants.unit <> ''", propertyID).
		Order("tenants.tenant_id").
		Find(&tenants).Error; err != nil {
		return total, err
	}

	for _, tenant := range tenants {
		total = total.Add(tenant.MonthlyRent)
	}
	return total, nil
}

// VacantUnits is the property's capacity minus its tenant count.
func VacantUnits(db *gorm.DB, propertyID uint64) (int, error) {
	property, err := GetProperty(db, propertyID)
	if err != nil {
		return 0, err
	}

	var members int64
	if err := db.Table("property_tenants").
		Where("property_id = ?", propertyID).Count(&members).Error; err != nil {
		return 0, err
	}
	return property.Units - int(members), nil
}

// PropertyTenants returns the property's tenants in ID order.
func PropertyTenants(db *gorm.DB, propertyID uint64) ([]models.Tenant, error) {
	if _, err := GetProperty(db, propertyID); err != nil {
		return nil, err
	}

	var tenants []models.Tenant
	if err := db.
		Joins("JOIN property_tenants pt ON pt.tenant_id = tenants.tenant_id").
		Where("pt.property_id = ?", propertyID).
		Order("tenants.tenant_id").
		Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

// DeleteProperty deletes the property. Member tenants survive with their
// unit labels cleared; the property's rooms do not survive its deletion;
// portfolio memberships are removed.
func DeleteProperty(db *gorm.DB, propertyID uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&property, "property_id = ?", propertyID).Error; err != nil {
			return notFoundOr(err, "property %d not found", propertyID)
		}

		if err := tx.Exec(
			"UPDATE tenants SET unit = '' WHERE tenant_id IN (SELECT tenant_id FROM property_tenants WHERE property_id = ?)",
			propertyID).Error; err != nil {
			return err
		}
		if err := tx.Model(&property).Association("Tenants").Clear(); err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", propertyID).
			Delete(&models.UnitRoom{}).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			"DELETE FROM lease_manager_properties WHERE property_id = ?", propertyID).Error; err != nil {
			return err
		}
		return tx.Delete(&property).Error
	})
}
