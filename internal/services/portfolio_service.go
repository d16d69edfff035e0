// portfolio_service.go
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
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/rentfolio/internal/models"
	"github.com/localnerve/rentfolio/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

// CreateManager persists a new lease manager.
func CreateManager(db *gorm.DB, name string) (*models.LeaseManager, error) {
	if name == "" {
		return nil, types.NewValidationError("lease manager name is required")
	}
	if len(name) > 50 {
		return nil, types.NewValidationError("lease manager name exceeds 50 characters")
	}

	manager := models.LeaseManager{Name: name}
	if err := db.Create(&manager).Error; err != nil {
		return nil, err
	}
	return &manager, nil
}

// GetManager fetches a lease manager by ID.
func GetManager(db *gorm.DB, managerID uint64) (*models.LeaseManager, error) {
	var manager models.LeaseManager
	if err := db.First(&manager, "manager_id = ?", managerID).Error; err != nil {
		return nil, notFoundOr(err, "lease manager %d not found", managerID)
	}
	return &manager, nil
}

// ListManagers returns all lease managers in ID order.
func ListManagers(db *gorm.DB) ([]models.LeaseManager, error) {
	var managers []models.LeaseManager
	if err := db.Order("manager_id").Find(&managers).Error; err != nil {
		return nil, err
	}
	return managers, nil
}

// DeleteManager removes the manager. Its properties are unlinked, never
// deleted; its stored report snapshots go with it.
func DeleteManager(db *gorm.DB, managerID uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var manager models.LeaseManager
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&manager, "manager_id = ?", managerID).Error; err != nil {
			return notFoundOr(err, "lease manager %d not found", managerID)
		}
		if err := tx.Model(&manager).Association("Properties").Clear(); err != nil {
			return err
		}
		if err := tx.Where("manager_id = ?", managerID).
			Delete(&models.ReportSnapshot{}).Error; err != nil {
			return err
		}
		return tx.Delete(&manager).Error
	})
}

// AddProperty adds a property to the manager's portfolio. A property can
// belong to at most one portfolio at a time; adding one that another manager
// already holds is a conflict. Re-adding a property the manager already
// holds is a no-op.
func AddProperty(db *gorm.DB, managerID uint64, propertyID *uint64) error {
	if propertyID == nil {
		return types.NewValidationError("property not found")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var manager models.LeaseManager
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&manager, "manager_id = ?", managerID).Error; err != nil {
			return notFoundOr(err, "lease manager %d not found", managerID)
		}

		var property models.Property
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&property, "property_id = ?", *propertyID).Error; err != nil {
			return notFoundOr(err, "property %d not found", *propertyID)
		}

		var owners []uint64
		if err := tx.Table("lease_manager_properties").
			Where("property_id = ?", *propertyID).
			Pluck("manager_id", &owners).Error; err != nil {
			return err
		}
		for _, owner := range owners {
			if owner == managerID {
				return nil
			}
		}
		if len(owners) > 0 {
			return types.NewConflictError(
				"property %d is already assigned to another lease manager", *propertyID)
		}

		return tx.Model(&manager).Association("Properties").Append(&property)
	})
}

// RemoveProperty removes a property from the manager's portfolio. The
// property itself survives.
func RemoveProperty(db *gorm.DB, managerID uint64, propertyID *uint64) error {
	if propertyID == nil {
		return types.NewValidationError("property not found")
	}

	manager, err := GetManager(db, managerID)
	if err != nil {
		return err
	}
	property, err := GetProperty(db, *propertyID)
	if err != nil {
		return err
	}
	return db.Model(manager).Association("Properties").Delete(property)
}

// ManagerProperties returns the manager's portfolio in property ID order.
func ManagerProperties(db *gorm.DB, managerID uint64) ([]models.Property, error) {
	if _, err := GetManager(db, managerID); err != nil {
		return nil, err
	}

	var properties []models.Property
	if err := db.
		Joins("JOIN lease_manager_properties lmp ON lmp.property_id = properties.property_id").
		Where("lmp.manager_id = ?", managerID).
		Order("properties.property_id").
		Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// FindVacantProperties returns every managed property whose assigned-unit
// counter is below its capacity. The counter only tracks units handed out
// through AssignTenant; see the Property model note.
func FindVacantProperties(db *gorm.DB, managerID uint64) ([]models.Property, error) {
	if _, err := GetManager(db, managerID); err != nil {
		return nil, err
	}

	var properties []models.Property
	if err := db.Clauses(hints.CommentBefore("select", "vacancy scan")).
		Joins("JOIN lease_manager_properties lmp ON lmp.property_id = properties.property_id").
		Where("lmp.manager_id = ? AND properties.current_units < properties.units", managerID).
		Order("properties.property_id").
		Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// expiryReportPayload is the stored shape of a lease expiry report.
type expiryReportPayload struct {
	Start       time.Time       `json:"start"`
	End         time.Time       `json:"end"`
	PropertyIDs []uint64        `json:"property_ids"`
	Tenants     []models.Tenant `json:"tenants"`
}

// LeaseExpiryReport returns the tenants of the given properties whose lease
// end falls within [start, end] inclusive, and stores the result as a report
// snapshot. Every property must be part of the manager's portfolio.
func LeaseExpiryReport(db *gorm.DB, managerID uint64, start, end time.Time, propertyIDs []uint64) ([]models.Tenant, *models.ReportSnapshot, error) {
	if _, err := GetManager(db, managerID); err != nil {
		return nil, nil, err
	}
	if len(propertyIDs) == 0 {
		return nil, nil, types.NewValidationError("at least one property is required")
	}

	for _, propertyID := range propertyIDs {
		var managed int64
		if err := db.Table("lease_manager_properties").
			Where("manager_id = ? AND property_id = ?", managerID, propertyID).
			Count(&managed).Error; err != nil {
			return nil, nil, err
		}
		if managed == 0 {
			return nil, nil, types.NewValidationError(
				"property %d is not part of this portfolio", propertyID)
		}
	}

	start = start.UTC()
	end = end.UTC()

	var tenants []models.Tenant
	if err := db.
		Joins("JOIN property_tenants pt ON pt.tenant_id = tenants.tenant_id").
		Where("pt.property_id IN ? AND tenants.lease_end >= ? AND tenants.lease_end <= ?",
			propertyIDs, start, end).
		Order("pt.property_id, tenants.tenant_id").
		Find(&tenants).Error; err != nil {
		return nil, nil, err
	}

	payload, err := json.Marshal(expiryReportPayload{
		Start:       start,
		End:         end,
		PropertyIDs: propertyIDs,
		Tenants:     tenants,
	})
	if err != nil {
		return nil, nil, err
	}

	snapshot := models.ReportSnapshot{
		Reference:  uuid.NewString(),
		ManagerID:  managerID,
		ReportType: models.ReportTypeLeaseExpiry,
		Payload:    payload,
	}
	if err := db.Create(&snapshot).Error; err != nil {
		return nil, nil, err
	}
	return tenants, &snapshot, nil
}

// ListSnapshots returns the manager's stored reports, newest first.
func ListSnapshots(db *gorm.DB, managerID uint64) ([]models.ReportSnapshot, error) {
	if _, err := GetManager(db, managerID); err != nil {
		return nil, err
	}

	var snapshots []models.ReportSnapshot
	if err := db.Where("manager_id = ?", managerID).
		Order("snapshot_id DESC").
		Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}

// TotalRevenue sums TotalRent across the manager's portfolio.
func TotalRevenue(db *gorm.DB, managerID uint64) (decimal.Decimal, error) {
	total := decimal.Zero

	properties, err := ManagerProperties(db, managerID)
	if err != nil {
		return total, err
	}
	for _, property := range properties {
		rent, err := TotalRent(db, property.PropertyID)
		if err != nil {
			return total, err
		}
		total = total.Add(rent)
	}
	return total, nil
}

// OverdueTenants walks every managed property and collects its tenants
// whose next payment due date lies strictly before now. The result is a
// flat list in property order then tenant order, duplicates preserved when
// a tenant is a member of more than one managed property.
func OverdueTenants(db *gorm.DB, managerID uint64, now time.Time) ([]models.Tenant, error) {
	properties, err := ManagerProperties(db, managerID)
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	overdue := []models.Tenant{}
	for _, property := range properties {
		var tenants []models.Tenant
		if err := db.Clauses(hints.CommentBefore("select", "overdue scan")).
			Joins("JOIN property_tenants pt ON pt.tenant_id = tenants.tenant_id").
			Where("pt.property_id = ?", property.PropertyID).
			Order("tenants.tenant_id").
			Find(&tenants).Error; err != nil {
			return nil, err
		}
		for _, tenant := range tenants {
			if tenant.NextPaymentDue != nil && now.After(*tenant.NextPaymentDue) {
				overdue = append(overdue, tenant)
			}
		}
	}
	return overdue, nil
}
