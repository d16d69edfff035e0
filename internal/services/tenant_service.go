// tenant_service.go
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
	"regexp"
	"time"

	"github.com/localnerve/rentfolio/internal/models"
	"github.com/localnerve/rentfolio/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// NameMaxLength bounds tenant names.
	NameMaxLength = 60
	// PaymentCycleDays is the gap between lease start and the first payment
	// due date when none is given at creation.
	PaymentCycleDays = 31
)

// namePattern allows alphabetic characters and whitespace only.
var namePattern = regexp.MustCompile(`^[a-zA-Z\s]*$`)

// maxMonthlyRent caps rent at 14 digits with 2 fraction digits.
var maxMonthlyRent = decimal.New(99999999999999, -2) // 999999999999.99

// TenantInput carries the fields accepted when creating a tenant.
type TenantInput struct {
	Name           string
	LeaseStart     time.Time
	LeaseEnd       time.Time
	NextPaymentDue *time.Time
	MonthlyRent    decimal.Decimal
}

// CreateTenant validates the input and persists a new tenant. When no next
// payment due date is given it defaults to lease start plus 31 days.
func CreateTenant(db *gorm.DB, in TenantInput) (*models.Tenant, error) {
	if in.Name == "" {
		return nil, types.NewValidationError("tenant name is required")
	}
	if len(in.Name) > NameMaxLength {
		return nil, types.NewValidationError("tenant name exceeds %d characters", NameMaxLength)
	}
	if !namePattern.MatchString(in.Name) {
		return nil, types.NewValidationError("alphabet characters and spaces are only allowed")
	}
	if in.LeaseStart.IsZero() || in.LeaseEnd.IsZero() {
		return nil, types.NewValidationError("lease start and lease end are required")
	}
	if in.MonthlyRent.IsNegative() {
		return nil, types.NewValidationError("monthly rent cannot be negative")
	}
	if in.MonthlyRent.GreaterThan(maxMonthlyRent) {
		return nil, types.NewValidationError("monthly rent exceeds the supported maximum")
	}
	if in.MonthlyRent.Exponent() < -2 {
		return nil, types.NewValidationError("monthly rent allows at most two decimal places")
	}

	tenant := models.Tenant{
		Name:        in.Name,
		LeaseStart:  in.LeaseStart.UTC(),
		LeaseEnd:    in.LeaseEnd.UTC(),
		MonthlyRent: in.MonthlyRent,
	}
	if in.NextPaymentDue != nil {
		due := in.NextPaymentDue.UTC()
		tenant.NextPaymentDue = &due
	} else {
		due := tenant.LeaseStart.Add(PaymentCycleDays * 24 * time.Hour)
		tenant.NextPaymentDue = &due
	}

	if err := db.Create(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// GetTenant fetches a tenant by ID.
func GetTenant(db *gorm.DB, tenantID uint64) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := db.First(&tenant, "tenant_id = ?", tenantID).Error; err != nil {
		return nil, notFoundOr(err, "tenant %d not found", tenantID)
	}
	return &tenant, nil
}

// ListTenants returns all tenants in ID order.
func ListTenants(db *gorm.DB) ([]models.Tenant, error) {
	var tenants []models.Tenant
	if err := db.Order("tenant_id").Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

// RenewLease extends the tenant's lease. The extended date must be strictly
// after the current lease end.
func RenewLease(db *gorm.DB, tenantID uint64, extendedDate time.Time) (*models.Tenant, error) {
	var tenant models.Tenant

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&tenant, "tenant_id = ?", tenantID).Error; err != nil {
			return notFoundOr(err, "tenant %d not found", tenantID)
		}

		extended := extendedDate.UTC()
		if !extended.After(tenant.LeaseEnd) {
			return types.NewValidationError("extended date must be after the current lease end")
		}

		tenant.LeaseEnd = extended
		return tx.Model(&tenant).Update("lease_end", extended).Error
	})
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// AddUnitLabel sets the tenant's unit label. It is a no-op when the tenant
// already has a unit or the label is empty.
func AddUnitLabel(db *gorm.DB, tenantID uint64, label string) (*models.Tenant, error) {
	tenant, err := GetTenant(db, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant.Unit != "" || label == "" {
		return tenant, nil
	}
	tenant.Unit = label
	if err := db.Model(tenant).Update("unit", label).Error; err != nil {
		return nil, err
	}
	return tenant, nil
}

// RemoveUnitLabel clears the tenant's unit label. It fails when the tenant
// has no unit assigned.
func RemoveUnitLabel(db *gorm.DB, tenantID uint64) (*models.Tenant, error) {
	tenant, err := GetTenant(db, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant.Unit == "" {
		return nil, types.NewValidationError("tenant has no unit to remove")
	}
	tenant.Unit = ""
	if err := db.Model(tenant).Update("unit", "").Error; err != nil {
		return nil, err
	}
	return tenant, nil
}

// AttachRoomToTenant links an existing unit room to a tenant, setting both
// sides of the cross-reference in one transaction.
func AttachRoomToTenant(db *gorm.DB, tenantID, roomID uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var tenant models.Tenant
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&tenant, "tenant_id = ?", tenantID).Error; err != nil {
			return notFoundOr(err, "tenant %d not found", tenantID)
		}
		if tenant.Unit != "" {
			return types.NewValidationError("tenant already has a unit room")
		}

		var room models.UnitRoom
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&room, "room_id = ?", roomID).Error; err != nil {
			return notFoundOr(err, "unit room %d not found", roomID)
		}
		if room.TenantID != nil {
			return types.NewValidationError("preferred unit is occupied")
		}

		if err := tx.Model(&room).Update("tenant_id", tenant.TenantID).Error; err != nil {
			return err
		}
		return tx.Model(&tenant).Update("unit", room.UnitNumber).Error
	})
}

// DetachRoomFromTenant clears the tenant's unit label and the matching
// room's tenant link in one transaction.
func DetachRoomFromTenant(db *gorm.DB, tenantID uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var tenant models.Tenant
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&tenant, "tenant_id = ?", tenantID).Error; err != nil {
			return notFoundOr(err, "tenant %d not found", tenantID)
		}
		if tenant.Unit == "" {
			return types.NewValidationError("tenant does not have a unit room")
		}

		// The room may have been deleted out from under the label; clear
		// whatever side still exists.
		if err := tx.Model(&models.UnitRoom{}).
			Where("unit_number = ? AND tenant_id = ?", tenant.Unit, tenant.TenantID).
			Update("tenant_id", nil).Error; err != nil {
			return err
		}
		return tx.Model(&tenant).Update("unit", "").Error
	})
}

// DeleteTenant removes the tenant. Rooms pointing at the tenant keep
// existing with their tenant link nulled; property memberships are removed.
func DeleteTenant(db *gorm.DB, tenantID uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var tenant models.Tenant
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&tenant, "tenant_id = ?", tenantID).Error; err != nil {
			return notFoundOr(err, "tenant %d not found", tenantID)
		}

		if err := tx.Model(&models.UnitRoom{}).
			Where("tenant_id = ?", tenantID).
			Update("tenant_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&tenant).Association("Properties").Clear(); err != nil {
			return err
		}
		return tx.Delete(&tenant).Error
	})
}
