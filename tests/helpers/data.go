// data.go
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

package helpers

import (
	"testing"
	"time"

	"github.com/localnerve/rentfolio/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateTestTenant creates a tenant with a one year lease starting now
func CreateTestTenant(t *testing.T, db *gorm.DB, name string, rent int64) *models.Tenant {
	t.Helper()
	now := time.Now().UTC()
	tenant := models.Tenant{
		Name:        name,
		LeaseStart:  now,
		LeaseEnd:    now.AddDate(1, 0, 0),
		MonthlyRent: decimal.NewFromInt(rent),
	}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("Failed to create tenant: %v", err)
	}
	return &tenant
}

// CreateTestProperty creates a property with the given unit count
func CreateTestProperty(t *testing.T, db *gorm.DB, address string, units int) *models.Property {
	t.Helper()
	property := models.Property{
		Address:      address,
		PropertyType: models.PropertyTypePrivate,
		Units:        units,
	}
	if err := db.Create(&property).Error; err != nil {
		t.Fatalf("Failed to create property: %v", err)
	}
	return &property
}

// CreateTestRoom creates an unattached unit room
func CreateTestRoom(t *testing.T, db *gorm.DB, unitNumber string) *models.UnitRoom {
	t.Helper()
	room := models.UnitRoom{
		UnitNumber: unitNumber,
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("Failed to create room: %v", err)
	}
	return &room
}

// CreateTestManager creates a lease manager
func CreateTestManager(t *testing.T, db *gorm.DB, name string) *models.LeaseManager {
	t.Helper()
	manager := models.LeaseManager{
		Name: name,
	}
	if err := db.Create(&manager).Error; err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	return &manager
}
