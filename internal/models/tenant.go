package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tenant represents a lease-holding party.
//
// Unit mirrors the UnitNumber of the room the tenant occupies; an empty
// string means no unit is assigned. It is written only by the assign and
// release operations so it stays in step with UnitRoom.TenantID.
type Tenant struct {
	TenantID       uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string          `gorm:"size:60;not null" json:"name"`
	LeaseStart     time.Time       `gorm:"not null" json:"lease_start"`
	LeaseEnd       time.Time       `gorm:"not null" json:"lease_end"`
	NextPaymentDue *time.Time      `json:"next_payment_due"`
	MonthlyRent    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"monthly_rent"`
	Unit           string          `gorm:"size:10;not null;default:''" json:"unit"`
	CreatedAt      time.Time       `json:"-"`
	UpdatedAt      time.Time       `json:"-"`
	Properties     []Property      `gorm:"many2many:property_tenants;joinForeignKey:tenant_id;joinReferences:property_id" json:"-"`
}

// TableName overrides the table name for Tenant
func (Tenant) TableName() string {
	return "tenants"
}
