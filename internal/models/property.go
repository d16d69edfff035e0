package models

import (
	"time"
)

// Property types
const (
	PropertyTypeCommercial = "Commercial"
	PropertyTypePrivate    = "Private"
)

// Unit capacity bounds for a property
const (
	MinimumUnits = 1
	MaximumUnits = 100
)

// Property represents a rentable building.
//
// Units is the declared capacity. CurrentUnits counts units handed out
// through the tenant-assignment operation only; attaching or detaching a
// bare room does not move it. Vacancy reporting at the portfolio level
// compares CurrentUnits against Units, while per-property vacant-unit
// counts use the tenant membership count. The two are distinct measures.
type Property struct {
	PropertyID   uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Address      string     `gorm:"uniqueIndex;size:200;not null" json:"address"`
	PropertyType string     `gorm:"size:10;not null;default:Private" json:"property_type"`
	Units        int        `gorm:"not null" json:"units"`
	CurrentUnits int        `gorm:"not null;default:0" json:"current_units"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"-"`
	Tenants      []Tenant   `gorm:"many2many:property_tenants;joinForeignKey:property_id;joinReferences:tenant_id" json:"-"`
	UnitRooms    []UnitRoom `gorm:"foreignKey:PropertyID" json:"-"`
}

// TableName overrides the table name for Property
func (Property) TableName() string {
	return "properties"
}
