package models

import (
	"time"
)

// UnitRoom is a rentable room with a globally unique unit number.
//
// TenantID is a weak link ("tenant lives here"): deleting the tenant nulls
// it, never the room. PropertyID is an owning link: the property's deletion
// takes its rooms with it.
type UnitRoom struct {
	RoomID     uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UnitNumber string    `gorm:"uniqueIndex;size:10;not null" json:"unit_number"`
	TenantID   *uint64   `gorm:"index" json:"tenant_id"`
	Tenant     *Tenant   `gorm:"foreignKey:TenantID;constraint:OnDelete:SET NULL" json:"-"`
	PropertyID *uint64   `gorm:"index" json:"property_id"`
	Property   *Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// TableName overrides the table name for UnitRoom
func (UnitRoom) TableName() string {
	return "unit_rooms"
}
