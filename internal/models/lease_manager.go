package models

import (
	"time"

	"gorm.io/datatypes"
)

// LeaseManager groups properties into a portfolio for cross-property
// reporting. A property belongs to at most one manager at a time; the
// portfolio service enforces that on AddProperty.
type LeaseManager struct {
	ManagerID  uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string     `gorm:"size:50;not null" json:"name"`
	CreatedAt  time.Time  `json:"-"`
	UpdatedAt  time.Time  `json:"-"`
	Properties []Property `gorm:"many2many:lease_manager_properties;joinForeignKey:manager_id;joinReferences:property_id" json:"-"`
}

// TableName overrides the table name for LeaseManager
func (LeaseManager) TableName() string {
	return "lease_managers"
}

// Report types stored in ReportSnapshot.ReportType
const (
	ReportTypeLeaseExpiry = "lease_expiry"
)

// ReportSnapshot is a persisted copy of a generated portfolio report.
type ReportSnapshot struct {
	SnapshotID uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Reference  string         `gorm:"type:char(36);uniqueIndex;not null" json:"reference"`
	ManagerID  uint64         `gorm:"index;not null" json:"manager_id"`
	ReportType string         `gorm:"size:20;not null" json:"report_type"`
	Payload    datatypes.JSON `gorm:"type:json" json:"payload"`
	CreatedAt  time.Time      `json:"created_at"`
}

// TableName overrides the table name for ReportSnapshot
func (ReportSnapshot) TableName() string {
	return "report_snapshots"
}
