package types

import "time"

// Reports
type Report struct {
	ID             uint64 `gorm:"primaryKey"`
	ReporterID     int64  `gorm:"index;not null"`
	ReporterPhone  string `gorm:"size:32"`
	TargetType     string `gorm:"size:16;not null"` // user, channel or group
	TargetID       int64  `gorm:"index;not null"`
	TargetUsername string `gorm:"size:64"`
	TargetTitle    string `gorm:"size:255"`
	Category       string `gorm:"size:32;index;not null"`
	Reason         string `gorm:"type:text"`
	Severity       int    `gorm:"not null"`
	Status         string `gorm:"size:16;default:pending"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Settings
type Setting struct {
	ID    uint8  `gorm:"primaryKey"`
	Name  string `gorm:"size:32;not null"`
	Value string `gorm:"size:256;not null"`
}
