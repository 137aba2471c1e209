package entity

import (
	"time"

	"gorm.io/gorm"
)

// Stock is a row of the ticker universe table.
type Stock struct {
	ID        uint           `gorm:"primaryKey"`
	Code      string         `gorm:"not null;uniqueIndex"`
	Name      string         `gorm:"not null"`
	IsActive  bool           `gorm:"not null;default:true"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Stock) TableName() string {
	return "stocks"
}
