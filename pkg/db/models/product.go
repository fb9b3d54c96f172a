package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a chemical product tracked by the inventory. CASNumber is the
// natural business key and unique across all products. Stock is only mutated
// through stock movements and never goes below zero.
type Product struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	CASNumber string    `gorm:"column:cas_number;not null;uniqueIndex"`
	Unit      string    `gorm:"column:unit;not null"`
	Stock     float64   `gorm:"column:stock;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
