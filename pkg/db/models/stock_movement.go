package models

import (
	"time"

	"github.com/angelmondragon/chemstock/pkg/enums"
	"github.com/google/uuid"
)

// StockMovement is an append-only audit record of a quantity moved in or out
// of a product's inventory. Rows are never updated after creation.
type StockMovement struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	ProductID uuid.UUID            `gorm:"column:product_id;type:uuid;not null;index"`
	Action    enums.MovementAction `gorm:"column:action;not null"`
	Quantity  float64              `gorm:"column:quantity;not null"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
}
