package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a login identity. Passwords are stored and compared in plaintext,
// mirroring the system this replaces; that defect is documented rather than
// silently fixed.
type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Username  string    `gorm:"column:username;not null;uniqueIndex"`
	Password  string    `gorm:"column:password;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
