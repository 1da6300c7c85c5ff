package models

import (
	"time"

	"gorm.io/gorm"
)

// User holds the progression-relevant game state for a player.
// Level is always recomputed from XP by the progression service,
// never incremented on its own.
type User struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`

	XP       int64 `json:"xp" gorm:"default:0"`
	Currency int64 `json:"currency" gorm:"default:0"`
	Level    int   `json:"level" gorm:"default:1"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
