package models

import "time"

// TrashType is a lookup row for collectible litter categories (seeded at startup)
type TrashType struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Code string `gorm:"uniqueIndex;not null" json:"code"` // e.g. "plastic_bottle"
	Name string `gorm:"not null" json:"name"`
}

// Collection counts how many of a trash type a user has collected
type Collection struct {
	UserID      string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	TrashTypeID string    `gorm:"primaryKey;type:uuid" json:"trash_type_id"`
	Count       int64     `gorm:"not null;default:0" json:"count"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
