package models

import "time"

// Squad is a named cleanup crew users can join
type Squad struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Name string `gorm:"not null" json:"name"`
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`

	Timestamps
}

// SquadMember links a user to a squad. Re-adding a member updates the role.
type SquadMember struct {
	SquadID  string    `gorm:"primaryKey;type:uuid" json:"squad_id"`
	UserID   string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	Role     string    `gorm:"not null;default:'member'" json:"role"`
	JoinedAt time.Time `json:"joined_at" gorm:"autoCreateTime"`
}
