package models

import "time"

// Raid is a scheduled group cleanup event at a location
type Raid struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Name string `gorm:"not null" json:"name"`

	Lat float64 `gorm:"not null" json:"lat"`
	Lng float64 `gorm:"not null" json:"lng"`

	StartsAt time.Time `gorm:"not null;index" json:"starts_at"`
	EndsAt   time.Time `gorm:"not null" json:"ends_at"`

	Timestamps
}

// RaidParticipant records a user joining a raid. Joining twice is a no-op.
type RaidParticipant struct {
	RaidID   string    `gorm:"primaryKey;type:uuid" json:"raid_id"`
	UserID   string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	JoinedAt time.Time `json:"joined_at" gorm:"autoCreateTime"`
}
