package models

import "time"

// GeoPoint is a WGS84 coordinate pair
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Territory is a named map area squads compete over.
// Ring is the normalized closed polygon boundary.
type Territory struct {
	ID   string     `gorm:"primaryKey;type:uuid" json:"id"`
	Name string     `gorm:"not null" json:"name"`
	Slug string     `gorm:"uniqueIndex;not null" json:"slug"`
	Ring []GeoPoint `gorm:"serializer:json" json:"polygon"`

	Timestamps
}

// TerritoryClaim is a user's hold on a territory. Claims decay: once
// DecayAt passes, the sweeper removes the row and the territory is up
// for grabs again. Re-claiming refreshes DecayAt.
type TerritoryClaim struct {
	TerritoryID string    `gorm:"primaryKey;type:uuid" json:"territory_id"`
	UserID      string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	ClaimedAt   time.Time `json:"claimed_at" gorm:"autoCreateTime"`
	DecayAt     time.Time `gorm:"index;not null" json:"decay_at"`
}
