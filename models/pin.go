package models

import "time"

// PinSeverity drives reward magnitude for a verified cleanup
type PinSeverity string

const (
	PinSeverityYellow PinSeverity = "yellow"
	PinSeverityOrange PinSeverity = "orange"
	PinSeverityRed    PinSeverity = "red"
)

// PinStatus indicates where a litter pin is in its lifecycle.
// A pin only becomes "cleaned" when its cleanup claim is verified.
type PinStatus string

const (
	PinStatusDirty          PinStatus = "dirty"
	PinStatusCleanedPending PinStatus = "cleaned_pending"
	PinStatusCleaned        PinStatus = "cleaned"
)

type HazardStatus string

const (
	HazardStatusClear    HazardStatus = "clear"
	HazardStatusReported HazardStatus = "reported"
)

// Pin is a reported litter location on the map
type Pin struct {
	ID         string       `gorm:"primaryKey;type:uuid" json:"id"`
	ReporterID *string      `gorm:"type:uuid;index" json:"reporter_id,omitempty"` // anonymous reports allowed
	Severity   PinSeverity  `gorm:"not null" json:"severity"`
	Status     PinStatus    `gorm:"not null;default:'dirty';index" json:"status"`
	HazardStatus HazardStatus `gorm:"not null;default:'clear'" json:"hazard_status"`

	Lat float64 `gorm:"not null;index" json:"lat"`
	Lng float64 `gorm:"not null;index" json:"lng"`

	Timestamps
}

// HazardReport flags a pin as dangerous (broken glass, needles, ...)
type HazardReport struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	PinID      string    `gorm:"type:uuid;index;not null" json:"pin_id"`
	ReporterID *string   `gorm:"type:uuid" json:"reporter_id,omitempty"`
	HazardType string    `gorm:"not null" json:"hazard_type"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}
