package models

import "time"

// CleanupStatus is the verification state of a cleanup claim.
// Once a claim leaves "pending" it never transitions again.
type CleanupStatus string

const (
	CleanupStatusPending  CleanupStatus = "pending"
	CleanupStatusVerified CleanupStatus = "verified"
	CleanupStatusRejected CleanupStatus = "rejected"
)

// VoteChoice is a peer judgement on a cleanup claim
type VoteChoice string

const (
	VoteLegit VoteChoice = "legit"
	VoteFake  VoteChoice = "fake"
)

// CleanupClaim is a submitted before/after cleanup of a pin
type CleanupClaim struct {
	ID             string        `gorm:"primaryKey;type:uuid" json:"id"`
	PinID          string        `gorm:"type:uuid;index;not null" json:"pin_id"`
	CleanerID      *string       `gorm:"type:uuid;index" json:"cleaner_id,omitempty"` // anonymous cleanups allowed
	BeforePhotoURL string        `gorm:"not null" json:"before_photo_url"`
	AfterPhotoURL  string        `gorm:"not null" json:"after_photo_url"`
	AIScore        float64       `gorm:"not null" json:"ai_score"` // plausibility in [0,1], supplied externally
	Status         CleanupStatus `gorm:"not null;default:'pending';index" json:"status"`

	Timestamps
}

// CleanupVote is one voter's judgement on one claim.
// Composite key: a repeat vote by the same voter overwrites the earlier one.
type CleanupVote struct {
	CleanupID string    `gorm:"primaryKey;type:uuid" json:"cleanup_id"`
	VoterID   string    `gorm:"primaryKey;type:uuid" json:"voter_id"`
	Vote      string    `gorm:"not null" json:"vote"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// RewardGrant is the append-only ledger of issued cleanup rewards.
// The unique index on CleanupID is what makes reward application
// exactly-once under racing votes.
type RewardGrant struct {
	ID              string    `gorm:"primaryKey;type:uuid" json:"id"`
	CleanupID       string    `gorm:"type:uuid;uniqueIndex;not null" json:"cleanup_id"`
	UserID          string    `gorm:"type:uuid;index;not null" json:"user_id"`
	XPAwarded       int64     `gorm:"not null" json:"xp_awarded"`
	CurrencyAwarded int64     `gorm:"not null" json:"currency_awarded"`
	GrantedAt       time.Time `json:"granted_at" gorm:"autoCreateTime"`
}
