// services/cleanup_service.go
package services

import (
	"errors"
	"log"

	"cleanup-game-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CleanupService owns the cleanup claim lifecycle: submission, peer
// voting, verification transitions and the reward side effects that
// fire exactly once when a claim verifies.
type CleanupService struct {
	DB *gorm.DB
}

func NewCleanupService(db *gorm.DB) *CleanupService {
	return &CleanupService{DB: db}
}

// DefaultAIScore is used when a submission arrives without a score
// (the scorer may backfill it later, see workers.ScoreSyncWorker).
const DefaultAIScore = 0.5

type SubmitCleanupInput struct {
	PinID          string
	CleanerID      *string
	BeforePhotoURL string
	AfterPhotoURL  string
	AIScore        *float64
	TrashTypeCode  string
}

// SubmitCleanup creates a pending claim for a pin and marks the pin
// cleaned_pending. When the cleaner reported what they collected, the
// matching collection counter is bumped in the same transaction.
// Existence of the pin (and cleaner, if any) is validated by the caller.
func (s *CleanupService) SubmitCleanup(in SubmitCleanupInput) (*models.CleanupClaim, error) {
	score := DefaultAIScore
	if in.AIScore != nil {
		score = *in.AIScore
	}

	claim := &models.CleanupClaim{
		ID:             uuid.NewString(),
		PinID:          in.PinID,
		CleanerID:      in.CleanerID,
		BeforePhotoURL: in.BeforePhotoURL,
		AfterPhotoURL:  in.AfterPhotoURL,
		AIScore:        score,
		Status:         models.CleanupStatusPending,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(claim).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Pin{}).
			Where("id = ?", in.PinID).
			Update("status", models.PinStatusCleanedPending).Error; err != nil {
			return err
		}
		if in.CleanerID != nil && in.TrashTypeCode != "" {
			if _, err := NewCollectionService(tx).Increment(*in.CleanerID, in.TrashTypeCode, 1); err != nil {
				// The claim must not be lost over a bad trash type code
				log.Printf("⚠️ Collection tally skipped for cleanup %s: %v", claim.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claim, nil
}

// ListCleanups returns claims, optionally filtered by status and/or cleaner
func (s *CleanupService) ListCleanups(status, cleanerID string) ([]models.CleanupClaim, error) {
	db := s.DB.Order("created_at DESC")
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if cleanerID != "" {
		db = db.Where("cleaner_id = ?", cleanerID)
	}
	var claims []models.CleanupClaim
	err := db.Find(&claims).Error
	return claims, err
}

func (s *CleanupService) GetCleanup(cleanupID string) (*models.CleanupClaim, error) {
	var claim models.CleanupClaim
	if err := s.DB.First(&claim, "id = ?", cleanupID).Error; err != nil {
		return nil, err
	}
	return &claim, nil
}

// RecordVote upserts one voter's judgement on a claim and drives the
// verification state machine. The vote itself always sticks once the
// claim exists — reward-side lookup failures never roll it back.
func (s *CleanupService) RecordVote(cleanupID, voterID string, choice models.VoteChoice) (*models.CleanupVote, *models.CleanupClaim, error) {
	var claim models.CleanupClaim
	if err := s.DB.First(&claim, "id = ?", cleanupID).Error; err != nil {
		return nil, nil, err
	}

	vote := models.CleanupVote{
		CleanupID: cleanupID,
		VoterID:   voterID,
		Vote:      string(choice),
	}
	if err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cleanup_id"}, {Name: "voter_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"vote": string(choice)}),
	}).Create(&vote).Error; err != nil {
		return nil, nil, err
	}

	// Terminal statuses are immutable: votes on an already verified or
	// rejected claim are recorded but never re-enter the policy.
	if claim.Status != models.CleanupStatusPending {
		return &vote, &claim, nil
	}

	updated, err := s.Reevaluate(&claim)
	if err != nil {
		return nil, nil, err
	}
	return &vote, updated, nil
}

// Reevaluate recomputes the claim's status from its AI score and the
// full vote tally, and applies the transition plus its side effects.
// The status update is a compare-and-swap on "pending" inside one
// transaction, so two racing votes cannot both fire the transition.
func (s *CleanupService) Reevaluate(claim *models.CleanupClaim) (*models.CleanupClaim, error) {
	var votes []models.CleanupVote
	if err := s.DB.Where("cleanup_id = ?", claim.ID).Find(&votes).Error; err != nil {
		return nil, err
	}

	nextStatus := ComputeVerificationStatus(claim.AIScore, SummarizeVotes(votes))
	if nextStatus == claim.Status {
		return claim, nil
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CleanupClaim{}).
			Where("id = ? AND status = ?", claim.ID, models.CleanupStatusPending).
			Update("status", nextStatus)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the race: another writer already transitioned this claim
			return nil
		}
		if nextStatus == models.CleanupStatusVerified {
			return s.applyVerificationRewards(tx, claim)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var refreshed models.CleanupClaim
	if err := s.DB.First(&refreshed, "id = ?", claim.ID).Error; err != nil {
		return nil, err
	}
	return &refreshed, nil
}

// applyVerificationRewards marks the pin cleaned and pays the cleaner.
// A missing pin or user is tolerated (logged, not fatal) so the claim
// transition still lands. The RewardGrant ledger row, keyed uniquely
// by claim, is what makes the payout exactly-once.
func (s *CleanupService) applyVerificationRewards(tx *gorm.DB, claim *models.CleanupClaim) error {
	severity := models.PinSeverityYellow

	var pin models.Pin
	if err := tx.First(&pin, "id = ?", claim.PinID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		log.Printf("⚠️ Pin %s missing for verified cleanup %s, skipping pin update", claim.PinID, claim.ID)
	} else {
		severity = pin.Severity
		if err := tx.Model(&pin).Update("status", models.PinStatusCleaned).Error; err != nil {
			return err
		}
	}

	if claim.CleanerID == nil {
		return nil
	}

	var user models.User
	if err := tx.First(&user, "id = ?", *claim.CleanerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("⚠️ Cleaner %s missing for verified cleanup %s, skipping reward", *claim.CleanerID, claim.ID)
			return nil
		}
		return err
	}

	deltaXP := XPForCleanup(severity, true)
	deltaCurrency := (deltaXP + 1) / 2 // round(deltaXP / 2)

	grant := models.RewardGrant{
		ID:              uuid.NewString(),
		CleanupID:       claim.ID,
		UserID:          user.ID,
		XPAwarded:       deltaXP,
		CurrencyAwarded: deltaCurrency,
	}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cleanup_id"}},
		DoNothing: true,
	}).Create(&grant)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Ledger already holds a grant for this claim
		return nil
	}

	nextXP, nextLevel := ApplyXP(user.XP, deltaXP)
	if err := tx.Model(&user).Updates(map[string]interface{}{
		"xp":       nextXP,
		"currency": user.Currency + deltaCurrency,
		"level":    nextLevel,
	}).Error; err != nil {
		return err
	}

	log.Printf("🧹 Cleanup verified: %s → user %s +%d XP, +%d currency (level %d)",
		claim.ID, user.ID, deltaXP, deltaCurrency, nextLevel)
	return nil
}
