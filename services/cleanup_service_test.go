package services

import (
	"errors"
	"fmt"
	"testing"

	"cleanup-game-system/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Pin{},
		&models.HazardReport{},
		&models.CleanupClaim{},
		&models.CleanupVote{},
		&models.RewardGrant{},
		&models.Squad{},
		&models.SquadMember{},
		&models.Territory{},
		&models.TerritoryClaim{},
		&models.Raid{},
		&models.RaidParticipant{},
		&models.TrashType{},
		&models.Collection{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user, err := NewUserService(db).CreateUser(username)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createTestPin(t *testing.T, db *gorm.DB, severity models.PinSeverity) *models.Pin {
	t.Helper()
	pin := &models.Pin{
		ID:           uuid.NewString(),
		Severity:     severity,
		Status:       models.PinStatusDirty,
		HazardStatus: models.HazardStatusClear,
		Lat:          52.52,
		Lng:          13.405,
	}
	if err := db.Create(pin).Error; err != nil {
		t.Fatalf("failed to create pin: %v", err)
	}
	return pin
}

func submitTestCleanup(t *testing.T, svc *CleanupService, pinID string, cleanerID *string, aiScore float64) *models.CleanupClaim {
	t.Helper()
	claim, err := svc.SubmitCleanup(SubmitCleanupInput{
		PinID:          pinID,
		CleanerID:      cleanerID,
		BeforePhotoURL: "/uploads/before.jpg",
		AfterPhotoURL:  "/uploads/after.jpg",
		AIScore:        &aiScore,
	})
	if err != nil {
		t.Fatalf("failed to submit cleanup: %v", err)
	}
	return claim
}

func TestRecordVoteUnknownClaim(t *testing.T) {
	db := openTestDB(t)
	svc := NewCleanupService(db)

	_, _, err := svc.RecordVote(uuid.NewString(), uuid.NewString(), models.VoteLegit)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestSubmitCleanupMarksPinPending(t *testing.T) {
	db := openTestDB(t)
	svc := NewCleanupService(db)
	pin := createTestPin(t, db, models.PinSeverityOrange)
	cleaner := createTestUser(t, db, "submitter")

	trashType := models.TrashType{ID: uuid.NewString(), Code: "glass", Name: "Glass"}
	if err := db.Create(&trashType).Error; err != nil {
		t.Fatalf("failed to seed trash type: %v", err)
	}

	score := 0.4
	claim, err := svc.SubmitCleanup(SubmitCleanupInput{
		PinID:          pin.ID,
		CleanerID:      &cleaner.ID,
		BeforePhotoURL: "/uploads/b.jpg",
		AfterPhotoURL:  "/uploads/a.jpg",
		AIScore:        &score,
		TrashTypeCode:  "glass",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if claim.Status != models.CleanupStatusPending {
		t.Fatalf("new claim should be pending, got %q", claim.Status)
	}

	var updatedPin models.Pin
	if err := db.First(&updatedPin, "id = ?", pin.ID).Error; err != nil {
		t.Fatalf("failed to reload pin: %v", err)
	}
	if updatedPin.Status != models.PinStatusCleanedPending {
		t.Fatalf("pin should be cleaned_pending, got %q", updatedPin.Status)
	}

	var collection models.Collection
	if err := db.First(&collection, "user_id = ? AND trash_type_id = ?", cleaner.ID, trashType.ID).Error; err != nil {
		t.Fatalf("collection counter missing: %v", err)
	}
	if collection.Count != 1 {
		t.Fatalf("expected collection count 1, got %d", collection.Count)
	}
}

func TestSubmitCleanupDefaultsAIScore(t *testing.T) {
	db := openTestDB(t)
	svc := NewCleanupService(db)
	pin := createTestPin(t, db, models.PinSeverityYellow)

	claim, err := svc.SubmitCleanup(SubmitCleanupInput{
		PinID:          pin.ID,
		BeforePhotoURL: "/uploads/b.jpg",
		AfterPhotoURL:  "/uploads/a.jpg",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if claim.AIScore != DefaultAIScore {
		t.Fatalf("expected default AI score %v, got %v", DefaultAIScore, claim.AIScore)
	}
}

func TestCrowdConsensusVerifiesAndRewards(t *testing.T) {
	db := openTestDB(t)
	svc := NewCleanupService(db)
	pin := createTestPin(t, db, models.PinSeverityRed)
	cleaner := createTestUser(t, db, "cleaner")
	claim := submitTestCleanup(t, svc, pin.ID, &cleaner.ID, 0.4)

	for i, voter := range []string{"voter-1", "voter-2"} {
		_, updated, err := svc.RecordVote(claim.ID, voter, models.VoteLegit)
		if err != nil {
			t.Fatalf("vote %d failed: %v", i+1, err)
		}
		if updated.Status != models.CleanupStatusPending {
			t.Fatalf("claim should still be pending after %d vote(s), got %q", i+1, updated.Status)
		}
	}

	_, updated, err := svc.RecordVote(claim.ID, "voter-3", models.VoteLegit)
	if err != nil {
		t.Fatalf("third vote failed: %v", err)
	}
	if updated.Status != models.CleanupStatusVerified {
		t.Fatalf("claim should be verified after three legit votes, got %q", updated.Status)
	}

	var updatedPin models.Pin
	if err := db.First(&updatedPin, "id = ?", pin.ID).Error; err != nil {
		t.Fatalf("failed to reload pin: %v", err)
	}
	if updatedPin.Status != models.PinStatusCleaned {
		t.Fatalf("pin should be cleaned, got %q", updatedPin.Status)
	}

	var rewarded models.User
	if err := db.First(&rewarded, "id = ?", cleaner.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if rewarded.XP != 120 {
		t.Fatalf("expected 120 XP for red pin, got %d", rewarded.XP)
	}
	if rewarded.Currency != 60 {
		t.Fatalf("expected 60 currency, got %d", rewarded.Currency)
	}
	if rewarded.Level != 2 {
		t.Fatalf("expected level 2 at 120 XP, got %d", rewarded.Level)
	}

	var grants []models.RewardGrant
	if err := db.Where("cleanup_id = ?", claim.ID).Find(&grants).Error; err != nil {
		t.Fatalf("failed to list grants: %v", err)
	}
	if len(grants) != 1 {
		t.Fatalf("expected exactly one reward grant, got %d", len(grants))
	}
	if grants[0].XPAwarded != 120 || grants[0].CurrencyAwarded != 60 {
		t.Fatalf("grant recorded wrong amounts: %+v", grants[0])
	}
}

func TestRewardFiresExactlyOnce(t *testing.T) {
	db := openTestDB(t)
	svc := NewCleanupService(db)
	pin := createTestPin(t, db, models.PinSeverityOrange)
	cleaner := createTestUser(t, db, "cleaner")
	claim := submitTestCleanup(t, svc, pin.ID, &cleaner.ID, 0.9)

	// High AI score verifies on the first vote
	_, updated, err := svc.RecordVote(claim.ID, "voter-1", models.VoteFake)
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if updated.Status != models.CleanupStatusVerified {
		t.Fatalf("expected verified, got %q", updated.Status)
	}

	// Votes on a terminal claim are recorded but trigger nothing
	for _, voter := range []string{"voter-2", "voter-3", "voter-1"} {
		if _, _, err := svc.RecordVote(claim.ID, voter, models.VoteFake); err != nil {
			t.Fatalf("post-verification vote failed: %v", err)
		}
	}

	var rewarded models.User
	if err := db.First(&rewarded, "id = ?", cleaner.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if rewarded.XP != 70 || rewarded.Currency != 35 {
		t.Fatalf("reward applied more than once: xp=%d currency=%d", rewarded.XP, rewarded.Currency)
	}

	var grantCount int64
	if err := db.Model(&models.RewardGrant{}).Where("cleanup_id = ?", claim.ID).Count(&grantCount).Error; err != nil {
		t.Fatalf("failed to count grants: %v", err)
	}
	if grantCount != 1 {
		t.Fatalf("expected one grant, got %d", grantCount)
	}

	var reloaded models.CleanupClaim
	if err := db.First(&reloaded, "id = ?", claim.ID).Error; err != nil {
		t.Fatalf("failed to reload claim: %v", err)
	}
	if reloaded.Status != models.CleanupStatusVerified {
		t.Fatalf("terminal status changed to %q", reloaded.Status)
	}
}

func TestVoteOverwriteAndRejection(t *testing.T) {
	db := openTestDB(t)
	svc := NewCleanupService(db)
	pin := createTestPin(t, db, models.PinSeverityYellow)
	cleaner := createTestUser(t, db, "cleaner")
	claim := submitTestCleanup(t, svc, pin.ID, &cleaner.ID, 0.5)

	// voter-1 changes their mind: only the final vote counts
	if _, _, err := svc.RecordVote(claim.ID, "voter-1", models.VoteLegit); err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if _, _, err := svc.RecordVote(claim.ID, "voter-1", models.VoteFake); err != nil {
		t.Fatalf("revote failed: %v", err)
	}

	var votes []models.CleanupVote
	if err := db.Where("cleanup_id = ?", claim.ID).Find(&votes).Error; err != nil {
		t.Fatalf("failed to list votes: %v", err)
	}
	if len(votes) != 1 {
		t.Fatalf("expected one vote row after overwrite, got %d", len(votes))
	}
	totals := SummarizeVotes(votes)
	if totals.Legit != 0 || totals.Fake != 1 {
		t.Fatalf("expected tally {0 1}, got {%d %d}", totals.Legit, totals.Fake)
	}

	if _, _, err := svc.RecordVote(claim.ID, "voter-2", models.VoteFake); err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	_, updated, err := svc.RecordVote(claim.ID, "voter-3", models.VoteFake)
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if updated.Status != models.CleanupStatusRejected {
		t.Fatalf("expected rejected after three fake votes, got %q", updated.Status)
	}

	// Rejection has no side effects
	var updatedPin models.Pin
	if err := db.First(&updatedPin, "id = ?", pin.ID).Error; err != nil {
		t.Fatalf("failed to reload pin: %v", err)
	}
	if updatedPin.Status != models.PinStatusCleanedPending {
		t.Fatalf("rejected claim must not touch the pin, got %q", updatedPin.Status)
	}
	var user models.User
	if err := db.First(&user, "id = ?", cleaner.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if user.XP != 0 || user.Currency != 0 {
		t.Fatalf("rejected claim must not pay out: xp=%d currency=%d", user.XP, user.Currency)
	}
}

func TestLowAIScoreRejectsWithTwoVotes(t *testing.T) {
	db := openTestDB(t)
	svc := NewCleanupService(db)
	pin := createTestPin(t, db, models.PinSeverityYellow)
	claim := submitTestCleanup(t, svc, pin.ID, nil, 0.1)

	_, updated, err := svc.RecordVote(claim.ID, "voter-1", models.VoteLegit)
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if updated.Status != models.CleanupStatusPending {
		t.Fatalf("one vote is not enough to reject, got %q", updated.Status)
	}

	_, updated, err = svc.RecordVote(claim.ID, "voter-2", models.VoteFake)
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if updated.Status != models.CleanupStatusRejected {
		t.Fatalf("expected rejected at two votes with low AI score, got %q", updated.Status)
	}
}

func TestMissingPinTolerated(t *testing.T) {
	db := openTestDB(t)
	svc := NewCleanupService(db)
	cleaner := createTestUser(t, db, "cleaner")

	// Claim references a pin that no longer exists
	claim := &models.CleanupClaim{
		ID:             uuid.NewString(),
		PinID:          uuid.NewString(),
		CleanerID:      &cleaner.ID,
		BeforePhotoURL: "/uploads/b.jpg",
		AfterPhotoURL:  "/uploads/a.jpg",
		AIScore:        0.9,
		Status:         models.CleanupStatusPending,
	}
	if err := db.Create(claim).Error; err != nil {
		t.Fatalf("failed to create claim: %v", err)
	}

	_, updated, err := svc.RecordVote(claim.ID, "voter-1", models.VoteLegit)
	if err != nil {
		t.Fatalf("vote must survive a missing pin: %v", err)
	}
	if updated.Status != models.CleanupStatusVerified {
		t.Fatalf("expected verified, got %q", updated.Status)
	}

	// Reward falls back to yellow severity
	var rewarded models.User
	if err := db.First(&rewarded, "id = ?", cleaner.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if rewarded.XP != 40 || rewarded.Currency != 20 {
		t.Fatalf("expected yellow fallback reward (40, 20), got (%d, %d)", rewarded.XP, rewarded.Currency)
	}
}

func TestMissingCleanerTolerated(t *testing.T) {
	db := openTestDB(t)
	svc := NewCleanupService(db)
	pin := createTestPin(t, db, models.PinSeverityRed)

	ghost := uuid.NewString()
	claim := &models.CleanupClaim{
		ID:             uuid.NewString(),
		PinID:          pin.ID,
		CleanerID:      &ghost,
		BeforePhotoURL: "/uploads/b.jpg",
		AfterPhotoURL:  "/uploads/a.jpg",
		AIScore:        0.9,
		Status:         models.CleanupStatusPending,
	}
	if err := db.Create(claim).Error; err != nil {
		t.Fatalf("failed to create claim: %v", err)
	}

	_, updated, err := svc.RecordVote(claim.ID, "voter-1", models.VoteLegit)
	if err != nil {
		t.Fatalf("vote must survive a missing user: %v", err)
	}
	if updated.Status != models.CleanupStatusVerified {
		t.Fatalf("expected verified, got %q", updated.Status)
	}

	// The pin is still cleaned, but no grant is issued
	var updatedPin models.Pin
	if err := db.First(&updatedPin, "id = ?", pin.ID).Error; err != nil {
		t.Fatalf("failed to reload pin: %v", err)
	}
	if updatedPin.Status != models.PinStatusCleaned {
		t.Fatalf("pin should be cleaned, got %q", updatedPin.Status)
	}
	var grantCount int64
	if err := db.Model(&models.RewardGrant{}).Count(&grantCount).Error; err != nil {
		t.Fatalf("failed to count grants: %v", err)
	}
	if grantCount != 0 {
		t.Fatalf("no grant expected for missing cleaner, got %d", grantCount)
	}
}

func TestAnonymousCleanupHasNoReward(t *testing.T) {
	db := openTestDB(t)
	svc := NewCleanupService(db)
	pin := createTestPin(t, db, models.PinSeverityOrange)
	claim := submitTestCleanup(t, svc, pin.ID, nil, 0.9)

	_, updated, err := svc.RecordVote(claim.ID, "voter-1", models.VoteLegit)
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if updated.Status != models.CleanupStatusVerified {
		t.Fatalf("expected verified, got %q", updated.Status)
	}

	var grantCount int64
	if err := db.Model(&models.RewardGrant{}).Count(&grantCount).Error; err != nil {
		t.Fatalf("failed to count grants: %v", err)
	}
	if grantCount != 0 {
		t.Fatalf("anonymous cleanup must not issue a grant, got %d", grantCount)
	}
}
