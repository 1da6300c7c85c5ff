// services/raid_service.go
package services

import (
	"time"

	"cleanup-game-system/models"
	"cleanup-game-system/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RaidService struct {
	DB *gorm.DB
}

func NewRaidService(db *gorm.DB) *RaidService {
	return &RaidService{DB: db}
}

func (s *RaidService) CreateRaid(name string, location utils.LatLng, startsAt, endsAt time.Time) (*models.Raid, error) {
	raid := &models.Raid{
		ID:       uuid.NewString(),
		Name:     name,
		Lat:      location.Lat,
		Lng:      location.Lng,
		StartsAt: startsAt,
		EndsAt:   endsAt,
	}
	if err := s.DB.Create(raid).Error; err != nil {
		return nil, err
	}
	return raid, nil
}

func (s *RaidService) GetRaid(raidID string) (*models.Raid, error) {
	var raid models.Raid
	if err := s.DB.First(&raid, "id = ?", raidID).Error; err != nil {
		return nil, err
	}
	return &raid, nil
}

// ListRaids returns raids soonest-first along with all participants
func (s *RaidService) ListRaids() ([]models.Raid, []models.RaidParticipant, error) {
	var raids []models.Raid
	if err := s.DB.Order("starts_at ASC").Find(&raids).Error; err != nil {
		return nil, nil, err
	}
	var participants []models.RaidParticipant
	if err := s.DB.Find(&participants).Error; err != nil {
		return nil, nil, err
	}
	return raids, participants, nil
}

// JoinRaid signs a user up for a raid. Joining twice keeps the
// original participation record.
func (s *RaidService) JoinRaid(raidID, userID string) (*models.RaidParticipant, error) {
	participant := models.RaidParticipant{
		RaidID: raidID,
		UserID: userID,
	}
	if err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "raid_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&participant).Error; err != nil {
		return nil, err
	}

	var saved models.RaidParticipant
	if err := s.DB.Where("raid_id = ? AND user_id = ?", raidID, userID).
		First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}
