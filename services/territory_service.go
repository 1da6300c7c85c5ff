// services/territory_service.go
package services

import (
	"errors"
	"log"
	"time"

	"cleanup-game-system/models"
	"cleanup-game-system/utils"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultClaimDecayHours is how long a territory hold lasts without re-claiming
const DefaultClaimDecayHours = 72

var ErrInvalidPolygon = errors.New("invalid polygon")

type TerritoryService struct {
	DB *gorm.DB
}

func NewTerritoryService(db *gorm.DB) *TerritoryService {
	return &TerritoryService{DB: db}
}

// CreateTerritory validates and normalizes the boundary polygon
// (at least 3 in-range points, ring closed) before persisting.
func (s *TerritoryService) CreateTerritory(name string, polygon []models.GeoPoint) (*models.Territory, error) {
	ring, ok := utils.NormalizeRing(polygon)
	if !ok {
		return nil, ErrInvalidPolygon
	}
	territory := &models.Territory{
		ID:   uuid.NewString(),
		Name: name,
		Slug: slug.Make(name),
		Ring: ring,
	}
	if err := s.DB.Create(territory).Error; err != nil {
		return nil, err
	}
	return territory, nil
}

func (s *TerritoryService) GetTerritory(territoryID string) (*models.Territory, error) {
	var territory models.Territory
	if err := s.DB.First(&territory, "id = ?", territoryID).Error; err != nil {
		return nil, err
	}
	return &territory, nil
}

// ListTerritories returns all territories along with current (undecayed) claims
func (s *TerritoryService) ListTerritories() ([]models.Territory, []models.TerritoryClaim, error) {
	var territories []models.Territory
	if err := s.DB.Order("created_at DESC").Find(&territories).Error; err != nil {
		return nil, nil, err
	}
	var claims []models.TerritoryClaim
	if err := s.DB.Find(&claims).Error; err != nil {
		return nil, nil, err
	}
	return territories, claims, nil
}

// ClaimTerritory records a user's hold on a territory. Re-claiming
// refreshes both the claim time and the decay deadline.
func (s *TerritoryService) ClaimTerritory(territoryID, userID string, decayHours float64) (*models.TerritoryClaim, error) {
	if decayHours <= 0 {
		decayHours = DefaultClaimDecayHours
	}
	now := time.Now()
	claim := models.TerritoryClaim{
		TerritoryID: territoryID,
		UserID:      userID,
		ClaimedAt:   now,
		DecayAt:     now.Add(time.Duration(decayHours * float64(time.Hour))),
	}
	if err := s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "territory_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"decay_at":   claim.DecayAt,
			"claimed_at": now,
		}),
	}).Create(&claim).Error; err != nil {
		return nil, err
	}

	var saved models.TerritoryClaim
	if err := s.DB.Where("territory_id = ? AND user_id = ?", territoryID, userID).
		First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// SweepDecayedClaims drops every claim whose decay deadline has passed
func (s *TerritoryService) SweepDecayedClaims() (int64, error) {
	res := s.DB.Where("decay_at <= ?", time.Now()).Delete(&models.TerritoryClaim{})
	return res.RowsAffected, res.Error
}

// StartDecayScheduler runs the claim sweeper every minute
func (s *TerritoryService) StartDecayScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			dropped, err := s.SweepDecayedClaims()
			if err != nil {
				log.Printf("[Decay] DB error: %v", err)
				return
			}
			if dropped > 0 {
				log.Printf("⏳ Decayed %d territory claim(s)", dropped)
			}
		}),
	)
}
