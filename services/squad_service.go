// services/squad_service.go
package services

import (
	"cleanup-game-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SquadService struct {
	DB *gorm.DB
}

func NewSquadService(db *gorm.DB) *SquadService {
	return &SquadService{DB: db}
}

func (s *SquadService) CreateSquad(name string) (*models.Squad, error) {
	squad := &models.Squad{
		ID:   uuid.NewString(),
		Name: name,
		Slug: slug.Make(name),
	}
	if err := s.DB.Create(squad).Error; err != nil {
		return nil, err
	}
	return squad, nil
}

func (s *SquadService) GetSquad(squadID string) (*models.Squad, error) {
	var squad models.Squad
	if err := s.DB.First(&squad, "id = ?", squadID).Error; err != nil {
		return nil, err
	}
	return &squad, nil
}

func (s *SquadService) ListSquads() ([]models.Squad, error) {
	var squads []models.Squad
	err := s.DB.Order("created_at DESC").Find(&squads).Error
	return squads, err
}

// AddMember joins a user to a squad. Joining again updates the role.
func (s *SquadService) AddMember(squadID, userID, role string) (*models.SquadMember, error) {
	if role == "" {
		role = "member"
	}
	member := models.SquadMember{
		SquadID: squadID,
		UserID:  userID,
		Role:    role,
	}
	if err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "squad_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"role": role}),
	}).Create(&member).Error; err != nil {
		return nil, err
	}

	var saved models.SquadMember
	if err := s.DB.Where("squad_id = ? AND user_id = ?", squadID, userID).
		First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}
