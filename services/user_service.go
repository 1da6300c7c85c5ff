// services/user_service.go
package services

import (
	"cleanup-game-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func (s *UserService) CreateUser(username string) (*models.User, error) {
	user := &models.User{
		ID:       uuid.NewString(),
		Username: username,
		Level:    1,
	}
	if err := s.DB.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(userID string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) ListUsers() ([]models.User, error) {
	var users []models.User
	err := s.DB.Order("created_at DESC").Find(&users).Error
	return users, err
}

// Leaderboard returns the top users by XP
func (s *UserService) Leaderboard(limit int) ([]models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var users []models.User
	err := s.DB.Order("xp DESC").Limit(limit).Find(&users).Error
	return users, err
}
