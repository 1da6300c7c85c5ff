// services/collection_service.go
package services

import (
	"cleanup-game-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CollectionService struct {
	DB *gorm.DB
}

func NewCollectionService(db *gorm.DB) *CollectionService {
	return &CollectionService{DB: db}
}

// CollectionEntry is a collection row joined with its trash type
type CollectionEntry struct {
	UserID        string `json:"user_id"`
	TrashTypeID   string `json:"trash_type_id"`
	Count         int64  `json:"count"`
	TrashTypeCode string `json:"trash_type_code"`
	TrashTypeName string `json:"trash_type_name"`
}

// Increment bumps the user's counter for a trash type by count,
// creating the row on first collection. Returns ErrRecordNotFound
// when the code doesn't match a known trash type.
func (s *CollectionService) Increment(userID, trashTypeCode string, count int64) (*CollectionEntry, error) {
	var trashType models.TrashType
	if err := s.DB.First(&trashType, "code = ?", trashTypeCode).Error; err != nil {
		return nil, err
	}

	col := models.Collection{
		UserID:      userID,
		TrashTypeID: trashType.ID,
		Count:       count,
	}
	if err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "trash_type_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("collections.count + ?", count)}),
	}).Create(&col).Error; err != nil {
		return nil, err
	}

	var updated models.Collection
	if err := s.DB.Where("user_id = ? AND trash_type_id = ?", userID, trashType.ID).
		First(&updated).Error; err != nil {
		return nil, err
	}

	return &CollectionEntry{
		UserID:        updated.UserID,
		TrashTypeID:   updated.TrashTypeID,
		Count:         updated.Count,
		TrashTypeCode: trashType.Code,
		TrashTypeName: trashType.Name,
	}, nil
}

// ListForUser returns all of a user's collection counters, newest first
func (s *CollectionService) ListForUser(userID string) ([]CollectionEntry, error) {
	var entries []CollectionEntry
	err := s.DB.Model(&models.Collection{}).
		Select("collections.user_id, collections.trash_type_id, collections.count, trash_types.code AS trash_type_code, trash_types.name AS trash_type_name").
		Joins("JOIN trash_types ON trash_types.id = collections.trash_type_id").
		Where("collections.user_id = ?", userID).
		Order("collections.updated_at DESC").
		Scan(&entries).Error
	return entries, err
}
