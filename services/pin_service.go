// services/pin_service.go
package services

import (
	"cleanup-game-system/models"
	"cleanup-game-system/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PinService struct {
	DB *gorm.DB
}

func NewPinService(db *gorm.DB) *PinService {
	return &PinService{DB: db}
}

func (s *PinService) CreatePin(reporterID *string, severity models.PinSeverity, location utils.LatLng) (*models.Pin, error) {
	pin := &models.Pin{
		ID:           uuid.NewString(),
		ReporterID:   reporterID,
		Severity:     severity,
		Status:       models.PinStatusDirty,
		HazardStatus: models.HazardStatusClear,
		Lat:          location.Lat,
		Lng:          location.Lng,
	}
	if err := s.DB.Create(pin).Error; err != nil {
		return nil, err
	}
	return pin, nil
}

// ListPins returns pins, optionally restricted to a bounding box
func (s *PinService) ListPins(bbox *utils.BBox) ([]models.Pin, error) {
	db := s.DB.Order("created_at DESC")
	if bbox != nil {
		db = db.Where("lat BETWEEN ? AND ? AND lng BETWEEN ? AND ?",
			bbox.MinLat, bbox.MaxLat, bbox.MinLng, bbox.MaxLng)
	}
	var pins []models.Pin
	err := db.Find(&pins).Error
	return pins, err
}

func (s *PinService) GetPin(pinID string) (*models.Pin, error) {
	var pin models.Pin
	if err := s.DB.First(&pin, "id = ?", pinID).Error; err != nil {
		return nil, err
	}
	return &pin, nil
}

// ReportHazard files a hazard report for a pin and flips the pin's
// hazard status to reported
func (s *PinService) ReportHazard(pinID string, reporterID *string, hazardType, notes string) (*models.HazardReport, error) {
	report := &models.HazardReport{
		ID:         uuid.NewString(),
		PinID:      pinID,
		ReporterID: reporterID,
		HazardType: hazardType,
		Notes:      notes,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Pin{}).
			Where("id = ?", pinID).
			Update("hazard_status", models.HazardStatusReported).Error; err != nil {
			return err
		}
		return tx.Create(report).Error
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
