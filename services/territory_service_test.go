package services

import (
	"testing"
	"time"

	"cleanup-game-system/models"
)

func testRing() []models.GeoPoint {
	return []models.GeoPoint{
		{Lat: 52.50, Lng: 13.40},
		{Lat: 52.51, Lng: 13.40},
		{Lat: 52.51, Lng: 13.41},
	}
}

func TestCreateTerritoryClosesRing(t *testing.T) {
	db := openTestDB(t)
	svc := NewTerritoryService(db)

	territory, err := svc.CreateTerritory("Mauerpark North", testRing())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if territory.Slug != "mauerpark-north" {
		t.Fatalf("expected slug mauerpark-north, got %q", territory.Slug)
	}
	if len(territory.Ring) != 4 {
		t.Fatalf("ring should be closed to 4 points, got %d", len(territory.Ring))
	}
	if territory.Ring[0] != territory.Ring[len(territory.Ring)-1] {
		t.Fatalf("ring is not closed: %+v", territory.Ring)
	}
}

func TestCreateTerritoryRejectsBadPolygon(t *testing.T) {
	db := openTestDB(t)
	svc := NewTerritoryService(db)

	_, err := svc.CreateTerritory("Degenerate", []models.GeoPoint{
		{Lat: 52.50, Lng: 13.40},
		{Lat: 999, Lng: 13.40}, // out of range, dropped
		{Lat: 52.51, Lng: 13.41},
	})
	if err != ErrInvalidPolygon {
		t.Fatalf("expected ErrInvalidPolygon, got %v", err)
	}
}

func TestClaimTerritoryRefreshesDecay(t *testing.T) {
	db := openTestDB(t)
	svc := NewTerritoryService(db)

	territory, err := svc.CreateTerritory("Hasenheide", testRing())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	first, err := svc.ClaimTerritory(territory.ID, "user-1", 1)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	second, err := svc.ClaimTerritory(territory.ID, "user-1", 48)
	if err != nil {
		t.Fatalf("re-claim failed: %v", err)
	}
	if !second.DecayAt.After(first.DecayAt) {
		t.Fatalf("re-claim should push decay out: first=%v second=%v", first.DecayAt, second.DecayAt)
	}

	var count int64
	if err := db.Model(&models.TerritoryClaim{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("re-claim must not create a second row, got %d", count)
	}
}

func TestSweepDecayedClaims(t *testing.T) {
	db := openTestDB(t)
	svc := NewTerritoryService(db)

	territory, err := svc.CreateTerritory("Tempelhofer Feld", testRing())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	expired := models.TerritoryClaim{
		TerritoryID: territory.ID,
		UserID:      "user-expired",
		ClaimedAt:   time.Now().Add(-80 * time.Hour),
		DecayAt:     time.Now().Add(-8 * time.Hour),
	}
	if err := db.Create(&expired).Error; err != nil {
		t.Fatalf("failed to create expired claim: %v", err)
	}
	if _, err := svc.ClaimTerritory(territory.ID, "user-active", 72); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	dropped, err := svc.SweepDecayedClaims()
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if dropped != 1 {
		t.Fatalf("expected one decayed claim dropped, got %d", dropped)
	}

	var remaining []models.TerritoryClaim
	if err := db.Find(&remaining).Error; err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].UserID != "user-active" {
		t.Fatalf("active claim should survive the sweep: %+v", remaining)
	}
}
