// handlers/pin_routes.go
package handlers

import (
	"errors"
	"strconv"

	"cleanup-game-system/models"
	"cleanup-game-system/services"
	"cleanup-game-system/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validSeverities = map[models.PinSeverity]bool{
	models.PinSeverityYellow: true,
	models.PinSeverityOrange: true,
	models.PinSeverityRed:    true,
}

func SetupPinRoutes(api fiber.Router, pinService *services.PinService) {
	api.Get("/pins", func(c *fiber.Ctx) error {
		var bbox *utils.BBox
		if c.Query("minLat") != "" {
			minLat, err1 := strconv.ParseFloat(c.Query("minLat"), 64)
			minLng, err2 := strconv.ParseFloat(c.Query("minLng"), 64)
			maxLat, err3 := strconv.ParseFloat(c.Query("maxLat"), 64)
			maxLng, err4 := strconv.ParseFloat(c.Query("maxLng"), 64)
			if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_bbox"})
			}
			bbox = &utils.BBox{MinLat: minLat, MinLng: minLng, MaxLat: maxLat, MaxLng: maxLng}
		}

		pins, err := pinService.ListPins(bbox)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		return c.JSON(fiber.Map{"pins": pins})
	})

	api.Post("/pins", func(c *fiber.Ctx) error {
		var req struct {
			ReporterID *string  `json:"reporterId"`
			Severity   string   `json:"severity"`
			Lat        *float64 `json:"lat"`
			Lng        *float64 `json:"lng"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body"})
		}
		if req.Severity == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "severity_required"})
		}
		if !validSeverities[models.PinSeverity(req.Severity)] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_severity"})
		}
		if req.Lat == nil || req.Lng == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_location"})
		}
		location, ok := utils.NormalizeLatLng(*req.Lat, *req.Lng)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_location"})
		}

		pin, err := pinService.CreatePin(req.ReporterID, models.PinSeverity(req.Severity), location)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"pin": pin})
	})

	api.Post("/pins/:pinId/hazard", func(c *fiber.Ctx) error {
		var req struct {
			ReporterID *string `json:"reporterId"`
			HazardType string  `json:"hazardType"`
			Notes      string  `json:"notes"`
		}
		if err := c.BodyParser(&req); err != nil || req.HazardType == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "hazardType_required"})
		}

		pinID := c.Params("pinId")
		if _, err := pinService.GetPin(pinID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "pin_not_found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}

		report, err := pinService.ReportHazard(pinID, req.ReporterID, req.HazardType, req.Notes)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		pin, err := pinService.GetPin(pinID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"report": report, "pin": pin})
	})
}
