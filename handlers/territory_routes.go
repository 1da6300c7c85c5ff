// handlers/territory_routes.go
package handlers

import (
	"errors"

	"cleanup-game-system/models"
	"cleanup-game-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupTerritoryRoutes(api fiber.Router, territoryService *services.TerritoryService, userService *services.UserService) {
	api.Get("/territories", func(c *fiber.Ctx) error {
		territories, claims, err := territoryService.ListTerritories()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		return c.JSON(fiber.Map{"territories": territories, "claims": claims})
	})

	api.Post("/territories", func(c *fiber.Ctx) error {
		var req struct {
			Name    string            `json:"name"`
			Polygon []models.GeoPoint `json:"polygon"`
		}
		if err := c.BodyParser(&req); err != nil || req.Name == "" || len(req.Polygon) < 3 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_polygon"})
		}
		territory, err := territoryService.CreateTerritory(req.Name, req.Polygon)
		if err != nil {
			if errors.Is(err, services.ErrInvalidPolygon) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_polygon"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"territory": territory})
	})

	api.Post("/territories/:territoryId/claim", func(c *fiber.Ctx) error {
		var req struct {
			UserID     string  `json:"userId"`
			DecayHours float64 `json:"decayHours"`
		}
		if err := c.BodyParser(&req); err != nil || req.UserID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "userId_required"})
		}

		if _, err := userService.GetUser(req.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user_not_found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		territoryID := c.Params("territoryId")
		if _, err := territoryService.GetTerritory(territoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "territory_not_found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}

		claim, err := territoryService.ClaimTerritory(territoryID, req.UserID, req.DecayHours)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"claim": claim})
	})
}
