// handlers/raid_routes.go
package handlers

import (
	"errors"
	"time"

	"cleanup-game-system/services"
	"cleanup-game-system/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRaidRoutes(api fiber.Router, raidService *services.RaidService, userService *services.UserService) {
	api.Get("/raids", func(c *fiber.Ctx) error {
		raids, participants, err := raidService.ListRaids()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		return c.JSON(fiber.Map{"raids": raids, "participants": participants})
	})

	api.Post("/raids", func(c *fiber.Ctx) error {
		var req struct {
			Name     string     `json:"name"`
			Lat      *float64   `json:"lat"`
			Lng      *float64   `json:"lng"`
			StartsAt *time.Time `json:"startsAt"`
			EndsAt   *time.Time `json:"endsAt"`
		}
		if err := c.BodyParser(&req); err != nil || req.Name == "" || req.StartsAt == nil || req.EndsAt == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing_fields"})
		}
		if req.Lat == nil || req.Lng == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_location"})
		}
		location, ok := utils.NormalizeLatLng(*req.Lat, *req.Lng)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_location"})
		}

		raid, err := raidService.CreateRaid(req.Name, location, *req.StartsAt, *req.EndsAt)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"raid": raid})
	})

	api.Post("/raids/:raidId/join", func(c *fiber.Ctx) error {
		var req struct {
			UserID string `json:"userId"`
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
		raidID := c.Params("raidId")
		if _, err := raidService.GetRaid(raidID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "raid_not_found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}

		participant, err := raidService.JoinRaid(raidID, req.UserID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"participant": participant})
	})
}
