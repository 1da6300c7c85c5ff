// handlers/squad_routes.go
package handlers

import (
	"errors"

	"cleanup-game-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupSquadRoutes(api fiber.Router, squadService *services.SquadService, userService *services.UserService) {
	api.Get("/squads", func(c *fiber.Ctx) error {
		squads, err := squadService.ListSquads()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		return c.JSON(fiber.Map{"squads": squads})
	})

	api.Post("/squads", func(c *fiber.Ctx) error {
		var req struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&req); err != nil || req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name_required"})
		}
		squad, err := squadService.CreateSquad(req.Name)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"squad": squad})
	})

	api.Post("/squads/:squadId/members", func(c *fiber.Ctx) error {
		var req struct {
			UserID string `json:"userId"`
			Role   string `json:"role"`
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
		if _, err := squadService.GetSquad(c.Params("squadId")); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "squad_not_found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}

		membership, err := squadService.AddMember(c.Params("squadId"), req.UserID, req.Role)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"membership": membership})
	})
}
