// handlers/user_routes.go
package handlers

import (
	"errors"

	"cleanup-game-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUserRoutes(api fiber.Router, userService *services.UserService) {
	api.Get("/users", func(c *fiber.Ctx) error {
		users, err := userService.ListUsers()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		return c.JSON(fiber.Map{"users": users})
	})

	api.Post("/users", func(c *fiber.Ctx) error {
		var req struct {
			Username string `json:"username"`
		}
		if err := c.BodyParser(&req); err != nil || req.Username == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username_required"})
		}
		user, err := userService.CreateUser(req.Username)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
	})

	api.Get("/users/:userId", func(c *fiber.Ctx) error {
		user, err := userService.GetUser(c.Params("userId"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user_not_found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		return c.JSON(fiber.Map{"user": user})
	})
}

func SetupLeaderboardRoutes(api fiber.Router, userService *services.UserService) {
	api.Get("/leaderboards", func(c *fiber.Ctx) error {
		scope := c.Query("scope", "global")
		leaders, err := userService.Leaderboard(50)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		return c.JSON(fiber.Map{
			"scope":   scope,
			"leaders": leaders,
		})
	})
}
