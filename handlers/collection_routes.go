// handlers/collection_routes.go
package handlers

import (
	"errors"

	"cleanup-game-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupCollectionRoutes(api fiber.Router, collectionService *services.CollectionService, userService *services.UserService) {
	api.Get("/collections/:userId", func(c *fiber.Ctx) error {
		userID := c.Params("userId")
		if _, err := userService.GetUser(userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user_not_found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		collections, err := collectionService.ListForUser(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		return c.JSON(fiber.Map{"collections": collections})
	})

	api.Post("/collections/:userId", func(c *fiber.Ctx) error {
		var req struct {
			TrashTypeCode string `json:"trashTypeCode"`
			Count         *int64 `json:"count"`
		}
		if err := c.BodyParser(&req); err != nil || req.TrashTypeCode == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "trashTypeCode_required"})
		}

		userID := c.Params("userId")
		if _, err := userService.GetUser(userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user_not_found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}

		count := int64(1)
		if req.Count != nil && *req.Count > 0 {
			count = *req.Count
		}
		record, err := collectionService.Increment(userID, req.TrashTypeCode, count)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "trash_type_not_found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"collection": record})
	})
}
