// handlers/cleanup_routes.go
package handlers

import (
	"errors"
	"math"

	"cleanup-game-system/models"
	"cleanup-game-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupCleanupRoutes(api fiber.Router, cleanupService *services.CleanupService, pinService *services.PinService, userService *services.UserService) {
	api.Get("/cleanups", func(c *fiber.Ctx) error {
		cleanups, err := cleanupService.ListCleanups(c.Query("status"), c.Query("cleanerId"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		return c.JSON(fiber.Map{"cleanups": cleanups})
	})

	api.Post("/cleanups", func(c *fiber.Ctx) error {
		var req struct {
			PinID          string   `json:"pinId"`
			CleanerID      *string  `json:"cleanerId"`
			BeforePhotoURL string   `json:"beforePhotoUrl"`
			AfterPhotoURL  string   `json:"afterPhotoUrl"`
			AIScore        *float64 `json:"aiScore"`
			TrashTypeCode  string   `json:"trashTypeCode"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body"})
		}
		if req.PinID == "" || req.BeforePhotoURL == "" || req.AfterPhotoURL == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing_fields"})
		}
		if req.AIScore != nil && (math.IsNaN(*req.AIScore) || *req.AIScore < 0 || *req.AIScore > 1) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_ai_score"})
		}

		if _, err := pinService.GetPin(req.PinID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "pin_not_found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		if req.CleanerID != nil {
			if _, err := userService.GetUser(*req.CleanerID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user_not_found"})
				}
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
			}
		}

		cleanup, err := cleanupService.SubmitCleanup(services.SubmitCleanupInput{
			PinID:          req.PinID,
			CleanerID:      req.CleanerID,
			BeforePhotoURL: req.BeforePhotoURL,
			AfterPhotoURL:  req.AfterPhotoURL,
			AIScore:        req.AIScore,
			TrashTypeCode:  req.TrashTypeCode,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"cleanup": cleanup})
	})

	api.Post("/cleanups/:cleanupId/votes", func(c *fiber.Ctx) error {
		var req struct {
			VoterID string `json:"voterId"`
			Vote    string `json:"vote"`
		}
		if err := c.BodyParser(&req); err != nil || req.VoterID == "" || req.Vote == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing_fields"})
		}
		choice := models.VoteChoice(req.Vote)
		if choice != models.VoteLegit && choice != models.VoteFake {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_vote"})
		}

		vote, cleanup, err := cleanupService.RecordVote(c.Params("cleanupId"), req.VoterID, choice)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "cleanup_not_found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server_error", "message": err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"vote": vote, "cleanup": cleanup})
	})
}
