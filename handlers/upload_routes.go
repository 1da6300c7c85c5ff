// handlers/upload_routes.go
package handlers

import (
	"fmt"
	"log"
	"path/filepath"

	"cleanup-game-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func SetupUploadRoutes(api fiber.Router) {
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	// Before/after cleanup photos. Goes to R2 when configured,
	// local uploads/ dir otherwise.
	api.Post("/upload", func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			log.Printf("❌ No file in upload request: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no_file_uploaded"})
		}
		if fileHeader.Size > utils.MaxUploadSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file_too_large"})
		}
		if !utils.IsAllowedPhoto(fileHeader.Filename) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_file_type"})
		}

		filename := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(fileHeader.Filename))

		if utils.PhotoStorageEnabled() {
			url, err := utils.UploadPhoto(fileHeader, "photos/"+filename)
			if err != nil {
				log.Printf("❌ Photo upload to R2 failed: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "upload_failed"})
			}
			return c.JSON(fiber.Map{"url": url})
		}

		if err := utils.SaveFile(fileHeader, utils.GetUploadPath(filename)); err != nil {
			log.Printf("❌ Photo save failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "upload_failed"})
		}
		return c.JSON(fiber.Map{"url": "/uploads/" + filename})
	})
}
