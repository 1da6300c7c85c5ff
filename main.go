package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"cleanup-game-system/handlers"
	"cleanup-game-system/models"
	"cleanup-game-system/services"
	"cleanup-game-system/utils"
	"cleanup-game-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Litter categories available for collection tallies
var defaultTrashTypes = map[string]string{
	"plastic_bottle": "Plastic Bottle",
	"glass":          "Glass",
	"metal_can":      "Metal Can",
	"cigarette":      "Cigarette Butt",
	"paper":          "Paper",
	"organic":        "Organic Waste",
	"other":          "Other",
}

func seedTrashTypes(db *gorm.DB) error {
	for code, name := range defaultTrashTypes {
		trashType := models.TrashType{ID: uuid.NewString(), Code: code, Name: name}
		if err := db.Where("code = ?", code).FirstOrCreate(&trashType).Error; err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: utils.MaxUploadSize,
	})

	app.Use(requestid.New())
	app.Use(logger.New())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOriginsString,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders: "Origin, Content-Type, Accept, X-Requested-With, X-Request-ID",
		MaxAge:       86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Pin{},
		&models.HazardReport{},
		&models.CleanupClaim{},
		&models.CleanupVote{},
		&models.RewardGrant{},
		&models.Squad{},
		&models.SquadMember{},
		&models.Territory{},
		&models.TerritoryClaim{},
		&models.Raid{},
		&models.RaidParticipant{},
		&models.TrashType{},
		&models.Collection{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := seedTrashTypes(db); err != nil {
		log.Fatal("failed to seed trash types:", err)
	}

	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}
	if err := utils.InitPhotoStorage(); err != nil {
		log.Fatal("failed to initialize photo storage:", err)
	}

	userService := services.NewUserService(db)
	pinService := services.NewPinService(db)
	cleanupService := services.NewCleanupService(db)
	collectionService := services.NewCollectionService(db)
	squadService := services.NewSquadService(db)
	territoryService := services.NewTerritoryService(db)
	raidService := services.NewRaidService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional: backfill AI scores from the external scorer service
	if scorerURL := os.Getenv("SCORER_SERVICE_URL"); scorerURL != "" {
		scoreWorker := workers.NewScoreSyncWorker(db, cleanupService, scorerURL, os.Getenv("SCORER_SERVICE_TOKEN"))
		scoreWorker.Start(ctx)
	} else {
		log.Println("⚠️  SCORER_SERVICE_URL not set, AI score sync disabled")
	}

	territoryService.StartDecayScheduler()

	api := app.Group("/api")
	handlers.SetupUploadRoutes(api)
	handlers.SetupUserRoutes(api, userService)
	handlers.SetupLeaderboardRoutes(api, userService)
	handlers.SetupPinRoutes(api, pinService)
	handlers.SetupCleanupRoutes(api, cleanupService, pinService, userService)
	handlers.SetupCollectionRoutes(api, collectionService, userService)
	handlers.SetupSquadRoutes(api, squadService, userService)
	handlers.SetupTerritoryRoutes(api, territoryService, userService)
	handlers.SetupRaidRoutes(api, raidService, userService)

	app.Static("/uploads", "./uploads")

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Territory claim decay sweeper running (every 1m)")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
