package main

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"accounthub/app/auth"
	"accounthub/app/config"
	"accounthub/app/database"
	"accounthub/app/handlers"
	"accounthub/app/middleware"
	"accounthub/app/platform/lifecycle"
)

const sweepInterval = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	issuer, err := auth.NewIssuer(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// The sweeps also run standalone via the CLI for external schedulers;
	// this ticker covers deployments without one.
	go func() {
		sweeper := lifecycle.NewSweeper(db, cfg)
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()
			if warned, err := sweeper.WarnExpiring(now); err != nil {
				log.Errorf("warning sweep failed: %v", err)
			} else {
				log.Infof("warning sweep sent %d notices", warned)
			}
			if suspended, err := sweeper.SuspendExpired(now); err != nil {
				log.Errorf("suspend sweep failed: %v", err)
			} else {
				log.Infof("suspend sweep suspended %d accounts", suspended)
			}
		}
	}()

	app := fiber.New()

	app.Use(compress.New())
	app.Use(helmet.New())
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(healthcheck.New())

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("config", cfg)
		c.Locals("db", db)
		c.Locals("auth", issuer)
		return c.Next()
	})

	app.Post("/register", handlers.Register)
	app.Post("/check-username", handlers.CheckUsername)
	app.Post("/check-email", handlers.CheckEmail)
	app.Post("/login", handlers.Login)
	app.Get("/verify-email/:token?", handlers.VerifyEmail)
	app.Post("/forgot-password", handlers.ForgotPassword)
	app.Post("/reset-password/:token?", handlers.ResetPassword)
	app.Post("/refresh-token/:token?", handlers.RefreshToken)

	mails := app.Group("/mails", middleware.AuthMiddleware)
	mails.Get("/resend-verification-email/:token?", handlers.ResendVerificationEmail)

	profile := app.Group("/profile", middleware.AuthMiddleware)
	profile.Post("/update", handlers.UpdateProfile)
	profile.Get("/get-profile", handlers.GetProfile)
	profile.Post("/upload-profile-picture", handlers.UploadProfilePicture)
	profile.Post("/delete-profile-picture", handlers.DeleteProfilePicture)

	app.Use(func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	log.Fatal(app.Listen(fmt.Sprintf(":%d", cfg.ServerPort)))
}
