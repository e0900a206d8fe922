package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/phantom-ledger/internal/cleaner"
)

// NewApp builds the fiber application with the batch endpoints mounted.
// The body limit covers a full batch of maximum-size files.
func NewApp(log zerolog.Logger, clean cleaner.Cleaner, maxFileMB int) *fiber.App {
	if maxFileMB <= 0 {
		maxFileMB = DefaultMaxFileMB
	}

	app := fiber.New(fiber.Config{
		AppName:   "phantom-ledger",
		BodyLimit: MaxFiles * maxFileMB << 20,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		ExposeHeaders: "Content-Disposition,X-Ledger-Summary,X-Ledger-Warnings,X-Ledger-Preview",
	}))

	h := NewHandler(log, clean, maxFileMB)
	app.Post("/process", h.HandleProcess)
	app.Get("/api/health", h.HandleHealth)

	return app
}
