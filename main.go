package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/unfake-app/unfake/app/repository"
	"github.com/unfake-app/unfake/internal/pkg/cache"
	"github.com/unfake-app/unfake/internal/pkg/constants"
	"github.com/unfake-app/unfake/internal/pkg/database"
	"github.com/unfake-app/unfake/internal/pkg/env"
	"github.com/unfake-app/unfake/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(recover.New(), logger.New())
	app.Get("/metrics", monitor.New())

	// static uploads (avatars)
	app.Static(constants.UploadsRoute, "./"+constants.UploadsPath)

	// ROUTER
	router.InstallRouter(app)

	return app
}
