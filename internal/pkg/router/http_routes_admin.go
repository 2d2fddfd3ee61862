package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unfake-app/unfake/app/controllers"
	"github.com/unfake-app/unfake/internal/pkg/middleware"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.RequireAdmin)
	adminGroup.Get("/", controllers.HandleAdminPanel)
	adminGroup.Get("/low-credibility", controllers.HandleAdminLowCredibility)

	// Article moderation
	adminGroup.Post("/articles/fake/:id", controllers.HandleAdminMarkFake)
	adminGroup.Post("/articles/real/:id", controllers.HandleAdminMarkReal)
	adminGroup.Post("/articles/delete/:id", controllers.HandleAdminArticleDelete)

	// User management
	adminGroup.Post("/users/delete/:id", controllers.HandleAdminUserDelete)

	// Category management
	adminGroup.Post("/categories", controllers.HandleAdminCategoryCreate)
	adminGroup.Post("/categories/delete/:id", controllers.HandleAdminCategoryDelete)
}
