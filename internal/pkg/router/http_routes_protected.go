package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unfake-app/unfake/app/controllers"
	"github.com/unfake-app/unfake/internal/pkg/middleware"
)

func (h HttpRouter) registerProtectedRoutes(app *fiber.App) {
	authGroup := app.Group("/", middleware.RequireAuth)
	authGroup.Get("/dashboard", controllers.HandleDashboard)
	authGroup.Post("/rate", controllers.HandleRateArticle)
	authGroup.Get("/submit-article", controllers.HandleSubmitArticle)
	authGroup.Post("/submit-article", controllers.HandleSubmitArticle)
	authGroup.Get("/my-profile", controllers.HandleMyProfile)
	authGroup.Get("/profile/edit", controllers.HandleEditProfile)
	authGroup.Post("/profile/edit", controllers.HandleEditProfile)
	authGroup.Post("/profile/password", controllers.HandleChangePassword)
}
