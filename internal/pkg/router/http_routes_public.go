package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unfake-app/unfake/app/controllers"
	"github.com/unfake-app/unfake/internal/pkg/constants"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Get(constants.PublicRoute, controllers.HandleHome)

	app.Get("/login", controllers.HandleAuthLogin)
	app.Post("/login", controllers.HandleAuthLogin)
	app.Get("/logout", controllers.HandleAuthLogout)
	app.Get("/register", controllers.HandleAuthRegister)
	app.Post("/register", controllers.HandleAuthRegister)

	app.Get("/search", controllers.HandleSearch)
	app.Get("/top-raters", controllers.HandleTopRaters)
	app.Get("/article/:id", controllers.HandleArticleDetail)
	app.Get("/user/:id", controllers.HandleUserProfile)
}
