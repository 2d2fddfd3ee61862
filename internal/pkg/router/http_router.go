package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unfake-app/unfake/app/controllers"
	"github.com/unfake-app/unfake/internal/pkg/middleware"
	"github.com/unfake-app/unfake/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Initialize the article controller with repositories and classifier
	controllers.InitializeArticleController()

	h.registerPublicRoutes(app)
	h.registerProtectedRoutes(app)
	h.registerAdminRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
