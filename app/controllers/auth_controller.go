package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/unfake-app/unfake/app/models"
	"github.com/unfake-app/unfake/app/repository"
	"github.com/unfake-app/unfake/internal/pkg/middleware"
	"github.com/unfake-app/unfake/internal/pkg/session"
	"github.com/unfake-app/unfake/internal/pkg/usercontext"
)

func HandleAuthLogin(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		fm := fiber.Map{
			"type": "error",
		}

		username := c.FormValue("username")
		password := c.FormValue("password")

		userRepo := repository.GetGlobalRepositories().User
		ok, err := userRepo.Authenticate(username, password)
		if err != nil {
			fm["message"] = fmt.Sprintf("something went wrong: %s", err)

			return flash.WithError(c, fm).Redirect("/login")
		}
		if !ok {
			// notice: in production you should not inform the user
			// with detailed messages about login failures
			fm["message"] = "Invalid credentials. Try again."

			return flash.WithError(c, fm).Redirect("/login")
		}

		user, err := userRepo.GetByName(username)
		if err != nil {
			fm["message"] = fmt.Sprintf("something went wrong: %s", err)

			return flash.WithError(c, fm).Redirect("/login")
		}

		sess, err := session.GetSessionStore().Get(c)
		if err != nil {
			fm["message"] = fmt.Sprintf("something went wrong: %s", err)

			return flash.WithError(c, fm).Redirect("/login")
		}

		sess.Set(middleware.SessionKeyAuthenticated, true)
		sess.Set(middleware.SessionKeyUserID, user.ID)
		sess.Set(middleware.SessionKeyUserName, user.Name)
		sess.Set(middleware.SessionKeyIsAdmin, user.IsAdmin())

		if err := sess.Save(); err != nil {
			fm["message"] = fmt.Sprintf("something went wrong: %s", err)

			return flash.WithError(c, fm).Redirect("/login")
		}

		fm = fiber.Map{
			"type":    "success",
			"message": "Login successful!",
		}

		return flash.WithSuccess(c, fm).Redirect("/dashboard")
	}

	return c.Render("login", fiber.Map{
		"Title": "Login",
		"Flash": flash.Get(c),
	})
}

func HandleAuthLogout(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = "logged out (no sess)"

		return flash.WithError(c, fm).Redirect("/login")
	}

	if err := sess.Destroy(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "You have been logged out.",
	}

	return flash.WithSuccess(c, fm).Redirect("/")
}

func HandleAuthRegister(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		user, err := models.CreateUser(c.FormValue("username"), c.FormValue("email"), c.FormValue("password"))
		if err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": fmt.Sprintf("something went wrong: %s", err),
			}

			return flash.WithError(c, fm).Redirect("/register")
		}

		if err := repository.GetGlobalRepositories().User.Create(user); err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": "Registration failed. Username might already exist.",
			}

			return flash.WithError(c, fm).Redirect("/register")
		}

		fm := fiber.Map{
			"type":    "success",
			"message": "Registration successful! Please log in.",
		}

		return flash.WithSuccess(c, fm).Redirect("/login")
	}

	return c.Render("register", fiber.Map{
		"Title": "Register",
		"Flash": flash.Get(c),
	})
}

// HandleMyProfile redirects the logged-in user to their own profile page.
func HandleMyProfile(c *fiber.Ctx) error {
	return c.Redirect(fmt.Sprintf("/user/%d", usercontext.GetUserID(c)))
}
