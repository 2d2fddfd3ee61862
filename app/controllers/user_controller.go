package controllers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sujit-baniya/flash"

	"github.com/unfake-app/unfake/app/repository"
	"github.com/unfake-app/unfake/internal/pkg/constants"
	"github.com/unfake-app/unfake/internal/pkg/env"
	"github.com/unfake-app/unfake/internal/pkg/usercontext"
)

const avatarSize = 256

// HandleUserProfile shows a user's public profile with their rating history.
func HandleUserProfile(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid user id")
	}

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("User not found")
	}

	ratings, err := repos.Rating.GetByUser(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch ratings")
	}

	// Resolve the rated article titles for display
	rated := make([]fiber.Map, 0, len(ratings))
	for _, r := range ratings {
		article, err := repos.Article.GetByID(r.ArticleID)
		if err != nil {
			continue
		}
		rated = append(rated, fiber.Map{
			"Article": article,
			"Rating":  r,
		})
	}

	return c.Render("user_profile", fiber.Map{
		"Title":         user.Name,
		"User":          user,
		"RatedArticles": rated,
		"Flash":         flash.Get(c),
	})
}

// HandleEditProfile lets the logged-in user change their bio and avatar.
func HandleEditProfile(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	repos := repository.GetGlobalRepositories()

	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("User not found")
	}

	if c.Method() == fiber.MethodPost {
		user.Bio = c.FormValue("bio")

		if file, err := c.FormFile("profile_pic"); err == nil && file != nil {
			avatarPath, err := saveAvatar(c)
			if err != nil {
				fm := fiber.Map{
					"type":    "error",
					"message": fmt.Sprintf("something went wrong: %s", err),
				}

				return flash.WithError(c, fm).Redirect("/profile/edit")
			}
			user.AvatarPath = avatarPath
		}

		if err := repos.User.Update(user); err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": fmt.Sprintf("something went wrong: %s", err),
			}

			return flash.WithError(c, fm).Redirect("/profile/edit")
		}

		fm := fiber.Map{
			"type":    "success",
			"message": "Profile updated.",
		}

		return flash.WithSuccess(c, fm).Redirect(fmt.Sprintf("/user/%d", user.ID))
	}

	return c.Render("edit_profile", fiber.Map{
		"Title": "Edit Profile",
		"User":  user,
		"Flash": flash.Get(c),
	})
}

// HandleChangePassword re-hashes and stores a new password for the
// logged-in user after verifying the current one.
func HandleChangePassword(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	repos := repository.GetGlobalRepositories()

	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("User not found")
	}

	if !user.CheckPassword(c.FormValue("current_password")) {
		fm := fiber.Map{
			"type":    "error",
			"message": "Current password is wrong.",
		}

		return flash.WithError(c, fm).Redirect("/profile/edit")
	}

	if err := repos.User.UpdatePassword(user.ID, c.FormValue("new_password")); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("something went wrong: %s", err),
		}

		return flash.WithError(c, fm).Redirect("/profile/edit")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Password updated.",
	}

	return flash.WithSuccess(c, fm).Redirect(fmt.Sprintf("/user/%d", user.ID))
}

// saveAvatar stores an uploaded profile picture as a square jpg under the
// avatar directory and returns its public path.
func saveAvatar(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("profile_pic")
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return "", fmt.Errorf("unsupported image: %w", err)
	}
	thumb := imaging.Fill(img, avatarSize, avatarSize, imaging.Center, imaging.Lanczos)

	dir := env.GetEnv("AVATAR_DIR", "./uploads/avatars")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.New().String() + ".jpg"
	if err := imaging.Save(thumb, filepath.Join(dir, name)); err != nil {
		return "", err
	}

	return constants.AvatarsRoute + "/" + name, nil
}
