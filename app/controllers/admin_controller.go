package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/unfake-app/unfake/app/models"
	"github.com/unfake-app/unfake/app/repository"
)

// HandleAdminPanel renders the moderation overview: articles, users and
// categories with their management actions.
func HandleAdminPanel(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	articles, err := repos.Article.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch articles")
	}
	users, err := repos.User.List(0, 200)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch users")
	}
	categories, err := repos.Category.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch categories")
	}

	return c.Render("admin", fiber.Map{
		"Title":      "Admin",
		"Articles":   articles,
		"Users":      users,
		"Categories": categories,
		"Flash":      flash.Get(c),
	})
}

// HandleAdminMarkFake flags an article as fake.
func HandleAdminMarkFake(c *fiber.Ctx) error {
	return setFakeFlag(c, true, "marked as fake")
}

// HandleAdminMarkReal clears the fake flag on an article.
func HandleAdminMarkReal(c *fiber.Ctx) error {
	return setFakeFlag(c, false, "marked as real")
}

func setFakeFlag(c *fiber.Ctx, fake bool, verb string) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid article id")
	}

	err = repository.GetGlobalRepositories().Article.SetFakeFlag(uint(id), fake)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fm := fiber.Map{
			"type":    "error",
			"message": "Article not found.",
		}

		return flash.WithError(c, fm).Redirect("/admin")
	}
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("something went wrong: %s", err),
		}

		return flash.WithError(c, fm).Redirect("/admin")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("Article %d %s.", id, verb),
	}

	return flash.WithSuccess(c, fm).Redirect("/admin")
}

// HandleAdminArticleDelete removes an article with its ratings and
// category links.
func HandleAdminArticleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid article id")
	}

	err = repository.GetGlobalRepositories().Article.Delete(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fm := fiber.Map{
			"type":    "error",
			"message": "Article not found.",
		}

		return flash.WithError(c, fm).Redirect("/admin")
	}
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("something went wrong: %s", err),
		}

		return flash.WithError(c, fm).Redirect("/admin")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("Article %d deleted.", id),
	}

	return flash.WithSuccess(c, fm).Redirect("/admin")
}

// HandleAdminUserDelete removes a user account.
func HandleAdminUserDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid user id")
	}

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByID(uint(id))
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "User not found.",
		}

		return flash.WithError(c, fm).Redirect("/admin")
	}

	if err := repos.User.Delete(user.ID); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("something went wrong: %s", err),
		}

		return flash.WithError(c, fm).Redirect("/admin")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("User '%s' removed.", user.Name),
	}

	return flash.WithSuccess(c, fm).Redirect("/admin")
}

// HandleAdminCategoryCreate adds a new category.
func HandleAdminCategoryCreate(c *fiber.Ctx) error {
	category := &models.Category{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
	}

	err := repository.GetGlobalRepositories().Category.Create(category)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("Category '%s' already exists.", category.Name),
		}

		return flash.WithError(c, fm).Redirect("/admin")
	}
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("something went wrong: %s", err),
		}

		return flash.WithError(c, fm).Redirect("/admin")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("Category '%s' added.", category.Name),
	}

	return flash.WithSuccess(c, fm).Redirect("/admin")
}

// HandleAdminCategoryDelete removes a category and its article links.
func HandleAdminCategoryDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid category id")
	}

	err = repository.GetGlobalRepositories().Category.Delete(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fm := fiber.Map{
			"type":    "error",
			"message": "Category not found.",
		}

		return flash.WithError(c, fm).Redirect("/admin")
	}
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("something went wrong: %s", err),
		}

		return flash.WithError(c, fm).Redirect("/admin")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Category removed.",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin")
}

// HandleAdminLowCredibility lists flagged articles on the configured side
// of the rating threshold.
func HandleAdminLowCredibility(c *fiber.Ctx) error {
	articles, err := repository.GetGlobalRepositories().Article.LowCredibility()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch articles")
	}

	return c.Render("low_credibility", fiber.Map{
		"Title":    "Low Credibility",
		"Articles": articles,
		"Flash":    flash.Get(c),
	})
}
