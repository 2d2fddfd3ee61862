package controllers

import (
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/unfake-app/unfake/app/models"
	"github.com/unfake-app/unfake/app/repository"
	"github.com/unfake-app/unfake/app/service"
	"github.com/unfake-app/unfake/internal/pkg/classifier"
	"github.com/unfake-app/unfake/internal/pkg/statistics"
	"github.com/unfake-app/unfake/internal/pkg/usercontext"
)

var articleService *service.ArticleService

// InitializeArticleController wires the article service with the shared
// repositories and the process-wide classifier. A classifier that cannot be
// loaded or trained is a fatal startup error.
func InitializeArticleController() {
	scorer, err := classifier.Default()
	if err != nil {
		log.Fatalf("Failed to initialize classifier: %v", err)
	}
	articleService = service.NewArticleService(repository.GetGlobalRepositories().Article, scorer)
}

func HandleHome(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{
		"Title": "Unfake",
		"Flash": flash.Get(c),
	})
}

// HandleDashboard lists all articles with their ratings and comments.
func HandleDashboard(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	repos := repository.GetGlobalRepositories()

	articles, err := repos.Article.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch articles")
	}

	comments := make(map[uint][]models.Rating, len(articles))
	for _, article := range articles {
		ratings, err := repos.Rating.GetByArticle(article.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch ratings")
		}
		comments[article.ID] = ratings
	}

	return c.Render("dashboard", fiber.Map{
		"Title":    "Dashboard",
		"Username": userCtx.Username,
		"IsAdmin":  userCtx.IsAdmin,
		"Articles": articles,
		"Comments": comments,
		"Flash":    flash.Get(c),
	})
}

// HandleArticleDetail shows one article with its categories and ratings.
func HandleArticleDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid article id")
	}

	repos := repository.GetGlobalRepositories()
	article, err := repos.Article.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Article not found")
	}

	ratings, err := repos.Rating.GetByArticle(article.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch ratings")
	}

	return c.Render("article_detail", fiber.Map{
		"Title":   article.Title,
		"Article": article,
		"Ratings": ratings,
		"Flash":   flash.Get(c),
	})
}

// HandleSubmitArticle renders the submission form and accepts new articles.
// The classifier runs exactly once per accepted submission.
func HandleSubmitArticle(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	if c.Method() == fiber.MethodPost {
		authorName := c.FormValue("author_name")
		if authorName == "" {
			authorName = usercontext.GetUsername(c)
		}

		var categoryIDs []uint
		if raw := c.FormValue("category_id"); raw != "" {
			catID, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				fm := fiber.Map{
					"type":    "error",
					"message": "Invalid category.",
				}

				return flash.WithError(c, fm).Redirect("/submit-article")
			}
			categoryIDs = append(categoryIDs, uint(catID))
		}

		submitterID := usercontext.GetUserID(c)
		article, err := articleService.Submit(service.SubmitArticleInput{
			Title:       c.FormValue("title"),
			Contents:    c.FormValue("contents"),
			AuthorName:  authorName,
			SourceLink:  c.FormValue("source_link"),
			SubmitterID: &submitterID,
			CategoryIDs: categoryIDs,
		})
		if err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": fmt.Sprintf("something went wrong: %s", err),
			}

			return flash.WithError(c, fm).Redirect("/submit-article")
		}

		fm := fiber.Map{
			"type":    "success",
			"message": fmt.Sprintf("New article submitted! ML Score: %.2f", article.MLScore),
		}

		return flash.WithSuccess(c, fm).Redirect("/dashboard")
	}

	categories, err := repos.Category.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch categories")
	}

	return c.Render("submit_article", fiber.Map{
		"Title":      "Submit Article",
		"Categories": categories,
		"Flash":      flash.Get(c),
	})
}

// HandleRateArticle records one rating per user per article and refreshes
// the cached rater statistics.
func HandleRateArticle(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	articleID, err := strconv.ParseUint(c.FormValue("article_id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid article id")
	}
	value, err := strconv.Atoi(c.FormValue("rating_value"))
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Invalid rating value.",
		}

		return flash.WithError(c, fm).Redirect("/dashboard")
	}

	rating := &models.Rating{
		UserID:    userCtx.UserID,
		ArticleID: uint(articleID),
		Value:     value,
		Comment:   c.FormValue("comment"),
	}

	err = repository.GetGlobalRepositories().Rating.Create(rating)
	if err == repository.ErrDuplicateRating {
		fm := fiber.Map{
			"type":    "error",
			"message": "You have already rated this article!",
		}

		return flash.WithError(c, fm).Redirect("/dashboard")
	}
	if err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("something went wrong: %s", err),
		}

		return flash.WithError(c, fm).Redirect("/dashboard")
	}

	go statistics.UpdateTopRatersCache()

	fm := fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("Article %d rated %d!", articleID, value),
	}

	return flash.WithSuccess(c, fm).Redirect("/dashboard")
}

// HandleSearch runs the dynamic article search with any subset of filters.
func HandleSearch(c *fiber.Ctx) error {
	filter := repository.SearchFilter{
		Category:      c.Query("category"),
		PublishedOn:   c.Query("publication_date"),
		SubmitterName: c.Query("username"),
	}
	if raw := c.Query("min_rating"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinRating = v
		}
	}

	results, err := repository.GetGlobalRepositories().Article.Search(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Search failed")
	}

	return c.Render("search", fiber.Map{
		"Title":   "Search",
		"Results": results,
		"Flash":   flash.Get(c),
	})
}

// HandleTopRaters shows the most active raters from the cached snapshot.
func HandleTopRaters(c *fiber.Ctx) error {
	return c.Render("top_raters", fiber.Map{
		"Title":  "Top Raters",
		"Raters": statistics.GetTopRaters(),
		"Flash":  flash.Get(c),
	})
}
