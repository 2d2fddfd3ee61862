package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/unfake-app/unfake/app/models"
	"github.com/unfake-app/unfake/internal/pkg/env"
)

// The low-credibility listing selects flagged articles on one side of a
// fixed rating threshold. The comparison direction is deliberately
// configurable (LOW_CRED_DIRECTION): "above" lists flagged articles the
// community still rates well, "below" lists flagged articles the community
// agrees are bad.
const (
	LowCredibilityThreshold = 3.0

	CredibilityAbove = "above"
	CredibilityBelow = "below"
)

// articleRepository implements the ArticleRepository interface
type articleRepository struct {
	db               *gorm.DB
	lowCredDirection string
}

// NewArticleRepository creates a new article repository instance with the
// low-credibility direction taken from the environment.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return NewArticleRepositoryWithDirection(db, env.GetEnv("LOW_CRED_DIRECTION", CredibilityAbove))
}

// NewArticleRepositoryWithDirection creates an article repository with an
// explicit low-credibility comparison direction.
func NewArticleRepositoryWithDirection(db *gorm.DB, direction string) ArticleRepository {
	if direction != CredibilityBelow {
		direction = CredibilityAbove
	}
	return &articleRepository{db: db, lowCredDirection: direction}
}

// Create persists an article together with its category links in one
// transaction. Unknown category IDs fail the whole operation.
func (r *articleRepository) Create(article *models.Article, categoryIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(categoryIDs) > 0 {
			var categories []models.Category
			if err := tx.Find(&categories, categoryIDs).Error; err != nil {
				return err
			}
			if len(categories) != len(dedupeIDs(categoryIDs)) {
				return gorm.ErrRecordNotFound
			}
			article.Categories = categories
		}
		return tx.Create(article).Error
	})
}

// GetByID retrieves an article with its categories and submitter preloaded
func (r *articleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Categories").Preload("Submitter").First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// List retrieves all articles ordered by ID ascending
func (r *articleRepository) List() ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Preload("Categories").Preload("Submitter").
		Order("articles.id ASC").Find(&articles).Error
	return articles, err
}

// Search composes the optional filter predicates into one parameterized
// query. The category join can multiply rows, so results are grouped by
// article ID; ordering is by article ID ascending.
func (r *articleRepository) Search(filter SearchFilter) ([]models.Article, error) {
	if filter.IsZero() {
		return r.List()
	}

	query := r.db.Model(&models.Article{})

	if filter.Category != "" {
		query = query.
			Joins("JOIN article_categories ON article_categories.article_id = articles.id").
			Joins("JOIN categories ON categories.id = article_categories.category_id").
			Where("categories.name = ?", filter.Category)
	}
	if filter.MinRating > 0 {
		query = query.Where("articles.overall_rating >= ?", filter.MinRating)
	}
	if filter.PublishedOn != "" {
		// Half-open day range with bound time values, so day matching
		// does not depend on how the driver formats stored dates.
		if day, err := time.Parse("2006-01-02", filter.PublishedOn); err == nil {
			query = query.Where(
				"articles.publication_date >= ? AND articles.publication_date < ?",
				day, day.AddDate(0, 0, 1),
			)
		} else {
			return nil, fmt.Errorf("invalid publication date %q: %w", filter.PublishedOn, err)
		}
	}
	if filter.SubmitterName != "" {
		query = query.
			Joins("JOIN users ON users.id = articles.submitter_id").
			Where("users.name = ?", filter.SubmitterName)
	}

	var articles []models.Article
	err := query.Group("articles.id").Order("articles.id ASC").
		Preload("Categories").Preload("Submitter").
		Find(&articles).Error
	return articles, err
}

// SetFakeFlag marks or unmarks an article as fake
func (r *articleRepository) SetFakeFlag(id uint, fake bool) error {
	result := r.db.Model(&models.Article{}).Where("id = ?", id).Update("is_fake", fake)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateMLScore stores the classifier score for an article
func (r *articleRepository) UpdateMLScore(id uint, score float64) error {
	result := r.db.Model(&models.Article{}).Where("id = ?", id).Update("ml_score", score)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// LowCredibility lists articles flagged fake whose overall rating lies on
// the configured side of the threshold.
func (r *articleRepository) LowCredibility() ([]models.Article, error) {
	op := ">="
	if r.lowCredDirection == CredibilityBelow {
		op = "<="
	}
	var articles []models.Article
	err := r.db.Where("is_fake = ?", true).
		Where(fmt.Sprintf("overall_rating %s ?", op), LowCredibilityThreshold).
		Order("articles.id ASC").
		Find(&articles).Error
	return articles, err
}

// Delete removes an article and its dependent rows in a fixed order inside
// one transaction: ratings, then category links, then the article itself.
func (r *articleRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.First(&article, id).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM article_categories WHERE article_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&article).Error
	})
}

// Count returns the total number of articles
func (r *articleRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Count(&count).Error
	return count, err
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
