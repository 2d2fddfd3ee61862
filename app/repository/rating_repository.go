package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/unfake-app/unfake/app/models"
	"github.com/unfake-app/unfake/internal/pkg/database"
)

// ErrDuplicateRating is returned when a user tries to rate the same article
// a second time. The first rating stays untouched.
var ErrDuplicateRating = errors.New("user has already rated this article")

// ratingRepository implements the RatingRepository interface
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository instance
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create inserts a rating and recomputes the article's overall rating as
// the mean of all its rating values, inside one transaction. A duplicate
// (user, article) pair is rejected by the unique index before anything is
// written, so a rejected rating has no side effects. Transient lock errors
// are retried a bounded number of times.
func (r *ratingRepository) Create(rating *models.Rating) error {
	if err := rating.Validate(); err != nil {
		return err
	}

	return database.WithRetry(func() error {
		return r.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(rating).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrDuplicateRating
				}
				return err
			}

			var avg float64
			err := tx.Model(&models.Rating{}).
				Where("article_id = ?", rating.ArticleID).
				Select("COALESCE(AVG(value), 0)").
				Scan(&avg).Error
			if err != nil {
				return err
			}

			result := tx.Model(&models.Article{}).
				Where("id = ?", rating.ArticleID).
				Update("overall_rating", avg)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		})
	})
}

// GetByArticle retrieves all ratings for an article, newest first, with the
// rating users preloaded for display.
func (r *ratingRepository) GetByArticle(articleID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.Preload("User").Where("article_id = ?", articleID).
		Order("created_at DESC").Find(&ratings).Error
	return ratings, err
}

// GetByUser retrieves all ratings a user has given, newest first
func (r *ratingRepository) GetByUser(userID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&ratings).Error
	return ratings, err
}

// CountByArticle returns the number of ratings an article has received
func (r *ratingRepository) CountByArticle(articleID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Rating{}).Where("article_id = ?", articleID).Count(&count).Error
	return count, err
}
