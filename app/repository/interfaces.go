package repository

import (
	"gorm.io/gorm"

	"github.com/unfake-app/unfake/app/models"
)

// SearchFilter carries the optional predicates of an article search. Zero
// values mean "not provided" and impose no constraint.
type SearchFilter struct {
	Category      string  // exact category name
	MinRating     float64 // inclusive lower bound on overall_rating
	PublishedOn   string  // exact publication day, formatted 2006-01-02
	SubmitterName string  // exact submitter username
}

// IsZero reports whether no predicate was provided.
func (f SearchFilter) IsZero() bool {
	return f.Category == "" && f.MinRating <= 0 && f.PublishedOn == "" && f.SubmitterName == ""
}

// TopRater is one row of the most-active-raters listing.
type TopRater struct {
	Name         string `json:"name"`
	TotalRatings int64  `json:"total_ratings"`
}

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByName(name string) (*models.User, error)
	GetIDByName(name string) (uint, error)
	Authenticate(name, password string) (bool, error)
	Update(user *models.User) error
	UpdatePassword(id uint, newPassword string) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
	TopRaters(limit int) ([]TopRater, error)
}

// ArticleRepository defines the interface for article-related database
// operations. List and Search order results by article ID ascending.
type ArticleRepository interface {
	Create(article *models.Article, categoryIDs []uint) error
	GetByID(id uint) (*models.Article, error)
	List() ([]models.Article, error)
	Search(filter SearchFilter) ([]models.Article, error)
	SetFakeFlag(id uint, fake bool) error
	UpdateMLScore(id uint, score float64) error
	LowCredibility() ([]models.Article, error)
	Delete(id uint) error
	Count() (int64, error)
}

// CategoryRepository defines the interface for category-related operations
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id uint) (*models.Category, error)
	GetByName(name string) (*models.Category, error)
	GetAll() ([]models.Category, error)
	Update(category *models.Category) error
	Delete(id uint) error
}

// RatingRepository defines the interface for rating-related operations
type RatingRepository interface {
	Create(rating *models.Rating) error
	GetByArticle(articleID uint) ([]models.Rating, error)
	GetByUser(userID uint) ([]models.Rating, error)
	CountByArticle(articleID uint) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User     UserRepository
	Article  ArticleRepository
	Category CategoryRepository
	Rating   RatingRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Article:  NewArticleRepository(db),
		Category: NewCategoryRepository(db),
		Rating:   NewRatingRepository(db),
	}
}
