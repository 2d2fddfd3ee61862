package repository

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/unfake-app/unfake/app/models"
)

// setupTestDB opens a fresh in-memory database with the same error
// translation settings as production, so duplicate-key failures surface as
// gorm.ErrDuplicatedKey here too.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.Category{},
		&models.Rating{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user, err := models.CreateUser(name, name+"@example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, db.Create(user).Error)

	return user
}

func createTestArticle(t *testing.T, db *gorm.DB, title string, submitter *models.User) *models.Article {
	t.Helper()

	article := &models.Article{
		Title:    title,
		Contents: "contents of " + title,
	}
	if submitter != nil {
		article.SubmitterID = &submitter.ID
	}
	require.NoError(t, db.Create(article).Error)

	return article
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)

	return category
}

func rateArticle(t *testing.T, repo RatingRepository, user *models.User, article *models.Article, value int) {
	t.Helper()

	err := repo.Create(&models.Rating{
		UserID:    user.ID,
		ArticleID: article.ID,
		Value:     value,
		Comment:   fmt.Sprintf("%d stars", value),
	})
	require.NoError(t, err)
}
