package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/unfake-app/unfake/app/models"
)

func TestCategoryCreateDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	categories := NewCategoryRepository(db)

	require.NoError(t, categories.Create(&models.Category{Name: "Politics"}))

	err := categories.Create(&models.Category{Name: "Politics"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestCategoryCreateValidatesName(t *testing.T) {
	db := setupTestDB(t)
	categories := NewCategoryRepository(db)

	err := categories.Create(&models.Category{Name: ""})
	assert.Error(t, err)

	err = categories.Create(&models.Category{Name: "x"})
	assert.Error(t, err)
}

func TestCategoryGetAllOrderedByName(t *testing.T) {
	db := setupTestDB(t)
	categories := NewCategoryRepository(db)

	require.NoError(t, categories.Create(&models.Category{Name: "Tech"}))
	require.NoError(t, categories.Create(&models.Category{Name: "Economy"}))

	all, err := categories.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Economy", all[0].Name)
	assert.Equal(t, "Tech", all[1].Name)
}

func TestCategoryDeleteRemovesArticleLinks(t *testing.T) {
	db := setupTestDB(t)
	categories := NewCategoryRepository(db)
	articles := NewArticleRepository(db)

	politics := createTestCategory(t, db, "Politics")
	article := &models.Article{Title: "Budget vote", Contents: "text"}
	require.NoError(t, articles.Create(article, []uint{politics.ID}))

	require.NoError(t, categories.Delete(politics.ID))

	_, err := categories.GetByID(politics.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The article survives without the category.
	got, err := articles.GetByID(article.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Categories)
}

func TestCategoryDeleteUnknown(t *testing.T) {
	db := setupTestDB(t)
	categories := NewCategoryRepository(db)

	err := categories.Delete(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
