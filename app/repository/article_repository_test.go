package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/unfake-app/unfake/app/models"
)

func TestArticleCreateWithCategories(t *testing.T) {
	db := setupTestDB(t)
	articles := NewArticleRepository(db)

	alice := createTestUser(t, db, "alice")
	politics := createTestCategory(t, db, "Politics")
	tech := createTestCategory(t, db, "Tech")

	article := &models.Article{
		Title:       "Budget vote",
		Contents:    "The vote passed.",
		SubmitterID: &alice.ID,
	}
	err := articles.Create(article, []uint{politics.ID, tech.ID})
	require.NoError(t, err)

	got, err := articles.GetByID(article.ID)
	require.NoError(t, err)
	assert.Len(t, got.Categories, 2)
	assert.Equal(t, "alice", got.SubmitterName())
}

func TestArticleCreateUnknownCategoryFails(t *testing.T) {
	db := setupTestDB(t)
	articles := NewArticleRepository(db)

	article := &models.Article{Title: "Budget vote", Contents: "The vote passed."}
	err := articles.Create(article, []uint{42})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	count, err := articles.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestArticleCreateDeduplicatesCategoryIDs(t *testing.T) {
	db := setupTestDB(t)
	articles := NewArticleRepository(db)

	politics := createTestCategory(t, db, "Politics")

	article := &models.Article{Title: "Budget vote", Contents: "The vote passed."}
	err := articles.Create(article, []uint{politics.ID, politics.ID})
	require.NoError(t, err)

	got, err := articles.GetByID(article.ID)
	require.NoError(t, err)
	assert.Len(t, got.Categories, 1)
}

func TestArticleSearchWithoutFilterMatchesList(t *testing.T) {
	db := setupTestDB(t)
	articles := NewArticleRepository(db)

	alice := createTestUser(t, db, "alice")
	createTestArticle(t, db, "First", alice)
	createTestArticle(t, db, "Second", alice)
	createTestArticle(t, db, "Third", nil)

	listed, err := articles.List()
	require.NoError(t, err)

	found, err := articles.Search(SearchFilter{})
	require.NoError(t, err)

	require.Len(t, found, len(listed))
	for i := range listed {
		assert.Equal(t, listed[i].ID, found[i].ID)
	}
}

func TestArticleSearchByCategoryWithoutDuplicateRows(t *testing.T) {
	db := setupTestDB(t)
	articles := NewArticleRepository(db)

	politics := createTestCategory(t, db, "Politics")
	economy := createTestCategory(t, db, "Economy")

	article := &models.Article{Title: "Budget vote", Contents: "The vote passed."}
	require.NoError(t, articles.Create(article, []uint{politics.ID, economy.ID}))

	other := &models.Article{Title: "Weather", Contents: "Sunny."}
	require.NoError(t, articles.Create(other, nil))

	found, err := articles.Search(SearchFilter{Category: "Politics"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, article.ID, found[0].ID)
}

func TestArticleSearchMinRatingIsInclusive(t *testing.T) {
	db := setupTestDB(t)
	articles := NewArticleRepository(db)

	low := &models.Article{Title: "Low rated", Contents: "text", OverallRating: 3.5}
	high := &models.Article{Title: "High rated", Contents: "text", OverallRating: 4.0}
	require.NoError(t, articles.Create(low, nil))
	require.NoError(t, articles.Create(high, nil))

	found, err := articles.Search(SearchFilter{MinRating: 4})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, high.ID, found[0].ID)
}

func TestArticleSearchByPublicationDate(t *testing.T) {
	db := setupTestDB(t)
	articles := NewArticleRepository(db)

	mayFirst := &models.Article{
		Title:           "May first",
		Contents:        "text",
		PublicationDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	maySecond := &models.Article{
		Title:           "May second",
		Contents:        "text",
		PublicationDate: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, articles.Create(mayFirst, nil))
	require.NoError(t, articles.Create(maySecond, nil))

	found, err := articles.Search(SearchFilter{PublishedOn: "2024-05-01"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, mayFirst.ID, found[0].ID)

	found, err = articles.Search(SearchFilter{PublishedOn: "2024-05-03"})
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = articles.Search(SearchFilter{PublishedOn: "not-a-date"})
	assert.Error(t, err)
}

func TestArticleSearchBySubmitter(t *testing.T) {
	db := setupTestDB(t)
	articles := NewArticleRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	mine := createTestArticle(t, db, "Mine", alice)
	createTestArticle(t, db, "Theirs", bob)

	found, err := articles.Search(SearchFilter{SubmitterName: "alice"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, mine.ID, found[0].ID)
}

func TestArticleSearchCombinedFilters(t *testing.T) {
	db := setupTestDB(t)
	articles := NewArticleRepository(db)

	alice := createTestUser(t, db, "alice")
	politics := createTestCategory(t, db, "Politics")

	match := &models.Article{
		Title:         "Budget vote",
		Contents:      "text",
		SubmitterID:   &alice.ID,
		OverallRating: 4.5,
	}
	require.NoError(t, articles.Create(match, []uint{politics.ID}))

	wrongRating := &models.Article{
		Title:         "Old news",
		Contents:      "text",
		SubmitterID:   &alice.ID,
		OverallRating: 2.0,
	}
	require.NoError(t, articles.Create(wrongRating, []uint{politics.ID}))

	found, err := articles.Search(SearchFilter{
		Category:      "Politics",
		MinRating:     4,
		SubmitterName: "alice",
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, match.ID, found[0].ID)
}

func TestArticleLowCredibilityAbove(t *testing.T) {
	db := setupTestDB(t)
	articles := NewArticleRepositoryWithDirection(db, CredibilityAbove)

	fakeHigh := &models.Article{Title: "Fake high", Contents: "text", IsFake: true, OverallRating: 4.0}
	fakeLow := &models.Article{Title: "Fake low", Contents: "text", IsFake: true, OverallRating: 2.0}
	realHigh := &models.Article{Title: "Real high", Contents: "text", OverallRating: 4.5}
	for _, a := range []*models.Article{fakeHigh, fakeLow, realHigh} {
		require.NoError(t, articles.Create(a, nil))
	}

	found, err := articles.LowCredibility()
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, fakeHigh.ID, found[0].ID)
}

func TestArticleLowCredibilityBelow(t *testing.T) {
	db := setupTestDB(t)
	articles := NewArticleRepositoryWithDirection(db, CredibilityBelow)

	fakeHigh := &models.Article{Title: "Fake high", Contents: "text", IsFake: true, OverallRating: 4.0}
	fakeLow := &models.Article{Title: "Fake low", Contents: "text", IsFake: true, OverallRating: 2.0}
	for _, a := range []*models.Article{fakeHigh, fakeLow} {
		require.NoError(t, articles.Create(a, nil))
	}

	found, err := articles.LowCredibility()
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, fakeLow.ID, found[0].ID)
}

func TestArticleLowCredibilityThresholdIsInclusive(t *testing.T) {
	db := setupTestDB(t)

	exact := &models.Article{Title: "Exact", Contents: "text", IsFake: true, OverallRating: 3.0}

	above := NewArticleRepositoryWithDirection(db, CredibilityAbove)
	require.NoError(t, above.Create(exact, nil))

	found, err := above.LowCredibility()
	require.NoError(t, err)
	assert.Len(t, found, 1)

	below := NewArticleRepositoryWithDirection(db, CredibilityBelow)
	found, err = below.LowCredibility()
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestArticleSetFakeFlag(t *testing.T) {
	db := setupTestDB(t)
	articles := NewArticleRepository(db)

	article := createTestArticle(t, db, "First", nil)

	require.NoError(t, articles.SetFakeFlag(article.ID, true))
	got, err := articles.GetByID(article.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFake)

	require.NoError(t, articles.SetFakeFlag(article.ID, false))
	got, err = articles.GetByID(article.ID)
	require.NoError(t, err)
	assert.False(t, got.IsFake)

	err = articles.SetFakeFlag(9999, true)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestArticleUpdateMLScore(t *testing.T) {
	db := setupTestDB(t)
	articles := NewArticleRepository(db)

	article := createTestArticle(t, db, "First", nil)

	require.NoError(t, articles.UpdateMLScore(article.ID, 3.21))
	got, err := articles.GetByID(article.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.21, got.MLScore, 1e-9)

	err = articles.UpdateMLScore(9999, 1.0)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestArticleDeleteRemovesRatingsAndCategoryLinks(t *testing.T) {
	db := setupTestDB(t)
	articles := NewArticleRepository(db)
	ratings := NewRatingRepository(db)

	alice := createTestUser(t, db, "alice")
	politics := createTestCategory(t, db, "Politics")

	article := &models.Article{Title: "Budget vote", Contents: "text", SubmitterID: &alice.ID}
	require.NoError(t, articles.Create(article, []uint{politics.ID}))
	rateArticle(t, ratings, alice, article, 4)

	require.NoError(t, articles.Delete(article.ID))

	_, err := articles.GetByID(article.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	count, err := ratings.CountByArticle(article.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	var links int64
	require.NoError(t, db.Table("article_categories").Where("article_id = ?", article.ID).Count(&links).Error)
	assert.Equal(t, int64(0), links)

	// The category itself survives.
	var categories int64
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	assert.Equal(t, int64(1), categories)
}

func TestArticleDeleteUnknown(t *testing.T) {
	db := setupTestDB(t)
	articles := NewArticleRepository(db)

	err := articles.Delete(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
