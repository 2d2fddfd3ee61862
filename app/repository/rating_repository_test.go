package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unfake-app/unfake/app/models"
)

func TestRatingCreateRecomputesOverallRating(t *testing.T) {
	db := setupTestDB(t)
	ratings := NewRatingRepository(db)
	articles := NewArticleRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	article := createTestArticle(t, db, "First", alice)

	rateArticle(t, ratings, alice, article, 5)
	got, err := articles.GetByID(article.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, got.OverallRating, 1e-9)

	rateArticle(t, ratings, bob, article, 3)
	got, err = articles.GetByID(article.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, got.OverallRating, 1e-9)

	// A value equal to the current mean leaves the mean unchanged.
	rateArticle(t, ratings, carol, article, 4)
	got, err = articles.GetByID(article.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, got.OverallRating, 1e-9)
}

func TestRatingCreateDuplicateRejected(t *testing.T) {
	db := setupTestDB(t)
	ratings := NewRatingRepository(db)
	articles := NewArticleRepository(db)

	alice := createTestUser(t, db, "alice")
	article := createTestArticle(t, db, "First", alice)

	rateArticle(t, ratings, alice, article, 5)

	err := ratings.Create(&models.Rating{
		UserID:    alice.ID,
		ArticleID: article.ID,
		Value:     1,
		Comment:   "changed my mind",
	})
	require.ErrorIs(t, err, ErrDuplicateRating)

	// The rejected rating left no trace: same count, same mean.
	count, err := ratings.CountByArticle(article.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := articles.GetByID(article.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, got.OverallRating, 1e-9)
}

func TestRatingCreateRejectsOutOfRangeValues(t *testing.T) {
	db := setupTestDB(t)
	ratings := NewRatingRepository(db)

	alice := createTestUser(t, db, "alice")
	article := createTestArticle(t, db, "First", alice)

	for _, value := range []int{0, -1, 6} {
		err := ratings.Create(&models.Rating{
			UserID:    alice.ID,
			ArticleID: article.ID,
			Value:     value,
		})
		assert.Error(t, err, "value %d must be rejected", value)
	}

	count, err := ratings.CountByArticle(article.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRatingCreateUnknownArticleRollsBack(t *testing.T) {
	db := setupTestDB(t)
	ratings := NewRatingRepository(db)

	alice := createTestUser(t, db, "alice")

	err := ratings.Create(&models.Rating{
		UserID:    alice.ID,
		ArticleID: 9999,
		Value:     3,
	})
	require.Error(t, err)

	count, err := ratings.CountByArticle(9999)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRatingGetByArticlePreloadsUsers(t *testing.T) {
	db := setupTestDB(t)
	ratings := NewRatingRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	article := createTestArticle(t, db, "First", alice)

	rateArticle(t, ratings, alice, article, 5)
	rateArticle(t, ratings, bob, article, 2)

	got, err := ratings.GetByArticle(article.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	names := []string{got[0].User.Name, got[1].User.Name}
	assert.ElementsMatch(t, []string{"alice", "bob"}, names)
}

func TestRatingGetByUser(t *testing.T) {
	db := setupTestDB(t)
	ratings := NewRatingRepository(db)

	alice := createTestUser(t, db, "alice")
	first := createTestArticle(t, db, "First", alice)
	second := createTestArticle(t, db, "Second", alice)

	rateArticle(t, ratings, alice, first, 4)
	rateArticle(t, ratings, alice, second, 2)

	got, err := ratings.GetByUser(alice.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
