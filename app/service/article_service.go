package service

import (
	"strings"
	"time"

	"github.com/unfake-app/unfake/app/models"
	"github.com/unfake-app/unfake/app/repository"
)

// Scorer produces a 0-5 credibility score for an article's text and source
// link. Satisfied by *classifier.Classifier.
type Scorer interface {
	Score(text, link string) (float64, error)
}

// ArticleService owns article submission: it invokes the scorer exactly
// once per submission and persists the article with its category links.
type ArticleService struct {
	articles repository.ArticleRepository
	scorer   Scorer
}

// NewArticleService creates an article service from injected dependencies.
func NewArticleService(articles repository.ArticleRepository, scorer Scorer) *ArticleService {
	return &ArticleService{articles: articles, scorer: scorer}
}

// SubmitArticleInput carries the fields of a new article submission.
type SubmitArticleInput struct {
	Title       string
	Contents    string
	AuthorName  string
	SourceLink  string
	SubmitterID *uint
	CategoryIDs []uint
}

// Submit validates the input, scores it, and persists the article. The
// score is computed once here and never recomputed afterwards.
func (s *ArticleService) Submit(in SubmitArticleInput) (*models.Article, error) {
	article := &models.Article{
		Title:           strings.TrimSpace(in.Title),
		Contents:        in.Contents,
		AuthorName:      strings.TrimSpace(in.AuthorName),
		PublicationDate: time.Now().Truncate(24 * time.Hour),
		SubmitterID:     in.SubmitterID,
		SourceLink:      strings.TrimSpace(in.SourceLink),
	}
	if err := article.Validate(); err != nil {
		return nil, err
	}

	score, err := s.scorer.Score(article.Contents, article.SourceLink)
	if err != nil {
		return nil, err
	}
	article.MLScore = score

	if err := s.articles.Create(article, in.CategoryIDs); err != nil {
		return nil, err
	}
	return article, nil
}
