package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Article represents a submitted news article. OverallRating is the
// arithmetic mean of all rating values and is recomputed inside the same
// transaction that inserts a rating. MLScore is assigned once at submission
// time and never recomputed.
type Article struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Title           string     `gorm:"type:varchar(255)" json:"title" validate:"required,min=3,max=255"`
	Contents        string     `gorm:"type:text" json:"contents" validate:"required"`
	AuthorName      string     `gorm:"type:varchar(150)" json:"author_name" validate:"max=150"`
	PublicationDate time.Time  `gorm:"type:date" json:"publication_date"`
	OverallRating   float64    `gorm:"default:0" json:"overall_rating"`
	IsFake          bool       `gorm:"default:false" json:"is_fake"`
	SubmitterID     *uint      `gorm:"index" json:"submitter_id"`
	Submitter       *User      `gorm:"foreignKey:SubmitterID" json:"submitter,omitempty"`
	MLScore         float64    `gorm:"default:0" json:"ml_score"`
	SourceLink      string     `gorm:"type:varchar(500)" json:"source_link" validate:"max=500"`
	Categories      []Category `gorm:"many2many:article_categories;" json:"categories,omitempty"`
	Ratings         []Rating   `gorm:"foreignKey:ArticleID" json:"ratings,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Article model
func (Article) TableName() string {
	return "articles"
}

func (a *Article) Validate() error {
	v := validator.New()

	return v.Struct(a)
}

// SubmitterName returns the submitter's username or "Unknown" for articles
// whose submitter was removed. Value receiver so templates can call it on
// ranged slice elements.
func (a Article) SubmitterName() string {
	if a.Submitter == nil {
		return "Unknown"
	}
	return a.Submitter.Name
}

// CategoryList joins the preloaded category names for display.
func (a Article) CategoryList() string {
	names := make([]string, 0, len(a.Categories))
	for _, c := range a.Categories {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}
