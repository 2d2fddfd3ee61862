package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Rating is one user's verdict on one article. The composite unique index
// guarantees at most one rating per (user, article) pair at the storage
// layer; a second insert fails with a duplicate-key error.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_article" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty" validate:"-"`
	ArticleID uint      `gorm:"not null;uniqueIndex:idx_user_article" json:"article_id"`
	Value     int       `gorm:"not null;check:value >= 1 AND value <= 5" json:"value" validate:"required,min=1,max=5"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Rating model
func (Rating) TableName() string {
	return "ratings"
}

func (r *Rating) Validate() error {
	v := validator.New()

	return v.Struct(r)
}
