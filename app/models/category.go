package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;type:varchar(100)" json:"name" validate:"required,min=2,max=100"`
	Description string    `gorm:"type:text" json:"description"`
	Articles    []Article `gorm:"many2many:article_categories;" json:"articles,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

func (c *Category) Validate() error {
	v := validator.New()

	return v.Struct(c)
}
