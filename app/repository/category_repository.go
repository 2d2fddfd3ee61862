package repository

import (
	"gorm.io/gorm"

	"github.com/unfake-app/unfake/app/models"
)

// categoryRepository implements the CategoryRepository interface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create creates a new category. A name collision surfaces as
// gorm.ErrDuplicatedKey via the unique index on the name column.
func (r *categoryRepository) Create(category *models.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	return r.db.Create(category).Error
}

// GetByID retrieves a category by its ID
func (r *categoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetByName retrieves a category by its unique name
func (r *categoryRepository) GetByName(name string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("name = ?", name).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetAll retrieves all categories ordered by name
func (r *categoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// Update updates an existing category
func (r *categoryRepository) Update(category *models.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	return r.db.Save(category).Error
}

// Delete removes a category and its article links in one transaction
func (r *categoryRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM article_categories WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}
