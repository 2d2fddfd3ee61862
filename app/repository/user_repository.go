package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/unfake-app/unfake/app/models"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user in the database
func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByName retrieves a user by their username
func (r *userRepository) GetByName(name string) (*models.User, error) {
	var user models.User
	err := r.db.Where("name = ?", name).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetIDByName resolves a username to its user ID
func (r *userRepository) GetIDByName(name string) (uint, error) {
	user, err := r.GetByName(name)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// Authenticate verifies a username and password against the stored bcrypt
// hash. An unknown username is reported as a failed check, not an error.
func (r *userRepository) Authenticate(name, password string) (bool, error) {
	user, err := r.GetByName(name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.CheckPassword(password), nil
}

// Update updates an existing user in the database
func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdatePassword re-hashes and stores a new password for the given user
func (r *userRepository) UpdatePassword(id uint, newPassword string) error {
	user, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if err := user.SetPassword(newPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return r.db.Model(user).Update("password", user.Password).Error
}

// Delete soft deletes a user by their ID. Articles and ratings the user
// created stay in place; article listings fall back to "Unknown".
func (r *userRepository) Delete(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

// List retrieves a paginated list of users
func (r *userRepository) List(offset, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error
	return users, err
}

// Count returns the total number of users
func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// TopRaters returns the users with the most ratings, busiest first
func (r *userRepository) TopRaters(limit int) ([]TopRater, error) {
	var raters []TopRater
	err := r.db.Model(&models.Rating{}).
		Select("users.name AS name, COUNT(ratings.id) AS total_ratings").
		Joins("JOIN users ON users.id = ratings.user_id").
		Group("users.name").
		Order("total_ratings DESC").
		Limit(limit).
		Scan(&raters).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load top raters: %w", err)
	}
	return raters, nil
}
