package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	ROLE_USER  = "user"
	ROLE_ADMIN = "admin"
)

type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"uniqueIndex;type:varchar(150)" json:"name" validate:"required,min=3,max=150"`
	Email      string         `gorm:"type:varchar(200)" json:"email" validate:"required,email,min=5,max=200"`
	Password   string         `gorm:"type:text" json:"-" validate:"required,min=6"`
	Role       string         `gorm:"type:varchar(50);default:'user'" json:"role" validate:"oneof=user admin"`
	Bio        string         `gorm:"type:text" json:"bio" validate:"max=1000"`
	AvatarPath string         `gorm:"type:varchar(255)" json:"avatar_path" validate:"max=255"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// CreateUser builds a validated user with a hashed password. Validation runs
// against the plaintext password, so the length rule applies to what the
// user typed and not to the fixed-size hash. The plaintext never reaches the
// database.
func CreateUser(username string, email string, password string) (*User, error) {
	u := &User{
		Name:     username,
		Email:    email,
		Password: password,
		Role:     ROLE_USER,
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}

	if err := u.SetPassword(password); err != nil {
		return nil, err
	}

	return u, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}

// IsAdmin reports whether the user carries the admin role
func (u *User) IsAdmin() bool {
	return u.Role == ROLE_ADMIN
}
