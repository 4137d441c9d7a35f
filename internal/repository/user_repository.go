package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/brfservice/brf-portal-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// ErrResetConsumed is returned when a password-reset token was already used
// by the time the consuming transaction ran.
var ErrResetConsumed = errors.New("user repository: password reset already consumed")

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePasswordHash replaces the stored password hash
func (r *GormUserRepository) UpdatePasswordHash(userID uint64, hash string) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash).Error
}

// FindProfileByUserID finds the profile for a principal
func (r *GormUserRepository) FindProfileByUserID(userID uint64) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.Preload("Organization").
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile updates a profile
func (r *GormUserRepository) UpdateProfile(profile *models.UserProfile) error {
	return r.db.Save(profile).Error
}

// ListRolesByUserID lists all role assignments for a principal
func (r *GormUserRepository) ListRolesByUserID(userID uint64) ([]models.UserRole, error) {
	var roles []models.UserRole
	if err := r.db.Where("user_id = ?", userID).Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// CreatePasswordReset stores a reset token
func (r *GormUserRepository) CreatePasswordReset(reset *models.PasswordReset) error {
	return r.db.Create(reset).Error
}

// FindPasswordResetByToken finds a reset token
func (r *GormUserRepository) FindPasswordResetByToken(token string) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	if err := r.db.Where("token = ?", token).First(&reset).Error; err != nil {
		return nil, err
	}
	return &reset, nil
}

// ConsumePasswordReset marks the token used and replaces the user's password
// hash within a single transaction. The guarded update keeps the token
// single-use even under concurrent submissions.
func (r *GormUserRepository) ConsumePasswordReset(reset *models.PasswordReset, hash string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PasswordReset{}).
			Where("id = ? AND used_at IS NULL", reset.ID).
			Update("used_at", time.Now())
		if res.Error != nil {
			return fmt.Errorf("failed to mark reset used: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrResetConsumed
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", reset.UserID).
			Update("password_hash", hash).Error; err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}

		return nil
	})
}
