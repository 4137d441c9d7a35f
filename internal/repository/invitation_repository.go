package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/brfservice/brf-portal-api/internal/database"
	"github.com/brfservice/brf-portal-api/internal/models"
	"gorm.io/gorm"
)

// GormInvitationRepository is a GORM implementation of InvitationRepository
type GormInvitationRepository struct {
	db *gorm.DB
}

var (
	// ErrInvitationConsumed is returned when the invitation was accepted by the
	// time the registration transaction ran.
	ErrInvitationConsumed = errors.New("invitation repository: invitation already accepted")
	// ErrCreateUser is returned when creating the user fails inside the registration transaction.
	ErrCreateUser = errors.New("invitation repository: create user failed")
	// ErrCreateProfile is returned when creating the profile fails inside the registration transaction.
	ErrCreateProfile = errors.New("invitation repository: create profile failed")
	// ErrCreateRole is returned when creating the role assignment fails inside the registration transaction.
	ErrCreateRole = errors.New("invitation repository: create role assignment failed")
)

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &GormInvitationRepository{db: db}
}

// Create creates a new invitation
func (r *GormInvitationRepository) Create(invitation *models.Invitation) error {
	return r.db.Create(invitation).Error
}

// FindByToken finds an invitation by token with its organization preloaded
func (r *GormInvitationRepository) FindByToken(token string) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.Preload("Organization").
		Where("token = ?", token).
		First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// ListByOrganization lists an organization's invitations, newest first
func (r *GormInvitationRepository) ListByOrganization(organizationID uint64) ([]models.Invitation, error) {
	var invitations []models.Invitation
	if err := r.db.Scopes(database.ForOrganization(organizationID)).
		Order("created_at DESC").
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

// AcceptWithRegistration creates the user, profile and role assignment and
// marks the invitation accepted atomically. The accepted-mark is a guarded
// update so a token can only ever be consumed once.
func (r *GormInvitationRepository) AcceptWithRegistration(invitation *models.Invitation, user *models.User, profile *models.UserProfile, role *models.UserRole) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Invitation{}).
			Where("id = ? AND accepted_at IS NULL", invitation.ID).
			Update("accepted_at", time.Now())
		if res.Error != nil {
			return fmt.Errorf("failed to mark invitation accepted: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInvitationConsumed
		}

		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		profile.UserID = user.ID
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateProfile, err)
		}

		role.UserID = user.ID
		if err := tx.Create(role).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateRole, err)
		}

		return nil
	})
}
