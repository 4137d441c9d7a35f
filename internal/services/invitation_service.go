package services

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/brfservice/brf-portal-api/internal/constants"
	"github.com/brfservice/brf-portal-api/internal/models"
	"github.com/brfservice/brf-portal-api/internal/repository"
	"github.com/brfservice/brf-portal-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidInvitation  = errors.New("invitation is invalid, expired or already accepted")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidRole        = errors.New("invalid role")
	ErrNameRequired       = errors.New("first and last name are required")
	ErrEmailTaken         = errors.New("an account already exists for this email")
	ErrFailedToCreateUser = errors.New("failed to create user account")
)

// InvitationService handles the invitation lifecycle: an admin issues a
// single-use token, the invitee's registration consumes it exactly once.
type InvitationService struct {
	invitationRepo repository.InvitationRepository
	userRepo       repository.UserRepository
}

// NewInvitationService creates a new InvitationService
func NewInvitationService(invitationRepo repository.InvitationRepository, userRepo repository.UserRepository) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
	}
}

// CreateInvitationInput represents input for issuing an invitation
type CreateInvitationInput struct {
	Email          string
	OrganizationID uint64
	Role           models.Role
	InvitedBy      uint64
}

// Create issues a new invitation with a fresh token and the default expiry.
func (s *InvitationService) Create(input CreateInvitationInput) (*models.Invitation, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	switch input.Role {
	case models.RoleBrfAdmin, models.RoleBrfUser:
	default:
		// Superadmins are provisioned directly, never via invitation.
		return nil, ErrInvalidRole
	}

	inviter := input.InvitedBy
	invitation := &models.Invitation{
		Email:          email,
		OrganizationID: input.OrganizationID,
		Role:           input.Role,
		Token:          utils.NewToken(),
		ExpiresAt:      time.Now().Add(constants.InvitationTTL),
		InvitedBy:      &inviter,
	}

	if err := s.invitationRepo.Create(invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	return invitation, nil
}

// Validate looks up a token and returns the invitation if it can still be
// accepted. Expired and consumed tokens are terminal.
func (s *InvitationService) Validate(token string) (*models.Invitation, error) {
	invitation, err := s.invitationRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInvitation
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}

	if !invitation.Acceptable(time.Now()) {
		return nil, ErrInvalidInvitation
	}

	return invitation, nil
}

// AcceptInvitationInput represents the registration submitted with a token
type AcceptInvitationInput struct {
	Token     string
	FirstName string
	LastName  string
	Password  string
}

// Accept consumes the invitation: it creates the user, profile and role
// assignment and marks the token accepted as one transaction, so a failure
// anywhere leaves no partial registration behind.
func (s *InvitationService) Accept(input AcceptInvitationInput) (*models.User, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return nil, ErrNameRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	invitation, err := s.Validate(input.Token)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(invitation.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        invitation.Email,
		PasswordHash: string(hash),
	}

	orgID := invitation.OrganizationID
	profile := &models.UserProfile{
		OrganizationID: &orgID,
		FirstName:      firstName,
		LastName:       lastName,
		Email:          invitation.Email,
	}

	role := &models.UserRole{
		Role: invitation.Role,
	}

	if err := s.invitationRepo.AcceptWithRegistration(invitation, user, profile, role); err != nil {
		switch {
		case errors.Is(err, repository.ErrInvitationConsumed):
			return nil, ErrInvalidInvitation
		case errors.Is(err, repository.ErrCreateUser),
			errors.Is(err, repository.ErrCreateProfile),
			errors.Is(err, repository.ErrCreateRole):
			return nil, ErrFailedToCreateUser
		default:
			return nil, fmt.Errorf("failed to complete registration: %w", err)
		}
	}

	return user, nil
}

// ListForOrganization lists an organization's invitations, newest first.
func (s *InvitationService) ListForOrganization(organizationID uint64) ([]models.Invitation, error) {
	invitations, err := s.invitationRepo.ListByOrganization(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}
