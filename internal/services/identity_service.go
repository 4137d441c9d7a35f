package services

import (
	"errors"
	"fmt"

	"github.com/brfservice/brf-portal-api/internal/access"
	"github.com/brfservice/brf-portal-api/internal/repository"
	"gorm.io/gorm"
)

// IdentityService resolves an authenticated principal into its organization
// and role set. Read-only; it is invoked once per request by the capability
// middleware.
type IdentityService struct {
	userRepo repository.UserRepository
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(userRepo repository.UserRepository) *IdentityService {
	return &IdentityService{
		userRepo: userRepo,
	}
}

// Resolve returns the identity for a principal. A principal without a profile
// is unprovisioned: empty role set, no organization, not an error. The caller
// decides how to present that.
func (s *IdentityService) Resolve(userID uint64) (access.Identity, error) {
	identity := access.Identity{
		UserID: userID,
		Roles:  access.NewRoleSet(),
	}

	profile, err := s.userRepo.FindProfileByUserID(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return access.Identity{}, fmt.Errorf("failed to resolve profile: %w", err)
	}
	if profile != nil {
		identity.OrganizationID = profile.OrganizationID
	}

	assignments, err := s.userRepo.ListRolesByUserID(userID)
	if err != nil {
		return access.Identity{}, fmt.Errorf("failed to resolve roles: %w", err)
	}
	for _, a := range assignments {
		identity.Roles[a.Role] = struct{}{}
	}

	return identity, nil
}
