// Package access implements the portal's access policy as pure functions of
// role set plus relevant entity state. It performs no IO and never errors:
// absence of a capability is simply false.
package access

import "github.com/brfservice/brf-portal-api/internal/models"

// Capability names a guarded portal action.
type Capability string

const (
	// CapAccessPortal is satisfied by any non-empty role set.
	CapAccessPortal Capability = "access_portal"
	// CapViewInvoices covers reading the organization's invoices, vendors and dashboard.
	CapViewInvoices Capability = "view_invoices"
	// CapAttestInvoice covers approving or rejecting an invoice. The role check
	// here is necessary but not sufficient; CanAttest also requires an
	// attestable invoice status.
	CapAttestInvoice Capability = "attest_invoice"
	// CapManageOrganization covers organization settings, vendors and user invitations.
	CapManageOrganization Capability = "manage_organization"
	// CapManageInvoices covers creating invoices and driving non-attest transitions.
	CapManageInvoices Capability = "manage_invoices"
	// CapCrossOrganization covers admin views spanning all organizations.
	CapCrossOrganization Capability = "cross_organization"
)

// capabilityRoles lists the roles that satisfy each capability, superadmin
// excluded: superadmin is the top of the role lattice and satisfies every
// capability, present and future, via the check in Can.
var capabilityRoles = map[Capability][]models.Role{
	CapAccessPortal:       {models.RoleBrfUser, models.RoleBrfAdmin},
	CapViewInvoices:       {models.RoleBrfUser, models.RoleBrfAdmin},
	CapAttestInvoice:      {models.RoleBrfUser, models.RoleBrfAdmin},
	CapManageOrganization: {models.RoleBrfAdmin},
	CapManageInvoices:     {models.RoleBrfAdmin},
	CapCrossOrganization:  {},
}

// RoleSet is the set of roles held by a principal.
type RoleSet map[models.Role]struct{}

// NewRoleSet builds a RoleSet from role values, dropping duplicates.
func NewRoleSet(roles ...models.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Has reports whether the set contains the role.
func (s RoleSet) Has(role models.Role) bool {
	_, ok := s[role]
	return ok
}

// Empty reports whether the principal holds no roles at all.
func (s RoleSet) Empty() bool {
	return len(s) == 0
}

// Roles returns the set's members as a slice, order unspecified.
func (s RoleSet) Roles() []models.Role {
	roles := make([]models.Role, 0, len(s))
	for r := range s {
		roles = append(roles, r)
	}
	return roles
}

// Identity is the resolved view of an authenticated principal: the profile's
// organization (absent for unprovisioned users) and the full role set.
type Identity struct {
	UserID         uint64
	OrganizationID *uint64
	Roles          RoleSet
}

// Can decides whether a role set satisfies a capability.
func Can(roles RoleSet, capability Capability) bool {
	if roles.Has(models.RoleSuperadmin) {
		return true
	}
	for _, r := range capabilityRoles[capability] {
		if roles.Has(r) {
			return true
		}
	}
	return false
}

// CanAttest decides whether the principal may attest an invoice in the given
// status. Both new and pending_attestation are attestable; terminal states
// are not, regardless of role.
func CanAttest(roles RoleSet, status models.InvoiceStatus) bool {
	return Can(roles, CapAttestInvoice) && status.Attestable()
}
