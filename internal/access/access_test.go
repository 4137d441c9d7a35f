package access

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brfservice/brf-portal-api/internal/models"
)

func TestCan_EmptyRoleSet(t *testing.T) {
	roles := NewRoleSet()

	require.True(t, roles.Empty())
	require.False(t, Can(roles, CapAccessPortal))
	require.False(t, Can(roles, CapViewInvoices))
	require.False(t, Can(roles, CapAttestInvoice))
	require.False(t, Can(roles, CapManageOrganization))
	require.False(t, Can(roles, CapManageInvoices))
	require.False(t, Can(roles, CapCrossOrganization))
}

func TestCan_BrfUser(t *testing.T) {
	roles := NewRoleSet(models.RoleBrfUser)

	require.True(t, Can(roles, CapAccessPortal))
	require.True(t, Can(roles, CapViewInvoices))
	require.True(t, Can(roles, CapAttestInvoice))
	require.False(t, Can(roles, CapManageOrganization))
	require.False(t, Can(roles, CapManageInvoices))
	require.False(t, Can(roles, CapCrossOrganization))
}

func TestCan_BrfAdmin(t *testing.T) {
	roles := NewRoleSet(models.RoleBrfAdmin)

	require.True(t, Can(roles, CapAccessPortal))
	require.True(t, Can(roles, CapViewInvoices))
	require.True(t, Can(roles, CapAttestInvoice))
	require.True(t, Can(roles, CapManageOrganization))
	require.True(t, Can(roles, CapManageInvoices))
	require.False(t, Can(roles, CapCrossOrganization))
}

// A superadmin's grants are a superset of every other role's grants for every
// capability, including any capability added later.
func TestCan_SuperadminSupersetOfAllRoles(t *testing.T) {
	superadmin := NewRoleSet(models.RoleSuperadmin)
	others := []RoleSet{
		NewRoleSet(models.RoleBrfUser),
		NewRoleSet(models.RoleBrfAdmin),
		NewRoleSet(models.RoleBrfUser, models.RoleBrfAdmin),
	}
	capabilities := []Capability{
		CapAccessPortal,
		CapViewInvoices,
		CapAttestInvoice,
		CapManageOrganization,
		CapManageInvoices,
		CapCrossOrganization,
		Capability("future_capability"),
	}

	for _, capability := range capabilities {
		require.True(t, Can(superadmin, capability), "superadmin should satisfy %s", capability)
		for _, other := range others {
			if Can(other, capability) {
				require.True(t, Can(superadmin, capability))
			}
		}
	}
}

func TestCan_MultipleRolesUnion(t *testing.T) {
	roles := NewRoleSet(models.RoleBrfUser, models.RoleBrfAdmin)

	require.True(t, Can(roles, CapViewInvoices))
	require.True(t, Can(roles, CapManageOrganization))
	require.False(t, Can(roles, CapCrossOrganization))
}

func TestCanAttest_DependsOnStatus(t *testing.T) {
	tests := []struct {
		status models.InvoiceStatus
		want   bool
	}{
		{models.InvoiceStatusNew, true},
		{models.InvoiceStatusPendingAttestation, true},
		{models.InvoiceStatusAttested, false},
		{models.InvoiceStatusRejected, false},
		{models.InvoiceStatusPaid, false},
	}

	user := NewRoleSet(models.RoleBrfUser)
	superadmin := NewRoleSet(models.RoleSuperadmin)
	nobody := NewRoleSet()

	for _, tt := range tests {
		require.Equal(t, tt.want, CanAttest(user, tt.status), "brf_user attesting %s invoice", tt.status)
		// Terminal states block even superadmins.
		require.Equal(t, tt.want, CanAttest(superadmin, tt.status), "superadmin attesting %s invoice", tt.status)
		require.False(t, CanAttest(nobody, tt.status))
	}
}

func TestRoleSet_Has(t *testing.T) {
	roles := NewRoleSet(models.RoleBrfUser)

	require.True(t, roles.Has(models.RoleBrfUser))
	require.False(t, roles.Has(models.RoleBrfAdmin))
	require.False(t, roles.Has(models.RoleSuperadmin))
}

func TestRoleSet_DropsDuplicates(t *testing.T) {
	roles := NewRoleSet(models.RoleBrfUser, models.RoleBrfUser)

	require.Len(t, roles.Roles(), 1)
}
