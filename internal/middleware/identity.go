package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/brfservice/brf-portal-api/internal/access"
	"github.com/brfservice/brf-portal-api/internal/constants"
	apierrors "github.com/brfservice/brf-portal-api/internal/errors"
	"github.com/brfservice/brf-portal-api/internal/services"
)

// ResolveIdentity loads the authenticated user's organization and role set
// once per request and stores the result in the context. Must run after
// RequireAuth.
func ResolveIdentity(identityService *services.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		identity, err := identityService.Resolve(userID)
		if err != nil {
			apierrors.InternalError(c, "Failed to resolve user roles")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyIdentity, identity)
		c.Next()
	}
}

// RequireCapability rejects requests whose identity does not satisfy the
// capability. Users with no roles at all get the dedicated NO_ROLES_ASSIGNED
// response instead of a generic 403.
func RequireCapability(capability access.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, exists := GetIdentity(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !access.Can(identity.Roles, capability) {
			if identity.Roles.Empty() {
				apierrors.NoRoles(c)
			} else {
				apierrors.Forbidden(c, "")
			}
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetIdentity retrieves the resolved identity from context
func GetIdentity(c *gin.Context) (access.Identity, bool) {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return access.Identity{}, false
	}
	identity, ok := value.(access.Identity)
	return identity, ok
}
