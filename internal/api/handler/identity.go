package handler

import (
	"github.com/careerhq/career-platform/internal/auth"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// SetIdentity stores the authenticated identity on the request context.
// Called by the auth middleware after token validation.
func SetIdentity(c *gin.Context, identity auth.Identity) {
	c.Set(identityKey, identity)
}

// CurrentIdentity returns the identity stored by the auth middleware.
func CurrentIdentity(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	identity, ok := v.(auth.Identity)
	return identity, ok
}
