package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avasiliev/pocketledger/pkg/web"
)

// OwnerHeader carries the authenticated user set by the upstream gateway.
const OwnerHeader = "X-User"

// OwnerKey is the gin context key the owner is stored under.
const OwnerKey = "owner"

// ErrMissingOwner indicates a request without an owner header.
var ErrMissingOwner = errors.New("missing " + OwnerHeader + " header")

// RequireOwner extracts the request owner from the gateway header and
// aborts with 401 when it is absent.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.GetHeader(OwnerHeader)
		if owner == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrMissingOwner))
			return
		}

		c.Set(OwnerKey, owner)
		c.Next()
	}
}

// Owner returns the request owner stored by RequireOwner.
func Owner(c *gin.Context) string {
	return c.MustGet(OwnerKey).(string)
}
