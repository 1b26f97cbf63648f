// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file resolves the caller identity. Sessions are issued by an external
// auth provider; by the time a request reaches this service the user is
// conveyed in the X-User-ID header. Requests without the header are served
// as the shared "demo-user" so the app works before sign-in.
package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// HeaderUserID carries the caller identity.
	HeaderUserID = "X-User-ID"
	// DemoUser owns data created without an identity.
	DemoUser = "demo-user"

	userIDKey       = "userID"
	userExplicitKey = "userID.explicit"
)

// userIDRE bounds identities to what the collections table can index.
var userIDRE = regexp.MustCompile(`^[A-Za-z0-9._@:\-]{1,64}$`)

// Identity stores the caller identity in the Gin context under "userID".
//
// A malformed header is rejected with 400; an absent one falls back to
// DemoUser. Place it before RedactingLogger so access logs carry the user.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if raw == "" {
			c.Set(userIDKey, DemoUser)
			c.Next()
			return
		}
		if !userIDRE.MatchString(raw) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "bad_request",
				"message":    "invalid " + HeaderUserID,
			})
			return
		}
		c.Set(userIDKey, raw)
		c.Set(userExplicitKey, true)
		c.Next()
	}
}

// UserIDFrom returns the identity stored by Identity, or DemoUser.
func UserIDFrom(c *gin.Context) string {
	if v, ok := c.Get(userIDKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return DemoUser
}

// hasExplicitUser reports whether the caller sent its own identity.
func hasExplicitUser(c *gin.Context) bool {
	return c.GetBool(userExplicitKey)
}
