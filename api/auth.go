// Package api - Authentication boundary
package api

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"cloud-portal/core/types"
	"cloud-portal/internal/errors"
)

// Authenticator resolves a bearer token to a user. The portal does not
// design an authentication protocol; whatever issues and validates
// credentials sits behind this boundary.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*types.User, error)
}

// AuthenticatorFunc adapts a function to the Authenticator interface
type AuthenticatorFunc func(ctx context.Context, token string) (*types.User, error)

// Authenticate implements Authenticator
func (f AuthenticatorFunc) Authenticate(ctx context.Context, token string) (*types.User, error) {
	return f(ctx, token)
}

const userContextKey = "portal.user"

// RequireUser authenticates the request and stores the caller in the
// gin context. Requests without a valid bearer token are rejected.
func RequireUser(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortWithError(c, errors.Unauthorized("missing bearer token"))
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// currentUser returns the authenticated caller set by RequireUser
func currentUser(c *gin.Context) *types.User {
	if v, ok := c.Get(userContextKey); ok {
		if user, ok := v.(*types.User); ok {
			return user
		}
	}
	return nil
}
