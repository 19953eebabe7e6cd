package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"factura/internal/core/apperror"
	appctx "factura/internal/core/context"
	"factura/internal/core/id"
	"factura/internal/domain/auth"
)

// TokenVerifier validates access tokens.
type TokenVerifier interface {
	Verify(tokenString string) (id.ID, *auth.Claims, error)
}

// OwnerIDKey is the gin context key holding the authenticated user's id.
const OwnerIDKey = "owner_id"

// Auth middleware validates JWT tokens and populates user context.
// The authenticated user id becomes the ownerID that handlers pass
// explicitly into every service call.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		userID, claims, err := verifier.Verify(parts[1])
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		user := &appctx.UserContext{
			UserID: userID.String(),
			Email:  claims.Email,
			Name:   claims.Name,
		}
		ctx := appctx.WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		c.Set(OwnerIDKey, userID)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
