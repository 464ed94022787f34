package middleware

import (
	"github.com/gin-gonic/gin"

	jwtpkg "codehunt/giveaway/pkg/jwt"
	"codehunt/giveaway/pkg/response"
)

// AdminAuth checks that the authenticated operator is in the allow list.
// Must be used after TokenAuth middleware.
func AdminAuth(operatorIDs []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(operatorIDs))
	for _, id := range operatorIDs {
		allowed[id] = struct{}{}
	}

	return func(c *gin.Context) {
		claimsVal, exists := c.Get(ContextKeyOperatorClaims)
		if !exists {
			response.Unauthorized(c, "missing authentication")
			c.Abort()
			return
		}
		claims, ok := claimsVal.(*jwtpkg.Claims)
		if !ok {
			response.Unauthorized(c, "invalid claims")
			c.Abort()
			return
		}

		if _, isOperator := allowed[claims.Subject]; !isOperator {
			response.Forbidden(c, "operator access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
