package auth

import (
	"github.com/gin-gonic/gin"
)

// OptionalUser sets the user in context when a valid token is present,
// without rejecting requests that carry none.
func OptionalUser(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := ExtractToken(c); token != "" {
			if claims, err := issuer.Parse(token); err == nil {
				SetClaims(c, claims)
			}
		}
		c.Next()
	}
}
