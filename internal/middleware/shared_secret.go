package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SecretHeader is the header carrying the shared secret for ops endpoints.
const SecretHeader = "X-Ledger-Secret"

// SharedSecretAuth guards ops endpoints with a shared-secret header.
// Failures return an empty-body 401 without detail.
func SharedSecretAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(SecretHeader)
		if secret == "" || provided == "" ||
			subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
