package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const userEmailKey = "userEmail"

// AuthRequired trusts the identity placed by the upstream JWT gateway. Token
// verification itself happens before requests reach this service.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetHeader("X-User-Email")
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user is not authenticated"})
			return
		}
		c.Set(userEmailKey, email)
		c.Next()
	}
}

func userEmail(c *gin.Context) string {
	return c.GetString(userEmailKey)
}
