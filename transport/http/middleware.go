package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/keyring/service"
)

// RequireAuthenticated creates middleware that only admits requests while
// an authorized credential is available, and injects the access token into
// the request context for outbound use.
func RequireAuthenticated(manager *service.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := manager.GetCredential(c.Request.Context())
		if credential == nil || !credential.Authorized() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		c.Set("accessToken", credential.AccessToken)

		c.Next()
	}
}
