package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Despicable-at/robot-delivery-backend/internal/config"
	"github.com/Despicable-at/robot-delivery-backend/pkg/utils"
)

// AuthMiddleware validates the bearer access token and populates the account
// identity in the request context. Validation is signature plus expiry only:
// access tokens are self-verifying.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ParseAccessToken(parts[1], cfg.Auth.AccessSecret)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("accountID", claims.AccountID)
		c.Set("email", claims.Email)

		c.Next()
	}
}
