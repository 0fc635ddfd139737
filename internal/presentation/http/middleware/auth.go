package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mbianou/chopchap-api/internal/presentation/http/dto/response"
	"github.com/mbianou/chopchap-api/pkg/utils"
)

// GuestIDHeader carries the client-generated identifier for guest orders
const GuestIDHeader = "X-Guest-ID"

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)

		c.Next()
	}
}

// OptionalAuthMiddleware authenticates when a token is present and otherwise
// resolves a guest identity, so checkout works for both kinds of caller. The
// guest id comes from the client header or is generated for the request.
func OptionalAuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
				if claims, err := jwtManager.ValidateAccessToken(parts[1]); err == nil {
					c.Set("user_id", claims.UserID)
					c.Set("user_email", claims.Email)
					c.Next()
					return
				}
			}
		}

		guestID := c.GetHeader(GuestIDHeader)
		if guestID == "" {
			guestID = utils.GenerateGuestID()
		}
		c.Set("guest_id", guestID)

		c.Next()
	}
}
