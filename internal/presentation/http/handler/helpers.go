package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the authenticated user ID from the Gin context; nil for
// guest requests
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetGuestID extracts the guest identifier resolved by the optional-auth
// middleware
func GetGuestID(c *gin.Context) string {
	guestID, exists := c.Get("guest_id")
	if !exists {
		return ""
	}
	id, ok := guestID.(string)
	if !ok {
		return ""
	}
	return id
}
