package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogger assigns each request an id, echoes it through the
// X-Request-ID header the response envelope meta reads, and writes one
// access-log line when the request completes. Authenticated callers are
// logged by user id, guest checkouts by their guest id.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		log.Printf("[%s] %s %s | %d | %v | %s | %s",
			shortID(requestID),
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
			callerTag(c),
		)

		for _, e := range c.Errors {
			log.Printf("[%s] Error: %v", shortID(requestID), e.Err)
		}
	}
}

// callerTag identifies who made the request for the access log
func callerTag(c *gin.Context) string {
	if userIDVal, exists := c.Get("user_id"); exists {
		if userID, ok := userIDVal.(uuid.UUID); ok && userID != uuid.Nil {
			return "user:" + shortID(userID.String())
		}
	}
	if guestIDVal, exists := c.Get("guest_id"); exists {
		if guestID, ok := guestIDVal.(string); ok && guestID != "" {
			return guestID
		}
	}
	return "anonyme"
}

// shortID truncates an id for log readability; client-supplied request ids
// may be shorter than the uuid prefix
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
