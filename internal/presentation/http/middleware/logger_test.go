package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggerRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	return router
}

func TestRequestLogger_AssignsRequestID(t *testing.T) {
	router := newLoggerRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)

	id := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err, "generated request ids are uuids")
}

func TestRequestLogger_ReusesClientRequestID(t *testing.T) {
	router := newLoggerRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "client-trace-42")
	router.ServeHTTP(w, req)

	assert.Equal(t, "client-trace-42", w.Header().Get("X-Request-ID"))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "12345678", shortID("123456789abcdef"))
}

func TestCallerTag(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "anonyme", callerTag(c))

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Set("guest_id", "guest-ab12cd34")
	assert.Equal(t, "guest-ab12cd34", callerTag(c))

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	userID := uuid.New()
	c.Set("user_id", userID)
	assert.Equal(t, "user:"+userID.String()[:8], callerTag(c))
}
