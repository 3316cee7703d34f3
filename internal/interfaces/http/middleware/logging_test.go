package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/GeoRose/internal/testutil"
)

func TestRequestLogging_Levels(t *testing.T) {
	logger := testutil.NewMockLogger()
	engine := newEngine(RequestID(), RequestLogging(logger, DefaultLoggingConfig()))

	serve(engine, httptest.NewRequest(http.MethodGet, "/ok?x=1", nil))
	serve(engine, httptest.NewRequest(http.MethodGet, "/bad", nil))
	serve(engine, httptest.NewRequest(http.MethodGet, "/fail", nil))

	info := logger.MessagesAt("info")
	require.Len(t, info, 1)
	assert.Equal(t, "HTTP request completed", info[0].Message)
	assert.Equal(t, "/ok?x=1", info[0].Field("path"))
	assert.Equal(t, http.StatusOK, info[0].Field("status"))
	assert.NotEmpty(t, info[0].Field("request_id"))

	assert.True(t, logger.HasMessage("warn", "HTTP request completed with client error"))
	assert.True(t, logger.HasMessage("error", "HTTP request completed with server error"))
}

func TestRequestLogging_SkipPaths(t *testing.T) {
	logger := testutil.NewMockLogger()
	engine := newEngine(RequestLogging(logger, DefaultLoggingConfig()))

	serve(engine, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Empty(t, logger.GetMessages())
}

func TestRequestLogging_Slow(t *testing.T) {
	logger := testutil.NewMockLogger()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestLogging(logger, LoggingConfig{SlowThreshold: time.Millisecond}))
	engine.GET("/slow", func(c *gin.Context) {
		time.Sleep(5 * time.Millisecond)
		c.Status(http.StatusOK)
	})

	serve(engine, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.True(t, logger.HasMessage("warn", "HTTP request completed (slow)"))
}

//Personal.AI order the ending
