package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"ferrybackend/internal/cache"
	"ferrybackend/internal/config"
	"ferrybackend/internal/http/middleware"
)

var (
	appConfig  config.Config
	countCache cache.AlertCountCache
)

// Setup wires handler-level dependencies once at startup.
func Setup(cfg config.Config, redisClient *redis.Client) {
	appConfig = cfg
	countCache = cache.AlertCountCache{
		Client: redisClient,
		TTL:    cfg.Alerts.CountCacheTTL,
	}
}

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
