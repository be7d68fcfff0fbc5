package server

import (
	"time"

	"auction-rooms/internal/identity"
	"auction-rooms/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	fields := map[string]any{
		"method":  c.Request.Method,
		"route":   c.FullPath(),
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	}
	if userID, err := identity.CurrentUser(c); err == nil {
		fields["user_id"] = userID
	}

	if c.Writer.Status() >= 500 {
		utils.Warn("HTTP Request", fields)
		return
	}
	utils.Info("HTTP Request", fields)
}
