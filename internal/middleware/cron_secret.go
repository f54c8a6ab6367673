package middleware

import (
	"crypto/subtle"
	"net/http"

	"go-timeclock/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// CronSecret admits only callers presenting the shared scheduler secret in
// X-Cron-Secret. An empty configured secret rejects everything.
func CronSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader("X-Cron-Secret")
		if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid scheduler credentials")
			return
		}
		c.Next()
	}
}
