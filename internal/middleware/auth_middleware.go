package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"go-timeclock/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates an HS256 bearer token (or access_token cookie) and
// copies user_id, employee_id, company_id and role claims onto the gin context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			msg := "Invalid token"
			if err != nil && strings.Contains(err.Error(), "expired") {
				msg = "Token expired"
			}
			response.AbortError(c, http.StatusUnauthorized, "INVALID_TOKEN", msg)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.AbortError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims")
			return
		}

		required := map[string]string{}
		for _, key := range []string{"user_id", "company_id", "employee_id"} {
			v, _ := claims[key].(string)
			if v == "" {
				response.AbortError(c, http.StatusUnauthorized, "INVALID_TOKEN", key+" not found in token")
				return
			}
			required[key] = v
		}
		role, _ := claims["role"].(string)

		c.Set("user_id", required["user_id"])
		c.Set("employee_id", required["employee_id"])
		c.Set("company_id", required["company_id"])
		c.Set("role", role)
		c.Next()
	}
}
