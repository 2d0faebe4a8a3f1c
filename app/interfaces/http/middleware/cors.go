package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docurio.ai/docurio-client/config/environment_variables"
)

const (
	corsAllowHeaders = "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID"
	corsAllowMethods = "POST, OPTIONS, GET, PUT, PATCH, DELETE"
)

// CORS echoes the Origin back for origins on the ALLOWED_CORS_HOSTS list and
// answers preflight with 204.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if originAllowed(origin) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			h.Add("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func originAllowed(origin string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range environment_variables.EnvironmentVariables.ALLOWED_CORS_HOSTS {
		if allowed == origin {
			return true
		}
	}
	return false
}
