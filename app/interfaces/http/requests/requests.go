package requests

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GetTokenFromBearer extracts the bearer credential from the Authorization
// header. It reports false when the header is missing or not a bearer.
func GetTokenFromBearer(reqCtx *gin.Context) (string, bool) {
	header := reqCtx.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
