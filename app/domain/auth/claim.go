package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"docurio.ai/docurio-client/config/environment_variables"
)

const RefreshTokenKey = "docurio_refresh_token"
const OAuthStateKey = "docurio_oauth_state"

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// UserClaim is the JWT payload for both access and refresh tokens. The
// subject carries the user's public ID.
type UserClaim struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

func CreateJwtSignedString(u UserClaim) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, u)
	return token.SignedString(environment_variables.EnvironmentVariables.JWT_SECRET)
}

// ParseJwtClaim validates a signed token and returns its claim, or nil when
// the token is invalid or expired.
func ParseJwtClaim(tokenString string) (*UserClaim, bool) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaim{}, func(token *jwt.Token) (interface{}, error) {
		return environment_variables.EnvironmentVariables.JWT_SECRET, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	claims, ok := token.Claims.(*UserClaim)
	if !ok {
		return nil, false
	}
	return claims, true
}
