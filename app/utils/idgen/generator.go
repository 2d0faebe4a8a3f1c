package idgen

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
)

// GenerateSecureID mints a public identifier of the form "<prefix>_<secret>"
// where secret is length URL-safe characters of crypto/rand entropy.
func GenerateSecureID(prefix string, length int) (string, error) {
	// 3 random bytes encode to 4 characters; over-read one byte so the
	// encoded string is always long enough to slice.
	raw := make([]byte, (length*3+3)/4+1)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return prefix + "_" + base64.RawURLEncoding.EncodeToString(raw)[:length], nil
}

// ValidateIDFormat reports whether id could have been minted with prefix:
// "<prefix>_" followed by a non-empty base64 URL-safe suffix.
func ValidateIDFormat(id, expectedPrefix string) bool {
	suffix, ok := strings.CutPrefix(id, expectedPrefix+"_")
	if !ok || suffix == "" {
		return false
	}
	for i := 0; i < len(suffix); i++ {
		c := suffix[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}
