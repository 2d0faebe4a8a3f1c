package stringutils

import (
	"crypto/rand"
	"encoding/base64"
)

// RandomString returns a URL-safe string built from n bytes of crypto/rand
// entropy, suitable for nonces and state parameters.
func RandomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
