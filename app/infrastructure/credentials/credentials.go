package credentials

import (
	"golang.org/x/oauth2"

	"docurio.ai/docurio-client/config/environment_variables"
)

// Credential is what the client presents to the platform: a bearer token pair
// minted by a login flow, or a long-lived API key. The token is opaque here,
// never decoded client-side.
type Credential struct {
	Token  *oauth2.Token `json:"token,omitempty"`
	APIKey string        `json:"api_key,omitempty"`
}

func (c *Credential) Present() bool {
	if c == nil {
		return false
	}
	if c.APIKey != "" {
		return true
	}
	return c.Token != nil && c.Token.AccessToken != ""
}

// AuthorizationValue renders the Authorization header for the credential, or
// "" when absent.
func (c *Credential) AuthorizationValue() string {
	if c == nil {
		return ""
	}
	if c.APIKey != "" {
		return "Bearer " + c.APIKey
	}
	if c.Token != nil && c.Token.AccessToken != "" {
		return c.Token.Type() + " " + c.Token.AccessToken
	}
	return ""
}

// RefreshToken returns the refresh token when the credential carries one.
func (c *Credential) RefreshToken() string {
	if c == nil || c.Token == nil {
		return ""
	}
	return c.Token.RefreshToken
}

// Store persists the single session credential. Present must be cheap; the
// session guard calls it on every route evaluation.
type Store interface {
	Load() (*Credential, error)
	Save(cred *Credential) error
	Clear() error
	Present() bool
}

// NewStoreFromEnv picks the file store when CREDENTIALS_FILE is configured
// and falls back to process-local memory otherwise.
func NewStoreFromEnv() Store {
	if path := environment_variables.EnvironmentVariables.CREDENTIALS_FILE; path != "" {
		return NewFileStore(path)
	}
	return NewMemoryStore()
}
