package apikey

import (
	"time"

	"golang.org/x/net/context"

	"docurio.ai/docurio-client/app/domain/query"
)

type ApikeyType string

const (
	ApikeyTypeUser  ApikeyType = "user"
	ApikeyTypeAdmin ApikeyType = "admin"
)

// ApiKey is a long-lived bearer credential. Only the HMAC of the secret is
// stored; the plaintext exists once, in the create response.
type ApiKey struct {
	PublicID      string
	KeyHash       string
	Description   string
	ApikeyType    ApikeyType
	OwnerPublicID string
	Enabled       bool
	ExpiresAt     *int64
	CreatedAt     int64
	LastUsedAt    *int64
}

// IsValid reports whether the key may still authenticate requests.
func (k *ApiKey) IsValid() bool {
	if !k.Enabled {
		return false
	}
	if k.ExpiresAt != nil && *k.ExpiresAt < time.Now().Unix() {
		return false
	}
	return true
}

type ApiKeyFilter struct {
	PublicID      *string
	KeyHash       *string
	OwnerPublicID *string
	ApikeyType    *ApikeyType
}

type ApiKeyRepository interface {
	Create(ctx context.Context, k *ApiKey) error
	Update(ctx context.Context, k *ApiKey) error
	DeleteByPublicID(ctx context.Context, publicID string) (bool, error)
	FindOneByFilter(ctx context.Context, filter ApiKeyFilter) (*ApiKey, error)
	FindByFilter(ctx context.Context, filter ApiKeyFilter, pagination *query.Pagination) ([]*ApiKey, error)
	Count(ctx context.Context, filter ApiKeyFilter) (int64, error)
}
