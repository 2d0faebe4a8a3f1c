package dbschema

import (
	"docurio.ai/docurio-client/app/domain/apikey"
	"docurio.ai/docurio-client/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(ApiKey{})
}

type ApiKey struct {
	BaseModel
	PublicID      string `gorm:"uniqueIndex;not null"`
	KeyHash       string `gorm:"uniqueIndex;not null"`
	Description   string
	ApikeyType    string
	OwnerPublicID string `gorm:"index"`
	Enabled       bool
	ExpiresAt     *int64
	LastUsedAt    *int64
}

func NewSchemaApiKey(k *apikey.ApiKey) *ApiKey {
	return &ApiKey{
		PublicID:      k.PublicID,
		KeyHash:       k.KeyHash,
		Description:   k.Description,
		ApikeyType:    string(k.ApikeyType),
		OwnerPublicID: k.OwnerPublicID,
		Enabled:       k.Enabled,
		ExpiresAt:     k.ExpiresAt,
		LastUsedAt:    k.LastUsedAt,
	}
}

func (k *ApiKey) EtoD() *apikey.ApiKey {
	return &apikey.ApiKey{
		PublicID:      k.PublicID,
		KeyHash:       k.KeyHash,
		Description:   k.Description,
		ApikeyType:    apikey.ApikeyType(k.ApikeyType),
		OwnerPublicID: k.OwnerPublicID,
		Enabled:       k.Enabled,
		ExpiresAt:     k.ExpiresAt,
		LastUsedAt:    k.LastUsedAt,
		CreatedAt:     k.CreatedAt.Unix(),
	}
}
