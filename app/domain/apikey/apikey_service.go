package apikey

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"golang.org/x/net/context"

	"docurio.ai/docurio-client/app/domain/query"
	"docurio.ai/docurio-client/app/domain/shared/id"
	"docurio.ai/docurio-client/config/environment_variables"
)

// ApikeyPrefix marks bearer tokens that are API keys rather than JWTs.
const ApikeyPrefix = "sk"

type ApiKeyService struct {
	repo      ApiKeyRepository
	idService *id.IDService
}

func NewService(repo ApiKeyRepository, idService *id.IDService) *ApiKeyService {
	return &ApiKeyService{
		repo:      repo,
		idService: idService,
	}
}

// GenerateKeyAndHash mints a fresh secret and its storable hash. The secret
// is returned exactly once.
func (s *ApiKeyService) GenerateKeyAndHash(ctx context.Context) (string, string, error) {
	key, err := s.idService.GenerateAPIKeyID()
	if err != nil {
		return "", "", err
	}
	return key, s.HashKey(ctx, key), nil
}

// HashKey computes the keyed hash under which a secret is stored and looked
// up. Plaintext keys never reach the repository.
func (s *ApiKeyService) HashKey(ctx context.Context, key string) string {
	h := hmac.New(sha256.New, environment_variables.EnvironmentVariables.APIKEY_SECRET)
	h.Write([]byte(key))
	return hex.EncodeToString(h.Sum(nil))
}

// CreateApiKey stores the key metadata and returns it with a minted public
// ID. The caller supplies KeyHash from GenerateKeyAndHash.
func (s *ApiKeyService) CreateApiKey(ctx context.Context, apiKey *ApiKey) (*ApiKey, error) {
	publicId, err := s.idService.GenerateAPIKeyPublicID()
	if err != nil {
		return nil, err
	}
	apiKey.PublicID = publicId
	apiKey.Enabled = true
	apiKey.CreatedAt = time.Now().Unix()
	if err := s.repo.Create(ctx, apiKey); err != nil {
		return nil, err
	}
	return apiKey, nil
}

func (s *ApiKeyService) FindByPublicID(ctx context.Context, publicID string) (*ApiKey, error) {
	return s.repo.FindOneByFilter(ctx, ApiKeyFilter{
		PublicID: &publicID,
	})
}

// FindByKey resolves a plaintext bearer secret to its key record, or nil
// when the secret is unknown or no longer valid.
func (s *ApiKeyService) FindByKey(ctx context.Context, key string) (*ApiKey, error) {
	hashed := s.HashKey(ctx, key)
	entity, err := s.repo.FindOneByFilter(ctx, ApiKeyFilter{
		KeyHash: &hashed,
	})
	if err != nil {
		return nil, err
	}
	if entity == nil || !entity.IsValid() {
		return nil, nil
	}
	return entity, nil
}

// TouchLastUsed records that the key just authenticated a request. Failures
// are ignored; the timestamp is advisory.
func (s *ApiKeyService) TouchLastUsed(ctx context.Context, apiKey *ApiKey) {
	now := time.Now().Unix()
	apiKey.LastUsedAt = &now
	_ = s.repo.Update(ctx, apiKey)
}

func (s *ApiKeyService) Find(ctx context.Context, filter ApiKeyFilter, pagination *query.Pagination) ([]*ApiKey, error) {
	return s.repo.FindByFilter(ctx, filter, pagination)
}

func (s *ApiKeyService) Count(ctx context.Context, filter ApiKeyFilter) (int64, error) {
	return s.repo.Count(ctx, filter)
}

// Revoke disables a key so it can no longer authenticate. It reports false
// when no key has the given public ID.
func (s *ApiKeyService) Revoke(ctx context.Context, publicID string) (bool, error) {
	entity, err := s.FindByPublicID(ctx, publicID)
	if err != nil {
		return false, err
	}
	if entity == nil {
		return false, nil
	}
	entity.Enabled = false
	if err := s.repo.Update(ctx, entity); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteByPublicID removes a key record entirely.
func (s *ApiKeyService) DeleteByPublicID(ctx context.Context, publicID string) (bool, error) {
	return s.repo.DeleteByPublicID(ctx, publicID)
}
