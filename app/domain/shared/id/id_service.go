package id

import (
	"docurio.ai/docurio-client/app/utils/idgen"
)

// IDService provides centralized public ID generation for all domain entities.
// Every row the API exposes is addressed by one of these prefixed IDs; the
// numeric database keys never leave the repository layer.
type IDService struct{}

// NewIDService creates a new instance of IDService.
func NewIDService() *IDService {
	return &IDService{}
}

// GenerateUserID generates a user ID with format "user_...".
func (s *IDService) GenerateUserID() (string, error) {
	return idgen.GenerateSecureID("user", 16)
}

// GenerateGuestID generates a guest user ID with format "guest_...".
func (s *IDService) GenerateGuestID() (string, error) {
	return idgen.GenerateSecureID("guest", 16)
}

// GenerateJobID generates a job ID with format "job_...".
func (s *IDService) GenerateJobID() (string, error) {
	return idgen.GenerateSecureID("job", 16)
}

// GenerateTemplateID generates a conversion template ID with format "tpl_...".
func (s *IDService) GenerateTemplateID() (string, error) {
	return idgen.GenerateSecureID("tpl", 16)
}

// GenerateAuditID generates an audit log entry ID with format "audit_...".
func (s *IDService) GenerateAuditID() (string, error) {
	return idgen.GenerateSecureID("audit", 16)
}

// GenerateAPIKeyID generates an API key secret with format "sk_...".
func (s *IDService) GenerateAPIKeyID() (string, error) {
	return idgen.GenerateSecureID("sk", 24)
}

// GenerateAPIKeyPublicID generates an API key public ID with format "key_...".
func (s *IDService) GenerateAPIKeyPublicID() (string, error) {
	return idgen.GenerateSecureID("key", 16)
}

// ValidateUserID validates a user ID format, accepting both registered and
// guest prefixes.
func (s *IDService) ValidateUserID(id string) bool {
	return idgen.ValidateIDFormat(id, "user") || idgen.ValidateIDFormat(id, "guest")
}

// ValidateJobID validates a job ID format.
func (s *IDService) ValidateJobID(id string) bool {
	return idgen.ValidateIDFormat(id, "job")
}

// ValidateTemplateID validates a conversion template ID format.
func (s *IDService) ValidateTemplateID(id string) bool {
	return idgen.ValidateIDFormat(id, "tpl")
}

// ValidateAPIKeyID validates an API key secret format.
func (s *IDService) ValidateAPIKeyID(id string) bool {
	return idgen.ValidateIDFormat(id, "sk")
}

// ValidateAPIKeyPublicID validates an API key public ID format.
func (s *IDService) ValidateAPIKeyPublicID(id string) bool {
	return idgen.ValidateIDFormat(id, "key")
}
