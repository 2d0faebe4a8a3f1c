package cache

import "docurio.ai/docurio-client/app/domain/resource"

const (
	RefreshLockKeyPattern = resource.KeyVersion + ":refresh:lock:%s"
	StorePingKey          = resource.KeyVersion + ":store:ping"
)
