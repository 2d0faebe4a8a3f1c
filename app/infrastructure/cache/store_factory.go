package cache

import (
	"strings"

	"docurio.ai/docurio-client/config/environment_variables"
)

// NewEntryStore creates an entry store based on configuration
func NewEntryStore() EntryStore {
	storeType := strings.ToLower(environment_variables.EnvironmentVariables.CACHE_STORE_TYPE)

	// Default to process-local memory if no store type is specified
	if storeType == "" {
		storeType = "memory"
	}

	switch storeType {
	case "redis":
		return NewRedisEntryStore()
	case "sqlite", "postgres":
		return NewGormEntryStore(storeType)
	case "noop":
		return &NoOpEntryStore{}
	default:
		return NewMemoryEntryStore()
	}
}
