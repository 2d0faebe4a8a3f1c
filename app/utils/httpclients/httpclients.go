package httpclients

import (
	"time"

	"docurio.ai/docurio-client/app/utils/logger"
	"docurio.ai/docurio-client/config/environment_variables"
	"resty.dev/v3"
)

const defaultRequestTimeout = 30 * time.Second

// NewClient builds a resty client with the shared defaults every outbound
// client in this module uses. The name shows up in debug logs only.
func NewClient(name string) *resty.Client {
	timeout := defaultRequestTimeout
	if seconds := environment_variables.EnvironmentVariables.API_REQUEST_TIMEOUT_SECONDS; seconds > 0 {
		timeout = time.Duration(seconds) * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetLogger(logger.GetLogger())
	logger.GetLogger().Debugf("http client %s initialized, timeout=%s", name, timeout)
	return client
}
