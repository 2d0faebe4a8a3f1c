package logger

import (
	"os"
	"sync"

	"docurio.ai/docurio-client/config/environment_variables"
	"github.com/sirupsen/logrus"
)

var (
	once     sync.Once
	instance *logrus.Logger
)

// GetLogger returns the process-wide logger, configured from LOG_LEVEL on first use.
func GetLogger() *logrus.Logger {
	once.Do(func() {
		instance = logrus.New()
		instance.SetOutput(os.Stderr)
		instance.SetFormatter(&logrus.JSONFormatter{})
		level, err := logrus.ParseLevel(environment_variables.EnvironmentVariables.LOG_LEVEL)
		if err != nil {
			level = logrus.InfoLevel
		}
		instance.SetLevel(level)
	})
	return instance
}
