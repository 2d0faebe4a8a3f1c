package healthcheck

import (
	"context"
	"sync/atomic"

	"github.com/mileusna/crontab"
	"gorm.io/gorm"

	"docurio.ai/docurio-client/app/utils/logger"
	"docurio.ai/docurio-client/config/environment_variables"
)

// HealthcheckCrontabService probes the database on a schedule and caches the
// verdict for the health endpoint, which must answer without touching
// dependencies.
type HealthcheckCrontabService struct {
	db      *gorm.DB
	healthy atomic.Bool
}

func NewService(db *gorm.DB) *HealthcheckCrontabService {
	hs := &HealthcheckCrontabService{db: db}
	hs.healthy.Store(true)
	return hs
}

func (hs *HealthcheckCrontabService) Start(ctx context.Context, ctab *crontab.Crontab) {
	hs.Probe(ctx)
	// Check every 2 minutes instead of every minute
	ctab.AddJob("*/2 * * * *", func() {
		hs.Probe(ctx)
		environment_variables.EnvironmentVariables.LoadFromEnv()
	})
}

// Healthy reports the most recent probe verdict.
func (hs *HealthcheckCrontabService) Healthy() bool {
	return hs.healthy.Load()
}

// Probe pings the database and records whether it answered.
func (hs *HealthcheckCrontabService) Probe(ctx context.Context) {
	sqlDB, err := hs.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		logger.GetLogger().Warnf("healthcheck: database unreachable: %v", err)
	}
	hs.healthy.Store(err == nil)
}
