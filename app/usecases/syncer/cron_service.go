package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/mileusna/crontab"

	"docurio.ai/docurio-client/app/domain/resource"
	"docurio.ai/docurio-client/app/infrastructure/cache"
	"docurio.ai/docurio-client/app/utils/logger"
	"docurio.ai/docurio-client/config/environment_variables"
)

// settledJobRetention is how long a terminal job entry may sit unwatched
// before the janitor drops it.
const settledJobRetention = 30 * time.Minute

// CronService owns the slow background beats of a long-lived client: keeping
// the session token rotated, keeping the service health entry warm, and
// re-reading configuration.
type CronService struct {
	sync *Synchronizer
}

func NewCronService(sync *Synchronizer) *CronService {
	return &CronService{
		sync: sync,
	}
}

func (cs *CronService) Start(ctx context.Context, ctab *crontab.Crontab) {
	cs.refreshServiceHealth(ctx)

	ctab.AddJob("* * * * *", func() {
		cs.refreshServiceHealth(ctx)
		environment_variables.EnvironmentVariables.LoadFromEnv()
	})
	ctab.AddJob("*/5 * * * *", func() {
		cs.keepSessionAlive(ctx)
	})
	ctab.AddJob("*/10 * * * *", func() {
		cs.dropSettledJobs()
	})
}

// refreshServiceHealth re-fetches the health entry. On a shared store tier
// the refresh is arbitrated with a distributed lock so only one client
// process hits the endpoint per beat; the others read what it wrote.
func (cs *CronService) refreshServiceHealth(ctx context.Context) {
	if cs == nil || cs.sync == nil {
		return
	}
	store := cs.sync.Cache().Store()
	if locker, ok := store.(cache.RefreshLocker); ok {
		mutex := locker.NewMutex(fmt.Sprintf(cache.RefreshLockKeyPattern, string(resource.KindServiceHealth)))
		if err := mutex.TryLockContext(ctx); err != nil {
			return
		}
		defer mutex.UnlockContext(ctx)
	}
	if _, err := cs.sync.ReadFresh(ctx, resource.ServiceHealthKey()); err != nil {
		logger.GetLogger().Warnf("cron service: health refresh failed: %v", err)
	}
}

func (cs *CronService) keepSessionAlive(ctx context.Context) {
	if cs == nil || cs.sync == nil {
		return
	}
	if err := cs.sync.RefreshSessionIfNeeded(ctx); err != nil {
		logger.GetLogger().Warnf("cron service: session refresh failed: %v", err)
	}
}

// dropSettledJobs is the cache janitor beat.
func (cs *CronService) dropSettledJobs() {
	if cs == nil || cs.sync == nil {
		return
	}
	if n := cs.sync.SweepSettledJobs(settledJobRetention); n > 0 {
		logger.GetLogger().Debugf("cron service: dropped %d settled job entries", n)
	}
}
