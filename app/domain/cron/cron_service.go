package cron

import (
	"context"
	"time"

	"github.com/mileusna/crontab"

	"docurio.ai/docurio-client/app/utils/logger"
	"docurio.ai/docurio-client/config/environment_variables"
)

// AuditRetention is how long audit entries are kept before the hourly prune
// removes them.
const AuditRetention = 30 * 24 * time.Hour

type JobAdvancer interface {
	Advance(ctx context.Context) (int, error)
}

type AuditPruner interface {
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

type CronService struct {
	jobs  JobAdvancer
	audit AuditPruner
}

func NewService(jobs JobAdvancer, audit AuditPruner) *CronService {
	return &CronService{
		jobs:  jobs,
		audit: audit,
	}
}

// Start registers the recurring maintenance work: a minutely job advance as
// a safety net behind the worker loop, and an hourly audit prune.
func (cs *CronService) Start(ctx context.Context, ctab *crontab.Crontab) {
	cs.advanceJobs(ctx)

	ctab.AddJob("* * * * *", func() {
		cs.advanceJobs(ctx)
		environment_variables.EnvironmentVariables.LoadFromEnv()
	})
	ctab.AddJob("0 * * * *", func() {
		cs.pruneAudit(ctx)
	})
}

// RunWorkerLoop drives the job lifecycle on a short interval so submitted
// work visibly progresses. It blocks until the context ends.
func (cs *CronService) RunWorkerLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cs.advanceJobs(ctx)
		}
	}
}

func (cs *CronService) advanceJobs(ctx context.Context) {
	if cs == nil || cs.jobs == nil {
		return
	}
	if _, err := cs.jobs.Advance(ctx); err != nil {
		logger.GetLogger().Warnf("cron service: failed to advance jobs: %v", err)
	}
}

func (cs *CronService) pruneAudit(ctx context.Context) {
	if cs == nil || cs.audit == nil {
		return
	}
	if _, err := cs.audit.Prune(ctx, AuditRetention); err != nil {
		logger.GetLogger().Warnf("cron service: failed to prune audit trail: %v", err)
	}
}
