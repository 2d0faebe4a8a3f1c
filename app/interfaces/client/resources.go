package client

import (
	"context"
	"encoding/json"
	"time"

	"docurio.ai/docurio-client/app/domain/audit"
	"docurio.ai/docurio-client/app/domain/guest"
	"docurio.ai/docurio-client/app/domain/job"
	"docurio.ai/docurio-client/app/domain/resource"
	"docurio.ai/docurio-client/app/domain/session"
	"docurio.ai/docurio-client/app/domain/stats"
	"docurio.ai/docurio-client/app/domain/template"
	"docurio.ai/docurio-client/app/domain/user"
	"docurio.ai/docurio-client/app/infrastructure/cache"
	"docurio.ai/docurio-client/app/usecases/syncer"
)

// Snapshot is one decoded observation of a cached resource. Value is nil
// until a first fetch lands; Stale and InFlight describe how much to trust
// it. Err carries the most recent fetch failure, never erasing Value.
type Snapshot[T any] struct {
	Value     *T
	Stale     bool
	InFlight  bool
	UpdatedAt time.Time
	Err       error
}

func decodeEntry[T any](entry cache.Entry) Snapshot[T] {
	snap := Snapshot[T]{
		Stale:     entry.Stale,
		InFlight:  entry.InFlight,
		UpdatedAt: entry.UpdatedAt,
		Err:       entry.LastErr,
	}
	if entry.HasValue {
		var v T
		if err := json.Unmarshal(entry.Value, &v); err != nil {
			snap.Err = err
			return snap
		}
		snap.Value = &v
	}
	return snap
}

// Stream delivers decoded snapshots for one watched resource. The channel is
// latest-wins: a slow consumer only ever misses intermediate states, never
// the current one. Cancel releases the watch; with the last watcher gone the
// underlying poll loop stops.
type Stream[T any] struct {
	C      <-chan Snapshot[T]
	cancel func()
}

func (s *Stream[T]) Cancel() {
	s.cancel()
}

func readAs[T any](ctx context.Context, sync *syncer.Synchronizer, key resource.Key) Snapshot[T] {
	return decodeEntry[T](sync.Read(ctx, key))
}

func readFreshAs[T any](ctx context.Context, sync *syncer.Synchronizer, key resource.Key) (*T, error) {
	entry, err := sync.ReadFresh(ctx, key)
	if err != nil {
		return nil, err
	}
	snap := decodeEntry[T](entry)
	if snap.Err != nil && snap.Value == nil {
		return nil, snap.Err
	}
	return snap.Value, nil
}

func watchAs[T any](sync *syncer.Synchronizer, key resource.Key) *Stream[T] {
	entries, cancel := sync.Watch(key)
	out := make(chan Snapshot[T], 1)
	go func() {
		defer close(out)
		for entry := range entries {
			snap := decodeEntry[T](entry)
			select {
			case <-out:
			default:
			}
			out <- snap
		}
	}()
	return &Stream[T]{C: out, cancel: cancel}
}

// Job returns the last known state of one job and refreshes it in the
// background when stale.
func (c *Client) Job(ctx context.Context, id string) Snapshot[job.Job] {
	return readAs[job.Job](ctx, c.sync, resource.JobKey(id))
}

// WatchJob streams job state changes, polling the server at the cadence the
// current status demands until the job reaches a terminal status.
func (c *Client) WatchJob(id string) *Stream[job.Job] {
	return watchAs[job.Job](c.sync, resource.JobKey(id))
}

func (c *Client) Jobs(ctx context.Context, page, pageSize int) Snapshot[job.Page] {
	return readAs[job.Page](ctx, c.sync, resource.JobListKey(page, pageSize))
}

func (c *Client) WatchJobs(page, pageSize int) *Stream[job.Page] {
	return watchAs[job.Page](c.sync, resource.JobListKey(page, pageSize))
}

// JobResult fetches the artifact and report of a finished job. Results are
// immutable once produced, so a cached copy is served without a round trip.
func (c *Client) JobResult(ctx context.Context, id string) (*job.Result, error) {
	return readFreshAs[job.Result](ctx, c.sync, resource.JobResultKey(id))
}

func (c *Client) Identity(ctx context.Context) Snapshot[session.Identity] {
	return readAs[session.Identity](ctx, c.sync, resource.IdentityKey())
}

func (c *Client) GuestUsage(ctx context.Context) Snapshot[guest.Usage] {
	return readAs[guest.Usage](ctx, c.sync, resource.GuestUsageKey())
}

func (c *Client) Templates(ctx context.Context) Snapshot[template.List] {
	return readAs[template.List](ctx, c.sync, resource.TemplateListKey())
}

func (c *Client) Template(ctx context.Context, id string) Snapshot[template.Template] {
	return readAs[template.Template](ctx, c.sync, resource.TemplateKey(id))
}

func (c *Client) AdminUsers(ctx context.Context, page, pageSize int) Snapshot[user.Page] {
	return readAs[user.Page](ctx, c.sync, resource.AdminUserListKey(page, pageSize))
}

func (c *Client) AdminUser(ctx context.Context, id string) Snapshot[user.User] {
	return readAs[user.User](ctx, c.sync, resource.AdminUserKey(id))
}

func (c *Client) AdminStats(ctx context.Context) Snapshot[stats.Overview] {
	return readAs[stats.Overview](ctx, c.sync, resource.AdminStatsKey())
}

func (c *Client) AuditLogs(ctx context.Context, page, pageSize int) Snapshot[audit.Page] {
	return readAs[audit.Page](ctx, c.sync, resource.AuditListKey(page, pageSize))
}

func (c *Client) ServiceHealth(ctx context.Context) Snapshot[string] {
	return readAs[string](ctx, c.sync, resource.ServiceHealthKey())
}
