package client

import (
	"context"

	"github.com/mileusna/crontab"

	"docurio.ai/docurio-client/app/infrastructure/cache"
	"docurio.ai/docurio-client/app/infrastructure/credentials"
	"docurio.ai/docurio-client/app/infrastructure/gateway"
	"docurio.ai/docurio-client/app/usecases/syncer"
	"docurio.ai/docurio-client/app/utils/clock"
)

// Client is the typed surface applications talk to. Every read goes through
// the result cache, every write through the mutation pipeline, so callers
// never see a raw HTTP exchange.
type Client struct {
	sync *syncer.Synchronizer
}

func NewClient(sync *syncer.Synchronizer) *Client {
	return &Client{sync: sync}
}

// NewClientFromEnv wires the default stack: the gateway against API_BASE_URL,
// credentials from CREDENTIALS_FILE, and the cache store selected by
// CACHE_STORE_TYPE.
func NewClientFromEnv() *Client {
	clk := clock.System()
	creds := credentials.NewStoreFromEnv()
	rc := cache.NewResultCache(cache.NewEntryStore(), clk)
	gw := gateway.NewGateway(creds)
	return NewClient(syncer.NewSynchronizer(rc, gw, creds, clk))
}

// Synchronizer exposes the underlying sync engine, mainly for the cron
// service and for tests.
func (c *Client) Synchronizer() *syncer.Synchronizer {
	return c.sync
}

// StartMaintenance begins the background beats of a long-lived client:
// session token rotation, health cache refresh, config re-reads. The first
// health read happens before this returns; the scheduled beats run until the
// process exits. One-shot callers can skip it. Call it at most once.
func (c *Client) StartMaintenance(ctx context.Context) {
	syncer.NewCronService(c.sync).Start(ctx, crontab.New())
}

func (c *Client) Close() error {
	return c.sync.Cache().Close()
}
