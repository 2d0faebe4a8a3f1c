package client

import (
	"context"
	"encoding/json"

	"docurio.ai/docurio-client/app/domain/job"
	"docurio.ai/docurio-client/app/domain/mutation"
	"docurio.ai/docurio-client/app/domain/template"
	"docurio.ai/docurio-client/app/domain/user"
)

func runAs[T any](ctx context.Context, c *Client, kind mutation.Kind, payload any) (*T, error) {
	raw, err := c.sync.Run(ctx, kind, payload)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateJob submits files for validation or conversion. The returned job is
// already cached under its own key, and every cached job list is marked
// stale so open views re-fetch.
func (c *Client) CreateJob(ctx context.Context, payload mutation.CreateJobPayload) (*job.Job, error) {
	return runAs[job.Job](ctx, c, mutation.KindJobCreate, payload)
}

// CancelJob requests cancellation of a queued or running job. Jobs already
// in a terminal status are rejected by the server.
func (c *Client) CancelJob(ctx context.Context, id string) (*job.Job, error) {
	return runAs[job.Job](ctx, c, mutation.KindJobCancel, mutation.CancelJobPayload{JobID: id})
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	_, err := c.sync.Run(ctx, mutation.KindJobDelete, mutation.DeleteJobPayload{JobID: id})
	return err
}

func (c *Client) UpdateUser(ctx context.Context, payload mutation.UpdateUserPayload) (*user.User, error) {
	return runAs[user.User](ctx, c, mutation.KindUserUpdate, payload)
}

func (c *Client) CreateTemplate(ctx context.Context, payload mutation.CreateTemplatePayload) (*template.Template, error) {
	return runAs[template.Template](ctx, c, mutation.KindTemplateCreate, payload)
}

func (c *Client) UpdateTemplate(ctx context.Context, payload mutation.UpdateTemplatePayload) (*template.Template, error) {
	return runAs[template.Template](ctx, c, mutation.KindTemplateUpdate, payload)
}

func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	_, err := c.sync.Run(ctx, mutation.KindTemplateDelete, mutation.DeleteTemplatePayload{TemplateID: id})
	return err
}
