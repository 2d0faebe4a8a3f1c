package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"docurio.ai/docurio-client/app/domain/job"
	"docurio.ai/docurio-client/app/domain/mutation"
	"docurio.ai/docurio-client/app/domain/session"
	"docurio.ai/docurio-client/app/interfaces/client"
	"docurio.ai/docurio-client/app/utils/functional"
	"docurio.ai/docurio-client/config/environment_variables"
)

func init() {
	environment_variables.EnvironmentVariables.LoadFromEnv()
}

// The docurio command submits a conversion or validation job for the files
// given on the command line and follows it through the local cache until the
// server reports a terminal status.
func main() {
	var (
		email    = flag.String("email", "", "sign in with this account instead of a guest session")
		password = flag.String("password", "", "password for -email")
		kind     = flag.String("kind", string(job.JobKindConversion), "job kind: conversion or validation")
		target   = flag.String("target", "pdf", "target format for conversion jobs")
		template = flag.String("template", "", "validation template id")
		timeout  = flag.Duration("timeout", 2*time.Minute, "give up waiting after this long")
	)
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: docurio [flags] file [file ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c := client.NewClientFromEnv()
	defer c.Close()

	identity, err := signIn(ctx, c, *email, *password)
	if err != nil {
		fatalf("sign in: %v", err)
	}
	fmt.Printf("signed in as %s (plan %s)\n", identity.Email, identity.PlanTier)

	if identity.Guest {
		if usage := c.GuestUsage(ctx); usage.Value != nil && usage.Value.Limit > 0 {
			fmt.Printf("guest allowance: %d of %d jobs remaining\n", usage.Value.Remaining(), usage.Value.Limit)
		}
	}

	payload := mutation.CreateJobPayload{
		Kind: job.JobKind(*kind),
		Files: functional.Map(flag.Args(), func(name string) mutation.FileSpec {
			return mutation.FileSpec{Name: name}
		}),
		TargetFormat: *target,
		TemplateID:   *template,
	}
	created, err := c.CreateJob(ctx, payload)
	if err != nil {
		fatalf("create job: %v", err)
	}
	fmt.Printf("job %s accepted\n", created.ID)

	final, err := watch(ctx, c, created.ID)
	if err != nil {
		fatalf("watch job: %v", err)
	}
	report(ctx, c, final)

	// The admin listing is gated the same way a UI route would be.
	if decision := c.Guard(ctx, session.RequireAdmin); decision.Kind == session.DecisionRender {
		if users := c.AdminUsers(ctx, 1, 10); users.Value != nil {
			fmt.Printf("admin: %d registered users\n", users.Value.Total)
		}
	} else if decision.Redirect != "" {
		fmt.Printf("admin view off limits, would redirect to %s\n", decision.Redirect)
	}

	if err := c.SignOut(ctx); err != nil {
		fatalf("sign out: %v", err)
	}
}

func signIn(ctx context.Context, c *client.Client, email, password string) (*session.Identity, error) {
	if email != "" {
		return c.SignIn(ctx, email, password)
	}
	return c.SignInAsGuest(ctx)
}

// watch follows the job through the cache, printing each status or progress
// transition, and returns the terminal representation.
func watch(ctx context.Context, c *client.Client, id string) (*job.Job, error) {
	stream := c.WatchJob(id)
	defer stream.Cancel()

	var lastStatus job.JobStatus
	lastProgress := -1
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case snap, ok := <-stream.C:
			if !ok {
				return nil, fmt.Errorf("watch on job %s ended before a terminal status", id)
			}
			if snap.Err != nil && snap.Value == nil {
				return nil, snap.Err
			}
			if snap.Value == nil {
				continue
			}
			j := snap.Value
			if j.Status != lastStatus || j.Progress != lastProgress {
				fmt.Printf("  %-10s %3d%%\n", j.Status, j.Progress)
				lastStatus, lastProgress = j.Status, j.Progress
			}
			if j.Status.IsTerminal() {
				return j, nil
			}
		}
	}
}

func report(ctx context.Context, c *client.Client, j *job.Job) {
	switch j.Status {
	case job.JobStatusCompleted:
		result, err := c.JobResult(ctx, j.ID)
		if err != nil {
			fatalf("fetch result: %v", err)
		}
		fmt.Printf("done: %s, %d bytes", result.ContentType, len(result.Artifact))
		if len(result.Warnings) > 0 {
			fmt.Printf(", %d warnings", len(result.Warnings))
		}
		fmt.Println()
	case job.JobStatusFailed:
		msg := "unknown error"
		if j.Error != nil {
			msg = *j.Error
		}
		fatalf("job failed: %s", msg)
	case job.JobStatusCancelled:
		fmt.Println("job was cancelled")
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "docurio: "+format+"\n", args...)
	os.Exit(1)
}
