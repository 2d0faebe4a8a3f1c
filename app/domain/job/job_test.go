package job

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJobStatusIsTerminal(t *testing.T) {
	assert.False(t, JobStatusPending.IsTerminal())
	assert.False(t, JobStatusProcessing.IsTerminal())
	assert.True(t, JobStatusCompleted.IsTerminal())
	assert.True(t, JobStatusFailed.IsTerminal())
	assert.True(t, JobStatusCancelled.IsTerminal())
}

func TestJobStatusCanCancel(t *testing.T) {
	assert.True(t, JobStatusPending.CanCancel())
	assert.True(t, JobStatusProcessing.CanCancel())
	assert.False(t, JobStatusCompleted.CanCancel())
	assert.False(t, JobStatusFailed.CanCancel())
	assert.False(t, JobStatusCancelled.CanCancel())
}

func TestNextPoll(t *testing.T) {
	delay, ok := NextPoll(JobStatusPending)
	assert.True(t, ok)
	assert.Equal(t, 1*time.Second, delay)

	delay, ok = NextPoll(JobStatusProcessing)
	assert.True(t, ok)
	assert.Equal(t, 2*time.Second, delay)

	for _, status := range []JobStatus{JobStatusCompleted, JobStatusFailed, JobStatusCancelled} {
		_, ok := NextPoll(status)
		assert.False(t, ok, "terminal status %q must stop polling", status)
	}
}

func TestPageActiveCount(t *testing.T) {
	page := Page{Jobs: []Job{
		{ID: "j_1", Status: JobStatusPending},
		{ID: "j_2", Status: JobStatusProcessing},
		{ID: "j_3", Status: JobStatusCompleted},
		{ID: "j_4", Status: JobStatusFailed},
	}}
	assert.Equal(t, 2, page.ActiveCount())
	assert.Zero(t, Page{}.ActiveCount())
}
