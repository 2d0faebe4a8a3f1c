package job

import "time"

// Poll cadence. A pending job flips to processing quickly, so it is polled
// tighter than one already processing. Listings refresh on a slow fixed beat,
// and a failed poll re-arms at the listing cadence rather than hammering a
// struggling server.
const (
	PendingPollInterval    = 1 * time.Second
	ProcessingPollInterval = 2 * time.Second
	ListPollInterval       = 5 * time.Second
	RetryPollInterval      = 5 * time.Second
)

// NextPoll returns the delay before the next detail poll for a job in the
// given status. ok is false when the status is terminal and polling must stop.
func NextPoll(status JobStatus) (delay time.Duration, ok bool) {
	switch status {
	case JobStatusPending:
		return PendingPollInterval, true
	case JobStatusProcessing:
		return ProcessingPollInterval, true
	default:
		return 0, false
	}
}
