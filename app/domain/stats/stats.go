package stats

// Overview is the aggregate the admin dashboard renders.
type Overview struct {
	TotalUsers    int64 `json:"total_users"`
	GuestUsers    int64 `json:"guest_users"`
	ActiveJobs    int64 `json:"active_jobs"`
	CompletedJobs int64 `json:"completed_jobs"`
	FailedJobs    int64 `json:"failed_jobs"`
	GeneratedAt   int64 `json:"generated_at"`
}
