package stats

import (
	"time"

	"golang.org/x/net/context"

	"docurio.ai/docurio-client/app/domain/job"
	"docurio.ai/docurio-client/app/domain/user"
)

type StatsService struct {
	userService *user.UserService
	jobService  *job.JobService
}

func NewService(userService *user.UserService, jobService *job.JobService) *StatsService {
	return &StatsService{
		userService: userService,
		jobService:  jobService,
	}
}

// Overview assembles the platform-wide counters the admin dashboard shows.
// The counts are read one after another, so the snapshot is not perfectly
// consistent under load; the dashboard refreshes often enough not to care.
func (s *StatsService) Overview(ctx context.Context) (*Overview, error) {
	totalUsers, err := s.userService.CountByFilter(ctx, user.UserFilter{})
	if err != nil {
		return nil, err
	}
	guest := true
	guestUsers, err := s.userService.CountByFilter(ctx, user.UserFilter{Guest: &guest})
	if err != nil {
		return nil, err
	}
	activeJobs, err := s.jobService.CountByFilter(ctx, job.JobFilter{
		Statuses: []job.JobStatus{job.JobStatusPending, job.JobStatusProcessing},
	})
	if err != nil {
		return nil, err
	}
	completedJobs, err := s.jobService.CountByFilter(ctx, job.JobFilter{
		Statuses: []job.JobStatus{job.JobStatusCompleted},
	})
	if err != nil {
		return nil, err
	}
	failedJobs, err := s.jobService.CountByFilter(ctx, job.JobFilter{
		Statuses: []job.JobStatus{job.JobStatusFailed},
	})
	if err != nil {
		return nil, err
	}
	return &Overview{
		TotalUsers:    totalUsers,
		GuestUsers:    guestUsers,
		ActiveJobs:    activeJobs,
		CompletedJobs: completedJobs,
		FailedJobs:    failedJobs,
		GeneratedAt:   time.Now().Unix(),
	}, nil
}
