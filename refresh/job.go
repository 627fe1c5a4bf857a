package refresh

import (
	"context"
	"time"

	"github.com/rs/xid"
)

// Job is a single cache-warming task
type Job interface {
	// Name returns the human-readable name of the job
	Name() string

	// Interval returns the interval at which the job should be run
	Interval() time.Duration

	// Refresh performs the warm-up fetch
	Refresh(ctx context.Context) error
}

// scheduledJob is a single scheduled Job run
type scheduledJob struct {
	at    time.Time
	job   Job
	jobID xid.ID
}

// Less is utilized to sort scheduled jobs by their due-time (earliest == first)
func (a scheduledJob) Less(b scheduledJob) bool {
	return a.at.Before(b.at)
}

// workerInfo is the work context for the job routine
type workerInfo struct {
	job   Job
	resCh chan<- *workerResponse
	jobID xid.ID
}

// workerResponse is the job routine response
type workerResponse struct {
	error error  // encountered error, if any
	jobID xid.ID // the job ID
}

// handleJob runs the job's refresh
func handleJob(
	ctx context.Context,
	info *workerInfo,
) {
	err := info.job.Refresh(ctx)

	response := &workerResponse{
		error: err,
		jobID: info.jobID,
	}

	select {
	case <-ctx.Done():
	case info.resCh <- response:
	}
}
