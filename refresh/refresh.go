// Package refresh keeps the snapshot cache warm by periodically re-running
// the feed queries that serving traffic depends on.
package refresh

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/sig-0/iq"
)

var (
	errInvalidJob      = errors.New("invalid job")
	errInvalidInterval = errors.New("invalid interval")
)

// retryDelay is the pause before a failed job is re-queued
const retryDelay = time.Second * 10

// Refresher is the scheduler for registered cache-warming jobs
type Refresher struct {
	logger *slog.Logger

	registeredJobs sync.Map

	q             iq.Queue[scheduledJob]
	queryInterval time.Duration
	qMux          sync.Mutex
}

// New creates a new Refresher instance
func New(opts ...Option) *Refresher {
	r := &Refresher{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		q:             iq.NewQueue[scheduledJob](),
		queryInterval: time.Second, // every second
	}

	// Apply the options
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register registers a new job with the refresher.
// The job is immediately queued up for execution
func (r *Refresher) Register(j Job) error {
	if j == nil || j.Name() == "" {
		return errInvalidJob
	}

	if j.Interval() <= 0 {
		return errInvalidInterval
	}

	// Register the job
	id := xid.New()
	r.registeredJobs.Store(id, j)

	r.logger.Info(
		"registered new refresh job",
		"name", j.Name(),
	)

	// Schedule the run
	r.scheduleJob(
		time.Now().UTC(),
		id,
		j,
	)

	return nil
}

// Start starts the refresh scheduling loop [BLOCKING]
func (r *Refresher) Start(ctx context.Context) error {
	collectorCh := make(chan *workerResponse, 100)

	// Start a listener for monitoring jobs
	ticker := time.NewTicker(r.queryInterval)
	defer ticker.Stop()

	// handleDue initializes all jobs that are executable (due)
	handleDue := func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				nextSJ := r.nextJob()
				if nextSJ == nil {
					return // nothing to schedule anymore
				}

				r.logger.Info(
					"scheduling refresh",
					"name", nextSJ.job.Name(),
				)

				// Spawn worker
				info := &workerInfo{
					job:   nextSJ.job,
					jobID: nextSJ.jobID,
					resCh: collectorCh,
				}

				go handleJob(ctx, info)
			}
		}
	}

	// Initialize the first set of due jobs (on boot)
	handleDue()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("refresher shut down")
			close(collectorCh)

			return nil
		case <-ticker.C:
			handleDue()
		case response := <-collectorCh:
			now := time.Now().UTC()

			rjRaw, ok := r.registeredJobs.Load(response.jobID)

			if !ok {
				r.logger.Error(
					"unable to load registered job",
					"id", response.jobID.String(),
				)

				continue
			}

			rj, _ := rjRaw.(Job)

			if response.error != nil {
				r.logger.Error(
					"error encountered during refresh",
					"name", rj.Name(),
					"err", response.error.Error(),
				)

				// Retry the job soon
				r.scheduleJob(
					now.Add(retryDelay),
					response.jobID,
					rj,
				)

				continue
			}

			r.logger.Debug(
				"refresh completed",
				"name", rj.Name(),
			)

			// Schedule a new run for this job
			r.scheduleJob(
				now.Add(rj.Interval()),
				response.jobID,
				rj,
			)
		}
	}
}

// scheduleJob schedules a new job run
func (r *Refresher) scheduleJob(
	at time.Time,
	jobID xid.ID,
	job Job,
) {
	r.qMux.Lock()
	defer r.qMux.Unlock()

	futureSJ := scheduledJob{
		at:    at,
		jobID: jobID,
		job:   job,
	}

	r.q.Push(futureSJ)
}

// nextJob fetches the next due job, as of the moment of calling
func (r *Refresher) nextJob() *scheduledJob {
	r.qMux.Lock()
	defer r.qMux.Unlock()

	now := time.Now().UTC()

	// Check if anything needs to be scheduled
	if r.q.Len() == 0 {
		return nil // nothing to schedule, all jobs are running
	}

	// Check if the top element is due
	if r.q.Index(0).at.After(now) {
		return nil // nothing to schedule, next job is in the future
	}

	// Grab the next job
	nextSJ := r.q.PopFront()

	return nextSJ
}
