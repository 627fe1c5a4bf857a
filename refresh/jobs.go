package refresh

import (
	"context"
	"time"

	"github.com/yusufcetin82/tcmb-xml-rates/query"
)

// DailyJob keeps the latest daily bulletin warm in the client cache
type DailyJob struct {
	client *query.Client
}

// NewDailyJob creates the daily bulletin warm-up job
func NewDailyJob(client *query.Client) *DailyJob {
	return &DailyJob{
		client: client,
	}
}

func (j *DailyJob) Name() string {
	return "daily-bulletin"
}

func (j *DailyJob) Interval() time.Duration {
	return time.Minute * 5 // matches the same-day cache lifetime
}

func (j *DailyJob) Refresh(ctx context.Context) error {
	_, err := j.client.Rates(ctx, query.Options{})

	return err
}

// HourlyJob keeps the current hourly snapshot warm in the client cache
type HourlyJob struct {
	client *query.Client
}

// NewHourlyJob creates the hourly snapshot warm-up job
func NewHourlyJob(client *query.Client) *HourlyJob {
	return &HourlyJob{
		client: client,
	}
}

func (j *HourlyJob) Name() string {
	return "hourly-snapshot"
}

func (j *HourlyJob) Interval() time.Duration {
	return time.Minute // the active slot cache entry lives for a minute
}

func (j *HourlyJob) Refresh(ctx context.Context) error {
	_, err := j.client.HourlyRates(ctx, query.Options{})

	return err
}
