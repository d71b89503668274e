package metrics

import (
	"context"
	"sync/atomic"
	"time"
)

// Recorder fans service events out to Sentry, CloudWatch and the in-process
// counters served by the metrics endpoint. A nil CloudWatch client is fine.
type Recorder struct {
	sentry *SentryMetrics
	cloud  *Client

	requests   atomic.Int64
	errors     atomic.Int64
	selections atomic.Int64
	tags       atomic.Int64
	blends     atomic.Int64
	unresolved atomic.Int64
}

// NewRecorder creates a recorder publishing to cloud when it is enabled.
func NewRecorder(cloud *Client) *Recorder {
	return &Recorder{
		sentry: NewSentryMetrics(),
		cloud:  cloud,
	}
}

// APIRequest records one finished HTTP request.
func (r *Recorder) APIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	r.requests.Add(1)
	if statusCode >= httpStatusServerError {
		r.errors.Add(1)
	}
	r.sentry.RecordAPIRequest(ctx, endpoint, statusCode, duration)
	r.cloud.RecordAPIRequest(endpoint, statusCode, duration)
}

// Selection records one instrument selection.
func (r *Recorder) Selection(ctx context.Context, genre string, tagCount int) {
	r.selections.Add(1)
	r.tags.Add(int64(tagCount))
	r.sentry.RecordSelection(ctx, genre, tagCount)
	r.cloud.RecordSelection(genre, tagCount)
}

// Blend records one guidance blend. genres are the resolved names.
func (r *Recorder) Blend(ctx context.Context, genres []string, resolved bool) {
	r.blends.Add(1)
	if !resolved {
		r.unresolved.Add(1)
	}
	r.sentry.RecordBlend(ctx, genres, resolved)
	r.cloud.RecordBlend(len(genres), resolved)
}

// Snapshot returns the counters since start-up.
func (r *Recorder) Snapshot() map[string]int64 {
	return map[string]int64{
		"requests":          r.requests.Load(),
		"server_errors":     r.errors.Load(),
		"selections":        r.selections.Load(),
		"selected_tags":     r.tags.Load(),
		"blends":            r.blends.Load(),
		"unresolved_blends": r.unresolved.Load(),
	}
}
