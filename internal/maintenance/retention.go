// internal/maintenance/retention.go
package maintenance

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Pruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RunsRetention deletes generation run records older than Keep once a day
// at Hour:Minute in Location.
type RunsRetention struct {
	Store    Pruner
	Log      *zap.Logger
	Keep     time.Duration
	Hour     int
	Minute   int
	Location *time.Location

	now func() time.Time
}

// Run blocks until ctx is cancelled.
func (r *RunsRetention) Run(ctx context.Context) error {
	loc := r.Location
	if loc == nil {
		loc = time.UTC
	}
	for {
		next := NextRun(r.clock().In(loc), r.Hour, r.Minute)
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce prunes immediately and reports how many rows went away.
func (r *RunsRetention) RunOnce(ctx context.Context) int64 {
	if r.Keep <= 0 {
		return 0
	}
	cutoff := r.clock().Add(-r.Keep)
	n, err := r.Store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		r.Log.Warn("retention: delete old generation_runs failed", zap.Error(err))
		return 0
	}
	r.Log.Info("retention: generation_runs pruned", zap.Int64("deleted", n), zap.Time("cutoff", cutoff))
	return n
}

func (r *RunsRetention) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

// NextRun is the first h:m strictly after now, in now's location.
func NextRun(now time.Time, h, m int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
