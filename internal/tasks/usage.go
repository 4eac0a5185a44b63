package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/templatewing/pkg/job"
	"github.com/dmitrymomot/templatewing/pkg/templates"
)

// TrackUsageTaskName is the job name of TrackUsage.
const TrackUsageTaskName = "track_template_usage"

// UsagePayload is the TrackUsage job payload.
type UsagePayload struct {
	TemplateID string    `json:"template_id"`
	At         time.Time `json:"at"`
}

// UsageTracker is the store method TrackUsage calls.
type UsageTracker interface {
	TrackUsage(ctx context.Context, id string, at time.Time) error
}

// TrackUsage increments a template's usage counter in the background.
type TrackUsage struct {
	store UsageTracker
}

// NewTrackUsage returns the task that applies queued usage events to store.
func NewTrackUsage(store UsageTracker) *TrackUsage {
	return &TrackUsage{store: store}
}

// Name is the job kind the manager registers the task under.
func (t *TrackUsage) Name() string { return TrackUsageTaskName }

// Handle skips templates deleted since the job was enqueued.
func (t *TrackUsage) Handle(ctx context.Context, p UsagePayload) error {
	if p.TemplateID == "" {
		return nil
	}
	err := t.store.TrackUsage(ctx, p.TemplateID, p.At)
	if err != nil && !errors.Is(err, templates.ErrNotFound) {
		return err
	}
	return nil
}

// DirectUsage records usage synchronously on the store.
type DirectUsage struct {
	Store UsageTracker
}

// RecordUsage updates the store synchronously.
func (d DirectUsage) RecordUsage(ctx context.Context, templateID string, at time.Time) error {
	return d.Store.TrackUsage(ctx, templateID, at)
}

// Enqueuer is the part of job.Manager QueuedUsage needs.
type Enqueuer interface {
	Enqueue(ctx context.Context, name string, payload any, opts ...job.EnqueueOption) error
}

// QueuedUsage records usage through the job queue.
type QueuedUsage struct {
	Jobs Enqueuer
}

// RecordUsage enqueues a TrackUsage job and returns once it is persisted.
func (q QueuedUsage) RecordUsage(ctx context.Context, templateID string, at time.Time) error {
	return q.Jobs.Enqueue(ctx, TrackUsageTaskName, UsagePayload{TemplateID: templateID, At: at}, job.MaxAttempts(5))
}
