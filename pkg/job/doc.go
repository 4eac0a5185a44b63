// Package job runs background tasks on River, a Postgres-native queue.
//
// Tasks are plain structs with Name and Handle methods; the payload type is taken from
// the Handle signature:
//
//	type TrackUsage struct{ store templates.Store }
//
//	func (t *TrackUsage) Name() string { return "track_template_usage" }
//	func (t *TrackUsage) Handle(ctx context.Context, p UsagePayload) error {
//	    return t.store.TrackUsage(ctx, p.TemplateID, p.At)
//	}
//
// Periodic tasks add Schedule, a five-field cron expression:
//
//	func (t *Backup) Schedule() string { return "0 3 * * *" }
//	func (t *Backup) Handle(ctx context.Context) error { ... }
//
// Register both with the Manager and start it next to the HTTP server:
//
//	m, err := job.NewManager(pool,
//	    job.WithTask(tasks.NewTrackUsage(store)),
//	    job.WithScheduledTask(tasks.NewBackup(backuper, "0 3 * * *")),
//	    job.WithLogger(log),
//	)
//	if err := job.Migrate(ctx, pool); err != nil { ... }
//	if err := m.Start(ctx); err != nil { ... }
//	defer m.Stop(context.Background())
//
// Enqueue validates the task name against the registry and accepts options such as
// InQueue, ScheduledIn, MaxAttempts and UniqueFor. Healthcheck reports whether the
// manager is running and its pool reachable.
package job
