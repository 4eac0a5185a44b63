// Package tasks holds the background tasks registered with the job manager and the
// usage recorders the API calls after an insertion.
//
// Usage is recorded one of two ways. DirectUsage writes to the store inside the
// request. QueuedUsage enqueues a TrackUsage job instead, so a slow store never
// delays an insertion:
//
//	manager, err := job.NewManager(pool,
//		job.WithTask(tasks.NewTrackUsage(store)),
//		job.WithScheduledTask(tasks.NewBackup(backuper, "0 3 * * *")),
//	)
//	srv := api.New(store, res, api.WithUsageRecorder(tasks.QueuedUsage{Jobs: manager}))
//
// TrackUsage drops events for templates deleted in the meantime. Backup writes one
// export per run; retention is handled by the transfer.Backuper it wraps.
package tasks
