// Package transfer moves templates in and out of a store.
//
// # Export and import
//
// Export writes the portable JSON document:
//
//	{"version": "1.3", "exportedAt": "2026-10-18T09:30:00Z", "templates": [...]}
//
// Import reads it back. Every entry becomes a new template: ids, timestamps and
// usage counters in the file are discarded, entries without a string name are
// skipped, and {{templateid:...}} references between imported entries are rewritten
// to the ids the store assigned. Entries the store rejects are listed in
// Report.Failed and do not stop the import.
//
//	doc, err := transfer.Export(ctx, store, time.Now())
//	if err != nil {
//		return err
//	}
//	if err := transfer.Write(w, doc); err != nil {
//		return err
//	}
//
//	report, err := transfer.Import(ctx, store, r, log)
//
// # Markdown
//
// ImportMarkdown loads *.md files from any fs.FS. A file may start with a YAML
// header between --- lines:
//
//	---
//	name: Signature
//	category: Common
//	to: team@example.com, ops@example.com
//	insertMode: append
//	---
//	Best regards,
//	**{SENDER_NAME}**
//
// The body is rendered with GitHub-flavoured Markdown. Recipient fields accept a
// YAML list or a comma-separated string; a missing name falls back to the file name.
//
// # Backups
//
// Backuper stores exports in object storage under a key prefix and restores them:
//
//	b := transfer.NewBackuper(store, objects,
//		transfer.WithPrefix("backups/"),
//		transfer.WithRetention(14),
//	)
//	info, err := b.Backup(ctx)
//	report, err := b.Restore(ctx, "") // newest backup
//
// Keys embed the UTC timestamp, so lexical order is chronological. With a
// retention set, each Backup prunes all but the newest backups; pruning failures
// are logged and do not fail the backup.
package transfer
