package tasks

import (
	"context"

	"github.com/dmitrymomot/templatewing/pkg/storage"
)

// Backuper is the part of transfer.Backuper the Backup task needs.
type Backuper interface {
	Backup(ctx context.Context) (*storage.ObjectInfo, error)
}

// Backup exports all templates to object storage on a cron schedule.
type Backup struct {
	backuper Backuper
	schedule string
}

// NewBackup creates the task. schedule is a five-field cron expression.
func NewBackup(b Backuper, schedule string) *Backup {
	return &Backup{backuper: b, schedule: schedule}
}

// Name is the periodic job name.
func (t *Backup) Name() string { return "backup_templates" }

// Schedule returns the cron expression the task was created with.
func (t *Backup) Schedule() string { return t.schedule }

// Handle writes one backup. Retention is applied by the Backuper.
func (t *Backup) Handle(ctx context.Context) error {
	_, err := t.backuper.Backup(ctx)
	return err
}
