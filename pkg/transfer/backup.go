package transfer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/templatewing/pkg/logger"
	"github.com/dmitrymomot/templatewing/pkg/storage"
	"github.com/dmitrymomot/templatewing/pkg/templates"
)

// BackupStore is what a Backuper needs from a template store.
type BackupStore interface {
	Lister
	Saver
}

// Backuper writes export documents to object storage and restores them.
type Backuper struct {
	store   BackupStore
	objects storage.Storage
	prefix  string
	keep    int
	log     *slog.Logger
	now     func() time.Time
}

// BackupOption configures a Backuper.
type BackupOption func(*Backuper)

// WithPrefix sets the key prefix backups are written under. Default "backups/".
func WithPrefix(prefix string) BackupOption {
	return func(b *Backuper) {
		if prefix = strings.Trim(prefix, "/"); prefix != "" {
			b.prefix = prefix + "/"
		}
	}
}

// WithRetention keeps only the newest n backups after each Backup. Zero keeps all.
func WithRetention(n int) BackupOption {
	return func(b *Backuper) {
		b.keep = max(n, 0)
	}
}

// WithBackupLogger sets the logger.
func WithBackupLogger(l *slog.Logger) BackupOption {
	return func(b *Backuper) {
		if l != nil {
			b.log = l
		}
	}
}

// WithBackupClock sets the time source used for backup keys.
func WithBackupClock(now func() time.Time) BackupOption {
	return func(b *Backuper) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBackuper creates a Backuper over store and objects.
func NewBackuper(store BackupStore, objects storage.Storage, opts ...BackupOption) *Backuper {
	b := &Backuper{
		store:   store,
		objects: objects,
		prefix:  "backups/",
		log:     logger.NewNope(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Backup exports the store and uploads it. Keys sort chronologically.
func (b *Backuper) Backup(ctx context.Context) (*storage.ObjectInfo, error) {
	now := b.now().UTC()
	doc, err := Export(ctx, b.store, now)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		return nil, fmt.Errorf("transfer: encode backup: %w", err)
	}

	key := b.prefix + "templates-" + now.Format("20060102T150405.000000000Z") + ".json"
	info, err := b.objects.Put(ctx, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), "application/json")
	if err != nil {
		return nil, fmt.Errorf("transfer: upload backup: %w", err)
	}
	b.log.InfoContext(ctx, "templates backed up",
		slog.String("key", info.Key),
		slog.Int("templates", len(doc.Templates)),
	)

	if b.keep > 0 {
		if err := b.Prune(ctx, b.keep); err != nil {
			b.log.WarnContext(ctx, "backup pruning failed", slog.String("error", err.Error()))
		}
	}
	return info, nil
}

// Backups lists stored backups, oldest first.
func (b *Backuper) Backups(ctx context.Context) ([]storage.ObjectInfo, error) {
	list, err := b.objects.List(ctx, b.prefix)
	if err != nil {
		return nil, fmt.Errorf("transfer: list backups: %w", err)
	}
	list = slices.DeleteFunc(list, func(o storage.ObjectInfo) bool {
		return !strings.HasSuffix(o.Key, ".json")
	})
	slices.SortFunc(list, func(x, y storage.ObjectInfo) int { return strings.Compare(x.Key, y.Key) })
	return list, nil
}

// Restore imports the backup stored under key. An empty key restores the newest.
func (b *Backuper) Restore(ctx context.Context, key string) (*Report, error) {
	if key == "" {
		list, err := b.Backups(ctx)
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, ErrNoBackup
		}
		key = list[len(list)-1].Key
	}

	rc, err := b.objects.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("transfer: download backup: %w", err)
	}
	defer rc.Close()

	report, err := Import(ctx, b.store, rc, b.log)
	if err != nil {
		return nil, err
	}
	b.log.InfoContext(ctx, "templates restored", slog.String("key", key), slog.Int("imported", report.Imported))
	return report, nil
}

// Prune deletes all but the newest keep backups.
func (b *Backuper) Prune(ctx context.Context, keep int) error {
	list, err := b.Backups(ctx)
	if err != nil {
		return err
	}
	if len(list) <= keep {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, obj := range list[:len(list)-keep] {
		g.Go(func() error {
			return b.objects.Delete(gctx, obj.Key)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("transfer: prune backups: %w", err)
	}
	return nil
}

var _ BackupStore = (templates.Store)(nil)
