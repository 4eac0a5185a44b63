// Command templatewing serves the template API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/templatewing/internal/api"
	"github.com/dmitrymomot/templatewing/internal/config"
	"github.com/dmitrymomot/templatewing/internal/tasks"
	"github.com/dmitrymomot/templatewing/pkg/db"
	"github.com/dmitrymomot/templatewing/pkg/health"
	"github.com/dmitrymomot/templatewing/pkg/job"
	"github.com/dmitrymomot/templatewing/pkg/logger"
	"github.com/dmitrymomot/templatewing/pkg/mailer"
	"github.com/dmitrymomot/templatewing/pkg/mailer/resend"
	"github.com/dmitrymomot/templatewing/pkg/redis"
	"github.com/dmitrymomot/templatewing/pkg/resolver"
	"github.com/dmitrymomot/templatewing/pkg/storage"
	"github.com/dmitrymomot/templatewing/pkg/templates"
	"github.com/dmitrymomot/templatewing/pkg/transfer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.NewWithSentry(cfg.Log, cfg.Sentry,
		logger.RequestIDExtractor(),
		logger.TemplateIDExtractor(),
		logger.DraftIDExtractor(),
	)
	defer sentry.Flush(2 * time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := health.Checks{}

	var pool *pgxpool.Pool
	if cfg.NeedsPostgres() {
		pool, err = db.Connect(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer pool.Close()
		checks["postgres"] = db.Healthcheck(pool)
	}

	store, closeStore, err := openStore(ctx, cfg, pool, checks, log)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := seed(ctx, store, cfg.Store.SeedDir, log); err != nil {
		return err
	}

	res := resolver.New(store,
		resolver.WithMaxDepth(cfg.Store.MaxDepth),
		resolver.WithLogger(log),
	)

	var sender mailer.Sender = mailer.NewLogSender(log)
	if cfg.Resend.Enabled() {
		sender = resend.New(cfg.Resend)
	}
	if cfg.Mailer.DefaultFrom == "" {
		cfg.Mailer.DefaultFrom = cfg.Resend.From()
	}

	var backuper *transfer.Backuper
	if cfg.Storage.Enabled() {
		objects, err := storage.New(cfg.Storage)
		if err != nil {
			return err
		}
		backuper = transfer.NewBackuper(store, objects,
			transfer.WithPrefix(cfg.Jobs.BackupPrefix),
			transfer.WithRetention(cfg.Jobs.BackupRetention),
			transfer.WithBackupLogger(log),
		)
	}

	var usage api.UsageRecorder = tasks.DirectUsage{Store: store}
	var manager *job.Manager
	if cfg.Jobs.Enabled {
		if err := job.Migrate(ctx, pool); err != nil {
			return err
		}
		opts := []job.Option{
			job.WithTask(tasks.NewTrackUsage(store)),
			job.WithMaxWorkers(cfg.Jobs.MaxWorkers),
			job.WithLogger(log),
		}
		if backuper != nil {
			opts = append(opts, job.WithScheduledTask(tasks.NewBackup(backuper, cfg.Jobs.BackupSchedule)))
		}
		manager, err = job.NewManager(pool, opts...)
		if err != nil {
			return err
		}
		usage = tasks.QueuedUsage{Jobs: manager}
		checks["jobs"] = job.Healthcheck(manager)
	}

	apiOpts := []api.Option{
		api.WithMailer(mailer.New(sender, cfg.Mailer)),
		api.WithUsageRecorder(usage),
		api.WithHealthChecks(checks),
		api.WithLogger(log),
		api.WithRequestTimeout(cfg.HTTP.RequestTimeout),
		api.WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes),
	}
	if backuper != nil {
		apiOpts = append(apiOpts, api.WithBackups(backuper))
	}
	srv := api.New(store, res, apiOpts...)

	g, gctx := errgroup.WithContext(ctx)
	if manager != nil {
		if err := manager.Start(ctx); err != nil {
			return err
		}
		g.Go(func() error {
			<-gctx.Done()
			stopCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()
			return manager.Stop(stopCtx)
		})
	}
	g.Go(func() error {
		return srv.ListenAndServe(gctx, cfg.HTTP.Addr, cfg.HTTP.ShutdownTimeout)
	})

	if err := g.Wait(); err != nil {
		log.Error("shutdown completed with errors", slog.String("error", err.Error()))
		return err
	}
	log.Info("shutdown completed")
	return nil
}

// openStore builds the configured template store and registers its health check.
func openStore(ctx context.Context, cfg config.Config, pool *pgxpool.Pool, checks health.Checks, log *slog.Logger) (templates.Store, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		if err := db.Migrate(ctx, pool, templates.Migrations(), cfg.DB.MigrationsTable, log); err != nil {
			return nil, nil, err
		}
		return templates.NewPostgresStore(pool), func() {}, nil

	case config.BackendRedis:
		client, err := redis.Open(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		checks["redis"] = redis.Healthcheck(client)
		return templates.NewRedisStore(client, cfg.Store.RedisKey), func() { _ = client.Close() }, nil

	default:
		log.Warn("using in-memory template store, templates are lost on restart")
		return templates.NewMemoryStore(), func() {}, nil
	}
}

// seed imports Markdown templates from dir into an empty store.
func seed(ctx context.Context, store templates.Store, dir string, log *slog.Logger) error {
	if dir == "" {
		return nil
	}
	list, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(list) > 0 {
		return nil
	}
	report, err := transfer.ImportMarkdown(ctx, store, os.DirFS(dir), log)
	if err != nil {
		return err
	}
	log.Info("templates seeded", slog.String("dir", dir), slog.Int("imported", report.Imported), slog.Int("failed", len(report.Failed)))
	return nil
}
