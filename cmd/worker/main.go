// The worker runs the scheduled digest job: on each tick it collects
// content published since the previous tick and emails every subscribed
// reader a digest through the notification service.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	pgRepo "newsroom/internal/infra/adapter/persistence/postgres"
	"newsroom/internal/infra/db"
	"newsroom/internal/infra/notifier"
	"newsroom/internal/infra/worker"
	"newsroom/internal/observability/logging"
	"newsroom/internal/usecase/digest"
	"newsroom/internal/usecase/notify"
	pkgconfig "newsroom/pkg/config"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := worker.LoadConfigFromEnv()
	if err != nil {
		logger.Error("invalid worker configuration", slog.Any("error", err))
		os.Exit(1)
	}

	database := db.Open()
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	notifySvc := buildNotifier(logger, cfg.NotifyMaxConcurrent)

	digestSvc := &digest.Service{
		Users:         pgRepo.NewUserRepo(database),
		Subscriptions: pgRepo.NewSubscriptionRepo(database),
		Articles:      pgRepo.NewArticleRepo(database),
		Newsletters:   pgRepo.NewNewsletterRepo(database),
		Notifier:      notifySvc,
		MaxConcurrent: cfg.NotifyMaxConcurrent,
		Logger:        logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	health := worker.NewHealthServer(cfg.HealthPort, logger)

	runner := &digestRunner{
		svc:     digestSvc,
		timeout: cfg.DigestTimeout,
		logger:  logger,
		// the first run covers one full schedule interval back
		lastRun: time.Now().Add(-scheduleInterval(cfg.CronSchedule)),
	}

	scheduler := cron.New(cron.WithLocation(cfg.Location()))
	if _, err := scheduler.AddFunc(cfg.CronSchedule, func() { runner.run(ctx) }); err != nil {
		logger.Error("failed to schedule digest job", slog.Any("error", err))
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return health.Start(gctx) })
	g.Go(func() error {
		scheduler.Start()
		health.SetReady(true)
		logger.Info("digest worker started",
			slog.String("schedule", cfg.CronSchedule),
			slog.String("timezone", cfg.Timezone))

		<-gctx.Done()
		health.SetReady(false)

		// let an in-flight run finish
		<-scheduler.Stop().Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return notifySvc.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("worker exited with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker stopped")
}

// buildNotifier assembles the delivery channels for digests. Email is the
// primary channel; without SMTP configuration the noop channel keeps the
// pipeline observable in logs.
func buildNotifier(logger *slog.Logger, maxConcurrent int) notify.Service {
	var channels []notify.Channel

	emailCfg := notifier.EmailConfig{
		Enabled:  pkgconfig.GetEnvBool("EMAIL_ENABLED", false),
		Host:     pkgconfig.GetEnvString("SMTP_HOST", "localhost"),
		Port:     pkgconfig.GetEnvInt("SMTP_PORT", 587),
		Username: pkgconfig.GetEnvString("SMTP_USERNAME", ""),
		Password: pkgconfig.GetEnvString("SMTP_PASSWORD", ""),
		From:     pkgconfig.GetEnvString("EMAIL_FROM", "newsroom@localhost"),
	}
	if emailCfg.Enabled {
		channels = append(channels, notifier.NewEmailChannel(emailCfg))
	} else {
		logger.Warn("email channel disabled, digests go to the noop channel")
		channels = append(channels, notifier.NewNoopChannel())
	}

	return notify.NewService(channels, maxConcurrent)
}

// digestRunner serializes digest runs and tracks the coverage window so
// consecutive digests never skip or double-report a publication.
type digestRunner struct {
	svc     *digest.Service
	timeout time.Duration
	logger  *slog.Logger

	mu      sync.Mutex
	lastRun time.Time
}

func (r *digestRunner) run(ctx context.Context) {
	r.mu.Lock()
	since := r.lastRun
	started := time.Now()
	r.lastRun = started
	r.mu.Unlock()

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	sum, err := r.svc.Run(runCtx, since)
	worker.RecordRun(err, time.Since(started))
	if err != nil {
		// roll the window back so the next run retries this span
		r.mu.Lock()
		if r.lastRun.Equal(started) {
			r.lastRun = since
		}
		r.mu.Unlock()
		r.logger.Error("digest run failed", slog.Any("error", err))
		return
	}

	worker.RecordDeliveries(sum.Delivered, sum.Failed)
	worker.RecordItems("article", sum.Articles)
	worker.RecordItems("newsletter", sum.Newsletters)
}

// scheduleInterval estimates the gap between consecutive runs of a
// validated cron expression.
func scheduleInterval(spec string) time.Duration {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return 24 * time.Hour
	}
	first := sched.Next(time.Now())
	return sched.Next(first).Sub(first)
}
