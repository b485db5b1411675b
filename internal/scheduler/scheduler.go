package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"CryptoBuddy/internal/catalog"
	"CryptoBuddy/internal/metrics"
	"CryptoBuddy/internal/notifier"
)

// sendRetries is how many times a failed digest delivery is retried.
const sendRetries = 3

// Sender delivers a message to the digest chat.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

var _ Sender = (*notifier.TelegramNotifier)(nil)

// Scheduler runs the periodic market digest.
type Scheduler struct {
	Cron    *cron.Cron
	Catalog *catalog.Catalog
	Sender  Sender
	Ctx     context.Context

	log *zap.Logger
	now func() time.Time
}

// NewScheduler creates a new Scheduler. Cron specs carry a seconds field.
func NewScheduler(ctx context.Context, cat *catalog.Catalog, sender Sender, log *zap.Logger) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Catalog: cat,
		Sender:  sender,
		Ctx:     ctx,
		log:     log,
		now:     time.Now,
	}
}

// Register schedules the digest job on a six-field cron expression.
func (s *Scheduler) Register(digestCron string) error {
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(s.Cron.Entries())))
}

// Stop stops the scheduler and waits for a running digest to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// Run starts the scheduler and blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	s.Start()
	<-ctx.Done()
	s.Stop()
	return nil
}

// RunDigestNow broadcasts the digest immediately.
func (s *Scheduler) RunDigestNow() {
	s.digestTask()
}

func (s *Scheduler) digestTask() {
	s.log.Info("running digest task")
	text := notifier.FormatDigest(s.Catalog, s.now())
	if err := s.Sender.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		metrics.FailuresTotal.WithLabelValues("digest").Inc()
		s.log.Error("send digest", zap.Error(err))
		return
	}
	metrics.DigestsSent.Inc()
}
