package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-stock-scanner/internal/entity"
	"golang-stock-scanner/internal/scanner/config"
	"golang-stock-scanner/pkg/logger"

	"github.com/robfig/cron/v3"
)

// SchedulerService triggers the nightly scan on a cron schedule.
type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
	// ProcessScheduledRun triggers one scheduled scan immediately.
	ProcessScheduledRun(ctx context.Context)
	// Next returns the next scheduled time after now.
	Next(now time.Time) time.Time
}

type schedulerService struct {
	cfg         *config.Config
	scanService ScanService
	logger      *logger.Logger
	cronParser  cron.Parser
	schedule    cron.Schedule
	cron        *cron.Cron
}

// NewSchedulerService creates a new scheduler service and validates the cron expression.
func NewSchedulerService(cfg *config.Config, scanService ScanService, log *logger.Logger) (SchedulerService, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(cfg.Schedule.Cron)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule cron %q: %w", cfg.Schedule.Cron, err)
	}

	return &schedulerService{
		cfg:         cfg,
		scanService: scanService,
		logger:      log,
		cronParser:  parser,
		schedule:    schedule,
	}, nil
}

// Start registers the nightly job and starts the cron loop.
func (s *schedulerService) Start(ctx context.Context) error {
	loc, err := time.LoadLocation(s.cfg.App.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid time zone %q: %w", s.cfg.App.TimeZone, err)
	}

	s.cron = cron.New(cron.WithParser(s.cronParser), cron.WithLocation(loc))
	if _, err := s.cron.AddFunc(s.cfg.Schedule.Cron, func() { s.ProcessScheduledRun(ctx) }); err != nil {
		return err
	}
	s.cron.Start()

	s.logger.Info("Scheduler service started",
		logger.StringField("cron", s.cfg.Schedule.Cron),
		logger.StringField("profile", s.cfg.Schedule.Profile),
		logger.Field("next_run", s.Next(time.Now().In(loc))),
	)
	return nil
}

func (s *schedulerService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler service stopped")
}

func (s *schedulerService) ProcessScheduledRun(ctx context.Context) {
	run, err := s.scanService.Trigger(ctx, TriggerOptions{
		Profile: s.cfg.Schedule.Profile,
		Notify:  s.cfg.Schedule.Notify,
	})
	if err != nil {
		if errors.Is(err, entity.ErrRunInProgress) {
			s.logger.Warn("Skipping scheduled scan, a scan is already running")
			return
		}
		s.logger.Error("Failed to trigger scheduled scan", logger.ErrorField(err))
		return
	}
	s.logger.Info("Scheduled scan triggered", logger.StringField("run_id", run.ID), logger.StringField("profile", run.Profile))
}

func (s *schedulerService) Next(now time.Time) time.Time {
	return s.schedule.Next(now)
}
