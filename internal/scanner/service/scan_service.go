package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang-stock-scanner/internal/entity"
	"golang-stock-scanner/internal/scanner/config"
	"golang-stock-scanner/internal/scanner/dto"
	"golang-stock-scanner/internal/scanner/repository"
	"golang-stock-scanner/internal/scanner/screener"
	"golang-stock-scanner/pkg/logger"
	"golang-stock-scanner/pkg/telegram"
	"golang-stock-scanner/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ProgressFunc receives one event per processed ticker and a final Done event.
type ProgressFunc func(entity.Progress)

// RunOptions configures a single scan.
type RunOptions struct {
	RunID    string
	Profile  string
	Tickers  []string
	Progress ProgressFunc
}

// TriggerOptions configures a background scan.
type TriggerOptions struct {
	Profile string
	Notify  bool
}

// ScanService runs the screener over the ticker universe.
type ScanService interface {
	// Run scans synchronously. The returned run is non-nil whenever the profile resolves.
	Run(ctx context.Context, opts RunOptions) (*entity.ScanRun, error)
	// Trigger starts a scan in the background and returns its initial snapshot.
	Trigger(ctx context.Context, opts TriggerOptions) (*entity.ScanRun, error)
	Latest() *entity.ScanRun
	Subscribe() (<-chan entity.Progress, func())
	Profiles() []screener.Profile
	Universe(ctx context.Context) ([]string, error)
	// Close cancels background runs and waits for them to finish.
	Close()
}

type scanService struct {
	cfg      *config.Config
	bars     repository.BarRepository
	universe repository.UniverseRepository
	profiles map[string]screener.Profile
	tracker  *RunTracker
	notifier telegram.Notifier
	log      *logger.Logger

	rootCtx    context.Context
	rootCancel context.CancelFunc
	wg         sync.WaitGroup
}

// NewScanService creates a new scan service. notifier may be nil.
func NewScanService(cfg *config.Config, bars repository.BarRepository, universe repository.UniverseRepository, profiles map[string]screener.Profile, notifier telegram.Notifier, log *logger.Logger) ScanService {
	rootCtx, rootCancel := context.WithCancel(context.Background())
	return &scanService{
		cfg:        cfg,
		bars:       bars,
		universe:   universe,
		profiles:   profiles,
		tracker:    NewRunTracker(),
		notifier:   notifier,
		log:        log,
		rootCtx:    rootCtx,
		rootCancel: rootCancel,
	}
}

func (s *scanService) Run(ctx context.Context, opts RunOptions) (*entity.ScanRun, error) {
	profile, err := s.profile(opts.Profile)
	if err != nil {
		return nil, err
	}
	scr, err := screener.New(profile, screener.WithDisplaySuffix(s.cfg.Scanner.DisplaySuffix))
	if err != nil {
		return nil, err
	}

	run := &entity.ScanRun{
		ID:        opts.RunID,
		Profile:   profile.Name,
		Status:    entity.RunStatusRunning,
		StartedAt: time.Now(),
		Results:   []entity.ScanResult{},
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	ctx = logger.WithContextFields(ctx, logger.StringField("run_id", run.ID), logger.StringField("profile", profile.Name))

	tickers, err := s.tickers(ctx, opts.Tickers)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to load ticker universe", logger.ErrorField(err))
		s.finish(run, entity.RunStatusFailed, err)
		return run, fmt.Errorf("failed to load universe: %w", err)
	}
	run.Total = len(tickers)

	s.log.InfoContext(ctx, "Scan started", logger.IntField("total", run.Total), logger.IntField("workers", s.workers()))

	outcomes := make(chan entity.TickerOutcome)
	go func() {
		defer close(outcomes)

		g := new(errgroup.Group)
		g.SetLimit(s.workers())
		for _, ticker := range tickers {
			if ctx.Err() != nil {
				break
			}
			ticker := ticker
			g.Go(func() error {
				outcomes <- s.scanTicker(ctx, scr, profile, ticker)
				return nil
			})
		}
		_ = g.Wait()
	}()

	// Single writer: only this loop mutates run.
	for o := range outcomes {
		run.Record(o)
		s.logOutcome(ctx, o)
		if opts.Progress != nil {
			opts.Progress(entity.Progress{
				RunID:     run.ID,
				Processed: run.Processed,
				Total:     run.Total,
				Fraction:  run.Fraction(),
				Ticker:    o.Ticker,
				Status:    o.Status,
			})
		}
	}

	screener.SortResults(run.Results)

	if err := ctx.Err(); err != nil {
		s.finish(run, entity.RunStatusCanceled, err)
		s.log.WarnContext(ctx, "Scan canceled", logger.IntField("processed", run.Processed), logger.IntField("total", run.Total))
		return run, err
	}

	s.finish(run, entity.RunStatusCompleted, nil)
	if opts.Progress != nil {
		opts.Progress(entity.Progress{
			RunID:     run.ID,
			Processed: run.Processed,
			Total:     run.Total,
			Fraction:  run.Fraction(),
			Done:      true,
		})
	}

	s.log.InfoContext(ctx, "Scan completed",
		logger.IntField("total", run.Total),
		logger.IntField("qualified", run.Qualified),
		logger.IntField("skipped", run.Skipped),
		logger.IntField("failed", run.Failed),
	)
	return run, nil
}

// scanTicker fetches and evaluates one ticker. Panics become failed outcomes.
func (s *scanService) scanTicker(ctx context.Context, scr *screener.Screener, profile screener.Profile, ticker string) (outcome entity.TickerOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = entity.Failed(ticker, utils.Recover(r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return entity.Failed(ticker, err)
	}

	series, err := s.bars.GetDailyBars(ctx, dto.GetBarsParam{Ticker: ticker, Range: profile.Range})
	if err != nil {
		return entity.Failed(ticker, err)
	}
	series.Ticker = ticker

	return scr.Evaluate(series)
}

func (s *scanService) logOutcome(ctx context.Context, o entity.TickerOutcome) {
	switch o.Status {
	case entity.OutcomeQualified:
		s.log.InfoContext(ctx, "Ticker qualified",
			logger.StringField("ticker", o.Ticker),
			logger.Float64Field("probability", o.Result.Probability),
		)
	case entity.OutcomeSkipped:
		s.log.DebugContext(ctx, "Ticker skipped", logger.StringField("ticker", o.Ticker), logger.StringField("reason", string(o.Reason)))
	case entity.OutcomeFailed:
		s.log.WarnContext(ctx, "Ticker failed", logger.StringField("ticker", o.Ticker), logger.ErrorField(o.Err))
	}
}

func (s *scanService) finish(run *entity.ScanRun, status entity.RunStatus, err error) {
	now := time.Now()
	run.Status = status
	run.CompletedAt = &now
	if err != nil {
		run.Error = err.Error()
	}
}

func (s *scanService) Trigger(ctx context.Context, opts TriggerOptions) (*entity.ScanRun, error) {
	profile, err := s.profile(opts.Profile)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.tracker.Start(profile.Name)
	if err != nil {
		return nil, err
	}

	// The run outlives the caller's request; only Close cancels it.
	runCtx := logger.WithContextFields(s.rootCtx, logger.StringField("trigger", "background"))

	s.wg.Add(1)
	utils.GoSafe(func() {
		defer s.wg.Done()

		var final *entity.ScanRun
		var runErr error
		defer func() {
			if r := recover(); r != nil {
				s.tracker.Finish(nil, utils.Recover(r))
				panic(r)
			}
			s.tracker.Finish(final, runErr)
			if opts.Notify && final != nil {
				s.notify(runCtx, final, runErr)
			}
		}()

		final, runErr = s.Run(runCtx, RunOptions{
			RunID:   snapshot.ID,
			Profile: profile.Name,
			Progress: func(p entity.Progress) {
				// Finish emits the terminal event for tracked runs.
				if !p.Done {
					s.tracker.Update(p)
				}
			},
		})
	})

	s.log.InfoContext(ctx, "Scan triggered", logger.StringField("run_id", snapshot.ID), logger.StringField("profile", profile.Name))
	return snapshot, nil
}

func (s *scanService) notify(ctx context.Context, run *entity.ScanRun, runErr error) {
	if s.notifier == nil {
		return
	}

	now := time.Now()
	var messages []string
	if runErr != nil {
		messages = []string{telegram.FormatErrorAlertMessage(now, "scan", runErr.Error(), run.ID)}
	} else {
		messages = telegram.FormatScanResultsForTelegram(run, s.cfg.Schedule.Limit(), now)
	}

	if err := telegram.SendMessages(s.notifier, messages); err != nil {
		s.log.ErrorContext(ctx, "Failed to send scan results to Telegram", logger.ErrorField(err))
		return
	}
	s.log.InfoContext(ctx, "Scan results sent to Telegram", logger.IntField("messages", len(messages)))
}

func (s *scanService) Latest() *entity.ScanRun {
	return s.tracker.Latest()
}

func (s *scanService) Subscribe() (<-chan entity.Progress, func()) {
	return s.tracker.Subscribe()
}

func (s *scanService) Profiles() []screener.Profile {
	names := screener.ProfileNames(s.profiles)
	out := make([]screener.Profile, 0, len(names))
	for _, name := range names {
		out = append(out, s.profiles[name])
	}
	return out
}

func (s *scanService) Universe(ctx context.Context) ([]string, error) {
	return s.universe.GetTickers(ctx)
}

func (s *scanService) Close() {
	s.rootCancel()
	s.wg.Wait()
}

func (s *scanService) profile(name string) (screener.Profile, error) {
	if name == "" {
		name = s.cfg.Scanner.Profile
	}
	return screener.Lookup(s.profiles, name)
}

func (s *scanService) tickers(ctx context.Context, override []string) ([]string, error) {
	if len(override) > 0 {
		return entity.NormalizeTickers(override), nil
	}
	tickers, err := s.universe.GetTickers(ctx)
	if err != nil {
		return nil, err
	}
	return entity.NormalizeTickers(tickers), nil
}

func (s *scanService) workers() int {
	if s.cfg.Scanner.Workers < 1 {
		return 1
	}
	return s.cfg.Scanner.Workers
}

// IsClientError reports errors caused by the caller's input.
func IsClientError(err error) bool {
	return errors.Is(err, entity.ErrUnknownProfile)
}
