package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"StockWatcher/internal/model"
	"StockWatcher/internal/notifier"
	"StockWatcher/internal/presenter"
	"StockWatcher/internal/runner"
)

// Runner executes one analysis run; *runner.Runner satisfies it.
type Runner interface {
	Run(ctx context.Context, req model.AnalysisRequest) (*presenter.Dashboard, error)
}

// Sender delivers a message; *notifier.TelegramNotifier satisfies it.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler drives the Telegram side of the dashboard: bot commands and the
// scheduled digest.
type Scheduler struct {
	Cron          *cron.Cron
	Commands      Runner
	Digest        Runner
	Notifier      Sender
	DefaultSymbol string
	DefaultStart  time.Time
	LookbackDays  int
	Logger        zerolog.Logger
	Ctx           context.Context
	Now           func() time.Time

	// digestMu serialises digests so overlapping ones never supersede
	// each other on the shared runner.
	digestMu sync.Mutex
}

// NewScheduler creates a new Scheduler. Commands and the digest use separate
// runners so a digest never supersedes a command reply.
func NewScheduler(ctx context.Context, commands, digest Runner, sender Sender, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:          cron.New(cron.WithSeconds()),
		Commands:      commands,
		Digest:        digest,
		Notifier:      sender,
		DefaultSymbol: "AAPL",
		DefaultStart:  time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		LookbackDays:  365,
		Logger:        logger.With().Str("component", "scheduler").Logger(),
		Ctx:           ctx,
		Now:           time.Now,
	}
}

// RegisterDigest schedules a digest of symbols on the cron expression expr.
func (s *Scheduler) RegisterDigest(expr string, symbols []string) error {
	if _, err := s.Cron.AddFunc(expr, func() { s.digestTask(symbols) }); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info().Msg("scheduler stopped")
}

// RunDigestNow executes the digest immediately.
func (s *Scheduler) RunDigestNow(symbols []string) {
	s.digestTask(symbols)
}

func (s *Scheduler) digestTask(symbols []string) {
	s.digestMu.Lock()
	defer s.digestMu.Unlock()

	s.Logger.Info().Strs("symbols", symbols).Msg("running digest")
	end := model.CalendarDate(s.Now()).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -s.LookbackDays)

	for _, sym := range symbols {
		req, err := model.NewAnalysisRequest(sym, start, end)
		if err != nil {
			s.Logger.Error().Err(err).Str("symbol", sym).Msg("digest request")
			continue
		}
		dash, err := s.Digest.Run(s.Ctx, req)
		if errors.Is(err, runner.ErrSuperseded) {
			s.Logger.Info().Str("symbol", sym).Msg("digest run superseded, skipped")
			continue
		}
		if err != nil {
			s.Logger.Error().Err(err).Str("symbol", sym).Msg("digest run")
			s.trySend(fmt.Sprintf("❌ Digest for %s failed: %v", req.Symbol, err))
			continue
		}
		s.trySend(notifier.FormatDashboard(dash))
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp(s.DefaultSymbol)
	}
	// Commands may be addressed as /analyze@botname.
	name, _, _ := strings.Cut(fields[0], "@")

	switch strings.ToLower(name) {
	case "/analyze", "/a":
		req, err := s.parseAnalyze(fields[1:])
		if err != nil {
			return fmt.Sprintf("⚠️ %v\n\n%s", err, notifier.FormatHelp(s.DefaultSymbol))
		}
		dash, err := s.Commands.Run(ctx, req)
		if errors.Is(err, runner.ErrSuperseded) {
			return ""
		}
		if err != nil {
			return fmt.Sprintf("❌ Analysis failed: %v", err)
		}
		return notifier.FormatDashboard(dash)
	default:
		return notifier.FormatHelp(s.DefaultSymbol)
	}
}

// parseAnalyze reads [TICKER] [START] [END] with the dashboard defaults.
func (s *Scheduler) parseAnalyze(args []string) (model.AnalysisRequest, error) {
	symbol := s.DefaultSymbol
	if len(args) > 0 {
		symbol = args[0]
	}
	var startArg, endArg string
	if len(args) > 1 {
		startArg = args[1]
	}
	if len(args) > 2 {
		endArg = args[2]
	}

	start, err := model.ParseDate(startArg, s.DefaultStart)
	if err != nil {
		return model.AnalysisRequest{}, err
	}
	end, err := model.ParseDate(endArg, model.CalendarDate(s.Now()))
	if err != nil {
		return model.AnalysisRequest{}, err
	}
	return model.NewAnalysisRequest(symbol, start, end)
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.Logger.Error().Err(err).Msg("send notification")
	}
}
