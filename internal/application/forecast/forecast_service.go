package forecast

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cashcast/backend/internal/domain/forecast"
	"github.com/cashcast/backend/internal/domain/shared"
	"github.com/cashcast/backend/internal/domain/tax"
	"github.com/cashcast/backend/internal/infrastructure/cache"
	"github.com/cashcast/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one forecast generation. Days always carries the
// full projection when Err is nil; PersistErr reports a failed write-back
// without invalidating the computed result.
type Result struct {
	Days      []forecast.DailyForecast
	FromCache bool
	// PersistErr is non-nil when the projection was computed but could not
	// be written to the store. The result is still served.
	PersistErr error
}

// ForecastService orchestrates a forecast run: cache lookup, concurrent
// source loading, tax calculation, simulation, and write-back.
type ForecastService struct {
	bankAccounts forecast.BankAccountRepository
	invoices     forecast.InvoiceRepository
	schedules    forecast.RecurringScheduleRepository
	patterns     forecast.PaymentPatternRepository
	budgets      forecast.BudgetRepository
	snapshots    forecast.PositionSnapshotRepository
	forecasts    forecast.DailyForecastRepository
	obligations  tax.ObligationRepository
	ledger       tax.LedgerRepository
	calculator   *tax.Calculator
	engine       *forecast.Engine
	cache        cache.ForecastCache
	cfg          config.ForecastConfig
	logger       *zap.Logger
	now          func() time.Time
}

// ForecastServiceOption is a functional option for configuring ForecastService
type ForecastServiceOption func(*ForecastService)

// WithClock overrides the service clock, used by tests to pin "today"
func WithClock(now func() time.Time) ForecastServiceOption {
	return func(s *ForecastService) {
		s.now = now
	}
}

// NewForecastService creates a new ForecastService
func NewForecastService(
	bankAccounts forecast.BankAccountRepository,
	invoices forecast.InvoiceRepository,
	schedules forecast.RecurringScheduleRepository,
	patterns forecast.PaymentPatternRepository,
	budgets forecast.BudgetRepository,
	snapshots forecast.PositionSnapshotRepository,
	forecasts forecast.DailyForecastRepository,
	obligations tax.ObligationRepository,
	ledger tax.LedgerRepository,
	calculator *tax.Calculator,
	engine *forecast.Engine,
	forecastCache cache.ForecastCache,
	cfg config.ForecastConfig,
	logger *zap.Logger,
	opts ...ForecastServiceOption,
) *ForecastService {
	s := &ForecastService{
		bankAccounts: bankAccounts,
		invoices:     invoices,
		schedules:    schedules,
		patterns:     patterns,
		budgets:      budgets,
		snapshots:    snapshots,
		forecasts:    forecasts,
		obligations:  obligations,
		ledger:       ledger,
		calculator:   calculator,
		engine:       engine,
		cache:        forecastCache,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateForecast produces the daily projection for the given horizon.
// A horizonDays of zero selects the configured default. The horizon is
// validated before any I/O happens.
func (s *ForecastService) GenerateForecast(ctx context.Context, horizonDays int) (*Result, error) {
	if horizonDays == 0 {
		horizonDays = s.cfg.DefaultHorizonDays
	}
	if horizonDays < 1 {
		return nil, shared.ErrInvalidHorizon
	}

	if days, found, err := s.cache.Get(ctx, horizonDays); err != nil {
		s.logger.Warn("forecast cache read failed", zap.Error(err))
	} else if found {
		return &Result{Days: days, FromCache: true}, nil
	}

	asOf := forecast.DayOf(s.now())
	snapshot, calculated, err := s.loadSnapshot(ctx, asOf, horizonDays)
	if err != nil {
		return nil, err
	}

	days, err := s.engine.Run(*snapshot, horizonDays)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, horizonDays, days, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("forecast cache write failed", zap.Error(err))
	}

	result := &Result{Days: days}
	if err := s.persist(ctx, days, calculated); err != nil {
		s.logger.Error("forecast persistence failed", zap.Error(err))
		result.PersistErr = fmt.Errorf("%w: %v", shared.ErrPersistenceFailed, err)
	}
	return result, nil
}

// UpcomingObligations returns the merged pending and freshly calculated tax
// obligations inside the horizon, without running the full simulation.
func (s *ForecastService) UpcomingObligations(ctx context.Context, horizonDays int) ([]tax.Obligation, error) {
	if horizonDays == 0 {
		horizonDays = s.cfg.DefaultHorizonDays
	}
	if horizonDays < 1 {
		return nil, shared.ErrInvalidHorizon
	}

	asOf := forecast.DayOf(s.now())
	merged, _, err := s.loadObligations(ctx, asOf, horizonDays)
	return merged, err
}

// loadSnapshot assembles the immutable inputs of one run. The six sources
// load concurrently; the snapshot is only handed to the engine once every
// loader has returned. Also returns the freshly calculated obligations so
// the caller can persist them.
func (s *ForecastService) loadSnapshot(ctx context.Context, asOf time.Time, horizonDays int) (*forecast.Snapshot, []tax.Obligation, error) {
	horizonEnd := asOf.AddDate(0, 0, horizonDays-1)

	snapshot := &forecast.Snapshot{AsOf: asOf}
	var calculated []tax.Obligation

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		snapshot.Position = s.loadPosition(gctx)
		return nil
	})
	g.Go(func() error {
		invoices, err := s.invoices.FindOpen(gctx, forecast.DirectionReceivable)
		if err != nil {
			return fmt.Errorf("load receivables: %w", err)
		}
		snapshot.Receivables = invoices
		return nil
	})
	g.Go(func() error {
		invoices, err := s.invoices.FindOpen(gctx, forecast.DirectionPayable)
		if err != nil {
			return fmt.Errorf("load payables: %w", err)
		}
		snapshot.Payables = invoices
		return nil
	})
	g.Go(func() error {
		schedules, err := s.schedules.FindActiveWithin(gctx, asOf, horizonEnd)
		if err != nil {
			return fmt.Errorf("load schedules: %w", err)
		}
		snapshot.Schedules = schedules
		return nil
	})
	g.Go(func() error {
		patterns, err := s.patterns.FindAll(gctx)
		if err != nil {
			return fmt.Errorf("load payment patterns: %w", err)
		}
		snapshot.Patterns = forecast.IndexPatterns(patterns)
		return nil
	})
	g.Go(func() error {
		budgets, err := s.budgets.FindWithin(gctx, asOf, horizonEnd)
		if err != nil {
			return fmt.Errorf("load budgets: %w", err)
		}
		snapshot.Budgets = budgets
		return nil
	})
	g.Go(func() error {
		merged, calc, err := s.loadObligations(gctx, asOf, horizonDays)
		if err != nil {
			return err
		}
		snapshot.Obligations = merged
		calculated = calc
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return snapshot, calculated, nil
}

// loadPosition reads the live cash position. When the live store is
// unreachable it falls back to the latest stored snapshot, and failing that
// to the zero degraded position; the run proceeds either way.
func (s *ForecastService) loadPosition(ctx context.Context) forecast.CashPosition {
	position, err := s.loadLivePosition(ctx)
	if err == nil {
		if saveErr := s.snapshots.Save(ctx, position); saveErr != nil {
			s.logger.Warn("position snapshot save failed", zap.Error(saveErr))
		}
		return position
	}
	s.logger.Warn("live position load failed, trying stored snapshot", zap.Error(err))

	fallback, err := s.snapshots.Latest(ctx)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("position snapshot load failed", zap.Error(err))
		}
		s.logger.Warn("no position available, running degraded")
		return forecast.DegradedPosition()
	}
	return *fallback
}

// loadLivePosition reads cash and open invoice totals from the live store
func (s *ForecastService) loadLivePosition(ctx context.Context) (forecast.CashPosition, error) {
	cash, err := s.bankAccounts.SumActiveBalances(ctx)
	if err != nil {
		return forecast.CashPosition{}, fmt.Errorf("sum bank balances: %w", err)
	}
	receivable, err := s.invoices.SumOpenAmount(ctx, forecast.DirectionReceivable)
	if err != nil {
		return forecast.CashPosition{}, fmt.Errorf("sum open receivables: %w", err)
	}
	payable, err := s.invoices.SumOpenAmount(ctx, forecast.DirectionPayable)
	if err != nil {
		return forecast.CashPosition{}, fmt.Errorf("sum open payables: %w", err)
	}
	return forecast.NewCashPosition(cash, receivable, payable), nil
}

// loadObligations merges persisted pending obligations with freshly
// calculated ones. A ledger outage degrades to persisted records only
// rather than failing the run.
func (s *ForecastService) loadObligations(ctx context.Context, asOf time.Time, horizonDays int) (merged, calculated []tax.Obligation, err error) {
	persisted, err := s.obligations.FindPending(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load pending obligations: %w", err)
	}

	from := asOf.AddDate(0, -s.cfg.LedgerLookbackMonths, 0)
	activity, err := s.ledger.ActivityWindow(ctx, from, asOf.AddDate(0, 0, 1))
	if err != nil {
		s.logger.Warn("ledger window load failed, using persisted obligations only", zap.Error(err))
		return tax.MergeObligations(persisted, nil), nil, nil
	}

	calculated = s.calculator.UpcomingObligations(asOf, horizonDays, activity)
	return tax.MergeObligations(persisted, calculated), calculated, nil
}

// persist writes the projection and the newly calculated obligations inside
// one bounded timeout.
func (s *ForecastService) persist(ctx context.Context, days []forecast.DailyForecast, calculated []tax.Obligation) error {
	persistCtx, cancel := context.WithTimeout(ctx, s.cfg.PersistTimeout)
	defer cancel()

	if err := s.forecasts.UpsertBatch(persistCtx, days); err != nil {
		return fmt.Errorf("persist daily forecasts: %w", err)
	}
	if err := s.obligations.UpsertBatch(persistCtx, calculated); err != nil {
		return fmt.Errorf("persist tax obligations: %w", err)
	}
	return nil
}
