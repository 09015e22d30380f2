package arbitrage

import (
	"context"
	"fmt"

	"crypto-rates-checker/internal/domain"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ReportChecker interface {
	Check(ctx context.Context, amount decimal.Decimal) (*domain.Report, error)
}

// ArbitrageWatcher runs the checker for a fixed amount and raises an alert
// when the best effective rate reaches AlertRate.
type ArbitrageWatcher struct {
	Checker   ReportChecker
	Alerter   Alerter // nil disables alerts
	Schedule  string
	Amount    decimal.Decimal
	AlertRate decimal.Decimal // zero disables alerts
	Mode      domain.WatcherModeEnum
	logger    *zap.Logger
}

func NewArbitrageWatcher(checker ReportChecker, alerter Alerter, schedule string, amount decimal.Decimal, alertRate decimal.Decimal, mode domain.WatcherModeEnum, logger *zap.Logger) *ArbitrageWatcher {
	return &ArbitrageWatcher{
		Checker:   checker,
		Alerter:   alerter,
		Schedule:  schedule,
		Amount:    amount,
		AlertRate: alertRate,
		Mode:      mode,
		logger:    logger,
	}
}

// Start runs once immediately. In Scheduled mode it then keeps running on the
// cron schedule until ctx is cancelled.
func (watcher *ArbitrageWatcher) Start(ctx context.Context) error {
	if watcher.Mode == domain.OnDemand {
		watcher.Watch(ctx)
		return nil
	}

	scheduler := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := scheduler.AddFunc(watcher.Schedule, func() { watcher.Watch(ctx) }); err != nil {
		return fmt.Errorf("invalid watch schedule %q: %w", watcher.Schedule, err)
	}

	watcher.logger.Info("Start watching " + watcher.Amount.String() + " " + watcher.Schedule)
	watcher.Watch(ctx)

	scheduler.Start()
	<-ctx.Done()
	<-scheduler.Stop().Done()
	watcher.logger.Info("Stop watching")
	return nil
}

func (watcher *ArbitrageWatcher) Watch(ctx context.Context) *domain.Report {
	if ctx.Err() != nil {
		return nil
	}

	report, err := watcher.Checker.Check(ctx, watcher.Amount)
	if err != nil {
		watcher.logger.Error("Failed to check rates: " + err.Error())
		return nil
	}

	if watcher.shouldAlert(report) {
		if err := watcher.Alerter.Alert(ctx, report); err != nil {
			watcher.logger.Error("Failed to send alert: " + err.Error())
		}
	}
	return report
}

func (watcher *ArbitrageWatcher) shouldAlert(report *domain.Report) bool {
	if watcher.Alerter == nil || !watcher.AlertRate.IsPositive() {
		return false
	}
	_, best, ok := report.Best()
	return ok && best.EffectiveRate.GreaterThanOrEqual(watcher.AlertRate)
}
