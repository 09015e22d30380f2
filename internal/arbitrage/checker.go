package arbitrage

import (
	"context"
	"encoding/json"
	"time"

	"crypto-rates-checker/internal/domain"
	"crypto-rates-checker/internal/exchange"
	"crypto-rates-checker/internal/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type QuoteFetcher interface {
	FetchAll(ctx context.Context, descriptors []domain.SourceDescriptor) (map[domain.SourceID]domain.RawResponse, []error)
}

// Checker runs one full query: fetch every source, normalize, merge and price.
type Checker struct {
	registry        *exchange.Registry
	fetcher         QuoteFetcher
	calculator      Calculator
	logger          *zap.Logger
	arbitrageLogger *zap.Logger
	now             func() time.Time
}

func NewChecker(registry *exchange.Registry, fetcher QuoteFetcher, calculator Calculator, logger *zap.Logger, arbitrageLogger *zap.Logger) *Checker {
	return &Checker{
		registry:        registry,
		fetcher:         fetcher,
		calculator:      calculator,
		logger:          logger,
		arbitrageLogger: arbitrageLogger,
		now:             time.Now,
	}
}

// Check always returns a report, possibly empty, unless amount is not
// positive or ctx is cancelled before the fetch barrier.
func (c *Checker) Check(ctx context.Context, amount decimal.Decimal) (*domain.Report, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	now := c.now()
	responses, errs := c.fetcher.FetchAll(ctx, c.registry.Descriptors(now))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// parse in registry order so the documented first/last-wins fields are
	// reproducible from run to run
	rates := ledger.New()
	for _, adapter := range c.registry.Adapters() {
		response, ok := responses[adapter.ID()]
		if !ok || response.Err != nil {
			continue
		}
		fragments, parseErrs := adapter.Parse(response.Body)
		for _, err := range parseErrs {
			c.logger.Warn("skipped source data", zap.String("source", adapter.ID().String()), zap.Error(err))
		}
		errs = append(errs, parseErrs...)
		rates = ledger.Fold(rates, fragments)
	}

	rows, skips, err := c.calculator.Compute(rates, amount)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		ID:             uuid.New(),
		GeneratedAt:    now.UTC(),
		Amount:         amount,
		BuySource:      c.calculator.BuySource,
		SellExchanges:  Columns(rows),
		Labels:         c.registry.Labels(),
		Quotes:         rates.Quotes(),
		Rows:           rows,
		CannotBeBought: rates.AssetsMissingBuy(),
		CannotBeSold:   rates.AssetsMissingSell(),
		Skipped:        skips,
		Errors:         errs,
		ErrorLog:       make([]string, 0, len(errs)),
	}
	for _, skip := range skips {
		c.logger.Info("asset cannot be priced", zap.String("symbol", skip.Symbol), zap.String("reason", skip.Reason))
		report.CannotBeBought = append(report.CannotBeBought, skip.Symbol)
	}
	if report.Skipped == nil {
		report.Skipped = []domain.ComputationSkip{}
	}
	for _, err := range errs {
		report.ErrorLog = append(report.ErrorLog, err.Error())
	}

	c.logReport(report)
	return report, nil
}

func (c *Checker) logReport(report *domain.Report) {
	jsonBytes, err := json.Marshal(report)
	if err != nil {
		c.logger.Error("Failed to marshal report: " + err.Error())
		return
	}
	c.arbitrageLogger.Info(string(jsonBytes))

	fields := []zap.Field{
		zap.String("id", report.ID.String()),
		zap.String("amount", report.Amount.String()),
		zap.Int("rows", len(report.Rows)),
		zap.Int("errors", len(report.Errors)),
	}
	if row, result, ok := report.Best(); ok {
		fields = append(fields,
			zap.String("best_symbol", row.Symbol),
			zap.String("best_exchange", result.Exchange.String()),
			zap.String("best_rate", result.EffectiveRate.StringFixed(4)))
	}
	c.logger.Info("report ready", fields...)
}
