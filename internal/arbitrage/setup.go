package arbitrage

import (
	"fmt"
	"net/http"

	"crypto-rates-checker/internal/domain"
	"crypto-rates-checker/internal/exchange"
	"crypto-rates-checker/internal/fetcher"
	"crypto-rates-checker/internal/platform/config"
	"crypto-rates-checker/internal/platform/logger"
)

// NewCheckerFromConfig wires the registry, fetcher and calculator described by
// config to the process loggers.
func NewCheckerFromConfig(config *config.Config) (*Checker, error) {
	registry, err := exchange.NewRegistry(config.EnabledSources(), exchange.WithTradeCurrency(config.TradeCurrency))
	if err != nil {
		return nil, fmt.Errorf("source registry: %w", err)
	}

	quoteFetcher := fetcher.New(&http.Client{}, fetcher.Options{
		Timeout:        config.FetchTimeout(),
		MaxConcurrency: config.Fetch.MaxConcurrency,
		MaxBodyBytes:   config.Fetch.MaxBodyBytes,
	}, logger.Get(), logger.GetRawLogger())

	calculator := Calculator{
		BuyCommission: config.BuyCommission,
		BuySource:     config.BuySource,
	}

	return NewChecker(registry, quoteFetcher, calculator, logger.Get(), logger.GetArbitrageLogger()), nil
}

// NewWatcherFromConfig returns a watcher for the configured amount, with a
// Discord alerter when a webhook is configured.
func NewWatcherFromConfig(config *config.Config, checker ReportChecker, mode domain.WatcherModeEnum) *ArbitrageWatcher {
	var alerter Alerter
	if config.Discord.WebhookUrl != "" {
		alerter = NewDiscordAlerter(config.Discord.WebhookUrl, config.DecimalPlaces, logger.Get())
	}
	return NewArbitrageWatcher(checker, alerter, config.Watch.Schedule, config.Watch.Amount, config.Watch.AlertRate, mode, logger.Get())
}
