package arbitrage

import (
	"testing"

	"crypto-rates-checker/internal/domain"
	"crypto-rates-checker/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCheckerFromConfig(t *testing.T) {
	t.Setenv("LOG_DIR", t.TempDir())

	cfg := config.Default()
	checker, err := NewCheckerFromConfig(cfg)
	require.NoError(t, err)
	assert.Len(t, checker.registry.Adapters(), 4)
	assert.Equal(t, "b2mn", checker.calculator.BuySource)

	cfg.Sources["argenbtc"] = config.SourceConfig{Enabled: true}
	_, err = NewCheckerFromConfig(cfg)
	assert.ErrorContains(t, err, "argenbtc")
}

func TestNewWatcherFromConfig(t *testing.T) {
	t.Setenv("LOG_DIR", t.TempDir())

	cfg := config.Default()
	watcher := NewWatcherFromConfig(cfg, &fakeChecker{}, domain.Scheduled)
	assert.Nil(t, watcher.Alerter)
	assert.Equal(t, "@every 1m", watcher.Schedule)

	cfg.Discord.WebhookUrl = "https://discord.com/api/webhooks/1/token"
	watcher = NewWatcherFromConfig(cfg, &fakeChecker{}, domain.Scheduled)
	assert.NotNil(t, watcher.Alerter)
}
