package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	assert.True(t, config.BuyCommission.Equal(decimal.RequireFromString("0.025")))
	assert.Equal(t, "b2mn", config.BuySource)
	assert.Equal(t, "EUR", config.TradeCurrency)
	assert.Equal(t, int32(2), config.DecimalPlaces)
	assert.Equal(t, 10*time.Second, config.FetchTimeout())
	assert.Equal(t, map[string]string{
		"bit2me_new":   "",
		"ripio":        "",
		"satoshitango": "",
		"buenbit":      "",
	}, config.EnabledSources())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"TradeCurrency": "USD",
		"BuyCommission": "0.013",
		"Fetch": {"TimeoutSeconds": 3, "MaxConcurrency": 2, "MaxBodyBytes": 1024},
		"Sources": {
			"qubit": {"Enabled": true, "Endpoint": "http://localhost:9999/qubit"},
			"buenbit": {"Enabled": false}
		},
		"Watch": {"Schedule": "@every 30s", "Amount": 250, "AlertRate": "160.5"}
	}`)

	config, err := Load(path)
	require.NoError(t, err)

	assert.True(t, config.BuyCommission.Equal(decimal.RequireFromString("0.013")))
	assert.Equal(t, "USD", config.TradeCurrency)
	assert.Equal(t, 3*time.Second, config.FetchTimeout())
	assert.Equal(t, 2, config.Fetch.MaxConcurrency)
	assert.Equal(t, "@every 30s", config.Watch.Schedule)
	assert.True(t, config.Watch.Amount.Equal(decimal.NewFromInt(250)))
	assert.True(t, config.Watch.AlertRate.Equal(decimal.RequireFromString("160.5")))

	enabled := config.EnabledSources()
	assert.Equal(t, "http://localhost:9999/qubit", enabled["qubit"])
	assert.NotContains(t, enabled, "buenbit")
	assert.Contains(t, enabled, "ripio")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "4")
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.example/webhook")

	config, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, 4*time.Second, config.FetchTimeout())
	assert.Equal(t, "https://discord.example/webhook", config.Discord.WebhookUrl)
}

func TestLoadRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"BuyCommission": `},
		{"commission too large", `{"BuyCommission": 1.5}`},
		{"negative commission", `{"BuyCommission": -0.1}`},
		{"zero timeout", `{"Fetch": {"TimeoutSeconds": 0, "MaxConcurrency": 1}}`},
		{"zero concurrency", `{"Fetch": {"TimeoutSeconds": 5, "MaxConcurrency": 0}}`},
		{"blank trade currency", `{"TradeCurrency": " "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsBadPortEnv(t *testing.T) {
	t.Setenv("PORT", "eighty")
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
