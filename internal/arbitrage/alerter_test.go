package arbitrage

import (
	"context"
	"testing"

	"crypto-rates-checker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildEmbed(t *testing.T) {
	report := reportWithRate("160.875")

	embed, ok := BuildEmbed(report, 2)
	require.True(t, ok)

	assert.Equal(t, "Arbitrage rate found", embed.Title)
	values := map[string]string{}
	for _, field := range embed.Fields {
		values[field.Name] = field.Value
	}
	assert.Equal(t, "BTC", values["Asset"])
	assert.Equal(t, "b2mn", values["Buy At"])
	assert.Equal(t, "ripio", values["Sell At"])
	assert.Equal(t, "100.00", values["Amount"])
	assert.Equal(t, "160.88", values["Effective Rate"])
	assert.Equal(t, "16087.50", values["Net"])
}

func TestBuildEmbedWithoutRows(t *testing.T) {
	_, ok := BuildEmbed(&domain.Report{}, 2)
	assert.False(t, ok)
}

func TestAlertSkipsEmptyReport(t *testing.T) {
	alerter := NewDiscordAlerter("not a webhook url", 2, zap.NewNop())
	assert.NoError(t, alerter.Alert(context.Background(), &domain.Report{}))
}
