package arbitrage

import (
	"context"
	"fmt"
	"time"

	"crypto-rates-checker/internal/domain"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/webhook"
	"go.uber.org/zap"
)

type Alerter interface {
	Alert(ctx context.Context, report *domain.Report) error
}

type DiscordAlerter struct {
	webhookUrl    string
	decimalPlaces int32
	logger        *zap.Logger
}

func NewDiscordAlerter(webhookUrl string, decimalPlaces int32, logger *zap.Logger) *DiscordAlerter {
	return &DiscordAlerter{webhookUrl: webhookUrl, decimalPlaces: decimalPlaces, logger: logger}
}

func (a *DiscordAlerter) Alert(ctx context.Context, report *domain.Report) error {
	embed, ok := BuildEmbed(report, a.decimalPlaces)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := webhook.NewWithURL(a.webhookUrl)
	if err != nil {
		return fmt.Errorf("create discord webhook client: %w", err)
	}
	defer client.Close(ctx)

	if _, err = client.CreateEmbeds([]discord.Embed{embed}); err != nil {
		return fmt.Errorf("send discord message: %w", err)
	}
	a.logger.Info("Sent discord alert for report " + report.ID.String())
	return nil
}

// BuildEmbed describes the best row of report. It reports false when the
// report has nothing to sell.
func BuildEmbed(report *domain.Report, places int32) (discord.Embed, bool) {
	row, best, ok := report.Best()
	if !ok {
		return discord.Embed{}, false
	}

	return discord.NewEmbedBuilder().
		SetTitle("Arbitrage rate found").
		SetColor(0x00ff00).
		AddField("Asset", row.Symbol, true).
		AddField("Buy At", report.BuySource, true).
		AddField("Sell At", report.Label(best.Exchange), true).
		AddField("\u200B", "\u200B", false).
		AddField("Amount", report.Amount.StringFixed(places), true).
		AddField("Units", row.UnitsAcquired.String(), true).
		AddField("Net", best.Net.StringFixed(places), true).
		AddField("Effective Rate", best.EffectiveRate.StringFixed(places), true).
		SetFooterText(report.ID.String()).
		Build(), true
}
