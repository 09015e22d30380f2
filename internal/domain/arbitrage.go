package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SellResult struct {
	Exchange      SourceID        `json:"exchange"`
	Quoted        bool            `json:"quoted"`
	Net           decimal.Decimal `json:"net"`            // proceeds in the sell currency
	EffectiveRate decimal.Decimal `json:"effective_rate"` // Net / trade amount
}

type ArbitrageRow struct {
	Symbol         string          `json:"symbol"`
	SourceExchange string          `json:"source_exchange"`
	UnitsAcquired  decimal.Decimal `json:"units_acquired"`
	Results        []SellResult    `json:"results"` // one per report column, same order
}

// Best returns the quoted result with the highest effective rate.
func (row ArbitrageRow) Best() (SellResult, bool) {
	var best SellResult
	found := false
	for _, result := range row.Results {
		if !result.Quoted {
			continue
		}
		if !found || result.EffectiveRate.GreaterThan(best.EffectiveRate) {
			best = result
			found = true
		}
	}
	return best, found
}

// ComputationSkip records an asset that could not be priced. It is a filtered
// state, not an error.
type ComputationSkip struct {
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
}

type Report struct {
	ID             uuid.UUID           `json:"id"`
	GeneratedAt    time.Time           `json:"generated_at"`
	Amount         decimal.Decimal     `json:"amount"`
	BuySource      string              `json:"buy_source"`
	SellExchanges  []SourceID          `json:"sell_exchanges"`
	Labels         map[SourceID]string `json:"labels"`
	Quotes         []AssetQuote        `json:"quotes"`
	Rows           []ArbitrageRow      `json:"rows"`
	CannotBeBought []string            `json:"cannot_be_bought"`
	CannotBeSold   []string            `json:"cannot_be_sold"`
	Skipped        []ComputationSkip   `json:"skipped"`
	ErrorLog       []string            `json:"errors"`
	Errors         []error             `json:"-"`
}

// Best returns the row and result with the highest effective rate in the report.
func (r *Report) Best() (ArbitrageRow, SellResult, bool) {
	var bestRow ArbitrageRow
	var bestResult SellResult
	found := false
	for _, row := range r.Rows {
		result, ok := row.Best()
		if !ok {
			continue
		}
		if !found || result.EffectiveRate.GreaterThan(bestResult.EffectiveRate) {
			bestRow, bestResult, found = row, result, true
		}
	}
	return bestRow, bestResult, found
}

// Label returns the display name of a source, falling back to its id.
func (r *Report) Label(id SourceID) string {
	if label, ok := r.Labels[id]; ok {
		return label
	}
	return id.String()
}
