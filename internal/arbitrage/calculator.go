package arbitrage

import (
	"errors"
	"fmt"
	"strings"

	"crypto-rates-checker/internal/domain"
	"crypto-rates-checker/internal/ledger"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("trade amount must be a positive number")

var one = decimal.NewFromInt(1)

// ParseAmount reads a trade amount typed by a user.
func ParseAmount(input string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, input)
	}
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

// Calculator prices the round trip "buy with the trade currency at the buy
// source, sell for the proceeds currency at every sell exchange".
type Calculator struct {
	BuyCommission decimal.Decimal // fraction kept by the buy source
	BuySource     string
}

// Compute returns one row per asset that has both sides in l. Every row holds
// one result per sell column, in the same order; exchanges that do not quote
// the asset are marked as not quoted. Assets that cannot be priced come back
// as skips.
func (c Calculator) Compute(l ledger.Ledger, amount decimal.Decimal) ([]domain.ArbitrageRow, []domain.ComputationSkip, error) {
	if !amount.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}

	type priced struct {
		quote domain.AssetQuote
		units decimal.Decimal
	}

	var assets []priced
	var skips []domain.ComputationSkip
	for _, symbol := range l.AssetsWithBothSides() {
		quote, _ := l.Get(symbol)
		units, skip := c.unitsAcquired(quote, amount)
		if skip != "" {
			skips = append(skips, domain.ComputationSkip{Symbol: symbol, Reason: skip})
			continue
		}
		assets = append(assets, priced{quote: quote, units: units})
	}

	// columns: every exchange quoting at least one priced asset, first seen first
	var columns []domain.SourceID
	seen := map[domain.SourceID]bool{}
	for _, asset := range assets {
		for _, id := range asset.quote.SellOrder {
			if !seen[id] {
				seen[id] = true
				columns = append(columns, id)
			}
		}
	}

	rows := make([]domain.ArbitrageRow, 0, len(assets))
	for _, asset := range assets {
		row := domain.ArbitrageRow{
			Symbol:         asset.quote.Symbol,
			SourceExchange: c.BuySource,
			UnitsAcquired:  asset.units,
			Results:        make([]domain.SellResult, 0, len(columns)),
		}
		for _, id := range columns {
			offer, ok := asset.quote.SellOffers[id]
			if !ok {
				row.Results = append(row.Results, domain.SellResult{Exchange: id})
				continue
			}
			net := Net(asset.units, offer)
			row.Results = append(row.Results, domain.SellResult{
				Exchange:      id,
				Quoted:        true,
				Net:           net,
				EffectiveRate: net.Div(amount),
			})
		}
		rows = append(rows, row)
	}

	return rows, skips, nil
}

// UnitsAcquired is amount*(1-buyCommission)/price - fee.
func (c Calculator) UnitsAcquired(quote domain.AssetQuote, amount decimal.Decimal) (decimal.Decimal, error) {
	units, skip := c.unitsAcquired(quote, amount)
	if skip != "" {
		return decimal.Zero, errors.New(skip)
	}
	return units, nil
}

func (c Calculator) unitsAcquired(quote domain.AssetQuote, amount decimal.Decimal) (decimal.Decimal, string) {
	if !quote.HasBuy() {
		return decimal.Zero, "no buy price"
	}
	if quote.BuyPrice.Decimal.IsZero() {
		return decimal.Zero, "buy price is zero"
	}
	units := amount.Mul(one.Sub(c.BuyCommission)).Div(quote.BuyPrice.Decimal).Sub(quote.Fee())
	if units.IsNegative() {
		return decimal.Zero, "network fee exceeds the units bought"
	}
	return units, ""
}

// Net is the proceeds of selling units at offer, after its commission.
func Net(units decimal.Decimal, offer domain.SellOffer) decimal.Decimal {
	return units.Mul(offer.Price).Mul(one.Sub(offer.Commission))
}

// Columns returns the sell exchanges of a computed table.
func Columns(rows []domain.ArbitrageRow) []domain.SourceID {
	if len(rows) == 0 {
		return []domain.SourceID{}
	}
	columns := make([]domain.SourceID, 0, len(rows[0].Results))
	for _, result := range rows[0].Results {
		columns = append(columns, result.Exchange)
	}
	return columns
}
