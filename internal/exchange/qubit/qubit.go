// Package qubit reads the Qubit sell quotes. Every symbol maps to a tuple of
// [btc ratio, usd, ars, 24h change].
package qubit

import (
	"encoding/json"
	"fmt"
	"time"

	"crypto-rates-checker/internal/domain"
	"crypto-rates-checker/internal/exchange/payload"

	"github.com/shopspring/decimal"
)

const DefaultEndpoint = "https://www.qubit.com.ar/c_unvalue"

const arsIndex = 2

var commission = decimal.RequireFromString("0.01")

type QubitSource struct {
	endpoint string
}

func New(endpoint string) *QubitSource {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &QubitSource{endpoint: endpoint}
}

func (source *QubitSource) ID() domain.SourceID {
	return domain.Qubit
}

func (source *QubitSource) Label() string {
	return "qubit"
}

func (source *QubitSource) Side() domain.QuoteSideEnum {
	return domain.Sell
}

func (source *QubitSource) Endpoint(now time.Time) string {
	return source.endpoint
}

func (source *QubitSource) Parse(body []byte) (fragments []domain.QuoteFragment, errs []error) {
	entries, err := payload.ObjectEntries(body)
	if err != nil {
		return nil, []error{payload.SourceError(domain.Qubit, err)}
	}

	for _, entry := range entries {
		symbol, err := payload.EntrySymbol(entry.Key)
		if err != nil {
			errs = append(errs, payload.EntryError(domain.Qubit, payload.KeyLabel(entry.Key), err))
			continue
		}
		var values []decimal.NullDecimal
		if err := json.Unmarshal(entry.Value, &values); err != nil {
			errs = append(errs, payload.EntryError(domain.Qubit, symbol, err))
			continue
		}
		if len(values) <= arsIndex {
			errs = append(errs, payload.EntryError(domain.Qubit, symbol, fmt.Errorf("expected at least %d values, got %d", arsIndex+1, len(values))))
			continue
		}
		price, err := payload.Price(values[arsIndex], "ars")
		if err != nil {
			errs = append(errs, payload.EntryError(domain.Qubit, symbol, err))
			continue
		}
		fragments = append(fragments, payload.SellFragment(domain.Qubit, symbol, price, commission))
	}

	return fragments, errs
}
