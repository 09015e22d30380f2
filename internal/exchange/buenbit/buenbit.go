// Package buenbit reads the Buenbit market tickers. The quoted purchase price
// already includes the exchange's fee.
package buenbit

import (
	"encoding/json"
	"fmt"
	"time"

	"crypto-rates-checker/internal/domain"
	"crypto-rates-checker/internal/exchange/payload"

	"github.com/shopspring/decimal"
)

const DefaultEndpoint = "https://be.buenbit.com/api/market/tickers/"

const quoteSuffix = "ars"

var commission = decimal.Zero

type BuenbitSource struct {
	endpoint string
}

type tickersResponse struct {
	Object json.RawMessage `json:"object"`
}

type market struct {
	PurchasePrice decimal.NullDecimal `json:"purchase_price"`
}

func New(endpoint string) *BuenbitSource {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &BuenbitSource{endpoint: endpoint}
}

func (source *BuenbitSource) ID() domain.SourceID {
	return domain.Buenbit
}

func (source *BuenbitSource) Label() string {
	return "buenbit"
}

func (source *BuenbitSource) Side() domain.QuoteSideEnum {
	return domain.Sell
}

func (source *BuenbitSource) Endpoint(now time.Time) string {
	return source.endpoint
}

// Parse keeps the markets quoted in pesos and ignores the rest (daiusd and
// friends), which are not errors.
func (source *BuenbitSource) Parse(body []byte) (fragments []domain.QuoteFragment, errs []error) {
	var response tickersResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, []error{payload.SourceError(domain.Buenbit, err)}
	}
	if response.Object == nil {
		return nil, []error{payload.SourceError(domain.Buenbit, fmt.Errorf("object: %w", payload.ErrMissing))}
	}
	entries, err := payload.ObjectEntries(response.Object)
	if err != nil {
		return nil, []error{payload.SourceError(domain.Buenbit, err)}
	}

	for _, entry := range entries {
		symbol, err := payload.StripSuffix(entry.Key, quoteSuffix)
		if err != nil {
			continue
		}
		var quote market
		if err := json.Unmarshal(entry.Value, &quote); err != nil {
			errs = append(errs, payload.EntryError(domain.Buenbit, symbol, err))
			continue
		}
		price, err := payload.Price(quote.PurchasePrice, "purchase_price")
		if err != nil {
			errs = append(errs, payload.EntryError(domain.Buenbit, symbol, err))
			continue
		}
		fragments = append(fragments, payload.SellFragment(domain.Buenbit, symbol, price, commission))
	}

	return fragments, errs
}
