// Package bit2me reads the legacy bit2me ticker, the only source that reports
// a network fee next to the buy price.
package bit2me

import (
	"encoding/json"
	"fmt"
	"time"

	"crypto-rates-checker/internal/domain"
	"crypto-rates-checker/internal/exchange/payload"

	"github.com/shopspring/decimal"
)

const DefaultEndpoint = "https://api.bit2me.com/v1/ticker2/"

type Bit2meSource struct {
	endpoint string
}

type tickerResponse struct {
	Data []json.RawMessage `json:"data"`
}

type tickerEntry struct {
	Symbol     string              `json:"symbol"`
	Buy        decimal.NullDecimal `json:"buy"`
	NetworkFee decimal.NullDecimal `json:"network_fee"`
}

func New(endpoint string) *Bit2meSource {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Bit2meSource{endpoint: endpoint}
}

func (source *Bit2meSource) ID() domain.SourceID {
	return domain.Bit2me
}

func (source *Bit2meSource) Label() string {
	return "b2m"
}

func (source *Bit2meSource) Side() domain.QuoteSideEnum {
	return domain.Buy
}

func (source *Bit2meSource) Endpoint(now time.Time) string {
	return source.endpoint
}

func (source *Bit2meSource) Parse(body []byte) (fragments []domain.QuoteFragment, errs []error) {
	var response tickerResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, []error{payload.SourceError(domain.Bit2me, err)}
	}
	if response.Data == nil {
		return nil, []error{payload.SourceError(domain.Bit2me, fmt.Errorf("data: %w", payload.ErrMissing))}
	}

	for i, raw := range response.Data {
		var entry tickerEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			errs = append(errs, payload.EntryError(domain.Bit2me, fmt.Sprintf("#%d", i), err))
			continue
		}
		symbol := payload.Symbol(entry.Symbol)
		if symbol == "" {
			errs = append(errs, payload.EntryError(domain.Bit2me, fmt.Sprintf("#%d", i), fmt.Errorf("symbol: %w", payload.ErrMissing)))
			continue
		}
		price, err := payload.Price(entry.Buy, "buy")
		if err != nil {
			errs = append(errs, payload.EntryError(domain.Bit2me, symbol, err))
			continue
		}

		fragment := payload.BuyFragment(domain.Bit2me, symbol, price)
		if entry.NetworkFee.Valid {
			fee, err := payload.Price(entry.NetworkFee, "network_fee")
			if err != nil {
				errs = append(errs, payload.EntryError(domain.Bit2me, symbol, err))
				continue
			}
			fragment.NetworkFee = decimal.NewNullDecimal(fee)
		}
		fragments = append(fragments, fragment)
	}

	return fragments, errs
}
