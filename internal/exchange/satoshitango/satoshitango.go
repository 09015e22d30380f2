package satoshitango

import (
	"encoding/json"
	"fmt"
	"time"

	"crypto-rates-checker/internal/domain"
	"crypto-rates-checker/internal/exchange/payload"

	"github.com/shopspring/decimal"
)

const DefaultEndpoint = "https://api.satoshitango.com/v3/ticker/ARS"

var commission = decimal.RequireFromString("0.01")

type SatoshiTangoSource struct {
	endpoint string
}

type tickerResponse struct {
	Data *struct {
		Ticker json.RawMessage `json:"ticker"`
	} `json:"data"`
}

type ticker struct {
	Bid decimal.NullDecimal `json:"bid"`
}

func New(endpoint string) *SatoshiTangoSource {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &SatoshiTangoSource{endpoint: endpoint}
}

func (source *SatoshiTangoSource) ID() domain.SourceID {
	return domain.SatoshiTango
}

func (source *SatoshiTangoSource) Label() string {
	return "sat. t."
}

func (source *SatoshiTangoSource) Side() domain.QuoteSideEnum {
	return domain.Sell
}

func (source *SatoshiTangoSource) Endpoint(now time.Time) string {
	return source.endpoint
}

func (source *SatoshiTangoSource) Parse(body []byte) (fragments []domain.QuoteFragment, errs []error) {
	var response tickerResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, []error{payload.SourceError(domain.SatoshiTango, err)}
	}
	if response.Data == nil || response.Data.Ticker == nil {
		return nil, []error{payload.SourceError(domain.SatoshiTango, fmt.Errorf("data.ticker: %w", payload.ErrMissing))}
	}
	entries, err := payload.ObjectEntries(response.Data.Ticker)
	if err != nil {
		return nil, []error{payload.SourceError(domain.SatoshiTango, err)}
	}

	for _, entry := range entries {
		symbol, err := payload.EntrySymbol(entry.Key)
		if err != nil {
			errs = append(errs, payload.EntryError(domain.SatoshiTango, payload.KeyLabel(entry.Key), err))
			continue
		}
		var quote ticker
		if err := json.Unmarshal(entry.Value, &quote); err != nil {
			errs = append(errs, payload.EntryError(domain.SatoshiTango, symbol, err))
			continue
		}
		price, err := payload.Price(quote.Bid, "bid")
		if err != nil {
			errs = append(errs, payload.EntryError(domain.SatoshiTango, symbol, err))
			continue
		}
		fragments = append(fragments, payload.SellFragment(domain.SatoshiTango, symbol, price, commission))
	}

	return fragments, errs
}
