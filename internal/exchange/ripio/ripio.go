package ripio

import (
	"encoding/json"
	"fmt"
	"time"

	"crypto-rates-checker/internal/domain"
	"crypto-rates-checker/internal/exchange/payload"

	"github.com/shopspring/decimal"
)

const DefaultEndpoint = "https://app.ripio.com/api/v3/rates/?country=AR"

const quoteSuffix = "_ARS"

var commission = decimal.RequireFromString("0.01")

type RipioSource struct {
	endpoint string
}

type rate struct {
	Ticker   string              `json:"ticker"`
	SellRate decimal.NullDecimal `json:"sell_rate"`
}

func New(endpoint string) *RipioSource {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &RipioSource{endpoint: endpoint}
}

func (source *RipioSource) ID() domain.SourceID {
	return domain.Ripio
}

func (source *RipioSource) Label() string {
	return "ripio"
}

func (source *RipioSource) Side() domain.QuoteSideEnum {
	return domain.Sell
}

func (source *RipioSource) Endpoint(now time.Time) string {
	return source.endpoint
}

// Parse reads the rate list. sell_rate is what Ripio pays for the asset.
func (source *RipioSource) Parse(body []byte) (fragments []domain.QuoteFragment, errs []error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, []error{payload.SourceError(domain.Ripio, err)}
	}

	for i, raw := range entries {
		var entry rate
		if err := json.Unmarshal(raw, &entry); err != nil {
			errs = append(errs, payload.EntryError(domain.Ripio, fmt.Sprintf("#%d", i), err))
			continue
		}
		symbol, err := payload.StripSuffix(entry.Ticker, quoteSuffix)
		if err != nil {
			errs = append(errs, payload.EntryError(domain.Ripio, fmt.Sprintf("#%d", i), err))
			continue
		}
		price, err := payload.Price(entry.SellRate, "sell_rate")
		if err != nil {
			errs = append(errs, payload.EntryError(domain.Ripio, symbol, err))
			continue
		}
		fragments = append(fragments, payload.SellFragment(domain.Ripio, symbol, price, commission))
	}

	return fragments, errs
}
