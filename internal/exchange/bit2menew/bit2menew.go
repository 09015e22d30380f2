// Package bit2menew reads the bit2me currency gateway. The response is a bare
// array of prices aligned with Currencies.
package bit2menew

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"crypto-rates-checker/internal/domain"
	"crypto-rates-checker/internal/exchange/payload"

	"github.com/shopspring/decimal"
)

const DefaultEndpoint = "https://gateway.bit2me.com/v1/currency/convert"

const timeLayout = "2006-01-02T15:04:05.000Z"

// Currencies is the tracked symbol list. The gateway answers positionally, so
// the order here is part of the wire format.
var Currencies = []string{
	"BTC", "BCH", "ETH", "LTC", "DASH", "XRP", "ADA", "LINK", "COMP", "ATOM", "DAI",
	"XMR", "OMG", "DOT", "SC", "XLM", "USDT", "USDC", "ZEC", "XTZ", "UNI",
}

type Bit2meGatewaySource struct {
	endpoint string
	currency string
}

const DefaultCurrency = "EUR"

func New(endpoint string) *Bit2meGatewaySource {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Bit2meGatewaySource{endpoint: endpoint, currency: DefaultCurrency}
}

// WithCurrency sets the currency the gateway quotes prices in. Empty keeps
// the current one.
func (source *Bit2meGatewaySource) WithCurrency(currency string) *Bit2meGatewaySource {
	if currency = strings.ToUpper(strings.TrimSpace(currency)); currency != "" {
		source.currency = currency
	}
	return source
}

func (source *Bit2meGatewaySource) ID() domain.SourceID {
	return domain.Bit2meNew
}

func (source *Bit2meGatewaySource) Label() string {
	return "b2mn"
}

func (source *Bit2meGatewaySource) Side() domain.QuoteSideEnum {
	return domain.Buy
}

// Endpoint embeds the current UTC minute once per tracked symbol. The gateway
// uses it as a cache buster, so it has to be rebuilt for every query.
func (source *Bit2meGatewaySource) Endpoint(now time.Time) string {
	stamp := now.UTC().Truncate(time.Minute).Format(timeLayout)

	values := make([]string, len(Currencies))
	stamps := make([]string, len(Currencies))
	for i := range Currencies {
		values[i] = "1"
		stamps[i] = stamp
	}

	separator := "?"
	if strings.Contains(source.endpoint, "?") {
		separator = "&"
	}

	return fmt.Sprintf("%s%sfrom=%s&to=%s&value=%s&time=%s",
		source.endpoint,
		separator,
		strings.Join(Currencies, ","),
		source.currency,
		strings.Join(values, ","),
		strings.Join(stamps, ","),
	)
}

func (source *Bit2meGatewaySource) Parse(body []byte) (fragments []domain.QuoteFragment, errs []error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, []error{payload.SourceError(domain.Bit2meNew, err)}
	}
	if len(raw) != len(Currencies) {
		return nil, []error{payload.SourceError(domain.Bit2meNew,
			fmt.Errorf("expected %d prices, got %d", len(Currencies), len(raw)))}
	}

	for i, value := range raw {
		symbol := Currencies[i]
		var quoted decimal.NullDecimal
		if err := json.Unmarshal(value, &quoted); err != nil {
			errs = append(errs, payload.EntryError(domain.Bit2meNew, symbol, err))
			continue
		}
		price, err := payload.Price(quoted, "price")
		if err != nil {
			errs = append(errs, payload.EntryError(domain.Bit2meNew, symbol, err))
			continue
		}
		fragments = append(fragments, payload.BuyFragment(domain.Bit2meNew, symbol, price))
	}

	return fragments, errs
}
