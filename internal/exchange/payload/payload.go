// Package payload holds the decoding helpers shared by the source adapters.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"crypto-rates-checker/internal/domain"

	"github.com/shopspring/decimal"
)

var ErrMissing = errors.New("missing value")

type Entry struct {
	Key   string
	Value json.RawMessage
}

// ObjectEntries returns the members of a JSON object in document order.
func ObjectEntries(data []byte) ([]Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	entries := make([]Entry, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("read value of %q: %w", key, err)
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read object end: %w", err)
	}
	return entries, nil
}

// Price validates an optional quoted or unquoted number: it must be present
// and not negative.
func Price(value decimal.NullDecimal, field string) (decimal.Decimal, error) {
	if !value.Valid {
		return decimal.Zero, fmt.Errorf("%s: %w", field, ErrMissing)
	}
	if value.Decimal.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s: negative value %s", field, value.Decimal)
	}
	return value.Decimal, nil
}

func Symbol(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// EntrySymbol normalizes an object key used as a symbol. A blank key is
// rejected.
func EntrySymbol(key string) (string, error) {
	symbol := Symbol(key)
	if symbol == "" {
		return "", fmt.Errorf("symbol: %w", ErrMissing)
	}
	return symbol, nil
}

// KeyLabel names an entry whose key could not be used as a symbol.
func KeyLabel(key string) string {
	return fmt.Sprintf("#%q", key)
}

// StripSuffix removes a fixed quote-currency suffix from a composite ticker.
// It fails closed when the ticker is not longer than the suffix or does not
// end with it.
func StripSuffix(ticker, suffix string) (string, error) {
	if len(ticker) <= len(suffix) {
		return "", fmt.Errorf("ticker %q shorter than suffix %q", ticker, suffix)
	}
	if !strings.EqualFold(ticker[len(ticker)-len(suffix):], suffix) {
		return "", fmt.Errorf("ticker %q does not end with %q", ticker, suffix)
	}
	return Symbol(ticker[:len(ticker)-len(suffix)]), nil
}

func EntryError(source domain.SourceID, symbol string, err error) error {
	return &domain.SourceParseError{Source: source, Symbol: symbol, Err: err}
}

func SourceError(source domain.SourceID, err error) error {
	return &domain.SourceParseError{Source: source, Err: err}
}

func BuyFragment(source domain.SourceID, symbol string, price decimal.Decimal) domain.QuoteFragment {
	return domain.QuoteFragment{
		Symbol:   symbol,
		Source:   source,
		BuyPrice: decimal.NewNullDecimal(price),
	}
}

func SellFragment(source domain.SourceID, symbol string, price, commission decimal.Decimal) domain.QuoteFragment {
	return domain.QuoteFragment{
		Symbol: symbol,
		Source: source,
		Sell:   &domain.SellOffer{Price: price, Commission: commission},
	}
}
