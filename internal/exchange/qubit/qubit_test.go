package qubit

import (
	"errors"
	"testing"

	"crypto-rates-checker/internal/domain"
	"crypto-rates-checker/internal/exchange/payload"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	body := []byte(`{
		"BTC": [1, "14274.6500", "2119785.5250", "3.2333"],
		"USDT": ["0.00007005425702206358824909892712", "1.0000", "148.5000", 0],
		"NEO": ["0.001", "14.3330"],
		"XRP": ["0.00001", "0.2400", "abc", "0.25"],
		"ETH": {"ars": "60291.0000"}
	}`)

	fragments, errs := New("").Parse(body)

	require.Len(t, fragments, 2)
	assert.Equal(t, "BTC", fragments[0].Symbol)
	assert.True(t, fragments[0].Sell.Price.Equal(decimal.RequireFromString("2119785.525")))
	assert.Equal(t, "USDT", fragments[1].Symbol)
	assert.True(t, fragments[1].Sell.Price.Equal(decimal.RequireFromString("148.5")))
	assert.True(t, fragments[1].Sell.Commission.Equal(decimal.RequireFromString("0.01")))

	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "NEO")
	assert.Contains(t, errs[1].Error(), "XRP")
	assert.Contains(t, errs[2].Error(), "ETH")
}

func TestParseRejectsWrongShape(t *testing.T) {
	fragments, errs := New("").Parse([]byte(`[["BTC", 1, 2, 3]]`))
	assert.Empty(t, fragments)
	assert.Len(t, errs, 1)
}

func TestParseRejectsBlankKeys(t *testing.T) {
	fragments, errs := New("").Parse([]byte(`{"": [1, "2", "3", 0], " ": [1, "2", "4", 0], "ETH": [1, "2", "5", 0]}`))

	require.Len(t, fragments, 1)
	assert.Equal(t, "ETH", fragments[0].Symbol)
	require.Len(t, errs, 2)
	for _, err := range errs {
		var parseErr *domain.SourceParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, domain.Qubit, parseErr.Source)
		assert.True(t, errors.Is(err, payload.ErrMissing))
	}
}
