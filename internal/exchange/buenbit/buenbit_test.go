package buenbit

import (
	"testing"

	"crypto-rates-checker/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	body := []byte(`{"object": {
		"daiars": {"price": "156.75", "purchase_price": "153.7", "selling_price": "159.8", "market_identifier": "daiars"},
		"daiusd": {"purchase_price": "1.01", "selling_price": "1.05"},
		"btcars": {"purchase_price": 2169400.0, "selling_price": "2256100.0"},
		"ars": {"purchase_price": "1"},
		"ethars": {"selling_price": "60000"}
	}, "errors": []}`)

	fragments, errs := New("").Parse(body)

	require.Len(t, fragments, 2)
	assert.Equal(t, "DAI", fragments[0].Symbol)
	assert.Equal(t, "BTC", fragments[1].Symbol)
	assert.True(t, fragments[0].Sell.Price.Equal(decimal.RequireFromString("153.7")))
	assert.True(t, fragments[1].Sell.Price.Equal(decimal.NewFromInt(2169400)))
	for _, fragment := range fragments {
		assert.Equal(t, domain.Buenbit, fragment.Source)
		assert.True(t, fragment.Sell.Commission.IsZero())
	}

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "ETH")
	assert.Contains(t, errs[0].Error(), "purchase_price")
}

func TestParseRejectsWrongShape(t *testing.T) {
	for _, body := range []string{`{"errors": []}`, `{"object": [1, 2]}`, `[]`} {
		fragments, errs := New("").Parse([]byte(body))
		assert.Empty(t, fragments, body)
		assert.Len(t, errs, 1, body)
	}
}
