package exchange

import (
	"strings"
	"testing"
	"time"

	"crypto-rates-checker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryKeepsCatalogOrder(t *testing.T) {
	registry, err := NewRegistry(map[string]string{
		"buenbit":      "",
		"ripio":        "http://localhost:1/ripio",
		"bit2me_new":   "",
		"satoshitango": "",
	})
	require.NoError(t, err)

	var ids []domain.SourceID
	for _, adapter := range registry.Adapters() {
		ids = append(ids, adapter.ID())
	}
	assert.Equal(t, []domain.SourceID{domain.Bit2meNew, domain.Ripio, domain.SatoshiTango, domain.Buenbit}, ids)
}

func TestNewRegistryRejectsUnknownSource(t *testing.T) {
	_, err := NewRegistry(map[string]string{"ripio": "", "argenbtc": "", "luno": ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "argenbtc, luno")
}

func TestDescriptorsUseOverridesAndRebuildUrls(t *testing.T) {
	registry, err := NewRegistry(map[string]string{
		"bit2me_new": "http://localhost:1/convert",
		"ripio":      "http://localhost:1/ripio",
	})
	require.NoError(t, err)

	first := registry.Descriptors(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	later := registry.Descriptors(time.Date(2024, 5, 1, 12, 5, 0, 0, time.UTC))

	require.Len(t, first, 2)
	assert.Equal(t, domain.Bit2meNew, first[0].ID)
	assert.Equal(t, "b2mn", first[0].Label)
	assert.True(t, strings.HasPrefix(first[0].URL, "http://localhost:1/convert?"))
	assert.Contains(t, first[0].URL, "2024-05-01T12:00:00.000Z")
	assert.Contains(t, later[0].URL, "2024-05-01T12:05:00.000Z")

	assert.Equal(t, "http://localhost:1/ripio", first[1].URL)
	assert.Equal(t, first[1].URL, later[1].URL)
}

func TestLabelsAndLookup(t *testing.T) {
	registry, err := NewRegistry(map[string]string{"satoshitango": "", "qubit": ""})
	require.NoError(t, err)

	assert.Equal(t, map[domain.SourceID]string{
		domain.SatoshiTango: "sat. t.",
		domain.Qubit:        "qubit",
	}, registry.Labels())

	adapter, ok := registry.Adapter(domain.Qubit)
	require.True(t, ok)
	assert.Equal(t, domain.Sell, adapter.Side())

	_, ok = registry.Adapter(domain.Bit2me)
	assert.False(t, ok)
}

func TestKnownCoversEverySource(t *testing.T) {
	assert.ElementsMatch(t, []domain.SourceID{
		domain.Bit2me, domain.Bit2meNew, domain.Ripio, domain.SatoshiTango, domain.Buenbit, domain.Qubit,
	}, Known())
}

func TestNewRegistryAppliesTradeCurrency(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	registry, err := NewRegistry(map[string]string{"bit2me_new": "", "ripio": ""}, WithTradeCurrency("USD"))
	require.NoError(t, err)
	descriptors := registry.Descriptors(now)
	require.Len(t, descriptors, 2)
	assert.Contains(t, descriptors[0].URL, "&to=USD&")

	registry, err = NewRegistry(map[string]string{"bit2me_new": ""})
	require.NoError(t, err)
	assert.Contains(t, registry.Descriptors(now)[0].URL, "&to=EUR&")
}
