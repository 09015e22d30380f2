package exchange

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"crypto-rates-checker/internal/domain"
	"crypto-rates-checker/internal/exchange/bit2me"
	"crypto-rates-checker/internal/exchange/bit2menew"
	"crypto-rates-checker/internal/exchange/buenbit"
	"crypto-rates-checker/internal/exchange/qubit"
	"crypto-rates-checker/internal/exchange/ripio"
	"crypto-rates-checker/internal/exchange/satoshitango"
)

// Settings are the registry-wide values some adapters need besides their
// endpoint.
type Settings struct {
	TradeCurrency string
}

type Option func(*Settings)

func WithTradeCurrency(currency string) Option {
	return func(settings *Settings) {
		settings.TradeCurrency = currency
	}
}

type constructor func(endpoint string, settings Settings) domain.SourceAdapter

// catalog is the fixed source table. Its order is the merge order of the
// ledger: buy sources first so their fees are seen before any sell quote.
var catalog = []struct {
	id    domain.SourceID
	build constructor
}{
	{domain.Bit2meNew, func(endpoint string, settings Settings) domain.SourceAdapter {
		return bit2menew.New(endpoint).WithCurrency(settings.TradeCurrency)
	}},
	{domain.Bit2me, func(endpoint string, _ Settings) domain.SourceAdapter { return bit2me.New(endpoint) }},
	{domain.Ripio, func(endpoint string, _ Settings) domain.SourceAdapter { return ripio.New(endpoint) }},
	{domain.SatoshiTango, func(endpoint string, _ Settings) domain.SourceAdapter { return satoshitango.New(endpoint) }},
	{domain.Buenbit, func(endpoint string, _ Settings) domain.SourceAdapter { return buenbit.New(endpoint) }},
	{domain.Qubit, func(endpoint string, _ Settings) domain.SourceAdapter { return qubit.New(endpoint) }},
}

// Known returns every source id the registry can build, in catalog order.
func Known() []domain.SourceID {
	ids := make([]domain.SourceID, len(catalog))
	for i, entry := range catalog {
		ids[i] = entry.id
	}
	return ids
}

type Registry struct {
	adapters []domain.SourceAdapter
}

// NewRegistry builds the adapters named in enabled, mapping source id to an
// endpoint override (empty for the public endpoint).
func NewRegistry(enabled map[string]string, options ...Option) (*Registry, error) {
	var settings Settings
	for _, option := range options {
		option(&settings)
	}

	var unknown []string
	for id := range enabled {
		if !isKnown(domain.SourceID(id)) {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown source(s): %s", strings.Join(unknown, ", "))
	}

	registry := &Registry{}
	for _, entry := range catalog {
		endpoint, ok := enabled[entry.id.String()]
		if !ok {
			continue
		}
		registry.adapters = append(registry.adapters, entry.build(endpoint, settings))
	}
	return registry, nil
}

func isKnown(id domain.SourceID) bool {
	for _, entry := range catalog {
		if entry.id == id {
			return true
		}
	}
	return false
}

func (r *Registry) Adapters() []domain.SourceAdapter {
	return append([]domain.SourceAdapter(nil), r.adapters...)
}

// Descriptors returns the fetch targets for a run started at now.
func (r *Registry) Descriptors(now time.Time) []domain.SourceDescriptor {
	descriptors := make([]domain.SourceDescriptor, 0, len(r.adapters))
	for _, adapter := range r.adapters {
		descriptors = append(descriptors, domain.SourceDescriptor{
			ID:    adapter.ID(),
			Label: adapter.Label(),
			URL:   adapter.Endpoint(now),
		})
	}
	return descriptors
}

func (r *Registry) Adapter(id domain.SourceID) (domain.SourceAdapter, bool) {
	for _, adapter := range r.adapters {
		if adapter.ID() == id {
			return adapter, true
		}
	}
	return nil, false
}

func (r *Registry) Labels() map[domain.SourceID]string {
	labels := make(map[domain.SourceID]string, len(r.adapters))
	for _, adapter := range r.adapters {
		labels[adapter.ID()] = adapter.Label()
	}
	return labels
}
