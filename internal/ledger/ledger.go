// Package ledger merges quote fragments from every source into one record per
// asset. A Ledger is a value: merging returns a new ledger and never touches
// the receiver, so a run's ledger can be handed to concurrent readers.
package ledger

import (
	"crypto-rates-checker/internal/domain"
)

type Ledger struct {
	order  []string
	quotes map[string]domain.AssetQuote
}

func New() Ledger {
	return Ledger{quotes: map[string]domain.AssetQuote{}}
}

// Fold merges fragments into l in slice order.
func Fold(l Ledger, fragments []domain.QuoteFragment) Ledger {
	out := l.copy()
	for _, fragment := range fragments {
		out.apply(fragment)
	}
	return out
}

// Merge returns a ledger holding l plus fragment.
//
// The buy price is last-write-wins while the network fee keeps the first
// value reported. Sell offers accumulate per exchange; an exchange quoting a
// symbol again replaces its own earlier offer.
func (l Ledger) Merge(fragment domain.QuoteFragment) Ledger {
	out := l.copy()
	out.apply(fragment)
	return out
}

// copy duplicates the index only. Quotes are cloned by apply before they are
// modified, so untouched entries can be shared between ledgers.
func (l Ledger) copy() Ledger {
	out := Ledger{
		order:  append([]string(nil), l.order...),
		quotes: make(map[string]domain.AssetQuote, len(l.quotes)+1),
	}
	for symbol, quote := range l.quotes {
		out.quotes[symbol] = quote
	}
	return out
}

func (l *Ledger) apply(fragment domain.QuoteFragment) {
	quote, ok := l.quotes[fragment.Symbol]
	if ok {
		quote = quote.Clone()
	} else {
		quote = domain.AssetQuote{
			Symbol:     fragment.Symbol,
			SellOffers: map[domain.SourceID]domain.SellOffer{},
		}
		l.order = append(l.order, fragment.Symbol)
	}

	if fragment.BuyPrice.Valid {
		quote.BuyPrice = fragment.BuyPrice
	}
	if fragment.NetworkFee.Valid && !quote.NetworkFee.Valid {
		quote.NetworkFee = fragment.NetworkFee
	}
	if fragment.Sell != nil {
		if _, quoted := quote.SellOffers[fragment.Source]; !quoted {
			quote.SellOrder = append(quote.SellOrder, fragment.Source)
		}
		quote.SellOffers[fragment.Source] = *fragment.Sell
	}

	l.quotes[fragment.Symbol] = quote
}

func (l Ledger) Len() int {
	return len(l.order)
}

func (l Ledger) Get(symbol string) (domain.AssetQuote, bool) {
	quote, ok := l.quotes[symbol]
	if !ok {
		return domain.AssetQuote{}, false
	}
	return quote.Clone(), true
}

// Quotes returns every asset in first-seen order.
func (l Ledger) Quotes() []domain.AssetQuote {
	quotes := make([]domain.AssetQuote, 0, len(l.order))
	for _, symbol := range l.order {
		quotes = append(quotes, l.quotes[symbol].Clone())
	}
	return quotes
}

func (l Ledger) AssetsWithBothSides() []string {
	return l.symbols(func(q domain.AssetQuote) bool { return q.HasBuy() && q.HasSell() })
}

// AssetsMissingBuy lists assets some exchange buys that the buy source does
// not sell.
func (l Ledger) AssetsMissingBuy() []string {
	return l.symbols(func(q domain.AssetQuote) bool { return !q.HasBuy() })
}

func (l Ledger) AssetsMissingSell() []string {
	return l.symbols(func(q domain.AssetQuote) bool { return !q.HasSell() })
}

// AllSellExchanges returns every exchange holding at least one sell offer, in
// first-seen order.
func (l Ledger) AllSellExchanges() []domain.SourceID {
	seen := map[domain.SourceID]bool{}
	exchanges := make([]domain.SourceID, 0)
	for _, symbol := range l.order {
		for _, id := range l.quotes[symbol].SellOrder {
			if !seen[id] {
				seen[id] = true
				exchanges = append(exchanges, id)
			}
		}
	}
	return exchanges
}

func (l Ledger) symbols(keep func(domain.AssetQuote) bool) []string {
	symbols := make([]string, 0)
	for _, symbol := range l.order {
		if keep(l.quotes[symbol]) {
			symbols = append(symbols, symbol)
		}
	}
	return symbols
}
