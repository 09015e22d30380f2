package domain

import "github.com/shopspring/decimal"

type SellOffer struct {
	Price      decimal.Decimal `json:"price"`
	Commission decimal.Decimal `json:"commission"` // fraction, 0.01 == 1%
}

// QuoteFragment is the partial quote a source adapter extracts for one symbol.
// Buy-side sources fill BuyPrice (and NetworkFee when they know it), sell-side
// sources fill Sell.
type QuoteFragment struct {
	Symbol     string
	Source     SourceID
	BuyPrice   decimal.NullDecimal
	NetworkFee decimal.NullDecimal
	Sell       *SellOffer
}

// AssetQuote is the merged view of every fragment seen for one symbol.
type AssetQuote struct {
	Symbol     string                 `json:"symbol"`
	BuyPrice   decimal.NullDecimal    `json:"buy_price"`
	NetworkFee decimal.NullDecimal    `json:"network_fee"`
	SellOffers map[SourceID]SellOffer `json:"sell_offers"`
	SellOrder  []SourceID             `json:"-"`
}

func (q AssetQuote) HasBuy() bool {
	return q.BuyPrice.Valid
}

func (q AssetQuote) HasSell() bool {
	return len(q.SellOffers) > 0
}

// Fee returns the network fee, 0 when no source reported one.
func (q AssetQuote) Fee() decimal.Decimal {
	if q.NetworkFee.Valid {
		return q.NetworkFee.Decimal
	}
	return decimal.Zero
}

func (q AssetQuote) Clone() AssetQuote {
	out := q
	out.SellOffers = make(map[SourceID]SellOffer, len(q.SellOffers))
	for id, offer := range q.SellOffers {
		out.SellOffers[id] = offer
	}
	out.SellOrder = append([]SourceID(nil), q.SellOrder...)
	return out
}
