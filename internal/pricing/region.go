package pricing

// Resolution is the outcome of region selection: the block to price with and
// the region it actually came from.
type Resolution struct {
	Block  PriceBlock
	Region Region
}

// Fallback reports whether the resolved region differs from the preferred one.
func (r Resolution) Fallback(preferred Region) bool {
	return r.Region != preferred
}

// ResolveRegion selects the preferred region's block when it is usable and
// falls back to the other region otherwise. It returns false when neither
// region has addressable price data.
func ResolveRegion(p RegionalPricing, preferred Region) (Resolution, bool) {
	if !preferred.Valid() {
		preferred = RegionDomestic
	}
	for _, r := range []Region{preferred, preferred.Other()} {
		if b := p.Block(r); Usable(b) {
			return Resolution{Block: b, Region: r}, true
		}
	}
	return Resolution{}, false
}

// Usable reports whether b carries addressable price data.
func Usable(b PriceBlock) bool {
	switch b := b.(type) {
	case *SimpleBlock:
		return b != nil && b.Priced
	case *SingleDimensionBlock:
		if b == nil {
			return false
		}
		d := b.dimension()
		return d != nil && len(d.Values) > 0
	case *MultiDimensionBlock:
		return b != nil && len(b.Dimensions) > 0 && len(b.Matrix) > 0
	case *TiersBlock:
		return b != nil && len(b.Tiers) > 0
	}
	return false
}

// CurrencyTable maps a region to the currency symbol its prices are quoted in.
type CurrencyTable map[Region]string

// DefaultCurrencies quotes domestic prices in yuan and international prices
// in US dollars.
func DefaultCurrencies() CurrencyTable {
	return CurrencyTable{
		RegionDomestic:      "¥",
		RegionInternational: "$",
	}
}

// Symbol returns the currency symbol for r. The symbol follows the region a
// block was resolved from, not the caller's preference.
func (c CurrencyTable) Symbol(r Region) string {
	if s, ok := c[r]; ok {
		return s
	}
	return DefaultCurrencies()[r]
}
