package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StartingPrice is the minimum price over every price point of a block.
type StartingPrice struct {
	Price decimal.Decimal
	// Points is the number of price points the minimum was taken over.
	Points int
	// Entry is the single price entry when Points is 1; it supplies the
	// per-unit label.
	Entry PriceEntry
}

// Multiple reports whether the block has more than one price point.
func (s StartingPrice) Multiple() bool {
	return s.Points > 1
}

// StartingPriceOf computes the starting price of b, ignoring any selection.
func StartingPriceOf(b PriceBlock) (StartingPrice, error) {
	var entries []PriceEntry
	switch b := b.(type) {
	case *SimpleBlock:
		if b != nil && b.Priced {
			entries = append(entries, b.PriceEntry)
		}
	case *SingleDimensionBlock:
		if b != nil && b.dimension() != nil {
			for _, v := range b.dimension().Values {
				entries = append(entries, v.PriceEntry)
			}
		}
	case *MultiDimensionBlock:
		if b != nil {
			for _, row := range b.Matrix {
				entries = append(entries, row.PriceEntry)
			}
		}
	case *TiersBlock:
		if b != nil {
			for _, t := range b.Tiers {
				entries = append(entries, PriceEntry{Price: t.Price, Mode: ModeUnit, Unit: b.Unit, UnitMultiplier: decimal.NewFromInt(1)})
			}
		}
	}
	if len(entries) == 0 {
		return StartingPrice{}, ErrPriceUndetermined
	}

	lowest := entries[0]
	for _, e := range entries {
		if e.Price.IsNegative() {
			return StartingPrice{}, fmt.Errorf("%w: negative price %s", ErrMalformedSchema, e.Price)
		}
		if e.Price.LessThan(lowest.Price) {
			lowest = e
		}
	}
	return StartingPrice{Price: lowest.Price, Points: len(entries), Entry: lowest}, nil
}

// CardPrice is the compact starting-price text shown on a catalog card.
type CardPrice struct {
	Text string
	// Region is the region the price was resolved from.
	Region Region
	// HasCurrencyFallback is true when the preferred region had no usable
	// block and the other region's currency is shown instead.
	HasCurrencyFallback bool
}

// ComputeStartingPrice resolves pricing for the preferred region and renders
// its starting price. It returns ErrPriceUndetermined when no region is
// usable and ErrMalformedSchema when the resolved block has bad data.
func (d Display) ComputeStartingPrice(pricing RegionalPricing, preferred Region) (CardPrice, error) {
	res, ok := ResolveRegion(pricing, preferred)
	if !ok {
		return CardPrice{}, ErrPriceUndetermined
	}
	sp, err := StartingPriceOf(res.Block)
	if err != nil {
		return CardPrice{}, err
	}

	symbol := d.Currencies.Symbol(res.Region)
	var text string
	if sp.Multiple() {
		text = symbol + sp.Price.String() + d.Labels.StartingFrom
	} else {
		text = symbol + sp.Price.String() + "/" + d.unitLabel(sp.Entry)
	}
	return CardPrice{
		Text:                text,
		Region:              res.Region,
		HasCurrencyFallback: res.Fallback(preferred),
	}, nil
}

// unitLabel is the per-unit suffix of a single price point: the per-call
// label for flat prices, the display unit otherwise.
func (d Display) unitLabel(e PriceEntry) string {
	if e.Mode == ModeFixed {
		return d.Labels.PerCall
	}
	return e.DisplayUnit()
}
