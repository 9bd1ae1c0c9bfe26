package pricing

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Coordinator tracks the dimension values and quantity chosen in one
// interactive price widget and keeps the quote current.
//
// Every mutation re-evaluates the block synchronously, so CurrentQuote never
// returns a stale total: clearing a dimension invalidates the quote at once.
//
// Thread Safety: a Coordinator belongs to a single detail-view session and
// is not safe for concurrent use. Each widget creates its own instance.
//
// Usage:
//
//	c := pricing.NewCoordinator(block, logger)
//	c.SetDimensionValue(0, 1)
//	c.SetQuantity(decimal.NewFromInt(3))
//	quote, err := c.CurrentQuote()
//
// Lifecycle:
//  1. Created when the widget mounts, with quantity 1 and nothing chosen
//  2. Mutated by SetDimensionValue, ClearDimension and SetQuantity
//  3. Dropped when the widget unmounts; nothing is persisted
type Coordinator struct {
	// id identifies the session in logs.
	id uuid.UUID

	// block is the resolved price block; immutable after construction.
	block PriceBlock

	sel Selection

	// quote and err hold the result of the latest evaluation.
	quote Quote
	err   error

	logger zerolog.Logger
}

// NewCoordinator creates a Coordinator for block and evaluates it once, so a
// simple block has a quote before any input arrives.
func NewCoordinator(block PriceBlock, logger zerolog.Logger) *Coordinator {
	c := &Coordinator{
		id:    uuid.New(),
		block: block,
		sel: Selection{
			Chosen:   make(map[int]int),
			Quantity: decimal.NewNullDecimal(decimal.NewFromInt(1)),
		},
	}
	c.logger = logger.With().Str("session_id", c.id.String()).Logger()
	c.reevaluate()
	return c
}

// ID returns the session identifier.
func (c *Coordinator) ID() string {
	return c.id.String()
}

// Block returns the block being priced.
func (c *Coordinator) Block() PriceBlock {
	return c.block
}

// DimensionCount returns how many dimensions the block lets the user choose.
func (c *Coordinator) DimensionCount() int {
	switch b := c.block.(type) {
	case *SingleDimensionBlock:
		if b.dimension() != nil {
			return 1
		}
	case *MultiDimensionBlock:
		return len(b.Dimensions)
	}
	return 0
}

// ValueCount returns how many values dimension dim offers, or 0 when the
// block has no such dimension.
func (c *Coordinator) ValueCount(dim int) int {
	switch b := c.block.(type) {
	case *SingleDimensionBlock:
		if dim == 0 && b.dimension() != nil {
			return len(b.dimension().Values)
		}
	case *MultiDimensionBlock:
		if dim >= 0 && dim < len(b.Dimensions) {
			return len(b.Dimensions[dim].Values)
		}
	}
	return 0
}

// SetDimensionValue chooses valueIndex for dimension dim. A negative
// valueIndex clears the choice.
func (c *Coordinator) SetDimensionValue(dim, valueIndex int) {
	if valueIndex < 0 {
		c.ClearDimension(dim)
		return
	}
	c.sel.Chosen[dim] = valueIndex
	c.reevaluate()
}

// SetDimensionLiteral chooses a dimension value by its literal text. It
// reports false, leaving the selection untouched, when the dimension has no
// such value.
func (c *Coordinator) SetDimensionLiteral(dim int, value string) bool {
	idx := c.valueIndex(dim, value)
	if idx < 0 {
		return false
	}
	c.SetDimensionValue(dim, idx)
	return true
}

// ClearDimension returns dimension dim to the unselected state.
func (c *Coordinator) ClearDimension(dim int) {
	delete(c.sel.Chosen, dim)
	c.reevaluate()
}

// SetQuantity sets the quantity of display units. It is ignored unless the
// currently resolved entry is unit-priced, and ignored for non-positive q.
func (c *Coordinator) SetQuantity(q decimal.Decimal) {
	if !c.QuantityApplies() {
		c.logger.Debug().Str("quantity", q.String()).Msg("quantity ignored: no unit-priced entry selected")
		return
	}
	if !q.IsPositive() {
		c.logger.Debug().Str("quantity", q.String()).Msg("quantity ignored: not positive")
		return
	}
	c.sel.Quantity = decimal.NewNullDecimal(q)
	c.reevaluate()
}

// Quantity returns the quantity applied to unit-priced entries.
func (c *Coordinator) Quantity() decimal.Decimal {
	return c.sel.Quantity.Decimal
}

// QuantityApplies reports whether the current entry is unit-priced, i.e.
// whether a quantity input should be offered.
func (c *Coordinator) QuantityApplies() bool {
	return c.err == nil && c.quote.Mode == ModeUnit
}

// CurrentQuote returns the quote for the current selection, or the reason
// there is none.
func (c *Coordinator) CurrentQuote() (Quote, error) {
	return c.quote, c.err
}

func (c *Coordinator) reevaluate() {
	c.quote, c.err = Evaluate(c.block, &c.sel)
	if c.err != nil {
		c.logger.Debug().Err(c.err).Int("chosen", len(c.sel.Chosen)).Msg("no quote for selection")
		return
	}
	ev := c.logger.Debug().
		Str("unit_price", c.quote.UnitPrice.String()).
		Str("mode", string(c.quote.Mode))
	if c.quote.Total.Valid {
		ev = ev.Str("total", c.quote.Total.Decimal.String())
	}
	ev.Msg("quote updated")
}

func (c *Coordinator) valueIndex(dim int, value string) int {
	switch b := c.block.(type) {
	case *SingleDimensionBlock:
		if dim != 0 || b.dimension() == nil {
			return -1
		}
		for i, v := range b.dimension().Values {
			if v.Value == value {
				return i
			}
		}
	case *MultiDimensionBlock:
		if dim < 0 || dim >= len(b.Dimensions) {
			return -1
		}
		return indexOf(b.Dimensions[dim].Values, value)
	}
	return -1
}
