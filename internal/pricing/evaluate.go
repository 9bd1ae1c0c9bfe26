package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Selection is the user's live input for an interactive price widget.
type Selection struct {
	// Chosen maps a dimension index to the chosen value index.
	Chosen map[int]int
	// Quantity is the number of display units; unset means no total is
	// computed for unit-mode prices.
	Quantity decimal.NullDecimal
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{Chosen: make(map[int]int)}
}

// Choose records valueIndex for dimension dim and returns s for chaining.
func (s *Selection) Choose(dim, valueIndex int) *Selection {
	if s.Chosen == nil {
		s.Chosen = make(map[int]int)
	}
	s.Chosen[dim] = valueIndex
	return s
}

// WithQuantity sets the quantity and returns s for chaining.
func (s *Selection) WithQuantity(q decimal.Decimal) *Selection {
	s.Quantity = decimal.NewNullDecimal(q)
	return s
}

func (s *Selection) chosen(dim int) (int, bool) {
	if s == nil || s.Chosen == nil {
		return 0, false
	}
	v, ok := s.Chosen[dim]
	return v, ok
}

// Quote is a displayable price for one resolved price entry.
type Quote struct {
	UnitPrice   decimal.Decimal
	DisplayUnit string
	// Total is invalid when a unit-mode price has no quantity to apply.
	Total decimal.NullDecimal
	Mode  PriceMode
}

// Evaluate computes a quote for block under selection sel. sel may be nil for
// blocks that need no choices. A failed evaluation returns one of
// ErrIncompleteSelection, ErrCombinationUnavailable, ErrMalformedSchema,
// ErrNotInteractive or ErrInvalidQuantity.
func Evaluate(block PriceBlock, sel *Selection) (Quote, error) {
	entry, err := resolveEntry(block, sel)
	if err != nil {
		return Quote{}, err
	}
	return quoteEntry(entry, sel)
}

// resolveEntry picks the leaf price entry the selection addresses.
func resolveEntry(block PriceBlock, sel *Selection) (PriceEntry, error) {
	switch b := block.(type) {
	case *SimpleBlock:
		if b == nil || !b.Priced {
			return PriceEntry{}, fmt.Errorf("%w: simple block has no price", ErrMalformedSchema)
		}
		return b.PriceEntry, nil

	case *SingleDimensionBlock:
		if b == nil || b.dimension() == nil {
			return PriceEntry{}, fmt.Errorf("%w: single-dimension block has no dimension", ErrMalformedSchema)
		}
		values := b.dimension().Values
		idx, ok := sel.chosen(0)
		if !ok || idx < 0 || idx >= len(values) {
			return PriceEntry{}, ErrIncompleteSelection
		}
		return values[idx].PriceEntry, nil

	case *MultiDimensionBlock:
		if b == nil || len(b.Dimensions) == 0 || len(b.Matrix) == 0 {
			return PriceEntry{}, fmt.Errorf("%w: multi-dimension block has no dimensionMatrix", ErrMalformedSchema)
		}
		want := make([]int, len(b.Dimensions))
		for i, dim := range b.Dimensions {
			idx, ok := sel.chosen(i)
			if !ok || idx < 0 || idx >= len(dim.Values) {
				return PriceEntry{}, ErrIncompleteSelection
			}
			want[i] = idx
		}
		row, ok := b.match(want)
		if !ok {
			return PriceEntry{}, ErrCombinationUnavailable
		}
		return row.PriceEntry, nil

	case *TiersBlock:
		return PriceEntry{}, ErrNotInteractive
	}
	return PriceEntry{}, fmt.Errorf("%w: %T", ErrMalformedSchema, block)
}

// match returns the first matrix row whose canonical params equal want.
func (b *MultiDimensionBlock) match(want []int) (MatrixRow, bool) {
	for _, row := range b.Matrix {
		if len(row.Params) != len(want) {
			continue
		}
		matched := true
		for i, idx := range want {
			if row.Params[i] != idx {
				matched = false
				break
			}
		}
		if matched {
			return row, true
		}
	}
	return MatrixRow{}, false
}

func quoteEntry(e PriceEntry, sel *Selection) (Quote, error) {
	if e.Price.IsNegative() {
		return Quote{}, fmt.Errorf("%w: negative price %s", ErrMalformedSchema, e.Price)
	}
	q := Quote{
		UnitPrice:   e.Price,
		DisplayUnit: e.DisplayUnit(),
		Mode:        e.Mode,
	}
	if e.Mode == ModeFixed {
		q.Total = decimal.NewNullDecimal(e.Price)
		return q, nil
	}
	if sel != nil && sel.Quantity.Valid {
		if sel.Quantity.Decimal.IsNegative() {
			return Quote{}, fmt.Errorf("%w: %s", ErrInvalidQuantity, sel.Quantity.Decimal)
		}
		q.Total = decimal.NewNullDecimal(e.Price.Mul(sel.Quantity.Decimal))
	}
	return q, nil
}
