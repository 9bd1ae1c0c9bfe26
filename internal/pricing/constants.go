// Package pricing computes displayable model prices from a static, per-region
// price schema: starting prices for catalog cards, full price tables for
// detail pages and interactive quotes for user-selected dimension values.
package pricing

import "errors"

// DefaultUnit is the billed unit used when a price entry declares none.
const DefaultUnit = "次"

// Reasons a price cannot be shown. None of these are fatal; callers render
// the matching label from Labels instead of a price.
var (
	// ErrPriceUndetermined means neither region carries a usable price block.
	ErrPriceUndetermined = errors.New("price undetermined")

	// ErrIncompleteSelection means a required dimension has no chosen value.
	ErrIncompleteSelection = errors.New("incomplete selection")

	// ErrCombinationUnavailable means every dimension is chosen but no matrix
	// row prices that combination.
	ErrCombinationUnavailable = errors.New("combination unavailable")

	// ErrMalformedSchema means the price data itself is unusable, e.g. a
	// negative price or a multi-dimension block without a matrix.
	ErrMalformedSchema = errors.New("malformed price schema")

	// ErrNotInteractive means the block has no selectable quote (legacy tiers).
	ErrNotInteractive = errors.New("price block is not interactive")

	// ErrInvalidQuantity means a negative quantity was supplied.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrUnknownBlockType is returned when decoding a block whose type is not
	// recognised.
	ErrUnknownBlockType = errors.New("unknown price block type")
)

// negativePriceTemplate formats a data-quality issue for a negative price.
//
// Example: fmt.Sprintf(negativePriceTemplate, "dimensionMatrix[2]", "-0.5")
// Result: "dimensionMatrix[2]: negative price -0.5"
const negativePriceTemplate = "%s: negative price %s"

// unresolvedParamTemplate formats a data-quality issue for a matrix param
// that matches none of its dimension's values.
const unresolvedParamTemplate = "dimensionMatrix[%d]: dimension %q has unresolved value %q"
