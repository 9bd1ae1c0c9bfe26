package pricing

import (
	"github.com/shopspring/decimal"
)

// Region identifies a pricing locale. Each region carries its own price block
// and its own currency.
type Region string

const (
	// RegionDomestic is the local-currency pricing locale.
	RegionDomestic Region = "domestic"
	// RegionInternational is the foreign-currency pricing locale.
	RegionInternational Region = "international"
)

// Other returns the fallback region for r.
func (r Region) Other() Region {
	if r == RegionInternational {
		return RegionDomestic
	}
	return RegionInternational
}

// Valid reports whether r is one of the two known regions.
func (r Region) Valid() bool {
	return r == RegionDomestic || r == RegionInternational
}

// PriceMode says how a leaf price is applied.
type PriceMode string

const (
	// ModeFixed means the price is a flat total.
	ModeFixed PriceMode = "fixed"
	// ModeUnit means the price is a per-unit rate multiplied by quantity.
	ModeUnit PriceMode = "unit"
)

// BlockType is the discriminator of a PriceBlock.
type BlockType string

const (
	TypeSimple          BlockType = "simple"
	TypeSingleDimension BlockType = "single-dimension"
	TypeMultiDimension  BlockType = "multi-dimension"
	TypeTiers           BlockType = "tiers"
)

// PriceBlock is one region's complete pricing configuration. The concrete
// type is always one of *SimpleBlock, *SingleDimensionBlock,
// *MultiDimensionBlock or *TiersBlock.
type PriceBlock interface {
	Type() BlockType
	isPriceBlock()
}

// RegionalPricing holds the per-region price blocks of a model. Either field
// may be nil.
type RegionalPricing struct {
	Domestic      PriceBlock
	International PriceBlock
}

// Block returns the block configured for region r, or nil.
func (p RegionalPricing) Block(r Region) PriceBlock {
	switch r {
	case RegionDomestic:
		return p.Domestic
	case RegionInternational:
		return p.International
	}
	return nil
}

// PriceEntry is a single leaf price point.
type PriceEntry struct {
	Price decimal.Decimal
	Mode  PriceMode
	Unit  string
	// UnitMultiplier scales the billed unit, e.g. 1000 with Unit "字符"
	// displays as "1000字符". Always >= 1 after decoding.
	UnitMultiplier decimal.Decimal
}

// DisplayUnit returns the unit label, prefixed by the multiplier when it is
// greater than one.
func (e PriceEntry) DisplayUnit() string {
	if e.UnitMultiplier.GreaterThan(decimal.NewFromInt(1)) {
		return e.UnitMultiplier.String() + e.Unit
	}
	return e.Unit
}

// SimpleBlock is a single price point.
type SimpleBlock struct {
	PriceEntry
	// Priced is false when the source data carried no price at all.
	Priced bool
}

// PricedValue is one selectable value of a single-dimension block with its
// own price.
type PricedValue struct {
	Value string
	PriceEntry
}

// PricedDimension is the dimension of a single-dimension block.
type PricedDimension struct {
	Name   string
	Values []PricedValue
}

// SingleDimensionBlock prices each value of one dimension independently.
type SingleDimensionBlock struct {
	DimensionName string
	// Dimensions holds exactly one dimension in well-formed data.
	Dimensions []PricedDimension
}

// Dimension is a user-selectable axis of a multi-dimension block.
type Dimension struct {
	Name   string
	Values []string
}

// MatrixRow is one priced combination of a multi-dimension block.
type MatrixRow struct {
	// Params holds the canonical value index for each dimension, aligned with
	// MultiDimensionBlock.Dimensions. -1 marks a param that could not be
	// resolved against the dimension's declared values.
	Params []int
	// Raw holds the display text for each dimension: the resolved value, or
	// the param as stored when it could not be resolved.
	Raw []string
	PriceEntry
}

// MultiDimensionBlock prices explicit combinations of several dimensions.
type MultiDimensionBlock struct {
	Dimensions []Dimension
	Matrix     []MatrixRow
}

// Tier is one informational price level of a legacy tiers block.
type Tier struct {
	Name        string
	Price       decimal.Decimal
	Description string
}

// TiersBlock is the legacy list-of-tiers shape. Tiers are informational and
// cannot be selected.
type TiersBlock struct {
	Unit  string
	Tiers []Tier
}

func (*SimpleBlock) Type() BlockType          { return TypeSimple }
func (*SingleDimensionBlock) Type() BlockType { return TypeSingleDimension }
func (*MultiDimensionBlock) Type() BlockType  { return TypeMultiDimension }
func (*TiersBlock) Type() BlockType           { return TypeTiers }

func (*SimpleBlock) isPriceBlock()          {}
func (*SingleDimensionBlock) isPriceBlock() {}
func (*MultiDimensionBlock) isPriceBlock()  {}
func (*TiersBlock) isPriceBlock()           {}

// dimension returns the priced dimension of b, or nil when b declares none.
func (b *SingleDimensionBlock) dimension() *PricedDimension {
	if len(b.Dimensions) == 0 {
		return nil
	}
	return &b.Dimensions[0]
}
