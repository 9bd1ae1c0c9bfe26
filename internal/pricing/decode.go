package pricing

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// wireEntry is a leaf price as stored by the catalog data layer.
type wireEntry struct {
	Price          decimal.NullDecimal `json:"price"`
	PriceMode      string              `json:"priceMode"`
	Unit           string              `json:"unit"`
	UnitMultiplier decimal.NullDecimal `json:"unitMultiplier"`
}

type wireValue struct {
	Value string `json:"value"`
	wireEntry
}

type wirePricedDimension struct {
	Name   string      `json:"name"`
	Values []wireValue `json:"values"`
}

type wireDimension struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type wireMatrixRow struct {
	Params map[string]any `json:"params"`
	wireEntry
}

type wireTier struct {
	Name        string              `json:"name"`
	Price       decimal.NullDecimal `json:"price"`
	Description string              `json:"description"`
}

// wireBlock is the union of every field any block shape may carry.
type wireBlock struct {
	Type string `json:"type"`
	wireEntry

	PerCallPrice   decimal.NullDecimal `json:"perCallPrice"`
	PerSecondPrice decimal.NullDecimal `json:"perSecondPrice"`

	DimensionName   string          `json:"dimensionName"`
	Dimensions      json.RawMessage `json:"dimensions"`
	DimensionMatrix []wireMatrixRow `json:"dimensionMatrix"`

	Tiers []wireTier `json:"tiers"`
}

type wirePricing struct {
	Domestic      json.RawMessage `json:"domestic"`
	International json.RawMessage `json:"international"`
}

// UnmarshalJSON decodes the catalog's `{domestic, international}` pricing
// object into typed blocks.
func (p *RegionalPricing) UnmarshalJSON(data []byte) error {
	var w wirePricing
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	var err error
	if p.Domestic, err = decodeRawBlock(w.Domestic); err != nil {
		return fmt.Errorf("domestic: %w", err)
	}
	if p.International, err = decodeRawBlock(w.International); err != nil {
		return fmt.Errorf("international: %w", err)
	}
	return nil
}

// DecodeBlock decodes a single price block from its JSON form. A JSON null
// or empty input yields a nil block.
func DecodeBlock(data []byte) (PriceBlock, error) {
	return decodeRawBlock(data)
}

func decodeRawBlock(data json.RawMessage) (PriceBlock, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var w wireBlock
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	return w.toBlock()
}

func (w *wireBlock) toBlock() (PriceBlock, error) {
	switch w.Type {
	case string(TypeSimple):
		return &SimpleBlock{PriceEntry: w.wireEntry.toEntry(), Priced: w.Price.Valid}, nil

	case "per-call":
		// Legacy shape: a flat charge per call.
		return &SimpleBlock{
			PriceEntry: PriceEntry{Price: w.PerCallPrice.Decimal, Mode: ModeFixed, Unit: DefaultUnit, UnitMultiplier: decimal.NewFromInt(1)},
			Priced:     w.PerCallPrice.Valid,
		}, nil

	case "per-second":
		// Legacy shape: a per-second rate.
		return &SimpleBlock{
			PriceEntry: PriceEntry{Price: w.PerSecondPrice.Decimal, Mode: ModeUnit, Unit: "秒", UnitMultiplier: decimal.NewFromInt(1)},
			Priced:     w.PerSecondPrice.Valid,
		}, nil

	case string(TypeSingleDimension):
		var dims []wirePricedDimension
		if err := unmarshalOptional(w.Dimensions, &dims); err != nil {
			return nil, fmt.Errorf("single-dimension dimensions: %w", err)
		}
		b := &SingleDimensionBlock{DimensionName: w.DimensionName}
		for _, d := range dims {
			pd := PricedDimension{Name: d.Name}
			for _, v := range d.Values {
				pd.Values = append(pd.Values, PricedValue{Value: v.Value, PriceEntry: v.wireEntry.toEntry()})
			}
			b.Dimensions = append(b.Dimensions, pd)
		}
		return b, nil

	case string(TypeMultiDimension):
		var dims []wireDimension
		if err := unmarshalOptional(w.Dimensions, &dims); err != nil {
			return nil, fmt.Errorf("multi-dimension dimensions: %w", err)
		}
		b := &MultiDimensionBlock{}
		for _, d := range dims {
			b.Dimensions = append(b.Dimensions, Dimension{Name: d.Name, Values: d.Values})
		}
		for _, row := range w.DimensionMatrix {
			b.Matrix = append(b.Matrix, normalizeRow(b.Dimensions, row))
		}
		return b, nil

	case string(TypeTiers), "":
		// Blocks without a type predate the typed schema and carry tiers.
		b := &TiersBlock{Unit: w.Unit}
		if b.Unit == "" {
			b.Unit = DefaultUnit
		}
		for i, t := range w.Tiers {
			name := t.Name
			if name == "" {
				name = fmt.Sprintf("阶梯%d", i+1)
			}
			b.Tiers = append(b.Tiers, Tier{Name: name, Price: t.Price.Decimal, Description: t.Description})
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBlockType, w.Type)
}

func unmarshalOptional(data json.RawMessage, v any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (w wireEntry) toEntry() PriceEntry {
	e := PriceEntry{
		Price:          w.Price.Decimal,
		Mode:           ModeFixed,
		Unit:           w.Unit,
		UnitMultiplier: decimal.NewFromInt(1),
	}
	if PriceMode(w.PriceMode) == ModeUnit {
		e.Mode = ModeUnit
	}
	if e.Unit == "" {
		e.Unit = DefaultUnit
	}
	if w.UnitMultiplier.Valid && w.UnitMultiplier.Decimal.GreaterThan(decimal.NewFromInt(1)) {
		e.UnitMultiplier = w.UnitMultiplier.Decimal
	}
	return e
}

// normalizeRow resolves every stored matrix param to a canonical value index.
// A dimension's param is looked up by the dimension index ("0"), then by the
// dimension name, then by any param whose value is literally one of the
// dimension's values.
func normalizeRow(dims []Dimension, row wireMatrixRow) MatrixRow {
	out := MatrixRow{
		Params:     make([]int, len(dims)),
		Raw:        make([]string, len(dims)),
		PriceEntry: row.wireEntry.toEntry(),
	}

	keys := make([]string, 0, len(row.Params))
	for k := range row.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, dim := range dims {
		out.Params[i] = -1
		raw, ok := row.Params[strconv.Itoa(i)]
		if !ok && dim.Name != "" {
			raw, ok = row.Params[dim.Name]
		}
		if ok {
			text := paramText(raw)
			out.Raw[i] = text
			if idx, found := resolveValue(dim.Values, text); found {
				out.Params[i] = idx
				out.Raw[i] = dim.Values[idx]
			}
			continue
		}
		for _, k := range keys {
			text := paramText(row.Params[k])
			if idx := indexOf(dim.Values, text); idx >= 0 {
				out.Params[i] = idx
				out.Raw[i] = text
				break
			}
		}
	}
	return out
}

// resolveValue maps a stored param to a value index: an integer in range is
// an index, anything else must match a declared value literally.
func resolveValue(values []string, text string) (int, bool) {
	if n, err := strconv.Atoi(text); err == nil && n >= 0 && n < len(values) {
		return n, true
	}
	if idx := indexOf(values, text); idx >= 0 {
		return idx, true
	}
	return -1, false
}

func indexOf(values []string, text string) int {
	for i, v := range values {
		if v == text {
			return i
		}
	}
	return -1
}

// paramText renders a decoded JSON param as the string the catalog stored.
func paramText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprint(v)
}
