package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Labels are the user-facing strings the formatter renders. Defaults match
// the catalog's Chinese UI.
type Labels struct {
	PerCall      string `yaml:"perCall"`
	StartingFrom string `yaml:"startingFrom"`
	Undetermined string `yaml:"undetermined"`
	NoPriceData  string `yaml:"noPriceData"`

	BillingHeader   string `yaml:"billingHeader"`
	PriceHeader     string `yaml:"priceHeader"`
	UnitPriceHeader string `yaml:"unitPriceHeader"`
	NoteHeader      string `yaml:"noteHeader"`
	ParameterHeader string `yaml:"parameterHeader"`
	TierHeader      string `yaml:"tierHeader"`

	FixedMode string `yaml:"fixedMode"`
	UnitMode  string `yaml:"unitMode"`
	UnitNote  string `yaml:"unitNote"`

	IncompleteSelection    string `yaml:"incompleteSelection"`
	CombinationUnavailable string `yaml:"combinationUnavailable"`
	NotInteractive         string `yaml:"notInteractive"`
	Malformed              string `yaml:"malformed"`
}

// DefaultLabels returns the stock label set.
func DefaultLabels() Labels {
	return Labels{
		PerCall:      "次",
		StartingFrom: "起",
		Undetermined: "价格待定",
		NoPriceData:  "暂无价格配置",

		BillingHeader:   "计费方式",
		PriceHeader:     "价格",
		UnitPriceHeader: "单价",
		NoteHeader:      "说明",
		ParameterHeader: "参数",
		TierHeader:      "阶梯",

		FixedMode: "固定价格",
		UnitMode:  "单价模式",
		UnitNote:  "总价 = 单价 × 数量",

		IncompleteSelection:    "请选择全部参数",
		CombinationUnavailable: "该参数组合暂不可用",
		NotInteractive:         "该模型按阶梯计费",
		Malformed:              "价格配置异常",
	}
}

// Display bundles the currency table and labels used to render prices.
type Display struct {
	Currencies CurrencyTable
	Labels     Labels
}

// DefaultDisplay returns the stock currency table and labels.
func DefaultDisplay() Display {
	return Display{Currencies: DefaultCurrencies(), Labels: DefaultLabels()}
}

// TableSpec is a price table as plain data, free of markup.
type TableSpec struct {
	Headers []string
	Rows    [][]string
}

// Empty reports whether the table has no rows.
func (t TableSpec) Empty() bool {
	return len(t.Rows) == 0
}

// FormatTable renders the full price table of block. Prices are quoted in
// region's currency with two decimals. A block without price data yields a
// table with no rows.
func (d Display) FormatTable(block PriceBlock, region Region) TableSpec {
	symbol := d.Currencies.Symbol(region)
	l := d.Labels

	switch b := block.(type) {
	case *SimpleBlock:
		if b == nil || !b.Priced {
			return TableSpec{}
		}
		if b.Mode == ModeFixed {
			return TableSpec{
				Headers: []string{l.BillingHeader, l.PriceHeader},
				Rows:    [][]string{{l.FixedMode, d.priceCell(symbol, b.PriceEntry)}},
			}
		}
		return TableSpec{
			Headers: []string{l.BillingHeader, l.UnitPriceHeader, l.NoteHeader},
			Rows:    [][]string{{l.UnitMode, d.priceCell(symbol, b.PriceEntry), l.UnitNote}},
		}

	case *SingleDimensionBlock:
		if b == nil || b.dimension() == nil {
			return TableSpec{}
		}
		name := b.DimensionName
		if name == "" {
			name = l.ParameterHeader
		}
		t := TableSpec{Headers: []string{name, l.PriceHeader}}
		for _, v := range b.dimension().Values {
			t.Rows = append(t.Rows, []string{v.Value, d.priceCell(symbol, v.PriceEntry)})
		}
		return t

	case *MultiDimensionBlock:
		if b == nil || len(b.Dimensions) == 0 || len(b.Matrix) == 0 {
			return TableSpec{}
		}
		t := TableSpec{}
		for _, dim := range b.Dimensions {
			t.Headers = append(t.Headers, dim.Name)
		}
		t.Headers = append(t.Headers, l.PriceHeader)
		for _, row := range b.Matrix {
			cells := make([]string, 0, len(b.Dimensions)+1)
			for i := range b.Dimensions {
				cells = append(cells, row.displayValue(b.Dimensions, i))
			}
			t.Rows = append(t.Rows, append(cells, d.priceCell(symbol, row.PriceEntry)))
		}
		return t

	case *TiersBlock:
		if b == nil || len(b.Tiers) == 0 {
			return TableSpec{}
		}
		t := TableSpec{Headers: []string{l.TierHeader, l.PriceHeader}}
		for _, tier := range b.Tiers {
			t.Rows = append(t.Rows, []string{tier.Name, symbol + tier.Price.StringFixed(2) + "/" + b.Unit})
		}
		return t
	}
	return TableSpec{}
}

// displayValue resolves the canonical index of dimension i back to its
// declared value, falling back to the param text as stored.
func (r MatrixRow) displayValue(dims []Dimension, i int) string {
	if i < len(r.Params) && r.Params[i] >= 0 && r.Params[i] < len(dims[i].Values) {
		return dims[i].Values[r.Params[i]]
	}
	if i < len(r.Raw) {
		return r.Raw[i]
	}
	return ""
}

func (d Display) priceCell(symbol string, e PriceEntry) string {
	return symbol + e.Price.StringFixed(2) + "/" + d.unitLabel(e)
}

// FormatQuote renders a quote's total, or its unit price when no total is
// available, in region's currency.
func (d Display) FormatQuote(q Quote, region Region) string {
	symbol := d.Currencies.Symbol(region)
	if q.Total.Valid {
		return symbol + q.Total.Decimal.StringFixed(2)
	}
	return symbol + q.UnitPrice.StringFixed(2) + "/" + q.DisplayUnit
}

// FormatAmount renders an amount with two decimals in region's currency.
func (d Display) FormatAmount(amount decimal.Decimal, region Region) string {
	return d.Currencies.Symbol(region) + amount.StringFixed(2)
}

// UnavailableReason maps an evaluation error to the label shown in place of
// a price. Unrecognised errors map to the malformed-data label.
func (d Display) UnavailableReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPriceUndetermined):
		return d.Labels.Undetermined
	case errors.Is(err, ErrIncompleteSelection):
		return d.Labels.IncompleteSelection
	case errors.Is(err, ErrCombinationUnavailable):
		return d.Labels.CombinationUnavailable
	case errors.Is(err, ErrNotInteractive):
		return d.Labels.NotInteractive
	}
	return fmt.Sprintf("%s: %v", d.Labels.Malformed, err)
}
