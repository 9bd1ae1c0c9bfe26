package pricing

import (
	"errors"
	"fmt"
	"strings"
)

// Validate reports every data-quality issue in b. The returned error wraps
// ErrMalformedSchema once per issue; nil means b is well-formed. A nil block
// is not an issue.
func Validate(b PriceBlock) error {
	var issues []error
	add := func(format string, args ...any) {
		issues = append(issues, fmt.Errorf("%w: %s", ErrMalformedSchema, fmt.Sprintf(format, args...)))
	}

	switch b := b.(type) {
	case nil:
		return nil

	case *SimpleBlock:
		if !b.Priced {
			add("simple block has no price")
		} else if b.Price.IsNegative() {
			add(negativePriceTemplate, "price", b.Price)
		}

	case *SingleDimensionBlock:
		switch {
		case len(b.Dimensions) == 0:
			add("single-dimension block has no dimensions")
		case len(b.Dimensions) > 1:
			add("single-dimension block declares %d dimensions", len(b.Dimensions))
		}
		if d := b.dimension(); d != nil {
			if len(d.Values) == 0 {
				add("dimension %q has no values", d.Name)
			}
			for i, v := range d.Values {
				if v.Price.IsNegative() {
					add(negativePriceTemplate, fmt.Sprintf("values[%d]", i), v.Price)
				}
			}
		}

	case *MultiDimensionBlock:
		if len(b.Dimensions) == 0 {
			add("multi-dimension block has no dimensions")
		}
		if len(b.Matrix) == 0 {
			add("multi-dimension block has no dimensionMatrix")
		}
		seen := make(map[string]int, len(b.Matrix))
		for i, row := range b.Matrix {
			if row.Price.IsNegative() {
				add(negativePriceTemplate, fmt.Sprintf("dimensionMatrix[%d]", i), row.Price)
			}
			resolved := true
			for d, idx := range row.Params {
				if idx < 0 {
					resolved = false
					add(unresolvedParamTemplate, i, b.Dimensions[d].Name, row.Raw[d])
				}
			}
			if !resolved {
				continue
			}
			key := comboKey(row.Params)
			if prev, dup := seen[key]; dup {
				add("dimensionMatrix[%d] duplicates dimensionMatrix[%d]", i, prev)
				continue
			}
			seen[key] = i
		}

	case *TiersBlock:
		if len(b.Tiers) == 0 {
			add("tiers block has no tiers")
		}
		for i, t := range b.Tiers {
			if t.Price.IsNegative() {
				add(negativePriceTemplate, fmt.Sprintf("tiers[%d]", i), t.Price)
			}
		}
	}
	return errors.Join(issues...)
}

// ValidatePricing validates both regional blocks, prefixing issues with the
// region name.
func ValidatePricing(p RegionalPricing) error {
	var errs []error
	for _, r := range []Region{RegionDomestic, RegionInternational} {
		if err := Validate(p.Block(r)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r, err))
		}
	}
	return errors.Join(errs...)
}

func comboKey(params []int) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, ",")
}
