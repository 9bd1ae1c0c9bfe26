package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartingPriceOf(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantPrice  string
		wantPoints int
	}{
		{name: "simple", src: `{"type":"simple","priceMode":"fixed","price":0.5}`, wantPrice: "0.5", wantPoints: 1},
		{name: "single dimension minimum", src: imageSizesJSON, wantPrice: "0.4", wantPoints: 3},
		{name: "multi dimension minimum", src: videoMatrixJSON, wantPrice: "0.3", wantPoints: 4},
		{name: "tiers minimum", src: `{"unit":"张","tiers":[{"price":0.08},{"price":0.05},{"price":0.12}]}`, wantPrice: "0.05", wantPoints: 3},
		{name: "free option counts", src: `{"type":"single-dimension","dimensions":[{"name":"d","values":[{"value":"a","price":0},{"value":"b","price":1}]}]}`, wantPrice: "0", wantPoints: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp, err := StartingPriceOf(mustBlock(t, tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrice, sp.Price.String())
			assert.Equal(t, tt.wantPoints, sp.Points)
			assert.Equal(t, tt.wantPoints > 1, sp.Multiple())
		})
	}
}

func TestStartingPriceOf_Errors(t *testing.T) {
	_, err := StartingPriceOf(mustBlock(t, `{"type":"simple"}`))
	assert.ErrorIs(t, err, ErrPriceUndetermined)

	_, err = StartingPriceOf(mustBlock(t, `{"unit":"张","tiers":[{"price":0.05},{"price":-1}]}`))
	assert.ErrorIs(t, err, ErrMalformedSchema)

	_, err = StartingPriceOf(nil)
	assert.ErrorIs(t, err, ErrPriceUndetermined)
}

func TestDisplay_ComputeStartingPrice(t *testing.T) {
	d := DefaultDisplay()

	tests := []struct {
		name         string
		pricing      string
		preferred    Region
		wantText     string
		wantFallback bool
		wantErr      error
	}{
		{
			name:      "single fixed price",
			pricing:   `{"domestic":{"type":"simple","priceMode":"fixed","price":0.5}}`,
			preferred: RegionDomestic,
			wantText:  "¥0.5/次",
		},
		{
			name:      "single unit price with multiplier",
			pricing:   `{"domestic":{"type":"simple","priceMode":"unit","price":0.002,"unit":"字符","unitMultiplier":1000}}`,
			preferred: RegionDomestic,
			wantText:  "¥0.002/1000字符",
		},
		{
			name:      "several price points get the starting marker",
			pricing:   `{"domestic":` + imageSizesJSON + `}`,
			preferred: RegionDomestic,
			wantText:  "¥0.4起",
		},
		{
			name:      "single tier uses the block unit",
			pricing:   `{"domestic":{"unit":"张","tiers":[{"name":"标准版","price":0.05}]},"international":{"unit":"张","tiers":[{"price":0.008}]}}`,
			preferred: RegionInternational,
			wantText:  "$0.008/张",
		},
		{
			name:         "fallback switches currency",
			pricing:      `{"international":{"type":"simple","priceMode":"fixed","price":0.008}}`,
			preferred:    RegionDomestic,
			wantText:     "$0.008/次",
			wantFallback: true,
		},
		{
			name:      "undetermined",
			pricing:   `{}`,
			preferred: RegionDomestic,
			wantErr:   ErrPriceUndetermined,
		},
		{
			name:      "malformed",
			pricing:   `{"domestic":{"type":"simple","price":-2}}`,
			preferred: RegionDomestic,
			wantErr:   ErrMalformedSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, err := d.ComputeStartingPrice(mustPricing(t, tt.pricing), tt.preferred)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, card.Text)
			assert.Equal(t, tt.wantFallback, card.HasCurrencyFallback)
		})
	}
}
