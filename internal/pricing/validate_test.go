package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantIssues []string
	}{
		{name: "well-formed simple", src: `{"type":"simple","price":1}`},
		{name: "well-formed single dimension", src: imageSizesJSON},
		{name: "well-formed multi dimension", src: videoMatrixJSON},
		{name: "simple without price", src: `{"type":"simple"}`, wantIssues: []string{"simple block has no price"}},
		{name: "negative simple", src: `{"type":"simple","price":-1}`, wantIssues: []string{"price: negative price -1"}},
		{
			name: "two dimensions on a single-dimension block",
			src: `{"type":"single-dimension","dimensions":[
				{"name":"a","values":[{"value":"x","price":1}]},
				{"name":"b","values":[{"value":"y","price":1}]}]}`,
			wantIssues: []string{"declares 2 dimensions"},
		},
		{
			name:       "multi dimension without matrix",
			src:        `{"type":"multi-dimension","dimensions":[{"name":"d","values":["a"]}]}`,
			wantIssues: []string{"no dimensionMatrix"},
		},
		{
			name: "unresolved and duplicate rows",
			src: `{"type":"multi-dimension","dimensions":[{"name":"d","values":["a","b"]}],
				"dimensionMatrix":[{"params":{"0":"a"},"price":1},{"params":{"0":0},"price":2},{"params":{"0":"zz"},"price":3},{"params":{"0":"b"},"price":-4}]}`,
			wantIssues: []string{
				"dimensionMatrix[1] duplicates dimensionMatrix[0]",
				`dimension "d" has unresolved value "zz"`,
				"dimensionMatrix[3]: negative price -4",
			},
		},
		{
			name:       "negative tier",
			src:        `{"unit":"张","tiers":[{"price":-0.5}]}`,
			wantIssues: []string{"tiers[0]: negative price -0.5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(mustBlock(t, tt.src))
			if len(tt.wantIssues) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedSchema)
			for _, issue := range tt.wantIssues {
				assert.Contains(t, err.Error(), issue)
			}
		})
	}
}

func TestValidatePricing(t *testing.T) {
	assert.NoError(t, ValidatePricing(RegionalPricing{}))

	p := mustPricing(t, `{"domestic":{"type":"simple","price":1},"international":{"type":"simple","price":-1}}`)
	err := ValidatePricing(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "international:")
	assert.NotContains(t, err.Error(), "domestic:")
}
