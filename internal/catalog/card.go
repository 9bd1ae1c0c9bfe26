package catalog

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rshade/modelmarket-catalog/internal/pricing"
)

const (
	// defaultFreeCount is shown when a free tag has no count.
	defaultFreeCount = 5
	freeTagTemplate  = "每日限免%d次"
	runCountTemplate = "%s runs"
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
)

// Card is the listing view of one model.
type Card struct {
	ID          int64
	Name        string
	Description string
	Category    string
	TaskType    string
	ThirdParty  bool
	// RunCount is the abbreviated run count, e.g. "1.2M runs".
	RunCount string
	// FreeTag is empty when the model has no free quota.
	FreeTag string

	// Price is the starting price text, or the undetermined label when
	// PriceAvailable is false.
	Price               string
	PriceAvailable      bool
	PriceRegion         pricing.Region
	HasCurrencyFallback bool
}

// NewCard builds the card of m with its starting price resolved for the
// preferred region.
func NewCard(d pricing.Display, m ModelRecord, preferred pricing.Region) Card {
	card := Card{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Category:    m.CategoryTitle,
		TaskType:    m.TaskType,
		ThirdParty:  m.IsThirdParty(),
		RunCount:    fmt.Sprintf(runCountTemplate, FormatCount(m.RunCount)),
	}
	if m.FreeTag.Enabled {
		n := m.FreeTag.Count
		if n <= 0 {
			n = defaultFreeCount
		}
		card.FreeTag = fmt.Sprintf(freeTagTemplate, n)
	}

	price, err := d.ComputeStartingPrice(m.Pricing, preferred)
	if err != nil {
		card.Price = d.Labels.Undetermined
		return card
	}
	card.Price = price.Text
	card.PriceAvailable = true
	card.PriceRegion = price.Region
	card.HasCurrencyFallback = price.HasCurrencyFallback
	return card
}

// NewCards builds a card per record, preserving order.
func NewCards(d pricing.Display, records []ModelRecord, preferred pricing.Region) []Card {
	cards := make([]Card, 0, len(records))
	for _, m := range records {
		cards = append(cards, NewCard(d, m, preferred))
	}
	return cards
}

// FormatCount abbreviates n with one decimal: 1.2K, 3.2M.
func FormatCount(n int64) string {
	v := decimal.NewFromInt(n)
	switch {
	case v.GreaterThanOrEqual(million):
		return v.Div(million).StringFixed(1) + "M"
	case v.GreaterThanOrEqual(thousand):
		return v.Div(thousand).StringFixed(1) + "K"
	}
	return strconv.FormatInt(n, 10)
}
