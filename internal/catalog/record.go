// Package catalog holds the model records of the marketplace and the
// browsing operations over them: filtering, search, category grouping,
// pagination and card views with starting prices.
package catalog

import (
	"github.com/rshade/modelmarket-catalog/internal/pricing"
)

// Model ownership as stored in ModelRecord.ModelType.
const (
	ModelTypeOwn        = "own"
	ModelTypeThirdParty = "thirdParty"
)

// StatusActive marks a record that is visible in the catalog.
const StatusActive = "active"

// Source describes where a model is offered from.
type Source struct {
	// Type is "official" or "channel".
	Type        string `json:"type"`
	ChannelName string `json:"channelName"`
	ChannelID   string `json:"channelId"`
}

// FreeTag advertises a daily free quota.
type FreeTag struct {
	Enabled bool `json:"enabled"`
	Count   int  `json:"count"`
}

// ModelRecord is one model as stored by the catalog data layer. The pricing
// core only reads Pricing.
type ModelRecord struct {
	ID               int64                   `json:"id"`
	Name             string                  `json:"name"`
	Description      string                  `json:"description"`
	ModelType        string                  `json:"modelType"`
	FunctionCategory string                  `json:"functionCategory"`
	CategoryTitle    string                  `json:"categoryTitle"`
	CategoryTitles   []string                `json:"categoryTitles,omitempty"`
	TaskType         string                  `json:"taskType"`
	Source           Source                  `json:"source"`
	Pricing          pricing.RegionalPricing `json:"pricing"`
	RunCount         int64                   `json:"runCount"`
	Status           string                  `json:"status"`
	FreeTag          FreeTag                 `json:"freeTag"`
	Regions          []pricing.Region        `json:"regions,omitempty"`
}

// Active reports whether the record is browsable.
func (m *ModelRecord) Active() bool {
	return m.Status == StatusActive
}

// IsThirdParty reports whether the model is resold from a third party,
// either by its model type or by its source channel.
func (m *ModelRecord) IsThirdParty() bool {
	if m.ModelType == ModelTypeThirdParty {
		return true
	}
	return m.Source.ChannelName == "三方" || m.Source.ChannelName == "第三方"
}

// InCategory reports whether the record is listed under title, either as its
// primary category or as one of its extra category titles.
func (m *ModelRecord) InCategory(title string) bool {
	if m.CategoryTitle == title {
		return true
	}
	for _, t := range m.CategoryTitles {
		if t == title {
			return true
		}
	}
	return false
}

// OfferedIn reports whether the record is offered in region r.
func (m *ModelRecord) OfferedIn(r pricing.Region) bool {
	for _, reg := range m.Regions {
		if reg == r {
			return true
		}
	}
	return false
}
