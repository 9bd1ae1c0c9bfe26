package catalog

import (
	"strings"

	"github.com/rshade/modelmarket-catalog/internal/pricing"
)

// Filter selects catalog records. Zero-valued fields are ignored; every set
// field must match.
type Filter struct {
	TaskType         string
	ModelType        string
	ChannelID        string
	FunctionCategory string
	// CategoryTitle matches the primary title or any extra title.
	CategoryTitle string
	Region        pricing.Region
	// Search is a case-insensitive substring over the record's text fields.
	Search string
}

// Matches reports whether m satisfies every set criterion.
func (f Filter) Matches(m *ModelRecord) bool {
	switch {
	case f.TaskType != "" && m.TaskType != f.TaskType:
		return false
	case f.ModelType != "" && m.ModelType != f.ModelType:
		return false
	case f.ChannelID != "" && m.Source.ChannelID != f.ChannelID:
		return false
	case f.FunctionCategory != "" && m.FunctionCategory != f.FunctionCategory:
		return false
	case f.CategoryTitle != "" && !m.InCategory(f.CategoryTitle):
		return false
	case f.Region != "" && !availableIn(m, f.Region):
		return false
	case f.Search != "" && !matchesText(m, f.Search):
		return false
	}
	return true
}

// availableIn uses the record's region list when present, otherwise whether
// it carries a usable price block for r.
func availableIn(m *ModelRecord, r pricing.Region) bool {
	if len(m.Regions) > 0 {
		return m.OfferedIn(r)
	}
	return pricing.Usable(m.Pricing.Block(r))
}

func matchesText(m *ModelRecord, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{m.Name, m.Description, m.FunctionCategory, m.CategoryTitle, m.TaskType} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Category is a titled group of records.
type Category struct {
	Title   string
	Records []ModelRecord
}

// GroupByCategory groups records by category title in order of first
// appearance. Records without any title are left out.
func GroupByCategory(records []ModelRecord) []Category {
	var groups []Category
	index := make(map[string]int)

	add := func(title string, m ModelRecord) {
		if title == "" {
			return
		}
		i, ok := index[title]
		if !ok {
			i = len(groups)
			index[title] = i
			groups = append(groups, Category{Title: title})
		}
		groups[i].Records = append(groups[i].Records, m)
	}

	for _, m := range records {
		seen := map[string]bool{m.CategoryTitle: true}
		add(m.CategoryTitle, m)
		for _, t := range m.CategoryTitles {
			if !seen[t] {
				seen[t] = true
				add(t, m)
			}
		}
	}
	return groups
}
