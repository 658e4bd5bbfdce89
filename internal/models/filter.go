package models

import "strings"

// InfluencerFilter narrows an already fetched influencer list.
// Search matches name, instagram or location case-insensitively.
type InfluencerFilter struct {
	Search   string
	Category Category
}

// IsEmpty reports whether the filter lets everything through
func (f InfluencerFilter) IsEmpty() bool {
	return strings.TrimSpace(f.Search) == "" && f.Category == ""
}

// Matches checks a single influencer against the filter
func (f InfluencerFilter) Matches(i Influencer) bool {
	if f.Category != "" && i.Category != f.Category {
		return false
	}

	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(i.Name), term) ||
		strings.Contains(strings.ToLower(i.Instagram), term) ||
		strings.Contains(strings.ToLower(i.Location), term)
}

// Apply returns the influencers that match, preserving order
func (f InfluencerFilter) Apply(influencers []Influencer) []Influencer {
	if f.IsEmpty() {
		return influencers
	}

	matched := make([]Influencer, 0, len(influencers))
	for _, i := range influencers {
		if f.Matches(i) {
			matched = append(matched, i)
		}
	}
	return matched
}
