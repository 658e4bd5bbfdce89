package models

import (
	"strings"
	"time"
)

// Campaign is a marketing effort with a budget, a date range and the set of
// influencers assigned to it. Only the campaign side of the relationship is stored.
type Campaign struct {
	ID            string    `json:"id" bson:"_id" db:"id"`
	Brand         string    `json:"brand" bson:"brand" db:"brand"`
	Objective     string    `json:"objective" bson:"objective" db:"objective"`
	Budget        float64   `json:"budget" bson:"budget" db:"budget"`
	StartDate     time.Time `json:"startDate" bson:"startDate" db:"start_date"`
	EndDate       time.Time `json:"endDate" bson:"endDate" db:"end_date"`
	InfluencerIDs []string  `json:"influencerIds" bson:"influencerIds" db:"influencer_ids"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt" db:"updated_at"`
}

// HydratedCampaign is a campaign whose influencer references have been
// resolved to summaries. The JSON field keeps the "influencerIds" name.
type HydratedCampaign struct {
	ID          string              `json:"id"`
	Brand       string              `json:"brand"`
	Objective   string              `json:"objective"`
	Budget      float64             `json:"budget"`
	StartDate   time.Time           `json:"startDate"`
	EndDate     time.Time           `json:"endDate"`
	Influencers []InfluencerSummary `json:"influencerIds"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// CampaignStatus is the display label derived from a campaign's end date
type CampaignStatus string

// enum values for CampaignStatus
const (
	StatusActive     CampaignStatus = "Active"
	StatusEndingSoon CampaignStatus = "Ending Soon"
	StatusCompleted  CampaignStatus = "Completed"
)

// EndingSoonWindow is how close to its end date a campaign is labelled Ending Soon
const EndingSoonWindow = 7 * 24 * time.Hour

// StatusAt classifies a campaign ending at end as seen at now
func StatusAt(end, now time.Time) CampaignStatus {
	if end.Before(now) {
		return StatusCompleted
	}
	if end.Sub(now) < EndingSoonWindow {
		return StatusEndingSoon
	}
	return StatusActive
}

// StatusAt returns the campaign's display label at now
func (c *Campaign) StatusAt(now time.Time) CampaignStatus {
	return StatusAt(c.EndDate, now)
}

// IsActive returns true if the campaign ends strictly after now
func (c *Campaign) IsActive(now time.Time) bool {
	return c.EndDate.After(now)
}

// NormalizeIDs trims ids, drops blanks and collapses duplicates while keeping
// first-seen order. The result is never nil.
func NormalizeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}

// ReferencedInfluencerIDs returns the union of influencer ids referenced by campaigns
func ReferencedInfluencerIDs(campaigns ...Campaign) []string {
	var all []string
	for _, c := range campaigns {
		all = append(all, c.InfluencerIDs...)
	}
	return NormalizeIDs(all)
}

// Hydrate resolves the campaign's references against lookup. Ids missing from
// lookup (for example a deleted influencer) are left out of the result.
func (c *Campaign) Hydrate(lookup map[string]Influencer) HydratedCampaign {
	summaries := make([]InfluencerSummary, 0, len(c.InfluencerIDs))
	for _, id := range c.InfluencerIDs {
		influencer, ok := lookup[id]
		if !ok {
			continue
		}
		summaries = append(summaries, influencer.ToSummary())
	}

	return HydratedCampaign{
		ID:          c.ID,
		Brand:       c.Brand,
		Objective:   c.Objective,
		Budget:      c.Budget,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		Influencers: summaries,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// HydrateCampaigns joins campaigns with the influencers that could be found
func HydrateCampaigns(campaigns []Campaign, influencers []Influencer) []HydratedCampaign {
	lookup := make(map[string]Influencer, len(influencers))
	for _, influencer := range influencers {
		lookup[influencer.ID] = influencer
	}

	hydrated := make([]HydratedCampaign, 0, len(campaigns))
	for i := range campaigns {
		hydrated = append(hydrated, campaigns[i].Hydrate(lookup))
	}
	return hydrated
}
