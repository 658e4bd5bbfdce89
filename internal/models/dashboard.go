package models

import "time"

// BrandBudget is one bar of the budget-by-brand chart
type BrandBudget struct {
	Brand  string  `json:"brand"`
	Budget float64 `json:"budget"`
}

// CampaignStatusEntry is the display status of one campaign at read time
type CampaignStatusEntry struct {
	ID      string         `json:"id"`
	Brand   string         `json:"brand"`
	EndDate time.Time      `json:"endDate"`
	Status  CampaignStatus `json:"status"`
}

// Dashboard holds the aggregate view over all influencers and campaigns.
// It is derived on every read and never persisted.
type Dashboard struct {
	TotalInfluencers  int                   `json:"totalInfluencers"`
	TotalFollowers    int64                 `json:"totalFollowers"`
	TotalBudget       float64               `json:"totalBudget"`
	ActiveCampaigns   int                   `json:"activeCampaigns"`
	CategoryBreakdown map[Category]int      `json:"categoryBreakdown"`
	BudgetByBrand     []BrandBudget         `json:"budgetByBrand"`
	CampaignStatuses  []CampaignStatusEntry `json:"campaignStatuses"`
	GeneratedAt       time.Time             `json:"generatedAt"`
}

// TotalFollowers sums followers over all influencers
func TotalFollowers(influencers []Influencer) int64 {
	var total int64
	for _, i := range influencers {
		total += i.Followers
	}
	return total
}

// TotalBudget sums budget over all campaigns
func TotalBudget(campaigns []Campaign) float64 {
	var total float64
	for _, c := range campaigns {
		total += c.Budget
	}
	return total
}

// ActiveCampaignCount counts campaigns whose end date is strictly after now
func ActiveCampaignCount(campaigns []Campaign, now time.Time) int {
	count := 0
	for i := range campaigns {
		if campaigns[i].IsActive(now) {
			count++
		}
	}
	return count
}

// CategoryBreakdown counts influencers per category; empty categories are absent
func CategoryBreakdown(influencers []Influencer) map[Category]int {
	breakdown := make(map[Category]int)
	for _, i := range influencers {
		if i.Category == "" {
			continue
		}
		breakdown[i.Category]++
	}
	return breakdown
}

// BudgetByBrand lists each campaign's budget in campaign order
func BudgetByBrand(campaigns []Campaign) []BrandBudget {
	result := make([]BrandBudget, 0, len(campaigns))
	for _, c := range campaigns {
		brand := c.Brand
		if brand == "" {
			brand = "Unknown"
		}
		result = append(result, BrandBudget{Brand: brand, Budget: c.Budget})
	}
	return result
}

// BuildDashboard computes every aggregate as seen at now
func BuildDashboard(influencers []Influencer, campaigns []Campaign, now time.Time) Dashboard {
	statuses := make([]CampaignStatusEntry, 0, len(campaigns))
	for i := range campaigns {
		statuses = append(statuses, CampaignStatusEntry{
			ID:      campaigns[i].ID,
			Brand:   campaigns[i].Brand,
			EndDate: campaigns[i].EndDate,
			Status:  campaigns[i].StatusAt(now),
		})
	}

	return Dashboard{
		TotalInfluencers:  len(influencers),
		TotalFollowers:    TotalFollowers(influencers),
		TotalBudget:       TotalBudget(campaigns),
		ActiveCampaigns:   ActiveCampaignCount(campaigns, now),
		CategoryBreakdown: CategoryBreakdown(influencers),
		BudgetByBrand:     BudgetByBrand(campaigns),
		CampaignStatuses:  statuses,
		GeneratedAt:       now,
	}
}
