package models

import (
	"time"
)

// Category is the closed set of niches an influencer can belong to
type Category string

// enum values for Category
const (
	CategoryFashion   Category = "Fashion"
	CategoryTech      Category = "Tech"
	CategoryLifestyle Category = "Lifestyle"
	CategoryFood      Category = "Food"
	CategoryTravel    Category = "Travel"
	CategoryFitness   Category = "Fitness"
	CategoryBeauty    Category = "Beauty"
	CategoryGaming    Category = "Gaming"
	CategoryEducation Category = "Education"
	CategoryOther     Category = "Other"
)

// Categories lists every valid category in display order
var Categories = []Category{
	CategoryFashion,
	CategoryTech,
	CategoryLifestyle,
	CategoryFood,
	CategoryTravel,
	CategoryFitness,
	CategoryBeauty,
	CategoryGaming,
	CategoryEducation,
	CategoryOther,
}

// IsValid reports whether c is one of Categories
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Influencer is a social media account tracked by the marketing team.
// Whether it is assigned to a campaign is never stored here; it is derived
// from the campaigns that reference it.
type Influencer struct {
	ID        string    `json:"id" bson:"_id" db:"id"`
	Name      string    `json:"name" bson:"name" db:"name"`
	Category  Category  `json:"category" bson:"category" db:"category"`
	Instagram string    `json:"instagram" bson:"instagram" db:"instagram"`
	Followers int64     `json:"followers" bson:"followers" db:"followers"`
	Location  string    `json:"location" bson:"location" db:"location"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt" db:"updated_at"`
}

// InfluencerSummary is the projection embedded into hydrated campaigns
type InfluencerSummary struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	Instagram string   `json:"instagram"`
	Followers int64    `json:"followers"`
	Location  string   `json:"location"`
}

// ToSummary converts Influencer to InfluencerSummary
func (i *Influencer) ToSummary() InfluencerSummary {
	return InfluencerSummary{
		ID:        i.ID,
		Name:      i.Name,
		Category:  i.Category,
		Instagram: i.Instagram,
		Followers: i.Followers,
		Location:  i.Location,
	}
}
