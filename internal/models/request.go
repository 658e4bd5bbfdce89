package models

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Field limits
const (
	MaxInfluencerNameLength = 60
	MaxBrandLength          = 100
	MaxObjectiveLength      = 500
)

// dateLayouts are the accepted formats for campaign dates, tried in order
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate parses a campaign date given as YYYY-MM-DD (UTC midnight) or RFC 3339
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("invalid date")
}

// CanonicalID returns the canonical string form of a record id, or false if
// id is not a well formed identifier
func CanonicalID(id string) (string, bool) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// canonicalIDs validates and canonicalises a reference list, recording a field
// error for every malformed entry
func canonicalIDs(field string, ids []string, verr *ValidationError) []string {
	canonical := make([]string, 0, len(ids))
	for _, id := range NormalizeIDs(ids) {
		c, ok := CanonicalID(id)
		if !ok {
			verr.Add(field, "Invalid influencer id: "+id)
			continue
		}
		canonical = append(canonical, c)
	}
	return NormalizeIDs(canonical)
}

// CreateInfluencerRequest carries the fields of a new influencer
type CreateInfluencerRequest struct {
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	Instagram string   `json:"instagram"`
	Followers *int64   `json:"followers"`
	Location  string   `json:"location"`
}

// Normalize trims surrounding whitespace from every text field
func (r *CreateInfluencerRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = Category(strings.TrimSpace(string(r.Category)))
	r.Instagram = strings.TrimSpace(r.Instagram)
	r.Location = strings.TrimSpace(r.Location)
}

// Validate checks every field constraint and reports all failures at once
func (r *CreateInfluencerRequest) Validate() error {
	verr := &ValidationError{}

	switch {
	case r.Name == "":
		verr.Add("name", "Please provide a name")
	case utf8.RuneCountInString(r.Name) > MaxInfluencerNameLength:
		verr.Add("name", "Name cannot be more than 60 characters")
	}

	switch {
	case r.Category == "":
		verr.Add("category", "Please provide a category")
	case !r.Category.IsValid():
		verr.Add("category", "`"+string(r.Category)+"` is not a valid category")
	}

	if r.Instagram == "" {
		verr.Add("instagram", "Please provide an Instagram handle")
	}

	switch {
	case r.Followers == nil:
		verr.Add("followers", "Please provide follower count")
	case *r.Followers < 0:
		verr.Add("followers", "Follower count cannot be negative")
	}

	if r.Location == "" {
		verr.Add("location", "Please provide a location")
	}

	return verr.OrNil()
}

// ToInfluencer converts a validated request into an unsaved Influencer
func (r *CreateInfluencerRequest) ToInfluencer() *Influencer {
	influencer := &Influencer{
		Name:      r.Name,
		Category:  r.Category,
		Instagram: r.Instagram,
		Location:  r.Location,
	}
	if r.Followers != nil {
		influencer.Followers = *r.Followers
	}
	return influencer
}

// CreateCampaignRequest carries the fields of a new campaign
type CreateCampaignRequest struct {
	Brand         string   `json:"brand"`
	Objective     string   `json:"objective"`
	Budget        *float64 `json:"budget"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	InfluencerIDs []string `json:"influencerIds,omitempty"`
}

// Normalize trims surrounding whitespace from every text field
func (r *CreateCampaignRequest) Normalize() {
	r.Brand = strings.TrimSpace(r.Brand)
	r.Objective = strings.TrimSpace(r.Objective)
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)
}

// ToCampaign validates the request and converts it into an unsaved Campaign
func (r *CreateCampaignRequest) ToCampaign() (*Campaign, error) {
	verr := &ValidationError{}

	switch {
	case r.Brand == "":
		verr.Add("brand", "Please provide a brand name")
	case utf8.RuneCountInString(r.Brand) > MaxBrandLength:
		verr.Add("brand", "Brand name cannot be more than 100 characters")
	}

	switch {
	case r.Objective == "":
		verr.Add("objective", "Please provide a campaign objective")
	case utf8.RuneCountInString(r.Objective) > MaxObjectiveLength:
		verr.Add("objective", "Objective cannot be more than 500 characters")
	}

	switch {
	case r.Budget == nil:
		verr.Add("budget", "Please provide a budget")
	case *r.Budget < 0:
		verr.Add("budget", "Budget cannot be negative")
	}

	startDate, startOK := parseRequiredDate("startDate", "Please provide a start date", r.StartDate, verr)
	endDate, endOK := parseRequiredDate("endDate", "Please provide an end date", r.EndDate, verr)
	if startOK && endOK && !startDate.Before(endDate) {
		verr.Add("endDate", "End date must be after start date")
	}

	influencerIDs := canonicalIDs("influencerIds", r.InfluencerIDs, verr)

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	return &Campaign{
		Brand:         r.Brand,
		Objective:     r.Objective,
		Budget:        *r.Budget,
		StartDate:     startDate,
		EndDate:       endDate,
		InfluencerIDs: influencerIDs,
	}, nil
}

func parseRequiredDate(field, missing, value string, verr *ValidationError) (time.Time, bool) {
	if value == "" {
		verr.Add(field, missing)
		return time.Time{}, false
	}
	t, err := ParseDate(value)
	if err != nil {
		verr.Add(field, "Invalid date, expected YYYY-MM-DD or RFC 3339")
		return time.Time{}, false
	}
	return t, true
}

// ReplaceAssignmentsRequest carries the complete new influencer set of a campaign
type ReplaceAssignmentsRequest struct {
	InfluencerIDs *[]string `json:"influencerIds"`
}

// Validate checks the id list and returns it canonicalised and de-duplicated
func (r *ReplaceAssignmentsRequest) Validate() ([]string, error) {
	verr := &ValidationError{}
	if r.InfluencerIDs == nil {
		verr.Add("influencerIds", "Please provide influencerIds")
		return nil, verr
	}

	ids := canonicalIDs("influencerIds", *r.InfluencerIDs, verr)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return ids, nil
}
