package service

import (
	"context"

	"github.com/prajwalbharadwajbm/influencerconnect/internal/events"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/models"
)

// CampaignService defines the operations on campaigns and their assignments
type CampaignService interface {
	ListCampaigns(ctx context.Context) ([]models.HydratedCampaign, error)
	CreateCampaign(ctx context.Context, req models.CreateCampaignRequest) (*models.Campaign, error)
	ReplaceAssignments(ctx context.Context, campaignID string, req models.ReplaceAssignmentsRequest) (*models.HydratedCampaign, error)
}

// CampaignRepository is the data access contract for campaigns
type CampaignRepository interface {
	// ListCampaigns returns every campaign with raw influencer ids, newest first
	ListCampaigns(ctx context.Context) ([]models.Campaign, error)
	// CreateCampaign assigns id and timestamps to campaign and persists it
	CreateCampaign(ctx context.Context, campaign *models.Campaign) error
	// ReplaceAssignments overwrites the campaign's influencer ids in a single
	// write and returns the updated campaign, or a models.ErrNotFound error
	ReplaceAssignments(ctx context.Context, campaignID string, influencerIDs []string) (*models.Campaign, error)
}

type campaignService struct {
	campaigns   CampaignRepository
	influencers InfluencerRepository
	publisher   events.Publisher
}

// NewCampaignService creates a new campaign service
func NewCampaignService(campaigns CampaignRepository, influencers InfluencerRepository, publisher events.Publisher) CampaignService {
	if publisher == nil {
		publisher = events.NewNopPublisher()
	}
	return &campaignService{
		campaigns:   campaigns,
		influencers: influencers,
		publisher:   publisher,
	}
}

// ListCampaigns returns all campaigns newest first with influencers resolved
func (s *campaignService) ListCampaigns(ctx context.Context) ([]models.HydratedCampaign, error) {
	campaigns, err := s.campaigns.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, campaigns...)
}

// CreateCampaign validates and persists a new campaign. The stored record is
// returned as is, with raw influencer ids.
func (s *campaignService) CreateCampaign(ctx context.Context, req models.CreateCampaignRequest) (*models.Campaign, error) {
	req.Normalize()
	campaign, err := req.ToCampaign()
	if err != nil {
		return nil, err
	}

	if err := s.campaigns.CreateCampaign(ctx, campaign); err != nil {
		return nil, err
	}

	_ = s.publisher.Publish(ctx, events.New(events.CampaignCreated, map[string]any{
		"id":    campaign.ID,
		"brand": campaign.Brand,
	}))

	return campaign, nil
}

// ReplaceAssignments sets the campaign's influencer set to exactly the
// requested ids. Influencer existence is not checked; unknown ids are
// simply not resolved when the campaign is read.
func (s *campaignService) ReplaceAssignments(ctx context.Context, campaignID string, req models.ReplaceAssignmentsRequest) (*models.HydratedCampaign, error) {
	canonical, ok := models.CanonicalID(campaignID)
	if !ok {
		return nil, models.NewNotFoundError("campaign")
	}

	influencerIDs, err := req.Validate()
	if err != nil {
		return nil, err
	}

	campaign, err := s.campaigns.ReplaceAssignments(ctx, canonical, influencerIDs)
	if err != nil {
		return nil, err
	}

	_ = s.publisher.Publish(ctx, events.New(events.CampaignAssignmentsReplaced, map[string]any{
		"id":            campaign.ID,
		"influencerIds": campaign.InfluencerIDs,
	}))

	return s.hydrateOne(ctx, campaign)
}

func (s *campaignService) hydrateOne(ctx context.Context, campaign *models.Campaign) (*models.HydratedCampaign, error) {
	hydrated, err := s.hydrate(ctx, *campaign)
	if err != nil {
		return nil, err
	}
	return &hydrated[0], nil
}

// hydrate resolves every referenced influencer with a single lookup
func (s *campaignService) hydrate(ctx context.Context, campaigns ...models.Campaign) ([]models.HydratedCampaign, error) {
	ids := models.ReferencedInfluencerIDs(campaigns...)

	var influencers []models.Influencer
	if len(ids) > 0 {
		var err error
		influencers, err = s.influencers.FindInfluencersByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	return models.HydrateCampaigns(campaigns, influencers), nil
}
